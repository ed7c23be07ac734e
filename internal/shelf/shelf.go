// Package shelf sorts the catalog into the named category rows of the
// storefront.
package shelf

import (
	"slices"
	"strings"

	"github.com/smallbiznis/kstore/internal/catalog/domain"
)

type Key string

const (
	PopularNow  Key = "popular_now"
	NewReleases Key = "new_releases"
	OnSale      Key = "on_sale"
	BoyGroups   Key = "boy_groups"
	GirlGroups  Key = "girl_groups"
	Merchandise Key = "merchandise"
	Lightsticks Key = "lightsticks"
)

// HomepageLimit caps every row on the homepage.
const HomepageLimit = 8

type entry struct {
	key   Key
	slug  string
	title string
}

// table is the public URL contract of the category pages. Slugs must not
// change.
var table = []entry{
	{PopularNow, "populaert-lige-nu", "Populært lige nu"},
	{NewReleases, "nye-udgivelser", "Nye udgivelser"},
	{OnSale, "paa-tilbud", "På tilbud"},
	{BoyGroups, "boy-groups", "Boy groups"},
	{GirlGroups, "girl-groups", "Girl groups"},
	{Merchandise, "merchandise", "Merchandise"},
	{Lightsticks, "lightsticks", "Lightsticks"},
}

// DefaultTitle is shown for a category slug that is not in the table.
const DefaultTitle = "Kategori"

// Keys returns every shelf in display order.
func Keys() []Key {
	keys := make([]Key, 0, len(table))
	for _, e := range table {
		keys = append(keys, e.key)
	}
	return keys
}

func lookup(key Key) (entry, bool) {
	for _, e := range table {
		if e.key == key {
			return e, true
		}
	}
	return entry{}, false
}

// FromSlug maps a URL slug to its shelf.
func FromSlug(slug string) (Key, bool) {
	slug = strings.TrimSpace(slug)
	for _, e := range table {
		if e.slug == slug {
			return e.key, true
		}
	}
	return "", false
}

// Slug returns the URL slug of key, or "" for an unknown key.
func Slug(key Key) string {
	e, _ := lookup(key)
	return e.slug
}

// Title returns the display title of key.
func Title(key Key) string {
	e, ok := lookup(key)
	if !ok {
		return DefaultTitle
	}
	return e.title
}

// Options holds the inputs that are not part of the product collection.
type Options struct {
	Today          string
	FeaturedGroups []string
	// Source drives the shuffled shelves. A nil Source leaves them in
	// collection order.
	Source Source
	// Limit caps each shelf; zero means uncapped.
	Limit int
}

// Select builds one shelf. An unknown key is a programming error.
func Select(products []domain.Product, key Key, opts Options) ([]domain.Product, error) {
	var out []domain.Product
	switch key {
	case PopularNow:
		featured := make(map[string]struct{}, len(opts.FeaturedGroups))
		for _, name := range opts.FeaturedGroups {
			featured[strings.ToLower(strings.TrimSpace(name))] = struct{}{}
		}
		out = filter(products, func(p domain.Product) bool {
			_, ok := featured[strings.ToLower(p.Artist)]
			return p.IsAlbum() && ok
		})
		Shuffle(out, opts.Source)
	case NewReleases:
		out = newReleases(products, opts.Today)
	case OnSale:
		out = filter(products, func(p domain.Product) bool { return p.OnSale })
	case BoyGroups:
		out = filter(products, func(p domain.Product) bool {
			return p.IsAlbum() && p.GroupType == domain.GroupTypeBoy
		})
		Shuffle(out, opts.Source)
	case GirlGroups:
		out = filter(products, func(p domain.Product) bool {
			return p.IsAlbum() && p.GroupType == domain.GroupTypeGirl
		})
		Shuffle(out, opts.Source)
	case Merchandise:
		out = filter(products, func(p domain.Product) bool {
			return p.IsMerch() && p.MerchSubType != domain.MerchSubTypeLightstick
		})
		Shuffle(out, opts.Source)
	case Lightsticks:
		out = filter(products, func(p domain.Product) bool { return p.IsLightstick() })
		Shuffle(out, opts.Source)
	default:
		return nil, domain.ErrUnknownShelf
	}

	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

// BySlug builds the shelf behind a category URL. Unknown slugs give an
// empty shelf.
func BySlug(products []domain.Product, slug string, opts Options) []domain.Product {
	key, ok := FromSlug(slug)
	if !ok {
		return []domain.Product{}
	}
	out, _ := Select(products, key, opts)
	return out
}

// Classify builds all shelves.
func Classify(products []domain.Product, opts Options) map[Key][]domain.Product {
	shelves := make(map[Key][]domain.Product, len(table))
	for _, e := range table {
		out, _ := Select(products, e.key, opts)
		shelves[e.key] = out
	}
	return shelves
}

// Row is one titled shelf of the homepage.
type Row struct {
	Key   Key
	Slug  string
	Title string
	Items []domain.Product
}

// Homepage returns every shelf in display order, each capped at
// HomepageLimit unless opts.Limit says otherwise.
func Homepage(products []domain.Product, opts Options) []Row {
	if opts.Limit <= 0 {
		opts.Limit = HomepageLimit
	}
	rows := make([]Row, 0, len(table))
	for _, e := range table {
		items, _ := Select(products, e.key, opts)
		rows = append(rows, Row{Key: e.key, Slug: e.slug, Title: e.title, Items: items})
	}
	return rows
}

// newReleases orders dated albums as: upcoming pre-orders, other upcoming
// releases (both soonest first), then released titles newest first.
func newReleases(products []domain.Product, today string) []domain.Product {
	var preorders, upcoming, released []domain.Product
	for _, p := range products {
		if !p.IsAlbum() || !domain.WellFormedDate(p.ReleaseDate) {
			continue
		}
		switch {
		case p.ReleaseDate < today:
			released = append(released, p)
		case p.Badges[domain.BadgePreOrder]:
			preorders = append(preorders, p)
		default:
			upcoming = append(upcoming, p)
		}
	}

	ascending := func(a, b domain.Product) int { return strings.Compare(a.ReleaseDate, b.ReleaseDate) }
	slices.SortStableFunc(preorders, ascending)
	slices.SortStableFunc(upcoming, ascending)
	slices.SortStableFunc(released, func(a, b domain.Product) int { return ascending(b, a) })

	out := make([]domain.Product, 0, len(preorders)+len(upcoming)+len(released))
	out = append(out, preorders...)
	out = append(out, upcoming...)
	return append(out, released...)
}

func filter(products []domain.Product, keep func(domain.Product) bool) []domain.Product {
	out := make([]domain.Product, 0)
	for _, p := range products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
