// Package filter applies the listing controls shared by the artist,
// category and search pages.
package filter

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/kstore/internal/catalog/domain"
)

type Type string

const (
	TypeAll        Type = ""
	TypeAlbum      Type = "album"
	TypeMerch      Type = "merch"
	TypeLightstick Type = "lightstick"
)

// General is either an ordering or a boolean predicate.
type General string

const (
	GeneralNone       General = ""
	GeneralPriceLow   General = "priceLow"
	GeneralPriceHigh  General = "priceHigh"
	GeneralNewest     General = "newest"
	GeneralOldest     General = "oldest"
	GeneralOnSale     General = "onSale"
	GeneralPreOrder   General = "preorder"
	GeneralWithPOB    General = "withPOB"
	GeneralRandomOnly General = "randomOnly"
)

// Matcher reports whether p matches a non-empty search needle.
type Matcher func(p domain.Product, needle string) bool

type Query struct {
	Search  string
	Type    Type
	General General
	// Member only applies on artist pages.
	Member string
	// Match overrides the default case-insensitive title/artist match.
	Match Matcher
}

// ContainsFold is the default matcher: a case-insensitive substring match
// on title or artist.
func ContainsFold(p domain.Product, needle string) bool {
	needle = strings.ToLower(needle)
	return strings.Contains(strings.ToLower(p.Title), needle) ||
		strings.Contains(strings.ToLower(p.Artist), needle)
}

// Apply runs search, type filter, member filter, ordering and finally the
// boolean predicates, in that order. Predicates run after sorting so the
// chosen order survives among the remaining items. The input is not modified.
func Apply(products []domain.Product, q Query) []domain.Product {
	list := slices.Clone(products)
	if list == nil {
		list = []domain.Product{}
	}

	if needle := strings.TrimSpace(q.Search); needle != "" {
		match := q.Match
		if match == nil {
			match = ContainsFold
		}
		list = keep(list, func(p domain.Product) bool { return match(p, needle) })
	}

	switch q.Type {
	case TypeAlbum:
		list = keep(list, domain.Product.IsAlbum)
	case TypeMerch:
		list = keep(list, domain.Product.IsMerch)
	case TypeLightstick:
		list = keep(list, domain.Product.IsLightstick)
	}

	if member := strings.TrimSpace(q.Member); member != "" {
		list = keep(list, func(p domain.Product) bool { return slices.Contains(p.Members, member) })
	}

	switch q.General {
	case GeneralPriceLow:
		slices.SortStableFunc(list, func(a, b domain.Product) int {
			return EffectivePrice(a).Cmp(EffectivePrice(b))
		})
	case GeneralPriceHigh:
		slices.SortStableFunc(list, func(a, b domain.Product) int {
			return EffectivePrice(b).Cmp(EffectivePrice(a))
		})
	case GeneralNewest:
		slices.SortStableFunc(list, func(a, b domain.Product) int {
			return strings.Compare(b.ReleaseDate, a.ReleaseDate)
		})
	case GeneralOldest:
		slices.SortStableFunc(list, func(a, b domain.Product) int {
			return strings.Compare(a.ReleaseDate, b.ReleaseDate)
		})
	}

	switch q.General {
	case GeneralOnSale:
		list = keep(list, func(p domain.Product) bool { return p.OnSale })
	case GeneralPreOrder:
		list = keep(list, func(p domain.Product) bool { return p.Badges[domain.BadgePreOrder] })
	case GeneralWithPOB:
		list = keep(list, func(p domain.Product) bool { return p.HasPOB })
	case GeneralRandomOnly:
		list = keep(list, func(p domain.Product) bool { return p.IsRandomVersion })
	}

	return list
}

// EffectivePrice is what the shopper pays: the sale price when on sale,
// else the list price.
func EffectivePrice(p domain.Product) decimal.Decimal {
	return p.EffectivePrice()
}

// ParseType maps a query value to a Type. Unknown values mean no filter.
func ParseType(raw string) Type {
	switch t := Type(strings.TrimSpace(raw)); t {
	case TypeAlbum, TypeMerch, TypeLightstick:
		return t
	default:
		return TypeAll
	}
}

// ParseGeneral maps a query value to a General filter. Unknown values mean
// no filter.
func ParseGeneral(raw string) General {
	switch g := General(strings.TrimSpace(raw)); g {
	case GeneralPriceLow, GeneralPriceHigh, GeneralNewest, GeneralOldest,
		GeneralOnSale, GeneralPreOrder, GeneralWithPOB, GeneralRandomOnly:
		return g
	default:
		return GeneralNone
	}
}

func keep(list []domain.Product, pred func(domain.Product) bool) []domain.Product {
	out := list[:0]
	for _, p := range list {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}
