package domain

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

type MainType string

const (
	MainTypeAlbum MainType = "album"
	MainTypeMerch MainType = "merch"
)

type MerchSubType string

const (
	MerchSubTypeNone       MerchSubType = ""
	MerchSubTypeLightstick MerchSubType = "lightstick"
	MerchSubTypeClothes    MerchSubType = "clothes"
	MerchSubTypeOther      MerchSubType = "other"
)

type MediaType string

const (
	MediaTypeNone    MediaType = ""
	MediaTypeCD      MediaType = "CD"
	MediaTypeVinyl   MediaType = "Vinyl"
	MediaTypeDigital MediaType = "Digital"
)

type GroupType string

const (
	GroupTypeBoy   GroupType = "boy"
	GroupTypeGirl  GroupType = "girl"
	GroupTypeMixed GroupType = "mixed"
)

// DefaultCurrency is the only currency the shop sells in.
const DefaultCurrency = "DKK"

// Badge keys. Category badges are derived from the product type; format
// badges are set by admins or, for PRE-ORDER, by the release date.
const (
	BadgeAlbum          = "ALBUM"
	BadgeMerchandise    = "MERCHANDISE"
	BadgeLightstick     = "LIGHTSTICK"
	BadgeClothes        = "CLOTHES"
	BadgeDigipack       = "DIGIPACK"
	BadgeDigitalEdition = "DIGITAL_EDITION"
	BadgePOB            = "POB"
	BadgePreOrder       = "PRE-ORDER"
	BadgeRandomVer      = "RANDOM_VER"
	BadgeVinyl          = "VINYL"
)

// Badges maps badge keys to their flag. A missing key means the badge never
// applies, which is distinct from an explicit false.
type Badges map[string]bool

// Clone returns a copy that never aliases b. A nil receiver yields an empty map.
func (b Badges) Clone() Badges {
	out := make(Badges, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

func (b Badges) Has(key string) bool {
	return b[key]
}

// Keys returns the keys that are set to true, sorted.
func (b Badges) Keys() []string {
	keys := make([]string, 0, len(b))
	for k, v := range b {
		if v {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	GroupType GroupType `json:"groupType"`
	Image     *string   `json:"image"`
}

type Member struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	GroupID string `json:"groupId"`
}

type Version struct {
	Name    string  `json:"name"`
	Code    *string `json:"code"`
	Details string  `json:"details"`
	Image   *string `json:"image"`
}

type Images struct {
	Cover   *string  `json:"cover"`
	Gallery []string `json:"gallery"`
}

// Product is the normalized, read-side shape of a stored product document.
type Product struct {
	ID            string `json:"id"`
	BaseProductID string `json:"baseProductId"`
	Title         string `json:"title"`

	ArtistGroupID string    `json:"artistGroupId"`
	Artist        string    `json:"artist"`
	ArtistSlug    string    `json:"artistSlug"`
	GroupType     GroupType `json:"groupType,omitempty"`

	MainType     MainType     `json:"mainType"`
	MerchSubType MerchSubType `json:"merchSubType,omitempty"`
	MediaType    MediaType    `json:"mediaType,omitempty"`

	Price     decimal.Decimal  `json:"price"`
	SalePrice *decimal.Decimal `json:"salePrice"`
	OnSale    bool             `json:"onSale"`
	Currency  string           `json:"currency"`

	Images          Images    `json:"images"`
	Versions        []Version `json:"versions"`
	IsRandomVersion bool      `json:"isRandomVersion"`

	Badges   Badges `json:"badges"`
	HasPOB   bool   `json:"hasPOB"`
	PobLabel string `json:"pobLabel,omitempty"`

	ReleaseDate string   `json:"releaseDate,omitempty"`
	CreatedAt   int64    `json:"createdAt"`
	Members     []string `json:"members,omitempty"`
}

func (p Product) IsAlbum() bool { return p.MainType == MainTypeAlbum }

func (p Product) IsMerch() bool { return p.MainType == MainTypeMerch }

func (p Product) IsLightstick() bool {
	return p.MainType == MainTypeMerch && p.MerchSubType == MerchSubTypeLightstick
}

// EffectivePrice is the sale price when the product is on sale, else the list price.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.OnSale && p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}

// IsOnSale reports whether a sale price is present and strictly below price.
func IsOnSale(price decimal.Decimal, salePrice *decimal.Decimal) bool {
	return salePrice != nil && salePrice.LessThan(price)
}

// WellFormedDate reports whether value has the fixed YYYY-MM-DD width.
func WellFormedDate(value string) bool {
	return len(value) == 10
}

// Snapshot is a point-in-time copy of the catalog collections.
type Snapshot struct {
	Generation uint64
	Today      string
	Products   []Product
	Groups     []Group
	Members    []Member
	// Relations maps a baseProductId to the product ids linked under it.
	Relations map[string][]string
	BaseMeta  map[string]BaseMeta
}

// ProductByID returns the product with the given id.
func (s *Snapshot) ProductByID(id string) (Product, bool) {
	if s == nil {
		return Product{}, false
	}
	for _, p := range s.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// GroupBySlug finds a group by its public slug.
func (s *Snapshot) GroupBySlug(slug string) (Group, bool) {
	if s == nil {
		return Group{}, false
	}
	slug = strings.TrimSpace(slug)
	for _, g := range s.Groups {
		if g.Slug == slug {
			return g, true
		}
	}
	return Group{}, false
}

// BaseMeta holds family-level information shared by sibling product records.
type BaseMeta struct {
	Title         string   `json:"title"`
	ArtistGroupID string   `json:"artistGroupId"`
	MainType      MainType `json:"mainType"`
	VersionTotal  *int     `json:"versionTotal,omitempty"`
	AlbumImages   []string `json:"albumImages,omitempty"`
}
