package service

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/kstore/internal/badge"
	"github.com/smallbiznis/kstore/internal/catalog/domain"
	"github.com/smallbiznis/kstore/internal/slugify"
	"github.com/tidwall/gjson"
)

// Documents are schemaless; everything read from the store passes through
// these decoders once, and malformed fields are coerced instead of rejected.

func decodeGroup(doc domain.Document) domain.Group {
	body := gjson.ParseBytes(doc.Body)
	name := strings.TrimSpace(body.Get("name").String())
	return domain.Group{
		ID:        doc.Key,
		Name:      name,
		Slug:      slugify.Resolve(body.Get("slug").String(), name),
		GroupType: parseGroupType(body.Get("groupType").String(), domain.GroupTypeBoy),
		Image:     optionalString(body.Get("image")),
	}
}

func decodeMember(doc domain.Document) domain.Member {
	body := gjson.ParseBytes(doc.Body)
	return domain.Member{
		ID:      doc.Key,
		Name:    strings.TrimSpace(body.Get("name").String()),
		GroupID: strings.TrimSpace(body.Get("groupId").String()),
	}
}

func decodeBaseMeta(doc domain.Document) domain.BaseMeta {
	body := gjson.ParseBytes(doc.Body)
	meta := domain.BaseMeta{
		Title:         strings.TrimSpace(body.Get("title").String()),
		ArtistGroupID: strings.TrimSpace(body.Get("artistGroupId").String()),
		MainType:      parseMainType(body.Get("mainType").String(), false),
		AlbumImages:   stringList(body.Get("albumImages")),
	}
	if total := body.Get("versionTotal"); total.Type == gjson.Number {
		n := int(total.Int())
		meta.VersionTotal = &n
	}
	return meta
}

// decodeProduct builds the read-side product. groups resolves the artist;
// today drives the PRE-ORDER badge.
func decodeProduct(doc domain.Document, groups map[string]domain.Group, today, currency string) domain.Product {
	body := gjson.ParseBytes(doc.Body)

	stored := domain.Badges{}
	body.Get("badges").ForEach(func(key, value gjson.Result) bool {
		if value.IsBool() {
			stored[key.String()] = value.Bool()
		}
		return true
	})

	mainType := parseMainType(body.Get("mainType").String(), stored[domain.BadgeMerchandise])
	var subType domain.MerchSubType
	var mediaType domain.MediaType
	if mainType == domain.MainTypeMerch {
		subType = parseMerchSubType(body.Get("merchSubType").String())
	} else {
		mediaType = parseMediaType(body.Get("mediaType").String())
	}

	p := domain.Product{
		ID:              doc.Key,
		BaseProductID:   strings.TrimSpace(body.Get("baseProductId").String()),
		Title:           strings.TrimSpace(body.Get("title").String()),
		ArtistGroupID:   strings.TrimSpace(body.Get("artistGroupId").String()),
		MainType:        mainType,
		MerchSubType:    subType,
		MediaType:       mediaType,
		Price:           coercePrice(body.Get("price")),
		SalePrice:       coerceSalePrice(body.Get("salePrice")),
		Currency:        strings.TrimSpace(body.Get("currency").String()),
		Images:          decodeImages(body.Get("images")),
		Versions:        decodeVersions(body.Get("versions")),
		IsRandomVersion: body.Get("isRandomVersion").Bool(),
		PobLabel:        strings.TrimSpace(body.Get("pobLabel").String()),
		ReleaseDate:     strings.TrimSpace(body.Get("releaseDate").String()),
		Members:         stringList(body.Get("members")),
	}
	if created := body.Get("createdAt"); created.Type == gjson.Number {
		p.CreatedAt = created.Int()
	}
	if p.Currency == "" {
		p.Currency = currency
	}
	p.OnSale = domain.IsOnSale(p.Price, p.SalePrice)

	if g, ok := groups[p.ArtistGroupID]; ok {
		p.Artist = g.Name
		p.ArtistSlug = g.Slug
		p.GroupType = g.GroupType
	} else {
		p.Artist = strings.TrimSpace(body.Get("search.artistLower").String())
		p.ArtistSlug = slugify.Make(p.Artist)
		p.GroupType = parseGroupType(body.Get("groupType").String(), "")
	}

	badges := badge.WithCategory(stored, mainType, subType)
	if p.IsRandomVersion {
		badges[domain.BadgeRandomVer] = true
	}
	badges = badge.ResolveVinyl(badges, string(mediaType))
	p.Badges = badge.Resolve(badges, p.ReleaseDate, today)
	p.HasPOB = body.Get("hasPOB").Bool() || p.Badges.Has(domain.BadgePOB)

	return p
}

func decodeImages(r gjson.Result) domain.Images {
	images := domain.Images{
		Cover:   optionalString(r.Get("cover")),
		Gallery: stringList(r.Get("gallery")),
	}
	return images
}

func decodeVersions(r gjson.Result) []domain.Version {
	if !r.IsArray() {
		return nil
	}
	var out []domain.Version
	r.ForEach(func(_, v gjson.Result) bool {
		if !v.IsObject() {
			return true
		}
		out = append(out, domain.Version{
			Name:    strings.TrimSpace(v.Get("name").String()),
			Code:    optionalString(v.Get("code")),
			Details: strings.TrimSpace(v.Get("details").String()),
			Image:   optionalString(v.Get("image")),
		})
		return true
	})
	return out
}

// coercePrice accepts a number or a numeric string; anything else is zero.
func coercePrice(r gjson.Result) decimal.Decimal {
	switch r.Type {
	case gjson.Number:
		if d, err := decimal.NewFromString(r.Raw); err == nil {
			return d
		}
		return decimal.NewFromFloat(r.Float())
	case gjson.String:
		if d, ok := parseAmount(r.Str); ok {
			return d
		}
	}
	return decimal.Zero
}

// coerceSalePrice only accepts numbers.
func coerceSalePrice(r gjson.Result) *decimal.Decimal {
	if r.Type != gjson.Number {
		return nil
	}
	d, err := decimal.NewFromString(r.Raw)
	if err != nil {
		d = decimal.NewFromFloat(r.Float())
	}
	return &d
}

// parseAmount reads a user-typed amount. A decimal comma is accepted.
func parseAmount(raw string) (decimal.Decimal, bool) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if raw == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func optionalString(r gjson.Result) *string {
	if r.Type != gjson.String {
		return nil
	}
	v := strings.TrimSpace(r.Str)
	if v == "" {
		return nil
	}
	return &v
}

// stringList accepts an array of strings or a single string.
func stringList(r gjson.Result) []string {
	var out []string
	add := func(v gjson.Result) {
		if v.Type != gjson.String {
			return
		}
		if s := strings.TrimSpace(v.Str); s != "" {
			out = append(out, s)
		}
	}
	if r.IsArray() {
		r.ForEach(func(_, v gjson.Result) bool {
			add(v)
			return true
		})
		return out
	}
	add(r)
	return out
}

func parseMainType(raw string, merchBadge bool) domain.MainType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(domain.MainTypeMerch):
		return domain.MainTypeMerch
	case string(domain.MainTypeAlbum):
		return domain.MainTypeAlbum
	}
	if merchBadge {
		return domain.MainTypeMerch
	}
	return domain.MainTypeAlbum
}

func parseMerchSubType(raw string) domain.MerchSubType {
	switch domain.MerchSubType(strings.ToLower(strings.TrimSpace(raw))) {
	case domain.MerchSubTypeLightstick:
		return domain.MerchSubTypeLightstick
	case domain.MerchSubTypeClothes:
		return domain.MerchSubTypeClothes
	default:
		return domain.MerchSubTypeOther
	}
}

func parseMediaType(raw string) domain.MediaType {
	raw = strings.TrimSpace(raw)
	for _, m := range []domain.MediaType{domain.MediaTypeCD, domain.MediaTypeVinyl, domain.MediaTypeDigital} {
		if strings.EqualFold(raw, string(m)) {
			return m
		}
	}
	return domain.MediaTypeNone
}

func parseGroupType(raw string, def domain.GroupType) domain.GroupType {
	switch domain.GroupType(strings.ToLower(strings.TrimSpace(raw))) {
	case domain.GroupTypeBoy:
		return domain.GroupTypeBoy
	case domain.GroupTypeGirl:
		return domain.GroupTypeGirl
	case domain.GroupTypeMixed:
		return domain.GroupTypeMixed
	default:
		return def
	}
}

// sortNewestFirst orders products by createdAt descending, ties by id.
func sortNewestFirst(products []domain.Product) {
	slices.SortStableFunc(products, func(a, b domain.Product) int {
		switch {
		case a.CreatedAt > b.CreatedAt:
			return -1
		case a.CreatedAt < b.CreatedAt:
			return 1
		default:
			return strings.Compare(a.ID, b.ID)
		}
	})
}
