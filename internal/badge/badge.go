// Package badge derives the display badge set of a product.
//
// Stored badges are not trusted for anything time- or type-dependent: the
// resolvers here must run wherever badges are rendered or filtered on.
package badge

import (
	"strings"

	"github.com/smallbiznis/kstore/internal/catalog/domain"
)

// Resolve applies the PRE-ORDER rule. A malformed release date leaves the
// badges untouched. A future release date sets PRE-ORDER; any other date
// removes the key. today must be YYYY-MM-DD.
func Resolve(badges domain.Badges, releaseDate, today string) domain.Badges {
	out := badges.Clone()
	if !domain.WellFormedDate(releaseDate) {
		return out
	}
	if releaseDate > today {
		out[domain.BadgePreOrder] = true
		return out
	}
	delete(out, domain.BadgePreOrder)
	return out
}

// ResolveVinyl sets VINYL for vinyl media and removes it otherwise.
func ResolveVinyl(badges domain.Badges, mediaType string) domain.Badges {
	out := badges.Clone()
	if strings.EqualFold(strings.TrimSpace(mediaType), string(domain.MediaTypeVinyl)) {
		out[domain.BadgeVinyl] = true
		return out
	}
	delete(out, domain.BadgeVinyl)
	return out
}

// Category returns the four category badges for a product type. They are
// never taken from user input.
func Category(mainType domain.MainType, merchSubType domain.MerchSubType) domain.Badges {
	isAlbum := mainType == domain.MainTypeAlbum
	return domain.Badges{
		domain.BadgeAlbum:       isAlbum,
		domain.BadgeMerchandise: !isAlbum,
		domain.BadgeLightstick:  !isAlbum && merchSubType == domain.MerchSubTypeLightstick,
		domain.BadgeClothes:     !isAlbum && merchSubType == domain.MerchSubTypeClothes,
	}
}

// WithCategory overwrites the category keys of badges with the derived ones.
func WithCategory(badges domain.Badges, mainType domain.MainType, merchSubType domain.MerchSubType) domain.Badges {
	out := badges.Clone()
	for k, v := range Category(mainType, merchSubType) {
		out[k] = v
	}
	return out
}

// Label is the text shown on a badge chip.
func Label(key string) string {
	return strings.Replace(key, "_", " ", 1)
}

// Active lists the display labels of every badge set to true.
func Active(badges domain.Badges) []string {
	keys := badges.Keys()
	labels := make([]string, 0, len(keys))
	for _, k := range keys {
		labels = append(labels, Label(k))
	}
	return labels
}
