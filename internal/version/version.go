// Package version normalizes the version or size list of a product.
package version

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/smallbiznis/kstore/internal/catalog/domain"
)

// DefaultLightstickName is used when an admin leaves the lightstick name blank.
const DefaultLightstickName = "Official Lightstick"

// Input is the raw version authoring state of the admin form. Names, Codes,
// Details and Images are parallel lists indexed by version; missing entries
// count as blank.
type Input struct {
	MainType        domain.MainType
	MerchSubType    domain.MerchSubType
	IsRandomVersion bool

	Total   int
	Names   []string
	Codes   []string
	Details []string
	Images  []string

	Lightstick domain.LightstickInput
}

// Resolve returns the version records for a product, or nil when none apply.
// Lightsticks always get exactly one record. Albums, clothes and other merch
// get Total records with defaulted names.
func Resolve(in Input) []domain.Version {
	switch {
	case in.MainType == domain.MainTypeMerch && in.MerchSubType == domain.MerchSubTypeLightstick:
		name := strings.TrimSpace(in.Lightstick.Name)
		if name == "" {
			name = DefaultLightstickName
		}
		return []domain.Version{{
			Name:    name,
			Code:    optional(in.Lightstick.Code),
			Details: strings.TrimSpace(in.Lightstick.Details),
			Image:   optional(in.Lightstick.Image),
		}}
	case in.MainType == domain.MainTypeAlbum,
		in.MainType == domain.MainTypeMerch && in.MerchSubType == domain.MerchSubTypeClothes,
		in.MainType == domain.MainTypeMerch && in.MerchSubType == domain.MerchSubTypeOther:
	default:
		return nil
	}

	if in.Total <= 0 {
		return nil
	}

	prefix := "Version"
	if in.MerchSubType == domain.MerchSubTypeClothes {
		prefix = "Størrelse"
	}

	out := make([]domain.Version, 0, in.Total)
	for i := 0; i < in.Total; i++ {
		name := strings.TrimSpace(at(in.Names, i))
		if name == "" {
			name = fmt.Sprintf("%s %d", prefix, i+1)
		}
		out = append(out, domain.Version{
			Name:    name,
			Code:    optional(at(in.Codes, i)),
			Details: strings.TrimSpace(at(in.Details, i)),
			Image:   optional(at(in.Images, i)),
		})
	}
	return out
}

// ParseCount reads a free-text version count. Anything that is not a
// positive integer counts as zero.
func ParseCount(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Selectable returns the versions a customer can choose between. Random
// version products have none, whatever is stored.
func Selectable(p domain.Product) []domain.Version {
	if p.IsRandomVersion {
		return nil
	}
	out := make([]domain.Version, 0, len(p.Versions))
	for _, v := range p.Versions {
		if strings.TrimSpace(v.Name) == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Names returns the names of versions, in order.
func Names(versions []domain.Version) []string {
	out := make([]string, 0, len(versions))
	for _, v := range versions {
		out = append(out, v.Name)
	}
	return out
}

func at(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
