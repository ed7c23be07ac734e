package badge

import (
	"testing"

	"github.com/smallbiznis/kstore/internal/catalog/domain"
	"github.com/stretchr/testify/assert"
)

func TestResolve_FutureReleaseSetsPreOrder(t *testing.T) {
	in := domain.Badges{domain.BadgePOB: true}
	out := Resolve(in, "2099-01-01", "2024-01-01")

	assert.True(t, out[domain.BadgePreOrder])
	assert.True(t, out[domain.BadgePOB])
	_, touched := in[domain.BadgePreOrder]
	assert.False(t, touched, "input must not be mutated")
}

func TestResolve_OverwritesStaleFalse(t *testing.T) {
	out := Resolve(domain.Badges{domain.BadgePreOrder: false}, "2099-01-01", "2024-01-01")
	assert.Equal(t, true, out[domain.BadgePreOrder])
}

func TestResolve_PastReleaseRemovesKey(t *testing.T) {
	out := Resolve(domain.Badges{domain.BadgePreOrder: true, domain.BadgeAlbum: true}, "2000-01-01", "2024-01-01")

	_, ok := out[domain.BadgePreOrder]
	assert.False(t, ok)
	assert.True(t, out[domain.BadgeAlbum])
}

func TestResolve_ReleaseTodayIsNotPreOrder(t *testing.T) {
	out := Resolve(domain.Badges{domain.BadgePreOrder: true}, "2024-01-01", "2024-01-01")
	_, ok := out[domain.BadgePreOrder]
	assert.False(t, ok)
}

func TestResolve_MalformedDatePassesThrough(t *testing.T) {
	in := domain.Badges{domain.BadgePreOrder: true}
	for _, date := range []string{"", "2099-1-1", "soon", "2099-01-01T00:00"} {
		out := Resolve(in, date, "2024-01-01")
		assert.Equal(t, in, out, "date %q", date)
	}
}

func TestResolve_NilBadges(t *testing.T) {
	assert.Equal(t, domain.Badges{}, Resolve(nil, "", "2024-01-01"))
	assert.Equal(t, domain.Badges{domain.BadgePreOrder: true}, Resolve(nil, "2099-01-01", "2024-01-01"))
}

func TestResolveVinyl(t *testing.T) {
	assert.True(t, ResolveVinyl(nil, "vinyl")[domain.BadgeVinyl])
	assert.True(t, ResolveVinyl(nil, "Vinyl")[domain.BadgeVinyl])

	out := ResolveVinyl(domain.Badges{domain.BadgeVinyl: true}, "CD")
	_, ok := out[domain.BadgeVinyl]
	assert.False(t, ok)
}

func TestCategory(t *testing.T) {
	album := Category(domain.MainTypeAlbum, domain.MerchSubTypeNone)
	assert.Equal(t, domain.Badges{"ALBUM": true, "MERCHANDISE": false, "LIGHTSTICK": false, "CLOTHES": false}, album)

	stick := Category(domain.MainTypeMerch, domain.MerchSubTypeLightstick)
	assert.Equal(t, domain.Badges{"ALBUM": false, "MERCHANDISE": true, "LIGHTSTICK": true, "CLOTHES": false}, stick)
}

func TestWithCategoryIgnoresUserSetCategoryBadges(t *testing.T) {
	out := WithCategory(domain.Badges{domain.BadgeLightstick: true, domain.BadgePOB: true}, domain.MainTypeAlbum, domain.MerchSubTypeNone)
	assert.False(t, out[domain.BadgeLightstick])
	assert.True(t, out[domain.BadgeAlbum])
	assert.True(t, out[domain.BadgePOB])
}

func TestActive(t *testing.T) {
	labels := Active(domain.Badges{"DIGITAL_EDITION": true, "ALBUM": true, "POB": false})
	assert.Equal(t, []string{"ALBUM", "DIGITAL EDITION"}, labels)
}
