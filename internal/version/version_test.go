package version

import (
	"testing"

	"github.com/smallbiznis/kstore/internal/catalog/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_AlbumDefaultsBlankNames(t *testing.T) {
	out := Resolve(Input{
		MainType: domain.MainTypeAlbum,
		Total:    3,
		Names:    []string{"Digipack ver.", "  "},
		Codes:    []string{"DGP", ""},
		Images:   []string{"", "https://cdn/2.png"},
	})

	require.Len(t, out, 3)
	assert.Equal(t, "Digipack ver.", out[0].Name)
	assert.Equal(t, "Version 2", out[1].Name)
	assert.Equal(t, "Version 3", out[2].Name)
	require.NotNil(t, out[0].Code)
	assert.Equal(t, "DGP", *out[0].Code)
	assert.Nil(t, out[1].Code)
	assert.Nil(t, out[0].Image)
	require.NotNil(t, out[1].Image)
	assert.Equal(t, "https://cdn/2.png", *out[1].Image)
}

func TestResolve_ClothesUseSizeNames(t *testing.T) {
	out := Resolve(Input{
		MainType:     domain.MainTypeMerch,
		MerchSubType: domain.MerchSubTypeClothes,
		Total:        2,
		Names:        []string{"M"},
	})

	assert.Equal(t, []string{"M", "Størrelse 2"}, Names(out))
}

func TestResolve_LightstickAlwaysOneVersion(t *testing.T) {
	out := Resolve(Input{
		MainType:     domain.MainTypeMerch,
		MerchSubType: domain.MerchSubTypeLightstick,
		Total:        5,
	})

	require.Len(t, out, 1)
	assert.Equal(t, DefaultLightstickName, out[0].Name)
	assert.Nil(t, out[0].Code)
	assert.Equal(t, "", out[0].Details)
}

func TestResolve_NoVersions(t *testing.T) {
	assert.Nil(t, Resolve(Input{MainType: domain.MainTypeAlbum}))
	assert.Nil(t, Resolve(Input{MainType: domain.MainTypeMerch, MerchSubType: "poster", Total: 2}))
	assert.Nil(t, Resolve(Input{MainType: "", Total: 2}))
}

func TestParseCount(t *testing.T) {
	assert.Equal(t, 4, ParseCount(" 4 "))
	assert.Equal(t, 0, ParseCount(""))
	assert.Equal(t, 0, ParseCount("four"))
	assert.Equal(t, 0, ParseCount("-2"))
}

func TestSelectable(t *testing.T) {
	p := domain.Product{Versions: []domain.Version{{Name: "A"}, {Name: ""}, {Name: "B"}}}
	assert.Equal(t, []string{"A", "B"}, Names(Selectable(p)))

	p.IsRandomVersion = true
	assert.Empty(t, Selectable(p))
}

func TestPack(t *testing.T) {
	l := Pack([]float64{40, 40, 40}, 6, 30, 100)
	assert.Equal(t, Layout{Visible: 1, Hidden: 2, Overflow: "+2"}, l)
}

func TestPack_AllFit(t *testing.T) {
	l := Pack([]float64{30, 30, 30}, 5, 30, 100)
	assert.Equal(t, Layout{Visible: 3}, l)
}

func TestPack_NothingFits(t *testing.T) {
	l := Pack([]float64{120, 40}, 6, 30, 100)
	assert.Equal(t, Layout{Visible: 0, Hidden: 2, Overflow: "+2"}, l)
}

func TestPack_LastPillWithoutIndicator(t *testing.T) {
	// 40 + 6 + 40 fits only when the indicator is not needed.
	l := Pack([]float64{40, 40}, 6, 30, 86)
	assert.Equal(t, Layout{Visible: 2}, l)
}

func TestPackLabels_WideGlyphs(t *testing.T) {
	m := Metrics{CellWidth: 10, Padding: 0, Gap: 0, OverflowWidth: 20}
	// "앨범" is four cells wide, "CD" two.
	l := PackLabels([]string{"CD", "앨범", "CD"}, m, 60)
	assert.Equal(t, 1, l.Visible)
	assert.Equal(t, "+2", l.Overflow)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, Layout{Visible: 2}, Truncate(2, DefaultPillLimit))
	assert.Equal(t, Layout{Visible: 3, Hidden: 2, Overflow: "+2"}, Truncate(5, DefaultPillLimit))
	assert.Equal(t, Layout{}, Truncate(0, DefaultPillLimit))
}
