package shelf

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/kstore/internal/catalog/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const today = "2024-01-01"

func album(id, artist string, gt domain.GroupType) domain.Product {
	return domain.Product{ID: id, Artist: artist, MainType: domain.MainTypeAlbum, GroupType: gt, Badges: domain.Badges{}}
}

func merch(id string, sub domain.MerchSubType) domain.Product {
	return domain.Product{ID: id, MainType: domain.MainTypeMerch, MerchSubType: sub, Badges: domain.Badges{}}
}

func ids(products []domain.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestSlugTable(t *testing.T) {
	slugs := []string{"populaert-lige-nu", "nye-udgivelser", "paa-tilbud", "boy-groups", "girl-groups", "merchandise", "lightsticks"}
	require.Len(t, Keys(), len(slugs))
	for i, key := range Keys() {
		assert.Equal(t, slugs[i], Slug(key))
		back, ok := FromSlug(slugs[i])
		require.True(t, ok)
		assert.Equal(t, key, back)
	}

	_, ok := FromSlug("vinyl")
	assert.False(t, ok)
	assert.Equal(t, DefaultTitle, Title("nope"))
	assert.Equal(t, "På tilbud", Title(OnSale))
}

func TestNewReleasesOrdering(t *testing.T) {
	a := album("A", "IVE", domain.GroupTypeGirl)
	a.ReleaseDate = "2099-06-01"
	a.Badges[domain.BadgePreOrder] = true

	b := album("B", "IVE", domain.GroupTypeGirl)
	b.ReleaseDate = "2099-01-01"

	c := album("C", "IVE", domain.GroupTypeGirl)
	c.ReleaseDate = "2020-01-01"

	d := album("D", "IVE", domain.GroupTypeGirl)
	d.ReleaseDate = "2023-01-01"

	undated := album("E", "IVE", domain.GroupTypeGirl)
	undated.ReleaseDate = "soon"

	stick := merch("F", domain.MerchSubTypeLightstick)
	stick.ReleaseDate = "2099-02-01"

	out, err := Select([]domain.Product{c, b, undated, d, stick, a}, NewReleases, Options{Today: today})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "D", "C"}, ids(out))
}

func TestOnSaleKeepsSourceOrder(t *testing.T) {
	sale := decimal.NewFromInt(100)
	products := []domain.Product{
		{ID: "1", OnSale: true, SalePrice: &sale},
		{ID: "2"},
		{ID: "3", OnSale: true, SalePrice: &sale},
	}
	out, err := Select(products, OnSale, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3"}, ids(out))
}

func TestPopularNowMatchesFeaturedCaseInsensitive(t *testing.T) {
	products := []domain.Product{
		album("1", "Stray Kids", domain.GroupTypeBoy),
		album("2", "ive", domain.GroupTypeGirl),
		album("3", "Unknown", domain.GroupTypeBoy),
		func() domain.Product { p := merch("4", domain.MerchSubTypeOther); p.Artist = "IVE"; return p }(),
	}
	out, err := Select(products, PopularNow, Options{FeaturedGroups: []string{"IVE", "Stray Kids"}})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"1", "2"}, ids(out))
}

func TestGroupAndMerchShelves(t *testing.T) {
	products := []domain.Product{
		album("b1", "X", domain.GroupTypeBoy),
		album("g1", "Y", domain.GroupTypeGirl),
		album("m1", "Z", domain.GroupTypeMixed),
		merch("l1", domain.MerchSubTypeLightstick),
		merch("c1", domain.MerchSubTypeClothes),
		merch("o1", domain.MerchSubTypeOther),
	}
	shelves := Classify(products, Options{Today: today, Source: NewSource(7)})

	assert.Equal(t, []string{"b1"}, ids(shelves[BoyGroups]))
	assert.Equal(t, []string{"g1"}, ids(shelves[GirlGroups]))
	assert.ElementsMatch(t, []string{"c1", "o1"}, ids(shelves[Merchandise]))
	assert.Equal(t, []string{"l1"}, ids(shelves[Lightsticks]))
	assert.Len(t, shelves, 7)
}

func TestSelectUnknownKey(t *testing.T) {
	_, err := Select(nil, Key("bestsellers"), Options{})
	assert.ErrorIs(t, err, domain.ErrUnknownShelf)
}

func TestBySlugUnknownIsEmpty(t *testing.T) {
	out := BySlug([]domain.Product{album("1", "IVE", domain.GroupTypeGirl)}, "does-not-exist", Options{})
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestHomepageCapsRows(t *testing.T) {
	products := make([]domain.Product, 0, 20)
	for i := 0; i < 20; i++ {
		products = append(products, album(string(rune('a'+i)), "IVE", domain.GroupTypeGirl))
	}
	rows := Homepage(products, Options{Today: today, Source: NewSource(1)})
	require.Len(t, rows, 7)
	assert.Equal(t, "girl-groups", rows[4].Slug)
	assert.Len(t, rows[4].Items, HomepageLimit)

	full := BySlug(products, "girl-groups", Options{Source: NewSource(1)})
	assert.Len(t, full, 20)
}

func TestShuffleIsSeedableAndPermutes(t *testing.T) {
	base := make([]domain.Product, 0, 10)
	for i := 0; i < 10; i++ {
		base = append(base, domain.Product{ID: string(rune('a' + i))})
	}

	first := append([]domain.Product(nil), base...)
	second := append([]domain.Product(nil), base...)
	Shuffle(first, NewSource(42))
	Shuffle(second, NewSource(42))

	assert.Equal(t, ids(first), ids(second))
	assert.ElementsMatch(t, ids(base), ids(first))

	untouched := append([]domain.Product(nil), base...)
	Shuffle(untouched, nil)
	assert.Equal(t, ids(base), ids(untouched))
}

func TestSelectDoesNotMutateInput(t *testing.T) {
	products := []domain.Product{
		album("1", "X", domain.GroupTypeBoy),
		album("2", "X", domain.GroupTypeBoy),
		album("3", "X", domain.GroupTypeBoy),
	}
	_, err := Select(products, BoyGroups, Options{Source: NewSource(3)})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, ids(products))
}
