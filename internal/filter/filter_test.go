package filter

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/kstore/internal/catalog/domain"
	"github.com/stretchr/testify/assert"
)

func product(id string, price float64, sale *float64) domain.Product {
	p := domain.Product{
		ID:       id,
		Title:    "Album " + id,
		Artist:   "IVE",
		MainType: domain.MainTypeAlbum,
		Price:    decimal.NewFromFloat(price),
		Badges:   domain.Badges{},
	}
	if sale != nil {
		s := decimal.NewFromFloat(*sale)
		p.SalePrice = &s
		p.OnSale = domain.IsOnSale(p.Price, p.SalePrice)
	}
	return p
}

func f(v float64) *float64 { return &v }

func ids(products []domain.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestOnSaleIsDerived(t *testing.T) {
	assert.True(t, product("a", 200, f(150)).OnSale)
	assert.False(t, product("b", 200, f(250)).OnSale)
	assert.False(t, product("c", 200, f(200)).OnSale)
	assert.False(t, product("d", 200, nil).OnSale)
}

func TestEffectivePrice(t *testing.T) {
	assert.True(t, decimal.NewFromInt(150).Equal(EffectivePrice(product("a", 200, f(150)))))
	assert.True(t, decimal.NewFromInt(200).Equal(EffectivePrice(product("b", 200, f(250)))))
}

func TestPriceLowThenOnSaleKeepsOrder(t *testing.T) {
	products := []domain.Product{
		product("full-300", 300, nil),
		product("sale-250", 400, f(250)),
		product("full-100", 100, nil),
		product("sale-90", 120, f(90)),
		product("sale-180", 200, f(180)),
	}

	out := Apply(products, Query{General: GeneralPriceLow})
	assert.Equal(t, []string{"sale-90", "full-100", "sale-180", "sale-250", "full-300"}, ids(out))

	onSale := Apply(products, Query{General: GeneralPriceLow})
	onSale = Apply(onSale, Query{General: GeneralOnSale})
	assert.Equal(t, []string{"sale-90", "sale-180", "sale-250"}, ids(onSale))
}

func TestPriceHigh(t *testing.T) {
	products := []domain.Product{product("a", 100, nil), product("b", 300, f(50)), product("c", 200, nil)}
	assert.Equal(t, []string{"c", "a", "b"}, ids(Apply(products, Query{General: GeneralPriceHigh})))
}

func TestDateSortsPlaceMissingDates(t *testing.T) {
	a := product("a", 1, nil)
	a.ReleaseDate = "2024-05-01"
	b := product("b", 1, nil)
	c := product("c", 1, nil)
	c.ReleaseDate = "2023-01-01"

	assert.Equal(t, []string{"b", "c", "a"}, ids(Apply([]domain.Product{a, b, c}, Query{General: GeneralOldest})))
	assert.Equal(t, []string{"a", "c", "b"}, ids(Apply([]domain.Product{a, b, c}, Query{General: GeneralNewest})))
}

func TestSearchTypeAndMember(t *testing.T) {
	album := product("album", 100, nil)
	album.Title = "I've Mine"
	album.Members = []string{"Wonyoung"}

	stick := product("stick", 100, nil)
	stick.Title = "Official Lightstick"
	stick.MainType = domain.MainTypeMerch
	stick.MerchSubType = domain.MerchSubTypeLightstick

	tee := product("tee", 100, nil)
	tee.Title = "Tour Tee"
	tee.Artist = "ATEEZ"
	tee.MainType = domain.MainTypeMerch
	tee.MerchSubType = domain.MerchSubTypeClothes

	all := []domain.Product{album, stick, tee}

	assert.Equal(t, []string{"album"}, ids(Apply(all, Query{Search: "MINE"})))
	assert.Equal(t, []string{"tee"}, ids(Apply(all, Query{Search: "ateez"})))
	assert.Equal(t, []string{"album"}, ids(Apply(all, Query{Type: TypeAlbum})))
	assert.Equal(t, []string{"stick", "tee"}, ids(Apply(all, Query{Type: TypeMerch})))
	assert.Equal(t, []string{"stick"}, ids(Apply(all, Query{Type: TypeLightstick})))
	assert.Equal(t, []string{"album"}, ids(Apply(all, Query{Member: "Wonyoung"})))
	assert.Empty(t, Apply(all, Query{Member: "Yujin"}))
}

func TestPredicates(t *testing.T) {
	pre := product("pre", 1, nil)
	pre.Badges[domain.BadgePreOrder] = true
	pob := product("pob", 1, nil)
	pob.HasPOB = true
	rnd := product("rnd", 1, nil)
	rnd.IsRandomVersion = true
	all := []domain.Product{pre, pob, rnd}

	assert.Equal(t, []string{"pre"}, ids(Apply(all, Query{General: GeneralPreOrder})))
	assert.Equal(t, []string{"pob"}, ids(Apply(all, Query{General: GeneralWithPOB})))
	assert.Equal(t, []string{"rnd"}, ids(Apply(all, Query{General: GeneralRandomOnly})))
}

func TestApplyDoesNotModifyInput(t *testing.T) {
	products := []domain.Product{product("b", 2, nil), product("a", 1, nil)}
	_ = Apply(products, Query{General: GeneralPriceLow, Search: "album"})
	assert.Equal(t, []string{"b", "a"}, ids(products))
}

func TestParse(t *testing.T) {
	assert.Equal(t, TypeLightstick, ParseType("lightstick"))
	assert.Equal(t, TypeAll, ParseType("vinyl"))
	assert.Equal(t, GeneralWithPOB, ParseGeneral(" withPOB "))
	assert.Equal(t, GeneralNone, ParseGeneral("cheapest"))
}

func TestReveal(t *testing.T) {
	r := NewReveal(0)
	assert.Equal(t, PageStep, r.Visible)
	r.Reset("ive")
	r.More()
	assert.Equal(t, 32, r.Visible)
	r.Reset("ive")
	assert.Equal(t, 32, r.Visible)
	r.Reset("ateez")
	assert.Equal(t, 16, r.Visible)

	items := []int{1, 2, 3}
	window, more := Window(items, 2)
	assert.Equal(t, []int{1, 2}, window)
	assert.True(t, more)
	window, more = Window(items, 16)
	assert.Len(t, window, 3)
	assert.False(t, more)
}
