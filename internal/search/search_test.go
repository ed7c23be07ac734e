package search

import (
	"testing"

	"github.com/smallbiznis/kstore/internal/catalog/domain"
	"github.com/smallbiznis/kstore/internal/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "cafe", Normalize("Café"))
	assert.Equal(t, "beyonce", Normalize("BEYONCÉ"))
	assert.Equal(t, "stray kids", Normalize("Stray Kids"))
	assert.Equal(t, "", Normalize(""))
}

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 3, Levenshtein("kitten", "sitting"))
	assert.Equal(t, 3, Levenshtein("", "abc"))
	assert.Equal(t, 3, Levenshtein("abc", ""))
	assert.Equal(t, 0, Levenshtein("abc", "abc"))
	assert.Equal(t, 0, Levenshtein("", ""))
	assert.Equal(t, 1, Levenshtein("ø", "o"))
}

func TestCoreTitle(t *testing.T) {
	assert.Equal(t, "NEVER SAY NEVER", CoreTitle("ZEROBASEONE - NEVER SAY NEVER (Digipack ver.)"))
	assert.Equal(t, "DO IT", CoreTitle("Stray Kids - SKZ IT TAPE - DO IT"))
	assert.Equal(t, "I've Mine", CoreTitle("I've Mine"))
}

func TestCandidates(t *testing.T) {
	products := []domain.Product{
		{Artist: "ZEROBASEONE", Title: "ZEROBASEONE - NEVER SAY NEVER (Digipack)"},
		{Artist: "ZEROBASEONE", Title: "ZEROBASEONE - NEVER SAY NEVER (Digipack)"},
		{Artist: "IVE", Title: "IVE - (Ver. A)"},
	}
	assert.Equal(t, []string{
		"ZEROBASEONE",
		"ZEROBASEONE - NEVER SAY NEVER (Digipack)",
		"NEVER SAY NEVER",
		"IVE",
		"IVE - (Ver. A)",
	}, Candidates(products))
}

func TestSuggest_SingleToken(t *testing.T) {
	candidates := []string{"Zerobaseone", "IVE", "ATEEZ"}

	got := Suggest("zerobaseon", candidates)
	require.NotEmpty(t, got)
	assert.Equal(t, "Zerobaseone", got[0])

	assert.Empty(t, Suggest("xyzxyz", candidates))
}

func TestSuggest_MultiTokenRequiresOverlap(t *testing.T) {
	candidates := []string{"NEVER SAY NEVER", "Stray Kids", "SAY MY NAME", "IVE"}

	got := Suggest("nevr say never", candidates)
	require.NotEmpty(t, got)
	assert.Equal(t, "NEVER SAY NEVER", got[0])
	assert.NotContains(t, got, "IVE")
	assert.NotContains(t, got, "Stray Kids")
}

func TestSuggest_TopThreeAndShorterTieBreak(t *testing.T) {
	candidates := []string{"ive secret", "ive mine", "ive", "ive switch", "ive empathy"}
	ranked := Rank("iv", candidates)
	require.NotEmpty(t, ranked)
	assert.Equal(t, "ive", ranked[0].Text)

	got := Suggest("iv", candidates)
	assert.Len(t, got, MaxSuggestions)
}

func TestSuggest_SkipsExactMatchAndEmptyQuery(t *testing.T) {
	assert.Empty(t, Suggest("ive", []string{"IVE"}))
	assert.Empty(t, Suggest("   ", []string{"IVE"}))
}

func TestRankOrdering(t *testing.T) {
	ranked := Rank("stray kids album", []string{"Stray Kids", "Stray Kids ALBUM vol 2", "album"})
	require.Len(t, ranked, 3)
	assert.Equal(t, "Stray Kids ALBUM vol 2", ranked[0].Text)
	assert.Equal(t, 3, ranked[0].Overlap)
	assert.Equal(t, ranked[0].Overlap*3-ranked[0].Distance, ranked[0].Similarity)
}

func TestSearch(t *testing.T) {
	products := []domain.Product{
		{ID: "1", Title: "NEVER SAY NEVER", Artist: "ZEROBASEONE", MainType: domain.MainTypeAlbum},
		{ID: "2", Title: "Café Lightstick", Artist: "IVE", MainType: domain.MainTypeMerch, MerchSubType: domain.MerchSubTypeLightstick},
	}

	res := Search(products, filter.Query{Search: "cafe"})
	require.Len(t, res.Items, 1)
	assert.Equal(t, "2", res.Items[0].ID)
	assert.Empty(t, res.Suggestions)

	res = Search(products, filter.Query{Search: "zerobaseon never"})
	assert.Empty(t, res.Items)
	assert.Contains(t, res.Suggestions, "NEVER SAY NEVER")

	res = Search(products, filter.Query{Search: "never", Type: filter.TypeMerch})
	assert.Empty(t, res.Items)
	assert.Empty(t, res.Suggestions, "text matched, only the type filter removed it")

	res = Search(products, filter.Query{})
	assert.Len(t, res.Items, 2)
}
