package search

import (
	"strings"

	"github.com/smallbiznis/kstore/internal/catalog/domain"
	"github.com/smallbiznis/kstore/internal/filter"
)

// Result is a search outcome. Suggestions is only filled when the text
// query matched nothing.
type Result struct {
	Items       []domain.Product
	Suggestions []string
}

// Matches reports whether the normalized "{title} {artist}" of p contains
// the normalized needle.
func Matches(p domain.Product, needle string) bool {
	return strings.Contains(Normalize(p.Title+" "+p.Artist), Normalize(needle))
}

// Search filters products with q using accent-insensitive matching and
// proposes suggestions when the text query alone finds nothing.
func Search(products []domain.Product, q filter.Query) Result {
	q.Match = Matches
	res := Result{Items: filter.Apply(products, q), Suggestions: []string{}}

	needle := strings.TrimSpace(q.Search)
	if needle == "" {
		return res
	}
	for _, p := range products {
		if Matches(p, needle) {
			return res
		}
	}
	res.Suggestions = Suggest(needle, Candidates(products))
	return res
}
