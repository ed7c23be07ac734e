package search

import (
	"math"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/smallbiznis/kstore/internal/catalog/domain"
)

const (
	// MaxSuggestions is how many suggestions are offered at most.
	MaxSuggestions = 3
	// minTokenLength drops short words such as "in" or "of" from the query.
	minTokenLength = 3
	minCoreLength  = 3

	multiTokenCeiling  = 1.0
	singleTokenCeiling = 0.6
)

// Suggestion is a scored candidate.
type Suggestion struct {
	Text       string
	Distance   int
	Overlap    int
	Similarity int
}

// CoreTitle strips a leading "ARTIST - " prefix and a trailing "(...)"
// version note: "ZEROBASEONE - NEVER SAY NEVER (Digipack)" -> "NEVER SAY NEVER".
func CoreTitle(title string) string {
	core := title
	if idx := strings.LastIndex(core, " - "); idx >= 0 {
		core = core[idx+len(" - "):]
	}
	if idx := strings.Index(core, "("); idx >= 0 {
		core = core[:idx]
	}
	return strings.TrimSpace(core)
}

// Candidates collects distinct artist names, full titles and core titles
// in first-seen order.
func Candidates(products []domain.Product) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(products)*2)
	add := func(s string) {
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	for _, p := range products {
		add(p.Artist)
		if p.Title == "" {
			continue
		}
		add(p.Title)
		if core := CoreTitle(p.Title); utf8.RuneCountInString(core) >= minCoreLength {
			add(core)
		}
	}
	return out
}

func tokenize(normalized string) []string {
	var tokens []string
	for _, tok := range strings.Fields(normalized) {
		if utf8.RuneCountInString(tok) >= minTokenLength {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// Rank scores every qualifying candidate and orders them best first:
// more overlapping tokens, then smaller edit distance, then higher
// similarity, then shorter text.
func Rank(query string, candidates []string) []Suggestion {
	q := Normalize(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	tokens := tokenize(q)
	multi := len(tokens) >= 2

	scored := make([]Suggestion, 0, len(candidates))
	for _, original := range candidates {
		c := Normalize(original)
		if c == "" || c == q {
			continue
		}

		overlap := 0
		if multi {
			for _, tok := range tokens {
				if strings.Contains(c, tok) || strings.Contains(tok, c) {
					overlap++
				}
			}
		} else if strings.Contains(c, q) || strings.Contains(q, c) {
			overlap = 1
		}
		if overlap == 0 {
			continue
		}

		dist := Levenshtein(q, c)
		scored = append(scored, Suggestion{
			Text:       original,
			Distance:   dist,
			Overlap:    overlap,
			Similarity: overlap*3 - dist,
		})
	}

	slices.SortStableFunc(scored, func(a, b Suggestion) int {
		if a.Overlap != b.Overlap {
			return b.Overlap - a.Overlap
		}
		if a.Distance != b.Distance {
			return a.Distance - b.Distance
		}
		if a.Similarity != b.Similarity {
			return b.Similarity - a.Similarity
		}
		return utf8.RuneCountInString(a.Text) - utf8.RuneCountInString(b.Text)
	})
	return scored
}

// Suggest returns up to MaxSuggestions candidates for query. The whole set
// is dropped when even the best one is further away than a ceiling
// proportional to the query length.
func Suggest(query string, candidates []string) []string {
	ranked := Rank(query, candidates)
	if len(ranked) == 0 {
		return []string{}
	}
	if len(ranked) > MaxSuggestions {
		ranked = ranked[:MaxSuggestions]
	}

	q := Normalize(strings.TrimSpace(query))
	factor := singleTokenCeiling
	if len(tokenize(q)) >= 2 {
		factor = multiTokenCeiling
	}
	ceiling := int(math.Ceil(float64(utf8.RuneCountInString(q)) * factor))
	if ranked[0].Distance > ceiling {
		return []string{}
	}

	out := make([]string, 0, len(ranked))
	for _, s := range ranked {
		out = append(out, s.Text)
	}
	return out
}
