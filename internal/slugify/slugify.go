// Package slugify derives the public identifiers used for groups, artists
// and category shelves.
package slugify

import (
	"regexp"
	"strings"

	"github.com/gosimple/slug"
)

var (
	danishLetters = strings.NewReplacer("æ", "ae", "ø", "oe", "å", "aa")
	nonAlnumRun   = regexp.MustCompile(`[^a-z0-9]+`)
)

// Make lower-cases text, spells out æ, ø and å, replaces every run of
// characters outside [a-z0-9] with a single hyphen and trims hyphens from
// both ends. Make(Make(s)) == Make(s) for every s.
func Make(text string) string {
	s := strings.TrimSpace(strings.ToLower(text))
	s = danishLetters.Replace(s)
	s = nonAlnumRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Resolve returns stored when it is a usable slug and otherwise derives one
// from name. Older records may carry no slug or a hand-typed one.
func Resolve(stored, name string) string {
	stored = strings.TrimSpace(stored)
	if stored != "" && slug.IsSlug(stored) {
		return stored
	}
	return Make(name)
}
