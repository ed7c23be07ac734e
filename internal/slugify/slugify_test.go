package slugify

import (
	"regexp"
	"testing"

	"github.com/gosimple/slug"
	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	cases := map[string]string{
		"Stray Kids":            "stray-kids",
		"  LE SSERAFIM  ":       "le-sserafim",
		"Populært lige nu":      "populaert-lige-nu",
		"På tilbud":             "paa-tilbud",
		"Blød Ø":                "bloed-oe",
		"ZEROBASEONE - NEVER":   "zerobaseone-never",
		"--(G)I-DLE--":          "g-i-dle",
		"IVE":                   "ive",
		"":                      "",
		"!!!":                   "",
		"Ateez  &  Stray  Kids": "ateez-stray-kids",
	}
	for in, want := range cases {
		assert.Equal(t, want, Make(in), "input %q", in)
	}
}

func TestMakeIsIdempotentAndClean(t *testing.T) {
	clean := regexp.MustCompile(`^[a-z0-9-]*$`)
	inputs := []string{
		"Stray Kids", "Øresund Åbning", "  --a--b--  ", "BLACKPINK (Pink ver.)",
		"한국어 앨범", "NewJeans 'Get Up'", "x", "Ærø", "12 34",
	}
	for _, in := range inputs {
		once := Make(in)
		assert.Equal(t, once, Make(once), "input %q", in)
		assert.Regexp(t, clean, once)
		assert.NotContains(t, once, "--")
		if once != "" {
			assert.NotEqual(t, byte('-'), once[0])
			assert.NotEqual(t, byte('-'), once[len(once)-1])
			assert.True(t, slug.IsSlug(once))
		}
	}
}

func TestResolve(t *testing.T) {
	assert.Equal(t, "stray-kids", Resolve("stray-kids", "Whatever"))
	assert.Equal(t, "stray-kids", Resolve("", "Stray Kids"))
	assert.Equal(t, "stray-kids", Resolve("Stray Kids!", "Stray Kids"))
}
