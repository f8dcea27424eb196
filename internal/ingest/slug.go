package ingest

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrEmptySlug reports a title with no letters or digits to build a filename from.
var ErrEmptySlug = errors.New("title has no letters or digits")

const slugSeparator = '-'

var lowerCaser = cases.Lower(language.Und)

// Slugify lowercases title, folds diacritics, replaces every run of
// non-alphanumeric runes with a single '-', and trims separators from both
// ends. "Episode One: Intro!" becomes "episode-one-intro".
func Slugify(title string) (string, error) {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), title)
	if err != nil {
		folded = title
	}
	folded = lowerCaser.String(folded)

	var b strings.Builder
	b.Grow(len(folded))
	pendingSep := false
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteRune(slugSeparator)
			}
			pendingSep = false
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		pendingSep = true
	}
	if b.Len() == 0 {
		return "", ErrEmptySlug
	}
	return b.String(), nil
}
