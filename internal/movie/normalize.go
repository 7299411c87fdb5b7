package movie

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeQuery prepares free-text search input for the API: NFC form,
// surrounding whitespace trimmed and inner runs collapsed. Case is preserved.
func NormalizeQuery(q string) string {
	q = norm.NFC.String(q)
	return strings.Join(strings.Fields(q), " ")
}

// breve is kept when stripping marks: "й" is a letter of its own, not an
// accented "и".
const breve = '\u0306'

// FoldTitle produces a case- and accent-insensitive form of a title used for
// substring matching. "ё" folds to "е" as it is routinely omitted in Russian
// titles; "й" stays distinct from "и".
func FoldTitle(s string) string {
	strip := runes.Predicate(func(r rune) bool {
		return r != breve && unicode.Is(unicode.Mn, r)
	})
	t := transform.Chain(norm.NFD, runes.Remove(strip), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = cases.Fold().String(folded)
	return strings.Join(strings.Fields(folded), " ")
}
