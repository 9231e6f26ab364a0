package models

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var titleCaser = cases.Title(language.English)

// NormalizeName produces the lookup key for a player: diacritics stripped,
// lower-cased, inner whitespace collapsed. "Félix  Auger-Aliassime" and
// "felix auger-aliassime" share a key.
func NormalizeName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}
	return strings.ToLower(strings.Join(strings.Fields(folded), " "))
}

// DisplayName title-cases a name for presentation ("jannik sinner" -> "Jannik Sinner").
func DisplayName(name string) string {
	return titleCaser.String(strings.Join(strings.Fields(name), " "))
}

// CacheFileName maps a display name to its cache file stem.
func CacheFileName(name string) string {
	r := strings.NewReplacer(" ", "_", "/", "_", "\\", "_")
	return r.Replace(DisplayName(NormalizeName(name)))
}
