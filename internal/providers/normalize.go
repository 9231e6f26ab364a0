package providers

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/courtside/tennis-stats-api/internal/models"
)

var (
	leadingRank  = regexp.MustCompile(`^\d+\s*\.?\s*`)
	parenthetics = regexp.MustCompile(`\s*\(.*?\)|\s*\[.*?\]`)
	noiseWords   = regexp.MustCompile(`(?i)\b(match|vs|schedule|time|date|court|round|final|semi|game|live|score|est|utc|gmt|pst|cet|rank)\b`)
)

// CleanPlayerName strips schedule noise from a scraped or provider name:
// ranking prefixes, bracketed seeds and countries, and stray schedule words.
func CleanPlayerName(name string) string {
	name = strings.TrimSpace(name)
	name = leadingRank.ReplaceAllString(name, "")
	name = parenthetics.ReplaceAllString(name, "")
	name = noiseWords.ReplaceAllString(name, "")
	name = strings.Join(strings.Fields(name), " ")
	if isSingleCase(name) {
		name = models.DisplayName(name)
	}
	return name
}

// isSingleCase reports whether the letters of s are all upper or all lower
// case, the shapes that benefit from title-casing.
func isSingleCase(s string) bool {
	var upper, lower bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		}
	}
	return upper != lower
}

// NormalizePairings maps provider output onto the uniform pairing shape.
// Entries missing a name or naming one player twice are dropped on their
// own; duplicates of the same matchup keep the first occurrence.
func NormalizePairings(day models.Date, source string, raw []models.MatchPairing) []models.MatchPairing {
	out := make([]models.MatchPairing, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	dropped := 0

	for _, p := range raw {
		p1, p2 := CleanPlayerName(p.Player1), CleanPlayerName(p.Player2)
		if !plausibleName(p1) || !plausibleName(p2) || models.NormalizeName(p1) == models.NormalizeName(p2) {
			dropped++
			continue
		}

		id := models.PairingID(day, p1, p2)
		if seen[id.String()] {
			continue
		}
		seen[id.String()] = true

		p.ID = id
		p.Player1, p.Player2 = p1, p2
		p.Source = source
		p.Tournament = strings.TrimSpace(p.Tournament)
		out = append(out, p)
	}

	if dropped > 0 {
		discardedRecords.WithLabelValues(source).Add(float64(dropped))
	}
	return out
}

func plausibleName(name string) bool {
	n := utf8.RuneCountInString(name)
	return n >= 2 && n <= 60
}
