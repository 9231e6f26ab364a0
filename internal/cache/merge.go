package cache

import (
	"sort"

	"github.com/courtside/tennis-stats-api/internal/models"
)

// Merge combines a stored history with freshly fetched records. Records are
// identified by date and normalized opponent; a fetched record replaces a
// stored one with the same key. The result is sorted most recent first and
// truncated to the retention window.
func Merge(existing, fetched []models.MatchRecord) []models.MatchRecord {
	byKey := make(map[string]models.MatchRecord, len(existing)+len(fetched))
	for _, r := range existing {
		byKey[r.Key()] = r
	}
	for _, r := range fetched {
		byKey[r.Key()] = r
	}

	out := make([]models.MatchRecord, 0, len(byKey))
	for _, r := range byKey {
		out = append(out, r)
	}
	sortRecent(out)
	if len(out) > models.RetentionWindow {
		out = out[:models.RetentionWindow]
	}
	return out
}

// sortRecent orders by date descending, then by opponent so equal dates
// come out the same way every time.
func sortRecent(records []models.MatchRecord) {
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.Date.Equal(b.Date.Time) {
			return a.Date.After(b.Date.Time)
		}
		return models.NormalizeName(a.Opponent) < models.NormalizeName(b.Opponent)
	})
}
