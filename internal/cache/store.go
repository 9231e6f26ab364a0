package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/courtside/tennis-stats-api/internal/models"
)

// Store persists player histories across restarts. Load returns
// ErrNotStored when nothing is held for the player.
type Store interface {
	Load(ctx context.Context, player string) ([]models.MatchRecord, error)
	Save(ctx context.Context, player string, records []models.MatchRecord) error
}

// decodeRecords reads a JSON array of records one element at a time,
// dropping entries that fail to decode or validate. It returns the kept
// records and how many were dropped.
func decodeRecords(data []byte) ([]models.MatchRecord, int, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, fmt.Errorf("decode profile: %w", err)
	}
	out := make([]models.MatchRecord, 0, len(raw))
	dropped := 0
	for _, item := range raw {
		var rec models.MatchRecord
		if err := json.Unmarshal(item, &rec); err != nil || rec.Validate() != nil {
			dropped++
			continue
		}
		out = append(out, rec)
	}
	return out, dropped, nil
}
