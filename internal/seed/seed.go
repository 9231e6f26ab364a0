// Package seed exposes the built-in sample dataset: recent match histories
// for a handful of players and a default slate of matchups. It is the last
// tier of every acquisition chain and never comes back empty.
package seed

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/courtside/tennis-stats-api/internal/models"
)

//go:embed data/*.json
var dataFS embed.FS

const matchupsFile = "matchups.json"

// Matchup is a sample pairing.
type Matchup struct {
	Player1    string          `json:"player1"`
	Player2    string          `json:"player2"`
	Surface    *models.Surface `json:"surface,omitempty"`
	Tournament string          `json:"tournament,omitempty"`
}

type dataset struct {
	names    []string                        // display names, sorted
	profiles map[string][]models.MatchRecord // normalized name -> records
	display  map[string]string               // normalized name -> display name
	matchups []Matchup
}

var (
	loadOnce sync.Once
	loaded   *dataset
	loadErr  error
)

func load() (*dataset, error) {
	loadOnce.Do(func() {
		loaded, loadErr = parse()
	})
	return loaded, loadErr
}

func parse() (*dataset, error) {
	entries, err := dataFS.ReadDir("data")
	if err != nil {
		return nil, err
	}
	ds := &dataset{
		profiles: make(map[string][]models.MatchRecord),
		display:  make(map[string]string),
	}
	for _, e := range entries {
		raw, err := dataFS.ReadFile(path.Join("data", e.Name()))
		if err != nil {
			return nil, err
		}
		if e.Name() == matchupsFile {
			if err := json.Unmarshal(raw, &ds.matchups); err != nil {
				return nil, fmt.Errorf("seed matchups: %w", err)
			}
			continue
		}
		var records []models.MatchRecord
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, fmt.Errorf("seed %s: %w", e.Name(), err)
		}
		for i, r := range records {
			if err := r.Validate(); err != nil {
				return nil, fmt.Errorf("seed %s record %d: %w", e.Name(), i, err)
			}
		}
		name := strings.ReplaceAll(strings.TrimSuffix(e.Name(), ".json"), "_", " ")
		key := models.NormalizeName(name)
		ds.profiles[key] = records
		ds.display[key] = name
		ds.names = append(ds.names, name)
	}
	sort.Strings(ds.names)
	return ds, nil
}

// Players lists the display names with sample histories.
func Players() []string {
	ds, err := load()
	if err != nil {
		return nil
	}
	return append([]string(nil), ds.names...)
}

// Matchups returns the sample slate.
func Matchups() []Matchup {
	ds, err := load()
	if err != nil {
		return nil
	}
	return append([]Matchup(nil), ds.matchups...)
}

// Lookup finds sample history for name. An exact normalized match wins;
// otherwise a sample player whose name appears as a word of the query
// matches, so "Jannik Sinner" resolves to "Sinner". The returned slice is a copy.
func Lookup(name string) (string, []models.MatchRecord, bool) {
	ds, err := load()
	if err != nil {
		return "", nil, false
	}
	key := models.NormalizeName(name)
	if key == "" {
		return "", nil, false
	}
	if records, ok := ds.profiles[key]; ok {
		return ds.display[key], clone(records), true
	}
	words := strings.Fields(key)
	for _, display := range ds.names {
		candidate := models.NormalizeName(display)
		for _, w := range words {
			if w == candidate {
				return display, clone(ds.profiles[candidate]), true
			}
		}
	}
	return "", nil, false
}

func clone(records []models.MatchRecord) []models.MatchRecord {
	return append([]models.MatchRecord(nil), records...)
}
