package providers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/courtside/tennis-stats-api/internal/models"
)

// wireName accepts a player given either as a bare string or as an object
// carrying a name.
type wireName string

func (n *wireName) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = wireName(s)
		return nil
	}
	var obj struct {
		Name        string `json:"name"`
		FullName    string `json:"full_name"`
		DisplayName string `json:"displayName"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	switch {
	case obj.Name != "":
		*n = wireName(obj.Name)
	case obj.FullName != "":
		*n = wireName(obj.FullName)
	default:
		*n = wireName(obj.DisplayName)
	}
	return nil
}

// wireMatch is the union of the matchup shapes the live APIs return.
type wireMatch struct {
	Sport        string     `json:"sport"`
	Player1      wireName   `json:"player1"`
	Player2      wireName   `json:"player2"`
	Home         wireName   `json:"home"`
	Away         wireName   `json:"away"`
	Competitors  []wireName `json:"competitors"`
	Participants []wireName `json:"participants"`
	Players      []wireName `json:"players"`
	Tournament   wireName   `json:"tournament"`
	League       wireName   `json:"league"`
	Surface      string     `json:"surface"`
	StartTime    string     `json:"start_time"`
	Match        *wireMatch `json:"match"`
}

// names returns the two players, preferring explicit fields over lists.
func (m *wireMatch) names() (string, string) {
	if m.Match != nil {
		if p1, p2 := m.Match.names(); p1 != "" && p2 != "" {
			return p1, p2
		}
	}
	pairs := [][2]wireName{
		{m.Player1, m.Player2},
		{m.Home, m.Away},
	}
	for _, list := range [][]wireName{m.Competitors, m.Participants, m.Players} {
		if len(list) >= 2 {
			pairs = append(pairs, [2]wireName{list[0], list[1]})
		}
	}
	for _, p := range pairs {
		if p[0] != "" && p[1] != "" {
			return string(p[0]), string(p[1])
		}
	}
	return "", ""
}

func (m *wireMatch) pairing() (models.MatchPairing, bool) {
	p1, p2 := m.names()
	if strings.TrimSpace(p1) == "" || strings.TrimSpace(p2) == "" {
		return models.MatchPairing{}, false
	}
	out := models.MatchPairing{Player1: p1, Player2: p2}

	tournament, surface, start := m.Tournament, m.Surface, m.StartTime
	if m.Match != nil {
		if tournament == "" {
			tournament = m.Match.Tournament
		}
		if surface == "" {
			surface = m.Match.Surface
		}
		if start == "" {
			start = m.Match.StartTime
		}
	}
	if tournament == "" {
		tournament = m.League
	}
	out.Tournament = string(tournament)

	if s, err := models.ParseSurface(surface); err == nil {
		out.Surface = &s
	}
	if t, err := time.Parse(time.RFC3339, start); err == nil {
		out.StartTime = &t
	}
	return out, true
}

// decodePairings decodes each element of a list on its own so one
// malformed entry does not spoil the rest. It returns the pairings and the
// number of entries dropped.
func decodePairings(items []json.RawMessage, sport string) ([]models.MatchPairing, int) {
	out := make([]models.MatchPairing, 0, len(items))
	dropped := 0
	for _, raw := range items {
		var m wireMatch
		if err := json.Unmarshal(raw, &m); err != nil {
			dropped++
			continue
		}
		if sport != "" && m.Sport != "" && !strings.EqualFold(m.Sport, sport) {
			continue
		}
		p, ok := m.pairing()
		if !ok {
			dropped++
			continue
		}
		out = append(out, p)
	}
	return out, dropped
}

// listField returns the first of keys whose value is a JSON array. A body
// that is neither an object nor an array is an error; an object without any
// of keys yields no items.
func listField(body []byte, keys ...string) ([]json.RawMessage, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		// Some endpoints return a bare array.
		var list []json.RawMessage
		if json.Unmarshal(body, &list) == nil {
			return list, nil
		}
		return nil, fmt.Errorf("decode response: %w", err)
	}
	for _, k := range keys {
		raw, ok := envelope[k]
		if !ok {
			continue
		}
		var list []json.RawMessage
		if json.Unmarshal(raw, &list) == nil {
			return list, nil
		}
	}
	return nil, nil
}
