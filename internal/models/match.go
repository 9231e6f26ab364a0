package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// RetentionWindow is the number of most recent matches kept per player.
const RetentionWindow = 25

// Surface is the court type a match was played on.
type Surface string

const (
	SurfaceHard   Surface = "Hard"
	SurfaceClay   Surface = "Clay"
	SurfaceGrass  Surface = "Grass"
	SurfaceIndoor Surface = "Indoor"
)

// Surfaces lists every known surface in display order.
var Surfaces = []Surface{SurfaceHard, SurfaceClay, SurfaceGrass, SurfaceIndoor}

// ParseSurface resolves a surface name case-insensitively.
func ParseSurface(s string) (Surface, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hard":
		return SurfaceHard, nil
	case "clay":
		return SurfaceClay, nil
	case "grass":
		return SurfaceGrass, nil
	case "indoor", "indoors", "carpet", "i.hard", "indoor hard":
		return SurfaceIndoor, nil
	}
	return "", fmt.Errorf("unknown surface %q", s)
}

// Valid reports whether s is one of the known surfaces.
func (s Surface) Valid() bool {
	switch s {
	case SurfaceHard, SurfaceClay, SurfaceGrass, SurfaceIndoor:
		return true
	}
	return false
}

func (s *Surface) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if parsed, err := ParseSurface(raw); err == nil {
		*s = parsed
		return nil
	}
	// Unknown surfaces are kept verbatim and rejected by Validate.
	*s = Surface(raw)
	return nil
}

// Result is the outcome of a match from the tracked player's side.
type Result string

const (
	ResultWin  Result = "W"
	ResultLoss Result = "L"
)

func (r *Result) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "w", "win", "won":
		*r = ResultWin
	case "l", "loss", "lost":
		*r = ResultLoss
	default:
		*r = Result(raw)
	}
	return nil
}

// Date is a calendar date serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

var dateLayouts = []string{dateLayout, "20060102", "02-Jan-2006", "02.01.2006", "Jan 2, 2006", time.RFC3339}

// NewDate returns the UTC calendar date y-m-d.
func NewDate(y int, m time.Month, d int) Date {
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts the canonical layout plus the formats scraped pages use.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDate(t.Year(), t.Month(), t.Day()), nil
		}
	}
	return Date{}, fmt.Errorf("unrecognized date %q", s)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MatchRecord is one completed match from the tracked player's perspective.
// The JSON shape is the on-disk cache contract.
type MatchRecord struct {
	Date          Date    `json:"date"`
	Opponent      string  `json:"opponent"`
	Surface       Surface `json:"surface"`
	Result        Result  `json:"result"`
	GamesWon      int     `json:"games_won"`
	GamesLost     int     `json:"games_lost"`
	SetsWon       int     `json:"sets_won"`
	SetsLost      int     `json:"sets_lost"`
	Aces          int     `json:"aces"`
	DoubleFaults  int     `json:"double_faults"`
	Winners       int     `json:"winners"`
	TiebreaksWon  int     `json:"tiebreaks_won"`
	TiebreaksLost int     `json:"tiebreaks_lost"`
}

var (
	ErrNegativeStat    = errors.New("negative statistic")
	ErrSetsExceedGames = errors.New("more sets than games")
	ErrResultMismatch  = errors.New("result does not match sets")
)

func (m MatchRecord) TotalGames() int     { return m.GamesWon + m.GamesLost }
func (m MatchRecord) TotalSets() int      { return m.SetsWon + m.SetsLost }
func (m MatchRecord) TotalTiebreaks() int { return m.TiebreaksWon + m.TiebreaksLost }
func (m MatchRecord) Won() bool           { return m.Result == ResultWin }

// Key identifies a match for deduplication: date plus normalized opponent.
func (m MatchRecord) Key() string {
	return m.Date.String() + "|" + NormalizeName(m.Opponent)
}

// Validate checks the structural invariants of a record.
func (m MatchRecord) Validate() error {
	if m.Date.IsZero() {
		return errors.New("missing date")
	}
	if strings.TrimSpace(m.Opponent) == "" {
		return errors.New("missing opponent")
	}
	if !m.Surface.Valid() {
		return fmt.Errorf("unknown surface %q", m.Surface)
	}
	if m.Result != ResultWin && m.Result != ResultLoss {
		return fmt.Errorf("unknown result %q", m.Result)
	}
	for _, v := range []int{m.GamesWon, m.GamesLost, m.SetsWon, m.SetsLost, m.Aces,
		m.DoubleFaults, m.Winners, m.TiebreaksWon, m.TiebreaksLost} {
		if v < 0 {
			return ErrNegativeStat
		}
	}
	if m.TotalGames() < m.TotalSets() {
		return ErrSetsExceedGames
	}
	if m.Won() != (m.SetsWon > m.SetsLost) {
		return ErrResultMismatch
	}
	return nil
}
