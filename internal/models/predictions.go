package models

import (
	"time"

	"github.com/google/uuid"
)

// Factor is one weighted contribution to a prediction, from player 1's side.
type Factor struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
	Value  float64 `json:"value"`
	// Neutral is set when the factor fell back to 0.5 for lack of data.
	Neutral bool `json:"neutral"`
}

// Prediction forecasts the outcome of a head-to-head match
type Prediction struct {
	Player1          string      `json:"player1"`
	Player2          string      `json:"player2"`
	Surface          *Surface    `json:"surface,omitempty"`
	Favorite         string      `json:"favorite"` // empty on an exact tie
	WinProbabilityP1 float64     `json:"win_probability_p1"`
	WinProbabilityP2 float64     `json:"win_probability_p2"`
	Confidence       float64     `json:"confidence"` // favorite's probability as a percentage
	Factors          []Factor    `json:"factors"`
	Player1Scope     MetricScope `json:"player1_scope"`
	Player2Scope     MetricScope `json:"player2_scope"`
	GeneratedAt      time.Time   `json:"generated_at"`
}

// MatchPairing is an upcoming or live matchup. It carries names only.
type MatchPairing struct {
	ID         uuid.UUID  `json:"id"`
	Player1    string     `json:"player1"`
	Player2    string     `json:"player2"`
	Surface    *Surface   `json:"surface,omitempty"`
	Tournament string     `json:"tournament,omitempty"`
	StartTime  *time.Time `json:"start_time,omitempty"`
	Source     string     `json:"source"`
}

// pairingNamespace seeds deterministic pairing IDs.
var pairingNamespace = uuid.MustParse("6f1c2a8e-3c1d-4f7a-9a51-2b8e0f4d7c10")

// PairingID derives a stable ID from the day and both normalized names, so the
// same matchup reported by two providers, in either order, maps to the same ID.
func PairingID(day Date, player1, player2 string) uuid.UUID {
	a, b := NormalizeName(player1), NormalizeName(player2)
	if b < a {
		a, b = b, a
	}
	return uuid.NewMD5(pairingNamespace, []byte(day.String()+"|"+a+"|"+b))
}

// TodayMatches is the result of the today's-matchups lookup.
type TodayMatches struct {
	Date     Date           `json:"date"`
	Source   string         `json:"source"`
	Fallback bool           `json:"fallback"` // sample data was used
	Matches  []MatchPairing `json:"matches"`
}

// TodayPrediction pairs a matchup with its forecast.
type TodayPrediction struct {
	Match      MatchPairing `json:"match"`
	Prediction *Prediction  `json:"prediction,omitempty"`
	Error      string       `json:"error,omitempty"`
}

// LoggedPrediction is a prediction read back from the prediction log.
type LoggedPrediction struct {
	GeneratedAt      time.Time   `json:"generated_at"`
	Player1          string      `json:"player1"`
	Player2          string      `json:"player2"`
	Surface          string      `json:"surface,omitempty"`
	Favorite         string      `json:"favorite"`
	WinProbabilityP1 float64     `json:"win_probability_p1"`
	WinProbabilityP2 float64     `json:"win_probability_p2"`
	Confidence       float64     `json:"confidence"`
	Player1Scope     MetricScope `json:"player1_scope"`
	Player2Scope     MetricScope `json:"player2_scope"`
}
