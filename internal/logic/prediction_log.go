package logic

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/courtside/tennis-stats-api/internal/models"
)

const defaultHistoryLimit = 50

// PredictionHistoryRequest filters the prediction log.
type PredictionHistoryRequest struct {
	Player  string          // either side of the matchup
	Surface *models.Surface // nil means every surface
	Since   time.Time
	Until   time.Time
	Limit   int
}

// BuildPredictionHistoryQuery constructs a parameterized ClickHouse query
// over the predictions table, newest first.
func BuildPredictionHistoryQuery(req PredictionHistoryRequest) (string, []interface{}) {
	var b strings.Builder
	var args []interface{}

	b.WriteString(`SELECT generated_at, player1, player2, surface, favorite,
	win_probability_p1, win_probability_p2, confidence, player1_scope, player2_scope
FROM predictions WHERE 1=1`)

	if p := strings.TrimSpace(req.Player); p != "" {
		b.WriteString(" AND (lowerUTF8(player1) = lowerUTF8(?) OR lowerUTF8(player2) = lowerUTF8(?))")
		name := models.DisplayName(p)
		args = append(args, name, name)
	}
	if req.Surface != nil {
		b.WriteString(" AND surface = ?")
		args = append(args, string(*req.Surface))
	}
	if !req.Since.IsZero() {
		b.WriteString(" AND generated_at >= ?")
		args = append(args, req.Since)
	}
	if !req.Until.IsZero() {
		b.WriteString(" AND generated_at <= ?")
		args = append(args, req.Until)
	}

	b.WriteString(" ORDER BY generated_at DESC")

	limit := req.Limit
	if limit <= 0 || limit > 1000 {
		limit = defaultHistoryLimit
	}
	fmt.Fprintf(&b, " LIMIT %d", limit)

	return b.String(), args
}

// PredictionHistory reads predictions back from the log.
type PredictionHistory interface {
	Recent(ctx context.Context, req PredictionHistoryRequest) ([]models.LoggedPrediction, error)
}

type predictionLog struct {
	ch driver.Conn
}

func NewPredictionHistory(ch driver.Conn) PredictionHistory {
	return &predictionLog{ch: ch}
}

func (l *predictionLog) Recent(ctx context.Context, req PredictionHistoryRequest) ([]models.LoggedPrediction, error) {
	query, args := BuildPredictionHistoryQuery(req)

	rows, err := l.ch.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query predictions: %w", err)
	}
	defer rows.Close()

	out := make([]models.LoggedPrediction, 0)
	for rows.Next() {
		var p models.LoggedPrediction
		var scope1, scope2 string
		if err := rows.Scan(
			&p.GeneratedAt, &p.Player1, &p.Player2, &p.Surface, &p.Favorite,
			&p.WinProbabilityP1, &p.WinProbabilityP2, &p.Confidence, &scope1, &scope2,
		); err != nil {
			return nil, fmt.Errorf("scan prediction: %w", err)
		}
		p.Player1Scope, p.Player2Scope = models.MetricScope(scope1), models.MetricScope(scope2)
		out = append(out, p)
	}
	return out, rows.Err()
}
