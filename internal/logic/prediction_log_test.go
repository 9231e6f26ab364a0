package logic

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtside/tennis-stats-api/internal/models"
)

func TestBuildPredictionHistoryQuery(t *testing.T) {
	clay := models.SurfaceClay
	since := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		req       PredictionHistoryRequest
		contains  []string
		wantArgs  []interface{}
		wantLimit string
	}{
		{
			name:      "No filters",
			req:       PredictionHistoryRequest{},
			contains:  []string{"FROM predictions WHERE 1=1 ORDER BY generated_at DESC"},
			wantLimit: "LIMIT 50",
		},
		{
			name:      "Player and surface",
			req:       PredictionHistoryRequest{Player: "  jannik   sinner ", Surface: &clay, Limit: 10},
			contains:  []string{"lowerUTF8(player1) = lowerUTF8(?)", "AND surface = ?"},
			wantArgs:  []interface{}{"Jannik Sinner", "Jannik Sinner", "Clay"},
			wantLimit: "LIMIT 10",
		},
		{
			name:      "Time window and oversized limit",
			req:       PredictionHistoryRequest{Since: since, Limit: 5000},
			contains:  []string{"generated_at >= ?"},
			wantArgs:  []interface{}{since},
			wantLimit: "LIMIT 50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := BuildPredictionHistoryQuery(tt.req)
			for _, c := range tt.contains {
				assert.Contains(t, query, c)
			}
			assert.Equal(t, tt.wantArgs, args)
			assert.True(t, strings.HasSuffix(query, tt.wantLimit), query)
		})
	}
}

func TestPredictionHistoryRecent(t *testing.T) {
	at := time.Date(2026, time.May, 2, 10, 0, 0, 0, time.UTC)
	conn := &MockConn{Rows: [][]interface{}{
		loggedRow(at, "Jannik Sinner", "Carlos Alcaraz", "Hard", 0.512),
		loggedRow(at.Add(-time.Hour), "Jannik Sinner", "Daniil Medvedev", "", 0.6),
	}}

	got, err := NewPredictionHistory(conn).Recent(context.Background(), PredictionHistoryRequest{Player: "Sinner"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1, conn.QueryCalls)

	assert.Equal(t, "Carlos Alcaraz", got[0].Player2)
	assert.Equal(t, models.ScopeSurface, got[0].Player1Scope)
	assert.InDelta(t, 0.488, got[0].WinProbabilityP2, 1e-9)
	assert.Empty(t, got[1].Surface)
}

func TestPredictionHistoryQueryError(t *testing.T) {
	conn := &MockConn{QueryErr: errors.New("connection refused")}

	_, err := NewPredictionHistory(conn).Recent(context.Background(), PredictionHistoryRequest{})
	assert.ErrorContains(t, err, "query predictions")
}

func TestPredictionHistoryEmpty(t *testing.T) {
	got, err := NewPredictionHistory(&MockConn{}).Recent(context.Background(), PredictionHistoryRequest{})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
