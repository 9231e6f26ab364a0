package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/courtside/tennis-stats-api/internal/models"
)

// PgPool is the subset of pgxpool.Pool the store uses.
type PgPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

const playerMatchesSchema = `
CREATE TABLE IF NOT EXISTS player_matches (
	player_key     TEXT        NOT NULL,
	match_date     DATE        NOT NULL,
	opponent       TEXT        NOT NULL,
	opponent_name  TEXT        NOT NULL,
	surface        TEXT        NOT NULL,
	result         CHAR(1)     NOT NULL,
	games_won      INT         NOT NULL,
	games_lost     INT         NOT NULL,
	sets_won       INT         NOT NULL,
	sets_lost      INT         NOT NULL,
	aces           INT         NOT NULL,
	double_faults  INT         NOT NULL,
	winners        INT         NOT NULL,
	tiebreaks_won  INT         NOT NULL,
	tiebreaks_lost INT         NOT NULL,
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (player_key, match_date, opponent)
)`

const upsertPlayerMatch = `
INSERT INTO player_matches (
	player_key, match_date, opponent, opponent_name, surface, result,
	games_won, games_lost, sets_won, sets_lost, aces, double_faults, winners,
	tiebreaks_won, tiebreaks_lost, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW())
ON CONFLICT (player_key, match_date, opponent) DO UPDATE SET
	opponent_name = EXCLUDED.opponent_name,
	surface = EXCLUDED.surface,
	result = EXCLUDED.result,
	games_won = EXCLUDED.games_won,
	games_lost = EXCLUDED.games_lost,
	sets_won = EXCLUDED.sets_won,
	sets_lost = EXCLUDED.sets_lost,
	aces = EXCLUDED.aces,
	double_faults = EXCLUDED.double_faults,
	winners = EXCLUDED.winners,
	tiebreaks_won = EXCLUDED.tiebreaks_won,
	tiebreaks_lost = EXCLUDED.tiebreaks_lost,
	updated_at = NOW()`

const deletePlayerMatches = `DELETE FROM player_matches WHERE player_key = $1`

const selectPlayerMatches = `
SELECT match_date, opponent_name, surface, result,
	games_won, games_lost, sets_won, sets_lost, aces, double_faults, winners,
	tiebreaks_won, tiebreaks_lost
FROM player_matches
WHERE player_key = $1
ORDER BY match_date DESC, opponent
LIMIT $2`

// PostgresStore keeps one row per match in player_matches.
type PostgresStore struct {
	pool PgPool
}

func NewPostgresStore(pool PgPool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the table if it is missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, playerMatchesSchema); err != nil {
		return fmt.Errorf("create player_matches: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context, player string) ([]models.MatchRecord, error) {
	rows, err := s.pool.Query(ctx, selectPlayerMatches, models.NormalizeName(player), models.RetentionWindow)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.MatchRecord
	for rows.Next() {
		var (
			rec     models.MatchRecord
			date    time.Time
			surface string
			result  string
		)
		if err := rows.Scan(&date, &rec.Opponent, &surface, &result,
			&rec.GamesWon, &rec.GamesLost, &rec.SetsWon, &rec.SetsLost,
			&rec.Aces, &rec.DoubleFaults, &rec.Winners,
			&rec.TiebreaksWon, &rec.TiebreaksLost); err != nil {
			return nil, err
		}
		rec.Date = models.NewDate(date.Year(), date.Month(), date.Day())
		rec.Surface = models.Surface(surface)
		rec.Result = models.Result(result)
		if rec.Validate() != nil {
			continue
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNotStored
	}
	return records, nil
}

// Save replaces the player's rows with records in one transaction, so the
// table never holds more than the retention window for a player.
func (s *PostgresStore) Save(ctx context.Context, player string, records []models.MatchRecord) error {
	if len(records) > models.RetentionWindow {
		records = Merge(nil, records)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	key := models.NormalizeName(player)
	if _, err := tx.Exec(ctx, deletePlayerMatches, key); err != nil {
		return fmt.Errorf("clear %s: %w", key, err)
	}
	for _, r := range records {
		if _, err := tx.Exec(ctx, upsertPlayerMatch,
			key, r.Date.Time, models.NormalizeName(r.Opponent), r.Opponent, string(r.Surface), string(r.Result),
			r.GamesWon, r.GamesLost, r.SetsWon, r.SetsLost, r.Aces, r.DoubleFaults, r.Winners,
			r.TiebreaksWon, r.TiebreaksLost,
		); err != nil {
			return fmt.Errorf("upsert %s: %w", r.Key(), err)
		}
	}
	return tx.Commit(ctx)
}
