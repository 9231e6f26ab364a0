package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/courtside/tennis-stats-api/internal/models"
)

// FileStore keeps one JSON file per player under <dir>/players.
type FileStore struct {
	dir    string
	logger *zap.SugaredLogger
}

func NewFileStore(dir string, logger *zap.Logger) (*FileStore, error) {
	players := filepath.Join(dir, "players")
	if err := os.MkdirAll(players, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &FileStore{dir: players, logger: logger.Sugar()}, nil
}

// Path returns the file holding player's history.
func (s *FileStore) Path(player string) string {
	return filepath.Join(s.dir, models.CacheFileName(player)+".json")
}

func (s *FileStore) Load(_ context.Context, player string) ([]models.MatchRecord, error) {
	data, err := os.ReadFile(s.Path(player))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotStored
	}
	if err != nil {
		return nil, err
	}
	records, dropped, err := decodeRecords(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path(player), err)
	}
	if dropped > 0 {
		s.logger.Warnw("Dropped unreadable cached records", "player", player, "dropped", dropped)
	}
	return records, nil
}

// Save writes the history to a temp file and renames it into place, so a
// reader never sees a partial file.
func (s *FileStore) Save(_ context.Context, player string, records []models.MatchRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".profile-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.Path(player))
}
