package worker

import (
	"context"
	"errors"
	"sync"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/courtside/tennis-stats-api/internal/models"
)

// MockRefresher implements Refresher for testing
type MockRefresher struct {
	RefreshFunc func(ctx context.Context, name string) (*models.PlayerProfile, error)

	mu    sync.Mutex
	calls []string
}

func (m *MockRefresher) Refresh(ctx context.Context, name string) (*models.PlayerProfile, error) {
	m.mu.Lock()
	m.calls = append(m.calls, name)
	m.mu.Unlock()
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, name)
	}
	return &models.PlayerProfile{Name: name, Key: models.NormalizeName(name)}, nil
}

func (m *MockRefresher) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// MockClickHouseConn implements driver.Conn for testing
type MockClickHouseConn struct {
	driver.Conn
	PrepareErr error
	SendErr    error

	mu      sync.Mutex
	execs   []string
	batches [][][]any
}

func (m *MockClickHouseConn) Exec(ctx context.Context, query string, args ...any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.execs = append(m.execs, query)
	return nil
}

func (m *MockClickHouseConn) PrepareBatch(ctx context.Context, query string, opts ...driver.PrepareBatchOption) (driver.Batch, error) {
	if m.PrepareErr != nil {
		return nil, m.PrepareErr
	}
	return &MockBatch{conn: m}, nil
}

// Batches returns the rows of every successfully sent batch.
func (m *MockClickHouseConn) Batches() [][][]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][][]any(nil), m.batches...)
}

// MockBatch implements driver.Batch and hands its rows to the conn on Send
type MockBatch struct {
	conn *MockClickHouseConn
	rows [][]any
	sent bool
}

func (m *MockBatch) IsSent() bool {
	return m.sent
}

func (m *MockBatch) Rows() int {
	return len(m.rows)
}

func (m *MockBatch) Append(v ...any) error {
	m.rows = append(m.rows, v)
	return nil
}

func (m *MockBatch) AppendStruct(v any) error {
	return errors.New("not supported")
}

func (m *MockBatch) Column(int) driver.BatchColumn {
	return nil
}

func (m *MockBatch) Send() error {
	if m.conn.SendErr != nil {
		return m.conn.SendErr
	}
	m.sent = true
	m.conn.mu.Lock()
	m.conn.batches = append(m.conn.batches, m.rows)
	m.conn.mu.Unlock()
	return nil
}

func (m *MockBatch) Flush() error {
	return nil
}

func (m *MockBatch) Abort() error {
	return nil
}
