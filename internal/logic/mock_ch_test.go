package logic

import (
	"context"
	"reflect"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

type MockConn struct {
	driver.Conn
	QueryErr   error
	Rows       [][]interface{}
	QueryCalls int
	LastQuery  string
	LastArgs   []interface{}
}

func (m *MockConn) Query(ctx context.Context, query string, args ...interface{}) (driver.Rows, error) {
	m.QueryCalls++
	m.LastQuery, m.LastArgs = query, args
	if m.QueryErr != nil {
		return nil, m.QueryErr
	}
	return &MockRows{rows: m.Rows}, nil
}

type MockRows struct {
	driver.Rows
	rows     [][]interface{}
	rowIndex int
}

func (m *MockRows) Next() bool {
	m.rowIndex++
	return m.rowIndex <= len(m.rows)
}

func (m *MockRows) Scan(dest ...interface{}) error {
	row := m.rows[m.rowIndex-1]
	for i := range dest {
		assign(dest[i], row[i])
	}
	return nil
}

func (m *MockRows) Close() error {
	return nil
}

func (m *MockRows) Err() error {
	return nil
}

func assign(dest interface{}, val interface{}) {
	// Simple reflection to assign value to pointer
	v := reflect.ValueOf(dest).Elem()
	v.Set(reflect.ValueOf(val))
}

func loggedRow(at time.Time, p1, p2, surface string, prob float64) []interface{} {
	return []interface{}{at, p1, p2, surface, p1, prob, 1 - prob, prob * 100, "surface", "overall"}
}
