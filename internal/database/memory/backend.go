// Package memory implements the in-process mock backend: a deterministic
// stand-in for a relational store so the panel is demoable without external
// dependencies. Data lives for the process lifetime only.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/webghor/hostpanel/internal/database"
)

var tableNames = []string{
	"clients",
	"domains",
	"hosting",
	"payments",
	"notifications",
	"backup_logs",
}

// Backend stores rows as table name -> row slice behind a RWMutex. Unlike
// its predecessors it applies filters, sorting and pagination honestly and
// reports true affected-row counts from Update and Delete.
type Backend struct {
	mu     sync.RWMutex
	tables map[string][]database.Row
}

var _ database.Connection = (*Backend)(nil)

func New() *Backend {
	b := &Backend{tables: make(map[string][]database.Row, len(tableNames))}
	for _, name := range tableNames {
		b.tables[name] = nil
	}
	return b
}

func (b *Backend) Select(ctx context.Context, q database.Query) ([]database.Row, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	rows, ok := b.tables[q.Table]
	if !ok {
		return nil, &database.BackendError{Op: "select", Err: fmt.Errorf("unknown table %q", q.Table)}
	}

	matched := make([]database.Row, 0, len(rows))
	for _, row := range rows {
		if matchesFilters(row, q.Filters) {
			matched = append(matched, cloneRow(row))
		}
	}

	if q.Join != nil {
		joined, ok := b.tables[q.Join.Table]
		if !ok {
			return nil, &database.BackendError{Op: "select", Err: fmt.Errorf("unknown join table %q", q.Join.Table)}
		}
		for _, row := range matched {
			applyJoin(row, q.Join, joined)
		}
	}

	if q.OrderBy != "" {
		orderBy, desc := q.OrderBy, q.Descending
		sort.SliceStable(matched, func(i, j int) bool {
			if desc {
				return less(matched[j][orderBy], matched[i][orderBy])
			}
			return less(matched[i][orderBy], matched[j][orderBy])
		})
	}

	if q.Offset > 0 {
		if q.Offset >= len(matched) {
			return []database.Row{}, nil
		}
		matched = matched[q.Offset:]
	}
	if q.Limit > 0 && q.Limit < len(matched) {
		matched = matched[:q.Limit]
	}
	return matched, nil
}

func (b *Backend) SelectOne(ctx context.Context, q database.Query) (database.Row, error) {
	q.Limit = 1
	q.Offset = 0
	rows, err := b.Select(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (b *Backend) Count(ctx context.Context, table string, filters map[string]any) (int64, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	rows, ok := b.tables[table]
	if !ok {
		return 0, &database.BackendError{Op: "count", Err: fmt.Errorf("unknown table %q", table)}
	}
	var n int64
	for _, row := range rows {
		if matchesFilters(row, filters) {
			n++
		}
	}
	return n, nil
}

func (b *Backend) Insert(ctx context.Context, table string, row database.Row) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	rows, ok := b.tables[table]
	if !ok {
		return &database.BackendError{Op: "insert", Err: fmt.Errorf("unknown table %q", table)}
	}
	id := row.String("id")
	for _, existing := range rows {
		if existing.String("id") == id {
			return &database.BackendError{Op: "insert", Err: fmt.Errorf("duplicate id %q in %s", id, table)}
		}
	}
	b.tables[table] = append(rows, cloneRow(row))
	return nil
}

func (b *Backend) Update(ctx context.Context, table, id string, patch database.Row) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	rows, ok := b.tables[table]
	if !ok {
		return 0, &database.BackendError{Op: "update", Err: fmt.Errorf("unknown table %q", table)}
	}
	for _, row := range rows {
		if row.String("id") == id {
			for k, v := range patch {
				row[k] = v
			}
			return 1, nil
		}
	}
	return 0, nil
}

func (b *Backend) Delete(ctx context.Context, table, id string) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	rows, ok := b.tables[table]
	if !ok {
		return 0, &database.BackendError{Op: "delete", Err: fmt.Errorf("unknown table %q", table)}
	}
	for i, row := range rows {
		if row.String("id") == id {
			b.tables[table] = append(rows[:i:i], rows[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// Transaction runs fn against the same backend. There is no atomicity or
// rollback here; a failure partway leaves prior statements applied.
func (b *Backend) Transaction(ctx context.Context, fn func(database.Connection) error) error {
	return fn(b)
}

func (b *Backend) Migrate(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, name := range tableNames {
		if _, ok := b.tables[name]; !ok {
			b.tables[name] = nil
		}
	}
	return nil
}

func (b *Backend) Tables(ctx context.Context) ([]string, error) {
	out := make([]string, len(tableNames))
	copy(out, tableNames)
	return out, nil
}

func (b *Backend) Close() error { return nil }

func matchesFilters(row database.Row, filters map[string]any) bool {
	for k, want := range filters {
		if !equalValues(row[k], want) {
			return false
		}
	}
	return true
}

// equalValues compares loosely across the type drift between stored values
// and filter values (string enums, ints vs floats).
func equalValues(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}
	if at, ok := a.(time.Time); ok {
		if bt, ok := b.(time.Time); ok {
			return at.Equal(bt)
		}
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func applyJoin(row database.Row, join *database.Join, foreign []database.Row) {
	local := row.String(join.LocalKey)
	for _, f := range foreign {
		if f.String(join.ForeignKey) == local {
			for col, alias := range join.Columns {
				row[alias] = f[col]
			}
			return
		}
	}
}

func less(a, b any) bool {
	switch av := a.(type) {
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Before(bv)
		}
	case float64:
		if bv, ok := b.(float64); ok {
			return av < bv
		}
	case int:
		if bv, ok := b.(int); ok {
			return av < bv
		}
	case int64:
		if bv, ok := b.(int64); ok {
			return av < bv
		}
	}
	return fmt.Sprint(a) < fmt.Sprint(b)
}

func cloneRow(row database.Row) database.Row {
	out := make(database.Row, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}
