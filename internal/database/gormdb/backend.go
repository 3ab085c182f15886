// Package gormdb implements the SQL-backed Connection on top of gorm.
// The same backend serves two configurations: the hosted Supabase/Postgres
// adapter (postgres dialector) and the local file path (sqlite dialector).
// Typed Query criteria translate directly into gorm clauses, so no SQL text
// is ever re-parsed.
package gormdb

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/webghor/hostpanel/internal/database"
	"github.com/webghor/hostpanel/internal/entities"
)

var tableNames = []string{
	"clients",
	"domains",
	"hosting",
	"payments",
	"notifications",
	"backup_logs",
}

type Backend struct {
	db *gorm.DB
}

var _ database.Connection = (*Backend)(nil)

// OpenSQLite opens a file-backed sqlite database.
func OpenSQLite(path string) (*Backend, error) {
	return open(sqlite.Open(path))
}

// OpenPostgres connects to a hosted Postgres instance by DSN.
func OpenPostgres(dsn string) (*Backend, error) {
	return open(postgres.Open(dsn))
}

func open(dialector gorm.Dialector) (*Backend, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, &database.BackendError{Op: "open", Err: err}
	}
	return &Backend{db: db}, nil
}

func (b *Backend) Select(ctx context.Context, q database.Query) ([]database.Row, error) {
	tx := b.apply(ctx, q)

	if q.OrderBy != "" {
		dir := "ASC"
		if q.Descending {
			dir = "DESC"
		}
		tx = tx.Order(fmt.Sprintf("%s.%s %s", q.Table, q.OrderBy, dir))
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	if q.Offset > 0 {
		tx = tx.Offset(q.Offset)
	}

	var raw []map[string]any
	if err := tx.Find(&raw).Error; err != nil {
		return nil, &database.BackendError{Op: "select " + q.Table, Err: err}
	}
	rows := make([]database.Row, len(raw))
	for i, r := range raw {
		rows[i] = database.Row(r)
	}
	return rows, nil
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
	tx := b.apply(ctx, database.Query{Table: table, Filters: filters})
	var n int64
	if err := tx.Count(&n).Error; err != nil {
		return 0, &database.BackendError{Op: "count " + table, Err: err}
	}
	return n, nil
}

func (b *Backend) Insert(ctx context.Context, table string, row database.Row) error {
	err := b.db.WithContext(ctx).Table(table).Create(map[string]any(row)).Error
	if err != nil {
		return &database.BackendError{Op: "insert " + table, Err: err}
	}
	return nil
}

func (b *Backend) Update(ctx context.Context, table, id string, patch database.Row) (int64, error) {
	tx := b.db.WithContext(ctx).Table(table).Where("id = ?", id).Updates(map[string]any(patch))
	if tx.Error != nil {
		return 0, &database.BackendError{Op: "update " + table, Err: tx.Error}
	}
	return tx.RowsAffected, nil
}

func (b *Backend) Delete(ctx context.Context, table, id string) (int64, error) {
	tx := b.db.WithContext(ctx).Exec(fmt.Sprintf("DELETE FROM %s WHERE id = ?", table), id)
	if tx.Error != nil {
		return 0, &database.BackendError{Op: "delete " + table, Err: tx.Error}
	}
	return tx.RowsAffected, nil
}

func (b *Backend) Transaction(ctx context.Context, fn func(database.Connection) error) error {
	return b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Backend{db: tx})
	})
}

func (b *Backend) Migrate(ctx context.Context) error {
	err := b.db.WithContext(ctx).AutoMigrate(
		&entities.Client{},
		&entities.Domain{},
		&entities.Hosting{},
		&entities.Payment{},
		&entities.Notification{},
		&entities.BackupLog{},
	)
	if err != nil {
		return &database.BackendError{Op: "migrate", Err: err}
	}
	return nil
}

func (b *Backend) Tables(ctx context.Context) ([]string, error) {
	out := make([]string, len(tableNames))
	copy(out, tableNames)
	return out, nil
}

func (b *Backend) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// apply builds the shared FROM/JOIN/WHERE prefix for reads. Column names in
// filters and joins come from repository whitelists, never from callers.
func (b *Backend) apply(ctx context.Context, q database.Query) *gorm.DB {
	tx := b.db.WithContext(ctx).Table(q.Table)

	if q.Join != nil {
		cols := []string{q.Table + ".*"}
		for _, col := range sortedKeys(q.Join.Columns) {
			cols = append(cols, fmt.Sprintf("%s.%s AS %s", q.Join.Table, col, q.Join.Columns[col]))
		}
		tx = tx.Select(strings.Join(cols, ", ")).
			Joins(fmt.Sprintf("LEFT JOIN %s ON %s.%s = %s.%s",
				q.Join.Table, q.Join.Table, q.Join.ForeignKey, q.Table, q.Join.LocalKey))
	}

	for _, k := range sortedKeys2(q.Filters) {
		tx = tx.Where(fmt.Sprintf("%s.%s = ?", q.Table, k), q.Filters[k])
	}
	return tx
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedKeys2(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
