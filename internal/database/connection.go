package database

import (
	"context"
)

// Join describes a single LEFT JOIN pulling denormalized columns from a
// related table into the result row under aliased keys.
type Join struct {
	Table      string            // joined table, e.g. "clients"
	LocalKey   string            // column on the base table, e.g. "client_id"
	ForeignKey string            // column on the joined table, usually "id"
	Columns    map[string]string // joined column -> alias, e.g. "name" -> "client_name"
}

// ClientJoin is the join every child repository issues so reads carry the
// owning client's name and email without a second round trip.
func ClientJoin() *Join {
	return &Join{
		Table:      "clients",
		LocalKey:   "client_id",
		ForeignKey: "id",
		Columns: map[string]string{
			"name":  "client_name",
			"email": "client_email",
		},
	}
}

// Query is the backend-agnostic criteria object repositories build in place
// of SQL strings. Filters are equality-only by contract; range predicates
// are applied by repositories after the read.
type Query struct {
	Table      string
	Filters    map[string]any
	Join       *Join
	OrderBy    string
	Descending bool
	Limit      int
	Offset     int
}

// Connection is the narrow interface any storage backend must satisfy.
// Update and Delete return the true number of matched rows; the base
// repository treats zero as authoritative NotFound.
type Connection interface {
	// Select returns all rows matching the criteria. An unknown table is a
	// BackendError, an empty match is an empty slice.
	Select(ctx context.Context, q Query) ([]Row, error)
	// SelectOne returns the first matching row, or (nil, nil) when nothing
	// matched. It never errors solely because zero rows matched.
	SelectOne(ctx context.Context, q Query) (Row, error)
	// Count returns the number of rows matching the equality filters.
	Count(ctx context.Context, table string, filters map[string]any) (int64, error)
	Insert(ctx context.Context, table string, row Row) error
	Update(ctx context.Context, table, id string, patch Row) (int64, error)
	Delete(ctx context.Context, table, id string) (int64, error)
	// Transaction runs fn against a connection handle. SQL backends provide
	// real atomicity; the memory backend runs fn under its write lock with
	// no rollback, which is a documented non-goal.
	Transaction(ctx context.Context, fn func(Connection) error) error
	// Migrate creates or updates the schema for all known tables.
	Migrate(ctx context.Context) error
	// Tables lists the known table names, used by the backup dump.
	Tables(ctx context.Context) ([]string, error)
	// Close releases backend resources. Idempotent.
	Close() error
}
