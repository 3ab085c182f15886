package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webghor/hostpanel/internal/database"
)

func seedClients(t *testing.T, b *Backend) {
	t.Helper()
	ctx := context.Background()
	rows := []database.Row{
		{"id": "CL_1", "name": "Rahim Traders", "email": "rahim@example.com", "account_status": "active", "created_at": time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"id": "CL_2", "name": "Karim Fashion", "email": "karim@example.com", "account_status": "inactive", "created_at": time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
		{"id": "CL_3", "name": "Dhaka Foods", "email": "dhaka@example.com", "account_status": "active", "created_at": time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, r := range rows {
		require.NoError(t, b.Insert(ctx, "clients", r))
	}
}

func TestSelectFiltersAndSorts(t *testing.T) {
	b := New()
	seedClients(t, b)
	ctx := context.Background()

	rows, err := b.Select(ctx, database.Query{
		Table:   "clients",
		Filters: map[string]any{"account_status": "active"},
		OrderBy: "created_at", Descending: true,
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "CL_3", rows[0].String("id"))
	assert.Equal(t, "CL_1", rows[1].String("id"))
}

func TestSelectPagination(t *testing.T) {
	b := New()
	seedClients(t, b)
	ctx := context.Background()

	rows, err := b.Select(ctx, database.Query{Table: "clients", OrderBy: "created_at", Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "CL_2", rows[0].String("id"))

	// Offset past the end yields an empty slice, not an error.
	rows, err = b.Select(ctx, database.Query{Table: "clients", Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSelectUnknownTable(t *testing.T) {
	b := New()
	_, err := b.Select(context.Background(), database.Query{Table: "nope"})
	assert.Error(t, err)
}

func TestSelectOneNoMatch(t *testing.T) {
	b := New()
	seedClients(t, b)

	row, err := b.SelectOne(context.Background(), database.Query{
		Table:   "clients",
		Filters: map[string]any{"id": "CL_404"},
	})
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestJoinAttachesAliasedColumns(t *testing.T) {
	b := New()
	seedClients(t, b)
	ctx := context.Background()

	require.NoError(t, b.Insert(ctx, "domains", database.Row{
		"id": "DM_1", "client_id": "CL_1", "name": "rahimtraders.com",
	}))

	rows, err := b.Select(ctx, database.Query{Table: "domains", Join: database.ClientJoin()})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Rahim Traders", rows[0].String("client_name"))
	assert.Equal(t, "rahim@example.com", rows[0].String("client_email"))
}

func TestCount(t *testing.T) {
	b := New()
	seedClients(t, b)
	ctx := context.Background()

	n, err := b.Count(ctx, "clients", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	n, err = b.Count(ctx, "clients", map[string]any{"account_status": "active"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestInsertDuplicateID(t *testing.T) {
	b := New()
	seedClients(t, b)

	err := b.Insert(context.Background(), "clients", database.Row{"id": "CL_1"})
	assert.Error(t, err)
}

func TestUpdateReportsAffectedRows(t *testing.T) {
	b := New()
	seedClients(t, b)
	ctx := context.Background()

	n, err := b.Update(ctx, "clients", "CL_1", database.Row{"name": "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	row, err := b.SelectOne(ctx, database.Query{Table: "clients", Filters: map[string]any{"id": "CL_1"}})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", row.String("name"))

	// Unknown id: zero rows affected, no error.
	n, err = b.Update(ctx, "clients", "CL_404", database.Row{"name": "x"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestDeleteReportsAffectedRows(t *testing.T) {
	b := New()
	seedClients(t, b)
	ctx := context.Background()

	n, err := b.Delete(ctx, "clients", "CL_2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = b.Delete(ctx, "clients", "CL_2")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	total, err := b.Count(ctx, "clients", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestSelectReturnsClones(t *testing.T) {
	b := New()
	seedClients(t, b)
	ctx := context.Background()

	rows, err := b.Select(ctx, database.Query{Table: "clients", Filters: map[string]any{"id": "CL_1"}})
	require.NoError(t, err)
	rows[0]["name"] = "mutated"

	again, err := b.SelectOne(ctx, database.Query{Table: "clients", Filters: map[string]any{"id": "CL_1"}})
	require.NoError(t, err)
	assert.Equal(t, "Rahim Traders", again.String("name"))
}

func TestTablesAndMigrate(t *testing.T) {
	b := New()
	ctx := context.Background()

	require.NoError(t, b.Migrate(ctx))
	tables, err := b.Tables(ctx)
	require.NoError(t, err)
	assert.Contains(t, tables, "clients")
	assert.Contains(t, tables, "backup_logs")
}

func TestTransactionSharesStore(t *testing.T) {
	b := New()
	seedClients(t, b)
	ctx := context.Background()

	err := b.Transaction(ctx, func(tx database.Connection) error {
		_, err := tx.Update(ctx, "clients", "CL_1", database.Row{"notes": "inside tx"})
		return err
	})
	require.NoError(t, err)

	row, err := b.SelectOne(ctx, database.Query{Table: "clients", Filters: map[string]any{"id": "CL_1"}})
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, "inside tx", row.String("notes"))
}
