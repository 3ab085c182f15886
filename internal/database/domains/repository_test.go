package domains

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webghor/hostpanel/internal/database"
	"github.com/webghor/hostpanel/internal/database/memory"
	"github.com/webghor/hostpanel/internal/entities"
)

func setupRepo(t *testing.T) (*Repository, database.Connection) {
	t.Helper()
	conn := memory.New()
	client := &entities.Client{ID: "CL_1", Name: "Rahim Traders", Email: "contact@rahimtraders.com"}
	require.NoError(t, conn.Insert(context.Background(), "clients", database.ClientRow(client)))
	return NewRepository(conn), conn
}

func createDomain(t *testing.T, repo *Repository, name string, expires time.Time) *entities.Domain {
	t.Helper()
	res := repo.Create(context.Background(), &entities.Domain{
		ClientID:       "CL_1",
		Name:           name,
		ExpirationDate: expires,
	})
	require.True(t, res.Success, res.Error)
	return res.Data
}

func TestCreateDefaults(t *testing.T) {
	repo, _ := setupRepo(t)

	d := createDomain(t, repo, "rahimtraders.com", time.Now().AddDate(1, 0, 0))
	assert.NotEmpty(t, d.ID)
	assert.Equal(t, entities.ServiceStatusPending, d.Status)
	assert.Equal(t, entities.CurrencyUSD, d.Currency)
	assert.Equal(t, entities.PaymentStatusUnpaid, d.PaymentStatus)
	assert.Greater(t, d.DaysUntilExpiry, 300)
}

func TestCreateValidation(t *testing.T) {
	repo, _ := setupRepo(t)

	res := repo.Create(context.Background(), &entities.Domain{Name: "orphan.com"})
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "required")
}

func TestCreateRejectsDuplicateName(t *testing.T) {
	repo, _ := setupRepo(t)
	createDomain(t, repo, "rahimtraders.com", time.Now().AddDate(1, 0, 0))

	res := repo.Create(context.Background(), &entities.Domain{
		ClientID:       "CL_1",
		Name:           "rahimtraders.com",
		ExpirationDate: time.Now().AddDate(2, 0, 0),
	})
	assert.False(t, res.Success)
	assert.Equal(t, "domain name already exists", res.Error)
}

func TestGetByIDJoinsClient(t *testing.T) {
	repo, _ := setupRepo(t)
	d := createDomain(t, repo, "rahimtraders.com", time.Now().AddDate(0, 6, 0))

	res := repo.GetByID(context.Background(), d.ID)
	require.True(t, res.Success, res.Error)
	assert.Equal(t, "Rahim Traders", res.Data.ClientName)
	assert.Equal(t, "contact@rahimtraders.com", res.Data.ClientEmail)
}

func TestGetByIDNotFound(t *testing.T) {
	repo, _ := setupRepo(t)

	res := repo.GetByID(context.Background(), "DM_missing")
	assert.False(t, res.Success)
	assert.Equal(t, "Domain not found", res.Error)
}

func TestGetExpiringDomainsWindow(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()
	now := time.Now()

	createDomain(t, repo, "soon.com", now.AddDate(0, 0, 10))
	createDomain(t, repo, "sooner.com", now.AddDate(0, 0, 3))
	createDomain(t, repo, "later.com", now.AddDate(0, 0, 90))
	createDomain(t, repo, "gone.com", now.AddDate(0, 0, -10))

	res := repo.GetExpiringDomains(ctx, 30)
	require.True(t, res.Success, res.Error)
	require.Len(t, res.Data, 2)
	// Soonest first, expired domains excluded.
	assert.Equal(t, "sooner.com", res.Data[0].Name)
	assert.Equal(t, "soon.com", res.Data[1].Name)

	res = repo.GetExpiringDomains(ctx, 5)
	require.True(t, res.Success, res.Error)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "sooner.com", res.Data[0].Name)
}

func TestGetByStatus(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	createDomain(t, repo, "one.com", time.Now().AddDate(1, 0, 0))
	active := createDomain(t, repo, "two.com", time.Now().AddDate(1, 0, 0))
	res := repo.Update(ctx, active.ID, map[string]any{"status": string(entities.ServiceStatusActive)})
	require.True(t, res.Success, res.Error)

	byStatus := repo.GetByStatus(ctx, entities.ServiceStatusActive)
	require.True(t, byStatus.Success, byStatus.Error)
	require.Len(t, byStatus.Data, 1)
	assert.Equal(t, "two.com", byStatus.Data[0].Name)
}

func TestUpdateRecomputesExpirySnapshot(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()
	d := createDomain(t, repo, "rahimtraders.com", time.Now().AddDate(0, 0, 10))

	res := repo.Update(ctx, d.ID, map[string]any{
		"expiration_date": time.Now().AddDate(1, 0, 0),
	})
	require.True(t, res.Success, res.Error)
	assert.Greater(t, res.Data.DaysUntilExpiry, 300)
	assert.Equal(t, "Domain updated successfully", res.Message)
}

func TestUpdateRejectsDuplicateName(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	createDomain(t, repo, "a.com", time.Now().AddDate(1, 0, 0))
	b := createDomain(t, repo, "b.com", time.Now().AddDate(1, 0, 0))

	res := repo.Update(ctx, b.ID, map[string]any{"name": "a.com"})
	assert.False(t, res.Success)
	assert.Equal(t, "domain name already exists", res.Error)

	// A no-op rename onto its own name is still allowed.
	res = repo.Update(ctx, b.ID, map[string]any{"name": "b.com", "registrar": "namecheap"})
	require.True(t, res.Success, res.Error)
	assert.Equal(t, "namecheap", res.Data.Registrar)
}

func TestUpdateNotFound(t *testing.T) {
	repo, _ := setupRepo(t)

	res := repo.Update(context.Background(), "DM_missing", map[string]any{"registrar": "namecheap"})
	assert.False(t, res.Success)
	assert.Equal(t, "Domain not found", res.Error)
}

func TestDeleteNotFound(t *testing.T) {
	repo, _ := setupRepo(t)

	res := repo.Delete(context.Background(), "DM_missing")
	assert.False(t, res.Success)
	assert.Equal(t, "Domain not found", res.Error)
}

func TestDelete(t *testing.T) {
	repo, conn := setupRepo(t)
	ctx := context.Background()
	d := createDomain(t, repo, "rahimtraders.com", time.Now().AddDate(1, 0, 0))

	res := repo.Delete(ctx, d.ID)
	require.True(t, res.Success, res.Error)

	n, err := conn.Count(ctx, "domains", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestRefreshDerived(t *testing.T) {
	repo, conn := setupRepo(t)
	ctx := context.Background()
	now := time.Now()

	drifted := createDomain(t, repo, "drifted.com", now.AddDate(0, 0, 5))
	pending := createDomain(t, repo, "pending.com", now.AddDate(0, 0, 5))
	createDomain(t, repo, "fresh.com", now.AddDate(1, 0, 0))

	// Simulate stale snapshots written by an older process.
	_, err := conn.Update(ctx, "domains", drifted.ID, database.Row{
		"status":            string(entities.ServiceStatusActive),
		"days_until_expiry": 200,
	})
	require.NoError(t, err)

	res := repo.RefreshDerived(ctx)
	require.True(t, res.Success, res.Error)
	assert.Equal(t, 1, res.Data)

	got := repo.GetByID(ctx, drifted.ID)
	require.True(t, got.Success, got.Error)
	assert.Equal(t, entities.ServiceStatusExpiring, got.Data.Status)
	assert.Equal(t, 5, got.Data.DaysUntilExpiry)

	// Pending services are excluded from expiry-driven status rewrites.
	got = repo.GetByID(ctx, pending.ID)
	require.True(t, got.Success, got.Error)
	assert.Equal(t, entities.ServiceStatusPending, got.Data.Status)
}
