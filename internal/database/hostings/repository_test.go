package hostings

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
	client := &entities.Client{ID: "CL_1", Name: "Karim Hosting Ltd", Email: "ops@karimhosting.com"}
	require.NoError(t, conn.Insert(context.Background(), "clients", database.ClientRow(client)))
	return NewRepository(conn), conn
}

func createHosting(t *testing.T, repo *Repository, plan string, expires time.Time) *entities.Hosting {
	t.Helper()
	res := repo.Create(context.Background(), &entities.Hosting{
		ClientID:       "CL_1",
		Provider:       "Namecheap",
		PlanName:       plan,
		ExpirationDate: expires,
	})
	require.True(t, res.Success, res.Error)
	return res.Data
}

func TestCreateDefaults(t *testing.T) {
	repo, _ := setupRepo(t)

	h := createHosting(t, repo, "Stellar Plus", time.Now().AddDate(1, 0, 0))
	assert.NotEmpty(t, h.ID)
	assert.Equal(t, entities.ServiceStatusPending, h.Status)
	assert.Equal(t, entities.HostingTypeShared, h.HostingType)
	assert.Equal(t, entities.CurrencyUSD, h.Currency)
	assert.Equal(t, entities.PaymentStatusUnpaid, h.PaymentStatus)
	assert.Equal(t, entities.BackupStatePending, h.BackupStatus)
}

func TestCreateValidation(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	res := repo.Create(ctx, &entities.Hosting{Provider: "Namecheap"})
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "client_id is required")

	res = repo.Create(ctx, &entities.Hosting{ClientID: "CL_1", UsagePercent: 120})
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "usage_percent")

	res = repo.Create(ctx, &entities.Hosting{ClientID: "CL_1", UsagePercent: -1})
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "usage_percent")
}

func TestGetByIDJoinsClient(t *testing.T) {
	repo, _ := setupRepo(t)
	h := createHosting(t, repo, "Stellar Plus", time.Now().AddDate(0, 6, 0))

	res := repo.GetByID(context.Background(), h.ID)
	require.True(t, res.Success, res.Error)
	assert.Equal(t, "Karim Hosting Ltd", res.Data.ClientName)
	assert.Equal(t, "ops@karimhosting.com", res.Data.ClientEmail)
}

func TestGetByIDNotFound(t *testing.T) {
	repo, _ := setupRepo(t)

	res := repo.GetByID(context.Background(), "HS_missing")
	assert.False(t, res.Success)
	assert.Equal(t, "Hosting not found", res.Error)
}

func TestGetExpiringHostingWindow(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()
	now := time.Now()

	createHosting(t, repo, "renews-soon", now.AddDate(0, 0, 12))
	createHosting(t, repo, "renews-later", now.AddDate(0, 0, 45))
	createHosting(t, repo, "lapsed", now.AddDate(0, 0, -3))

	res := repo.GetExpiringHosting(ctx, 30)
	require.True(t, res.Success, res.Error)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "renews-soon", res.Data[0].PlanName)
}

func TestGetByStatus(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	createHosting(t, repo, "pending-plan", time.Now().AddDate(1, 0, 0))
	active := createHosting(t, repo, "active-plan", time.Now().AddDate(1, 0, 0))
	res := repo.Update(ctx, active.ID, map[string]any{"status": string(entities.ServiceStatusActive)})
	require.True(t, res.Success, res.Error)

	byStatus := repo.GetByStatus(ctx, entities.ServiceStatusActive)
	require.True(t, byStatus.Success, byStatus.Error)
	require.Len(t, byStatus.Data, 1)
	assert.Equal(t, "active-plan", byStatus.Data[0].PlanName)
}

func TestUpdatePartial(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()
	h := createHosting(t, repo, "Stellar Plus", time.Now().AddDate(1, 0, 0))

	res := repo.Update(ctx, h.ID, map[string]any{"usage_percent": 73.5})
	require.True(t, res.Success, res.Error)
	assert.Equal(t, 73.5, res.Data.UsagePercent)
	// Untouched fields survive the patch.
	assert.Equal(t, "Stellar Plus", res.Data.PlanName)
	assert.Equal(t, "Namecheap", res.Data.Provider)
}

func TestUpdateRejectsUsagePercentOutOfRange(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()
	h := createHosting(t, repo, "Stellar Plus", time.Now().AddDate(1, 0, 0))

	res := repo.Update(ctx, h.ID, map[string]any{"usage_percent": 150.0})
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "usage_percent")

	res = repo.Update(ctx, h.ID, map[string]any{"usage_percent": -1.0})
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "usage_percent")

	// The stored value is untouched by the rejected patches.
	got := repo.GetByID(ctx, h.ID)
	require.True(t, got.Success, got.Error)
	assert.Equal(t, 0.0, got.Data.UsagePercent)
}

func TestUpdateNotFound(t *testing.T) {
	repo, _ := setupRepo(t)

	res := repo.Update(context.Background(), "HS_missing", map[string]any{"notes": "gone"})
	assert.False(t, res.Success)
	assert.Equal(t, "Hosting not found", res.Error)
}

func TestDeleteNotFound(t *testing.T) {
	repo, _ := setupRepo(t)

	res := repo.Delete(context.Background(), "HS_missing")
	assert.False(t, res.Success)
	assert.Equal(t, "Hosting not found", res.Error)
}

func TestRefreshDerived(t *testing.T) {
	repo, conn := setupRepo(t)
	ctx := context.Background()
	now := time.Now()

	drifted := createHosting(t, repo, "drifted", now.AddDate(0, 0, 8))
	createHosting(t, repo, "fresh", now.AddDate(1, 0, 0))

	_, err := conn.Update(ctx, "hosting", drifted.ID, database.Row{
		"status":            string(entities.ServiceStatusActive),
		"days_until_expiry": 120,
	})
	require.NoError(t, err)

	res := repo.RefreshDerived(ctx)
	require.True(t, res.Success, res.Error)
	assert.Equal(t, 1, res.Data)

	got := repo.GetByID(ctx, drifted.ID)
	require.True(t, got.Success, got.Error)
	assert.Equal(t, entities.ServiceStatusExpiring, got.Data.Status)
	assert.Equal(t, 8, got.Data.DaysUntilExpiry)
}
