package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webghor/hostpanel/internal/database/clients"
	"github.com/webghor/hostpanel/internal/database/domains"
	"github.com/webghor/hostpanel/internal/database/hostings"
	"github.com/webghor/hostpanel/internal/database/memory"
	"github.com/webghor/hostpanel/internal/database/notifications"
	"github.com/webghor/hostpanel/internal/database/payments"
	"github.com/webghor/hostpanel/internal/entities"
)

type testStores struct {
	clients       *clients.Repository
	domains       *domains.Repository
	hostings      *hostings.Repository
	payments      *payments.Repository
	notifications *notifications.Repository
}

func setupStores(t *testing.T) testStores {
	t.Helper()
	conn := memory.New()
	return testStores{
		clients:       clients.NewRepository(conn),
		domains:       domains.NewRepository(conn),
		hostings:      hostings.NewRepository(conn),
		payments:      payments.NewRepository(conn),
		notifications: notifications.NewRepository(conn),
	}
}

func mustCreateClient(t *testing.T, s testStores, name string, status entities.AccountStatus) *entities.Client {
	t.Helper()
	res := s.clients.Create(context.Background(), &entities.Client{
		Name:          name,
		Email:         name + "@example.com",
		AccountStatus: status,
	})
	require.True(t, res.Success, res.Error)
	return res.Data
}

func mustCreateDomain(t *testing.T, s testStores, clientID, name string, status entities.ServiceStatus, expires time.Time) *entities.Domain {
	t.Helper()
	res := s.domains.Create(context.Background(), &entities.Domain{
		ClientID:       clientID,
		Name:           name,
		Status:         status,
		ExpirationDate: expires,
	})
	require.True(t, res.Success, res.Error)
	return res.Data
}

func mustCreateHosting(t *testing.T, s testStores, clientID, plan string, status entities.ServiceStatus, expires time.Time) *entities.Hosting {
	t.Helper()
	res := s.hostings.Create(context.Background(), &entities.Hosting{
		ClientID:       clientID,
		Provider:       "Namecheap",
		PlanName:       plan,
		Status:         status,
		ExpirationDate: expires,
	})
	require.True(t, res.Success, res.Error)
	return res.Data
}

func mustCreatePayment(t *testing.T, s testStores, clientID string, amount float64, status entities.PaymentStatus, due time.Time) *entities.Payment {
	t.Helper()
	res := s.payments.Create(context.Background(), &entities.Payment{
		ClientID:      clientID,
		Amount:        amount,
		PaymentStatus: status,
		DueDate:       due,
	}, entities.OtherService(""))
	require.True(t, res.Success, res.Error)
	return res.Data
}

func TestDashboardStats(t *testing.T) {
	s := setupStores(t)
	ctx := context.Background()
	now := time.Now()

	active := mustCreateClient(t, s, "rahim", entities.AccountStatusActive)
	mustCreateClient(t, s, "karim", entities.AccountStatusInactive)

	mustCreateDomain(t, s, active.ID, "expiring.com", entities.ServiceStatusActive, now.AddDate(0, 0, 10))
	mustCreateDomain(t, s, active.ID, "longlived.com", entities.ServiceStatusActive, now.AddDate(1, 0, 0))
	mustCreateDomain(t, s, active.ID, "lapsed.com", entities.ServiceStatusExpired, now.AddDate(0, 0, -10))
	mustCreateHosting(t, s, active.ID, "Stellar", entities.ServiceStatusActive, now.AddDate(0, 0, 5))

	mustCreatePayment(t, s, active.ID, 1000, entities.PaymentStatusPaid, now.AddDate(0, -1, 0))
	mustCreatePayment(t, s, active.ID, 500, entities.PaymentStatusUnpaid, now.AddDate(0, 1, 0))
	mustCreatePayment(t, s, active.ID, 200, entities.PaymentStatusUnpaid, now.AddDate(0, 0, -5))

	svc := NewDashboardService(s.clients, s.domains, s.hostings, s.payments)
	res := svc.Stats(ctx)
	require.True(t, res.Success, res.Error)

	stats := res.Data
	assert.Equal(t, 2, stats.TotalClients)
	assert.Equal(t, 1, stats.ActiveClients)
	assert.Equal(t, 3, stats.TotalDomains)
	assert.Equal(t, 2, stats.ActiveDomains)
	assert.Equal(t, 1, stats.ExpiringDomains)
	assert.Equal(t, 1, stats.TotalHosting)
	assert.Equal(t, 1, stats.ActiveHosting)
	assert.Equal(t, 1, stats.ExpiringHosting)
	assert.Equal(t, 1, stats.ExpiredServices)
	assert.Equal(t, 1000.0, stats.TotalRevenue)
	assert.Equal(t, 700.0, stats.PendingRevenue)
	assert.Equal(t, 1, stats.OverduePayments)
	assert.Equal(t, 200.0, stats.OverdueAmount)
}

func TestExpiryCalendar(t *testing.T) {
	s := setupStores(t)
	ctx := context.Background()
	now := time.Now()

	c := mustCreateClient(t, s, "rahim", entities.AccountStatusActive)

	mustCreateDomain(t, s, c.ID, "soon.com", entities.ServiceStatusActive, now.AddDate(0, 0, 10))
	mustCreateDomain(t, s, c.ID, "distant.com", entities.ServiceStatusActive, now.AddDate(0, 0, 100))
	mustCreateDomain(t, s, c.ID, "justlapsed.com", entities.ServiceStatusExpired, now.AddDate(0, 0, -3))
	mustCreateDomain(t, s, c.ID, "longlapsed.com", entities.ServiceStatusExpired, now.AddDate(0, 0, -20))
	mustCreateHosting(t, s, c.ID, "Stellar", entities.ServiceStatusActive, now.AddDate(0, 0, 5))

	res := NewDashboardService(s.clients, s.domains, s.hostings, s.payments).ExpiryCalendar(ctx, 30)
	require.True(t, res.Success, res.Error)
	require.Len(t, res.Data, 3)

	// Date order: the recent lapse, then the hosting renewal, then the domain.
	assert.Equal(t, "justlapsed.com", res.Data[0].Title)
	assert.Equal(t, "domain", res.Data[0].EntityType)
	assert.Equal(t, "Stellar (Namecheap)", res.Data[1].Title)
	assert.Equal(t, "hosting", res.Data[1].EntityType)
	assert.Equal(t, "soon.com", res.Data[2].Title)
	assert.Equal(t, "rahim", res.Data[0].ClientName)
}

func TestGetByClientIDKeepsEntityKindsApart(t *testing.T) {
	s := setupStores(t)
	ctx := context.Background()
	now := time.Now()

	c := mustCreateClient(t, s, "rahim", entities.AccountStatusActive)
	mustCreateDomain(t, s, c.ID, "rahimtraders.com", entities.ServiceStatusActive, now.AddDate(1, 0, 0))
	mustCreateHosting(t, s, c.ID, "Stellar", entities.ServiceStatusActive, now.AddDate(1, 0, 0))

	domains := s.domains.GetByClientID(ctx, c.ID)
	require.True(t, domains.Success, domains.Error)
	require.Len(t, domains.Data, 1)
	assert.Equal(t, "rahimtraders.com", domains.Data[0].Name)

	hostings := s.hostings.GetByClientID(ctx, c.ID)
	require.True(t, hostings.Success, hostings.Error)
	require.Len(t, hostings.Data, 1)
	assert.Equal(t, "Stellar", hostings.Data[0].PlanName)
}

func TestExpiryCalendarDefaultsWindow(t *testing.T) {
	s := setupStores(t)
	c := mustCreateClient(t, s, "rahim", entities.AccountStatusActive)
	mustCreateDomain(t, s, c.ID, "soon.com", entities.ServiceStatusActive, time.Now().AddDate(0, 0, 20))

	res := NewDashboardService(s.clients, s.domains, s.hostings, s.payments).ExpiryCalendar(context.Background(), 0)
	require.True(t, res.Success, res.Error)
	assert.Len(t, res.Data, 1)
}
