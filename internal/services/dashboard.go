// Package services holds the read-model layer built on top of the
// repositories: dashboard aggregates, the expiry calendar and the
// notification scan.
package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/webghor/hostpanel/internal/database"
	"github.com/webghor/hostpanel/internal/entities"
)

// DashboardStats is the aggregate snapshot rendered on the panel's
// landing page. Money totals are in converted (BDT-side) amounts.
type DashboardStats struct {
	TotalClients    int     `json:"total_clients"`
	ActiveClients   int     `json:"active_clients"`
	TotalDomains    int     `json:"total_domains"`
	ActiveDomains   int     `json:"active_domains"`
	TotalHosting    int     `json:"total_hosting"`
	ActiveHosting   int     `json:"active_hosting"`
	ExpiringDomains int     `json:"expiring_domains"`
	ExpiringHosting int     `json:"expiring_hosting"`
	ExpiredServices int     `json:"expired_services"`
	TotalRevenue    float64 `json:"total_revenue"`
	PendingRevenue  float64 `json:"pending_revenue"`
	OverduePayments int     `json:"overdue_payments"`
	OverdueAmount   float64 `json:"overdue_amount"`
}

// DashboardService aggregates repository data into panel views.
type DashboardService struct {
	clients  ClientReader
	domains  DomainReader
	hostings HostingReader
	payments PaymentReader
}

func NewDashboardService(clients ClientReader, domains DomainReader, hostings HostingReader, payments PaymentReader) *DashboardService {
	return &DashboardService{
		clients:  clients,
		domains:  domains,
		hostings: hostings,
		payments: payments,
	}
}

// Stats computes the dashboard aggregate in one pass over each table.
func (s *DashboardService) Stats(ctx context.Context) database.Result[*DashboardStats] {
	stats := &DashboardStats{}

	clients := s.clients.GetAll(ctx, database.QueryOptions{})
	if !clients.Success {
		return database.Result[*DashboardStats]{Success: false, Error: clients.Error}
	}
	stats.TotalClients = len(clients.Data)
	for _, c := range clients.Data {
		if c.AccountStatus == entities.AccountStatusActive {
			stats.ActiveClients++
		}
	}

	domains := s.domains.GetAll(ctx, database.QueryOptions{})
	if !domains.Success {
		return database.Result[*DashboardStats]{Success: false, Error: domains.Error}
	}
	stats.TotalDomains = len(domains.Data)
	for _, d := range domains.Data {
		switch {
		case d.Status == entities.ServiceStatusExpired:
			stats.ExpiredServices++
		case d.Status == entities.ServiceStatusActive || d.Status == entities.ServiceStatusExpiring:
			stats.ActiveDomains++
		}
		if d.DaysUntilExpiry > 0 && d.DaysUntilExpiry <= entities.ExpiringSoonDays {
			stats.ExpiringDomains++
		}
	}

	hostings := s.hostings.GetAll(ctx, database.QueryOptions{})
	if !hostings.Success {
		return database.Result[*DashboardStats]{Success: false, Error: hostings.Error}
	}
	stats.TotalHosting = len(hostings.Data)
	for _, h := range hostings.Data {
		switch {
		case h.Status == entities.ServiceStatusExpired:
			stats.ExpiredServices++
		case h.Status == entities.ServiceStatusActive || h.Status == entities.ServiceStatusExpiring:
			stats.ActiveHosting++
		}
		if h.DaysUntilExpiry > 0 && h.DaysUntilExpiry <= entities.ExpiringSoonDays {
			stats.ExpiringHosting++
		}
	}

	payments := s.payments.GetAll(ctx, database.QueryOptions{})
	if !payments.Success {
		return database.Result[*DashboardStats]{Success: false, Error: payments.Error}
	}
	for _, p := range payments.Data {
		switch {
		case p.PaymentStatus == entities.PaymentStatusPaid:
			stats.TotalRevenue += p.ConvertedAmount
		case p.IsOverdue:
			stats.OverduePayments++
			stats.OverdueAmount += p.ConvertedAmount
			stats.PendingRevenue += p.ConvertedAmount
		default:
			stats.PendingRevenue += p.ConvertedAmount
		}
	}

	return database.Ok(stats)
}

// ExpiryCalendar merges domain and hosting expirations inside the window
// into a single date-ordered event list. Already-expired entries within
// the last few days are included so the panel can show recent lapses.
func (s *DashboardService) ExpiryCalendar(ctx context.Context, days int) database.Result[[]entities.ExpiryEvent] {
	if days <= 0 {
		days = entities.ExpiringSoonDays
	}

	events := make([]entities.ExpiryEvent, 0)

	domains := s.domains.GetAll(ctx, database.QueryOptions{})
	if !domains.Success {
		return database.Result[[]entities.ExpiryEvent]{Success: false, Error: domains.Error}
	}
	for _, d := range domains.Data {
		if d.DaysUntilExpiry > days || d.DaysUntilExpiry < -7 {
			continue
		}
		events = append(events, entities.ExpiryEvent{
			EntityType:  "domain",
			EntityID:    d.ID,
			Title:       d.Name,
			ClientID:    d.ClientID,
			ClientName:  d.ClientName,
			Date:        d.ExpirationDate,
			DaysLeft:    d.DaysUntilExpiry,
			Price:       d.Price,
			Currency:    d.Currency,
			AutoRenewal: d.AutoRenewal,
			Status:      d.Status,
		})
	}

	hostings := s.hostings.GetAll(ctx, database.QueryOptions{})
	if !hostings.Success {
		return database.Result[[]entities.ExpiryEvent]{Success: false, Error: hostings.Error}
	}
	for _, h := range hostings.Data {
		if h.DaysUntilExpiry > days || h.DaysUntilExpiry < -7 {
			continue
		}
		events = append(events, entities.ExpiryEvent{
			EntityType:  "hosting",
			EntityID:    h.ID,
			Title:       fmt.Sprintf("%s (%s)", h.PlanName, h.Provider),
			ClientID:    h.ClientID,
			ClientName:  h.ClientName,
			Date:        h.ExpirationDate,
			DaysLeft:    h.DaysUntilExpiry,
			Price:       h.Price,
			Currency:    h.Currency,
			AutoRenewal: h.AutoRenewal,
			Status:      h.Status,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
	return database.Ok(events)
}
