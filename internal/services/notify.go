package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/webghor/hostpanel/internal/database"
	"github.com/webghor/hostpanel/internal/entities"
)

// ScanReport summarizes one notification scan run.
type ScanReport struct {
	DomainsScanned  int `json:"domains_scanned"`
	HostingScanned  int `json:"hosting_scanned"`
	PaymentsScanned int `json:"payments_scanned"`
	Created         int `json:"created"`
	Suppressed      int `json:"suppressed"`
}

// NotifyService walks expiring services and overdue payments and records a
// notification for each. Dedupe keys scope alerts to the entity and the
// current day, so a scan can run hourly without flooding the panel.
type NotifyService struct {
	domains       DomainReader
	hostings      HostingReader
	payments      PaymentReader
	notifications NotificationWriter
}

func NewNotifyService(domains DomainReader, hostings HostingReader, payments PaymentReader, notifications NotificationWriter) *NotifyService {
	return &NotifyService{
		domains:       domains,
		hostings:      hostings,
		payments:      payments,
		notifications: notifications,
	}
}

// Scan runs one full pass and returns what it did.
func (s *NotifyService) Scan(ctx context.Context) database.Result[*ScanReport] {
	report := &ScanReport{}
	day := time.Now().Format("2006-01-02")

	domains := s.domains.GetExpiringDomains(ctx, entities.ExpiringSoonDays)
	if !domains.Success {
		return database.Result[*ScanReport]{Success: false, Error: domains.Error}
	}
	report.DomainsScanned = len(domains.Data)
	for _, d := range domains.Data {
		s.record(ctx, report, &entities.Notification{
			Type:      entities.NotificationDomainExpiry,
			EntityID:  d.ID,
			ClientID:  d.ClientID,
			Title:     fmt.Sprintf("Domain %s expires in %d days", d.Name, d.DaysUntilExpiry),
			Message:   fmt.Sprintf("Domain %s for %s expires on %s.", d.Name, d.ClientName, d.ExpirationDate.Format("2006-01-02")),
			Severity:  severityForDays(d.DaysUntilExpiry),
			DedupeKey: fmt.Sprintf("domain_expiry:%s:%s", d.ID, day),
		})
	}

	hostings := s.hostings.GetExpiringHosting(ctx, entities.ExpiringSoonDays)
	if !hostings.Success {
		return database.Result[*ScanReport]{Success: false, Error: hostings.Error}
	}
	report.HostingScanned = len(hostings.Data)
	for _, h := range hostings.Data {
		s.record(ctx, report, &entities.Notification{
			Type:      entities.NotificationHostingExpiry,
			EntityID:  h.ID,
			ClientID:  h.ClientID,
			Title:     fmt.Sprintf("Hosting %s expires in %d days", h.PlanName, h.DaysUntilExpiry),
			Message:   fmt.Sprintf("Hosting plan %s (%s) for %s expires on %s.", h.PlanName, h.Provider, h.ClientName, h.ExpirationDate.Format("2006-01-02")),
			Severity:  severityForDays(h.DaysUntilExpiry),
			DedupeKey: fmt.Sprintf("hosting_expiry:%s:%s", h.ID, day),
		})
	}

	payments := s.payments.GetOverduePayments(ctx)
	if !payments.Success {
		return database.Result[*ScanReport]{Success: false, Error: payments.Error}
	}
	report.PaymentsScanned = len(payments.Data)
	for _, p := range payments.Data {
		s.record(ctx, report, &entities.Notification{
			Type:      entities.NotificationPaymentOverdue,
			EntityID:  p.ID,
			ClientID:  p.ClientID,
			Title:     fmt.Sprintf("Payment %s is %d days overdue", p.ID, p.DaysOverdue),
			Message:   fmt.Sprintf("Payment of %.2f %s from %s was due on %s.", p.Amount, p.Currency, p.ClientName, p.DueDate.Format("2006-01-02")),
			Severity:  entities.SeverityCritical,
			DedupeKey: fmt.Sprintf("payment_overdue:%s:%s", p.ID, day),
		})
	}

	return database.OkMsg(report, fmt.Sprintf("Scan complete: %d created, %d suppressed", report.Created, report.Suppressed))
}

func (s *NotifyService) record(ctx context.Context, report *ScanReport, n *entities.Notification) {
	res := s.notifications.Create(ctx, n)
	switch {
	case !res.Success:
		log.Printf("notify: failed to record %s for %s: %s", n.Type, n.EntityID, res.Error)
	case res.Message == "Notification already exists":
		report.Suppressed++
	default:
		report.Created++
	}
}

func severityForDays(days int) entities.NotificationSeverity {
	switch {
	case days <= 7:
		return entities.SeverityCritical
	case days <= 14:
		return entities.SeverityWarning
	default:
		return entities.SeverityInfo
	}
}
