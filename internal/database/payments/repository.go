// Package payments provides CRUD and overdue queries for payment records.
package payments

import (
	"context"
	"sort"
	"time"

	"github.com/webghor/hostpanel/internal/database"
	"github.com/webghor/hostpanel/internal/entities"
)

const (
	table    = "payments"
	idPrefix = "PM"
)

var columns = map[string]bool{
	"id":               true,
	"client_id":        true,
	"service_id":       true,
	"service_type":     true,
	"description":      true,
	"invoice_number":   true,
	"amount":           true,
	"currency":         true,
	"exchange_rate":    true,
	"converted_amount": true,
	"due_date":         true,
	"payment_date":     true,
	"payment_method":   true,
	"payment_status":   true,
	"notes":            true,
	"is_overdue":       true,
	"days_overdue":     true,
	"created_at":       true,
	"updated_at":       true,
}

// Repository handles payment persistence. Conversion and overdue state are
// derived from amount, exchange rate and due date; reads recompute them so
// a payment that aged into overdue is reported as such regardless of what
// was stored at write time.
type Repository struct {
	conn database.Connection
}

func NewRepository(conn database.Connection) *Repository {
	return &Repository{conn: conn}
}

// Create inserts a payment for the given service reference.
func (r *Repository) Create(ctx context.Context, p *entities.Payment, service entities.ServiceRef) database.Result[*entities.Payment] {
	if p.ClientID == "" {
		return database.Fail[*entities.Payment](&database.ValidationError{Message: "client_id is required"})
	}
	if service.Kind == "" {
		return database.Fail[*entities.Payment](&database.ValidationError{Message: "service reference is required"})
	}
	if p.Amount < 0 {
		return database.Fail[*entities.Payment](&database.ValidationError{Message: "amount must not be negative"})
	}

	p.ServiceID = service.ID
	p.ServiceType = service.Kind
	if p.ID == "" {
		p.ID = database.NewID(idPrefix)
	}
	if p.Currency == "" {
		p.Currency = entities.CurrencyBDT
	}
	if p.PaymentStatus == "" {
		p.PaymentStatus = entities.PaymentStatusUnpaid
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	p.Recompute(now)

	if err := r.conn.Insert(ctx, table, database.PaymentRow(p)); err != nil {
		return database.Fail[*entities.Payment](err)
	}
	return database.OkMsg(p, "Payment created successfully")
}

func (r *Repository) GetByID(ctx context.Context, id string) database.Result[*entities.Payment] {
	row, err := r.conn.SelectOne(ctx, database.Query{
		Table:   table,
		Filters: map[string]any{"id": id},
		Join:    database.ClientJoin(),
	})
	if err != nil {
		return database.Fail[*entities.Payment](err)
	}
	if row == nil {
		return database.Fail[*entities.Payment](&database.NotFoundError{Entity: "Payment"})
	}
	p := database.ScanPayment(row)
	p.Recompute(time.Now())
	return database.Ok(p)
}

func (r *Repository) GetAll(ctx context.Context, opts database.QueryOptions) database.Result[[]entities.Payment] {
	q := database.BuildQuery(table, opts, database.ClientJoin(), columns)

	total, err := r.conn.Count(ctx, table, q.Filters)
	if err != nil {
		return database.Fail[[]entities.Payment](err)
	}
	rows, err := r.conn.Select(ctx, q)
	if err != nil {
		return database.Fail[[]entities.Payment](err)
	}

	now := time.Now()
	out := make([]entities.Payment, len(rows))
	for i, row := range rows {
		p := database.ScanPayment(row)
		p.Recompute(now)
		out[i] = *p
	}
	return database.OkPage(out, database.PageFor(total, opts.Page, opts.Limit))
}

// GetByClientID returns the client's payments, most recent due date first.
func (r *Repository) GetByClientID(ctx context.Context, clientID string) database.Result[[]entities.Payment] {
	return r.GetAll(ctx, database.QueryOptions{
		Filters:   map[string]any{"client_id": clientID},
		SortBy:    "due_date",
		SortOrder: "desc",
	})
}

// GetOverduePayments returns unpaid payments whose due date has passed,
// most overdue first. The predicate is evaluated after recomputation, so
// stale stored snapshots cannot hide an overdue payment.
func (r *Repository) GetOverduePayments(ctx context.Context) database.Result[[]entities.Payment] {
	res := r.GetAll(ctx, database.QueryOptions{SortBy: "due_date"})
	if !res.Success {
		return res
	}
	overdue := make([]entities.Payment, 0)
	for _, p := range res.Data {
		if p.IsOverdue {
			overdue = append(overdue, p)
		}
	}
	sort.SliceStable(overdue, func(i, j int) bool {
		return overdue[i].DaysOverdue > overdue[j].DaysOverdue
	})
	return database.Ok(overdue)
}

func (r *Repository) Update(ctx context.Context, id string, patch map[string]any) database.Result[*entities.Payment] {
	row, err := database.SanitizePatch(patch, columns, time.Now())
	if err != nil {
		return database.Fail[*entities.Payment](err)
	}

	n, err := r.conn.Update(ctx, table, id, row)
	if err != nil {
		return database.Fail[*entities.Payment](err)
	}
	if n == 0 {
		return database.Fail[*entities.Payment](&database.NotFoundError{Entity: "Payment"})
	}

	// Re-derive the stored snapshots from the merged row so amount,
	// currency, rate or due date changes are reflected in storage too.
	res := r.GetByID(ctx, id)
	if res.Success {
		p := res.Data
		if _, err := r.conn.Update(ctx, table, id, database.Row{
			"converted_amount": p.ConvertedAmount,
			"is_overdue":       p.IsOverdue,
			"days_overdue":     p.DaysOverdue,
		}); err != nil {
			return database.Fail[*entities.Payment](err)
		}
	}
	res.Message = "Payment updated successfully"
	return res
}

// MarkPaid settles a payment: stamps the payment date, clears the overdue
// snapshot and records the method used.
func (r *Repository) MarkPaid(ctx context.Context, id, method string) database.Result[*entities.Payment] {
	now := time.Now()
	patch := map[string]any{
		"payment_status": string(entities.PaymentStatusPaid),
		"payment_date":   now,
		"is_overdue":     false,
		"days_overdue":   0,
	}
	if method != "" {
		patch["payment_method"] = method
	}
	return r.Update(ctx, id, patch)
}

func (r *Repository) Delete(ctx context.Context, id string) database.Result[bool] {
	n, err := r.conn.Delete(ctx, table, id)
	if err != nil {
		return database.Fail[bool](err)
	}
	if n == 0 {
		return database.Fail[bool](&database.NotFoundError{Entity: "Payment"})
	}
	return database.OkMsg(true, "Payment deleted successfully")
}

// RefreshDerived re-derives the stored overdue and conversion snapshots for
// every payment and writes back the rows that drifted. Returns the number
// of rows updated.
func (r *Repository) RefreshDerived(ctx context.Context) database.Result[int] {
	rows, err := r.conn.Select(ctx, database.Query{Table: table})
	if err != nil {
		return database.Fail[int](err)
	}

	now := time.Now()
	updated := 0
	for _, row := range rows {
		p := database.ScanPayment(row)
		before := *p
		p.Recompute(now)
		if p.ConvertedAmount == before.ConvertedAmount &&
			p.IsOverdue == before.IsOverdue &&
			p.DaysOverdue == before.DaysOverdue {
			continue
		}
		n, err := r.conn.Update(ctx, table, p.ID, database.Row{
			"converted_amount": p.ConvertedAmount,
			"is_overdue":       p.IsOverdue,
			"days_overdue":     p.DaysOverdue,
			"updated_at":       now,
		})
		if err != nil {
			return database.Fail[int](err)
		}
		updated += int(n)
	}
	return database.OkMsg(updated, "Payment snapshots refreshed")
}
