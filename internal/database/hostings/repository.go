// Package hostings provides CRUD and expiry queries for hosting accounts.
package hostings

import (
	"context"
	"sort"
	"time"

	"github.com/webghor/hostpanel/internal/database"
	"github.com/webghor/hostpanel/internal/entities"
)

const (
	table    = "hosting"
	idPrefix = "HS"
)

var columns = map[string]bool{
	"id":                true,
	"client_id":         true,
	"domain_id":         true,
	"provider":          true,
	"plan_name":         true,
	"hosting_type":      true,
	"storage":           true,
	"bandwidth":         true,
	"ip_address":        true,
	"server_location":   true,
	"usage_percent":     true,
	"registration_date": true,
	"expiration_date":   true,
	"status":            true,
	"price":             true,
	"currency":          true,
	"payment_status":    true,
	"auto_renewal":      true,
	"backup_status":     true,
	"last_backup":       true,
	"notes":             true,
	"days_until_expiry": true,
	"created_at":        true,
	"updated_at":        true,
}

// Repository handles hosting-account persistence with the same client join
// and expiry recomputation as the domain repository.
type Repository struct {
	conn database.Connection
}

func NewRepository(conn database.Connection) *Repository {
	return &Repository{conn: conn}
}

func (r *Repository) Create(ctx context.Context, h *entities.Hosting) database.Result[*entities.Hosting] {
	if h.ClientID == "" {
		return database.Fail[*entities.Hosting](&database.ValidationError{Message: "client_id is required"})
	}
	if h.UsagePercent < 0 || h.UsagePercent > 100 {
		return database.Fail[*entities.Hosting](&database.ValidationError{Message: "usage_percent must be between 0 and 100"})
	}

	if h.ID == "" {
		h.ID = database.NewID(idPrefix)
	}
	if h.Status == "" {
		h.Status = entities.ServiceStatusPending
	}
	if h.HostingType == "" {
		h.HostingType = entities.HostingTypeShared
	}
	if h.Currency == "" {
		h.Currency = entities.CurrencyUSD
	}
	if h.PaymentStatus == "" {
		h.PaymentStatus = entities.PaymentStatusUnpaid
	}
	if h.BackupStatus == "" {
		h.BackupStatus = entities.BackupStatePending
	}
	now := time.Now()
	h.CreatedAt = now
	h.UpdatedAt = now
	h.Recompute(now)

	if err := r.conn.Insert(ctx, table, database.HostingRow(h)); err != nil {
		return database.Fail[*entities.Hosting](err)
	}
	return database.OkMsg(h, "Hosting created successfully")
}

func (r *Repository) GetByID(ctx context.Context, id string) database.Result[*entities.Hosting] {
	row, err := r.conn.SelectOne(ctx, database.Query{
		Table:   table,
		Filters: map[string]any{"id": id},
		Join:    database.ClientJoin(),
	})
	if err != nil {
		return database.Fail[*entities.Hosting](err)
	}
	if row == nil {
		return database.Fail[*entities.Hosting](&database.NotFoundError{Entity: "Hosting"})
	}
	h := database.ScanHosting(row)
	h.Recompute(time.Now())
	return database.Ok(h)
}

func (r *Repository) GetAll(ctx context.Context, opts database.QueryOptions) database.Result[[]entities.Hosting] {
	q := database.BuildQuery(table, opts, database.ClientJoin(), columns)

	total, err := r.conn.Count(ctx, table, q.Filters)
	if err != nil {
		return database.Fail[[]entities.Hosting](err)
	}
	rows, err := r.conn.Select(ctx, q)
	if err != nil {
		return database.Fail[[]entities.Hosting](err)
	}

	now := time.Now()
	out := make([]entities.Hosting, len(rows))
	for i, row := range rows {
		h := database.ScanHosting(row)
		h.Recompute(now)
		out[i] = *h
	}
	return database.OkPage(out, database.PageFor(total, opts.Page, opts.Limit))
}

// GetByClientID returns the client's hosting accounts ordered by expiration.
func (r *Repository) GetByClientID(ctx context.Context, clientID string) database.Result[[]entities.Hosting] {
	return r.GetAll(ctx, database.QueryOptions{
		Filters: map[string]any{"client_id": clientID},
		SortBy:  "expiration_date",
	})
}

// GetByStatus returns all hosting accounts in the given lifecycle status.
func (r *Repository) GetByStatus(ctx context.Context, status entities.ServiceStatus) database.Result[[]entities.Hosting] {
	return r.GetAll(ctx, database.QueryOptions{
		Filters: map[string]any{"status": string(status)},
		SortBy:  "expiration_date",
	})
}

// GetExpiringHosting returns hosting accounts expiring within `days` days,
// soonest first, excluding those already expired.
func (r *Repository) GetExpiringHosting(ctx context.Context, days int) database.Result[[]entities.Hosting] {
	res := r.GetAll(ctx, database.QueryOptions{SortBy: "expiration_date"})
	if !res.Success {
		return res
	}
	expiring := make([]entities.Hosting, 0)
	for _, h := range res.Data {
		if h.DaysUntilExpiry > 0 && h.DaysUntilExpiry <= days {
			expiring = append(expiring, h)
		}
	}
	sort.SliceStable(expiring, func(i, j int) bool {
		return expiring[i].DaysUntilExpiry < expiring[j].DaysUntilExpiry
	})
	return database.Ok(expiring)
}

func (r *Repository) Update(ctx context.Context, id string, patch map[string]any) database.Result[*entities.Hosting] {
	row, err := database.SanitizePatch(patch, columns, time.Now())
	if err != nil {
		return database.Fail[*entities.Hosting](err)
	}
	if _, present := row["usage_percent"]; present {
		if usage := row.Float("usage_percent"); usage < 0 || usage > 100 {
			return database.Fail[*entities.Hosting](&database.ValidationError{Message: "usage_percent must be between 0 and 100"})
		}
	}
	if _, present := row["expiration_date"]; present {
		if t := row.TimePtr("expiration_date"); t != nil {
			row["days_until_expiry"] = entities.DaysUntil(*t, time.Now())
		}
	}

	n, err := r.conn.Update(ctx, table, id, row)
	if err != nil {
		return database.Fail[*entities.Hosting](err)
	}
	if n == 0 {
		return database.Fail[*entities.Hosting](&database.NotFoundError{Entity: "Hosting"})
	}
	res := r.GetByID(ctx, id)
	res.Message = "Hosting updated successfully"
	return res
}

func (r *Repository) Delete(ctx context.Context, id string) database.Result[bool] {
	n, err := r.conn.Delete(ctx, table, id)
	if err != nil {
		return database.Fail[bool](err)
	}
	if n == 0 {
		return database.Fail[bool](&database.NotFoundError{Entity: "Hosting"})
	}
	return database.OkMsg(true, "Hosting deleted successfully")
}

// RefreshDerived re-derives the stored status and days_until_expiry
// snapshots for every hosting account and writes back the rows that
// drifted. Returns the number of rows updated.
func (r *Repository) RefreshDerived(ctx context.Context) database.Result[int] {
	rows, err := r.conn.Select(ctx, database.Query{Table: table})
	if err != nil {
		return database.Fail[int](err)
	}

	now := time.Now()
	updated := 0
	for _, row := range rows {
		h := database.ScanHosting(row)
		days := entities.DaysUntil(h.ExpirationDate, now)
		status := h.Status
		if status != entities.ServiceStatusPending {
			status = entities.StatusForExpiry(days)
		}
		if days == h.DaysUntilExpiry && status == h.Status {
			continue
		}
		n, err := r.conn.Update(ctx, table, h.ID, database.Row{
			"days_until_expiry": days,
			"status":            string(status),
			"updated_at":        now,
		})
		if err != nil {
			return database.Fail[int](err)
		}
		updated += int(n)
	}
	return database.OkMsg(updated, "Hosting statuses refreshed")
}
