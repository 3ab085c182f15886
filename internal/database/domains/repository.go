// Package domains provides CRUD and expiry queries for domain registrations.
package domains

import (
	"context"
	"sort"
	"time"

	"github.com/webghor/hostpanel/internal/database"
	"github.com/webghor/hostpanel/internal/entities"
)

const (
	table    = "domains"
	idPrefix = "DM"
)

var columns = map[string]bool{
	"id":                true,
	"client_id":         true,
	"name":              true,
	"registrar":         true,
	"registration_date": true,
	"expiration_date":   true,
	"status":            true,
	"nameserver1":       true,
	"nameserver2":       true,
	"price":             true,
	"currency":          true,
	"payment_status":    true,
	"auto_renewal":      true,
	"notes":             true,
	"days_until_expiry": true,
	"created_at":        true,
	"updated_at":        true,
}

// Repository handles domain persistence. Every read joins the clients table
// so results carry the owner's name and email, and recomputes
// days_until_expiry from the stored expiration date.
type Repository struct {
	conn database.Connection
}

func NewRepository(conn database.Connection) *Repository {
	return &Repository{conn: conn}
}

func (r *Repository) Create(ctx context.Context, d *entities.Domain) database.Result[*entities.Domain] {
	if d.Name == "" || d.ClientID == "" {
		return database.Fail[*entities.Domain](&database.ValidationError{Message: "domain name and client_id are required"})
	}

	// Domain names are unique across the panel. The check lives here so the
	// memory backend behaves like the SQL backends' unique index.
	existing, err := r.conn.SelectOne(ctx, database.Query{Table: table, Filters: map[string]any{"name": d.Name}})
	if err != nil {
		return database.Fail[*entities.Domain](err)
	}
	if existing != nil {
		return database.Fail[*entities.Domain](&database.ValidationError{Message: "domain name already exists"})
	}

	if d.ID == "" {
		d.ID = database.NewID(idPrefix)
	}
	if d.Status == "" {
		d.Status = entities.ServiceStatusPending
	}
	if d.Currency == "" {
		d.Currency = entities.CurrencyUSD
	}
	if d.PaymentStatus == "" {
		d.PaymentStatus = entities.PaymentStatusUnpaid
	}
	now := time.Now()
	d.CreatedAt = now
	d.UpdatedAt = now
	d.Recompute(now)

	if err := r.conn.Insert(ctx, table, database.DomainRow(d)); err != nil {
		return database.Fail[*entities.Domain](err)
	}
	return database.OkMsg(d, "Domain created successfully")
}

func (r *Repository) GetByID(ctx context.Context, id string) database.Result[*entities.Domain] {
	row, err := r.conn.SelectOne(ctx, database.Query{
		Table:   table,
		Filters: map[string]any{"id": id},
		Join:    database.ClientJoin(),
	})
	if err != nil {
		return database.Fail[*entities.Domain](err)
	}
	if row == nil {
		return database.Fail[*entities.Domain](&database.NotFoundError{Entity: "Domain"})
	}
	d := database.ScanDomain(row)
	d.Recompute(time.Now())
	return database.Ok(d)
}

func (r *Repository) GetAll(ctx context.Context, opts database.QueryOptions) database.Result[[]entities.Domain] {
	q := database.BuildQuery(table, opts, database.ClientJoin(), columns)

	total, err := r.conn.Count(ctx, table, q.Filters)
	if err != nil {
		return database.Fail[[]entities.Domain](err)
	}
	rows, err := r.conn.Select(ctx, q)
	if err != nil {
		return database.Fail[[]entities.Domain](err)
	}

	now := time.Now()
	out := make([]entities.Domain, len(rows))
	for i, row := range rows {
		d := database.ScanDomain(row)
		d.Recompute(now)
		out[i] = *d
	}
	return database.OkPage(out, database.PageFor(total, opts.Page, opts.Limit))
}

// GetByClientID returns the client's domains ordered by expiration date.
func (r *Repository) GetByClientID(ctx context.Context, clientID string) database.Result[[]entities.Domain] {
	return r.GetAll(ctx, database.QueryOptions{
		Filters: map[string]any{"client_id": clientID},
		SortBy:  "expiration_date",
	})
}

// GetByStatus returns all domains in the given lifecycle status.
func (r *Repository) GetByStatus(ctx context.Context, status entities.ServiceStatus) database.Result[[]entities.Domain] {
	return r.GetAll(ctx, database.QueryOptions{
		Filters: map[string]any{"status": string(status)},
		SortBy:  "expiration_date",
	})
}

// GetExpiringDomains returns domains expiring within the next `days` days,
// soonest first. Already-expired domains are excluded. The date predicate is
// applied here after recomputation; backends only see equality criteria.
func (r *Repository) GetExpiringDomains(ctx context.Context, days int) database.Result[[]entities.Domain] {
	res := r.GetAll(ctx, database.QueryOptions{SortBy: "expiration_date"})
	if !res.Success {
		return res
	}
	expiring := make([]entities.Domain, 0)
	for _, d := range res.Data {
		if d.DaysUntilExpiry > 0 && d.DaysUntilExpiry <= days {
			expiring = append(expiring, d)
		}
	}
	sort.SliceStable(expiring, func(i, j int) bool {
		return expiring[i].DaysUntilExpiry < expiring[j].DaysUntilExpiry
	})
	return database.Ok(expiring)
}

func (r *Repository) Update(ctx context.Context, id string, patch map[string]any) database.Result[*entities.Domain] {
	row, err := database.SanitizePatch(patch, columns, time.Now())
	if err != nil {
		return database.Fail[*entities.Domain](err)
	}
	// Renames go through the same uniqueness check as Create.
	if name := row.String("name"); name != "" {
		existing, err := r.conn.SelectOne(ctx, database.Query{Table: table, Filters: map[string]any{"name": name}})
		if err != nil {
			return database.Fail[*entities.Domain](err)
		}
		if existing != nil && existing.String("id") != id {
			return database.Fail[*entities.Domain](&database.ValidationError{Message: "domain name already exists"})
		}
	}
	// A changed expiration date invalidates the stored expiry snapshot.
	if exp, ok := rowTime(row, "expiration_date"); ok {
		row["days_until_expiry"] = entities.DaysUntil(exp, time.Now())
	}

	n, err := r.conn.Update(ctx, table, id, row)
	if err != nil {
		return database.Fail[*entities.Domain](err)
	}
	if n == 0 {
		return database.Fail[*entities.Domain](&database.NotFoundError{Entity: "Domain"})
	}
	res := r.GetByID(ctx, id)
	res.Message = "Domain updated successfully"
	return res
}

func (r *Repository) Delete(ctx context.Context, id string) database.Result[bool] {
	n, err := r.conn.Delete(ctx, table, id)
	if err != nil {
		return database.Fail[bool](err)
	}
	if n == 0 {
		return database.Fail[bool](&database.NotFoundError{Entity: "Domain"})
	}
	return database.OkMsg(true, "Domain deleted successfully")
}

// RefreshDerived re-derives the stored status and days_until_expiry
// snapshots for every domain and writes back the rows that drifted.
// Returns the number of rows updated. Pending stays pending; only the
// expiry-driven statuses are rewritten.
func (r *Repository) RefreshDerived(ctx context.Context) database.Result[int] {
	rows, err := r.conn.Select(ctx, database.Query{Table: table})
	if err != nil {
		return database.Fail[int](err)
	}

	now := time.Now()
	updated := 0
	for _, row := range rows {
		d := database.ScanDomain(row)
		days := entities.DaysUntil(d.ExpirationDate, now)
		status := d.Status
		if status != entities.ServiceStatusPending {
			status = entities.StatusForExpiry(days)
		}
		if days == d.DaysUntilExpiry && status == d.Status {
			continue
		}
		n, err := r.conn.Update(ctx, table, d.ID, database.Row{
			"days_until_expiry": days,
			"status":            string(status),
			"updated_at":        now,
		})
		if err != nil {
			return database.Fail[int](err)
		}
		updated += int(n)
	}
	return database.OkMsg(updated, "Domain statuses refreshed")
}

// rowTime extracts a time value from a patch, accepting time.Time or an
// RFC 3339 / date-only string as HTTP callers send.
func rowTime(row database.Row, key string) (time.Time, bool) {
	if _, present := row[key]; !present {
		return time.Time{}, false
	}
	if t := row.TimePtr(key); t != nil {
		return *t, true
	}
	return time.Time{}, false
}
