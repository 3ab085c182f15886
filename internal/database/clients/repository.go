// Package clients provides CRUD and rollup operations for client records.
//
// Every operation returns the uniform Result envelope; errors never escape
// as Go errors past this boundary.
package clients

import (
	"context"
	"time"

	"github.com/webghor/hostpanel/internal/database"
	"github.com/webghor/hostpanel/internal/entities"
)

const (
	table    = "clients"
	idPrefix = "CL"
)

var columns = map[string]bool{
	"id":                true,
	"name":              true,
	"email":             true,
	"phone":             true,
	"company":           true,
	"address":           true,
	"account_status":    true,
	"preferred_contact": true,
	"notes":             true,
	"created_at":        true,
	"updated_at":        true,
}

// Repository handles client persistence and the computed rollups derived
// from child entities.
type Repository struct {
	conn database.Connection
}

func NewRepository(conn database.Connection) *Repository {
	return &Repository{conn: conn}
}

// Create inserts a new client. The id is generated application-side so it
// stays stable across backend swaps.
func (r *Repository) Create(ctx context.Context, c *entities.Client) database.Result[*entities.Client] {
	if c.Name == "" || c.Email == "" {
		return database.Fail[*entities.Client](&database.ValidationError{Message: "client name and email are required"})
	}
	if c.ID == "" {
		c.ID = database.NewID(idPrefix)
	}
	if c.AccountStatus == "" {
		c.AccountStatus = entities.AccountStatusActive
	}
	if c.PreferredContact == "" {
		c.PreferredContact = entities.ContactMethodEmail
	}
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	if err := r.conn.Insert(ctx, table, database.ClientRow(c)); err != nil {
		return database.Fail[*entities.Client](err)
	}
	return database.OkMsg(c, "Client created successfully")
}

// GetByID returns one client with its rollup fields populated from child
// entities.
func (r *Repository) GetByID(ctx context.Context, id string) database.Result[*entities.Client] {
	row, err := r.conn.SelectOne(ctx, database.Query{Table: table, Filters: map[string]any{"id": id}})
	if err != nil {
		return database.Fail[*entities.Client](err)
	}
	if row == nil {
		return database.Fail[*entities.Client](&database.NotFoundError{Entity: "Client"})
	}
	c := database.ScanClient(row)
	if err := r.attachRollups(ctx, c); err != nil {
		return database.Fail[*entities.Client](err)
	}
	return database.Ok(c)
}

// GetAll lists clients with equality filters, sorting and pagination.
func (r *Repository) GetAll(ctx context.Context, opts database.QueryOptions) database.Result[[]entities.Client] {
	q := database.BuildQuery(table, opts, nil, columns)

	total, err := r.conn.Count(ctx, table, q.Filters)
	if err != nil {
		return database.Fail[[]entities.Client](err)
	}
	rows, err := r.conn.Select(ctx, q)
	if err != nil {
		return database.Fail[[]entities.Client](err)
	}

	out := make([]entities.Client, len(rows))
	for i, row := range rows {
		c := database.ScanClient(row)
		if err := r.attachRollups(ctx, c); err != nil {
			return database.Fail[[]entities.Client](err)
		}
		out[i] = *c
	}
	return database.OkPage(out, database.PageFor(total, opts.Page, opts.Limit))
}

// Update applies a partial merge: only known, non-nil fields in the patch
// are written; id and created_at are immutable; updated_at is stamped.
func (r *Repository) Update(ctx context.Context, id string, patch map[string]any) database.Result[*entities.Client] {
	row, err := database.SanitizePatch(patch, columns, time.Now())
	if err != nil {
		return database.Fail[*entities.Client](err)
	}
	n, err := r.conn.Update(ctx, table, id, row)
	if err != nil {
		return database.Fail[*entities.Client](err)
	}
	if n == 0 {
		return database.Fail[*entities.Client](&database.NotFoundError{Entity: "Client"})
	}
	res := r.GetByID(ctx, id)
	res.Message = "Client updated successfully"
	return res
}

// Delete removes a client. Clients still referenced by domains, hosting or
// payments are protected; the referential convention is enforced here, not
// by the backends.
func (r *Repository) Delete(ctx context.Context, id string) database.Result[bool] {
	for _, child := range []string{"domains", "hosting", "payments"} {
		n, err := r.conn.Count(ctx, child, map[string]any{"client_id": id})
		if err != nil {
			return database.Fail[bool](err)
		}
		if n > 0 {
			return database.Fail[bool](&database.ValidationError{
				Message: "client has existing services or payments and cannot be deleted",
			})
		}
	}

	n, err := r.conn.Delete(ctx, table, id)
	if err != nil {
		return database.Fail[bool](err)
	}
	if n == 0 {
		return database.Fail[bool](&database.NotFoundError{Entity: "Client"})
	}
	return database.OkMsg(true, "Client deleted successfully")
}

// attachRollups aggregates the computed client fields from child tables.
// Nothing here is stored back on the client row.
func (r *Repository) attachRollups(ctx context.Context, c *entities.Client) error {
	domains, err := r.conn.Count(ctx, "domains", map[string]any{"client_id": c.ID})
	if err != nil {
		return err
	}
	hosting, err := r.conn.Count(ctx, "hosting", map[string]any{"client_id": c.ID})
	if err != nil {
		return err
	}
	c.TotalDomains = int(domains)
	c.TotalHosting = int(hosting)
	c.TotalServices = c.TotalDomains + c.TotalHosting

	now := time.Now()
	c.UpcomingRenewals = 0
	for _, child := range []string{"domains", "hosting"} {
		rows, err := r.conn.Select(ctx, database.Query{Table: child, Filters: map[string]any{"client_id": c.ID}})
		if err != nil {
			return err
		}
		for _, row := range rows {
			days := entities.DaysUntil(row.Time("expiration_date"), now)
			if days > 0 && days <= entities.ExpiringSoonDays {
				c.UpcomingRenewals++
			}
		}
	}

	payments, err := r.conn.Select(ctx, database.Query{Table: "payments", Filters: map[string]any{"client_id": c.ID}})
	if err != nil {
		return err
	}
	c.TotalSpent = 0
	c.LastPayment = nil
	for _, row := range payments {
		p := database.ScanPayment(row)
		if p.PaymentStatus != entities.PaymentStatusPaid {
			continue
		}
		// Converted (BDT-side) amounts, the same units the dashboard sums.
		p.Recompute(now)
		c.TotalSpent += p.ConvertedAmount
		if p.PaymentDate != nil {
			if c.LastPayment == nil || p.PaymentDate.After(*c.LastPayment) {
				c.LastPayment = p.PaymentDate
			}
		}
	}
	return nil
}
