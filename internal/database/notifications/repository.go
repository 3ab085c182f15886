// Package notifications stores alert records generated by the expiry and
// overdue scans. Each notification carries a dedupe key so re-running a
// scan never produces duplicate alerts for the same underlying event.
package notifications

import (
	"context"
	"time"

	"github.com/webghor/hostpanel/internal/database"
	"github.com/webghor/hostpanel/internal/entities"
)

const (
	table    = "notifications"
	idPrefix = "NT"
)

var columns = map[string]bool{
	"id":         true,
	"type":       true,
	"severity":   true,
	"title":      true,
	"message":    true,
	"entity_id":  true,
	"client_id":  true,
	"dedupe_key": true,
	"read":       true,
	"created_at": true,
}

type Repository struct {
	conn database.Connection
}

func NewRepository(conn database.Connection) *Repository {
	return &Repository{conn: conn}
}

// Create inserts a notification unless one with the same dedupe key already
// exists. Suppressed duplicates are reported as success with the existing
// record, since the caller's event is already covered.
func (r *Repository) Create(ctx context.Context, n *entities.Notification) database.Result[*entities.Notification] {
	if n.Title == "" {
		return database.Fail[*entities.Notification](&database.ValidationError{Message: "title is required"})
	}
	if n.DedupeKey != "" {
		existing, err := r.conn.SelectOne(ctx, database.Query{
			Table:   table,
			Filters: map[string]any{"dedupe_key": n.DedupeKey},
		})
		if err != nil {
			return database.Fail[*entities.Notification](err)
		}
		if existing != nil {
			return database.OkMsg(database.ScanNotification(existing), "Notification already exists")
		}
	}

	if n.ID == "" {
		n.ID = database.NewID(idPrefix)
	}
	if n.Severity == "" {
		n.Severity = entities.SeverityInfo
	}
	n.CreatedAt = time.Now()

	if err := r.conn.Insert(ctx, table, database.NotificationRow(n)); err != nil {
		return database.Fail[*entities.Notification](err)
	}
	return database.OkMsg(n, "Notification created successfully")
}

func (r *Repository) GetAll(ctx context.Context, opts database.QueryOptions) database.Result[[]entities.Notification] {
	q := database.BuildQuery(table, opts, nil, columns)

	total, err := r.conn.Count(ctx, table, q.Filters)
	if err != nil {
		return database.Fail[[]entities.Notification](err)
	}
	rows, err := r.conn.Select(ctx, q)
	if err != nil {
		return database.Fail[[]entities.Notification](err)
	}

	out := make([]entities.Notification, len(rows))
	for i, row := range rows {
		out[i] = *database.ScanNotification(row)
	}
	return database.OkPage(out, database.PageFor(total, opts.Page, opts.Limit))
}

// GetUnread returns unread notifications, newest first.
func (r *Repository) GetUnread(ctx context.Context) database.Result[[]entities.Notification] {
	return r.GetAll(ctx, database.QueryOptions{
		Filters:   map[string]any{"read": false},
		SortBy:    "created_at",
		SortOrder: "desc",
	})
}

func (r *Repository) MarkRead(ctx context.Context, id string) database.Result[bool] {
	n, err := r.conn.Update(ctx, table, id, database.Row{"read": true})
	if err != nil {
		return database.Fail[bool](err)
	}
	if n == 0 {
		return database.Fail[bool](&database.NotFoundError{Entity: "Notification"})
	}
	return database.OkMsg(true, "Notification marked as read")
}

// MarkAllRead marks every unread notification as read and reports how many
// were affected.
func (r *Repository) MarkAllRead(ctx context.Context) database.Result[int] {
	res := r.GetUnread(ctx)
	if !res.Success {
		return database.Result[int]{Success: false, Error: res.Error}
	}
	count := 0
	for _, n := range res.Data {
		affected, err := r.conn.Update(ctx, table, n.ID, database.Row{"read": true})
		if err != nil {
			return database.Fail[int](err)
		}
		count += int(affected)
	}
	return database.OkMsg(count, "All notifications marked as read")
}

func (r *Repository) Delete(ctx context.Context, id string) database.Result[bool] {
	n, err := r.conn.Delete(ctx, table, id)
	if err != nil {
		return database.Fail[bool](err)
	}
	if n == 0 {
		return database.Fail[bool](&database.NotFoundError{Entity: "Notification"})
	}
	return database.OkMsg(true, "Notification deleted successfully")
}
