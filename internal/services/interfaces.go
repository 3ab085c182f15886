package services

import (
	"context"

	"github.com/webghor/hostpanel/internal/database"
	"github.com/webghor/hostpanel/internal/entities"
)

// ClientReader provides read-only access to clients.
type ClientReader interface {
	GetAll(ctx context.Context, opts database.QueryOptions) database.Result[[]entities.Client]
}

// DomainReader provides the domain queries the dashboard needs.
type DomainReader interface {
	GetAll(ctx context.Context, opts database.QueryOptions) database.Result[[]entities.Domain]
	GetExpiringDomains(ctx context.Context, days int) database.Result[[]entities.Domain]
}

// HostingReader provides the hosting queries the dashboard needs.
type HostingReader interface {
	GetAll(ctx context.Context, opts database.QueryOptions) database.Result[[]entities.Hosting]
	GetExpiringHosting(ctx context.Context, days int) database.Result[[]entities.Hosting]
}

// PaymentReader provides the payment queries the dashboard needs.
type PaymentReader interface {
	GetAll(ctx context.Context, opts database.QueryOptions) database.Result[[]entities.Payment]
	GetOverduePayments(ctx context.Context) database.Result[[]entities.Payment]
}

// NotificationWriter persists scan-generated alerts.
type NotificationWriter interface {
	Create(ctx context.Context, n *entities.Notification) database.Result[*entities.Notification]
}
