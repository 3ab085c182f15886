package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/webghor/hostpanel/internal/database"
	"github.com/webghor/hostpanel/internal/entities"
	"github.com/webghor/hostpanel/internal/services"
)

// NotificationStore is the repository surface the notifications controller needs.
type NotificationStore interface {
	GetAll(ctx context.Context, opts database.QueryOptions) database.Result[[]entities.Notification]
	GetUnread(ctx context.Context) database.Result[[]entities.Notification]
	MarkRead(ctx context.Context, id string) database.Result[bool]
	MarkAllRead(ctx context.Context) database.Result[int]
	Delete(ctx context.Context, id string) database.Result[bool]
}

// ScanTrigger runs the expiry/overdue scan on demand.
type ScanTrigger interface {
	Scan(ctx context.Context) database.Result[*services.ScanReport]
}

type NotificationsController struct {
	store   NotificationStore
	scanner ScanTrigger
}

func NewNotificationsController(store NotificationStore, scanner ScanTrigger) *NotificationsController {
	return &NotificationsController{store: store, scanner: scanner}
}

func (controller *NotificationsController) GetAll(c *gin.Context) {
	opts := parseQueryOptions(c, "type", "severity", "client_id")
	respondResult(c, controller.store.GetAll(c.Request.Context(), opts))
}

func (controller *NotificationsController) GetUnread(c *gin.Context) {
	respondResult(c, controller.store.GetUnread(c.Request.Context()))
}

func (controller *NotificationsController) MarkRead(c *gin.Context) {
	respondResult(c, controller.store.MarkRead(c.Request.Context(), c.Param("id")))
}

func (controller *NotificationsController) MarkAllRead(c *gin.Context) {
	respondResult(c, controller.store.MarkAllRead(c.Request.Context()))
}

func (controller *NotificationsController) Delete(c *gin.Context) {
	respondResult(c, controller.store.Delete(c.Request.Context(), c.Param("id")))
}

// Scan triggers an immediate notification scan pass.
func (controller *NotificationsController) Scan(c *gin.Context) {
	respondResult(c, controller.scanner.Scan(c.Request.Context()))
}
