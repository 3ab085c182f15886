package http

import (
	"github.com/gin-gonic/gin"

	"github.com/webghor/hostpanel/internal/database"
)

// RouterConfig carries every dependency the router needs. Optional fields
// may be nil; the corresponding routes are skipped.
type RouterConfig struct {
	Version string

	Health        HealthSource
	Clients       ClientStore
	Domains       DomainStore
	Hosting       HostingStore
	Payments      PaymentStore
	Notifications NotificationStore
	Dashboard     DashboardProvider
	Scanner       ScanTrigger
	Backups       BackupStore
	Connection    database.Connection
	Enqueuer      TaskEnqueuer
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Health, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.String(200, "pong")
	})

	api := router.Group("/api")

	clients := NewClientsController(cfg.Clients)
	api.GET("/clients", clients.GetAll)
	api.GET("/clients/:id", clients.GetByID)
	api.POST("/clients", clients.Create)
	api.PUT("/clients/:id", clients.Update)
	api.DELETE("/clients/:id", clients.Delete)

	domains := NewDomainsController(cfg.Domains)
	api.GET("/domains", domains.GetAll)
	api.GET("/domains/expiring", domains.GetExpiring)
	api.GET("/domains/:id", domains.GetByID)
	api.GET("/clients/:id/domains", domains.GetByClient)
	api.POST("/domains", domains.Create)
	api.PUT("/domains/:id", domains.Update)
	api.DELETE("/domains/:id", domains.Delete)

	hosting := NewHostingController(cfg.Hosting)
	api.GET("/hosting", hosting.GetAll)
	api.GET("/hosting/expiring", hosting.GetExpiring)
	api.GET("/hosting/:id", hosting.GetByID)
	api.GET("/clients/:id/hosting", hosting.GetByClient)
	api.POST("/hosting", hosting.Create)
	api.PUT("/hosting/:id", hosting.Update)
	api.DELETE("/hosting/:id", hosting.Delete)

	payments := NewPaymentsController(cfg.Payments)
	api.GET("/payments", payments.GetAll)
	api.GET("/payments/overdue", payments.GetOverdue)
	api.GET("/payments/:id", payments.GetByID)
	api.GET("/clients/:id/payments", payments.GetByClient)
	api.POST("/payments", payments.Create)
	api.PUT("/payments/:id", payments.Update)
	api.POST("/payments/:id/paid", payments.MarkPaid)
	api.DELETE("/payments/:id", payments.Delete)

	if cfg.Dashboard != nil {
		dashboard := NewDashboardController(cfg.Dashboard)
		api.GET("/dashboard/stats", dashboard.Stats)
		api.GET("/dashboard/calendar", dashboard.Calendar)
	}

	if cfg.Notifications != nil {
		notifications := NewNotificationsController(cfg.Notifications, cfg.Scanner)
		api.GET("/notifications", notifications.GetAll)
		api.GET("/notifications/unread", notifications.GetUnread)
		api.POST("/notifications/:id/read", notifications.MarkRead)
		api.POST("/notifications/read-all", notifications.MarkAllRead)
		api.DELETE("/notifications/:id", notifications.Delete)
		if cfg.Scanner != nil {
			api.POST("/notifications/scan", notifications.Scan)
		}
	}

	if cfg.Backups != nil {
		backups := NewBackupsController(cfg.Backups, cfg.Enqueuer)
		api.POST("/backups", backups.Run)
		api.GET("/backups", backups.History)
	}

	if cfg.Connection != nil {
		export := NewExportController(cfg.Connection)
		api.GET("/export/sql", export.SQL)
		api.GET("/export/:table/csv", export.CSV)
		api.GET("/export/:table/json", export.JSON)
	}

	return router
}
