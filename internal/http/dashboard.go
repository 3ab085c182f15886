package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/webghor/hostpanel/internal/database"
	"github.com/webghor/hostpanel/internal/entities"
	"github.com/webghor/hostpanel/internal/services"
)

// DashboardProvider aggregates repository data for the panel views.
type DashboardProvider interface {
	Stats(ctx context.Context) database.Result[*services.DashboardStats]
	ExpiryCalendar(ctx context.Context, days int) database.Result[[]entities.ExpiryEvent]
}

type DashboardController struct {
	provider DashboardProvider
}

func NewDashboardController(provider DashboardProvider) *DashboardController {
	return &DashboardController{provider: provider}
}

func (controller *DashboardController) Stats(c *gin.Context) {
	respondResult(c, controller.provider.Stats(c.Request.Context()))
}

func (controller *DashboardController) Calendar(c *gin.Context) {
	days := parseDaysParam(c, entities.ExpiringSoonDays)
	respondResult(c, controller.provider.ExpiryCalendar(c.Request.Context(), days))
}
