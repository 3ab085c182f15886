package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/webghor/hostpanel/internal/database"
	"github.com/webghor/hostpanel/internal/entities"
)

// HostingStore is the repository surface the hosting controller needs.
type HostingStore interface {
	Create(ctx context.Context, hosting *entities.Hosting) database.Result[*entities.Hosting]
	GetByID(ctx context.Context, id string) database.Result[*entities.Hosting]
	GetAll(ctx context.Context, opts database.QueryOptions) database.Result[[]entities.Hosting]
	GetByClientID(ctx context.Context, clientID string) database.Result[[]entities.Hosting]
	GetExpiringHosting(ctx context.Context, days int) database.Result[[]entities.Hosting]
	Update(ctx context.Context, id string, patch map[string]any) database.Result[*entities.Hosting]
	Delete(ctx context.Context, id string) database.Result[bool]
}

type HostingController struct {
	store HostingStore
}

func NewHostingController(store HostingStore) *HostingController {
	return &HostingController{store: store}
}

func (controller *HostingController) GetAll(c *gin.Context) {
	opts := parseQueryOptions(c, "status", "payment_status", "client_id", "provider", "hosting_type")
	respondResult(c, controller.store.GetAll(c.Request.Context(), opts))
}

func (controller *HostingController) GetByID(c *gin.Context) {
	respondResult(c, controller.store.GetByID(c.Request.Context(), c.Param("id")))
}

func (controller *HostingController) GetByClient(c *gin.Context) {
	respondResult(c, controller.store.GetByClientID(c.Request.Context(), c.Param("id")))
}

func (controller *HostingController) GetExpiring(c *gin.Context) {
	days := parseDaysParam(c, entities.ExpiringSoonDays)
	respondResult(c, controller.store.GetExpiringHosting(c.Request.Context(), days))
}

func (controller *HostingController) Create(c *gin.Context) {
	var hosting entities.Hosting
	if err := c.ShouldBindJSON(&hosting); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}
	respondCreated(c, controller.store.Create(c.Request.Context(), &hosting))
}

func (controller *HostingController) Update(c *gin.Context) {
	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}
	respondResult(c, controller.store.Update(c.Request.Context(), c.Param("id"), patch))
}

func (controller *HostingController) Delete(c *gin.Context) {
	respondResult(c, controller.store.Delete(c.Request.Context(), c.Param("id")))
}
