package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/webghor/hostpanel/internal/database"
	"github.com/webghor/hostpanel/internal/entities"
)

// DomainStore is the repository surface the domains controller needs.
type DomainStore interface {
	Create(ctx context.Context, domain *entities.Domain) database.Result[*entities.Domain]
	GetByID(ctx context.Context, id string) database.Result[*entities.Domain]
	GetAll(ctx context.Context, opts database.QueryOptions) database.Result[[]entities.Domain]
	GetByClientID(ctx context.Context, clientID string) database.Result[[]entities.Domain]
	GetExpiringDomains(ctx context.Context, days int) database.Result[[]entities.Domain]
	Update(ctx context.Context, id string, patch map[string]any) database.Result[*entities.Domain]
	Delete(ctx context.Context, id string) database.Result[bool]
}

type DomainsController struct {
	store DomainStore
}

func NewDomainsController(store DomainStore) *DomainsController {
	return &DomainsController{store: store}
}

func (controller *DomainsController) GetAll(c *gin.Context) {
	opts := parseQueryOptions(c, "status", "payment_status", "client_id", "registrar")
	respondResult(c, controller.store.GetAll(c.Request.Context(), opts))
}

func (controller *DomainsController) GetByID(c *gin.Context) {
	respondResult(c, controller.store.GetByID(c.Request.Context(), c.Param("id")))
}

func (controller *DomainsController) GetByClient(c *gin.Context) {
	respondResult(c, controller.store.GetByClientID(c.Request.Context(), c.Param("id")))
}

func (controller *DomainsController) GetExpiring(c *gin.Context) {
	days := parseDaysParam(c, entities.ExpiringSoonDays)
	respondResult(c, controller.store.GetExpiringDomains(c.Request.Context(), days))
}

func (controller *DomainsController) Create(c *gin.Context) {
	var domain entities.Domain
	if err := c.ShouldBindJSON(&domain); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}
	respondCreated(c, controller.store.Create(c.Request.Context(), &domain))
}

func (controller *DomainsController) Update(c *gin.Context) {
	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}
	respondResult(c, controller.store.Update(c.Request.Context(), c.Param("id"), patch))
}

func (controller *DomainsController) Delete(c *gin.Context) {
	respondResult(c, controller.store.Delete(c.Request.Context(), c.Param("id")))
}
