package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/webghor/hostpanel/internal/database"
	"github.com/webghor/hostpanel/internal/entities"
)

// ClientStore is the repository surface the clients controller needs.
type ClientStore interface {
	Create(ctx context.Context, client *entities.Client) database.Result[*entities.Client]
	GetByID(ctx context.Context, id string) database.Result[*entities.Client]
	GetAll(ctx context.Context, opts database.QueryOptions) database.Result[[]entities.Client]
	Update(ctx context.Context, id string, patch map[string]any) database.Result[*entities.Client]
	Delete(ctx context.Context, id string) database.Result[bool]
}

type ClientsController struct {
	store ClientStore
}

func NewClientsController(store ClientStore) *ClientsController {
	return &ClientsController{store: store}
}

func (controller *ClientsController) GetAll(c *gin.Context) {
	opts := parseQueryOptions(c, "account_status", "contact_method")
	respondResult(c, controller.store.GetAll(c.Request.Context(), opts))
}

func (controller *ClientsController) GetByID(c *gin.Context) {
	respondResult(c, controller.store.GetByID(c.Request.Context(), c.Param("id")))
}

func (controller *ClientsController) Create(c *gin.Context) {
	var client entities.Client
	if err := c.ShouldBindJSON(&client); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}
	respondCreated(c, controller.store.Create(c.Request.Context(), &client))
}

func (controller *ClientsController) Update(c *gin.Context) {
	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}
	respondResult(c, controller.store.Update(c.Request.Context(), c.Param("id"), patch))
}

func (controller *ClientsController) Delete(c *gin.Context) {
	respondResult(c, controller.store.Delete(c.Request.Context(), c.Param("id")))
}
