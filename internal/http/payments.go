package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/webghor/hostpanel/internal/database"
	"github.com/webghor/hostpanel/internal/entities"
)

// PaymentStore is the repository surface the payments controller needs.
type PaymentStore interface {
	Create(ctx context.Context, payment *entities.Payment, service entities.ServiceRef) database.Result[*entities.Payment]
	GetByID(ctx context.Context, id string) database.Result[*entities.Payment]
	GetAll(ctx context.Context, opts database.QueryOptions) database.Result[[]entities.Payment]
	GetByClientID(ctx context.Context, clientID string) database.Result[[]entities.Payment]
	GetOverduePayments(ctx context.Context) database.Result[[]entities.Payment]
	Update(ctx context.Context, id string, patch map[string]any) database.Result[*entities.Payment]
	MarkPaid(ctx context.Context, id, method string) database.Result[*entities.Payment]
	Delete(ctx context.Context, id string) database.Result[bool]
}

type PaymentsController struct {
	store PaymentStore
}

func NewPaymentsController(store PaymentStore) *PaymentsController {
	return &PaymentsController{store: store}
}

func (controller *PaymentsController) GetAll(c *gin.Context) {
	opts := parseQueryOptions(c, "payment_status", "client_id", "service_type", "currency")
	respondResult(c, controller.store.GetAll(c.Request.Context(), opts))
}

func (controller *PaymentsController) GetByID(c *gin.Context) {
	respondResult(c, controller.store.GetByID(c.Request.Context(), c.Param("id")))
}

func (controller *PaymentsController) GetByClient(c *gin.Context) {
	respondResult(c, controller.store.GetByClientID(c.Request.Context(), c.Param("id")))
}

func (controller *PaymentsController) GetOverdue(c *gin.Context) {
	respondResult(c, controller.store.GetOverduePayments(c.Request.Context()))
}

func (controller *PaymentsController) Create(c *gin.Context) {
	var payment entities.Payment
	if err := c.ShouldBindJSON(&payment); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	service := entities.ServiceRef{Kind: payment.ServiceType, ID: payment.ServiceID}
	if service.Kind == "" {
		service = entities.OtherService(payment.ServiceID)
	}
	respondCreated(c, controller.store.Create(c.Request.Context(), &payment, service))
}

func (controller *PaymentsController) Update(c *gin.Context) {
	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}
	respondResult(c, controller.store.Update(c.Request.Context(), c.Param("id"), patch))
}

// MarkPaid settles a payment. Body is optional: {"payment_method": "bkash"}.
func (controller *PaymentsController) MarkPaid(c *gin.Context) {
	var body struct {
		PaymentMethod string `json:"payment_method"`
	}
	_ = c.ShouldBindJSON(&body)
	respondResult(c, controller.store.MarkPaid(c.Request.Context(), c.Param("id"), body.PaymentMethod))
}

func (controller *PaymentsController) Delete(c *gin.Context) {
	respondResult(c, controller.store.Delete(c.Request.Context(), c.Param("id")))
}
