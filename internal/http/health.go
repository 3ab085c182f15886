package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Backend string            `json:"backend,omitempty"`
	Checks  map[string]string `json:"checks"`
}

// HealthSource is the manager surface the health check needs.
type HealthSource interface {
	Backend() string
	Ping(ctx context.Context) error
}

type HealthController struct {
	source  HealthSource
	version string
}

func NewHealthController(source HealthSource, version string) *HealthController {
	return &HealthController{
		source:  source,
		version: version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"
	backend := ""

	if h.source != nil {
		backend = h.source.Backend()
		if err := h.source.Ping(c.Request.Context()); err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["database"] = "ok"
		}
	} else {
		checks["database"] = "not configured"
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Backend: backend,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}
