package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webghor/hostpanel/internal/database"
	"github.com/webghor/hostpanel/internal/database/clients"
	"github.com/webghor/hostpanel/internal/database/domains"
	"github.com/webghor/hostpanel/internal/database/hostings"
	"github.com/webghor/hostpanel/internal/database/memory"
	"github.com/webghor/hostpanel/internal/database/notifications"
	"github.com/webghor/hostpanel/internal/database/payments"
	"github.com/webghor/hostpanel/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testAPI struct {
	router  *gin.Engine
	conn    database.Connection
	manager *database.Manager
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	conn := memory.New()
	manager := database.NewManager(database.Options{}, database.Backends{
		Memory: func() database.Connection { return conn },
	})
	res := manager.Initialize(context.Background())
	require.True(t, res.Success, res.Error)

	clientRepo := clients.NewRepository(conn)
	domainRepo := domains.NewRepository(conn)
	hostingRepo := hostings.NewRepository(conn)
	paymentRepo := payments.NewRepository(conn)
	notificationRepo := notifications.NewRepository(conn)

	router := NewRouter(RouterConfig{
		Version:       "test",
		Health:        manager,
		Clients:       clientRepo,
		Domains:       domainRepo,
		Hosting:       hostingRepo,
		Payments:      paymentRepo,
		Notifications: notificationRepo,
		Dashboard:     services.NewDashboardService(clientRepo, domainRepo, hostingRepo, paymentRepo),
		Scanner:       services.NewNotifyService(domainRepo, hostingRepo, paymentRepo, notificationRepo),
		Backups:       manager,
		Connection:    conn,
	})
	return &testAPI{router: router, conn: conn, manager: manager}
}

func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else if raw, ok := body.(string); ok {
		reader = bytes.NewReader([]byte(raw))
	} else {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Error      string          `json:"error"`
	Message    string          `json:"message"`
	Pagination json.RawMessage `json:"pagination"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func TestPing(t *testing.T) {
	api := newTestAPI(t)
	rec := api.do(t, "GET", "/ping", nil)
	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestClientLifecycle(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, "POST", "/api/clients", map[string]any{
		"name":  "Rahim Traders",
		"email": "contact@rahimtraders.com",
	})
	require.Equal(t, 201, rec.Code, rec.Body.String())
	env := decodeEnvelope(t, rec)
	require.True(t, env.Success, env.Error)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotEmpty(t, created.ID)

	rec = api.do(t, "GET", "/api/clients/"+created.ID, nil)
	assert.Equal(t, 200, rec.Code)

	rec = api.do(t, "PUT", "/api/clients/"+created.ID, map[string]any{"phone": "+8801712345678"})
	require.Equal(t, 200, rec.Code, rec.Body.String())

	rec = api.do(t, "DELETE", "/api/clients/"+created.ID, nil)
	assert.Equal(t, 200, rec.Code, rec.Body.String())

	rec = api.do(t, "GET", "/api/clients/"+created.ID, nil)
	assert.Equal(t, 404, rec.Code)
}

func TestClientNotFound(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, "GET", "/api/clients/CL_missing", nil)
	assert.Equal(t, 404, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "Client not found", env.Error)
}

func TestCreateClientInvalidBody(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, "POST", "/api/clients", "{not json")
	assert.Equal(t, 400, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Contains(t, env.Error, "invalid request body")
}

func TestUpdateWithNoKnownFields(t *testing.T) {
	api := newTestAPI(t)
	client := createClientViaAPI(t, api)

	rec := api.do(t, "PUT", "/api/clients/"+client, map[string]any{"bogus": 1})
	assert.Equal(t, 400, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Contains(t, env.Error, "no fields to update")
}

func TestDeleteReferencedClient(t *testing.T) {
	api := newTestAPI(t)
	client := createClientViaAPI(t, api)

	rec := api.do(t, "POST", "/api/domains", map[string]any{
		"client_id":       client,
		"name":            "rahimtraders.com",
		"expiration_date": time.Now().AddDate(1, 0, 0).Format(time.RFC3339),
	})
	require.Equal(t, 201, rec.Code, rec.Body.String())

	rec = api.do(t, "DELETE", "/api/clients/"+client, nil)
	assert.Equal(t, 400, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Contains(t, env.Error, "cannot be deleted")
}

func createClientViaAPI(t *testing.T, api *testAPI) string {
	t.Helper()
	rec := api.do(t, "POST", "/api/clients", map[string]any{
		"name":  "Rahim Traders",
		"email": "contact@rahimtraders.com",
	})
	require.Equal(t, 201, rec.Code, rec.Body.String())
	env := decodeEnvelope(t, rec)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	return created.ID
}

func TestExpiringDomainsRoute(t *testing.T) {
	api := newTestAPI(t)
	client := createClientViaAPI(t, api)

	for i, days := range []int{5, 60} {
		rec := api.do(t, "POST", "/api/domains", map[string]any{
			"client_id":       client,
			"name":            fmt.Sprintf("site%d.com", i),
			"expiration_date": time.Now().AddDate(0, 0, days).Format(time.RFC3339),
		})
		require.Equal(t, 201, rec.Code, rec.Body.String())
	}

	rec := api.do(t, "GET", "/api/domains/expiring?days=30", nil)
	require.Equal(t, 200, rec.Code, rec.Body.String())
	env := decodeEnvelope(t, rec)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "site0.com", list[0]["name"])
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, "GET", "/health", nil)
	require.Equal(t, 200, rec.Code, rec.Body.String())

	var health HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "memory", health.Backend)
	assert.Equal(t, "ok", health.Checks["database"])
}

func TestHealthUnhealthy(t *testing.T) {
	// An uninitialized manager cannot answer queries.
	manager := database.NewManager(database.Options{}, database.Backends{
		Memory: func() database.Connection { return memory.New() },
	})
	router := NewRouter(RouterConfig{Health: manager})

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, 503, rec.Code)
	var health HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "unhealthy", health.Status)
}

func TestNotificationScanRoute(t *testing.T) {
	api := newTestAPI(t)
	client := createClientViaAPI(t, api)

	rec := api.do(t, "POST", "/api/domains", map[string]any{
		"client_id":       client,
		"name":            "expiring.com",
		"expiration_date": time.Now().AddDate(0, 0, 10).Format(time.RFC3339),
	})
	require.Equal(t, 201, rec.Code, rec.Body.String())

	rec = api.do(t, "POST", "/api/notifications/scan", nil)
	require.Equal(t, 200, rec.Code, rec.Body.String())
	env := decodeEnvelope(t, rec)
	var report services.ScanReport
	require.NoError(t, json.Unmarshal(env.Data, &report))
	assert.Equal(t, 1, report.Created)

	rec = api.do(t, "GET", "/api/notifications/unread", nil)
	require.Equal(t, 200, rec.Code)
	env = decodeEnvelope(t, rec)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 1)
}

func TestBackupInlineAndHistory(t *testing.T) {
	api := newTestAPI(t)
	createClientViaAPI(t, api)

	rec := api.do(t, "POST", "/api/backups", nil)
	require.Equal(t, 200, rec.Code, rec.Body.String())
	env := decodeEnvelope(t, rec)
	assert.Contains(t, env.Message, "backup completed")

	rec = api.do(t, "GET", "/api/backups", nil)
	require.Equal(t, 200, rec.Code)
	env = decodeEnvelope(t, rec)
	var history []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &history))
	require.Len(t, history, 1)
	assert.Equal(t, "manual", history[0]["backup_type"])
	assert.Equal(t, "completed", history[0]["status"])
}

func TestExportRoutes(t *testing.T) {
	api := newTestAPI(t)
	createClientViaAPI(t, api)

	rec := api.do(t, "GET", "/api/export/clients/csv", nil)
	require.Equal(t, 200, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "clients.csv")
	assert.Contains(t, rec.Body.String(), "id,")

	rec = api.do(t, "GET", "/api/export/clients/json", nil)
	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "clients.json")

	rec = api.do(t, "GET", "/api/export/sql", nil)
	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "INSERT INTO clients")

	rec = api.do(t, "GET", "/api/export/nope/csv", nil)
	assert.Equal(t, 400, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Contains(t, env.Error, "unknown table")
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, 404, statusFor("Client not found"))
	assert.Equal(t, 400, statusFor("name and email are required"))
	assert.Equal(t, 400, statusFor("domain name already exists"))
	assert.Equal(t, 400, statusFor("client has services and cannot be deleted"))
	assert.Equal(t, 400, statusFor("no fields to update"))
	assert.Equal(t, 500, statusFor("select clients: disk I/O error"))
}
