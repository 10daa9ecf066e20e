package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Mayorista-api/internal/application/audit"
	"github.com/jhoicas/Mayorista-api/internal/application/auth"
	"github.com/jhoicas/Mayorista-api/internal/application/dto"
	"github.com/jhoicas/Mayorista-api/internal/application/orders"
	"github.com/jhoicas/Mayorista-api/internal/application/usecase"
	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
	"github.com/jhoicas/Mayorista-api/internal/infrastructure/memory"
	"github.com/jhoicas/Mayorista-api/internal/infrastructure/metrics"
	apphttp "github.com/jhoicas/Mayorista-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Mayorista-api/pkg/jwt"
	"github.com/jhoicas/Mayorista-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// App completa sobre el store en memoria
// ──────────────────────────────────────────────────────────────────────────────

func buildAPI(t *testing.T) *fiber.App {
	t.Helper()
	snap := &entity.Snapshot{
		Users: []entity.User{
			{ID: "u-super", Name: "Root", Email: "root@test", Role: entity.RoleSuperAdmin, Protected: true, LegacyPassword: "raiz-secreta"},
			{ID: "u-b", Name: "Ana", Email: "ana@b1", Role: entity.RoleBuyer, BuyerID: "B1", LegacyPassword: "clave-ana"},
			{ID: "u-sm", Name: "Sara", Email: "sara@s1", Role: entity.RoleSupplierManager, SupplierID: "S1"},
		},
		Suppliers: []entity.Supplier{{ID: "S1", Name: "Acme"}},
		Buyers:    []entity.Buyer{{ID: "B1", Name: "Tiendas Uno"}},
		Products: []entity.Product{
			{ID: "p1", SupplierID: "S1", SKU: "CAF-1", Name: "Café", BasePrice: decimal.NewFromInt(10), Active: true},
		},
	}
	log := logger.Nop()
	store, _, err := memory.Open(context.Background(), memory.NewVolatileRepository(snap),
		memory.MigrationOptions{BcryptCost: bcrypt.MinCost}, log)
	require.NoError(t, err)

	rec := audit.NewRecorder()
	m := metrics.New("test")
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.FiberErrorHandler(log)})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:         auth.NewAuthUseCase(store, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		Orders:         orders.NewService(store, rec, log).WithObserver(m),
		Audit:          audit.NewService(store, rec, nil, log),
		UserUC:         usecase.NewUserUseCase(store, rec, log).WithBcryptCost(bcrypt.MinCost),
		OrgUC:          usecase.NewOrgUseCase(store, rec, log),
		ProductUC:      usecase.NewProductUseCase(store, rec, log),
		JWTSecret:      testJWTSecret,
		AppName:        "test",
		Log:            log,
		Metrics:        m,
		MetricsHandler: m.Handler(),
	})
	return app
}

func bearer(t *testing.T, userID string, role entity.Role) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Identity{UserID: userID, Role: string(role)}, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func call(t *testing.T, app *fiber.App, method, path, auth string, body any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = strings.NewReader(string(raw))
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_LoginYMe(t *testing.T) {
	app := buildAPI(t)

	resp, body := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "ANA@b1", Password: "clave-ana"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var login dto.LoginResponse
	require.NoError(t, json.Unmarshal(body, &login))
	assert.Equal(t, "u-b", login.User.ID)

	resp, body = call(t, app, http.MethodGet, "/api/auth/me", "Bearer "+login.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"role":"buyer"`)

	resp, _ = call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "ana@b1", Password: "otra"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_MapeoDeErrores(t *testing.T) {
	app := buildAPI(t)
	super := bearer(t, "u-super", entity.RoleSuperAdmin)

	resp, body := call(t, app, http.MethodPost, "/api/orders", super, dto.CreateOrderRequest{
		BuyerID: "B1", SupplierID: "S1", Status: "shipped", ApprovalStatus: "accepted",
		Items: []dto.OrderLineRequest{{ProductID: "p1", Quantity: 2}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var order dto.OrderResponse
	require.NoError(t, json.Unmarshal(body, &order))
	assert.Equal(t, "shipped", order.Status)

	// retroceso -> 422
	resp, body = call(t, app, http.MethodPost, "/api/orders/"+order.ID+"/move", super, dto.MoveOrderRequest{Status: "draft"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, string(body), "INVALID_TRANSITION")

	// comprador sin rol de gerente no completa -> 403
	resp, _ = call(t, app, http.MethodPost, "/api/orders/"+order.ID+"/move", bearer(t, "u-b", entity.RoleBuyer), dto.MoveOrderRequest{Status: "completed"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// inexistente -> 404
	resp, _ = call(t, app, http.MethodGet, "/api/orders/nada", super, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// etapa desconocida -> 400
	resp, _ = call(t, app, http.MethodPost, "/api/orders/"+order.ID+"/move", super, dto.MoveOrderRequest{Status: "no-existe"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// versión desactualizada -> 409
	stale := 0
	resp, _ = call(t, app, http.MethodPatch, "/api/orders/"+order.ID, super, dto.UpdateOrderRequest{ExpectedVersion: &stale})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAPI_AuditoriaPaginadaYExportacion(t *testing.T) {
	app := buildAPI(t)
	super := bearer(t, "u-super", entity.RoleSuperAdmin)

	for i := 0; i < 3; i++ {
		resp, _ := call(t, app, http.MethodPost, "/api/orders", super, dto.CreateOrderRequest{BuyerID: "B1", SupplierID: "S1"})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, body := call(t, app, http.MethodGet, "/api/audit-logs", super, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page dto.AuditLogPageResponse
	require.NoError(t, json.Unmarshal(body, &page))
	assert.Len(t, page.Items, 3)
	assert.Nil(t, page.NextCursor)

	resp, _ = call(t, app, http.MethodGet, "/api/audit-logs?cursor=abc", super, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = call(t, app, http.MethodGet, "/api/audit-logs/export?from=2020-01-01&to=2022-01-01", super, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "365")

	resp, _ = call(t, app, http.MethodGet, "/api/audit-logs/export?from=2024-01-01&to=2024-01-31&format=xml", super, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_RutasSoloSuperadmin(t *testing.T) {
	app := buildAPI(t)

	resp, _ := call(t, app, http.MethodPost, "/api/suppliers", bearer(t, "u-sm", entity.RoleSupplierManager), dto.SupplierRequest{Name: "Nuevo"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = call(t, app, http.MethodPost, "/api/suppliers", bearer(t, "u-super", entity.RoleSuperAdmin), dto.SupplierRequest{Name: "Nuevo"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = call(t, app, http.MethodDelete, "/api/users/u-super", bearer(t, "u-super", entity.RoleSuperAdmin), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "el superadmin protegido no se elimina")
}

func TestAPI_HealthYMetricas(t *testing.T) {
	app := buildAPI(t)

	resp, _ := call(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = call(t, app, http.MethodGet, "/api/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := call(t, app, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "test_http_requests_total")
}
