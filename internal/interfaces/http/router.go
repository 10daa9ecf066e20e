package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/Mayorista-api/internal/application/audit"
	"github.com/jhoicas/Mayorista-api/internal/application/auth"
	"github.com/jhoicas/Mayorista-api/internal/application/orders"
	"github.com/jhoicas/Mayorista-api/internal/application/usecase"
	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
	"github.com/jhoicas/Mayorista-api/pkg/logger"
)

// MetricsRecorder observador HTTP y de login; lo implementa *metrics.Metrics.
type MetricsRecorder interface {
	HTTPObserver
	LoginObserver
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	Orders    *orders.Service
	Audit     *audit.Service
	UserUC    *usecase.UserUseCase
	OrgUC     *usecase.OrgUseCase
	ProductUC *usecase.ProductUseCase
	JWTSecret string
	AppName   string
	Log       *logger.Logger
	// Metrics y MetricsHandler son opcionales (METRICS_ENABLED=false).
	Metrics        MetricsRecorder
	MetricsHandler http.Handler
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	eh := errorHandler{log: deps.Log}

	var httpObs HTTPObserver
	var loginObs LoginObserver
	if deps.Metrics != nil {
		httpObs, loginObs = deps.Metrics, deps.Metrics
	}
	app.Use(RequestLogger(deps.Log, httpObs))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	if deps.MetricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.MetricsHandler))
	}

	api := app.Group("/api")

	// Auth (login público)
	authHandler := NewAuthHandler(deps.AuthUC, loginObs, eh)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	superOnly := RequireRole(string(entity.RoleSuperAdmin))

	// Orders
	orderHandler := NewOrderHandler(deps.Orders, eh)
	ordersGroup := protected.Group("/orders")
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/summary", orderHandler.Summary)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Patch("/:id", orderHandler.Update)
	ordersGroup.Delete("/:id", orderHandler.Delete)
	ordersGroup.Post("/:id/move", orderHandler.Move)
	ordersGroup.Post("/:id/duplicate", orderHandler.Duplicate)
	ordersGroup.Get("/:id/pdf", orderHandler.PDF)

	protected.Get("/order-statuses", orderHandler.ListStatuses)
	protected.Post("/order-statuses", superOnly, orderHandler.AddStatus)

	// Audit logs
	auditHandler := NewAuditHandler(deps.Audit, eh)
	protected.Get("/audit-logs", auditHandler.List)
	protected.Get("/audit-logs/export", auditHandler.Export)

	// Users
	userHandler := NewUserHandler(deps.UserUC, eh)
	users := protected.Group("/users")
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Patch("/:id", superOnly, userHandler.Update)
	users.Delete("/:id", superOnly, userHandler.Delete)

	// Suppliers / Buyers
	orgHandler := NewOrgHandler(deps.OrgUC, eh)
	suppliers := protected.Group("/suppliers")
	suppliers.Get("/", orgHandler.ListSuppliers)
	suppliers.Post("/", superOnly, orgHandler.CreateSupplier)
	suppliers.Patch("/:id", superOnly, orgHandler.UpdateSupplier)
	suppliers.Delete("/:id", superOnly, orgHandler.DeleteSupplier)

	buyers := protected.Group("/buyers")
	buyers.Get("/", orgHandler.ListBuyers)
	buyers.Post("/", superOnly, orgHandler.CreateBuyer)
	buyers.Patch("/:id", superOnly, orgHandler.UpdateBuyer)
	buyers.Delete("/:id", superOnly, orgHandler.DeleteBuyer)
	protected.Get("/buyer-tiers", orgHandler.ListTiers)

	// Products
	productHandler := NewProductHandler(deps.ProductUC, eh)
	products := protected.Group("/products")
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Patch("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
}
