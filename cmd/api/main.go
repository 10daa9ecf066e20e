package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/Mayorista-api/internal/application/audit"
	"github.com/jhoicas/Mayorista-api/internal/application/auth"
	"github.com/jhoicas/Mayorista-api/internal/application/orders"
	"github.com/jhoicas/Mayorista-api/internal/application/usecase"
	"github.com/jhoicas/Mayorista-api/internal/domain/repository"
	"github.com/jhoicas/Mayorista-api/internal/infrastructure/memory"
	"github.com/jhoicas/Mayorista-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Mayorista-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Mayorista-api/internal/infrastructure/postgres"
	infras3 "github.com/jhoicas/Mayorista-api/internal/infrastructure/s3"
	httpRouter "github.com/jhoicas/Mayorista-api/internal/interfaces/http"
	"github.com/jhoicas/Mayorista-api/pkg/config"
	"github.com/jhoicas/Mayorista-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Backend).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var repo repository.SnapshotRepository
	switch cfg.Store.Backend {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		snapRepo := postgres.NewSnapshotRepository(pool, cfg.Store.SnapshotKey)
		if err := snapRepo.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("esquema de snapshot")
		}
		repo = snapRepo
	default:
		log.Warn().Msg("store en memoria: los datos se pierden al reiniciar")
		repo = memory.NewVolatileRepository(nil)
	}

	store, report, err := memory.Open(ctx, repo, memory.MigrationOptions{
		SuperAdminName:     cfg.SuperAdmin.Name,
		SuperAdminEmail:    cfg.SuperAdmin.Email,
		SuperAdminPassword: cfg.SuperAdmin.Password,
		DefaultSupplierID:  cfg.Store.DefaultSupplierID,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir store y migrar datos")
	}
	log.Info().Interface("report", report).Msg("migración aplicada")

	rec := audit.NewRecorder()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics.Prefix)
	}

	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	orderSvc := orders.NewService(store, rec, log).WithPDF(pdfGenerator)
	if m != nil {
		orderSvc.WithObserver(m)
	}

	// Archivo de exportaciones en S3 solo si hay bucket configurado.
	var archiver audit.ExportArchiver
	if cfg.Export.S3Bucket != "" {
		a, err := infras3.NewArchiver(ctx, infras3.Config{
			Bucket:          cfg.Export.S3Bucket,
			Region:          cfg.Export.S3Region,
			Prefix:          cfg.Export.S3Prefix,
			Endpoint:        cfg.Export.S3Endpoint,
			AccessKeyID:     cfg.Export.S3AccessKeyID,
			SecretAccessKey: cfg.Export.S3SecretAccessKey,
		}, log)
		if err != nil {
			log.Fatal().Err(err).Msg("cliente S3 de exportaciones")
		}
		archiver = a
	}
	auditSvc := audit.NewService(store, rec, archiver, log).WithRenderer(pdfGenerator)

	authUC := auth.NewAuthUseCase(store, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.FiberErrorHandler(log),
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Mayorista API",
		}))
	}

	deps := httpRouter.RouterDeps{
		AuthUC:    authUC,
		Orders:    orderSvc,
		Audit:     auditSvc,
		UserUC:    usecase.NewUserUseCase(store, rec, log),
		OrgUC:     usecase.NewOrgUseCase(store, rec, log),
		ProductUC: usecase.NewProductUseCase(store, rec, log),
		JWTSecret: cfg.JWT.Secret,
		AppName:   cfg.App.Name,
		Log:       log,
	}
	if m != nil {
		deps.Metrics = m
		deps.MetricsHandler = m.Handler()
	}
	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
