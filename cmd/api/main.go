package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"examcracker/internal/auth"
	"examcracker/internal/config"
	"examcracker/internal/database"
	"examcracker/internal/database/migration"
	handlers "examcracker/internal/http/handler"
	"examcracker/internal/http/middleware"
	"examcracker/internal/otel"
	"examcracker/internal/repository/postgres"
	"examcracker/internal/service"
	"examcracker/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := time.UTC
	ctx := context.Background()

	shutdownTracing, err := otel.Init(ctx, loc)
	if err != nil {
		log.Printf("tracing init failed: %v", err)
	} else {
		defer shutdownTracing(ctx)
	}

	// Initialize PostgreSQL. A missing or unreachable database does not crash
	// the service; data endpoints answer 500 until it is configured.
	var db *sql.DB
	var catalogSvc service.CatalogService

	db, err = database.NewPostgres(cfg.Database)
	if err != nil {
		log.Printf("database not available: %v", err)
		db = nil
	} else {
		defer db.Close()
		if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}
	}

	// Initialize the S3-compatible object storage client. Missing credentials
	// disable the cloud upload capability up front.
	var objStore storage.Storage
	if cfg.CloudUploadEnabled() {
		objStore, err = storage.NewMinIO(cfg.Storage)
		if err != nil {
			log.Fatalf("failed to initialize object storage: %v", err)
		}
	} else {
		log.Printf("cloud upload disabled: storage credentials not configured")
	}
	resolver := service.NewUploadResolver(objStore)

	if db != nil {
		catalogSvc = service.NewCatalogService(
			postgres.NewSubjectPostgres(db),
			postgres.NewSubsectionPostgres(db),
			postgres.NewDocumentPostgres(db),
			postgres.NewQuestionPaperPostgres(db),
			resolver,
		)
	}

	gate := auth.NewGateFromConfig(cfg.Auth)
	issuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.SessionTTLHours)*time.Hour)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())

	promMW, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Printf("prometheus middleware disabled: %v", err)
	} else {
		app.Use(promMW.Handler())
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, db, gate, issuer, catalogSvc)

	// Static assets and the landing page
	app.Static("/", cfg.StaticDir)

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
