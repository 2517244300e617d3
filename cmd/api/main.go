package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"querybridge/internal/adapter"
	"querybridge/internal/command"
	"querybridge/internal/config"
	"querybridge/internal/database"
	"querybridge/internal/database/migration"
	"querybridge/internal/docstore"
	handlers "querybridge/internal/http/handler"
	"querybridge/internal/http/middleware"
	"querybridge/internal/intent"
	"querybridge/internal/logging"
	"querybridge/internal/otel"
	"querybridge/internal/repository/postgres"
	"querybridge/internal/router"
	"querybridge/internal/service"
	"querybridge/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// @title querybridge API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	log := logging.New(cfg.LogLevel, cfg.Location())
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("server_exit", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.AppConfig, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		return err
	}

	docs, closeDocs, err := docstore.NewMongo(cfg.Mongo)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = closeDocs(sctx)
	}()

	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		return err
	}

	relational := adapter.WithBreaker(adapter.NewRelational(db, adapter.RelationalOptions{
		Schema:           cfg.Database.Schema,
		DefaultTarget:    cfg.Router.SchemaName,
		StatementTimeout: cfg.Database.StatementTimeout(),
		SampleLimit:      cfg.Router.SampleLimit,
	}), cfg.Breaker, log)
	document := adapter.WithBreaker(adapter.NewDocument(docs, adapter.DocumentOptions{
		Timeout:     cfg.Mongo.Timeout(),
		SampleLimit: cfg.Router.SampleLimit,
	}), cfg.Breaker, log)

	metrics, err := router.NewMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	rt := router.New(relational, document,
		router.WithTimeout(cfg.Router.Timeout()),
		router.WithLogger(log),
		router.WithMetrics(metrics),
	)

	catalog := service.NewCatalog(rt)
	backups := service.NewBackupService(
		rt,
		postgres.NewCatalogPostgres(db, cfg.Database.Schema),
		postgres.NewBackupPostgres(db),
		objStore,
		log,
	)

	httpMetrics, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(log),
		DisableStartupMessage: true,
	})

	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(httpMetrics.Handler())

	handlers.RegisterRoutes(app, handlers.Deps{
		DB:       db,
		Query:    service.NewQueryService(intent.NewAnalyzer(cfg.Router.SchemaName), rt, log),
		Health:   service.NewHealthService(rt),
		Catalog:  catalog,
		Backups:  backups,
		Commands: command.New(backups, catalog),
		Gatherer: prometheus.DefaultGatherer,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info("server_listen", zap.String("port", cfg.Port))
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("server_shutdown")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return app.ShutdownWithContext(sctx)
}
