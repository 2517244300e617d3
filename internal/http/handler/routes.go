package handler

import (
	"database/sql"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"querybridge/docs"
	"querybridge/internal/service"
)

// Deps are the collaborators the HTTP surface needs.
type Deps struct {
	DB       *sql.DB
	Query    service.QueryService
	Health   service.HealthService
	Catalog  service.Catalog
	Backups  service.BackupService
	Commands Commander
	Gatherer prometheus.Gatherer
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	v := NewValidator()

	// API descriptions and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.Send(docs.OpenAPI)
	})
	app.Get("/swagger/*", Swagger())
	app.Get("/docs", func(c *fiber.Ctx) error {
		return c.Redirect("/swagger/index.html", fiber.StatusMovedPermanently)
	})

	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())

	if d.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")
	api.Post("/query", Query(d.Query, v))
	api.Post("/analyze", Analyze(d.Query, v))
	api.Post("/command", Command(d.Commands, v))
	api.Get("/health", BackendHealth(d.Health))
	api.Get("/tools", Tools(d.Catalog))
	api.Get("/examples", Examples(d.Catalog))

	api.Get("/backups", ListBackups(d.Backups))
	api.Get("/backups/:id", GetBackup(d.Backups))
	api.Get("/backups/:id/manifest", GetBackupManifest(d.Backups))
	api.Delete("/backups/:id", DeleteBackup(d.Backups))
}

// Swagger serves the Swagger UI and doc.json. Host and scheme follow the
// incoming request so "Try it out" works behind a proxy.
func Swagger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
		}
		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}
		return swagger.HandlerDefault(c)
	}
}
