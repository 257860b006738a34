package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"examcracker/internal/auth"
	"examcracker/internal/http/middleware"
	"examcracker/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin: parameter extraction plus the admin check, nothing else.
// A nil catalog means the database is not configured; every data endpoint then
// answers 500 without crashing the process.
func RegisterRoutes(app *fiber.App, db *sql.DB, gate *auth.Gate, issuer *auth.TokenIssuer, catalog service.CatalogService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api", middleware.Session(issuer))
	admin := middleware.RequireAdmin()
	guard := catalogConfigured(catalog)

	api.Post("/login", Login(gate, issuer))
	api.Post("/logout", Logout())
	api.Get("/check-auth", CheckAuth())

	api.Get("/subjects", guard, ListSubjects(catalog))

	api.Get("/subjects/:id/subsections", guard, ListSubsections(catalog))
	api.Post("/subjects/:id/subsections", guard, admin, CreateSubsection(catalog))
	api.Delete("/subsections/:id", guard, admin, DeleteSubsection(catalog))

	api.Get("/subsections/:id/documents", guard, ListDocuments(catalog))
	api.Post("/subsections/:id/documents", guard, admin, CreateDocument(catalog))
	api.Delete("/documents/:id", guard, admin, DeleteDocument(catalog))

	api.Get("/subjects/:id/questions", guard, ListQuestionPapers(catalog))
	api.Post("/subjects/:id/questions", guard, admin, CreateQuestionPaper(catalog))
	api.Delete("/questions/:id", guard, admin, DeleteQuestionPaper(catalog))
}

// catalogConfigured rejects data requests when no database is configured.
func catalogConfigured(catalog service.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if catalog == nil {
			return writeError(c, fiber.StatusInternalServerError, "Database not configured")
		}
		return c.Next()
	}
}
