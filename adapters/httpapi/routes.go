package httpapi

import (
	"path/filepath"

	"github.com/gofiber/fiber/v2"
)

// StaticConfig points the asset passthrough routes at a root directory
// holding styles/, img/ and fonts/ subdirectories.
type StaticConfig struct {
	Root string
}

// RegisterRoutes registers the API surface on the fiber app.
func (ctl *Controller) RegisterRoutes(app *fiber.App, static StaticConfig) {
	app.Get("/api/health", ctl.Health)
	app.Get("/favicon.ico", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	app.Post("/api/generate-pdf", ctl.GeneratePDF)
	app.Get("/api/render-template", ctl.RenderTemplate)

	if static.Root != "" {
		app.Static("/api/styles", filepath.Join(static.Root, "styles"))
		app.Static("/api/img", filepath.Join(static.Root, "img"))
		app.Static("/api/fonts", filepath.Join(static.Root, "fonts"))
	}
}
