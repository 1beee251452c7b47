// handlers/catalog_routes.go
package handlers

import (
	"gamification-system/models"

	"github.com/gofiber/fiber/v2"
)

// SetupCatalogRoutes serves the static achievement and title catalogs. Public:
// the catalogs carry no user state.
func SetupCatalogRoutes(app *fiber.App) {
	app.Get("/catalog/achievements", func(c *fiber.Ctx) error {
		return c.JSON(models.AchievementCatalog)
	})

	app.Get("/catalog/titles", func(c *fiber.Ctx) error {
		return c.JSON(models.TitleCatalog)
	})
}
