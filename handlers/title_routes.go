// handlers/title_routes.go
package handlers

import (
	"errors"

	"gamification-system/middleware"
	"gamification-system/models"
	"gamification-system/services"
	"gamification-system/utils"

	"github.com/gofiber/fiber/v2"
)

func SetupTitleRoutes(app *fiber.App, ledger *services.LedgerService) {
	securedGroup := app.Group("/s/user", middleware.UserContextMiddleware())

	securedGroup.Get("/titles", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		prog, err := ledger.GetOrCreate(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load progress record",
				"cause": err.Error(),
			})
		}

		var response []fiber.Map
		for _, t := range models.TitleCatalog {
			response = append(response, fiber.Map{
				"id":          t.ID,
				"name":        t.Name,
				"rarity":      t.Rarity,
				"requirement": t.Requirement,
				"coin_price":  t.CoinPrice,
				"unlocked":    prog.UnlockedTitles.Contains(t.ID),
				"active":      prog.ActiveTitle != nil && *prog.ActiveTitle == t.ID,
			})
		}
		return c.JSON(response)
	})

	securedGroup.Post("/titles/active", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		type Req struct {
			TitleID *string `json:"title_id"` // null clears the active title
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		err := ledger.SetActiveTitle(userID, req.TitleID)
		switch {
		case errors.Is(err, services.ErrTitleNotUnlocked):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "title not unlocked",
			})
		case err != nil:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to set active title",
				"cause": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"active_title": req.TitleID,
			"message":      utils.LocalizedMessage(c.Get("Accept-Language"), "title_equipped"),
		})
	})

	securedGroup.Post("/shop/titles/:id/purchase", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		titleID := c.Params("id")

		balance, err := ledger.PurchaseTitle(userID, titleID)
		switch {
		case errors.Is(err, services.ErrUnknownTitle):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "title not purchasable",
			})
		case errors.Is(err, services.ErrInsufficientCoins):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "insufficient coins",
				"message": utils.LocalizedMessage(c.Get("Accept-Language"), "insufficient_coins"),
			})
		case err != nil:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "purchase failed",
				"cause": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"title_id": titleID,
			"balance":  balance,
			"message":  utils.LocalizedMessage(c.Get("Accept-Language"), "title_purchased"),
		})
	})
}
