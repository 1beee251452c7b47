// handlers/billing_routes.go
package handlers

import (
	"gamification-system/middleware"
	"gamification-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupBillingRoutes(app *fiber.App, billing *services.BillingClient, ledger *services.LedgerService) {
	securedGroup := app.Group("/s/user/billing", middleware.UserContextMiddleware())

	securedGroup.Post("/checkout", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		url, err := billing.CreateCheckoutSession(userID)
		if err != nil {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "failed to create checkout session",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"url": url})
	})

	securedGroup.Get("/portal", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		prog, err := ledger.GetOrCreate(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load progress record",
				"cause": err.Error(),
			})
		}
		if !prog.IsPremium {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "no active subscription",
			})
		}

		url, err := billing.CreatePortalSession(userID)
		if err != nil {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "failed to create portal session",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"url": url})
	})
}
