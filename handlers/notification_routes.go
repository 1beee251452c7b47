// handlers/notification_routes.go
package handlers

import (
	"strconv"

	"gamification-system/middleware"
	"gamification-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupNotificationRoutes(app *fiber.App, notifications *services.NotificationService) {
	securedGroup := app.Group("/s/user/notifications", middleware.UserContextMiddleware())

	securedGroup.Get("/", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		limit, _ := strconv.Atoi(c.Query("limit", "20"))
		unviewedOnly := c.Query("unviewed", "false") == "true"

		list, err := notifications.List(userID, limit, unviewedOnly)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load notifications",
				"cause": err.Error(),
			})
		}

		total, unviewed, err := notifications.Counts(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to count notifications",
				"cause": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"notifications": list,
			"total":         total,
			"unviewed":      unviewed,
		})
	})

	securedGroup.Post("/:id/viewed", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		ok, err := notifications.MarkViewed(userID, c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to mark notification viewed",
				"cause": err.Error(),
			})
		}
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "notification not found",
			})
		}
		return c.JSON(fiber.Map{"viewed": true})
	})

	securedGroup.Post("/viewed", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		count, err := notifications.MarkAllViewed(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to mark notifications viewed",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"marked": count})
	})
}
