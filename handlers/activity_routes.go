// handlers/activity_routes.go
package handlers

import (
	"strconv"
	"time"

	"gamification-system/middleware"
	"gamification-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupActivityRoutes(app *fiber.App, activity *services.ActivityService) {
	securedGroup := app.Group("/s/user/activity", middleware.UserContextMiddleware())

	securedGroup.Get("/calendar", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		days, _ := strconv.Atoi(c.Query("days", "30"))
		if days < 1 || days > 365 {
			days = 30
		}

		activities, err := activity.RecentActivity(userID, days)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load activity",
				"cause": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"days":     days,
			"calendar": services.FormatActivityForCalendar(activities, days, time.Now()),
		})
	})

	securedGroup.Get("/recent", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		days, _ := strconv.Atoi(c.Query("days", "7"))
		if days < 1 || days > 90 {
			days = 7
		}

		activities, err := activity.RecentActivity(userID, days)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load activity",
				"cause": err.Error(),
			})
		}
		return c.JSON(activities)
	})
}
