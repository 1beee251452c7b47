// handlers/challenge_routes.go
package handlers

import (
	"errors"
	"time"

	"gamification-system/middleware"
	"gamification-system/services"
	"gamification-system/utils"

	"github.com/gofiber/fiber/v2"
)

func SetupChallengeRoutes(app *fiber.App, challenges *services.ChallengeService) {
	securedGroup := app.Group("/s/user/challenges", middleware.UserContextMiddleware())

	securedGroup.Get("/", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		set, err := challenges.GetWeeklySet(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load weekly challenges",
				"cause": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"week_start": set.WeekStart,
			"challenges": set.Challenges,
			"time_left":  services.TimeUntilWeekEnd(time.Now()),
		})
	})

	securedGroup.Post("/:id/claim", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		challengeID := c.Params("id")

		claimed, err := challenges.Claim(userID, challengeID)
		switch {
		case errors.Is(err, services.ErrChallengeNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "challenge not found",
			})
		case errors.Is(err, services.ErrChallengeNotCompleted):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "challenge not completed",
			})
		case errors.Is(err, services.ErrChallengeAlreadyClaimed):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error":   "challenge already claimed",
				"message": utils.LocalizedMessage(c.Get("Accept-Language"), "already_claimed"),
			})
		case err != nil:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "claim failed",
				"cause": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"challenge": claimed,
			"reward":    claimed.Reward,
			"message":   utils.LocalizedMessage(c.Get("Accept-Language"), "challenge_claimed"),
		})
	})
}
