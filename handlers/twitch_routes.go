// handlers/twitch_routes.go
package handlers

import (
	"errors"

	"gamification-system/middleware"
	"gamification-system/models"
	"gamification-system/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func SetupTwitchRoutes(app *fiber.App, db *gorm.DB, twitch *services.TwitchClient) {
	securedGroup := app.Group("/s/user/twitch", middleware.UserContextMiddleware())

	// Link flow: the frontend completes the OAuth redirect and posts the code here.
	securedGroup.Post("/link", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		type Req struct {
			Code string `json:"code"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil || req.Code == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "code is required",
			})
		}

		tokens, err := twitch.ExchangeCode(c.Context(), req.Code)
		if err != nil {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "twitch code exchange failed",
				"cause": err.Error(),
			})
		}
		twitchUser, err := twitch.GetAuthenticatedUser(c.Context(), tokens.AccessToken)
		if err != nil {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "failed to resolve twitch user",
				"cause": err.Error(),
			})
		}

		link := models.TwitchLink{
			ExternalUserID: userID,
			TwitchUserID:   twitchUser.ID,
			TwitchLogin:    twitchUser.Login,
			AccessToken:    tokens.AccessToken,
			RefreshToken:   tokens.RefreshToken,
		}
		// Relinking replaces the stored channel and tokens.
		if err := db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "external_user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"twitch_user_id", "twitch_login", "access_token", "refresh_token", "updated_at",
			}),
		}).Create(&link).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to save twitch link",
				"cause": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"twitch_login": twitchUser.Login,
			"linked":       true,
		})
	})

	securedGroup.Get("/status", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var link models.TwitchLink
		err := db.Where("external_user_id = ?", userID).First(&link).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(fiber.Map{"linked": false})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load twitch link",
				"cause": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"linked":        true,
			"twitch_login":  link.TwitchLogin,
			"is_live":       link.IsLive,
			"live_since":    link.LiveSince,
			"last_sweep_at": link.LastSweepAt,
		})
	})

	securedGroup.Delete("/link", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		if err := db.Where("external_user_id = ?", userID).Delete(&models.TwitchLink{}).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to unlink twitch",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"linked": false})
	})
}
