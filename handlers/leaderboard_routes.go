// handlers/leaderboard_routes.go
package handlers

import (
	"strconv"

	"gamification-system/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupLeaderboardRoutes exposes the public XP rankings. No user context is
// required — entries only carry external user ids and public display fields.
func SetupLeaderboardRoutes(app *fiber.App, db *gorm.DB) {
	app.Get("/leaderboard", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "25"))
		if limit < 1 || limit > 100 {
			limit = 25
		}

		var orderColumn string
		period := c.Query("period", "all")
		switch period {
		case "all":
			orderColumn = "total_xp"
		case "weekly":
			orderColumn = "weekly_xp"
		case "monthly":
			orderColumn = "monthly_xp"
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "period must be one of: all, weekly, monthly",
			})
		}

		var rows []models.UserProgress
		if err := db.
			Order(orderColumn + " DESC").
			Limit(limit).
			Find(&rows).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load leaderboard",
				"cause": err.Error(),
			})
		}

		entries := make([]fiber.Map, 0, len(rows))
		for i, row := range rows {
			var periodXP int64
			switch period {
			case "weekly":
				periodXP = row.WeeklyXP
			case "monthly":
				periodXP = row.MonthlyXP
			default:
				periodXP = row.TotalXP
			}
			entries = append(entries, fiber.Map{
				"rank":             i + 1,
				"external_user_id": row.ExternalUserID,
				"level":            row.Level,
				"xp":               periodXP,
				"active_title":     row.ActiveTitle,
				"is_premium":       row.IsPremium,
			})
		}

		return c.JSON(fiber.Map{
			"period":  period,
			"entries": entries,
		})
	})
}
