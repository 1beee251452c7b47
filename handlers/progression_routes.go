// handlers/progression_routes.go
package handlers

import (
	"gamification-system/middleware"
	"gamification-system/models"
	"gamification-system/services"
	"gamification-system/utils"

	"github.com/gofiber/fiber/v2"
)

// Default rewards applied when the caller omits explicit amounts.
var defaultActionRewards = map[models.ActivityType]struct{ XP, Coins int64 }{
	models.ActivityTask:  {XP: 10, Coins: 5},
	models.ActivityGoal:  {XP: 50, Coins: 20},
	models.ActivityEvent: {XP: 20, Coins: 10},
}

func SetupProgressionRoutes(app *fiber.App, ledger *services.LedgerService, stats *services.StatsService,
	actions *services.ActionService, profileClient *services.ProfileClient) {
	// 🔐 Secured routes — require user context (userID, roles)
	// The gateway forwards paths like /api/v1/gamification/s/user/progress -> /s/user/progress
	securedGroup := app.Group("/s/user", middleware.UserContextMiddleware())

	securedGroup.Get("/progress", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		prog, err := ledger.GetOrCreate(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load progress record",
				"cause": err.Error(),
			})
		}

		within := services.ProgressWithinLevel(prog.TotalXP, prog.Level)

		return c.JSON(fiber.Map{
			"id":               prog.ID,
			"xp":               prog.TotalXP,
			"level":            prog.Level,
			"coins":            prog.Coins,
			"weekly_xp":        prog.WeeklyXP,
			"monthly_xp":       prog.MonthlyXP,
			"current_level_xp": within.CurrentLevelXP,
			"needed_for_next":  within.NeededForNext,
			"percentage":       within.Percentage,
			"achievements":     prog.Achievements,
			"unlocked_titles":  prog.UnlockedTitles,
			"active_title":     prog.ActiveTitle,
			"is_premium":       prog.IsPremium,
			"last_level_up_at": prog.LastLevelUpAt,
		})
	})

	securedGroup.Get("/profile", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		profile, err := profileClient.GetProfile(userID)
		if err != nil {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "failed to fetch profile",
				"cause": err.Error(),
			})
		}
		prog, err := ledger.GetOrCreate(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load progress record",
				"cause": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"profile":  profile,
			"progress": prog,
		})
	})

	securedGroup.Get("/stats", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		userStats, err := stats.ComputeUserStats(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to compute stats",
				"cause": err.Error(),
			})
		}
		return c.JSON(userStats)
	})

	securedGroup.Get("/achievements", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		prog, err := ledger.GetOrCreate(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load progress record",
				"cause": err.Error(),
			})
		}

		var response []fiber.Map
		for _, a := range models.AchievementCatalog {
			response = append(response, fiber.Map{
				"id":          a.ID,
				"name":        a.Name,
				"description": a.Description,
				"icon":        a.Icon,
				"rarity":      a.Rarity,
				"xp_reward":   a.XPReward,
				"unlocked":    prog.Achievements.Contains(a.ID),
			})
		}
		return c.JSON(response)
	})

	securedGroup.Post("/actions/complete", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		type Req struct {
			Type  models.ActivityType `json:"type"`
			XP    *int64              `json:"xp,omitempty"`
			Coins *int64              `json:"coins,omitempty"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		defaults, ok := defaultActionRewards[req.Type]
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "unknown action type",
			})
		}
		xp, coins := defaults.XP, defaults.Coins
		if req.XP != nil {
			xp = *req.XP
		}
		if req.Coins != nil {
			coins = *req.Coins
		}
		if xp < 0 || coins < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "rewards must be non-negative",
			})
		}

		result, err := actions.CompleteAction(userID, req.Type, xp, coins)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "action pipeline failed",
				"cause": err.Error(),
			})
		}
		if result.Grant.LeveledUp {
			return c.JSON(fiber.Map{
				"result":  result,
				"message": utils.LocalizedMessage(c.Get("Accept-Language"), "level_up"),
			})
		}
		return c.JSON(fiber.Map{"result": result})
	})

	securedGroup.Post("/actions/login", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		completed, err := actions.RecordLogin(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to record login",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"completed_challenges": completed})
	})
}

// SetupAdminRoutes wires the operator endpoints: manual grants, special title
// awards, progress resets and catalog icon uploads.
func SetupAdminRoutes(app *fiber.App, ledger *services.LedgerService) {
	adminGroup := app.Group("/s/admin", middleware.UserContextMiddleware(), middleware.RequireRole("admin"))

	adminGroup.Post("/xp/grant", func(c *fiber.Ctx) error {
		type Req struct {
			UserID string `json:"user_id"`
			XP     int64  `json:"xp"`
			Reason string `json:"reason"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		if req.UserID == "" || req.XP < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "user_id and a positive xp amount are required",
			})
		}

		result, err := ledger.GrantXP(req.UserID, req.XP)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "XP grant failed",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"message": "XP granted successfully",
			"user_id": req.UserID,
			"result":  result,
		})
	})

	adminGroup.Post("/coins/grant", func(c *fiber.Ctx) error {
		type Req struct {
			UserID string `json:"user_id"`
			Coins  int64  `json:"coins"`
			Reason string `json:"reason"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		if req.UserID == "" || req.Coins < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "user_id and a positive coin amount are required",
			})
		}

		balance, err := ledger.AddCoins(req.UserID, req.Coins)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "coin grant failed",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"message": "coins granted successfully",
			"user_id": req.UserID,
			"balance": balance,
		})
	})

	// Special titles (founder, champion, …) are only ever unlocked here.
	adminGroup.Post("/titles/grant", func(c *fiber.Ctx) error {
		type Req struct {
			UserID  string `json:"user_id"`
			TitleID string `json:"title_id"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		newlyUnlocked, err := ledger.UnlockTitle(req.UserID, req.TitleID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "title grant failed",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"message":        "title granted",
			"newly_unlocked": newlyUnlocked,
		})
	})

	adminGroup.Post("/progress/reset", func(c *fiber.Ctx) error {
		type Req struct {
			UserID string `json:"user_id"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil || req.UserID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "user_id is required",
			})
		}

		if err := ledger.ResetProgress(req.UserID); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "progress reset failed",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"message": "progress reset",
			"user_id": req.UserID,
		})
	})

	adminGroup.Post("/catalog/icons", func(c *fiber.Ctx) error {
		category := c.FormValue("category", "achievements")
		name := c.FormValue("name")
		if name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "name form field is required",
			})
		}
		fileHeader, err := c.FormFile("icon")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "icon file is required",
				"cause": err.Error(),
			})
		}

		iconURL, err := utils.UploadIcon(fileHeader, category, name)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "icon upload failed",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"icon_url": iconURL})
	})
}
