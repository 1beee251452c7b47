package models

// AchievementRarity orders achievement tiers: bronze < silver < gold < diamond.
type AchievementRarity string

const (
	RarityBronze  AchievementRarity = "bronze"
	RaritySilver  AchievementRarity = "silver"
	RarityGold    AchievementRarity = "gold"
	RarityDiamond AchievementRarity = "diamond"
)

// ConditionType tags the stat an achievement condition is evaluated against.
type ConditionType string

const (
	ConditionGoals            ConditionType = "goals"
	ConditionTasks            ConditionType = "tasks"
	ConditionStreak           ConditionType = "streak"
	ConditionEvents           ConditionType = "events"
	ConditionDaysActive       ConditionType = "days_active"
	ConditionLevel            ConditionType = "level"
	ConditionXP               ConditionType = "xp"
	ConditionAchievementCount ConditionType = "achievement_count"
)

// AchievementCondition is met when the tagged stat reaches Value.
type AchievementCondition struct {
	Type  ConditionType `json:"type"`
	Value int64         `json:"value"`
}

// Achievement is a static catalog entry. The catalog is immutable at runtime.
type Achievement struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Icon        string               `json:"icon"`
	Rarity      AchievementRarity    `json:"rarity"`
	XPReward    int64                `json:"xp_reward"`
	Condition   AchievementCondition `json:"condition"`
}

// UserStats is an ephemeral snapshot computed on demand from activity records.
// It is never persisted as its own entity.
type UserStats struct {
	TotalGoalsCompleted int64 `json:"total_goals_completed"`
	TotalTasksCompleted int64 `json:"total_tasks_completed"`
	CurrentStreak       int64 `json:"current_streak"`
	LongestStreak       int64 `json:"longest_streak"`
	TotalEventsCreated  int64 `json:"total_events_created"`
	DaysActive          int64 `json:"days_active"`
	Level               int64 `json:"level"`
	TotalXP             int64 `json:"total_xp"`
	AchievementCount    int64 `json:"achievement_count"`
}

// AchievementCatalog holds every unlockable achievement in declared order.
// Evaluation order follows this slice, so reward notifications fire in this order.
var AchievementCatalog = []Achievement{
	{
		ID:          "first_task",
		Name:        "Getting Started",
		Description: "Complete your first task",
		Icon:        "✅",
		Rarity:      RarityBronze,
		XPReward:    25,
		Condition:   AchievementCondition{Type: ConditionTasks, Value: 1},
	},
	{
		ID:          "first_goal",
		Name:        "Goal Getter",
		Description: "Complete your first goal",
		Icon:        "🎯",
		Rarity:      RarityBronze,
		XPReward:    50,
		Condition:   AchievementCondition{Type: ConditionGoals, Value: 1},
	},
	{
		ID:          "first_event",
		Name:        "Planner",
		Description: "Create your first event",
		Icon:        "📅",
		Rarity:      RarityBronze,
		XPReward:    25,
		Condition:   AchievementCondition{Type: ConditionEvents, Value: 1},
	},
	{
		ID:          "task_machine",
		Name:        "Task Machine",
		Description: "Complete 50 tasks",
		Icon:        "⚙️",
		Rarity:      RaritySilver,
		XPReward:    150,
		Condition:   AchievementCondition{Type: ConditionTasks, Value: 50},
	},
	{
		ID:          "goal_crusher",
		Name:        "Goal Crusher",
		Description: "Complete 10 goals",
		Icon:        "💪",
		Rarity:      RaritySilver,
		XPReward:    200,
		Condition:   AchievementCondition{Type: ConditionGoals, Value: 10},
	},
	{
		ID:          "week_streak",
		Name:        "On Fire",
		Description: "Keep a 7-day streak",
		Icon:        "🔥",
		Rarity:      RaritySilver,
		XPReward:    150,
		Condition:   AchievementCondition{Type: ConditionStreak, Value: 7},
	},
	{
		ID:          "month_streak",
		Name:        "Unstoppable",
		Description: "Keep a 30-day streak",
		Icon:        "🌋",
		Rarity:      RarityGold,
		XPReward:    500,
		Condition:   AchievementCondition{Type: ConditionStreak, Value: 30},
	},
	{
		ID:          "level_10",
		Name:        "Double Digits",
		Description: "Reach level 10",
		Icon:        "🔟",
		Rarity:      RarityGold,
		XPReward:    300,
		Condition:   AchievementCondition{Type: ConditionLevel, Value: 10},
	},
	{
		ID:          "xp_10k",
		Name:        "Ten Thousand Club",
		Description: "Earn 10,000 total XP",
		Icon:        "💎",
		Rarity:      RarityGold,
		XPReward:    400,
		Condition:   AchievementCondition{Type: ConditionXP, Value: 10_000},
	},
	{
		ID:          "regular",
		Name:        "Regular",
		Description: "Be active on 30 different days",
		Icon:        "🗓️",
		Rarity:      RaritySilver,
		XPReward:    200,
		Condition:   AchievementCondition{Type: ConditionDaysActive, Value: 30},
	},
	{
		ID:          "collector",
		Name:        "Collector",
		Description: "Unlock 8 achievements",
		Icon:        "🏆",
		Rarity:      RarityDiamond,
		XPReward:    1000,
		Condition:   AchievementCondition{Type: ConditionAchievementCount, Value: 8},
	},
}

// AchievementByID returns the catalog entry with the given id, or ok=false.
func AchievementByID(id string) (Achievement, bool) {
	for _, a := range AchievementCatalog {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}
