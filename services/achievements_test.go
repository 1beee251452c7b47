package services

import (
	"testing"

	"gamification-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditionMet(t *testing.T) {
	stats := models.UserStats{
		TotalGoalsCompleted: 3,
		TotalTasksCompleted: 10,
		CurrentStreak:       2,
		LongestStreak:       9,
		TotalEventsCreated:  1,
		DaysActive:          12,
		Level:               4,
		TotalXP:             900,
		AchievementCount:    2,
	}

	tests := []struct {
		name string
		cond models.AchievementCondition
		want bool
	}{
		{"goals met", models.AchievementCondition{Type: models.ConditionGoals, Value: 3}, true},
		{"goals not met", models.AchievementCondition{Type: models.ConditionGoals, Value: 4}, false},
		{"tasks met", models.AchievementCondition{Type: models.ConditionTasks, Value: 10}, true},
		{"streak satisfied by longest", models.AchievementCondition{Type: models.ConditionStreak, Value: 7}, true},
		{"streak not met", models.AchievementCondition{Type: models.ConditionStreak, Value: 10}, false},
		{"events met", models.AchievementCondition{Type: models.ConditionEvents, Value: 1}, true},
		{"days active met", models.AchievementCondition{Type: models.ConditionDaysActive, Value: 12}, true},
		{"level not met", models.AchievementCondition{Type: models.ConditionLevel, Value: 5}, false},
		{"xp met", models.AchievementCondition{Type: models.ConditionXP, Value: 900}, true},
		{"achievement count met", models.AchievementCondition{Type: models.ConditionAchievementCount, Value: 2}, true},
		{"unknown type never matches", models.AchievementCondition{Type: "bogus", Value: 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConditionMet(tt.cond, stats))
		})
	}
}

func TestEligibleAchievements_FirstGoal(t *testing.T) {
	// Zero goals: first_goal must not qualify.
	eligible := EligibleAchievements(models.StringList{}, models.UserStats{})
	for _, a := range eligible {
		assert.NotEqual(t, "first_goal", a.ID)
	}

	// The 0 → 1 transition makes it qualify with its 50 XP reward.
	eligible = EligibleAchievements(models.StringList{}, models.UserStats{TotalGoalsCompleted: 1})
	var found *models.Achievement
	for i := range eligible {
		if eligible[i].ID == "first_goal" {
			found = &eligible[i]
		}
	}
	require.NotNil(t, found, "first_goal should qualify at 1 completed goal")
	assert.Equal(t, int64(50), found.XPReward)

	// Once unlocked it never re-qualifies, even with higher stats.
	eligible = EligibleAchievements(models.StringList{"first_goal"}, models.UserStats{TotalGoalsCompleted: 50})
	for _, a := range eligible {
		assert.NotEqual(t, "first_goal", a.ID)
	}
}

func TestEligibleAchievements_CatalogOrder(t *testing.T) {
	stats := models.UserStats{
		TotalGoalsCompleted: 100,
		TotalTasksCompleted: 100,
		TotalEventsCreated:  100,
	}
	eligible := EligibleAchievements(models.StringList{}, stats)
	require.NotEmpty(t, eligible)

	// Returned order follows catalog declaration order.
	lastIdx := -1
	for _, a := range eligible {
		idx := -1
		for i, c := range models.AchievementCatalog {
			if c.ID == a.ID {
				idx = i
			}
		}
		require.Greater(t, idx, lastIdx, "eligible achievements out of catalog order at %s", a.ID)
		lastIdx = idx
	}
}

func TestTitleRequirementMet_SpecialNeverAuto(t *testing.T) {
	stats := models.UserStats{Level: 99, TotalXP: 1_000_000, CurrentStreak: 365}
	assert.False(t, TitleRequirementMet(models.TitleRequirement{Type: models.RequireSpecial}, stats))
	assert.True(t, TitleRequirementMet(models.TitleRequirement{Type: models.RequireLevel, Value: 15}, stats))
	assert.True(t, TitleRequirementMet(models.TitleRequirement{Type: models.RequireXP, Value: 50_000}, stats))
}

func TestCatalogSanity(t *testing.T) {
	seen := map[string]bool{}
	for _, a := range models.AchievementCatalog {
		assert.False(t, seen[a.ID], "duplicate achievement id %s", a.ID)
		seen[a.ID] = true
		assert.GreaterOrEqual(t, a.XPReward, int64(0), "%s has negative reward", a.ID)
	}

	// Starter title exists and is not special, so fresh records can hold it.
	starter, ok := models.TitleByID(models.StarterTitleID)
	require.True(t, ok)
	assert.NotEqual(t, models.RequireSpecial, starter.Requirement.Type)

	// Every title handed out by a challenge reward must exist in the catalog.
	for _, tpl := range models.ChallengePool {
		if tpl.Reward.Title != "" {
			_, ok := models.TitleByID(tpl.Reward.Title)
			assert.True(t, ok, "challenge %q rewards unknown title %q", tpl.Title, tpl.Reward.Title)
		}
	}
}
