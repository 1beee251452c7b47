package services

import (
	"testing"
	"time"

	"gamification-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultProgress(t *testing.T) {
	prog := newDefaultProgress("user-1")

	assert.Equal(t, "user-1", prog.ExternalUserID)
	assert.Equal(t, 1, prog.Level)
	assert.Zero(t, prog.TotalXP)
	assert.Zero(t, prog.Coins)
	assert.Empty(t, prog.Achievements)
	assert.True(t, prog.UnlockedTitles.Contains(models.StarterTitleID))
	require.NotNil(t, prog.ActiveTitle)
	assert.Equal(t, models.StarterTitleID, *prog.ActiveTitle)
}

func TestApplyXP_LevelTransitionAtThreshold(t *testing.T) {
	prog := newDefaultProgress("user-1")
	now := time.Now()

	// 99 XP: one short of the level 1 → 2 threshold.
	result := applyXP(&prog, 99, now)
	assert.False(t, result.LeveledUp)
	assert.Equal(t, 1, result.NewLevel)
	assert.Nil(t, prog.LastLevelUpAt)

	// The 100th XP tips the level over.
	result = applyXP(&prog, 1, now)
	assert.True(t, result.LeveledUp)
	assert.Equal(t, 2, result.NewLevel)
	assert.Equal(t, int64(100), result.NewXP)
	require.NotNil(t, prog.LastLevelUpAt)

	// Period counters track every grant.
	assert.Equal(t, int64(100), prog.WeeklyXP)
	assert.Equal(t, int64(100), prog.MonthlyXP)
}

func TestApplyXP_LevelAlwaysDerivedFromTotal(t *testing.T) {
	prog := newDefaultProgress("user-1")

	result := applyXP(&prog, 475, time.Now())
	assert.Equal(t, LevelFromXP(prog.TotalXP), result.NewLevel)
	assert.Equal(t, prog.Level, result.NewLevel)
}

func TestApplySpend_InsufficientLeavesBalanceUnchanged(t *testing.T) {
	prog := newDefaultProgress("user-1")
	prog.Coins = 50

	err := applySpend(&prog, 80)
	assert.ErrorIs(t, err, ErrInsufficientCoins)
	assert.Equal(t, int64(50), prog.Coins)

	// Spending the exact balance is allowed; zero is the floor.
	assert.NoError(t, applySpend(&prog, 50))
	assert.Zero(t, prog.Coins)
}

func TestApplyAchievementUnlock_GrantsRewardExactlyOnce(t *testing.T) {
	prog := newDefaultProgress("user-1")
	achievement, ok := models.AchievementByID("first_goal")
	require.True(t, ok)
	now := time.Now()

	result, unlocked := applyAchievementUnlock(&prog, achievement, now)
	assert.True(t, unlocked)
	assert.Equal(t, achievement.XPReward, result.NewXP)
	assert.True(t, prog.Achievements.Contains("first_goal"))

	// The repeated unlock is a no-op: no second reward, no duplicate entry.
	_, unlocked = applyAchievementUnlock(&prog, achievement, now)
	assert.False(t, unlocked)
	assert.Equal(t, achievement.XPReward, prog.TotalXP)
	assert.Len(t, prog.Achievements, 1)
}

func TestApplyActiveTitle(t *testing.T) {
	prog := newDefaultProgress("user-1")

	// Setting a title outside the unlocked set fails and changes nothing.
	locked := "founder"
	err := applyActiveTitle(&prog, &locked)
	assert.ErrorIs(t, err, ErrTitleNotUnlocked)
	require.NotNil(t, prog.ActiveTitle)
	assert.Equal(t, models.StarterTitleID, *prog.ActiveTitle)

	// Clearing is always allowed.
	assert.NoError(t, applyActiveTitle(&prog, nil))
	assert.Nil(t, prog.ActiveTitle)

	starter := models.StarterTitleID
	assert.NoError(t, applyActiveTitle(&prog, &starter))
	assert.Equal(t, starter, *prog.ActiveTitle)
}
