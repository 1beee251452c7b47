package services

import (
	"math/rand"
	"testing"
	"time"

	"gamification-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekBounds(t *testing.T) {
	tests := []struct {
		name      string
		in        time.Time
		wantStart string // Sunday, YYYY-MM-DD
	}{
		{"sunday itself", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), "2026-03-01"},
		{"wednesday", time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC), "2026-03-01"},
		{"saturday night", time.Date(2026, 3, 7, 23, 59, 59, 0, time.UTC), "2026-03-01"},
		{"next sunday", time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), "2026-03-08"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := WeekBounds(tt.in)
			assert.Equal(t, tt.wantStart, start.Format("2006-01-02"))
			assert.Equal(t, time.Sunday, start.Weekday())
			assert.Equal(t, time.Saturday, end.Weekday())
			// End is the last millisecond of Saturday.
			assert.Equal(t, 23, end.Hour())
			assert.Equal(t, 59, end.Minute())
			assert.Equal(t, 59, end.Second())
		})
	}
}

func TestGenerateWeeklyChallenges_Stratification(t *testing.T) {
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)

	// Run many draws: the shape must hold for every seed.
	for seed := int64(0); seed < 200; seed++ {
		rng := rand.New(rand.NewSource(seed))
		challenges := GenerateWeeklyChallenges(now, rng)
		require.Len(t, challenges, 4)

		byDifficulty := map[models.ChallengeDifficulty]int{}
		for _, ch := range challenges {
			byDifficulty[ch.Difficulty]++
			assert.Equal(t, int64(0), ch.Current)
			assert.False(t, ch.Completed)
			assert.False(t, ch.Claimed)
		}
		assert.Equal(t, 1, byDifficulty[models.DifficultyEasy], "seed %d", seed)
		assert.Equal(t, 2, byDifficulty[models.DifficultyMedium], "seed %d", seed)
		assert.Equal(t, 1, byDifficulty[models.DifficultyHard], "seed %d", seed)
		assert.Equal(t, 0, byDifficulty[models.DifficultyExtreme], "seed %d", seed)

		// The two mediums must carry distinct titles.
		assert.NotEqual(t, challenges[1].Title, challenges[2].Title, "seed %d", seed)
	}
}

func TestGenerateWeeklyChallenges_IDsAndDates(t *testing.T) {
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	start, end := WeekBounds(now)
	rng := rand.New(rand.NewSource(7))

	for _, ch := range GenerateWeeklyChallenges(now, rng) {
		assert.Equal(t, start, ch.StartDate)
		assert.Equal(t, end, ch.EndDate)

		ws, err := weekStartFromChallengeID(ch.ID)
		require.NoError(t, err)
		assert.Equal(t, start.UnixMilli(), ws.UnixMilli())
	}
}

func TestUpdateChallengeProgress_ClampAndSticky(t *testing.T) {
	challenges := []models.Challenge{
		{ID: "a", Type: models.ChallengeTasks, Target: 3},
		{ID: "b", Type: models.ChallengeGoals, Target: 2},
	}

	completed := UpdateChallengeProgress(challenges, models.ChallengeTasks, 1)
	assert.Empty(t, completed)
	assert.Equal(t, int64(1), challenges[0].Current)
	assert.Equal(t, int64(0), challenges[1].Current, "non-matching type untouched")

	// Overshooting clamps to target and completes exactly once.
	completed = UpdateChallengeProgress(challenges, models.ChallengeTasks, 10)
	assert.Equal(t, []string{"a"}, completed)
	assert.Equal(t, int64(3), challenges[0].Current)
	assert.True(t, challenges[0].Completed)

	// Completed challenges are frozen.
	completed = UpdateChallengeProgress(challenges, models.ChallengeTasks, 5)
	assert.Empty(t, completed)
	assert.Equal(t, int64(3), challenges[0].Current)
	assert.True(t, challenges[0].Completed)
}

func TestChallengeClaimMessage(t *testing.T) {
	ch := &models.Challenge{
		Title:  "Goal Rush",
		Reward: models.ChallengeReward{XP: 300, Coins: 60},
	}
	assert.Equal(t, "Challenge complete: Goal Rush (+300 XP, +60 coins)", challengeClaimMessage(ch))
}

func TestClaimState(t *testing.T) {
	assert.ErrorIs(t, claimState(nil), ErrChallengeNotFound)
	assert.ErrorIs(t, claimState(&models.Challenge{Completed: false}), ErrChallengeNotCompleted)
	assert.ErrorIs(t, claimState(&models.Challenge{Completed: true, Claimed: true}), ErrChallengeAlreadyClaimed)
	assert.NoError(t, claimState(&models.Challenge{Completed: true}))
}

func TestTimeUntilWeekEnd(t *testing.T) {
	// Wednesday noon: Saturday 23:59:59.999 is 3 days and ~12 hours away.
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "3d 11h", TimeUntilWeekEnd(now))

	// Saturday early evening: under a day left, days part dropped.
	now = time.Date(2026, 3, 7, 18, 0, 0, 0, time.UTC)
	assert.Equal(t, "5h", TimeUntilWeekEnd(now))
}

func TestWeekStartFromChallengeID(t *testing.T) {
	_, err := weekStartFromChallengeID("nonsense")
	assert.Error(t, err)
	_, err = weekStartFromChallengeID("challenge_abc_1")
	assert.Error(t, err)

	start, _ := WeekBounds(time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC))
	ws, err := weekStartFromChallengeID(ChallengeID(start, 5))
	require.NoError(t, err)
	assert.Equal(t, start.UnixMilli(), ws.UnixMilli())
}
