package services

import (
	"testing"

	"gamification-system/models"

	"github.com/stretchr/testify/assert"
)

func TestChallengeTypeFor(t *testing.T) {
	assert.Equal(t, models.ChallengeTasks, challengeTypeFor(models.ActivityTask))
	assert.Equal(t, models.ChallengeGoals, challengeTypeFor(models.ActivityGoal))
	assert.Equal(t, models.ChallengeEvents, challengeTypeFor(models.ActivityEvent))
	assert.Empty(t, challengeTypeFor(models.ActivityType("unknown")))
}

func TestFirstActionOfDay(t *testing.T) {
	rec := &models.DailyActivity{}
	assert.NoError(t, bumpActivity(rec, models.ActivityTask, 10, 5))
	assert.True(t, firstActionOfDay(rec), "the action that creates the day's row extends the streak")

	// Later actions the same day must not advance streak challenges again.
	assert.NoError(t, bumpActivity(rec, models.ActivityGoal, 50, 20))
	assert.False(t, firstActionOfDay(rec))

	assert.False(t, firstActionOfDay(nil))
}
