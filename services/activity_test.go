package services

import (
	"testing"
	"time"

	"gamification-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBumpActivity(t *testing.T) {
	rec := &models.DailyActivity{}

	// N task actions in one day leave the other counts untouched.
	for i := 0; i < 5; i++ {
		require.NoError(t, bumpActivity(rec, models.ActivityTask, 10, 2))
	}
	assert.Equal(t, int64(5), rec.TasksCompleted)
	assert.Equal(t, int64(0), rec.GoalsCompleted)
	assert.Equal(t, int64(0), rec.EventsCreated)
	assert.Equal(t, int64(50), rec.XPEarned)
	assert.Equal(t, int64(10), rec.CoinsEarned)

	require.NoError(t, bumpActivity(rec, models.ActivityGoal, 25, 5))
	require.NoError(t, bumpActivity(rec, models.ActivityEvent, 5, 0))
	assert.Equal(t, int64(1), rec.GoalsCompleted)
	assert.Equal(t, int64(1), rec.EventsCreated)
	assert.Equal(t, int64(80), rec.XPEarned)
	assert.Equal(t, int64(7), rec.TotalCount())

	assert.Error(t, bumpActivity(rec, "bogus", 1, 1))
}

func TestFormatActivityForCalendar(t *testing.T) {
	today := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	activities := []models.DailyActivity{
		{Date: "2026-03-08", TasksCompleted: 2, GoalsCompleted: 1},
		{Date: "2026-03-10", TasksCompleted: 1, EventsCreated: 3},
	}

	series := FormatActivityForCalendar(activities, 5, today)
	require.Len(t, series, 5)

	// Dense: every calendar day present, oldest first, no gaps.
	wantDates := []string{"2026-03-06", "2026-03-07", "2026-03-08", "2026-03-09", "2026-03-10"}
	for i, day := range series {
		assert.Equal(t, wantDates[i], day.Date)
	}

	assert.Equal(t, int64(0), series[0].Count)
	assert.Equal(t, int64(0), series[1].Count)
	assert.Equal(t, int64(3), series[2].Count) // 2 tasks + 1 goal
	assert.Equal(t, int64(0), series[3].Count)
	assert.Equal(t, int64(4), series[4].Count) // 1 task + 3 events
}

func TestFormatActivityForCalendar_Empty(t *testing.T) {
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	series := FormatActivityForCalendar(nil, 3, today)
	require.Len(t, series, 3)
	for _, day := range series {
		assert.Equal(t, int64(0), day.Count)
	}
}
