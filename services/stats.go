package services

import (
	"time"

	"gamification-system/models"

	"gorm.io/gorm"
)

// StatsService computes the ephemeral UserStats snapshot the achievement
// evaluator runs against. Nothing here is persisted — it is recomputed from
// the activity rows and the progress record on every check.
type StatsService struct {
	DB     *gorm.DB
	Ledger *LedgerService
}

func NewStatsService(db *gorm.DB, ledger *LedgerService) *StatsService {
	return &StatsService{DB: db, Ledger: ledger}
}

// ComputeUserStats aggregates the user's daily activity and progress record
// into a fresh snapshot.
func (s *StatsService) ComputeUserStats(externalUserID string) (models.UserStats, error) {
	prog, err := s.Ledger.GetOrCreate(externalUserID)
	if err != nil {
		return models.UserStats{}, err
	}

	var activities []models.DailyActivity
	if err := s.DB.Where("external_user_id = ?", externalUserID).
		Order("date ASC").
		Find(&activities).Error; err != nil {
		return models.UserStats{}, err
	}

	stats := models.UserStats{
		Level:            int64(prog.Level),
		TotalXP:          prog.TotalXP,
		AchievementCount: int64(len(prog.Achievements)),
		DaysActive:       int64(len(activities)),
	}
	dates := make([]string, 0, len(activities))
	for i := range activities {
		stats.TotalTasksCompleted += activities[i].TasksCompleted
		stats.TotalGoalsCompleted += activities[i].GoalsCompleted
		stats.TotalEventsCreated += activities[i].EventsCreated
		dates = append(dates, activities[i].Date)
	}
	stats.CurrentStreak, stats.LongestStreak = StreakFromDates(dates, time.Now())
	return stats, nil
}

// StreakFromDates derives the current and longest streaks from sorted active
// dates (ascending, YYYY-MM-DD). The current streak counts consecutive active
// days ending today or yesterday — a gap of more than one day breaks it.
func StreakFromDates(dates []string, now time.Time) (current, longest int64) {
	if len(dates) == 0 {
		return 0, 0
	}

	parsed := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		t, err := time.ParseInLocation(ActivityDateLayout, d, now.Location())
		if err != nil {
			continue
		}
		parsed = append(parsed, t)
	}
	if len(parsed) == 0 {
		return 0, 0
	}

	var run int64 = 1
	longest = 1
	for i := 1; i < len(parsed); i++ {
		if parsed[i-1].AddDate(0, 0, 1).Equal(parsed[i]) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	// The trailing run only counts as the current streak if it is still alive.
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	last := parsed[len(parsed)-1]
	if last.Equal(today) || last.Equal(today.AddDate(0, 0, -1)) {
		current = run
	}
	return current, longest
}
