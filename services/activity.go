package services

import (
	"errors"
	"fmt"
	"time"

	"gamification-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ActivityDateLayout is the (userId, date) key format for daily rows.
const ActivityDateLayout = "2006-01-02"

// ActivityService aggregates daily counts of completed tasks/goals/created
// events and their rewards — one row per user-day, feeding the calendar heatmap.
type ActivityService struct {
	DB *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{DB: db}
}

// bumpActivity applies one action to a daily record: the matching count field
// goes up by exactly 1 and the reward totals accumulate. Never decrements.
func bumpActivity(rec *models.DailyActivity, atype models.ActivityType, xpEarned, coinsEarned int64) error {
	switch atype {
	case models.ActivityTask:
		rec.TasksCompleted++
	case models.ActivityGoal:
		rec.GoalsCompleted++
	case models.ActivityEvent:
		rec.EventsCreated++
	default:
		return fmt.Errorf("unknown activity type %q", atype)
	}
	rec.XPEarned += xpEarned
	rec.CoinsEarned += coinsEarned
	return nil
}

// RecordDailyActivity logs one action against today's row, creating it on the
// first action of the day. The unique (user, date) index plus the row lock
// guarantee a single record per user-day.
func (s *ActivityService) RecordDailyActivity(externalUserID string, atype models.ActivityType, xpEarned, coinsEarned int64) (*models.DailyActivity, error) {
	today := time.Now().Format(ActivityDateLayout)

	var rec models.DailyActivity
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("external_user_id = ? AND date = ?", externalUserID, today).
			First(&rec).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			rec = models.DailyActivity{
				ID:             uuid.NewString(),
				ExternalUserID: externalUserID,
				Date:           today,
			}
			if err := bumpActivity(&rec, atype, xpEarned, coinsEarned); err != nil {
				return err
			}
			return tx.Create(&rec).Error
		}
		if err != nil {
			return err
		}
		if err := bumpActivity(&rec, atype, xpEarned, coinsEarned); err != nil {
			return err
		}
		return tx.Save(&rec).Error
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// RecentActivity returns the user's daily rows going back the given number of
// days from today, oldest first.
func (s *ActivityService) RecentActivity(externalUserID string, days int) ([]models.DailyActivity, error) {
	since := time.Now().AddDate(0, 0, -(days - 1)).Format(ActivityDateLayout)
	var activities []models.DailyActivity
	err := s.DB.Where("external_user_id = ? AND date >= ?", externalUserID, since).
		Order("date ASC").
		Find(&activities).Error
	return activities, err
}

// FormatActivityForCalendar produces a dense day-by-day heatmap series: one
// entry per calendar day going back `days` days from today inclusive, zero
// for days with no activity row.
func FormatActivityForCalendar(activities []models.DailyActivity, days int, today time.Time) []models.CalendarDay {
	counts := make(map[string]int64, len(activities))
	for i := range activities {
		counts[activities[i].Date] = activities[i].TotalCount()
	}

	series := make([]models.CalendarDay, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i).Format(ActivityDateLayout)
		series = append(series, models.CalendarDay{Date: date, Count: counts[date]})
	}
	return series
}
