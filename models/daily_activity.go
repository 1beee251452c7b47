package models

// ActivityType classifies the user action being recorded.
type ActivityType string

const (
	ActivityTask  ActivityType = "task"
	ActivityGoal  ActivityType = "goal"
	ActivityEvent ActivityType = "event"
)

// DailyActivity accumulates one row per (user, calendar day). Created on the
// first action of the day, incremented thereafter — counts never decrement.
type DailyActivity struct {
	ID             string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ExternalUserID string `gorm:"uniqueIndex:idx_user_day;not null" json:"external_user_id"`
	Date           string `gorm:"uniqueIndex:idx_user_day;not null;size:10" json:"date"` // YYYY-MM-DD

	TasksCompleted int64 `json:"tasks_completed" gorm:"default:0"`
	GoalsCompleted int64 `json:"goals_completed" gorm:"default:0"`
	EventsCreated  int64 `json:"events_created" gorm:"default:0"`
	XPEarned       int64 `json:"xp_earned" gorm:"default:0"`
	CoinsEarned    int64 `json:"coins_earned" gorm:"default:0"`

	Timestamps
}

// TotalCount is the day's combined action count, used by the calendar heatmap.
func (d *DailyActivity) TotalCount() int64 {
	return d.TasksCompleted + d.GoalsCompleted + d.EventsCreated
}

// CalendarDay is one dense entry in the heatmap series.
type CalendarDay struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}
