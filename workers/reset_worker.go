// workers/reset_worker.go
package workers

import (
	"log"
	"os"

	"gamification-system/models"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

const (
	defaultWeeklyResetCron  = "0 0 * * 0" // Sunday midnight
	defaultMonthlyResetCron = "0 0 1 * *" // 1st of month, midnight
)

// ResetWorker zeroes the period-scoped XP counters on schedule so the weekly
// and monthly leaderboards start fresh. Total XP and levels are never touched.
type ResetWorker struct {
	db          *gorm.DB
	weeklyCron  string
	monthlyCron string
}

func NewResetWorker(db *gorm.DB) *ResetWorker {
	weeklyCron := os.Getenv("RESET_WEEKLY_CRON")
	if weeklyCron == "" {
		weeklyCron = defaultWeeklyResetCron
	}
	monthlyCron := os.Getenv("RESET_MONTHLY_CRON")
	if monthlyCron == "" {
		monthlyCron = defaultMonthlyResetCron
	}
	return &ResetWorker{db: db, weeklyCron: weeklyCron, monthlyCron: monthlyCron}
}

func (w *ResetWorker) Start() {
	sched, err := gocron.NewScheduler()
	if err != nil {
		log.Printf("[ResetWorker] Failed to create scheduler: %v", err)
		return
	}
	sched.Start()

	_, err = sched.NewJob(
		gocron.CronJob(w.weeklyCron, false),
		gocron.NewTask(func() { w.resetCounter("weekly_xp") }),
	)
	if err != nil {
		log.Printf("[ResetWorker] Failed to schedule weekly reset: %v", err)
	}

	_, err = sched.NewJob(
		gocron.CronJob(w.monthlyCron, false),
		gocron.NewTask(func() { w.resetCounter("monthly_xp") }),
	)
	if err != nil {
		log.Printf("[ResetWorker] Failed to schedule monthly reset: %v", err)
	}

	log.Printf("✅ Reset worker scheduled (weekly: %q, monthly: %q)", w.weeklyCron, w.monthlyCron)
}

// resetCounter zeroes one counter column for every user in a single statement.
func (w *ResetWorker) resetCounter(column string) {
	result := w.db.Model(&models.UserProgress{}).
		Where(column+" <> ?", 0).
		Update(column, 0)
	if result.Error != nil {
		log.Printf("[ResetWorker] ❌ Failed to reset %s: %v", column, result.Error)
		return
	}
	log.Printf("♻️ [ResetWorker] Reset %s for %d user(s)", column, result.RowsAffected)
}
