package services

import (
	"fmt"
	"log"

	"gamification-system/models"
)

// ActionService orchestrates the full pipeline behind a user action:
// record the day's tally → apply XP/coins → re-check achievements and titles
// against fresh stats → bump the matching weekly challenges.
type ActionService struct {
	Ledger        *LedgerService
	Activity      *ActivityService
	Achievements  *AchievementService
	Challenges    *ChallengeService
	Stats         *StatsService
	Notifications *NotificationService
}

func NewActionService(ledger *LedgerService, activity *ActivityService, achievements *AchievementService,
	challenges *ChallengeService, stats *StatsService, notifications *NotificationService) *ActionService {
	return &ActionService{
		Ledger:        ledger,
		Activity:      activity,
		Achievements:  achievements,
		Challenges:    challenges,
		Stats:         stats,
		Notifications: notifications,
	}
}

// ActionResult aggregates everything a single action earned, for one UI payload.
type ActionResult struct {
	Grant               GrantResult           `json:"grant"`
	CoinBalance         int64                 `json:"coin_balance"`
	NewAchievements     []string              `json:"new_achievements"`
	NewTitles           []string              `json:"new_titles"`
	CompletedChallenges []string              `json:"completed_challenges"`
	Activity            *models.DailyActivity `json:"activity"`
}

// firstActionOfDay reports whether rec holds exactly one action — the action
// that created today's row and extended the daily streak.
func firstActionOfDay(rec *models.DailyActivity) bool {
	return rec != nil && rec.TotalCount() == 1
}

// challengeTypeFor maps an action to the challenge stream it advances.
func challengeTypeFor(atype models.ActivityType) models.ChallengeType {
	switch atype {
	case models.ActivityTask:
		return models.ChallengeTasks
	case models.ActivityGoal:
		return models.ChallengeGoals
	case models.ActivityEvent:
		return models.ChallengeEvents
	default:
		return ""
	}
}

// CompleteAction runs the pipeline for one completed task/goal/created event.
func (s *ActionService) CompleteAction(externalUserID string, atype models.ActivityType, xpReward, coinReward int64) (*ActionResult, error) {
	activity, err := s.Activity.RecordDailyActivity(externalUserID, atype, xpReward, coinReward)
	if err != nil {
		return nil, fmt.Errorf("record activity: %w", err)
	}

	grant, err := s.Ledger.GrantXP(externalUserID, xpReward)
	if err != nil {
		return nil, fmt.Errorf("grant xp: %w", err)
	}
	balance, err := s.Ledger.AddCoins(externalUserID, coinReward)
	if err != nil {
		return nil, fmt.Errorf("grant coins: %w", err)
	}

	result := &ActionResult{
		Grant:       grant,
		CoinBalance: balance,
		Activity:    activity,
	}

	if grant.LeveledUp {
		s.Notifications.Notify(externalUserID, models.NotificationLevelUp,
			fmt.Sprintf("%d", grant.NewLevel),
			fmt.Sprintf("You reached level %d!", grant.NewLevel), 0, 0)
	}

	// Fresh stats after the grant, so level/xp conditions see the new totals.
	stats, err := s.Stats.ComputeUserStats(externalUserID)
	if err != nil {
		return nil, fmt.Errorf("compute stats: %w", err)
	}

	unlocked, err := s.Achievements.CheckAchievements(externalUserID, stats)
	if err != nil {
		return nil, fmt.Errorf("check achievements: %w", err)
	}
	result.NewAchievements = unlocked
	for _, id := range unlocked {
		if a, ok := models.AchievementByID(id); ok {
			s.Notifications.Notify(externalUserID, models.NotificationAchievement, id,
				fmt.Sprintf("Achievement unlocked: %s", a.Name), a.XPReward, 0)
		}
	}

	titles, err := s.Achievements.CheckTitles(externalUserID, stats)
	if err != nil {
		return nil, fmt.Errorf("check titles: %w", err)
	}
	result.NewTitles = titles
	for _, id := range titles {
		if title, ok := models.TitleByID(id); ok {
			s.Notifications.Notify(externalUserID, models.NotificationTitle, id,
				fmt.Sprintf("Title unlocked: %s", title.Name), 0, 0)
		}
	}

	// Challenges run on their own weekly-scoped stream of the same action types.
	if ctype := challengeTypeFor(atype); ctype != "" {
		_, completedNow, err := s.Challenges.RecordProgress(externalUserID, ctype, 1)
		if err != nil {
			return nil, fmt.Errorf("challenge progress: %w", err)
		}
		result.CompletedChallenges = completedNow
	}

	// The first action of a day is the one that extends the streak, so
	// streak-type challenges advance once per active day.
	if firstActionOfDay(activity) {
		streakCompleted, err := s.RecordStreakProgress(externalUserID)
		if err != nil {
			return nil, fmt.Errorf("streak challenge progress: %w", err)
		}
		result.CompletedChallenges = append(result.CompletedChallenges, streakCompleted...)
	}

	log.Printf("🎮 Action %s for %s: +%d XP, +%d coins, %d achievement(s)",
		atype, externalUserID, xpReward, coinReward, len(result.NewAchievements))
	return result, nil
}

// RecordLogin advances login-type challenges; called once per session day.
func (s *ActionService) RecordLogin(externalUserID string) ([]string, error) {
	_, completedNow, err := s.Challenges.RecordProgress(externalUserID, models.ChallengeLogin, 1)
	return completedNow, err
}

// RecordStreakProgress advances streak-type challenges when the daily streak
// extends (driven by the same pipeline that recomputes stats).
func (s *ActionService) RecordStreakProgress(externalUserID string) ([]string, error) {
	_, completedNow, err := s.Challenges.RecordProgress(externalUserID, models.ChallengeStreak, 1)
	return completedNow, err
}
