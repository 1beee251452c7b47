package services

import (
	"gamification-system/models"

	"gorm.io/gorm"
)

// AchievementService re-checks unlock conditions against fresh stats and grants
// rewards through the ledger. Safe to call after every qualifying action —
// already-unlocked achievements are cheap no-ops.
type AchievementService struct {
	DB     *gorm.DB
	Ledger *LedgerService
}

func NewAchievementService(db *gorm.DB, ledger *LedgerService) *AchievementService {
	return &AchievementService{DB: db, Ledger: ledger}
}

// ConditionMet dispatches a tagged condition against a stats snapshot.
func ConditionMet(cond models.AchievementCondition, stats models.UserStats) bool {
	switch cond.Type {
	case models.ConditionGoals:
		return stats.TotalGoalsCompleted >= cond.Value
	case models.ConditionTasks:
		return stats.TotalTasksCompleted >= cond.Value
	case models.ConditionStreak:
		return stats.CurrentStreak >= cond.Value || stats.LongestStreak >= cond.Value
	case models.ConditionEvents:
		return stats.TotalEventsCreated >= cond.Value
	case models.ConditionDaysActive:
		return stats.DaysActive >= cond.Value
	case models.ConditionLevel:
		return stats.Level >= cond.Value
	case models.ConditionXP:
		return stats.TotalXP >= cond.Value
	case models.ConditionAchievementCount:
		return stats.AchievementCount >= cond.Value
	default:
		return false
	}
}

// EligibleAchievements filters the catalog, in declared order, down to entries
// that are not yet unlocked and whose condition the snapshot satisfies.
func EligibleAchievements(unlocked models.StringList, stats models.UserStats) []models.Achievement {
	var out []models.Achievement
	for _, a := range models.AchievementCatalog {
		if unlocked.Contains(a.ID) {
			continue
		}
		if ConditionMet(a.Condition, stats) {
			out = append(out, a)
		}
	}
	return out
}

// CheckAchievements unlocks every achievement the stats snapshot now qualifies
// for and returns the newly unlocked ids in catalog order. A concurrent caller
// that loses the unlock race simply doesn't report that id.
func (s *AchievementService) CheckAchievements(externalUserID string, stats models.UserStats) ([]string, error) {
	prog, err := s.Ledger.GetOrCreate(externalUserID)
	if err != nil {
		return nil, err
	}

	var newlyUnlocked []string
	for _, a := range EligibleAchievements(prog.Achievements, stats) {
		ok, err := s.Ledger.UnlockAchievement(externalUserID, a.ID)
		if err != nil {
			return newlyUnlocked, err
		}
		if ok {
			newlyUnlocked = append(newlyUnlocked, a.ID)
		}
	}
	return newlyUnlocked, nil
}

// TitleRequirementMet dispatches a title requirement against stats. Special
// titles always report false — they are only unlocked by explicit grant.
func TitleRequirementMet(req models.TitleRequirement, stats models.UserStats) bool {
	switch req.Type {
	case models.RequireLevel:
		return stats.Level >= req.Value
	case models.RequireXP:
		return stats.TotalXP >= req.Value
	case models.RequireAchievements:
		return stats.AchievementCount >= req.Value
	case models.RequireStreak:
		return stats.CurrentStreak >= req.Value || stats.LongestStreak >= req.Value
	case models.RequireTasks:
		return stats.TotalTasksCompleted >= req.Value
	case models.RequireGoals:
		return stats.TotalGoalsCompleted >= req.Value
	case models.RequireSpecial:
		return false
	default:
		return false
	}
}

// CheckTitles auto-unlocks every non-special title whose requirement the stats
// snapshot satisfies. Returns the newly unlocked title ids.
func (s *AchievementService) CheckTitles(externalUserID string, stats models.UserStats) ([]string, error) {
	prog, err := s.Ledger.GetOrCreate(externalUserID)
	if err != nil {
		return nil, err
	}

	var newlyUnlocked []string
	for _, t := range models.TitleCatalog {
		if prog.UnlockedTitles.Contains(t.ID) {
			continue
		}
		if !TitleRequirementMet(t.Requirement, stats) {
			continue
		}
		ok, err := s.Ledger.UnlockTitle(externalUserID, t.ID)
		if err != nil {
			return newlyUnlocked, err
		}
		if ok {
			newlyUnlocked = append(newlyUnlocked, t.ID)
		}
	}
	return newlyUnlocked, nil
}
