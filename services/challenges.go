package services

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"gamification-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrChallengeNotFound       = errors.New("challenge not found")
	ErrChallengeNotCompleted   = errors.New("challenge not completed")
	ErrChallengeAlreadyClaimed = errors.New("challenge already claimed")
)

// challengesPerWeek: 1 easy + 2 medium + 1 hard.
const challengesPerWeek = 4

// ChallengeService generates, persists and settles weekly challenge sets.
type ChallengeService struct {
	DB            *gorm.DB
	Ledger        *LedgerService
	Notifications *NotificationService

	rng *rand.Rand
}

func NewChallengeService(db *gorm.DB, ledger *LedgerService, notifications *NotificationService) *ChallengeService {
	return &ChallengeService{
		DB:            db,
		Ledger:        ledger,
		Notifications: notifications,
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WeekBounds returns the challenge week containing t: Sunday 00:00:00.000 to
// Saturday 23:59:59.999, local time.
func WeekBounds(t time.Time) (start, end time.Time) {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	start = midnight.AddDate(0, 0, -int(t.Weekday()))
	end = start.AddDate(0, 0, 7).Add(-time.Millisecond)
	return start, end
}

// ChallengeID encodes the week and the pool slot so instances stay stable and
// unique across weeks.
func ChallengeID(weekStart time.Time, poolIndex int) string {
	return fmt.Sprintf("challenge_%d_%d", weekStart.UnixMilli(), poolIndex)
}

// weekStartFromChallengeID recovers the encoded week start epoch millis.
func weekStartFromChallengeID(id string) (time.Time, error) {
	parts := strings.Split(id, "_")
	if len(parts) != 3 || parts[0] != "challenge" {
		return time.Time{}, fmt.Errorf("malformed challenge id %q", id)
	}
	millis, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed challenge id %q: %w", id, err)
	}
	return time.UnixMilli(millis), nil
}

// GenerateWeeklyChallenges draws the week's set from the fixed pool: 1 random
// easy, 2 random medium with distinct titles, 1 random hard. Extreme templates
// never enter the weekly draw.
func GenerateWeeklyChallenges(now time.Time, rng *rand.Rand) []models.Challenge {
	start, end := WeekBounds(now)

	var easy, medium, hard []int
	for i, tpl := range models.ChallengePool {
		switch tpl.Difficulty {
		case models.DifficultyEasy:
			easy = append(easy, i)
		case models.DifficultyMedium:
			medium = append(medium, i)
		case models.DifficultyHard:
			hard = append(hard, i)
		}
	}

	picks := make([]int, 0, challengesPerWeek)
	picks = append(picks, easy[rng.Intn(len(easy))])

	first := medium[rng.Intn(len(medium))]
	second := medium[rng.Intn(len(medium))]
	for models.ChallengePool[second].Title == models.ChallengePool[first].Title {
		second = medium[rng.Intn(len(medium))]
	}
	picks = append(picks, first, second)
	picks = append(picks, hard[rng.Intn(len(hard))])

	challenges := make([]models.Challenge, 0, len(picks))
	for _, idx := range picks {
		tpl := models.ChallengePool[idx]
		challenges = append(challenges, models.Challenge{
			ID:          ChallengeID(start, idx),
			Title:       tpl.Title,
			Description: tpl.Description,
			Icon:        tpl.Icon,
			Type:        tpl.Type,
			Target:      tpl.Target,
			Current:     0,
			Reward:      tpl.Reward,
			Difficulty:  tpl.Difficulty,
			StartDate:   start,
			EndDate:     end,
			Completed:   false,
		})
	}
	return challenges
}

// UpdateChallengeProgress bumps every non-completed challenge of the matching
// type, clamping current to target. Completion is sticky: completed challenges
// are frozen against further increments. Returns the ids that completed now.
func UpdateChallengeProgress(challenges []models.Challenge, ctype models.ChallengeType, increment int64) []string {
	var completedNow []string
	for i := range challenges {
		ch := &challenges[i]
		if ch.Completed || ch.Type != ctype {
			continue
		}
		ch.Current += increment
		if ch.Current > ch.Target {
			ch.Current = ch.Target
		}
		if ch.Current >= ch.Target {
			ch.Completed = true
			completedNow = append(completedNow, ch.ID)
		}
	}
	return completedNow
}

// challengeClaimMessage is the inbox line for a settled challenge.
func challengeClaimMessage(ch *models.Challenge) string {
	return fmt.Sprintf("Challenge complete: %s (+%d XP, +%d coins)", ch.Title, ch.Reward.XP, ch.Reward.Coins)
}

// claimState reports why a challenge cannot be claimed, or nil when it can.
func claimState(ch *models.Challenge) error {
	switch {
	case ch == nil:
		return ErrChallengeNotFound
	case !ch.Completed:
		return ErrChallengeNotCompleted
	case ch.Claimed:
		return ErrChallengeAlreadyClaimed
	default:
		return nil
	}
}

// TimeUntilWeekEnd formats the remaining challenge time as "{days}d {hours}h",
// or just "{hours}h" once under a day remains.
func TimeUntilWeekEnd(now time.Time) string {
	_, end := WeekBounds(now)
	remaining := end.Sub(now)
	if remaining < 0 {
		remaining = 0
	}
	days := int(remaining.Hours()) / 24
	hours := int(remaining.Hours()) % 24
	if days > 0 {
		return fmt.Sprintf("%dd %dh", days, hours)
	}
	return fmt.Sprintf("%dh", hours)
}

// GetWeeklySet returns the user's persisted set for the current week, drawing
// and persisting a fresh one only when the week has rolled over. Re-reads
// within the same week never reroll the selection.
func (s *ChallengeService) GetWeeklySet(externalUserID string) (*models.WeeklyChallengeSet, error) {
	start, _ := WeekBounds(time.Now())

	var set models.WeeklyChallengeSet
	err := s.DB.Where("external_user_id = ? AND week_start = ?", externalUserID, start).First(&set).Error
	if err == nil {
		return &set, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	set = models.WeeklyChallengeSet{
		ID:             uuid.NewString(),
		ExternalUserID: externalUserID,
		WeekStart:      start,
		Challenges:     GenerateWeeklyChallenges(time.Now(), s.rng),
	}
	// A concurrent first read may have inserted the row already; the unique
	// (user, week_start) index makes the insert a no-op and we re-read.
	if err := s.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&set).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Where("external_user_id = ? AND week_start = ?", externalUserID, start).First(&set).Error; err != nil {
		return nil, err
	}
	log.Printf("🗓️ Weekly challenges ready for %s (week of %s)", externalUserID, start.Format("2006-01-02"))
	return &set, nil
}

// RecordProgress applies an increment to the current week's set and returns
// the updated set plus the ids of challenges that just completed.
func (s *ChallengeService) RecordProgress(externalUserID string, ctype models.ChallengeType, increment int64) (*models.WeeklyChallengeSet, []string, error) {
	// Ensure the week's set exists before locking it.
	if _, err := s.GetWeeklySet(externalUserID); err != nil {
		return nil, nil, err
	}

	start, _ := WeekBounds(time.Now())
	var set models.WeeklyChallengeSet
	var completedNow []string
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("external_user_id = ? AND week_start = ?", externalUserID, start).
			First(&set).Error; err != nil {
			return err
		}
		completedNow = UpdateChallengeProgress(set.Challenges, ctype, increment)
		return tx.Save(&set).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &set, completedNow, nil
}

// Claim settles a completed challenge exactly once: the claimed flag and the
// reward grant land in the same transaction. Failure reasons are distinct —
// ErrChallengeNotFound, ErrChallengeNotCompleted, ErrChallengeAlreadyClaimed.
func (s *ChallengeService) Claim(externalUserID, challengeID string) (*models.Challenge, error) {
	weekStart, err := weekStartFromChallengeID(challengeID)
	if err != nil {
		return nil, ErrChallengeNotFound
	}

	var claimed models.Challenge
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var set models.WeeklyChallengeSet
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("external_user_id = ? AND week_start = ?", externalUserID, weekStart).
			First(&set).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrChallengeNotFound
			}
			return err
		}

		var ch *models.Challenge
		for i := range set.Challenges {
			if set.Challenges[i].ID == challengeID {
				ch = &set.Challenges[i]
				break
			}
		}
		if err := claimState(ch); err != nil {
			return err
		}

		now := time.Now()
		ch.Claimed = true
		ch.ClaimedAt = &now
		if err := tx.Save(&set).Error; err != nil {
			return err
		}

		// Pay out through the ledger inside the same transaction.
		prog, err := lockProgress(tx, externalUserID)
		if err != nil {
			return err
		}
		if _, err := grantXPLocked(tx, prog, ch.Reward.XP); err != nil {
			return err
		}
		if ch.Reward.Coins > 0 {
			prog.Coins += ch.Reward.Coins
			if err := tx.Save(prog).Error; err != nil {
				return err
			}
		}
		if ch.Reward.Title != "" && !prog.UnlockedTitles.Contains(ch.Reward.Title) {
			prog.UnlockedTitles = append(prog.UnlockedTitles, ch.Reward.Title)
			if err := tx.Save(prog).Error; err != nil {
				return err
			}
		}

		claimed = *ch
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("🏆 Challenge claimed: %s → %s (+%d XP, +%d coins)",
		externalUserID, claimed.ID, claimed.Reward.XP, claimed.Reward.Coins)
	s.Notifications.Notify(externalUserID, models.NotificationChallenge, claimed.ID,
		challengeClaimMessage(&claimed), claimed.Reward.XP, claimed.Reward.Coins)
	return &claimed, nil
}
