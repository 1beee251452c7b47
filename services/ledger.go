package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gamification-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Expected-failure signals. Handlers map these to 4xx responses; anything else
// is an infrastructure error.
var (
	ErrInsufficientCoins  = errors.New("insufficient coins")
	ErrTitleNotUnlocked   = errors.New("title not unlocked")
	ErrUnknownTitle       = errors.New("unknown title")
	ErrUnknownAchievement = errors.New("unknown achievement")
)

// LedgerService owns every mutation of a user's progress record. All writes
// run inside a transaction holding a FOR UPDATE lock on the user's row, so
// grants, spends and unlocks for one user are serialized. The mutation rules
// themselves live in the apply* functions below, which operate on the in-memory
// record only.
type LedgerService struct {
	DB *gorm.DB
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{DB: db}
}

// GrantResult reports the outcome of an XP grant.
type GrantResult struct {
	NewXP     int64 `json:"new_xp"`
	NewLevel  int   `json:"new_level"`
	LeveledUp bool  `json:"leveled_up"`
}

// newDefaultProgress is the fresh-record state: level 1, zero XP and coins,
// starter title unlocked and active.
func newDefaultProgress(externalUserID string) models.UserProgress {
	starter := models.StarterTitleID
	return models.UserProgress{
		ID:             uuid.NewString(),
		ExternalUserID: externalUserID,
		Level:          1,
		Achievements:   models.StringList{},
		UnlockedTitles: models.StringList{starter},
		ActiveTitle:    &starter,
	}
}

// applyXP applies an XP grant to an in-memory record. The level is recomputed
// from the new total — never set independently.
func applyXP(prog *models.UserProgress, amount int64, now time.Time) GrantResult {
	oldLevel := prog.Level

	prog.TotalXP += amount
	prog.WeeklyXP += amount
	prog.MonthlyXP += amount
	prog.Level = LevelFromXP(prog.TotalXP)
	if prog.Level > oldLevel {
		prog.LastLevelUpAt = &now
	}

	return GrantResult{
		NewXP:     prog.TotalXP,
		NewLevel:  prog.Level,
		LeveledUp: prog.Level > oldLevel,
	}
}

// applySpend debits coins after a balance check. On insufficient funds it
// returns ErrInsufficientCoins and leaves the record untouched — the balance
// never goes negative.
func applySpend(prog *models.UserProgress, amount int64) error {
	if prog.Coins < amount {
		return ErrInsufficientCoins
	}
	prog.Coins -= amount
	return nil
}

// applyAchievementUnlock marks an achievement unlocked and applies its XP
// reward. A repeated unlock returns false and changes nothing.
func applyAchievementUnlock(prog *models.UserProgress, achievement models.Achievement, now time.Time) (GrantResult, bool) {
	if prog.Achievements.Contains(achievement.ID) {
		return GrantResult{}, false
	}
	prog.Achievements = append(prog.Achievements, achievement.ID)
	return applyXP(prog, achievement.XPReward, now), true
}

// applyActiveTitle sets (or clears, with nil) the displayed title. Setting a
// title outside the unlocked set returns ErrTitleNotUnlocked and leaves the
// active title unchanged.
func applyActiveTitle(prog *models.UserProgress, titleID *string) error {
	if titleID != nil && !prog.UnlockedTitles.Contains(*titleID) {
		return ErrTitleNotUnlocked
	}
	prog.ActiveTitle = titleID
	return nil
}

// lockProgress fetches the user's progress row under a FOR UPDATE lock,
// creating the default record if none exists. Must be called inside tx.
func lockProgress(tx *gorm.DB, externalUserID string) (*models.UserProgress, error) {
	var prog models.UserProgress
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("external_user_id = ?", externalUserID).
		First(&prog).Error
	if err == nil {
		return &prog, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// A concurrent first caller may insert the row between the read and the
	// create; the unique index makes the insert a no-op and the re-read picks
	// up whichever row won, under the lock.
	prog = newDefaultProgress(externalUserID)
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&prog).Error; err != nil {
		return nil, err
	}
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("external_user_id = ?", externalUserID).
		First(&prog).Error; err != nil {
		return nil, err
	}
	return &prog, nil
}

// grantXPLocked applies an XP grant to an already-locked record and saves it.
func grantXPLocked(tx *gorm.DB, prog *models.UserProgress, amount int64) (GrantResult, error) {
	result := applyXP(prog, amount, time.Now())
	if err := tx.Save(prog).Error; err != nil {
		return GrantResult{}, err
	}
	return result, nil
}

// GetOrCreate returns the user's progress record, creating the default one
// (level 1, zero XP/coins, starter title unlocked and active) if absent.
func (s *LedgerService) GetOrCreate(externalUserID string) (*models.UserProgress, error) {
	var prog *models.UserProgress
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		prog, err = lockProgress(tx, externalUserID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return prog, nil
}

// GrantXP adds a non-negative amount of XP, bumps the weekly/monthly counters
// and recomputes the level.
func (s *LedgerService) GrantXP(externalUserID string, amount int64) (GrantResult, error) {
	if amount < 0 {
		return GrantResult{}, fmt.Errorf("xp amount must be non-negative, got %d", amount)
	}
	var result GrantResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		prog, err := lockProgress(tx, externalUserID)
		if err != nil {
			return err
		}
		result, err = grantXPLocked(tx, prog, amount)
		return err
	})
	if err != nil {
		return GrantResult{}, err
	}
	if result.LeveledUp {
		log.Printf("🎮 Level up: %s → Lvl=%d (XP=%d)", externalUserID, result.NewLevel, result.NewXP)
	}
	return result, nil
}

// AddCoins unconditionally credits coins.
func (s *LedgerService) AddCoins(externalUserID string, amount int64) (int64, error) {
	if amount < 0 {
		return 0, fmt.Errorf("coin amount must be non-negative, got %d", amount)
	}
	var balance int64
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		prog, err := lockProgress(tx, externalUserID)
		if err != nil {
			return err
		}
		prog.Coins += amount
		balance = prog.Coins
		return tx.Save(prog).Error
	})
	return balance, err
}

// SpendCoins debits coins after an atomic balance check. On insufficient funds
// it returns ErrInsufficientCoins and performs no mutation.
func (s *LedgerService) SpendCoins(externalUserID string, amount int64) (int64, error) {
	if amount < 0 {
		return 0, fmt.Errorf("spend amount must be non-negative, got %d", amount)
	}
	var balance int64
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		prog, err := lockProgress(tx, externalUserID)
		if err != nil {
			return err
		}
		if err := applySpend(prog, amount); err != nil {
			return err
		}
		balance = prog.Coins
		return tx.Save(prog).Error
	})
	return balance, err
}

// UnlockAchievement marks the achievement unlocked and grants its XP reward in
// one transaction. Idempotent: a repeated call returns false and grants nothing.
func (s *LedgerService) UnlockAchievement(externalUserID, achievementID string) (bool, error) {
	achievement, ok := models.AchievementByID(achievementID)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownAchievement, achievementID)
	}

	newlyUnlocked := false
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		prog, err := lockProgress(tx, externalUserID)
		if err != nil {
			return err
		}
		_, ok := applyAchievementUnlock(prog, achievement, time.Now())
		if !ok {
			return nil // already unlocked — safe no-op
		}
		newlyUnlocked = true
		return tx.Save(prog).Error
	})
	if err != nil {
		return false, err
	}
	if newlyUnlocked {
		log.Printf("🎖️ Achievement unlocked: %s → %s (+%d XP)", externalUserID, achievementID, achievement.XPReward)
	}
	return newlyUnlocked, nil
}

// UnlockTitle adds a title to the unlocked set. Idempotent.
func (s *LedgerService) UnlockTitle(externalUserID, titleID string) (bool, error) {
	if _, ok := models.TitleByID(titleID); !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownTitle, titleID)
	}
	newlyUnlocked := false
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		prog, err := lockProgress(tx, externalUserID)
		if err != nil {
			return err
		}
		if prog.UnlockedTitles.Contains(titleID) {
			return nil
		}
		prog.UnlockedTitles = append(prog.UnlockedTitles, titleID)
		newlyUnlocked = true
		return tx.Save(prog).Error
	})
	return newlyUnlocked, err
}

// SetActiveTitle sets (or clears, with nil) the displayed title.
func (s *LedgerService) SetActiveTitle(externalUserID string, titleID *string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		prog, err := lockProgress(tx, externalUserID)
		if err != nil {
			return err
		}
		if err := applyActiveTitle(prog, titleID); err != nil {
			return err
		}
		return tx.Save(prog).Error
	})
}

// PurchaseTitle atomically spends coins and unlocks a shop title. Either both
// writes land or neither does.
func (s *LedgerService) PurchaseTitle(externalUserID, titleID string) (int64, error) {
	title, ok := models.TitleByID(titleID)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownTitle, titleID)
	}
	if title.CoinPrice <= 0 {
		return 0, fmt.Errorf("%w: %s is not purchasable", ErrUnknownTitle, titleID)
	}

	var balance int64
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		prog, err := lockProgress(tx, externalUserID)
		if err != nil {
			return err
		}
		if prog.UnlockedTitles.Contains(titleID) {
			return nil // already owned — don't charge twice
		}
		if err := applySpend(prog, title.CoinPrice); err != nil {
			return err
		}
		prog.UnlockedTitles = append(prog.UnlockedTitles, titleID)
		balance = prog.Coins
		return tx.Save(prog).Error
	})
	return balance, err
}

// ResetProgress is an admin operation: XP, level, coins, achievements and
// titles return to the fresh-record defaults. Identity and premium fields are
// preserved.
func (s *LedgerService) ResetProgress(externalUserID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		prog, err := lockProgress(tx, externalUserID)
		if err != nil {
			return err
		}
		starter := models.StarterTitleID
		prog.TotalXP = 0
		prog.Level = 1
		prog.Coins = 0
		prog.WeeklyXP = 0
		prog.MonthlyXP = 0
		prog.Achievements = models.StringList{}
		prog.UnlockedTitles = models.StringList{starter}
		prog.ActiveTitle = &starter
		prog.LastLevelUpAt = nil
		if err := tx.Save(prog).Error; err != nil {
			return err
		}
		log.Printf("♻️ Progress reset for %s (premium preserved: %t)", externalUserID, prog.IsPremium)
		return nil
	})
}
