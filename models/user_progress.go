package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// UserProgress tracks gamified progression for each user (denormalized for performance)
type UserProgress struct {
	ID             string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ExternalUserID string `gorm:"uniqueIndex;not null" json:"external_user_id"` // links to profile service

	// Core progression
	TotalXP int64 `json:"total_xp" gorm:"default:0"`
	Level   int   `json:"level" gorm:"default:1"` // always derived from TotalXP inside the ledger write path
	Coins   int64 `json:"coins" gorm:"default:0"`

	// Period-scoped XP counters, zeroed by the reset worker on schedule
	WeeklyXP  int64 `json:"weekly_xp" gorm:"default:0"`
	MonthlyXP int64 `json:"monthly_xp" gorm:"default:0"`

	// Unlocks
	Achievements   StringList `json:"achievements" gorm:"type:jsonb"`
	UnlockedTitles StringList `json:"unlocked_titles" gorm:"type:jsonb"`
	ActiveTitle    *string    `json:"active_title,omitempty"` // must be a member of UnlockedTitles when set

	// Premium state mirrored from the billing service (read-only here)
	IsPremium    bool       `json:"is_premium" gorm:"default:false"`
	PremiumSince *time.Time `json:"premium_since,omitempty"`

	// Milestones
	LastLevelUpAt *time.Time `json:"last_level_up_at,omitempty"`

	Timestamps
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// StringList is an append-only string set stored as a jsonb array.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}
	return json.Unmarshal(data, l)
}

// Contains reports whether id is already in the list.
func (l StringList) Contains(id string) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}
