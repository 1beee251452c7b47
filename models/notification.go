package models

// NotificationKind classifies what earned the user a notification.
type NotificationKind string

const (
	NotificationLevelUp     NotificationKind = "level_up"
	NotificationAchievement NotificationKind = "achievement"
	NotificationChallenge   NotificationKind = "challenge"
	NotificationTitle       NotificationKind = "title"
)

// RewardNotification is one inbox row per level-up, achievement unlock,
// challenge payout or title grant. The UI polls unviewed counts.
type RewardNotification struct {
	ID             string           `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ExternalUserID string           `gorm:"index;not null" json:"external_user_id"`
	Kind           NotificationKind `gorm:"not null" json:"kind"`
	RefID          string           `gorm:"index" json:"ref_id"` // achievement/challenge/title id, or level reached
	Message        string           `gorm:"type:text" json:"message"`
	XPAwarded      int64            `json:"xp_awarded"`
	CoinsAwarded   int64            `json:"coins_awarded"`
	Viewed         bool             `gorm:"default:false;index" json:"viewed"`

	Timestamps
}
