package models

import "time"

// TwitchLink connects a user to their Twitch channel. Populated by the OAuth
// link flow; the sync worker sweeps these rows to grant live-stream XP.
type TwitchLink struct {
	ID             string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ExternalUserID string `gorm:"uniqueIndex;not null" json:"external_user_id"`
	TwitchUserID   string `gorm:"index;not null" json:"twitch_user_id"`
	TwitchLogin    string `json:"twitch_login"`

	AccessToken  string `json:"-"`
	RefreshToken string `json:"-"`

	// Live sweep bookkeeping
	IsLive      bool       `json:"is_live" gorm:"default:false"`
	LiveSince   *time.Time `json:"live_since,omitempty"`
	LastSweepAt *time.Time `json:"last_sweep_at,omitempty"`

	Timestamps
}
