package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ChallengeType matches the user action stream a challenge counts.
type ChallengeType string

const (
	ChallengeTasks  ChallengeType = "tasks"
	ChallengeGoals  ChallengeType = "goals"
	ChallengeStreak ChallengeType = "streak"
	ChallengeEvents ChallengeType = "events"
	ChallengeLogin  ChallengeType = "login"
)

// ChallengeDifficulty stratifies the weekly pool.
type ChallengeDifficulty string

const (
	DifficultyEasy    ChallengeDifficulty = "easy"
	DifficultyMedium  ChallengeDifficulty = "medium"
	DifficultyHard    ChallengeDifficulty = "hard"
	DifficultyExtreme ChallengeDifficulty = "extreme"
)

// ChallengeReward is paid out exactly once when a completed challenge is claimed.
type ChallengeReward struct {
	XP    int64  `json:"xp"`
	Coins int64  `json:"coins"`
	Title string `json:"title,omitempty"` // optional title unlock
}

// Challenge is a weekly-scoped instance built from a pool template.
// Completed is sticky: once Current reaches Target it never reverts.
type Challenge struct {
	ID          string              `json:"id"` // challenge_{weekStartEpochMillis}_{poolIndex}
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Icon        string              `json:"icon"`
	Type        ChallengeType       `json:"type"`
	Target      int64               `json:"target"`
	Current     int64               `json:"current"`
	Reward      ChallengeReward     `json:"reward"`
	Difficulty  ChallengeDifficulty `json:"difficulty"`
	StartDate   time.Time           `json:"start_date"`
	EndDate     time.Time           `json:"end_date"`
	Completed   bool                `json:"completed"`
	Claimed     bool                `json:"claimed"`
	ClaimedAt   *time.Time          `json:"claimed_at,omitempty"`
}

// ChallengeList is the week's challenge instances stored as a jsonb column.
type ChallengeList []Challenge

func (l ChallengeList) Value() (driver.Value, error) {
	if l == nil {
		l = ChallengeList{}
	}
	return json.Marshal(l)
}

func (l *ChallengeList) Scan(value interface{}) error {
	if value == nil {
		*l = ChallengeList{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into ChallengeList", value)
	}
	return json.Unmarshal(data, l)
}

// WeeklyChallengeSet persists the generated selection per (user, week start),
// so re-reads within the same week never reroll the randomness.
type WeeklyChallengeSet struct {
	ID             string        `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ExternalUserID string        `gorm:"uniqueIndex:idx_user_week;not null" json:"external_user_id"`
	WeekStart      time.Time     `gorm:"uniqueIndex:idx_user_week;not null" json:"week_start"`
	Challenges     ChallengeList `gorm:"type:jsonb" json:"challenges"`

	Timestamps
}

// ChallengeTemplate is a static pool entry; instances inherit everything but
// progress and dates. Pool order is stable — instance ids encode the index.
type ChallengeTemplate struct {
	Title       string
	Description string
	Icon        string
	Type        ChallengeType
	Target      int64
	Reward      ChallengeReward
	Difficulty  ChallengeDifficulty
}

// ChallengePool is the fixed weekly pool, stratified by difficulty.
var ChallengePool = []ChallengeTemplate{
	// easy
	{Title: "Warm-Up", Description: "Complete 5 tasks this week", Icon: "🏃", Type: ChallengeTasks, Target: 5,
		Reward: ChallengeReward{XP: 100, Coins: 20}, Difficulty: DifficultyEasy},
	{Title: "Daily Visitor", Description: "Log in on 3 different days", Icon: "🚪", Type: ChallengeLogin, Target: 3,
		Reward: ChallengeReward{XP: 75, Coins: 15}, Difficulty: DifficultyEasy},
	{Title: "Kickoff", Description: "Create 2 events this week", Icon: "🎬", Type: ChallengeEvents, Target: 2,
		Reward: ChallengeReward{XP: 100, Coins: 20}, Difficulty: DifficultyEasy},
	// medium
	{Title: "Task Sprint", Description: "Complete 15 tasks this week", Icon: "⚡", Type: ChallengeTasks, Target: 15,
		Reward: ChallengeReward{XP: 250, Coins: 50}, Difficulty: DifficultyMedium},
	{Title: "Goal Rush", Description: "Complete 3 goals this week", Icon: "🎯", Type: ChallengeGoals, Target: 3,
		Reward: ChallengeReward{XP: 300, Coins: 60}, Difficulty: DifficultyMedium},
	{Title: "Streak Builder", Description: "Extend your streak by 5 days", Icon: "🔥", Type: ChallengeStreak, Target: 5,
		Reward: ChallengeReward{XP: 250, Coins: 50}, Difficulty: DifficultyMedium},
	{Title: "Event Host", Description: "Create 5 events this week", Icon: "📅", Type: ChallengeEvents, Target: 5,
		Reward: ChallengeReward{XP: 275, Coins: 55}, Difficulty: DifficultyMedium},
	{Title: "Everyday Login", Description: "Log in on 5 different days", Icon: "🗝️", Type: ChallengeLogin, Target: 5,
		Reward: ChallengeReward{XP: 225, Coins: 45}, Difficulty: DifficultyMedium},
	// hard
	{Title: "Task Marathon", Description: "Complete 40 tasks this week", Icon: "🏅", Type: ChallengeTasks, Target: 40,
		Reward: ChallengeReward{XP: 600, Coins: 150}, Difficulty: DifficultyHard},
	{Title: "Goal Domination", Description: "Complete 8 goals this week", Icon: "👑", Type: ChallengeGoals, Target: 8,
		Reward: ChallengeReward{XP: 750, Coins: 200, Title: "champion"}, Difficulty: DifficultyHard},
	{Title: "Perfect Week", Description: "Keep the streak alive all 7 days", Icon: "💯", Type: ChallengeStreak, Target: 7,
		Reward: ChallengeReward{XP: 700, Coins: 175}, Difficulty: DifficultyHard},
	// extreme — reserved for event weeks, never part of the regular weekly draw
	{Title: "Legend Run", Description: "Complete 100 tasks this week", Icon: "🐉", Type: ChallengeTasks, Target: 100,
		Reward: ChallengeReward{XP: 2000, Coins: 500, Title: "champion"}, Difficulty: DifficultyExtreme},
}
