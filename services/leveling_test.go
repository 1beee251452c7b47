package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestXPRequiredForLevel(t *testing.T) {
	tests := []struct {
		level int
		want  int64
	}{
		{1, 100},
		{2, 150},
		{3, 225},
		{4, 337}, // floor(100 * 1.5^3)
		{5, 506},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, XPRequiredForLevel(tt.level), "level %d", tt.level)
	}

	// Levels below 1 clamp to the level-1 threshold.
	assert.Equal(t, int64(100), XPRequiredForLevel(0))
	assert.Equal(t, int64(100), XPRequiredForLevel(-3))
}

func TestLevelFromXP_Thresholds(t *testing.T) {
	assert.Equal(t, 1, LevelFromXP(0))
	assert.Equal(t, 1, LevelFromXP(99))
	assert.Equal(t, 2, LevelFromXP(100))
	assert.Equal(t, 2, LevelFromXP(249))  // 100+150-1
	assert.Equal(t, 3, LevelFromXP(250))  // 100+150
	assert.Equal(t, 4, LevelFromXP(475))  // 100+150+225
}

func TestLevelFromXP_Monotonic(t *testing.T) {
	prev := LevelFromXP(0)
	for xp := int64(1); xp <= 20_000; xp++ {
		cur := LevelFromXP(xp)
		if cur < prev {
			t.Fatalf("levelFromXP not monotonic at xp=%d: %d < %d", xp, cur, prev)
		}
		prev = cur
	}
}

func TestLevelFromXP_ThresholdExactness(t *testing.T) {
	for l := 1; l <= 20; l++ {
		cum := CumulativeXPThroughLevel(l)
		assert.Equal(t, l+1, LevelFromXP(cum), "at exactly the cumulative threshold for level %d", l)
		assert.Equal(t, l, LevelFromXP(cum-1), "one XP below the threshold for level %d", l)
	}
}

func TestProgressWithinLevel(t *testing.T) {
	// Fresh user: 0/100 into level 1.
	p := ProgressWithinLevel(0, 1)
	assert.Equal(t, int64(0), p.CurrentLevelXP)
	assert.Equal(t, int64(100), p.NeededForNext)
	assert.Equal(t, 0.0, p.Percentage)

	// Halfway through level 1.
	p = ProgressWithinLevel(50, 1)
	assert.Equal(t, int64(50), p.CurrentLevelXP)
	assert.Equal(t, 50.0, p.Percentage)

	// 25 XP into level 2 (needs 150).
	p = ProgressWithinLevel(125, 2)
	assert.Equal(t, int64(25), p.CurrentLevelXP)
	assert.Equal(t, int64(150), p.NeededForNext)

	// Percentage caps at 100 even if the caller passes a stale level.
	p = ProgressWithinLevel(10_000, 2)
	assert.Equal(t, 100.0, p.Percentage)
}
