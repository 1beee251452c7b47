package services

import "math"

// BaseXPPerLevel is the XP threshold for level 1 → 2; each later threshold
// grows geometrically by LevelGrowthFactor, rounded down.
const (
	BaseXPPerLevel    = 100
	LevelGrowthFactor = 1.5
)

// XPRequiredForLevel returns the XP needed to go from the given level to the
// next one: floor(100 * 1.5^(level-1)).
func XPRequiredForLevel(level int) int64 {
	if level < 1 {
		level = 1
	}
	return int64(math.Floor(BaseXPPerLevel * math.Pow(LevelGrowthFactor, float64(level-1))))
}

// LevelFromXP derives the level for a cumulative XP total. Starting at level 1,
// it consumes each level's threshold while the remainder covers it. Monotonic in
// xp and terminating for any non-negative finite total.
func LevelFromXP(xp int64) int {
	level := 1
	remaining := xp
	for remaining >= XPRequiredForLevel(level) {
		remaining -= XPRequiredForLevel(level)
		level++
	}
	return level
}

// CumulativeXPThroughLevel returns the total XP consumed by levels 1..level,
// i.e. the minimum cumulative XP at which LevelFromXP yields level+1.
func CumulativeXPThroughLevel(level int) int64 {
	var total int64
	for l := 1; l <= level; l++ {
		total += XPRequiredForLevel(l)
	}
	return total
}

// LevelProgress describes position within the current level.
type LevelProgress struct {
	CurrentLevelXP int64   `json:"current_level_xp"`
	NeededForNext  int64   `json:"needed_for_next"`
	Percentage     float64 `json:"percentage"`
}

// ProgressWithinLevel reports how far xp has advanced into the given level.
// The caller must pass a level consistent with LevelFromXP(xp); this function
// does not recompute or validate it.
func ProgressWithinLevel(xp int64, level int) LevelProgress {
	currentLevelXP := xp - CumulativeXPThroughLevel(level-1)
	needed := XPRequiredForLevel(level)
	pct := float64(currentLevelXP) / float64(needed) * 100
	if pct > 100 {
		pct = 100
	}
	return LevelProgress{
		CurrentLevelXP: currentLevelXP,
		NeededForNext:  needed,
		Percentage:     pct,
	}
}
