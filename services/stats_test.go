package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStreakFromDates(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) // a Tuesday

	tests := []struct {
		name        string
		dates       []string
		wantCurrent int64
		wantLongest int64
	}{
		{"no activity", nil, 0, 0},
		{"only today", []string{"2026-03-10"}, 1, 1},
		{"three days ending today", []string{"2026-03-08", "2026-03-09", "2026-03-10"}, 3, 3},
		{"streak ended yesterday still counts", []string{"2026-03-07", "2026-03-08", "2026-03-09"}, 3, 3},
		{"stale streak", []string{"2026-03-01", "2026-03-02", "2026-03-03"}, 0, 3},
		{"gap resets current but not longest", []string{"2026-03-01", "2026-03-02", "2026-03-03", "2026-03-04", "2026-03-09", "2026-03-10"}, 2, 4},
		{"single old day", []string{"2026-02-01"}, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current, longest := StreakFromDates(tt.dates, now)
			assert.Equal(t, tt.wantCurrent, current, "current streak")
			assert.Equal(t, tt.wantLongest, longest, "longest streak")
		})
	}
}
