package progression

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(yearDay int) time.Time {
	return time.Date(2025, time.March, yearDay, 12, 0, 0, 0, time.UTC)
}

func dayPtr(yearDay int) *time.Time {
	d := day(yearDay)
	return &d
}

// TestComputeStreak_FirstPractice verifies the very first session starts
// a streak of one without touching tokens.
func TestComputeStreak_FirstPractice(t *testing.T) {
	res := ComputeStreak(0, 3, nil, day(1))
	assert.Equal(t, 1, res.NewStreak)
	assert.False(t, res.FreezeConsumed)
	assert.False(t, res.Anomalous)
}

// TestComputeStreak_SameDay verifies re-entry on the same calendar day is
// idempotent.
func TestComputeStreak_SameDay(t *testing.T) {
	res := ComputeStreak(7, 2, dayPtr(10), day(10).Add(5*time.Hour))
	assert.Equal(t, 7, res.NewStreak)
	assert.False(t, res.FreezeConsumed)
}

// TestComputeStreak_NextDay verifies a one-day gap extends the streak by
// exactly one.
func TestComputeStreak_NextDay(t *testing.T) {
	res := ComputeStreak(7, 0, dayPtr(10), day(11))
	assert.Equal(t, 8, res.NewStreak)
	assert.False(t, res.FreezeConsumed)
}

// TestComputeStreak_MidnightBoundary verifies day comparisons are
// calendar-based, not elapsed-time-based: 23:50 followed by 00:10 is
// still a consecutive day.
func TestComputeStreak_MidnightBoundary(t *testing.T) {
	lateNight := time.Date(2025, time.March, 10, 23, 50, 0, 0, time.UTC)
	earlyMorning := time.Date(2025, time.March, 11, 0, 10, 0, 0, time.UTC)

	res := ComputeStreak(4, 0, &lateNight, earlyMorning)
	assert.Equal(t, 5, res.NewStreak)
}

// TestComputeStreak_TwoDayGapWithToken verifies a freeze token forgives
// exactly one missed day.
func TestComputeStreak_TwoDayGapWithToken(t *testing.T) {
	res := ComputeStreak(10, 2, dayPtr(10), day(12))
	assert.Equal(t, 11, res.NewStreak)
	assert.True(t, res.FreezeConsumed)
}

// TestComputeStreak_TwoDayGapWithoutToken verifies a two-day gap resets
// when no token is available.
func TestComputeStreak_TwoDayGapWithoutToken(t *testing.T) {
	res := ComputeStreak(10, 0, dayPtr(10), day(12))
	assert.Equal(t, 1, res.NewStreak)
	assert.False(t, res.FreezeConsumed)
}

// TestComputeStreak_LongGapIgnoresTokens verifies a gap of three or more
// days resets regardless of token balance.
func TestComputeStreak_LongGapIgnoresTokens(t *testing.T) {
	res := ComputeStreak(50, 5, dayPtr(10), day(13))
	assert.Equal(t, 1, res.NewStreak)
	assert.False(t, res.FreezeConsumed)

	res = ComputeStreak(50, 5, dayPtr(10), day(25))
	assert.Equal(t, 1, res.NewStreak)
	assert.False(t, res.FreezeConsumed)
}

// TestComputeStreak_BackdatedPractice verifies an out-of-order timestamp
// resets deterministically instead of failing, and is flagged.
func TestComputeStreak_BackdatedPractice(t *testing.T) {
	res := ComputeStreak(10, 2, dayPtr(10), day(8))
	assert.Equal(t, 1, res.NewStreak)
	assert.False(t, res.FreezeConsumed)
	assert.True(t, res.Anomalous)
}

// TestComputeStreak_NeverBelowOne verifies no input produces a streak
// under one.
func TestComputeStreak_NeverBelowOne(t *testing.T) {
	for gap := -5; gap <= 10; gap++ {
		for tokens := 0; tokens <= 3; tokens++ {
			res := ComputeStreak(1, tokens, dayPtr(10), day(10+gap))
			assert.GreaterOrEqual(t, res.NewStreak, 1, "gap %d tokens %d", gap, tokens)
		}
	}
}
