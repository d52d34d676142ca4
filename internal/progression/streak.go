package progression

import (
	"math"
	"time"
)

// StreakResult is the outcome of folding one practice session into the
// user's streak state.
type StreakResult struct {
	NewStreak      int
	FreezeConsumed bool
	// Anomalous is set when the practice date precedes the recorded last
	// practice date (historical replay or clock skew). The streak is
	// reset rather than rejected, but callers should log it.
	Anomalous bool
}

// startOfDay normalizes a timestamp to midnight in its own location.
// Streak math compares calendar days, not elapsed time, so a session at
// 23:50 followed by one at 00:10 still counts as consecutive days.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// daysBetween returns the whole calendar days from a to b, negative when
// b is earlier. Rounding absorbs DST-shortened or -lengthened days.
func daysBetween(a, b time.Time) int {
	return int(math.Round(startOfDay(b).Sub(startOfDay(a)).Hours() / 24))
}

// ComputeStreak folds one practice session into the prior streak state.
//
// Rules, in priority order:
//  1. first-ever practice starts a streak of 1
//  2. another session on the same day leaves the streak unchanged
//  3. a one-day gap extends the streak
//  4. exactly a two-day gap with a freeze token available extends the
//     streak and consumes one token
//  5. anything else resets the streak to 1
//
// A freeze token forgives exactly one missed day. A gap of three or more
// days always resets, no matter how many tokens the user holds; this is
// deliberate product behavior, not an oversight.
func ComputeStreak(priorStreak, priorFreezeTokens int, lastPractice *time.Time, practicedAt time.Time) StreakResult {
	if lastPractice == nil {
		return StreakResult{NewStreak: 1}
	}

	days := daysBetween(*lastPractice, practicedAt)
	switch {
	case days < 0:
		// Practice date earlier than the last recorded one. Treat like a
		// broken streak so replays never crash the pipeline.
		return StreakResult{NewStreak: 1, Anomalous: true}
	case days == 0:
		return StreakResult{NewStreak: priorStreak}
	case days == 1:
		return StreakResult{NewStreak: priorStreak + 1}
	case days == 2 && priorFreezeTokens > 0:
		return StreakResult{NewStreak: priorStreak + 1, FreezeConsumed: true}
	default:
		return StreakResult{NewStreak: 1}
	}
}
