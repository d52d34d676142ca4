package models

import "time"

// UserStats tracks a user's practice continuity and accumulated effort.
// There is exactly one row per user; it is created lazily on first access
// and only ever mutated through the progression service.
type UserStats struct {
	UserID                  int64      `json:"user_id" db:"user_id"`
	CurrentStreak           int        `json:"current_streak" db:"current_streak"`
	LongestStreak           int        `json:"longest_streak" db:"longest_streak"`
	StreakFreezeTokens      int        `json:"streak_freeze_tokens" db:"streak_freeze_tokens"`
	LastPracticeDate        *time.Time `json:"last_practice_date" db:"last_practice_date"`
	TotalXP                 int        `json:"total_xp" db:"total_xp"`
	TotalPracticeSeconds    int        `json:"total_practice_seconds" db:"total_practice_seconds"`
	TotalExercisesCompleted int        `json:"total_exercises_completed" db:"total_exercises_completed"`
	Version                 int64      `json:"-" db:"version"` // optimistic concurrency guard
	CreatedAt               time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at" db:"updated_at"`
}
