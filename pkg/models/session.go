package models

import "time"

// SessionEvent is a completed practice session as reported by the caller.
// The XP amount is computed by out-of-scope business rules (for example
// from minutes practiced) before it reaches the progression service.
type SessionEvent struct {
	PracticedAt        time.Time       `json:"practiced_at"`
	XPAmount           int             `json:"xp_amount"`
	DurationSeconds    int             `json:"duration_seconds"`
	ExercisesCompleted int             `json:"exercises_completed"`
	Outcome            *SessionOutcome `json:"outcome"`
}

// SessionOutcome is the optional technique result attached to a session.
type SessionOutcome struct {
	Category         TechniqueCategory `json:"category"`
	ConfidenceDelta  *float64          `json:"confidence_delta"`
	SelfRatedFluency *float64          `json:"self_rated_fluency"`
}

// SessionResult is what a completed session did to the user's progression.
type SessionResult struct {
	NewStreak      int       `json:"new_streak"`
	LongestStreak  int       `json:"longest_streak"`
	FreezeConsumed bool      `json:"freeze_consumed"`
	TotalXP        int       `json:"total_xp"`
	Level          LevelInfo `json:"level"`
	LeveledUp      bool      `json:"leveled_up"`
}
