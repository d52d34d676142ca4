package models

// LevelInfo describes where a user sits on the progression curve.
// Always derived from total XP on read; never stored.
type LevelInfo struct {
	Level           int    `json:"level"`
	Title           string `json:"title"`
	XPForCurrent    int    `json:"xp_for_current"`   // threshold of the current level
	XPForNext       int    `json:"xp_for_next"`      // threshold of the next level
	ProgressPercent int    `json:"progress_percent"` // 0-100 within the current level
}
