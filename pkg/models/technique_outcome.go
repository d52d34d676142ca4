package models

import "time"

// TechniqueCategory identifies one of the two coaching modalities
// between which practice emphasis is adaptively balanced.
type TechniqueCategory string

const (
	// CategoryFluencyShaping covers fluency shaping techniques
	CategoryFluencyShaping TechniqueCategory = "fluency_shaping"
	// CategoryStutteringModification covers stuttering modification techniques
	CategoryStutteringModification TechniqueCategory = "stuttering_modification"
)

// Valid reports whether the category is one of the known modalities
func (c TechniqueCategory) Valid() bool {
	return c == CategoryFluencyShaping || c == CategoryStutteringModification
}

// TechniqueOutcome is one append-only log entry recorded when a practice
// session completes with a technique attached. Entries are never updated
// or deleted; only the most recent window is ever read.
type TechniqueOutcome struct {
	ID               string            `json:"id" db:"id"`
	UserID           int64             `json:"user_id" db:"user_id"`
	Category         TechniqueCategory `json:"category" db:"category"`
	ConfidenceDelta  *float64          `json:"confidence_delta" db:"confidence_delta"`     // confidence after minus before
	SelfRatedFluency *float64          `json:"self_rated_fluency" db:"self_rated_fluency"` // 1-10 scale
	CreatedAt        time.Time         `json:"created_at" db:"created_at"`
}
