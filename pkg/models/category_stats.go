package models

// CategoryStats summarizes recent technique outcomes for one category.
// Computed fresh from the outcome log on demand, never persisted.
type CategoryStats struct {
	Category           TechniqueCategory `json:"category"`
	SessionCount       int               `json:"session_count"`
	AvgConfidenceDelta float64           `json:"avg_confidence_delta"`
	AvgFluencyRating   float64           `json:"avg_fluency_rating"`
}
