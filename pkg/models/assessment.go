package models

// BehavioralProfile classifies a user's onboarding answers into one of
// four coaching postures
type BehavioralProfile string

const (
	ProfileAvoidanceHeavy BehavioralProfile = "avoidance-heavy"
	ProfileAnxietyHeavy   BehavioralProfile = "anxiety-heavy"
	ProfileTechniqueReady BehavioralProfile = "technique-ready"
	ProfileBalanced       BehavioralProfile = "balanced"
)

// AssessmentInput carries the onboarding questionnaire answers.
// All fields are optional; missing answers fall back to documented defaults.
type AssessmentInput struct {
	SelfReportedSeverity string         `json:"self_reported_severity"` // "mild", "moderate" or "severe"
	StutteringTypes      []string       `json:"stuttering_types"`
	AvoidanceBehaviors   []string       `json:"avoidance_behaviors"`
	BlockFrequency       string         `json:"block_frequency"` // "rarely", "sometimes", "often" or "daily"
	FearedSituations     []string       `json:"feared_situations"`
	ConfidenceRatings    map[string]int `json:"confidence_ratings"` // situation -> 1-5 rating
}

// EmphasisWeights is the recommended split of coaching time across the
// three modalities. The weights typically sum near 1.0 but are not
// required to.
type EmphasisWeights struct {
	FluencyShaping         float64 `json:"fluency_shaping"`
	StutteringModification float64 `json:"stuttering_modification"`
	CBT                    float64 `json:"cbt"`
}

// AssessmentResult is the scored onboarding profile, persisted alongside
// the user's onboarding record.
type AssessmentResult struct {
	SeverityScore       int               `json:"severity_score"`   // 1-100
	ConfidenceScore     int               `json:"confidence_score"` // 1-100
	Profile             BehavioralProfile `json:"profile"`
	RecommendedEmphasis EmphasisWeights   `json:"recommended_emphasis"`
}
