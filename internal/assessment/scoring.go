// Package assessment converts onboarding questionnaire answers into a
// severity score, a confidence score, a behavioral profile and a
// recommended emphasis split across the three coaching modalities.
// Scoring is pure: no I/O, identical input always yields identical output.
package assessment

import (
	"math"

	"github.com/example/speechcoach/pkg/models"
)

// severityBase maps self-reported severity to the scoring baseline.
var severityBase = map[string]int{
	"mild":     25,
	"moderate": 50,
	"severe":   75,
}

// frequencyAdjustment tunes severity by how often blocks occur.
var frequencyAdjustment = map[string]int{
	"rarely":    10,
	"sometimes": 5,
	"often":     -3,
	"daily":     -5,
}

// emphasisByProfile is the fixed lookup of recommended coaching emphasis
// per profile. The weights are hand-tuned, not derived arithmetically.
var emphasisByProfile = map[models.BehavioralProfile]models.EmphasisWeights{
	models.ProfileAvoidanceHeavy: {FluencyShaping: 0.35, StutteringModification: 0.30, CBT: 0.35},
	models.ProfileAnxietyHeavy:   {FluencyShaping: 0.30, StutteringModification: 0.25, CBT: 0.45},
	models.ProfileTechniqueReady: {FluencyShaping: 0.45, StutteringModification: 0.40, CBT: 0.15},
	models.ProfileBalanced:       {FluencyShaping: 0.40, StutteringModification: 0.35, CBT: 0.25},
}

// clampScore keeps a score inside the 1-100 band.
func clampScore(v int) int {
	if v < 1 {
		return 1
	}
	if v > 100 {
		return 100
	}
	return v
}

// distinctCount counts unique non-empty entries.
func distinctCount(items []string) int {
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if it == "" {
			continue
		}
		seen[it] = struct{}{}
	}
	return len(seen)
}

// severityScore derives the 1-100 severity estimate from the answers.
func severityScore(input models.AssessmentInput) int {
	score, ok := severityBase[input.SelfReportedSeverity]
	if !ok {
		score = 50
	}

	score += 4 * distinctCount(input.StutteringTypes)
	score += 3 * len(input.AvoidanceBehaviors)
	score += frequencyAdjustment[input.BlockFrequency]

	if len(input.FearedSituations) > 5 {
		score += 5
	} else if len(input.FearedSituations) > 3 {
		score += 2
	}

	return clampScore(score)
}

// confidenceScore averages the per-situation 1-5 ratings, rescales the
// average to 0-100 and penalizes each avoidance behavior.
func confidenceScore(input models.AssessmentInput) int {
	score := 50.0
	if len(input.ConfidenceRatings) > 0 {
		sum := 0
		for _, rating := range input.ConfidenceRatings {
			sum += rating
		}
		avg := float64(sum) / float64(len(input.ConfidenceRatings))
		score = (avg - 1) / 4 * 100
	}

	score -= 4 * float64(len(input.AvoidanceBehaviors))
	return clampScore(int(math.Round(score)))
}

// classifyProfile maps the scored answers onto one of the four coaching
// postures. The checks are ordered; the first match wins and the fallback
// makes the classification total.
func classifyProfile(input models.AssessmentInput, severity, confidence int) models.BehavioralProfile {
	switch {
	case len(input.AvoidanceBehaviors) >= 3 && confidence < 40:
		return models.ProfileAvoidanceHeavy
	case confidence < 30:
		return models.ProfileAnxietyHeavy
	case confidence > 55 && severity < 60:
		return models.ProfileTechniqueReady
	default:
		return models.ProfileBalanced
	}
}

// Score turns onboarding questionnaire answers into the persisted
// assessment result. Missing answers fall back to documented defaults
// rather than failing.
func Score(input models.AssessmentInput) models.AssessmentResult {
	severity := severityScore(input)
	confidence := confidenceScore(input)
	profile := classifyProfile(input, severity, confidence)

	return models.AssessmentResult{
		SeverityScore:       severity,
		ConfidenceScore:     confidence,
		Profile:             profile,
		RecommendedEmphasis: emphasisByProfile[profile],
	}
}
