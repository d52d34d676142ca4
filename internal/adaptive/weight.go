package adaptive

import "github.com/example/speechcoach/pkg/models"

const (
	// MinWeight and MaxWeight bound the recommendation so the program
	// never commits fully to one modality and keeps sampling both.
	MinWeight = 0.3
	MaxWeight = 0.7

	// minSessions is how many sessions each category needs before the
	// averages are trusted at all.
	minSessions = 3

	// saturationDelta is the confidence-delta gap at which the weight
	// pins to its bound.
	saturationDelta = 1.5

	// rampSlope converts a confidence-delta gap into a weight shift,
	// roughly 0.1 per 1.5 points of difference.
	rampSlope = 0.0667
)

// RecommendedWeight returns the proportion of upcoming practice to
// allocate to fluency shaping, with the remainder going to stuttering
// modification. It behaves as a smoothed, bounded proportional
// controller: balanced 0.5 until both categories have enough data, then
// a linear ramp on the confidence-delta difference, saturating at the
// bounds.
func RecommendedWeight(fs, mod models.CategoryStats) float64 {
	if fs.SessionCount < minSessions || mod.SessionCount < minSessions {
		return 0.5
	}

	diff := fs.AvgConfidenceDelta - mod.AvgConfidenceDelta
	switch {
	case diff > saturationDelta:
		return MaxWeight
	case diff < -saturationDelta:
		return MinWeight
	}

	w := 0.5 + diff*rampSlope
	if w > MaxWeight {
		return MaxWeight
	}
	if w < MinWeight {
		return MinWeight
	}
	return w
}
