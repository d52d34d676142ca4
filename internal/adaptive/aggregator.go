// Package adaptive derives technique-selection guidance from the
// append-only outcome log: it reduces the recent outcome window into
// per-category statistics and turns those into a bounded recommendation
// weight.
package adaptive

import "github.com/example/speechcoach/pkg/models"

// OutcomeWindow is how many of the most recent outcomes are considered
// when aggregating category statistics.
const OutcomeWindow = 30

// Aggregate reduces a window of outcome records into statistics for one
// category. Records missing a rating still count toward the session total
// and toward the other average; an empty window yields zero statistics,
// which is not an error.
func Aggregate(outcomes []models.TechniqueOutcome, category models.TechniqueCategory) models.CategoryStats {
	stats := models.CategoryStats{Category: category}

	var confidenceSum float64
	var confidenceN int
	var fluencySum float64
	var fluencyN int

	for _, o := range outcomes {
		if o.Category != category {
			continue
		}
		stats.SessionCount++
		if o.ConfidenceDelta != nil {
			confidenceSum += *o.ConfidenceDelta
			confidenceN++
		}
		if o.SelfRatedFluency != nil {
			fluencySum += *o.SelfRatedFluency
			fluencyN++
		}
	}

	if confidenceN > 0 {
		stats.AvgConfidenceDelta = confidenceSum / float64(confidenceN)
	}
	if fluencyN > 0 {
		stats.AvgFluencyRating = fluencySum / float64(fluencyN)
	}
	return stats
}
