package adaptive

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/example/speechcoach/pkg/models"
)

func categoryStats(category models.TechniqueCategory, sessions int, avgDelta float64) models.CategoryStats {
	return models.CategoryStats{
		Category:           category,
		SessionCount:       sessions,
		AvgConfidenceDelta: avgDelta,
	}
}

func fsStats(sessions int, avgDelta float64) models.CategoryStats {
	return categoryStats(models.CategoryFluencyShaping, sessions, avgDelta)
}

func modStats(sessions int, avgDelta float64) models.CategoryStats {
	return categoryStats(models.CategoryStutteringModification, sessions, avgDelta)
}

// TestRecommendedWeight_SparseData verifies the balanced default until
// both categories have enough sessions.
func TestRecommendedWeight_SparseData(t *testing.T) {
	assert.Equal(t, 0.5, RecommendedWeight(fsStats(0, 0), modStats(0, 0)))
	assert.Equal(t, 0.5, RecommendedWeight(fsStats(2, 5), modStats(10, -5)))
	assert.Equal(t, 0.5, RecommendedWeight(fsStats(10, 5), modStats(2, -5)))
}

// TestRecommendedWeight_Saturation verifies a clear advantage pins the
// weight to its bound.
func TestRecommendedWeight_Saturation(t *testing.T) {
	assert.Equal(t, 0.7, RecommendedWeight(fsStats(5, 2.0), modStats(5, 0.0)))
	assert.Equal(t, 0.3, RecommendedWeight(fsStats(5, 0.0), modStats(5, 2.0)))
}

// TestRecommendedWeight_LinearRamp verifies the smooth region between
// the saturation bounds.
func TestRecommendedWeight_LinearRamp(t *testing.T) {
	assert.InDelta(t, 0.55, RecommendedWeight(fsStats(5, 1.0), modStats(5, 0.25)), 0.001)
	assert.InDelta(t, 0.45, RecommendedWeight(fsStats(5, 0.25), modStats(5, 1.0)), 0.001)
}

// TestRecommendedWeight_EqualPerformance verifies symmetry around the
// balanced point.
func TestRecommendedWeight_EqualPerformance(t *testing.T) {
	assert.Equal(t, 0.5, RecommendedWeight(fsStats(8, 1.2), modStats(8, 1.2)))
}

// TestRecommendedWeight_Bounds verifies the output never leaves
// [MinWeight, MaxWeight] and that mirrored inputs sum to one.
func TestRecommendedWeight_Bounds(t *testing.T) {
	for diff := -5.0; diff <= 5.0; diff += 0.25 {
		fs := fsStats(5, diff)
		mod := modStats(5, 0)

		w := RecommendedWeight(fs, mod)
		assert.GreaterOrEqual(t, w, MinWeight, "diff %.2f", diff)
		assert.LessOrEqual(t, w, MaxWeight, "diff %.2f", diff)

		mirror := RecommendedWeight(mod, fs)
		assert.InDelta(t, 1.0, w+mirror, 1e-9, "diff %.2f", diff)
	}
}
