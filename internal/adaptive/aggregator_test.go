package adaptive

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/example/speechcoach/pkg/models"
)

func f(v float64) *float64 { return &v }

func outcome(category models.TechniqueCategory, confidence, fluency *float64) models.TechniqueOutcome {
	return models.TechniqueOutcome{
		UserID:           1,
		Category:         category,
		ConfidenceDelta:  confidence,
		SelfRatedFluency: fluency,
	}
}

// TestAggregate_FiltersByCategory verifies only matching records are
// counted.
func TestAggregate_FiltersByCategory(t *testing.T) {
	outcomes := []models.TechniqueOutcome{
		outcome(models.CategoryFluencyShaping, f(2), f(7)),
		outcome(models.CategoryStutteringModification, f(4), f(5)),
		outcome(models.CategoryFluencyShaping, f(4), f(9)),
	}

	stats := Aggregate(outcomes, models.CategoryFluencyShaping)
	assert.Equal(t, models.CategoryFluencyShaping, stats.Category)
	assert.Equal(t, 2, stats.SessionCount)
	assert.InDelta(t, 3.0, stats.AvgConfidenceDelta, 1e-9)
	assert.InDelta(t, 8.0, stats.AvgFluencyRating, 1e-9)
}

// TestAggregate_SkipsMissingFields verifies a record missing one rating
// still counts toward the session total and the other average.
func TestAggregate_SkipsMissingFields(t *testing.T) {
	outcomes := []models.TechniqueOutcome{
		outcome(models.CategoryFluencyShaping, f(2), nil),
		outcome(models.CategoryFluencyShaping, nil, f(6)),
		outcome(models.CategoryFluencyShaping, f(4), f(8)),
	}

	stats := Aggregate(outcomes, models.CategoryFluencyShaping)
	assert.Equal(t, 3, stats.SessionCount)
	assert.InDelta(t, 3.0, stats.AvgConfidenceDelta, 1e-9)
	assert.InDelta(t, 7.0, stats.AvgFluencyRating, 1e-9)
}

// TestAggregate_EmptyWindow verifies no matches yields zero statistics,
// not an error.
func TestAggregate_EmptyWindow(t *testing.T) {
	stats := Aggregate(nil, models.CategoryStutteringModification)
	assert.Equal(t, 0, stats.SessionCount)
	assert.Zero(t, stats.AvgConfidenceDelta)
	assert.Zero(t, stats.AvgFluencyRating)

	onlyOther := []models.TechniqueOutcome{
		outcome(models.CategoryFluencyShaping, f(1), f(5)),
	}
	stats = Aggregate(onlyOther, models.CategoryStutteringModification)
	assert.Equal(t, 0, stats.SessionCount)
}

// TestAggregate_AllFieldsMissing verifies session count is independent of
// the rating fields.
func TestAggregate_AllFieldsMissing(t *testing.T) {
	outcomes := []models.TechniqueOutcome{
		outcome(models.CategoryFluencyShaping, nil, nil),
		outcome(models.CategoryFluencyShaping, nil, nil),
	}

	stats := Aggregate(outcomes, models.CategoryFluencyShaping)
	assert.Equal(t, 2, stats.SessionCount)
	assert.Zero(t, stats.AvgConfidenceDelta)
	assert.Zero(t, stats.AvgFluencyRating)
}
