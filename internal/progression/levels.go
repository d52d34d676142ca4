package progression

import (
	"math"

	"github.com/example/speechcoach/pkg/models"
)

// MaxLevel is the top of the progression curve.
const MaxLevel = 13

// levelTitles is the fixed ordered list of level names, one per level.
// Indices beyond the list reuse the final title.
var levelTitles = []string{
	"First Words",
	"Warming Up",
	"Finding Rhythm",
	"Steady Voice",
	"Gaining Ground",
	"Confident Speaker",
	"Flow Builder",
	"Smooth Operator",
	"Technique Pro",
	"Fluency Veteran",
	"Voice Leader",
	"Speech Mentor",
	"Master of Flow",
}

// xpThreshold returns the cumulative XP required to reach level n.
func xpThreshold(n int) int {
	if n <= 1 {
		return 0
	}
	return int(math.Round(50 * math.Pow(float64(n-1), 1.8)))
}

// titleForLevel looks up the display title for a level.
func titleForLevel(level int) string {
	if level < 1 {
		level = 1
	}
	if level > len(levelTitles) {
		return levelTitles[len(levelTitles)-1]
	}
	return levelTitles[level-1]
}

// LevelForXP maps cumulative experience points to a level, title and
// progress within the level. It is recomputed from total XP on every read
// so the curve constants can change without a data migration.
func LevelForXP(totalXP int) models.LevelInfo {
	if totalXP < 0 {
		totalXP = 0
	}

	level := 1
	for n := 2; n <= MaxLevel; n++ {
		if xpThreshold(n) <= totalXP {
			level = n
		}
	}

	current := xpThreshold(level)
	if level == MaxLevel {
		return models.LevelInfo{
			Level:           level,
			Title:           titleForLevel(level),
			XPForCurrent:    current,
			XPForNext:       current,
			ProgressPercent: 100,
		}
	}

	next := xpThreshold(level + 1)
	progress := int(math.Round(100 * float64(totalXP-current) / float64(next-current)))
	return models.LevelInfo{
		Level:           level,
		Title:           titleForLevel(level),
		XPForCurrent:    current,
		XPForNext:       next,
		ProgressPercent: progress,
	}
}
