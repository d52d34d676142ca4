package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/example/speechcoach/internal/adaptive"
	"github.com/example/speechcoach/internal/progression"
	"github.com/example/speechcoach/pkg/models"
)

// ExportConfig defines the export configuration
type ExportConfig struct {
	FilePath      string // Path to the Excel or CSV file to write
	SummarySheet  string // Name of the progression summary sheet
	OutcomesSheet string // Name of the technique outcomes sheet
	OutcomeLimit  int    // How many recent outcomes to include
}

// DefaultExportConfig returns the default export configuration
func DefaultExportConfig(filePath string) ExportConfig {
	return ExportConfig{
		FilePath:      filePath,
		SummarySheet:  "Progress",
		OutcomesSheet: "Outcomes",
		OutcomeLimit:  adaptive.OutcomeWindow,
	}
}

// ExportResult holds the result of an export operation
type ExportResult struct {
	OutcomesWritten int
}

// Exporter writes per-user progress reports
type Exporter struct {
	service  *progression.Service
	outcomes progression.OutcomeStore
}

// NewExporter creates a new exporter instance
func NewExporter(service *progression.Service, outcomes progression.OutcomeStore) *Exporter {
	return &Exporter{service: service, outcomes: outcomes}
}

// ExportProgressReport writes a user's progression summary and recent
// technique outcomes to an Excel or CSV file, chosen by file extension.
func (e *Exporter) ExportProgressReport(ctx context.Context, userID int64, config ExportConfig) (*ExportResult, error) {
	stats, level, err := e.service.GetStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	outcomes, err := e.outcomes.Latest(ctx, userID, nil, config.OutcomeLimit)
	if err != nil {
		return nil, err
	}

	weight, err := e.service.RecommendedTechniqueWeight(ctx, userID)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return exportToCSV(config, stats, level, weight, outcomes)
	}
	return exportToExcel(config, stats, level, weight, outcomes)
}

// summaryRows flattens the progression summary into label/value pairs.
func summaryRows(stats *models.UserStats, level models.LevelInfo, weight float64) [][]string {
	lastPractice := ""
	if stats.LastPracticeDate != nil {
		lastPractice = stats.LastPracticeDate.Format("2006-01-02")
	}

	return [][]string{
		{"User ID", strconv.FormatInt(stats.UserID, 10)},
		{"Current streak", strconv.Itoa(stats.CurrentStreak)},
		{"Longest streak", strconv.Itoa(stats.LongestStreak)},
		{"Freeze tokens", strconv.Itoa(stats.StreakFreezeTokens)},
		{"Last practice", lastPractice},
		{"Total XP", strconv.Itoa(stats.TotalXP)},
		{"Level", fmt.Sprintf("%d (%s)", level.Level, level.Title)},
		{"Level progress", strconv.Itoa(level.ProgressPercent) + "%"},
		{"Total practice time", (time.Duration(stats.TotalPracticeSeconds) * time.Second).String()},
		{"Exercises completed", strconv.Itoa(stats.TotalExercisesCompleted)},
		{"Fluency shaping weight", strconv.FormatFloat(weight, 'f', 2, 64)},
	}
}

// outcomeRow flattens one outcome log entry.
func outcomeRow(o models.TechniqueOutcome) []string {
	confidence := ""
	if o.ConfidenceDelta != nil {
		confidence = strconv.FormatFloat(*o.ConfidenceDelta, 'f', 1, 64)
	}
	fluency := ""
	if o.SelfRatedFluency != nil {
		fluency = strconv.FormatFloat(*o.SelfRatedFluency, 'f', 1, 64)
	}
	return []string{
		o.CreatedAt.Format("2006-01-02 15:04"),
		string(o.Category),
		confidence,
		fluency,
	}
}

var outcomeHeader = []string{"Date", "Category", "Confidence delta", "Self-rated fluency"}

// exportToExcel writes the report as an xlsx workbook with one summary
// sheet and one outcomes sheet.
func exportToExcel(config ExportConfig, stats *models.UserStats, level models.LevelInfo, weight float64, outcomes []models.TechniqueOutcome) (*ExportResult, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", config.SummarySheet)
	for i, row := range summaryRows(stats, level, weight) {
		cell := "A" + strconv.Itoa(i+1)
		if err := f.SetSheetRow(config.SummarySheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write summary row: %v", err)
		}
	}

	f.NewSheet(config.OutcomesSheet)
	if err := f.SetSheetRow(config.OutcomesSheet, "A1", &outcomeHeader); err != nil {
		return nil, fmt.Errorf("failed to write outcomes header: %v", err)
	}

	result := &ExportResult{}
	for i, outcome := range outcomes {
		row := outcomeRow(outcome)
		cell := "A" + strconv.Itoa(i+2)
		if err := f.SetSheetRow(config.OutcomesSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write outcome row: %v", err)
		}
		result.OutcomesWritten++
	}

	if err := f.SaveAs(config.FilePath); err != nil {
		return nil, fmt.Errorf("failed to save Excel file: %v", err)
	}
	return result, nil
}

// exportToCSV writes the report as a single CSV: summary pairs first,
// then a blank line and the outcome rows.
func exportToCSV(config ExportConfig, stats *models.UserStats, level models.LevelInfo, weight float64, outcomes []models.TechniqueOutcome) (*ExportResult, error) {
	file, err := os.Create(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	for _, row := range summaryRows(stats, level, weight) {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write summary row: %v", err)
		}
	}
	if err := writer.Write([]string{}); err != nil {
		return nil, fmt.Errorf("failed to write separator: %v", err)
	}
	if err := writer.Write(outcomeHeader); err != nil {
		return nil, fmt.Errorf("failed to write outcomes header: %v", err)
	}

	result := &ExportResult{}
	for _, outcome := range outcomes {
		if err := writer.Write(outcomeRow(outcome)); err != nil {
			return nil, fmt.Errorf("failed to write outcome row: %v", err)
		}
		result.OutcomesWritten++
	}
	return result, nil
}
