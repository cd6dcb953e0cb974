package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/alimgiray/gitaudit/internal/models"
	"github.com/alimgiray/gitaudit/internal/repositories"
	"github.com/xuri/excelize/v2"
)

const (
	evaluationSheet = "Evaluation"
	settingsSheet   = "Settings"
)

// ExportService writes audit results to CSV, XLSX and SQLite sinks
type ExportService struct {
	evaluationRepo *repositories.EvaluationRepository
}

// NewExportService creates an export service; evaluationRepo may be nil
// when no SQLite sink is configured.
func NewExportService(evaluationRepo *repositories.EvaluationRepository) *ExportService {
	return &ExportService{evaluationRepo: evaluationRepo}
}

// WriteCSV writes the header row followed by one row per author
func (s *ExportService) WriteCSV(w io.Writer, rows []models.EvaluationRow) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(models.EvaluationHeader()); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for i := range rows {
		if err := writer.Write(rows[i].Values()); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteXLSX writes a workbook with an Evaluation sheet mirroring the CSV
// layout and a Settings sheet describing thresholds and weights.
func (s *ExportService) WriteXLSX(w io.Writer, result *models.AuditResult) error {
	f, err := s.buildWorkbook(result)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (s *ExportService) buildWorkbook(result *models.AuditResult) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", evaluationSheet); err != nil {
		f.Close()
		return nil, err
	}

	header := models.EvaluationHeader()
	headerCells := make([]interface{}, len(header))
	for i, name := range header {
		headerCells[i] = name
	}
	if err := f.SetSheetRow(evaluationSheet, "A1", &headerCells); err != nil {
		f.Close()
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetRowStyle(evaluationSheet, 1, 1, bold); err != nil {
		f.Close()
		return nil, err
	}

	for i := range result.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		cells := result.Rows[i].Cells()
		if err := f.SetSheetRow(evaluationSheet, cell, &cells); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write row for %s: %w", result.Rows[i].AuthorEmail, err)
		}
	}

	if err := f.SetPanes(evaluationSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, err
	}

	if _, err := f.NewSheet(settingsSheet); err != nil {
		f.Close()
		return nil, err
	}
	for i, entry := range settingsEntries(result) {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		row := []interface{}{entry.key, entry.value}
		if err := f.SetSheetRow(settingsSheet, cell, &row); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}

type settingsEntry struct {
	key   string
	value interface{}
}

func settingsEntries(result *models.AuditResult) []settingsEntry {
	entries := []settingsEntry{
		{"run_id", result.RunID},
		{"repository", result.Repository},
		{"generated_at", result.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"threshold_mode", string(result.Thresholds.Mode)},
		{"commits_excellent", result.Thresholds.Commits.Excellent},
		{"commits_poor", result.Thresholds.Commits.Poor},
		{"merges_excellent", result.Thresholds.Merges.Excellent},
		{"merges_poor", result.Thresholds.Merges.Poor},
	}

	if settings := result.Settings; settings != nil {
		entries = append(entries,
			settingsEntry{"weight_productivity", settings.Dimensions.Productivity},
			settingsEntry{"weight_quality", settings.Dimensions.Quality},
			settingsEntry{"weight_collaboration", settings.Dimensions.Collaboration},
		)
		categories := make([]string, 0, len(settings.CategoryWeights))
		for c := range settings.CategoryWeights {
			categories = append(categories, string(c))
		}
		sort.Strings(categories)
		for _, c := range categories {
			entries = append(entries, settingsEntry{"category_weight_" + c, settings.CategoryWeights[models.Category(c)]})
		}
	}
	return entries
}

// SaveXLSX writes the workbook to path
func (s *ExportService) SaveXLSX(path string, result *models.AuditResult) error {
	f, err := s.buildWorkbook(result)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// SaveSQLite replaces the stored evaluation rows with result
func (s *ExportService) SaveSQLite(result *models.AuditResult) error {
	if s.evaluationRepo == nil {
		return errors.New("no sqlite sink configured")
	}
	if err := s.evaluationRepo.ReplaceAll(result); err != nil {
		return fmt.Errorf("failed to store evaluations: %w", err)
	}
	return nil
}
