package models

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// ThresholdMode selects how absolute commit/merge thresholds are obtained
type ThresholdMode string

const (
	ThresholdModeDynamic ThresholdMode = "dynamic"
	ThresholdModeFixed   ThresholdMode = "fixed"
)

const weightTolerance = 1e-6

// Threshold is a pair of bounds for a linear mapping. For inverted metrics
// Excellent is below Poor.
type Threshold struct {
	Excellent float64 `json:"excellent" yaml:"excellent"`
	Poor      float64 `json:"poor" yaml:"poor"`
}

// Band describes a two-sided optimum: full marks inside
// [ExcellentMin, ExcellentMax], decaying to zero at PoorMin and PoorMax.
type Band struct {
	ExcellentMin float64 `json:"excellent_min" yaml:"excellent_min"`
	ExcellentMax float64 `json:"excellent_max" yaml:"excellent_max"`
	PoorMin      float64 `json:"poor_min" yaml:"poor_min"`
	PoorMax      float64 `json:"poor_max" yaml:"poor_max"`
}

type ProductivitySettings struct {
	CommitsWeight    float64   `json:"commits_weight" yaml:"commits_weight"`
	LinesWeight      float64   `json:"lines_weight" yaml:"lines_weight"`
	FilesWeight      float64   `json:"files_weight" yaml:"files_weight"`
	ActiveDaysWeight float64   `json:"active_days_weight" yaml:"active_days_weight"`
	Lines            Threshold `json:"lines" yaml:"lines"`
	Files            Threshold `json:"files" yaml:"files"`
	ActiveDays       Threshold `json:"active_days" yaml:"active_days"`
}

type QualitySettings struct {
	ChurnWeight          float64   `json:"churn_weight" yaml:"churn_weight"`
	CommitSizeWeight     float64   `json:"commit_size_weight" yaml:"commit_size_weight"`
	FilesPerCommitWeight float64   `json:"files_per_commit_weight" yaml:"files_per_commit_weight"`
	MergeRatioWeight     float64   `json:"merge_ratio_weight" yaml:"merge_ratio_weight"`
	BugfixRatioWeight    float64   `json:"bugfix_ratio_weight" yaml:"bugfix_ratio_weight"`
	Churn                Threshold `json:"churn" yaml:"churn"`
	CommitSize           Band      `json:"commit_size" yaml:"commit_size"`
	FilesPerCommit       Band      `json:"files_per_commit" yaml:"files_per_commit"`
	MergeRatio           Threshold `json:"merge_ratio" yaml:"merge_ratio"`
	BugfixRatio          Band      `json:"bugfix_ratio" yaml:"bugfix_ratio"`
}

type CollaborationSettings struct {
	MergeWeight       float64   `json:"merge_weight" yaml:"merge_weight"`
	SharedFilesWeight float64   `json:"shared_files_weight" yaml:"shared_files_weight"`
	ReviewWeight      float64   `json:"review_weight" yaml:"review_weight"`
	SpanWeight        float64   `json:"span_weight" yaml:"span_weight"`
	SharedFiles       Threshold `json:"shared_files" yaml:"shared_files"`
	Review            Threshold `json:"review" yaml:"review"`
	Span              Threshold `json:"span" yaml:"span"`
}

// CalibrationSettings drives the percentile-derived commit and merge
// thresholds and holds the fixed table used when calibration is off or the
// population is empty.
type CalibrationSettings struct {
	PoorPercentile      float64   `json:"poor_percentile" yaml:"poor_percentile"`
	ExcellentPercentile float64   `json:"excellent_percentile" yaml:"excellent_percentile"`
	CommitFloor         Threshold `json:"commit_floor" yaml:"commit_floor"`
	MergeFloor          Threshold `json:"merge_floor" yaml:"merge_floor"`
	FixedCommits        Threshold `json:"fixed_commits" yaml:"fixed_commits"`
	FixedMerges         Threshold `json:"fixed_merges" yaml:"fixed_merges"`
}

type DimensionWeights struct {
	Productivity  float64 `json:"productivity" yaml:"productivity"`
	Quality       float64 `json:"quality" yaml:"quality"`
	Collaboration float64 `json:"collaboration" yaml:"collaboration"`
}

// ScoreSettings is the immutable scoring configuration of one run
type ScoreSettings struct {
	ID              string                `json:"id" yaml:"-"`
	ThresholdMode   ThresholdMode         `json:"threshold_mode" yaml:"threshold_mode"`
	CategoryWeights map[Category]float64  `json:"category_weights" yaml:"category_weights"`
	Productivity    ProductivitySettings  `json:"productivity" yaml:"productivity"`
	Quality         QualitySettings       `json:"quality" yaml:"quality"`
	Collaboration   CollaborationSettings `json:"collaboration" yaml:"collaboration"`
	Calibration     CalibrationSettings   `json:"calibration" yaml:"calibration"`
	Dimensions      DimensionWeights      `json:"dimension_weights" yaml:"dimension_weights"`
	CreatedAt       time.Time             `json:"created_at" yaml:"-"`
}

// NewScoreSettings returns the canonical scoring configuration
func NewScoreSettings() *ScoreSettings {
	return &ScoreSettings{
		ID:              uuid.New().String(),
		ThresholdMode:   ThresholdModeDynamic,
		CategoryWeights: DefaultCategoryWeights(),
		Productivity: ProductivitySettings{
			CommitsWeight:    0.40,
			LinesWeight:      0.30,
			FilesWeight:      0.20,
			ActiveDaysWeight: 0.10,
			Lines:            Threshold{Excellent: 10000, Poor: 500},
			Files:            Threshold{Excellent: 100, Poor: 10},
			ActiveDays:       Threshold{Excellent: 30, Poor: 3},
		},
		Quality: QualitySettings{
			ChurnWeight:          0.30,
			CommitSizeWeight:     0.20,
			FilesPerCommitWeight: 0.20,
			MergeRatioWeight:     0.15,
			BugfixRatioWeight:    0.15,
			Churn:                Threshold{Excellent: 0.2, Poor: 1.5},
			CommitSize:           Band{ExcellentMin: 50, ExcellentMax: 500, PoorMin: 5, PoorMax: 2000},
			FilesPerCommit:       Band{ExcellentMin: 1, ExcellentMax: 3, PoorMin: 0, PoorMax: 15},
			MergeRatio:           Threshold{Excellent: 0.1, Poor: 0.4},
			BugfixRatio:          Band{ExcellentMin: 0.15, ExcellentMax: 0.35, PoorMin: 0, PoorMax: 0.7},
		},
		Collaboration: CollaborationSettings{
			MergeWeight:       0.30,
			SharedFilesWeight: 0.30,
			ReviewWeight:      0.20,
			SpanWeight:        0.20,
			SharedFiles:       Threshold{Excellent: 50, Poor: 10},
			Review:            Threshold{Excellent: 10, Poor: 0},
			Span:              Threshold{Excellent: 60, Poor: 7},
		},
		Calibration: CalibrationSettings{
			PoorPercentile:      25,
			ExcellentPercentile: 90,
			CommitFloor:         Threshold{Excellent: 10, Poor: 1},
			MergeFloor:          Threshold{Excellent: 2, Poor: 0},
			FixedCommits:        Threshold{Excellent: 50, Poor: 5},
			FixedMerges:         Threshold{Excellent: 5, Poor: 0},
		},
		Dimensions: DimensionWeights{
			Productivity:  0.333,
			Quality:       0.333,
			Collaboration: 0.334,
		},
		CreatedAt: time.Now(),
	}
}

// CategoryWeight returns the productivity weight of a category, 0 if unset.
// Other always weighs 0.
func (s *ScoreSettings) CategoryWeight(c Category) float64 {
	if c == CategoryOther {
		return 0
	}
	return s.CategoryWeights[c]
}

// Validate checks weights and threshold orientation
func (s *ScoreSettings) Validate() error {
	switch s.ThresholdMode {
	case ThresholdModeDynamic, ThresholdModeFixed:
	default:
		return &ValidationError{Field: "threshold_mode", Message: fmt.Sprintf("unknown mode %q", s.ThresholdMode)}
	}

	for c, w := range s.CategoryWeights {
		if !c.IsValid() {
			return &ValidationError{Field: "category_weights", Message: fmt.Sprintf("unknown category %q", c)}
		}
		if w < 0 || w > 1 {
			return &ValidationError{Field: "category_weights." + string(c), Message: "weight must be within [0, 1]"}
		}
		if c == CategoryOther && w != 0 {
			return &ValidationError{Field: "category_weights.other", Message: "unclassified files must weigh 0"}
		}
	}

	p, q, c := s.Productivity, s.Quality, s.Collaboration
	sums := []struct {
		field   string
		weights []float64
	}{
		{"dimension_weights", []float64{s.Dimensions.Productivity, s.Dimensions.Quality, s.Dimensions.Collaboration}},
		{"productivity", []float64{p.CommitsWeight, p.LinesWeight, p.FilesWeight, p.ActiveDaysWeight}},
		{"quality", []float64{q.ChurnWeight, q.CommitSizeWeight, q.FilesPerCommitWeight, q.MergeRatioWeight, q.BugfixRatioWeight}},
		{"collaboration", []float64{c.MergeWeight, c.SharedFilesWeight, c.ReviewWeight, c.SpanWeight}},
	}
	for _, sum := range sums {
		if err := validateWeights(sum.field, sum.weights); err != nil {
			return err
		}
	}

	thresholds := []struct {
		field    string
		t        Threshold
		inverted bool
	}{
		{"productivity.lines", p.Lines, false},
		{"productivity.files", p.Files, false},
		{"productivity.active_days", p.ActiveDays, false},
		{"quality.churn", q.Churn, true},
		{"quality.merge_ratio", q.MergeRatio, true},
		{"collaboration.shared_files", c.SharedFiles, false},
		{"collaboration.review", c.Review, false},
		{"collaboration.span", c.Span, false},
		{"calibration.fixed_commits", s.Calibration.FixedCommits, false},
		{"calibration.fixed_merges", s.Calibration.FixedMerges, false},
	}
	for _, th := range thresholds {
		if th.inverted && th.t.Excellent >= th.t.Poor {
			return &ValidationError{Field: th.field, Message: "excellent must be below poor for a lower-is-better metric"}
		}
		if !th.inverted && th.t.Excellent <= th.t.Poor {
			return &ValidationError{Field: th.field, Message: "excellent must be above poor"}
		}
	}

	bands := []struct {
		field string
		b     Band
	}{
		{"quality.commit_size", q.CommitSize},
		{"quality.files_per_commit", q.FilesPerCommit},
		{"quality.bugfix_ratio", q.BugfixRatio},
	}
	for _, band := range bands {
		b := band.b
		if b.PoorMin > b.ExcellentMin || b.ExcellentMin > b.ExcellentMax || b.ExcellentMax > b.PoorMax {
			return &ValidationError{Field: band.field, Message: "band bounds must satisfy poor_min <= excellent_min <= excellent_max <= poor_max"}
		}
	}

	cal := s.Calibration
	if cal.PoorPercentile <= 0 || cal.ExcellentPercentile > 100 || cal.PoorPercentile >= cal.ExcellentPercentile {
		return &ValidationError{Field: "calibration", Message: "percentiles must satisfy 0 < poor < excellent <= 100"}
	}
	if cal.CommitFloor.Poor < 0 || cal.MergeFloor.Poor < 0 {
		return &ValidationError{Field: "calibration", Message: "floors must be non-negative"}
	}

	return nil
}

func validateWeights(field string, weights []float64) error {
	total := 0.0
	for _, w := range weights {
		if w < 0 {
			return &ValidationError{Field: field, Message: "weights must be non-negative"}
		}
		total += w
	}
	if math.Abs(total-1.0) > weightTolerance {
		return &ValidationError{Field: field, Message: fmt.Sprintf("weights sum to %.6f, expected 1.0", total)}
	}
	return nil
}
