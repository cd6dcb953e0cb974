package services

import (
	"math"
	"sort"

	"github.com/alimgiray/gitaudit/internal/models"
)

// ThresholdCalibrator derives commit and merge thresholds from the team
type ThresholdCalibrator struct {
	settings models.CalibrationSettings
	mode     models.ThresholdMode
}

func NewThresholdCalibrator(settings *models.ScoreSettings) *ThresholdCalibrator {
	return &ThresholdCalibrator{
		settings: settings.Calibration,
		mode:     settings.ThresholdMode,
	}
}

// Calibrate returns the thresholds for a closed ledger. In fixed mode, and
// for any empty population, the fixed table is used.
func (c *ThresholdCalibrator) Calibrate(snapshot *models.LedgerSnapshot) models.Thresholds {
	fixed := models.FixedThresholds(c.settings)
	if c.mode == models.ThresholdModeFixed {
		return fixed
	}

	var commits, merges []float64
	for _, author := range snapshot.Authors {
		if author.CommitsNonMerge > 0 {
			commits = append(commits, float64(author.CommitsNonMerge))
		}
		if author.CommitsMerge > 0 {
			merges = append(merges, float64(author.CommitsMerge))
		}
	}

	thresholds := models.Thresholds{Mode: models.ThresholdModeDynamic}
	thresholds.Commits = c.calibrate(commits, c.settings.CommitFloor, fixed.Commits)
	thresholds.Merges = c.calibrate(merges, c.settings.MergeFloor, fixed.Merges)
	return thresholds
}

func (c *ThresholdCalibrator) calibrate(population []float64, floor, fallback models.Threshold) models.Threshold {
	if len(population) == 0 {
		return fallback
	}

	sort.Float64s(population)
	poor := math.Max(NearestRank(population, c.settings.PoorPercentile), floor.Poor)
	excellent := math.Max(NearestRank(population, c.settings.ExcellentPercentile), floor.Excellent)
	if excellent <= poor {
		excellent = poor + 1
	}
	return models.Threshold{Excellent: excellent, Poor: poor}
}

// NearestRank returns the p-th percentile of a sorted population using
// nearest-rank selection: the value at rank ceil(p/100 * N), at least 1.
func NearestRank(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	rank := int(math.Ceil(p / 100 * float64(len(sorted))))
	if rank < 1 {
		rank = 1
	}
	if rank > len(sorted) {
		rank = len(sorted)
	}
	return sorted[rank-1]
}
