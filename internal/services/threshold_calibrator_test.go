package services

import (
	"testing"

	"github.com/alimgiray/gitaudit/internal/models"
	"github.com/stretchr/testify/assert"
)

func commitPopulation(commits, merges []int) *models.LedgerSnapshot {
	var authors []models.AuthorStats
	for i, c := range commits {
		author := models.AuthorStats{
			Identity:        string(rune('a'+i)) + "@x.com",
			CommitsNonMerge: c,
		}
		if i < len(merges) {
			author.CommitsMerge = merges[i]
		}
		authors = append(authors, author)
	}
	return models.NewLedgerSnapshot(authors)
}

func TestNearestRank(t *testing.T) {
	population := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	testCases := []struct {
		p        float64
		expected float64
	}{
		{25, 3},
		{90, 9},
		{100, 10},
		{1, 1},
		{0, 1},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, NearestRank(population, tc.p), "p=%v", tc.p)
	}
	assert.Equal(t, 0.0, NearestRank(nil, 50))
}

func TestThresholdCalibrator(t *testing.T) {
	settings := models.NewScoreSettings()

	t.Run("Percentiles above the floors", func(t *testing.T) {
		snapshot := commitPopulation(
			[]int{4, 8, 12, 20, 30, 40, 60, 80, 100, 200},
			[]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		)

		thresholds := NewThresholdCalibrator(settings).Calibrate(snapshot)

		assert.Equal(t, models.ThresholdModeDynamic, thresholds.Mode)
		assert.Equal(t, models.Threshold{Excellent: 100, Poor: 12}, thresholds.Commits)
		assert.Equal(t, models.Threshold{Excellent: 9, Poor: 3}, thresholds.Merges)
	})

	t.Run("Floors lift a small team", func(t *testing.T) {
		snapshot := commitPopulation([]int{1, 2, 3}, []int{1})

		thresholds := NewThresholdCalibrator(settings).Calibrate(snapshot)

		assert.Equal(t, models.Threshold{Excellent: 10, Poor: 1}, thresholds.Commits)
		assert.Equal(t, models.Threshold{Excellent: 2, Poor: 1}, thresholds.Merges)
	})

	t.Run("Excellent is kept above poor", func(t *testing.T) {
		snapshot := commitPopulation([]int{15, 15, 15, 15}, nil)

		thresholds := NewThresholdCalibrator(settings).Calibrate(snapshot)

		assert.Equal(t, models.Threshold{Excellent: 16, Poor: 15}, thresholds.Commits)
	})

	t.Run("Empty population falls back to the fixed table", func(t *testing.T) {
		thresholds := NewThresholdCalibrator(settings).Calibrate(commitPopulation(nil, nil))

		assert.Equal(t, models.ThresholdModeDynamic, thresholds.Mode)
		assert.Equal(t, settings.Calibration.FixedCommits, thresholds.Commits)
		assert.Equal(t, settings.Calibration.FixedMerges, thresholds.Merges)
	})

	t.Run("Fixed mode ignores the population", func(t *testing.T) {
		fixed := models.NewScoreSettings()
		fixed.ThresholdMode = models.ThresholdModeFixed
		snapshot := commitPopulation([]int{400, 500}, []int{40, 50})

		thresholds := NewThresholdCalibrator(fixed).Calibrate(snapshot)

		assert.Equal(t, models.FixedThresholds(fixed.Calibration), thresholds)
	})
}
