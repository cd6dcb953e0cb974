package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreSettingsCreation(t *testing.T) {
	t.Run("Default score settings", func(t *testing.T) {
		settings := NewScoreSettings()

		assert.NotEmpty(t, settings.ID)
		assert.Equal(t, ThresholdModeDynamic, settings.ThresholdMode)
		assert.Equal(t, 1.0, settings.CategoryWeight(CategoryCode))
		assert.Equal(t, 0.0, settings.CategoryWeight(CategoryOther))
		assert.Equal(t, Threshold{Excellent: 50, Poor: 5}, settings.Calibration.FixedCommits)
		assert.Equal(t, Threshold{Excellent: 5, Poor: 0}, settings.Calibration.FixedMerges)
		assert.NoError(t, settings.Validate())
	})

	t.Run("Every category has a default weight", func(t *testing.T) {
		weights := DefaultCategoryWeights()
		for _, c := range Categories {
			_, ok := weights[c]
			assert.True(t, ok, "missing weight for %s", c)
		}
	})
}

func TestScoreSettingsValidate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(s *ScoreSettings)
		field  string
	}{
		{
			name:   "Unknown threshold mode",
			mutate: func(s *ScoreSettings) { s.ThresholdMode = "adaptive" },
			field:  "threshold_mode",
		},
		{
			name:   "Unknown category",
			mutate: func(s *ScoreSettings) { s.CategoryWeights["scripts"] = 0.5 },
			field:  "category_weights",
		},
		{
			name:   "Category weight above one",
			mutate: func(s *ScoreSettings) { s.CategoryWeights[CategoryCode] = 1.5 },
			field:  "category_weights.code",
		},
		{
			name:   "Nonzero weight for unclassified files",
			mutate: func(s *ScoreSettings) { s.CategoryWeights[CategoryOther] = 0.5 },
			field:  "category_weights.other",
		},
		{
			name:   "Dimension weights do not sum to one",
			mutate: func(s *ScoreSettings) { s.Dimensions.Quality = 0.5 },
			field:  "dimension_weights",
		},
		{
			name:   "Negative productivity weight",
			mutate: func(s *ScoreSettings) { s.Productivity.CommitsWeight = -0.1; s.Productivity.LinesWeight = 0.8 },
			field:  "productivity",
		},
		{
			name:   "Churn thresholds not inverted",
			mutate: func(s *ScoreSettings) { s.Quality.Churn = Threshold{Excellent: 2, Poor: 0.5} },
			field:  "quality.churn",
		},
		{
			name:   "Lines thresholds inverted",
			mutate: func(s *ScoreSettings) { s.Productivity.Lines = Threshold{Excellent: 10, Poor: 100} },
			field:  "productivity.lines",
		},
		{
			name:   "Band out of order",
			mutate: func(s *ScoreSettings) { s.Quality.CommitSize.ExcellentMax = 10 },
			field:  "quality.commit_size",
		},
		{
			name:   "Percentiles reversed",
			mutate: func(s *ScoreSettings) { s.Calibration.PoorPercentile = 95 },
			field:  "calibration",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			settings := NewScoreSettings()
			tc.mutate(settings)

			err := settings.Validate()
			require.Error(t, err)

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tc.field, validationErr.Field)
		})
	}
}

func TestCategoryWeightOtherIsAlwaysZero(t *testing.T) {
	settings := NewScoreSettings()
	settings.CategoryWeights[CategoryOther] = 0.5

	assert.Equal(t, 0.0, settings.CategoryWeight(CategoryOther))
	assert.Equal(t, 1.0, settings.CategoryWeight(CategoryCode))
}

func TestFixedThresholds(t *testing.T) {
	settings := NewScoreSettings()
	thresholds := FixedThresholds(settings.Calibration)

	assert.Equal(t, ThresholdModeFixed, thresholds.Mode)
	assert.Equal(t, settings.Calibration.FixedCommits, thresholds.Commits)
	assert.Equal(t, settings.Calibration.FixedMerges, thresholds.Merges)
}
