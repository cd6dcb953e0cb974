package services

import (
	"testing"

	"github.com/alimgiray/gitaudit/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evaluationSnapshot() *models.LedgerSnapshot {
	quiet := models.AuthorStats{
		Identity:        "quiet@x.com",
		Name:            "Quiet",
		CommitsNonMerge: 2,
		Categories: map[models.Category]models.CategoryCounts{
			models.CategoryDocs: {LinesAdded: 30, LinesDeleted: 5},
		},
		Files:           []string{"README.md"},
		DaysActive:      []string{"2024-02-01"},
		FirstCommitDate: "2024-02-01",
		LastCommitDate:  "2024-02-01",
	}
	busy := steadyAuthor()
	busy.Name = "Steady"
	busy.CommitsMerge = 3
	busy.ReviewsGiven = 2
	busy.Files = append(busy.Files, "README.md")
	busy.FirstCommitDate = "2024-01-01"
	busy.LastCommitDate = "2024-01-05"

	return models.NewLedgerSnapshot([]models.AuthorStats{quiet, busy})
}

func TestNewEvaluationService(t *testing.T) {
	service, err := NewEvaluationService(nil)
	require.NoError(t, err)
	assert.NotNil(t, service.Classifier())

	invalid := models.NewScoreSettings()
	invalid.Dimensions.Productivity = 0.9
	_, err = NewEvaluationService(invalid)
	assert.Error(t, err)
}

func TestEvaluate(t *testing.T) {
	service, err := NewEvaluationService(models.NewScoreSettings())
	require.NoError(t, err)

	snapshot := evaluationSnapshot()
	rows, thresholds := service.Evaluate(snapshot)
	require.Len(t, rows, 2)

	assert.Equal(t, "quiet@x.com", rows[0].AuthorEmail)
	assert.Equal(t, "steady@x.com", rows[1].AuthorEmail)
	assert.Equal(t, models.ThresholdModeDynamic, thresholds.Mode)

	t.Run("Counters flow into the row", func(t *testing.T) {
		row := rows[1]
		assert.Equal(t, "Steady", row.AuthorName)
		assert.Equal(t, row.CommitsNonMerge+row.CommitsMerge, row.CommitsTotal)
		assert.Equal(t, row.LinesAdded+row.LinesDeleted, row.LinesTotal)
		assert.Equal(t, 5, row.FilesTouched)
		assert.Equal(t, 4, row.DaysSpan)
		assert.Len(t, row.Categories, len(models.Categories))
		assert.InDelta(t, 100.0, rows[0].CommitsTeamPct+rows[1].CommitsTeamPct, 0.011)
	})

	t.Run("Dimension scores are the mean of their parts", func(t *testing.T) {
		for _, row := range rows {
			for _, d := range []models.DimensionScore{row.Productivity, row.Quality, row.Collaboration} {
				assert.Equal(t, models.Round((d.Relative+d.Absolute+d.Statistical)/3, 3), d.Score)
				assert.GreaterOrEqual(t, d.Score, 0.0)
				assert.LessOrEqual(t, d.Score, 1.0)
			}
			assert.Equal(t, models.Round(row.Quality.Raw/100, 3), row.Quality.Absolute)
			assert.Equal(t, models.Round(row.Collaboration.Raw/100, 3), row.Collaboration.Absolute)
		}
	})

	t.Run("Productivity absolute uses the calibrated commit thresholds", func(t *testing.T) {
		for _, row := range rows {
			expected := NormalizeAbsolute(float64(row.CommitsNonMerge), thresholds.Commits.Excellent, thresholds.Commits.Poor, false)
			assert.Equal(t, expected, row.Productivity.Absolute)
		}
	})

	t.Run("Overall score follows the dimension weights", func(t *testing.T) {
		w := models.NewScoreSettings().Dimensions
		for _, row := range rows {
			expected := models.Round(w.Productivity*row.Productivity.Score+w.Quality*row.Quality.Score+w.Collaboration*row.Collaboration.Score, 3)
			assert.Equal(t, expected, row.OverallScore)
		}
		assert.Greater(t, rows[1].OverallScore, rows[0].OverallScore)
	})

	t.Run("Repeated runs are identical", func(t *testing.T) {
		again, againThresholds := service.Evaluate(evaluationSnapshot())
		assert.Equal(t, rows, again)
		assert.Equal(t, thresholds, againThresholds)
	})
}

func TestEvaluateIdenticalAuthors(t *testing.T) {
	service, err := NewEvaluationService(nil)
	require.NoError(t, err)

	twin := func(identity string) models.AuthorStats {
		author := steadyAuthor()
		author.Identity = identity
		return author
	}
	rows, _ := service.Evaluate(models.NewLedgerSnapshot([]models.AuthorStats{twin("a@x.com"), twin("b@x.com")}))
	require.Len(t, rows, 2)

	for _, row := range rows {
		assert.Equal(t, rows[0].Productivity.Raw, row.Productivity.Raw)
		assert.Equal(t, 1.0, row.Productivity.Relative)
		assert.Equal(t, 0.5, row.Productivity.Statistical)
	}
}

func TestBlend(t *testing.T) {
	score := blend(50, []float64{50, 50}, 0.2)

	assert.Equal(t, models.DimensionScore{
		Raw:         50,
		Relative:    1,
		Absolute:    0.2,
		Statistical: 0.5,
		Score:       0.567,
	}, score)
}

func TestEvaluateEmptyLedger(t *testing.T) {
	service, err := NewEvaluationService(nil)
	require.NoError(t, err)

	rows, thresholds := service.Evaluate(models.NewLedgerSnapshot(nil))
	assert.Empty(t, rows)
	assert.Equal(t, models.NewScoreSettings().Calibration.FixedCommits, thresholds.Commits)
}
