package services

import (
	"testing"

	"github.com/alimgiray/gitaudit/internal/models"
	"github.com/stretchr/testify/assert"
)

func twoAuthorSnapshot() *models.LedgerSnapshot {
	return models.NewLedgerSnapshot([]models.AuthorStats{
		{
			Identity:        "a@x.com",
			CommitsNonMerge: 3,
			CommitsMerge:    1,
			Categories:      map[models.Category]models.CategoryCounts{models.CategoryCode: {LinesAdded: 60, LinesDeleted: 15}},
			Files:           []string{"main.go", "shared.go"},
		},
		{
			Identity:        "b@x.com",
			CommitsNonMerge: 2,
			Categories:      map[models.Category]models.CategoryCounts{models.CategoryCode: {LinesAdded: 25}},
			Files:           []string{"other.go", "shared.go", "util.go"},
		},
	})
}

func TestCalculateTeamTotals(t *testing.T) {
	totals := CalculateTeamTotals(twoAuthorSnapshot())

	assert.Equal(t, TeamTotals{Commits: 6, Lines: 100, Files: 4}, totals)
}

func TestCalculateRelativeMetrics(t *testing.T) {
	metrics := CalculateRelativeMetrics(twoAuthorSnapshot())

	assert.Equal(t, models.RelativeMetrics{CommitsTeamPct: 66.67, LinesTeamPct: 75, FilesTeamPct: 50}, metrics["a@x.com"])
	assert.Equal(t, models.RelativeMetrics{CommitsTeamPct: 33.33, LinesTeamPct: 25, FilesTeamPct: 75}, metrics["b@x.com"])

	t.Run("Single author owns everything", func(t *testing.T) {
		snapshot := models.NewLedgerSnapshot([]models.AuthorStats{{
			Identity:        "solo@x.com",
			CommitsNonMerge: 1,
			Categories:      map[models.Category]models.CategoryCounts{models.CategoryCode: {LinesAdded: 10}},
			Files:           []string{"main.go"},
		}})
		assert.Equal(t, 100.0, CalculateRelativeMetrics(snapshot)["solo@x.com"].CommitsTeamPct)
	})

	t.Run("Empty team yields zero shares", func(t *testing.T) {
		snapshot := models.NewLedgerSnapshot([]models.AuthorStats{{Identity: "idle@x.com"}})
		assert.Equal(t, models.RelativeMetrics{}, CalculateRelativeMetrics(snapshot)["idle@x.com"])
	})
}

func TestSharedFilesPercentages(t *testing.T) {
	shared := SharedFilesPercentages(twoAuthorSnapshot())

	assert.Equal(t, 50.0, shared["a@x.com"])
	assert.Equal(t, 33.33, shared["b@x.com"])

	solo := models.NewLedgerSnapshot([]models.AuthorStats{{Identity: "solo@x.com"}})
	assert.Equal(t, 0.0, SharedFilesPercentages(solo)["solo@x.com"])
}
