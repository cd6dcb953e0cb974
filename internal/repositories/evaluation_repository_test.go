package repositories

import (
	"path/filepath"
	"testing"

	"github.com/alimgiray/gitaudit/internal/models"
	"github.com/alimgiray/gitaudit/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluationRepository(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "evaluations.db"))
	require.NoError(t, err)
	defer db.Close()

	repo := NewEvaluationRepository(db)

	t.Run("Empty database", func(t *testing.T) {
		rows, err := repo.GetAll()
		require.NoError(t, err)
		assert.Empty(t, rows)

		runID, err := repo.GetRunID()
		require.NoError(t, err)
		assert.Equal(t, "", runID)
	})

	t.Run("Rows are replaced on every write", func(t *testing.T) {
		first := models.NewAuditResult("repo", models.NewScoreSettings())
		first.Rows = []models.EvaluationRow{
			{AuthorEmail: "b@x.com", AuthorName: "B", CommitsTotal: 2, OverallScore: 0.4},
			{AuthorEmail: "a@x.com", AuthorName: "A", CommitsTotal: 5, OverallScore: 0.7},
		}
		require.NoError(t, repo.ReplaceAll(first))

		rows, err := repo.GetAll()
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "a@x.com", rows[0].AuthorEmail)
		assert.Equal(t, 0.7, rows[0].OverallScore)

		second := models.NewAuditResult("repo", models.NewScoreSettings())
		second.Rows = []models.EvaluationRow{{
			AuthorEmail: "c@x.com",
			Categories:  map[models.Category]models.CategoryCounts{models.CategoryCode: {LinesAdded: 3}},
		}}
		require.NoError(t, repo.ReplaceAll(second))

		rows, err = repo.GetAll()
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, 3, rows[0].Categories[models.CategoryCode].LinesAdded)

		runID, err := repo.GetRunID()
		require.NoError(t, err)
		assert.Equal(t, second.RunID, runID)
	})

	t.Run("Duplicate authors roll the write back", func(t *testing.T) {
		before, err := repo.GetAll()
		require.NoError(t, err)

		broken := models.NewAuditResult("repo", nil)
		broken.Rows = []models.EvaluationRow{{AuthorEmail: "dup@x.com"}, {AuthorEmail: "dup@x.com"}}
		assert.Error(t, repo.ReplaceAll(broken))

		after, err := repo.GetAll()
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}
