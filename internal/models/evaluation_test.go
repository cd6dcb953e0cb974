package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluationHeader(t *testing.T) {
	header := EvaluationHeader()

	assert.Equal(t, "author_name", header[0])
	assert.Equal(t, "author_email", header[1])
	assert.Equal(t, "overall_score", header[len(header)-1])
	assert.Contains(t, header, "code_lines_added")
	assert.Contains(t, header, "other_files_modified")
	assert.Contains(t, header, "collab_stat")

	seen := make(map[string]bool, len(header))
	for _, name := range header {
		assert.False(t, seen[name], "duplicate column %s", name)
		seen[name] = true
	}
}

func TestEvaluationRowValues(t *testing.T) {
	row := &EvaluationRow{
		AuthorName:   "Dev",
		AuthorEmail:  "dev@example.com",
		CommitsTotal: 3,
		Categories: map[Category]CategoryCounts{
			CategoryTest: {LinesAdded: 12},
		},
		Productivity: DimensionScore{Raw: 41.5, Score: 0.25},
		OverallScore: 0.1,
	}

	header := EvaluationHeader()
	values := row.Values()
	require.Len(t, values, len(header))

	byName := make(map[string]string, len(header))
	for i, name := range header {
		byName[name] = values[i]
	}
	assert.Equal(t, "Dev", byName["author_name"])
	assert.Equal(t, "3", byName["commits_total"])
	assert.Equal(t, "12", byName["test_lines_added"])
	assert.Equal(t, "0", byName["docs_lines_added"])
	assert.Equal(t, "41.5", byName["prod_raw"])
	assert.Equal(t, "0.25", byName["prod_score"])
	assert.Equal(t, "0.1", byName["overall_score"])

	assert.Equal(t, values, row.Values())
}

func TestFormatCell(t *testing.T) {
	assert.Equal(t, "abc", FormatCell("abc"))
	assert.Equal(t, "42", FormatCell(42))
	assert.Equal(t, "0.333", FormatCell(0.333))
	assert.Equal(t, "100", FormatCell(100.0))
	assert.Equal(t, "", FormatCell(nil))
}
