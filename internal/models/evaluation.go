package models

import (
	"strconv"
)

// DimensionScore holds one dimension's raw score, its three normalized
// values and their mean.
type DimensionScore struct {
	Raw         float64 `json:"raw"`
	Relative    float64 `json:"relative"`
	Absolute    float64 `json:"absolute"`
	Statistical float64 `json:"statistical"`
	Score       float64 `json:"score"`
}

// RelativeMetrics are an author's percentage shares of team totals
type RelativeMetrics struct {
	CommitsTeamPct float64 `json:"commits_team_pct"`
	LinesTeamPct   float64 `json:"lines_team_pct"`
	FilesTeamPct   float64 `json:"files_team_pct"`
}

// EvaluationRow is the flat per-author output record
type EvaluationRow struct {
	AuthorName  string `json:"author_name"`
	AuthorEmail string `json:"author_email"`

	CommitsNonMerge   int `json:"commits_non_merge"`
	CommitsMerge      int `json:"commits_merge"`
	CommitsTotal      int `json:"commits_total"`
	CommitsBugfix     int `json:"commits_bugfix"`
	CommitsCoauthored int `json:"commits_coauthored"`
	ReviewsGiven      int `json:"reviews_given"`

	LinesAdded   int `json:"lines_added"`
	LinesDeleted int `json:"lines_deleted"`
	LinesTotal   int `json:"lines_total"`

	FilesAdded    int `json:"files_added"`
	FilesDeleted  int `json:"files_deleted"`
	FilesModified int `json:"files_modified"`
	FilesBinary   int `json:"files_binary"`
	FilesTotal    int `json:"files_total"`
	FilesTouched  int `json:"files_touched"`

	LinesPerCommitAvg float64 `json:"lines_per_commit_avg"`
	DaysActive        int     `json:"days_active"`
	CommitsFreq       float64 `json:"commits_freq"`
	LinesChurnRatio   float64 `json:"lines_churn_ratio"`
	FilesPerCommitAvg float64 `json:"files_per_commit_avg"`
	DaysSpan          int     `json:"days_span"`
	CommitsFirstDate  string  `json:"commits_first_date"`
	CommitsLastDate   string  `json:"commits_last_date"`

	RelativeMetrics

	Categories map[Category]CategoryCounts `json:"categories"`

	Productivity  DimensionScore `json:"productivity"`
	Quality       DimensionScore `json:"quality"`
	Collaboration DimensionScore `json:"collaboration"`
	OverallScore  float64        `json:"overall_score"`
}

type column struct {
	name  string
	value func(r *EvaluationRow) any
}

var evaluationColumns = buildColumns()

func buildColumns() []column {
	cols := []column{
		{"author_name", func(r *EvaluationRow) any { return r.AuthorName }},
		{"author_email", func(r *EvaluationRow) any { return r.AuthorEmail }},
		{"commits_non_merge", func(r *EvaluationRow) any { return r.CommitsNonMerge }},
		{"commits_merge", func(r *EvaluationRow) any { return r.CommitsMerge }},
		{"commits_total", func(r *EvaluationRow) any { return r.CommitsTotal }},
		{"commits_bugfix", func(r *EvaluationRow) any { return r.CommitsBugfix }},
		{"commits_coauthored", func(r *EvaluationRow) any { return r.CommitsCoauthored }},
		{"reviews_given", func(r *EvaluationRow) any { return r.ReviewsGiven }},
		{"lines_added", func(r *EvaluationRow) any { return r.LinesAdded }},
		{"lines_deleted", func(r *EvaluationRow) any { return r.LinesDeleted }},
		{"lines_total", func(r *EvaluationRow) any { return r.LinesTotal }},
		{"files_added", func(r *EvaluationRow) any { return r.FilesAdded }},
		{"files_deleted", func(r *EvaluationRow) any { return r.FilesDeleted }},
		{"files_modified", func(r *EvaluationRow) any { return r.FilesModified }},
		{"files_binary", func(r *EvaluationRow) any { return r.FilesBinary }},
		{"files_total", func(r *EvaluationRow) any { return r.FilesTotal }},
		{"files_touched", func(r *EvaluationRow) any { return r.FilesTouched }},
		{"lines_per_commit_avg", func(r *EvaluationRow) any { return r.LinesPerCommitAvg }},
		{"days_active", func(r *EvaluationRow) any { return r.DaysActive }},
		{"commits_freq", func(r *EvaluationRow) any { return r.CommitsFreq }},
		{"lines_churn_ratio", func(r *EvaluationRow) any { return r.LinesChurnRatio }},
		{"files_per_commit_avg", func(r *EvaluationRow) any { return r.FilesPerCommitAvg }},
		{"days_span", func(r *EvaluationRow) any { return r.DaysSpan }},
		{"commits_first_date", func(r *EvaluationRow) any { return r.CommitsFirstDate }},
		{"commits_last_date", func(r *EvaluationRow) any { return r.CommitsLastDate }},
		{"commits_team_pct", func(r *EvaluationRow) any { return r.CommitsTeamPct }},
		{"lines_team_pct", func(r *EvaluationRow) any { return r.LinesTeamPct }},
		{"files_team_pct", func(r *EvaluationRow) any { return r.FilesTeamPct }},
	}

	for _, c := range Categories {
		c := c
		prefix := string(c) + "_"
		cols = append(cols,
			column{prefix + "lines_added", func(r *EvaluationRow) any { return r.Categories[c].LinesAdded }},
			column{prefix + "lines_deleted", func(r *EvaluationRow) any { return r.Categories[c].LinesDeleted }},
			column{prefix + "files_added", func(r *EvaluationRow) any { return r.Categories[c].FilesAdded }},
			column{prefix + "files_deleted", func(r *EvaluationRow) any { return r.Categories[c].FilesDeleted }},
			column{prefix + "files_modified", func(r *EvaluationRow) any { return r.Categories[c].FilesModified }},
		)
	}

	dimensions := []struct {
		prefix string
		score  func(r *EvaluationRow) *DimensionScore
	}{
		{"prod", func(r *EvaluationRow) *DimensionScore { return &r.Productivity }},
		{"quality", func(r *EvaluationRow) *DimensionScore { return &r.Quality }},
		{"collab", func(r *EvaluationRow) *DimensionScore { return &r.Collaboration }},
	}
	for _, d := range dimensions {
		d := d
		cols = append(cols,
			column{d.prefix + "_raw", func(r *EvaluationRow) any { return d.score(r).Raw }},
			column{d.prefix + "_rel", func(r *EvaluationRow) any { return d.score(r).Relative }},
			column{d.prefix + "_abs", func(r *EvaluationRow) any { return d.score(r).Absolute }},
			column{d.prefix + "_stat", func(r *EvaluationRow) any { return d.score(r).Statistical }},
			column{d.prefix + "_score", func(r *EvaluationRow) any { return d.score(r).Score }},
		)
	}

	return append(cols, column{"overall_score", func(r *EvaluationRow) any { return r.OverallScore }})
}

// EvaluationHeader returns the column names shared by every export sink
func EvaluationHeader() []string {
	header := make([]string, len(evaluationColumns))
	for i, col := range evaluationColumns {
		header[i] = col.name
	}
	return header
}

// Cells returns the row values in header order, keeping their native types
func (r *EvaluationRow) Cells() []any {
	cells := make([]any, len(evaluationColumns))
	for i, col := range evaluationColumns {
		cells[i] = col.value(r)
	}
	return cells
}

// Values returns the row formatted as strings in header order
func (r *EvaluationRow) Values() []string {
	cells := r.Cells()
	values := make([]string, len(cells))
	for i, cell := range cells {
		values[i] = FormatCell(cell)
	}
	return values
}

// FormatCell renders a cell with the shortest exact float representation
func FormatCell(cell any) string {
	switch v := cell.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}
