package display

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/alimgiray/gitaudit/internal/models"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

var (
	headerColor = color.New(color.Bold, color.FgCyan)
	leaderColor = color.New(color.Bold, color.FgGreen)
	warnColor   = color.New(color.FgYellow)
)

const ruleWidth = 80

type dimension struct {
	name  string
	score func(r *models.EvaluationRow) models.DimensionScore
}

var dimensions = []dimension{
	{"Productivity", func(r *models.EvaluationRow) models.DimensionScore { return r.Productivity }},
	{"Quality", func(r *models.EvaluationRow) models.DimensionScore { return r.Quality }},
	{"Collaboration", func(r *models.EvaluationRow) models.DimensionScore { return r.Collaboration }},
}

type method struct {
	name  string
	value func(d models.DimensionScore) float64
}

var methods = []method{
	{"Relative", func(d models.DimensionScore) float64 { return d.Relative }},
	{"Absolute", func(d models.DimensionScore) float64 { return d.Absolute }},
	{"Statistical", func(d models.DimensionScore) float64 { return d.Statistical }},
	{"Score", func(d models.DimensionScore) float64 { return d.Score }},
}

// Report renders the human readable analysis of an audit result
type Report struct {
	out io.Writer
}

func NewReport(out io.Writer) *Report {
	return &Report{out: out}
}

// Print writes every report section for result
func (r *Report) Print(result *models.AuditResult) {
	if result == nil || len(result.Rows) == 0 {
		fmt.Fprintln(r.out, "No data to analyze")
		return
	}

	r.summary(result)
	for _, d := range dimensions {
		r.dimensionAnalysis(result.Rows, d)
	}
	r.leaders(result.Rows)
	r.comparison(&result.Rows[0])
	r.aliases(result.AliasSuggestions)

	r.rule("=")
	fmt.Fprintf(r.out, "Analysis complete, generated %s\n", humanize.Time(result.GeneratedAt))
}

func (r *Report) rule(char string) {
	fmt.Fprintln(r.out, strings.Repeat(char, ruleWidth))
}

func (r *Report) heading(title string) {
	fmt.Fprintln(r.out)
	headerColor.Fprintln(r.out, title)
	r.rule("=")
}

func newTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	return tbl
}

func score(v float64) string {
	return fmt.Sprintf("%.3f", v)
}

func author(row *models.EvaluationRow) string {
	if row.AuthorName == "" {
		return row.AuthorEmail
	}
	return fmt.Sprintf("%s <%s>", row.AuthorName, row.AuthorEmail)
}

// ranked returns the rows ordered by overall score, highest first
func ranked(rows []models.EvaluationRow) []*models.EvaluationRow {
	out := make([]*models.EvaluationRow, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OverallScore > out[j].OverallScore
	})
	return out
}

func (r *Report) summary(result *models.AuditResult) {
	r.heading("DEVELOPER EVALUATION SUMMARY")
	fmt.Fprintf(r.out, "Repository: %s\n", result.Repository)
	fmt.Fprintf(r.out, "Total Developers: %d\n", len(result.Rows))
	fmt.Fprintf(r.out, "Thresholds (%s): commits %s/%s, merges %s/%s\n\n",
		result.Thresholds.Mode,
		humanize.Ftoa(result.Thresholds.Commits.Excellent), humanize.Ftoa(result.Thresholds.Commits.Poor),
		humanize.Ftoa(result.Thresholds.Merges.Excellent), humanize.Ftoa(result.Thresholds.Merges.Poor))

	tbl := newTable()
	tbl.AppendHeader(table.Row{"#", "Author", "Overall", "Productivity", "Quality", "Collaboration", "Commits", "Lines"})
	for i, row := range ranked(result.Rows) {
		tbl.AppendRow(table.Row{
			i + 1,
			author(row),
			score(row.OverallScore),
			score(row.Productivity.Score),
			score(row.Quality.Score),
			score(row.Collaboration.Score),
			humanize.Comma(int64(row.CommitsTotal)),
			humanize.Comma(int64(row.LinesTotal)),
		})
	}
	fmt.Fprintln(r.out, tbl.Render())
}

func (r *Report) dimensionAnalysis(rows []models.EvaluationRow, d dimension) {
	r.heading(strings.ToUpper(d.name) + " DIMENSION ANALYSIS")

	tbl := newTable()
	tbl.AppendHeader(table.Row{"Method", "Avg", "Min", "Max", "Top"})
	for _, m := range methods {
		total := 0.0
		lo, hi := m.value(d.score(&rows[0])), m.value(d.score(&rows[0]))
		top := &rows[0]
		for i := range rows {
			v := m.value(d.score(&rows[i]))
			total += v
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
				top = &rows[i]
			}
		}
		tbl.AppendRow(table.Row{
			m.name,
			score(total / float64(len(rows))),
			score(lo),
			score(hi),
			fmt.Sprintf("%s (%s)", author(top), score(hi)),
		})
	}
	fmt.Fprintln(r.out, tbl.Render())
}

func (r *Report) leaders(rows []models.EvaluationRow) {
	r.heading("DIMENSION LEADERS")
	for _, d := range dimensions {
		top := &rows[0]
		for i := range rows {
			if d.score(&rows[i]).Score > d.score(top).Score {
				top = &rows[i]
			}
		}
		fmt.Fprintf(r.out, "%-15s: ", d.name)
		leaderColor.Fprintf(r.out, "%-40s", author(top))
		fmt.Fprintf(r.out, " (%s)\n", score(d.score(top).Score))
	}
}

func (r *Report) comparison(row *models.EvaluationRow) {
	r.heading("NORMALIZATION COMPARISON FOR: " + author(row))

	tbl := newTable()
	tbl.AppendHeader(table.Row{"Dimension", "Raw", "Relative", "Absolute", "Statistical", "Average"})
	for _, d := range dimensions {
		s := d.score(row)
		tbl.AppendRow(table.Row{d.name, score(s.Raw), score(s.Relative), score(s.Absolute), score(s.Statistical), score(s.Score)})
	}
	fmt.Fprintln(r.out, tbl.Render())
}

func (r *Report) aliases(suggestions []models.AliasSuggestion) {
	if len(suggestions) == 0 {
		return
	}
	r.heading("POSSIBLE DUPLICATE IDENTITIES")
	warnColor.Fprintln(r.out, "Consider adding these pairs to the aliases section of the scoring file:")

	tbl := newTable()
	tbl.AppendHeader(table.Row{"Identity", "Candidate", "Similarity"})
	for _, s := range suggestions {
		tbl.AppendRow(table.Row{s.Identity, s.Candidate, score(s.Similarity)})
	}
	fmt.Fprintln(r.out, tbl.Render())
}
