package services

import (
	"github.com/alimgiray/gitaudit/internal/models"
)

// Sub-components are mapped onto a 0-100 scale before weighting
const componentScale = 100.0

// DimensionScorer computes the raw 0-100 score of each dimension
type DimensionScorer struct {
	settings   *models.ScoreSettings
	classifier *FileClassifier
}

func NewDimensionScorer(settings *models.ScoreSettings, classifier *FileClassifier) *DimensionScorer {
	return &DimensionScorer{settings: settings, classifier: classifier}
}

func scaled(t models.Threshold, v float64, inverted bool) float64 {
	return componentScale * linearScore(v, t.Excellent, t.Poor, inverted)
}

func scaledBand(b models.Band, v float64) float64 {
	return componentScale * bandScore(v, b)
}

// WeightedLines sums added and deleted lines per category times the
// category weight. Categories are visited in fixed order so the float sum
// is reproducible.
func (s *DimensionScorer) WeightedLines(author models.AuthorStats) float64 {
	total := 0.0
	for _, category := range models.Categories {
		counts := author.Categories[category]
		total += s.settings.CategoryWeight(category) * float64(counts.LinesAdded+counts.LinesDeleted)
	}
	return total
}

// WeightedFiles sums the category weight of every distinct touched path
func (s *DimensionScorer) WeightedFiles(author models.AuthorStats) float64 {
	total := 0.0
	for _, path := range author.Files {
		_, weight := s.classifier.Classify(path)
		total += weight
	}
	return total
}

// ProductivityRaw weighs commit count, category-weighted line and file
// volume and active days.
func (s *DimensionScorer) ProductivityRaw(author models.AuthorStats, thresholds models.Thresholds) float64 {
	p := s.settings.Productivity
	return p.CommitsWeight*scaled(thresholds.Commits, float64(author.CommitsNonMerge), false) +
		p.LinesWeight*scaled(p.Lines, s.WeightedLines(author), false) +
		p.FilesWeight*scaled(p.Files, s.WeightedFiles(author), false) +
		p.ActiveDaysWeight*scaled(p.ActiveDays, float64(author.DaysActiveCount()), false)
}

// QualityRaw weighs churn, commit size, files per commit, merge ratio and
// bug-fix ratio. Churn and merge ratio are lower-is-better.
func (s *DimensionScorer) QualityRaw(author models.AuthorStats) float64 {
	q := s.settings.Quality
	return q.ChurnWeight*scaled(q.Churn, author.ChurnRatio(), true) +
		q.CommitSizeWeight*scaledBand(q.CommitSize, author.LinesPerCommit()) +
		q.FilesPerCommitWeight*scaledBand(q.FilesPerCommit, author.FilesPerCommit()) +
		q.MergeRatioWeight*scaled(q.MergeRatio, author.MergeRatio(), true) +
		q.BugfixRatioWeight*scaledBand(q.BugfixRatio, author.BugfixRatio())
}

// CollaborationRaw weighs merge activity, shared file ownership, review
// participation and active span.
func (s *DimensionScorer) CollaborationRaw(author models.AuthorStats, sharedFilesPct float64, thresholds models.Thresholds) float64 {
	c := s.settings.Collaboration
	return c.MergeWeight*scaled(thresholds.Merges, float64(author.CommitsMerge), false) +
		c.SharedFilesWeight*scaled(c.SharedFiles, sharedFilesPct, false) +
		c.ReviewWeight*scaled(c.Review, float64(author.ReviewParticipation()), false) +
		c.SpanWeight*scaled(c.Span, float64(author.DaysSpan()), false)
}
