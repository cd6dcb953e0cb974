package services

import (
	"fmt"

	"github.com/alimgiray/gitaudit/internal/models"
)

// EvaluationService turns a closed ledger into scored evaluation rows
type EvaluationService struct {
	settings   *models.ScoreSettings
	classifier *FileClassifier
	scorer     *DimensionScorer
	calibrator *ThresholdCalibrator
}

// NewEvaluationService validates settings and wires the scoring pipeline
func NewEvaluationService(settings *models.ScoreSettings) (*EvaluationService, error) {
	if settings == nil {
		settings = models.NewScoreSettings()
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid score settings: %w", err)
	}

	classifier := NewFileClassifier(settings.CategoryWeights)
	return &EvaluationService{
		settings:   settings,
		classifier: classifier,
		scorer:     NewDimensionScorer(settings, classifier),
		calibrator: NewThresholdCalibrator(settings),
	}, nil
}

// Classifier returns the file classifier configured with the category weights
func (s *EvaluationService) Classifier() *FileClassifier {
	return s.classifier
}

type rawScores struct {
	productivity  float64
	quality       float64
	collaboration float64
}

// Evaluate scores every author of the snapshot. Population statistics are
// computed once over the complete author set, and rows come back sorted by
// identity.
func (s *EvaluationService) Evaluate(snapshot *models.LedgerSnapshot) ([]models.EvaluationRow, models.Thresholds) {
	thresholds := s.calibrator.Calibrate(snapshot)
	relative := CalculateRelativeMetrics(snapshot)
	shared := SharedFilesPercentages(snapshot)

	raws := make([]rawScores, snapshot.Len())
	productivity := make([]float64, snapshot.Len())
	quality := make([]float64, snapshot.Len())
	collaboration := make([]float64, snapshot.Len())
	for i, author := range snapshot.Authors {
		raws[i] = rawScores{
			productivity:  s.scorer.ProductivityRaw(author, thresholds),
			quality:       s.scorer.QualityRaw(author),
			collaboration: s.scorer.CollaborationRaw(author, shared[author.Identity], thresholds),
		}
		productivity[i] = raws[i].productivity
		quality[i] = raws[i].quality
		collaboration[i] = raws[i].collaboration
	}

	weights := s.settings.Dimensions
	rows := make([]models.EvaluationRow, 0, snapshot.Len())
	for i, author := range snapshot.Authors {
		raw := raws[i]

		prod := blend(raw.productivity, productivity,
			NormalizeAbsolute(float64(author.CommitsNonMerge), thresholds.Commits.Excellent, thresholds.Commits.Poor, false))
		qual := blend(raw.quality, quality, models.Round(raw.quality/componentScale, normalizedPlaces))
		collab := blend(raw.collaboration, collaboration, models.Round(raw.collaboration/componentScale, normalizedPlaces))

		row := newEvaluationRow(author, relative[author.Identity])
		row.Productivity = prod
		row.Quality = qual
		row.Collaboration = collab
		row.OverallScore = models.Round(
			weights.Productivity*prod.Score+weights.Quality*qual.Score+weights.Collaboration*collab.Score,
			normalizedPlaces,
		)
		rows = append(rows, row)
	}

	return rows, thresholds
}

// blend combines the relative, absolute and statistical values of one
// dimension into its score.
func blend(raw float64, population []float64, absolute float64) models.DimensionScore {
	score := models.DimensionScore{
		Raw:         models.Round(raw, normalizedPlaces),
		Relative:    NormalizeRelative(raw, population),
		Absolute:    absolute,
		Statistical: NormalizeStatistical(raw, population),
	}
	score.Score = models.Round((score.Relative+score.Absolute+score.Statistical)/3, normalizedPlaces)
	return score
}

func newEvaluationRow(author models.AuthorStats, relative models.RelativeMetrics) models.EvaluationRow {
	return models.EvaluationRow{
		AuthorName:        author.Name,
		AuthorEmail:       author.Identity,
		CommitsNonMerge:   author.CommitsNonMerge,
		CommitsMerge:      author.CommitsMerge,
		CommitsTotal:      author.CommitsTotal(),
		CommitsBugfix:     author.CommitsBugfix,
		CommitsCoauthored: author.CommitsCoauthored,
		ReviewsGiven:      author.ReviewsGiven,
		LinesAdded:        author.LinesAdded(),
		LinesDeleted:      author.LinesDeleted(),
		LinesTotal:        author.LinesTotal(),
		FilesAdded:        author.FilesAdded(),
		FilesDeleted:      author.FilesDeleted(),
		FilesModified:     author.FilesModified(),
		FilesBinary:       author.FilesBinary,
		FilesTotal:        author.TotalFilesChanged,
		FilesTouched:      author.FilesTouched(),
		LinesPerCommitAvg: author.LinesPerCommit(),
		DaysActive:        author.DaysActiveCount(),
		CommitsFreq:       author.CommitFrequency(),
		LinesChurnRatio:   author.ChurnRatio(),
		FilesPerCommitAvg: author.FilesPerCommit(),
		DaysSpan:          author.DaysSpan(),
		CommitsFirstDate:  author.FirstCommitDate,
		CommitsLastDate:   author.LastCommitDate,
		RelativeMetrics:   relative,
		Categories:        author.Categories,
	}
}
