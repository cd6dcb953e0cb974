package services

import (
	"context"
	"fmt"

	"github.com/alimgiray/gitaudit/internal/models"
	"github.com/alimgiray/gitaudit/pkg/logger"
	"github.com/sirupsen/logrus"
)

// DefaultAliasSimilarity is the minimum similarity for alias suggestions
const DefaultAliasSimilarity = 0.85

// PassObserver is notified around every history traversal
type PassObserver interface {
	PassStarted(pass HistoryPass)
	PassFinished(pass HistoryPass, stats ParseStats)
}

// AuditOptions describe one audit run over a local working copy
type AuditOptions struct {
	Dir        string
	Repository string
	Scope      *models.AuditScope
	Aliases    []*models.EmailMerge
	Observer   PassObserver
}

// AuditService runs the four history traversals into a ledger and scores
// the closed result.
type AuditService struct {
	runner     GitRunner
	settings   *models.ScoreSettings
	evaluation *EvaluationService
	similarity *TextSimilarityService
}

func NewAuditService(runner GitRunner, settings *models.ScoreSettings) (*AuditService, error) {
	if settings == nil {
		settings = models.NewScoreSettings()
	}
	evaluation, err := NewEvaluationService(settings)
	if err != nil {
		return nil, err
	}
	return &AuditService{
		runner:     runner,
		settings:   settings,
		evaluation: evaluation,
		similarity: NewTextSimilarityService(),
	}, nil
}

// Run executes a full audit. Any failed traversal aborts the run.
func (s *AuditService) Run(ctx context.Context, opts AuditOptions) (*models.AuditResult, error) {
	result := models.NewAuditResult(opts.Repository, s.settings)
	log := logger.WithFields(logrus.Fields{
		"run_id":     result.RunID,
		"repository": opts.Repository,
	})
	log.Info("Starting audit")

	snapshot, err := s.collectLedger(ctx, opts, log)
	if err != nil {
		log.WithError(err).Error("Audit failed")
		return nil, err
	}

	result.Rows, result.Thresholds = s.evaluation.Evaluate(snapshot)
	result.AliasSuggestions = s.similarity.SuggestAliases(snapshot.Authors, DefaultAliasSimilarity)

	log.WithFields(logrus.Fields{
		"authors":          snapshot.Len(),
		"commit_excellent": result.Thresholds.Commits.Excellent,
		"commit_poor":      result.Thresholds.Commits.Poor,
		"alias_candidates": len(result.AliasSuggestions),
	}).Info("Audit completed")

	return result, nil
}

// collectLedger runs the traversals in order and returns the closed ledger
func (s *AuditService) collectLedger(ctx context.Context, opts AuditOptions, log *logrus.Entry) (*models.LedgerSnapshot, error) {
	ledger := NewAuthorLedger(NewIdentityResolver(opts.Aliases))
	builder := NewGitQueryBuilder(opts.Scope)
	classifier := s.evaluation.Classifier()

	for _, pass := range HistoryPasses {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if opts.Observer != nil {
			opts.Observer.PassStarted(pass)
		}

		output, err := s.runner.Run(ctx, opts.Dir, builder.Args(pass)...)
		if err != nil {
			return nil, fmt.Errorf("%s traversal failed: %w", pass, err)
		}
		lines := SplitLines(output)

		var stats ParseStats
		switch pass {
		case PassPrimary:
			stats, err = NewLogStreamParser(ledger, classifier).Parse(lines)
		case PassMerges:
			stats, err = NewMergeCollector(ledger).Collect(lines)
		case PassStatus:
			stats, err = NewStatusCollector(ledger, classifier).Collect(lines)
		case PassPaths:
			stats, err = NewPathCollector(ledger).Collect(lines)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s traversal: %w", pass, err)
		}

		log.WithFields(logrus.Fields{
			"pass":      pass,
			"lines":     stats.Lines,
			"commits":   stats.Commits,
			"changes":   stats.ChangeLines,
			"malformed": stats.MalformedCounts,
			"authors":   ledger.Len(),
		}).Info("Traversal finished")

		if opts.Observer != nil {
			opts.Observer.PassFinished(pass, stats)
		}
	}

	return ledger.Close(), nil
}
