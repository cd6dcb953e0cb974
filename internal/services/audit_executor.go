package services

import (
	"context"

	"github.com/alimgiray/gitaudit/internal/models"
)

// AuditExecutor runs an AuditRequest end to end: acquire the repository,
// audit it, release the working copy.
type AuditExecutor struct {
	clone    *CloneService
	runner   GitRunner
	settings *models.ScoreSettings
	aliases  []*models.EmailMerge
}

func NewAuditExecutor(clone *CloneService, runner GitRunner, settings *models.ScoreSettings, aliases []*models.EmailMerge) *AuditExecutor {
	if settings == nil {
		settings = models.NewScoreSettings()
	}
	return &AuditExecutor{
		clone:    clone,
		runner:   runner,
		settings: settings,
		aliases:  aliases,
	}
}

// Execute audits the repository named by request. observer may be nil.
func (e *AuditExecutor) Execute(ctx context.Context, request models.AuditRequest, observer PassObserver) (*models.AuditResult, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	settings := *e.settings
	if request.FixedThresholds {
		settings.ThresholdMode = models.ThresholdModeFixed
	}

	audit, err := NewAuditService(e.runner, &settings)
	if err != nil {
		return nil, err
	}

	dir, cleanup, err := e.clone.Acquire(ctx, request.Repository)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return audit.Run(ctx, AuditOptions{
		Dir:        dir,
		Repository: request.Repository,
		Scope:      request.Scope(),
		Aliases:    e.aliases,
		Observer:   observer,
	})
}
