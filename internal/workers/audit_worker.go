package workers

import (
	"context"
	"time"

	"github.com/alimgiray/gitaudit/internal/models"
	"github.com/alimgiray/gitaudit/internal/services"
	"github.com/alimgiray/gitaudit/pkg/logger"
	"github.com/sirupsen/logrus"
)

// AuditRunner executes one audit request
type AuditRunner interface {
	Execute(ctx context.Context, request models.AuditRequest, observer services.PassObserver) (*models.AuditResult, error)
}

// JobQueue is the job storage the workers consume from
type JobQueue interface {
	ClaimNextPending(workerID string) (*models.Job, error)
	Update(job *models.Job) error
}

// ResultSink persists finished audits
type ResultSink interface {
	SaveSQLite(result *models.AuditResult) error
}

// AuditStats records the outcome of finished audits
type AuditStats interface {
	ObserveAudit(status string, duration time.Duration, authors int)
}

// AuditWorker claims pending audit jobs and runs them
type AuditWorker struct {
	*BaseWorker
	queue        JobQueue
	runner       AuditRunner
	sink         ResultSink
	stats        AuditStats
	pollInterval time.Duration
}

// NewAuditWorker creates a worker; sink may be nil
func NewAuditWorker(workerID string, queue JobQueue, runner AuditRunner, sink ResultSink, pollInterval time.Duration) *AuditWorker {
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	return &AuditWorker{
		BaseWorker:   NewBaseWorker(workerID),
		queue:        queue,
		runner:       runner,
		sink:         sink,
		pollInterval: pollInterval,
	}
}

// Start polls the queue until ctx is cancelled or the worker is stopped
func (w *AuditWorker) Start(ctx context.Context) error {
	w.setRunning(true)
	defer w.setRunning(false)

	log := logger.WithField("worker_id", w.WorkerID)
	log.Info("Audit worker started")

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		// drain the queue before sleeping again
		for w.processNext(ctx) {
			if ctx.Err() != nil {
				break
			}
		}

		select {
		case <-ctx.Done():
			log.Info("Audit worker stopping due to context cancellation")
			return ctx.Err()
		case <-w.StopChan:
			log.Info("Audit worker stopping")
			return nil
		case <-ticker.C:
		}
	}
}

// processNext runs one pending job and reports whether one was found
func (w *AuditWorker) processNext(ctx context.Context) bool {
	job, err := w.queue.ClaimNextPending(w.WorkerID)
	if err != nil {
		logger.WithError(err).WithField("worker_id", w.WorkerID).Error("Failed to claim job")
		return false
	}
	if job == nil {
		return false
	}

	w.process(ctx, job)
	return true
}

func (w *AuditWorker) process(ctx context.Context, job *models.Job) {
	log := logger.WithFields(logrus.Fields{
		"worker_id":  w.WorkerID,
		"job_id":     job.ID,
		"repository": job.Request.Repository,
	})
	log.Info("Processing audit job")

	start := time.Now()
	result, err := w.runner.Execute(ctx, job.Request, &jobProgress{log: log})
	if err != nil {
		log.WithError(err).Error("Audit job failed")
		job.MarkFailed(err.Error())
		w.save(job, log)
		w.observe(job, start, 0)
		return
	}

	if w.sink != nil {
		if err := w.sink.SaveSQLite(result); err != nil {
			log.WithError(err).Warn("Failed to store audit result")
		}
	}

	job.MarkCompleted(result)
	w.save(job, log)
	w.observe(job, start, len(result.Rows))
	log.WithField("authors", len(result.Rows)).Info("Audit job completed")
}

func (w *AuditWorker) observe(job *models.Job, start time.Time, authors int) {
	if w.stats != nil {
		w.stats.ObserveAudit(string(job.Status), time.Since(start), authors)
	}
}

func (w *AuditWorker) save(job *models.Job, log *logrus.Entry) {
	if err := w.queue.Update(job); err != nil {
		log.WithError(err).Error("Failed to update job")
	}
}

// jobProgress logs history traversals of a running job
type jobProgress struct {
	log *logrus.Entry
}

func (p *jobProgress) PassStarted(pass services.HistoryPass) {
	p.log.WithField("pass", pass).Debug("History pass started")
}

func (p *jobProgress) PassFinished(pass services.HistoryPass, stats services.ParseStats) {
	p.log.WithFields(logrus.Fields{
		"pass":    pass,
		"lines":   stats.Lines,
		"commits": stats.Commits,
	}).Debug("History pass finished")
}
