package workers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/alimgiray/gitaudit/pkg/logger"
)

// WorkerManager runs a pool of audit workers over one job queue
type WorkerManager struct {
	workers      []Worker
	queue        JobQueue
	runner       AuditRunner
	sink         ResultSink
	stats        AuditStats
	pollInterval time.Duration
	wg           sync.WaitGroup
	ctx          context.Context
	cancel       context.CancelFunc
}

// NewWorkerManager creates a worker manager; sink may be nil
func NewWorkerManager(queue JobQueue, runner AuditRunner, sink ResultSink, pollInterval time.Duration) *WorkerManager {
	ctx, cancel := context.WithCancel(context.Background())
	return &WorkerManager{
		workers:      make([]Worker, 0),
		queue:        queue,
		runner:       runner,
		sink:         sink,
		pollInterval: pollInterval,
		ctx:          ctx,
		cancel:       cancel,
	}
}

// SetStats makes every worker started afterwards report to stats
func (wm *WorkerManager) SetStats(stats AuditStats) {
	wm.stats = stats
}

// StartAll starts count audit workers
func (wm *WorkerManager) StartAll(count int) error {
	if count <= 0 {
		return fmt.Errorf("worker count must be positive, got %d", count)
	}

	for i := 0; i < count; i++ {
		worker := NewAuditWorker(fmt.Sprintf("audit-%d", i+1), wm.queue, wm.runner, wm.sink, wm.pollInterval)
		worker.stats = wm.stats
		wm.workers = append(wm.workers, worker)
		wm.startWorker(worker)
	}

	logger.Infof("Started %d audit workers", len(wm.workers))
	return nil
}

// StopAll gracefully stops all workers and waits for running jobs
func (wm *WorkerManager) StopAll() error {
	logger.Info("Stopping all workers...")

	wm.cancel()
	for _, worker := range wm.workers {
		if err := worker.Stop(); err != nil {
			logger.WithError(err).WithField("worker_id", worker.GetWorkerID()).Error("Error stopping worker")
		}
	}
	wm.wg.Wait()

	logger.Info("All workers stopped")
	return nil
}

func (wm *WorkerManager) startWorker(worker Worker) {
	wm.wg.Add(1)
	go func() {
		defer wm.wg.Done()
		if err := worker.Start(wm.ctx); err != nil && err != context.Canceled {
			logger.WithError(err).WithField("worker_id", worker.GetWorkerID()).Error("Worker stopped with error")
		}
	}()
}

// GetWorkerStatus returns the running state of every worker
func (wm *WorkerManager) GetWorkerStatus() map[string]bool {
	status := make(map[string]bool)
	for _, worker := range wm.workers {
		if audit, ok := worker.(*AuditWorker); ok {
			status[worker.GetWorkerID()] = audit.IsRunning()
		} else {
			status[worker.GetWorkerID()] = false
		}
	}
	return status
}
