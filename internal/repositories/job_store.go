package repositories

import (
	"errors"
	"sort"
	"sync"

	"github.com/alimgiray/gitaudit/internal/models"
)

// ErrJobNotFound is returned for unknown job ids
var ErrJobNotFound = errors.New("job not found")

// JobStore keeps audit jobs in memory for the lifetime of the process.
// Jobs handed out are copies; callers persist changes through Update.
type JobStore struct {
	mu   sync.RWMutex
	jobs map[string]*models.Job
}

func NewJobStore() *JobStore {
	return &JobStore{jobs: make(map[string]*models.Job)}
}

// Create stores a new job
func (s *JobStore) Create(job *models.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[job.ID]; exists {
		return errors.New("job already exists")
	}
	stored := *job
	s.jobs[job.ID] = &stored
	return nil
}

// GetByID retrieves a job by ID
func (s *JobStore) GetByID(id string) (*models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, ErrJobNotFound
	}
	copied := *job
	return &copied, nil
}

// ClaimNextPending marks the oldest pending job as started by workerID and
// returns it. It returns nil when nothing is pending.
func (s *JobStore) ClaimNextPending(workerID string) (*models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var next *models.Job
	for _, job := range s.jobs {
		if !job.IsPending() {
			continue
		}
		if next == nil || job.CreatedAt.Before(next.CreatedAt) ||
			(job.CreatedAt.Equal(next.CreatedAt) && job.ID < next.ID) {
			next = job
		}
	}
	if next == nil {
		return nil, nil
	}

	next.MarkStarted(workerID)
	copied := *next
	return &copied, nil
}

// Update replaces the stored job
func (s *JobStore) Update(job *models.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[job.ID]; !ok {
		return ErrJobNotFound
	}
	stored := *job
	s.jobs[job.ID] = &stored
	return nil
}

// List returns all jobs, newest first
func (s *JobStore) List() []*models.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := make([]*models.Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		copied := *job
		jobs = append(jobs, &copied)
	}
	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})
	return jobs
}
