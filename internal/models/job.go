package models

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus represents the status of a job
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusInProgress JobStatus = "in-progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// AuditRequest describes one audit submitted to the server
type AuditRequest struct {
	Repository         string   `json:"repository" binding:"required"`
	Refs               []string `json:"refs"`
	Since              string   `json:"since"`
	Until              string   `json:"until"`
	ExcludedFolders    []string `json:"excluded_folders"`
	ExcludedExtensions []string `json:"excluded_extensions"`
	IncludeMerges      bool     `json:"include_merges"`
	FixedThresholds    bool     `json:"fixed_thresholds"`
}

// Scope converts the request into an AuditScope
func (r *AuditRequest) Scope() *AuditScope {
	scope := NewAuditScope()
	scope.Refs = r.Refs
	scope.Since = r.Since
	scope.Until = r.Until
	scope.ExcludeMerges = !r.IncludeMerges
	for _, folder := range r.ExcludedFolders {
		scope.ExcludedFolders = append(scope.ExcludedFolders, NewExcludedFolder(folder))
	}
	for _, ext := range r.ExcludedExtensions {
		scope.ExcludedExtensions = append(scope.ExcludedExtensions, NewExcludedExtension(ext))
	}
	return scope
}

// Validate checks the exclusions carried by the request
func (r *AuditRequest) Validate() error {
	if r.Repository == "" {
		return &ValidationError{Field: "repository", Message: "Repository is required"}
	}
	scope := r.Scope()
	for _, folder := range scope.ExcludedFolders {
		if err := folder.Validate(); err != nil {
			return err
		}
	}
	for _, ext := range scope.ExcludedExtensions {
		if err := ext.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Job represents a queued audit
type Job struct {
	ID           string       `json:"id"`
	Request      AuditRequest `json:"request"`
	Status       JobStatus    `json:"status"`
	ErrorMessage *string      `json:"error_message,omitempty"`
	Result       *AuditResult `json:"result,omitempty"`
	StartedAt    *time.Time   `json:"started_at,omitempty"`
	CompletedAt  *time.Time   `json:"completed_at,omitempty"`
	WorkerID     *string      `json:"worker_id,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// NewJob creates a new Job with a generated UUID
func NewJob(request AuditRequest) *Job {
	now := time.Now()
	return &Job{
		ID:        uuid.New().String(),
		Request:   request,
		Status:    JobStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsPending checks if the job is pending
func (j *Job) IsPending() bool {
	return j.Status == JobStatusPending
}

// IsInProgress checks if the job is in progress
func (j *Job) IsInProgress() bool {
	return j.Status == JobStatusInProgress
}

// IsCompleted checks if the job is completed
func (j *Job) IsCompleted() bool {
	return j.Status == JobStatusCompleted
}

// IsFailed checks if the job is failed
func (j *Job) IsFailed() bool {
	return j.Status == JobStatusFailed
}

// MarkStarted marks the job as started by a worker
func (j *Job) MarkStarted(workerID string) {
	now := time.Now()
	j.Status = JobStatusInProgress
	j.StartedAt = &now
	j.WorkerID = &workerID
	j.UpdatedAt = now
}

// MarkCompleted stores the result and marks the job as completed
func (j *Job) MarkCompleted(result *AuditResult) {
	now := time.Now()
	j.Status = JobStatusCompleted
	j.Result = result
	j.CompletedAt = &now
	j.UpdatedAt = now
}

// MarkFailed records the error and marks the job as failed
func (j *Job) MarkFailed(message string) {
	now := time.Now()
	j.Status = JobStatusFailed
	j.ErrorMessage = &message
	j.CompletedAt = &now
	j.UpdatedAt = now
}
