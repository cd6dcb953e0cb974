package models

import (
	"time"

	"github.com/google/uuid"
)

// EmailMerge folds one author identity into another
type EmailMerge struct {
	ID          string    `json:"id"`
	SourceEmail string    `json:"source_email" yaml:"source"` // The email being merged (will be hidden)
	TargetEmail string    `json:"target_email" yaml:"target"` // The email to merge into (will be shown)
	CreatedAt   time.Time `json:"created_at" yaml:"-"`
}

// NewEmailMerge creates a new email merge with a generated UUID
func NewEmailMerge(sourceEmail, targetEmail string) *EmailMerge {
	return &EmailMerge{
		ID:          uuid.New().String(),
		SourceEmail: NormalizeIdentity(sourceEmail),
		TargetEmail: NormalizeIdentity(targetEmail),
		CreatedAt:   time.Now(),
	}
}

func (m *EmailMerge) Validate() error {
	if m.SourceEmail == "" {
		return &ValidationError{Field: "source_email", Message: "Source email is required"}
	}
	if m.TargetEmail == "" {
		return &ValidationError{Field: "target_email", Message: "Target email is required"}
	}
	if m.SourceEmail == m.TargetEmail {
		return &ValidationError{Field: "target_email", Message: "Cannot merge an email into itself"}
	}
	return nil
}
