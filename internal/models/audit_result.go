package models

import (
	"time"

	"github.com/google/uuid"
)

// AliasSuggestion pairs two identities that likely belong to one person
type AliasSuggestion struct {
	Identity   string  `json:"identity"`
	Candidate  string  `json:"candidate"`
	Similarity float64 `json:"similarity"`
}

// AuditResult is the outcome of one audit run
type AuditResult struct {
	RunID            string            `json:"run_id"`
	Repository       string            `json:"repository"`
	Rows             []EvaluationRow   `json:"rows"`
	Thresholds       Thresholds        `json:"thresholds"`
	Settings         *ScoreSettings    `json:"settings"`
	AliasSuggestions []AliasSuggestion `json:"alias_suggestions,omitempty"`
	GeneratedAt      time.Time         `json:"generated_at"`
}

// NewAuditResult creates a result with a fresh run id
func NewAuditResult(repository string, settings *ScoreSettings) *AuditResult {
	return &AuditResult{
		RunID:       uuid.New().String(),
		Repository:  repository,
		Settings:    settings,
		GeneratedAt: time.Now(),
	}
}
