package models

import (
	"time"

	"github.com/google/uuid"
)

// GitHubRepository is the metadata resolved for an audited GitHub project
type GitHubRepository struct {
	ID             string     `json:"id"`
	GithubID       int64      `json:"github_id"`
	Name           string     `json:"name"`
	FullName       string     `json:"full_name"`
	Description    *string    `json:"description"`
	URL            string     `json:"url"`
	CloneURL       string     `json:"clone_url"`
	Language       *string    `json:"language"`
	Stars          int        `json:"stars"`
	Forks          int        `json:"forks"`
	Private        bool       `json:"private"`
	DefaultBranch  *string    `json:"default_branch"`
	GithubPushedAt *time.Time `json:"github_pushed_at"`
	ResolvedAt     time.Time  `json:"resolved_at"`
}

// NewGitHubRepository creates a new GitHubRepository with a generated UUID
func NewGitHubRepository(githubID int64, name, fullName, url, cloneURL string) *GitHubRepository {
	return &GitHubRepository{
		ID:         uuid.New().String(),
		GithubID:   githubID,
		Name:       name,
		FullName:   fullName,
		URL:        url,
		CloneURL:   cloneURL,
		ResolvedAt: time.Now(),
	}
}
