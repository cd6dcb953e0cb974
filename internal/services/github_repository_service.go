package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/alimgiray/gitaudit/internal/models"
	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

var githubSlugPattern = regexp.MustCompile(`^([A-Za-z0-9][A-Za-z0-9\-]*)/([A-Za-z0-9_.\-]+)$`)

var githubURLPattern = regexp.MustCompile(`^(?:https?://github\.com/|git@github\.com:)([\w\-]+)/([\w\-.]+?)(?:\.git)?/?$`)

// ParseGitHubSlug extracts owner and name from "owner/repo" or a GitHub URL
func ParseGitHubSlug(source string) (owner, name string, ok bool) {
	source = strings.TrimSpace(source)
	if m := githubSlugPattern.FindStringSubmatch(source); m != nil {
		return m[1], strings.TrimSuffix(m[2], ".git"), true
	}
	if m := githubURLPattern.FindStringSubmatch(source); m != nil {
		return m[1], m[2], true
	}
	return "", "", false
}

// GitHubRepositoryService resolves repository metadata from the GitHub API
type GitHubRepositoryService struct {
	client *github.Client
}

// NewGitHubRepositoryService creates a service; an empty token uses
// unauthenticated requests.
func NewGitHubRepositoryService(token string) *GitHubRepositoryService {
	return &GitHubRepositoryService{client: createGitHubClient(token)}
}

// NewGitHubRepositoryServiceWithClient wraps a preconfigured client
func NewGitHubRepositoryServiceWithClient(client *github.Client) *GitHubRepositoryService {
	return &GitHubRepositoryService{client: client}
}

// createGitHubClient creates a GitHub client with the provided token
func createGitHubClient(token string) *github.Client {
	if token == "" {
		return github.NewClient(nil)
	}
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(context.Background(), ts)
	return github.NewClient(tc)
}

// Resolve fetches clone URL and default branch for owner/name
func (s *GitHubRepositoryService) Resolve(ctx context.Context, owner, name string) (*models.GitHubRepository, error) {
	repo, _, err := s.client.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get GitHub repository %s/%s: %w", owner, name, err)
	}
	return createGitHubRepositoryFromAPI(repo), nil
}

// createGitHubRepositoryFromAPI creates a new GitHubRepository from GitHub API data
func createGitHubRepositoryFromAPI(repo *github.Repository) *models.GitHubRepository {
	githubRepo := models.NewGitHubRepository(
		repo.GetID(),
		repo.GetName(),
		repo.GetFullName(),
		repo.GetHTMLURL(),
		repo.GetCloneURL(),
	)

	// Set optional fields
	if repo.Description != nil {
		githubRepo.Description = repo.Description
	}
	if repo.Language != nil {
		githubRepo.Language = repo.Language
	}
	githubRepo.Stars = repo.GetStargazersCount()
	githubRepo.Forks = repo.GetForksCount()
	githubRepo.Private = repo.GetPrivate()
	if repo.DefaultBranch != nil {
		githubRepo.DefaultBranch = repo.DefaultBranch
	}
	if repo.PushedAt != nil {
		githubRepo.GithubPushedAt = &repo.PushedAt.Time
	}

	return githubRepo
}
