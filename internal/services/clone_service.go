package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/alimgiray/gitaudit/pkg/logger"
)

// ErrInvalidRepositoryURL is returned for sources that are neither a local
// directory, a git URL nor a GitHub owner/repo shorthand.
var ErrInvalidRepositoryURL = errors.New("invalid git repository url")

var gitURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^https?://github\.com/[\w\-]+/[\w\-.]+(?:\.git)?$`),
	regexp.MustCompile(`(?i)^git@github\.com:[\w\-]+/[\w\-.]+(?:\.git)?$`),
	regexp.MustCompile(`(?i)^https?://gitlab\.com/[\w\-]+/[\w\-.]+(?:\.git)?$`),
	regexp.MustCompile(`(?i)^git@gitlab\.com:[\w\-]+/[\w\-.]+(?:\.git)?$`),
	regexp.MustCompile(`(?i)^https?://\S+\.git$`),
	regexp.MustCompile(`(?i)^git@\S+\.git$`),
}

// IsValidGitURL reports whether url looks like a clonable git remote
func IsValidGitURL(url string) bool {
	url = strings.TrimSpace(url)
	for _, pattern := range gitURLPatterns {
		if pattern.MatchString(url) {
			return true
		}
	}
	return false
}

// CloneService turns a repository source into a local working copy
type CloneService struct {
	runner        GitRunner
	github        *GitHubRepositoryService
	cloneBasePath string
}

// NewCloneService creates a clone service. An empty cloneBasePath uses the
// system temp directory; github may be nil to disable shorthand resolution.
func NewCloneService(runner GitRunner, github *GitHubRepositoryService, cloneBasePath string) *CloneService {
	return &CloneService{
		runner:        runner,
		github:        github,
		cloneBasePath: cloneBasePath,
	}
}

// Acquire returns a directory holding the repository and a cleanup func.
// Local directories are used in place and their cleanup does nothing;
// remote sources are cloned into a temporary directory that cleanup removes.
func (s *CloneService) Acquire(ctx context.Context, source string) (string, func(), error) {
	source = strings.TrimSpace(source)
	if source == "" || source == "." {
		return ".", func() {}, nil
	}

	if info, err := os.Stat(source); err == nil && info.IsDir() {
		return source, func() {}, nil
	}

	cloneURL, err := s.resolveCloneURL(ctx, source)
	if err != nil {
		return "", nil, err
	}

	if s.cloneBasePath != "" {
		if err := os.MkdirAll(s.cloneBasePath, 0755); err != nil {
			return "", nil, fmt.Errorf("failed to create clones directory: %w", err)
		}
	}
	dir, err := os.MkdirTemp(s.cloneBasePath, "gitaudit-")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create clone directory: %w", err)
	}
	cleanup := func() {
		logger.WithField("dir", dir).Info("Cleaning up temporary clone")
		if err := os.RemoveAll(dir); err != nil {
			logger.WithError(err).Warnf("failed to remove %s", dir)
		}
	}

	logger.WithField("url", cloneURL).Info("Cloning repository")
	if _, err := s.runner.Run(ctx, "", "clone", "--quiet", cloneURL, dir); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to clone repository: %w", err)
	}

	return dir, cleanup, nil
}

func (s *CloneService) resolveCloneURL(ctx context.Context, source string) (string, error) {
	if IsValidGitURL(source) {
		return source, nil
	}
	if owner, name, ok := ParseGitHubSlug(source); ok && s.github != nil {
		repo, err := s.github.Resolve(ctx, owner, name)
		if err != nil {
			return "", err
		}
		return repo.CloneURL, nil
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidRepositoryURL, source)
}
