package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/go-github/v57/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGitHubService(t *testing.T, serverURL string) *GitHubRepositoryService {
	t.Helper()
	client := github.NewClient(nil)
	baseURL, err := url.Parse(serverURL + "/")
	require.NoError(t, err)
	client.BaseURL = baseURL
	return NewGitHubRepositoryServiceWithClient(client)
}

func TestParseGitHubSlug(t *testing.T) {
	testCases := []struct {
		source string
		owner  string
		name   string
		ok     bool
	}{
		{"owner/repo", "owner", "repo", true},
		{"owner/repo.git", "owner", "repo", true},
		{"https://github.com/owner/repo", "owner", "repo", true},
		{"https://github.com/owner/repo.git", "owner", "repo", true},
		{"git@github.com:owner/my.repo.git", "owner", "my.repo", true},
		{"https://gitlab.com/owner/repo", "", "", false},
		{"just-a-name", "", "", false},
		{"a/b/c", "", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.source, func(t *testing.T) {
			owner, name, ok := ParseGitHubSlug(tc.source)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.owner, owner)
			assert.Equal(t, tc.name, name)
		})
	}
}

func TestGitHubRepositoryServiceResolve(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/acme/widgets" {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message": "Not Found"}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"id": 42,
			"name": "widgets",
			"full_name": "acme/widgets",
			"description": "Widget factory",
			"html_url": "https://github.com/acme/widgets",
			"clone_url": "https://github.com/acme/widgets.git",
			"language": "Go",
			"stargazers_count": 12,
			"forks_count": 3,
			"private": true,
			"default_branch": "main",
			"pushed_at": "2024-05-01T10:00:00Z"
		}`)
	}))
	defer server.Close()

	service := newTestGitHubService(t, server.URL)

	t.Run("Existing repository", func(t *testing.T) {
		repo, err := service.Resolve(context.Background(), "acme", "widgets")
		require.NoError(t, err)

		assert.Equal(t, int64(42), repo.GithubID)
		assert.Equal(t, "acme/widgets", repo.FullName)
		assert.Equal(t, "https://github.com/acme/widgets.git", repo.CloneURL)
		assert.Equal(t, "Widget factory", *repo.Description)
		assert.Equal(t, "Go", *repo.Language)
		assert.Equal(t, "main", *repo.DefaultBranch)
		assert.Equal(t, 12, repo.Stars)
		assert.Equal(t, 3, repo.Forks)
		assert.True(t, repo.Private)
		require.NotNil(t, repo.GithubPushedAt)
		assert.Equal(t, 2024, repo.GithubPushedAt.Year())
		assert.NotEmpty(t, repo.ID)
	})

	t.Run("Missing repository", func(t *testing.T) {
		_, err := service.Resolve(context.Background(), "acme", "missing")
		assert.ErrorContains(t, err, "acme/missing")
	})
}

func TestCreateGitHubClient(t *testing.T) {
	assert.NotNil(t, createGitHubClient(""))
	assert.NotNil(t, createGitHubClient("token"))
	assert.NotNil(t, NewGitHubRepositoryService("").client)
}
