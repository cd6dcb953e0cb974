package main

import (
	"bytes"
	"os"
	"testing"

	"github.com/alimgiray/gitaudit/internal/models"
	"github.com/alimgiray/gitaudit/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func captureRequest(t *testing.T, scoring *config.ScoringFile, args ...string) models.AuditRequest {
	t.Helper()

	var request models.AuditRequest
	app := newApp()
	app.Writer = &bytes.Buffer{}
	app.Action = func(c *cli.Context) error {
		request = auditRequest(c, scoring)
		return nil
	}
	require.NoError(t, app.Run(append([]string{"gitaudit"}, args...)))
	return request
}

func TestAuditRequestFromFlags(t *testing.T) {
	empty := &config.ScoringFile{Settings: models.NewScoreSettings()}

	tests := []struct {
		name    string
		scoring *config.ScoringFile
		args    []string
		want    models.AuditRequest
	}{
		{
			name:    "defaults",
			scoring: empty,
			want:    models.AuditRequest{Repository: ".", ExcludedFolders: []string{}, ExcludedExtensions: []string{}},
		},
		{
			name:    "positional repository wins",
			scoring: empty,
			args:    []string{"--repo", "ignored", "octocat/hello-world"},
			want:    models.AuditRequest{Repository: "octocat/hello-world", ExcludedFolders: []string{}, ExcludedExtensions: []string{}},
		},
		{
			name:    "scope flags",
			scoring: empty,
			args: []string{
				"--since", "2024-01-01", "--until", "2024-06-30",
				"--ref", "main", "--ref", "release",
				"--include-merges", "--fixed-thresholds",
			},
			want: models.AuditRequest{
				Repository:         ".",
				Refs:               []string{"main", "release"},
				Since:              "2024-01-01",
				Until:              "2024-06-30",
				ExcludedFolders:    []string{},
				ExcludedExtensions: []string{},
				IncludeMerges:      true,
				FixedThresholds:    true,
			},
		},
		{
			name: "exclusions merge with the scoring file",
			scoring: &config.ScoringFile{
				Settings:           models.NewScoreSettings(),
				ExcludedFolders:    []string{"vendor"},
				ExcludedExtensions: []string{".lock"},
			},
			args: []string{"--exclude-folder", "third_party", "--exclude-ext", "svg"},
			want: models.AuditRequest{
				Repository:         ".",
				ExcludedFolders:    []string{"vendor", "third_party"},
				ExcludedExtensions: []string{".lock", "svg"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GITAUDIT_FIXED_THRESHOLDS", "")
			os.Unsetenv("GITAUDIT_FIXED_THRESHOLDS")
			got := captureRequest(t, tt.scoring, tt.args...)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunAppRejectsBadFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown format", []string{"--format", "pdf"}, `unsupported format "pdf"`},
		{"xlsx without output", []string{"--format", "xlsx"}, "xlsx output needs --output"},
		{"bad exclusion", []string{"--exclude-ext", "a b"}, "extension"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newApp()
			app.Writer = &bytes.Buffer{}
			app.ExitErrHandler = func(*cli.Context, error) {}

			err := app.Run(append([]string{"gitaudit", "--quiet"}, tt.args...))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)

			var exitErr cli.ExitCoder
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.ExitCode())
		})
	}
}
