package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/alimgiray/gitaudit/internal/models"
)

// HistoryPass names one of the four history traversals
type HistoryPass string

const (
	PassPrimary HistoryPass = "primary"
	PassMerges  HistoryPass = "merges"
	PassStatus  HistoryPass = "status"
	PassPaths   HistoryPass = "paths"
)

// HistoryPasses lists the traversals in execution order
var HistoryPasses = []HistoryPass{PassPrimary, PassMerges, PassStatus, PassPaths}

const primaryHeaderFormat = "%H%x09%an%x09%ae%x09%ad"

// GitRunner executes git in a working directory and returns its stdout
type GitRunner interface {
	Run(ctx context.Context, dir string, args ...string) ([]byte, error)
}

// GitCommandError carries the diagnostics of a git invocation that failed
type GitCommandError struct {
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git %s exited with code %d", strings.Join(e.Args, " "), e.ExitCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// ExecGitRunner runs the git binary found on PATH
type ExecGitRunner struct {
	Binary string
}

func NewExecGitRunner() *ExecGitRunner {
	return &ExecGitRunner{Binary: "git"}
}

func (r *ExecGitRunner) Run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, r.Binary, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return nil, &GitCommandError{
			Args:     args,
			ExitCode: exitCode,
			Stderr:   stderr.String(),
			Err:      err,
		}
	}
	return stdout.Bytes(), nil
}

// GitQueryBuilder renders the git log invocation of each traversal. Scope
// arguments always come last, unmodified.
type GitQueryBuilder struct {
	scope *models.AuditScope
}

func NewGitQueryBuilder(scope *models.AuditScope) *GitQueryBuilder {
	if scope == nil {
		scope = models.NewAuditScope()
	}
	return &GitQueryBuilder{scope: scope}
}

func (b *GitQueryBuilder) Args(pass HistoryPass) []string {
	args := []string{"-c", "core.quotepath=off", "log"}

	switch pass {
	case PassPrimary:
		args = append(args,
			"--numstat",
			"--date=short",
			"--format="+primaryHeaderFormat+"%n%B%n"+EndOfMessageSentinel,
		)
		if b.scope.ExcludeMerges {
			args = append(args, "--no-merges")
		}
	case PassMerges:
		args = append(args, "--merges", "--format=%ae")
	case PassStatus:
		args = append(args, "--name-status", "--no-merges", "--format=%ae")
	case PassPaths:
		args = append(args, "--name-only", "--format=%ae")
		if b.scope.ExcludeMerges {
			args = append(args, "--no-merges")
		}
	}

	return append(args, b.scope.Args()...)
}

// SplitLines splits git output into lines, dropping a trailing empty line
// and carriage returns.
func SplitLines(output []byte) []string {
	text := strings.ReplaceAll(string(output), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
