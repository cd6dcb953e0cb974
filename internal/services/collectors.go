package services

import (
	"fmt"
	"strings"

	"github.com/alimgiray/gitaudit/internal/models"
)

// isIdentityLine is the author-line heuristic shared by the status and path
// traversals: an "@" and a "." with no whitespace or slashes. Tabs are
// rejected so status lines naming such a file are not taken for authors.
func isIdentityLine(line string) bool {
	return strings.Contains(line, "@") &&
		strings.Contains(line, ".") &&
		!strings.ContainsAny(line, " \t/")
}

// MergeCollector counts merge commits from a stream of one author email per
// merge commit.
type MergeCollector struct {
	ledger *AuthorLedger
}

func NewMergeCollector(ledger *AuthorLedger) *MergeCollector {
	return &MergeCollector{ledger: ledger}
}

func (c *MergeCollector) Collect(lines []string) (ParseStats, error) {
	var stats ParseStats
	for _, line := range lines {
		stats.Lines++
		email := strings.TrimSpace(line)
		if email == "" {
			stats.IgnoredLines++
			continue
		}
		record, err := c.ledger.Record(email)
		if err != nil {
			return stats, fmt.Errorf("failed to record merge author: %w", err)
		}
		record.CommitsMerge++
		stats.Commits++
	}
	return stats, nil
}

type statusLine struct {
	Status models.FileStatus
	Path   string
}

// decodeStatusLine reads "STATUS\tpath" or "STATUS\tsource\tdestination".
// The destination path is the last field.
func decodeStatusLine(line string) (statusLine, bool) {
	line = strings.TrimRight(line, "\r")
	if line == "" || !strings.Contains(line, "\t") {
		return statusLine{}, false
	}
	fields := strings.Split(line, "\t")
	status, ok := models.ParseFileStatus(strings.TrimSpace(fields[0]))
	if !ok {
		return statusLine{}, false
	}
	return statusLine{Status: status, Path: fields[len(fields)-1]}, true
}

// StatusCollector counts added, deleted and modified files per author and
// per category from the name-status traversal.
type StatusCollector struct {
	ledger     *AuthorLedger
	classifier *FileClassifier
}

func NewStatusCollector(ledger *AuthorLedger, classifier *FileClassifier) *StatusCollector {
	return &StatusCollector{ledger: ledger, classifier: classifier}
}

func (c *StatusCollector) Collect(lines []string) (ParseStats, error) {
	var stats ParseStats
	var current *models.AuthorRecord

	for _, line := range lines {
		stats.Lines++
		if isIdentityLine(line) {
			record, err := c.ledger.Record(line)
			if err != nil {
				return stats, fmt.Errorf("failed to record status author: %w", err)
			}
			current = record
			stats.Commits++
			continue
		}
		if current == nil {
			stats.IgnoredLines++
			continue
		}
		entry, ok := decodeStatusLine(line)
		if !ok {
			stats.IgnoredLines++
			continue
		}
		category, _ := c.classifier.Classify(entry.Path)
		current.AddFileStatus(category, entry.Status)
		stats.ChangeLines++
	}
	return stats, nil
}

// decodePathLine accepts non-blank lines containing a "/" or a "."
func decodePathLine(line string) (string, bool) {
	path := strings.TrimSpace(line)
	if path == "" || !strings.ContainsAny(path, "/.") {
		return "", false
	}
	return path, true
}

// PathCollector unions the paths of the name-only traversal into each
// author's touched file set.
type PathCollector struct {
	ledger *AuthorLedger
}

func NewPathCollector(ledger *AuthorLedger) *PathCollector {
	return &PathCollector{ledger: ledger}
}

func (c *PathCollector) Collect(lines []string) (ParseStats, error) {
	var stats ParseStats
	var current *models.AuthorRecord

	for _, line := range lines {
		stats.Lines++
		if isIdentityLine(line) {
			record, err := c.ledger.Record(line)
			if err != nil {
				return stats, fmt.Errorf("failed to record path author: %w", err)
			}
			current = record
			stats.Commits++
			continue
		}
		if current == nil {
			stats.IgnoredLines++
			continue
		}
		path, ok := decodePathLine(line)
		if !ok {
			stats.IgnoredLines++
			continue
		}
		current.TouchFile(path)
		stats.ChangeLines++
	}
	return stats, nil
}
