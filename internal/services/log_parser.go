package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alimgiray/gitaudit/internal/models"
	"github.com/alimgiray/gitaudit/pkg/logger"
)

// EndOfMessageSentinel terminates the message body of every commit block in
// the primary history stream.
const EndOfMessageSentinel = "__GITAUDIT_END_OF_MESSAGE__"

const binaryCountMarker = "-"

type parserState int

const (
	stateAwaitingHeader parserState = iota
	stateInMessage
	stateInChanges
)

func (s parserState) String() string {
	switch s {
	case stateAwaitingHeader:
		return "awaiting-header"
	case stateInMessage:
		return "in-message"
	case stateInChanges:
		return "in-changes"
	default:
		return "unknown"
	}
}

// ParseStats summarises one pass over a history stream
type ParseStats struct {
	Lines           int `json:"lines"`
	Commits         int `json:"commits"`
	ChangeLines     int `json:"change_lines"`
	BinaryChanges   int `json:"binary_changes"`
	MalformedCounts int `json:"malformed_counts"`
	IgnoredLines    int `json:"ignored_lines"`
}

// LogStreamParser consumes the primary history stream: commit headers,
// message bodies closed by the sentinel, and numstat change lines.
type LogStreamParser struct {
	ledger     *AuthorLedger
	classifier *FileClassifier

	state   parserState
	author  *models.AuthorRecord
	message []string
	stats   ParseStats
}

func NewLogStreamParser(ledger *AuthorLedger, classifier *FileClassifier) *LogStreamParser {
	return &LogStreamParser{
		ledger:     ledger,
		classifier: classifier,
		state:      stateAwaitingHeader,
	}
}

// Parse feeds every line through the state machine. A commit whose
// sentinel is missing at end of input is closed as if it had been seen.
func (p *LogStreamParser) Parse(lines []string) (ParseStats, error) {
	for _, line := range lines {
		p.stats.Lines++
		if err := p.consume(line); err != nil {
			return p.stats, err
		}
	}

	if p.state == stateInMessage {
		if err := p.closeMessage(); err != nil {
			return p.stats, err
		}
	}
	p.state = stateAwaitingHeader
	return p.stats, nil
}

func (p *LogStreamParser) consume(line string) error {
	switch p.state {
	case stateAwaitingHeader:
		if header, ok := decodeHeaderLine(line); ok {
			return p.openCommit(header)
		}
		p.stats.IgnoredLines++
		logger.WithField("state", p.state.String()).Debug("ignoring line outside a commit block")

	case stateInMessage:
		if strings.TrimRight(line, "\r") == EndOfMessageSentinel {
			return p.closeMessage()
		}
		p.message = append(p.message, line)

	case stateInChanges:
		if header, ok := decodeHeaderLine(line); ok {
			return p.openCommit(header)
		}
		if change, ok := decodeChangeLine(line); ok {
			p.applyChange(change)
			return nil
		}
		p.stats.IgnoredLines++
		logger.WithField("state", p.state.String()).Debug("ignoring unrecognised line")
	}
	return nil
}

type commitHeader struct {
	ID    string
	Name  string
	Email string
	Date  string
}

// decodeHeaderLine accepts lines with exactly three tab separators
func decodeHeaderLine(line string) (commitHeader, bool) {
	line = strings.TrimRight(line, "\r")
	if strings.Count(line, "\t") != 3 {
		return commitHeader{}, false
	}
	fields := strings.Split(line, "\t")
	return commitHeader{
		ID:    fields[0],
		Name:  fields[1],
		Email: fields[2],
		Date:  strings.TrimSpace(fields[3]),
	}, true
}

type changeLine struct {
	Added   string
	Deleted string
	Path    string
}

// decodeChangeLine accepts lines with exactly two tab separators
func decodeChangeLine(line string) (changeLine, bool) {
	line = strings.TrimRight(line, "\r")
	if line == "" || strings.Count(line, "\t") != 2 {
		return changeLine{}, false
	}
	fields := strings.Split(line, "\t")
	return changeLine{Added: fields[0], Deleted: fields[1], Path: fields[2]}, true
}

func (c changeLine) isBinary() bool {
	return c.Added == binaryCountMarker && c.Deleted == binaryCountMarker
}

// openCommit starts a commit block. A header without an author email is
// skipped along with its message and change lines.
func (p *LogStreamParser) openCommit(header commitHeader) error {
	if models.NormalizeIdentity(header.Email) == "" {
		p.author = nil
		p.state = stateAwaitingHeader
		p.stats.IgnoredLines++
		logger.WithField("commit", header.ID).Debug("skipping commit without author email")
		return nil
	}

	record, err := p.ledger.Record(header.Email)
	if err != nil {
		return fmt.Errorf("failed to record commit %s: %w", header.ID, err)
	}

	record.SetNameOnce(header.Name)
	record.CommitsNonMerge++
	record.RecordCommitDate(header.Date)

	p.author = record
	p.message = p.message[:0]
	p.state = stateInMessage
	p.stats.Commits++
	return nil
}

func (p *LogStreamParser) closeMessage() error {
	p.state = stateInChanges
	message := strings.Join(p.message, "\n")

	if IsBugfix(message) {
		p.author.CommitsBugfix++
	}

	for _, trailer := range ExtractTrailers(message) {
		other, err := p.ledger.Record(trailer.Identity)
		if err != nil {
			return fmt.Errorf("failed to record trailer identity: %w", err)
		}
		if other == p.author {
			continue
		}
		if trailer.IsReview() {
			other.ReviewsGiven++
			continue
		}
		p.author.CommitsCoauthored++
		other.CommitsCoauthored++
	}
	return nil
}

func (p *LogStreamParser) applyChange(change changeLine) {
	p.stats.ChangeLines++
	p.author.TotalFilesChanged++

	if change.isBinary() {
		p.author.FilesBinary++
		p.stats.BinaryChanges++
		return
	}

	category, _ := p.classifier.Classify(change.Path)
	p.author.AddLines(category, p.parseCount(change.Added), p.parseCount(change.Deleted))
}

// parseCount converts a numstat count, contributing zero when malformed
func (p *LogStreamParser) parseCount(field string) int {
	n, err := strconv.Atoi(strings.TrimSpace(field))
	if err != nil || n < 0 {
		p.stats.MalformedCounts++
		logger.WithField("field", field).Debug("non-numeric change count treated as zero")
		return 0
	}
	return n
}
