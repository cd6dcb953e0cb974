package services

import (
	"errors"

	"github.com/alimgiray/gitaudit/internal/models"
)

// ErrLedgerClosed is returned when a closed ledger is asked for a record
var ErrLedgerClosed = errors.New("author ledger is closed")

// AuthorLedger holds one record per author identity while the history
// traversals run. It is not safe for concurrent use; traversals feed it one
// after another.
type AuthorLedger struct {
	records  map[string]*models.AuthorRecord
	resolver *IdentityResolver
	snapshot *models.LedgerSnapshot
}

func NewAuthorLedger(resolver *IdentityResolver) *AuthorLedger {
	return &AuthorLedger{
		records:  make(map[string]*models.AuthorRecord),
		resolver: resolver,
	}
}

// Record returns the record for email, creating it on first reference
func (l *AuthorLedger) Record(email string) (*models.AuthorRecord, error) {
	if l.snapshot != nil {
		return nil, ErrLedgerClosed
	}

	identity := l.resolver.Resolve(email)
	record, ok := l.records[identity]
	if !ok {
		record = models.NewAuthorRecord(identity)
		l.records[identity] = record
	}
	return record, nil
}

// Len returns the number of identities seen so far
func (l *AuthorLedger) Len() int {
	return len(l.records)
}

// Closed reports whether Close has been called
func (l *AuthorLedger) Closed() bool {
	return l.snapshot != nil
}

// Close freezes the ledger and returns its snapshot. Calling Close again
// returns the same snapshot.
func (l *AuthorLedger) Close() *models.LedgerSnapshot {
	if l.snapshot != nil {
		return l.snapshot
	}

	authors := make([]models.AuthorStats, 0, len(l.records))
	for _, record := range l.records {
		authors = append(authors, record.Snapshot())
	}
	l.snapshot = models.NewLedgerSnapshot(authors)
	return l.snapshot
}
