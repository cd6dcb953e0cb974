package models

import (
	"sort"
	"time"
)

// AuthorStats is a frozen copy of an AuthorRecord taken when the ledger is
// closed. Every derived metric is computed from these fields alone.
type AuthorStats struct {
	Identity string
	Name     string

	CommitsNonMerge   int
	CommitsMerge      int
	CommitsBugfix     int
	CommitsCoauthored int
	ReviewsGiven      int
	FilesBinary       int
	TotalFilesChanged int

	Categories map[Category]CategoryCounts
	DaysActive []string
	Files      []string

	FirstCommitDate string
	LastCommitDate  string
}

// CommitsTotal counts merge and non-merge commits
func (s AuthorStats) CommitsTotal() int {
	return s.CommitsNonMerge + s.CommitsMerge
}

func (s AuthorStats) sumCategories(pick func(CategoryCounts) int) int {
	total := 0
	for _, counts := range s.Categories {
		total += pick(counts)
	}
	return total
}

func (s AuthorStats) LinesAdded() int {
	return s.sumCategories(func(c CategoryCounts) int { return c.LinesAdded })
}

func (s AuthorStats) LinesDeleted() int {
	return s.sumCategories(func(c CategoryCounts) int { return c.LinesDeleted })
}

// LinesTotal is added plus deleted lines across all categories
func (s AuthorStats) LinesTotal() int {
	return s.LinesAdded() + s.LinesDeleted()
}

func (s AuthorStats) FilesAdded() int {
	return s.sumCategories(func(c CategoryCounts) int { return c.FilesAdded })
}

func (s AuthorStats) FilesDeleted() int {
	return s.sumCategories(func(c CategoryCounts) int { return c.FilesDeleted })
}

func (s AuthorStats) FilesModified() int {
	return s.sumCategories(func(c CategoryCounts) int { return c.FilesModified })
}

// FilesTouched is the number of distinct paths the author touched
func (s AuthorStats) FilesTouched() int {
	return len(s.Files)
}

func (s AuthorStats) DaysActiveCount() int {
	return len(s.DaysActive)
}

// LinesPerCommit averages changed lines over non-merge commits
func (s AuthorStats) LinesPerCommit() float64 {
	return Round(SafeDiv(float64(s.LinesTotal()), float64(s.CommitsNonMerge)), 2)
}

// CommitFrequency is non-merge commits per active day
func (s AuthorStats) CommitFrequency() float64 {
	return Round(SafeDiv(float64(s.CommitsNonMerge), float64(s.DaysActiveCount())), 2)
}

// ChurnRatio is deleted over added lines; lower means more net-new code
func (s AuthorStats) ChurnRatio() float64 {
	return Round(SafeDiv(float64(s.LinesDeleted()), float64(s.LinesAdded())), 2)
}

// FilesPerCommit averages changed files over non-merge commits
func (s AuthorStats) FilesPerCommit() float64 {
	return Round(SafeDiv(float64(s.TotalFilesChanged), float64(s.CommitsNonMerge)), 2)
}

// MergeRatio is the share of merge commits among all commits
func (s AuthorStats) MergeRatio() float64 {
	return SafeDiv(float64(s.CommitsMerge), float64(s.CommitsTotal()))
}

// BugfixRatio is the share of non-merge commits flagged as bug fixes
func (s AuthorStats) BugfixRatio() float64 {
	return SafeDiv(float64(s.CommitsBugfix), float64(s.CommitsNonMerge))
}

// ReviewParticipation counts reviews given plus co-authored commits
func (s AuthorStats) ReviewParticipation() int {
	return s.ReviewsGiven + s.CommitsCoauthored
}

// DaysSpan is the number of days between first and last commit
func (s AuthorStats) DaysSpan() int {
	if s.FirstCommitDate == "" || s.LastCommitDate == "" {
		return 0
	}
	first, err := time.Parse(time.DateOnly, s.FirstCommitDate)
	if err != nil {
		return 0
	}
	last, err := time.Parse(time.DateOnly, s.LastCommitDate)
	if err != nil {
		return 0
	}
	return int(last.Sub(first).Hours() / 24)
}

// LedgerSnapshot is the closed ledger: every author, sorted by identity
type LedgerSnapshot struct {
	Authors []AuthorStats
}

// NewLedgerSnapshot sorts authors by identity and wraps them
func NewLedgerSnapshot(authors []AuthorStats) *LedgerSnapshot {
	sorted := append([]AuthorStats(nil), authors...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Identity < sorted[j].Identity
	})
	return &LedgerSnapshot{Authors: sorted}
}

// Len returns the number of authors
func (s *LedgerSnapshot) Len() int {
	return len(s.Authors)
}

// Find looks an author up by normalized identity
func (s *LedgerSnapshot) Find(identity string) (AuthorStats, bool) {
	i := sort.Search(len(s.Authors), func(i int) bool {
		return s.Authors[i].Identity >= identity
	})
	if i < len(s.Authors) && s.Authors[i].Identity == identity {
		return s.Authors[i], true
	}
	return AuthorStats{}, false
}
