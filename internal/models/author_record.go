package models

import (
	"sort"
	"strings"
)

// NormalizeIdentity turns a raw author email into the ledger key
func NormalizeIdentity(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CategoryCounts holds the line and file counters of one category
type CategoryCounts struct {
	LinesAdded    int `json:"lines_added"`
	LinesDeleted  int `json:"lines_deleted"`
	FilesAdded    int `json:"files_added"`
	FilesDeleted  int `json:"files_deleted"`
	FilesModified int `json:"files_modified"`
}

// AuthorRecord is the mutable per-author aggregate owned by the ledger.
// It is only written while the history streams are being consumed.
type AuthorRecord struct {
	Identity string
	Name     string

	CommitsNonMerge   int
	CommitsMerge      int
	CommitsBugfix     int
	CommitsCoauthored int
	ReviewsGiven      int
	FilesBinary       int
	TotalFilesChanged int

	Categories map[Category]*CategoryCounts
	DaysActive map[string]struct{}
	Files      map[string]struct{}

	FirstCommitDate string
	LastCommitDate  string
}

// NewAuthorRecord creates an empty record for a normalized identity
func NewAuthorRecord(identity string) *AuthorRecord {
	return &AuthorRecord{
		Identity:   identity,
		Categories: make(map[Category]*CategoryCounts),
		DaysActive: make(map[string]struct{}),
		Files:      make(map[string]struct{}),
	}
}

// SetNameOnce stores the display name unless one was already seen
func (r *AuthorRecord) SetNameOnce(name string) {
	if r.Name == "" {
		r.Name = name
	}
}

// RecordCommitDate adds an ISO date to the active days and widens the
// first/last commit window. ISO dates compare lexically in time order.
func (r *AuthorRecord) RecordCommitDate(date string) {
	if date == "" {
		return
	}
	r.DaysActive[date] = struct{}{}
	if r.FirstCommitDate == "" || date < r.FirstCommitDate {
		r.FirstCommitDate = date
	}
	if r.LastCommitDate == "" || date > r.LastCommitDate {
		r.LastCommitDate = date
	}
}

func (r *AuthorRecord) category(c Category) *CategoryCounts {
	counts, ok := r.Categories[c]
	if !ok {
		counts = &CategoryCounts{}
		r.Categories[c] = counts
	}
	return counts
}

// AddLines adds line counts to a category
func (r *AuthorRecord) AddLines(c Category, added, deleted int) {
	counts := r.category(c)
	counts.LinesAdded += added
	counts.LinesDeleted += deleted
}

// AddFileStatus increments the per-category counter matching status
func (r *AuthorRecord) AddFileStatus(c Category, status FileStatus) {
	counts := r.category(c)
	switch status {
	case FileStatusAdded:
		counts.FilesAdded++
	case FileStatusDeleted:
		counts.FilesDeleted++
	case FileStatusModified:
		counts.FilesModified++
	}
}

// TouchFile adds a path to the set of distinct files touched
func (r *AuthorRecord) TouchFile(path string) {
	r.Files[path] = struct{}{}
}

// Snapshot copies the record into an immutable AuthorStats value
func (r *AuthorRecord) Snapshot() AuthorStats {
	categories := make(map[Category]CategoryCounts, len(Categories))
	for _, c := range Categories {
		if counts, ok := r.Categories[c]; ok {
			categories[c] = *counts
		} else {
			categories[c] = CategoryCounts{}
		}
	}

	return AuthorStats{
		Identity:          r.Identity,
		Name:              r.Name,
		CommitsNonMerge:   r.CommitsNonMerge,
		CommitsMerge:      r.CommitsMerge,
		CommitsBugfix:     r.CommitsBugfix,
		CommitsCoauthored: r.CommitsCoauthored,
		ReviewsGiven:      r.ReviewsGiven,
		FilesBinary:       r.FilesBinary,
		TotalFilesChanged: r.TotalFilesChanged,
		Categories:        categories,
		DaysActive:        sortedKeys(r.DaysActive),
		Files:             sortedKeys(r.Files),
		FirstCommitDate:   r.FirstCommitDate,
		LastCommitDate:    r.LastCommitDate,
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
