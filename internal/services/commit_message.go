package services

import (
	"regexp"
	"strings"

	"github.com/alimgiray/gitaudit/internal/models"
)

// TrailerKind identifies a recognised commit message trailer
type TrailerKind string

const (
	TrailerReviewedBy   TrailerKind = "reviewed-by"
	TrailerCoAuthoredBy TrailerKind = "co-authored-by"
	TrailerAckedBy      TrailerKind = "acked-by"
)

// Trailer is one trailer occurrence with the identity it names
type Trailer struct {
	Kind     TrailerKind
	Identity string
}

// IsReview reports whether the trailer credits a review
func (t Trailer) IsReview() bool {
	return t.Kind == TrailerReviewedBy || t.Kind == TrailerAckedBy
}

var bugfixKeywords = []string{
	"fix",
	"bug",
	"issue #",
	"hotfix",
	"patch",
	"resolve",
	"closes #",
	"repair",
	"fixes #",
	"defect",
	"regression",
}

var trailerPattern = regexp.MustCompile(`(?i)\b(reviewed-by|co-authored-by|acked-by):[^\n]*?<?([a-z0-9._%+\-]+@[a-z0-9.\-]+)>?`)

// IsBugfix reports whether a commit message looks like a bug fix. It is a
// plain case-insensitive substring test, so "prefix" also matches "fix".
func IsBugfix(message string) bool {
	lower := strings.ToLower(message)
	for _, keyword := range bugfixKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// ExtractTrailers returns every review, ack and co-author trailer in message
// in order of appearance. Duplicates are kept.
func ExtractTrailers(message string) []Trailer {
	matches := trailerPattern.FindAllStringSubmatch(message, -1)
	if len(matches) == 0 {
		return nil
	}

	trailers := make([]Trailer, 0, len(matches))
	for _, m := range matches {
		identity := models.NormalizeIdentity(strings.TrimRight(m[2], "."))
		if identity == "" {
			continue
		}
		trailers = append(trailers, Trailer{
			Kind:     TrailerKind(strings.ToLower(m[1])),
			Identity: identity,
		})
	}
	return trailers
}
