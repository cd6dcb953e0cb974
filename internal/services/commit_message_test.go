package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBugfix(t *testing.T) {
	testCases := []struct {
		message  string
		expected bool
	}{
		{"Fix bug #123", true},
		{"HOTFIX: crash on start", true},
		{"Resolve race in scheduler", true},
		{"Closes #42", true},
		{"Add prefix handling", true},
		{"Add user avatars", false},
		{"", false},
	}

	for _, tc := range testCases {
		t.Run(tc.message, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsBugfix(tc.message))
		})
	}
}

func TestExtractTrailers(t *testing.T) {
	testCases := []struct {
		name     string
		message  string
		expected []Trailer
	}{
		{
			name:    "Review with display name",
			message: "Tidy config\n\nReviewed-by: Jane <jane@x.com>",
			expected: []Trailer{
				{Kind: TrailerReviewedBy, Identity: "jane@x.com"},
			},
		},
		{
			name:    "Mixed case and bare address",
			message: "Work\n\nco-authored-by: Sam.Doe@Example.org\nACKED-BY: Lee <lee@example.org>",
			expected: []Trailer{
				{Kind: TrailerCoAuthoredBy, Identity: "sam.doe@example.org"},
				{Kind: TrailerAckedBy, Identity: "lee@example.org"},
			},
		},
		{
			name:    "Trailing period is dropped",
			message: "Reviewed-by: ops@example.com.",
			expected: []Trailer{
				{Kind: TrailerReviewedBy, Identity: "ops@example.com"},
			},
		},
		{
			name:    "Duplicates are kept",
			message: "Reviewed-by: a@b.io\nReviewed-by: a@b.io",
			expected: []Trailer{
				{Kind: TrailerReviewedBy, Identity: "a@b.io"},
				{Kind: TrailerReviewedBy, Identity: "a@b.io"},
			},
		},
		{
			name:     "Trailer without an address",
			message:  "Reviewed-by: the team",
			expected: nil,
		},
		{
			name:     "Unrelated trailer",
			message:  "Signed-off-by: Bob <bob@x.com>",
			expected: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ExtractTrailers(tc.message))
		})
	}
}

func TestTrailerIsReview(t *testing.T) {
	assert.True(t, Trailer{Kind: TrailerReviewedBy}.IsReview())
	assert.True(t, Trailer{Kind: TrailerAckedBy}.IsReview())
	assert.False(t, Trailer{Kind: TrailerCoAuthoredBy}.IsReview())
}
