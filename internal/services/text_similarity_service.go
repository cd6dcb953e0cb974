package services

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/alimgiray/gitaudit/internal/models"
)

type TextSimilarityService struct{}

func NewTextSimilarityService() *TextSimilarityService {
	return &TextSimilarityService{}
}

// CalculateSimilarity calculates the similarity between two strings
// Returns a value between 0 (completely different) and 1 (identical)
func (s *TextSimilarityService) CalculateSimilarity(str1, str2 string) float64 {
	if str1 == str2 {
		return 1.0
	}

	if len(str1) == 0 || len(str2) == 0 {
		return 0.0
	}

	// Normalize strings (lowercase, remove special chars)
	normalized1 := s.normalizeString(str1)
	normalized2 := s.normalizeString(str2)
	if normalized1 == "" || normalized2 == "" {
		return 0.0
	}

	distance := s.levenshteinDistance(normalized1, normalized2)
	maxLen := float64(max(len(normalized1), len(normalized2)))

	// Convert distance to similarity (0 = identical, 1 = completely different)
	similarity := 1.0 - (float64(distance) / maxLen)

	// Boost similarity for partial matches
	partialBoost := s.calculatePartialMatchBoost(normalized1, normalized2)
	return math.Min(1.0, similarity+partialBoost)
}

// CalculateEmailUsernameSimilarity compares the local part of an email with
// a handle such as a squashed display name.
func (s *TextSimilarityService) CalculateEmailUsernameSimilarity(email, username string) float64 {
	emailUsername := localPart(email)
	if emailUsername == "" || username == "" {
		return 0.0
	}

	baseSimilarity := s.CalculateSimilarity(emailUsername, username)
	patternBonus := s.calculatePatternBonus(emailUsername, username)

	return math.Min(1.0, baseSimilarity+patternBonus)
}

// SuggestAliases lists identity pairs whose email local parts or display
// names are at least minSimilarity alike. Results are sorted by similarity,
// highest first, then by identity.
func (s *TextSimilarityService) SuggestAliases(authors []models.AuthorStats, minSimilarity float64) []models.AliasSuggestion {
	var suggestions []models.AliasSuggestion

	for i := 0; i < len(authors); i++ {
		for j := i + 1; j < len(authors); j++ {
			a, b := authors[i], authors[j]
			if a.Identity == "" || b.Identity == "" {
				continue
			}

			similarity := s.identitySimilarity(a, b)
			if similarity < minSimilarity {
				continue
			}
			suggestions = append(suggestions, models.AliasSuggestion{
				Identity:   a.Identity,
				Candidate:  b.Identity,
				Similarity: models.Round(similarity, 3),
			})
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Similarity != suggestions[j].Similarity {
			return suggestions[i].Similarity > suggestions[j].Similarity
		}
		if suggestions[i].Identity != suggestions[j].Identity {
			return suggestions[i].Identity < suggestions[j].Identity
		}
		return suggestions[i].Candidate < suggestions[j].Candidate
	})

	return suggestions
}

func (s *TextSimilarityService) identitySimilarity(a, b models.AuthorStats) float64 {
	best := s.CalculateSimilarity(localPart(a.Identity), localPart(b.Identity))

	nameA := s.normalizeString(a.Name)
	nameB := s.normalizeString(b.Name)
	if nameA != "" && nameB != "" {
		best = math.Max(best, s.CalculateSimilarity(nameA, nameB))
	}
	if nameB != "" {
		best = math.Max(best, s.CalculateEmailUsernameSimilarity(a.Identity, nameB))
	}
	if nameA != "" {
		best = math.Max(best, s.CalculateEmailUsernameSimilarity(b.Identity, nameA))
	}
	return best
}

func localPart(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}

// normalizeString normalizes a string for comparison
func (s *TextSimilarityService) normalizeString(str string) string {
	str = strings.ToLower(str)

	// Remove special characters and keep only alphanumeric
	var result strings.Builder
	for _, r := range str {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// levenshteinDistance calculates the Levenshtein distance between two strings
func (s *TextSimilarityService) levenshteinDistance(str1, str2 string) int {
	len1, len2 := len(str1), len(str2)

	matrix := make([][]int, len1+1)
	for i := range matrix {
		matrix[i] = make([]int, len2+1)
	}

	for i := 0; i <= len1; i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len2; j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len1; i++ {
		for j := 1; j <= len2; j++ {
			if str1[i-1] == str2[j-1] {
				matrix[i][j] = matrix[i-1][j-1]
			} else {
				matrix[i][j] = min(
					matrix[i-1][j]+1,   // deletion
					matrix[i][j-1]+1,   // insertion
					matrix[i-1][j-1]+1, // substitution
				)
			}
		}
	}

	return matrix[len1][len2]
}

// calculatePartialMatchBoost gives bonus for partial matches
func (s *TextSimilarityService) calculatePartialMatchBoost(str1, str2 string) float64 {
	boost := 0.0

	if strings.Contains(str1, str2) || strings.Contains(str2, str1) {
		boost += 0.2
	}

	// Check for common prefixes
	minLen := min(len(str1), len(str2))
	commonPrefix := 0
	for i := 0; i < minLen && str1[i] == str2[i]; i++ {
		commonPrefix++
	}
	if commonPrefix > 0 {
		boost += float64(commonPrefix) / float64(max(len(str1), len(str2))) * 0.1
	}

	return boost
}

// calculatePatternBonus gives bonus for common email patterns
func (s *TextSimilarityService) calculatePatternBonus(emailUsername, username string) float64 {
	bonus := 0.0

	if emailUsername == username {
		bonus += 0.3
	}

	affixes := []string{"dev", "admin", "user", "test", "demo", "temp"}
	for _, affix := range affixes {
		if strings.HasSuffix(emailUsername, affix) && strings.TrimSuffix(emailUsername, affix) == username {
			bonus += 0.2
		}
		if strings.HasPrefix(emailUsername, affix) && strings.TrimPrefix(emailUsername, affix) == username {
			bonus += 0.2
		}
	}

	// Check for username with dots or underscores
	for _, sep := range []string{".", "_"} {
		if !strings.Contains(emailUsername, sep) {
			continue
		}
		for _, part := range strings.Split(emailUsername, sep) {
			if part == username {
				bonus += 0.15
			}
		}
	}

	return bonus
}
