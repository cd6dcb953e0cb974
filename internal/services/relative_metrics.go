package services

import (
	"github.com/alimgiray/gitaudit/internal/models"
)

// TeamTotals are the denominators of the team share percentages
type TeamTotals struct {
	Commits int
	Lines   int
	Files   int
}

// CalculateTeamTotals sums commits and lines and counts the union of
// touched files across the snapshot.
func CalculateTeamTotals(snapshot *models.LedgerSnapshot) TeamTotals {
	var totals TeamTotals
	files := make(map[string]struct{})
	for _, author := range snapshot.Authors {
		totals.Commits += author.CommitsTotal()
		totals.Lines += author.LinesTotal()
		for _, f := range author.Files {
			files[f] = struct{}{}
		}
	}
	totals.Files = len(files)
	return totals
}

// CalculateRelativeMetrics returns each author's share of the team totals,
// keyed by identity.
func CalculateRelativeMetrics(snapshot *models.LedgerSnapshot) map[string]models.RelativeMetrics {
	totals := CalculateTeamTotals(snapshot)
	metrics := make(map[string]models.RelativeMetrics, snapshot.Len())
	for _, author := range snapshot.Authors {
		metrics[author.Identity] = models.RelativeMetrics{
			CommitsTeamPct: sharePercent(author.CommitsTotal(), totals.Commits),
			LinesTeamPct:   sharePercent(author.LinesTotal(), totals.Lines),
			FilesTeamPct:   sharePercent(author.FilesTouched(), totals.Files),
		}
	}
	return metrics
}

func sharePercent(part, total int) float64 {
	return models.Round(100*models.SafeDiv(float64(part), float64(total)), 2)
}

// SharedFilesPercentages returns, per identity, the percentage of the
// author's touched files that at least one other author also touched.
func SharedFilesPercentages(snapshot *models.LedgerSnapshot) map[string]float64 {
	touchers := make(map[string]int)
	for _, author := range snapshot.Authors {
		for _, f := range author.Files {
			touchers[f]++
		}
	}

	shared := make(map[string]float64, snapshot.Len())
	for _, author := range snapshot.Authors {
		if len(author.Files) == 0 {
			shared[author.Identity] = 0
			continue
		}
		count := 0
		for _, f := range author.Files {
			if touchers[f] > 1 {
				count++
			}
		}
		shared[author.Identity] = models.Round(100*float64(count)/float64(len(author.Files)), 2)
	}
	return shared
}
