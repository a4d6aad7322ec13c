package usecase

import (
	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/github-stats-badge/internal/domain"
)

// Summarize reduces the fetched repositories into a badge summary.
// It has no side effects; followers is passed through unchanged.
func Summarize(account string, repos []domain.Repository, followers int) domain.Summary {
	summary := domain.Summary{
		Account:    account,
		TotalRepos: len(repos),
		Followers:  followers,
	}

	stars := make(stats.Float64Data, 0, len(repos))
	mostStars := -1
	for _, r := range repos {
		if r.Private {
			summary.PrivateCount++
		}
		summary.Stars += max(r.Stars, 0)
		summary.Forks += max(r.Forks, 0)
		stars = append(stars, float64(max(r.Stars, 0)))
		if r.Stars > mostStars {
			mostStars = r.Stars
			summary.MostStarred = r.Name
		}
	}

	if len(stars) == 0 {
		return summary
	}
	if mean, err := stats.Mean(stars); err == nil {
		summary.StarMean = mean
	}
	if median, err := stats.Median(stars); err == nil {
		summary.StarMedian = median
	}
	return summary
}
