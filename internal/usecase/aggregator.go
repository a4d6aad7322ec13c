// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/naka-gawa/github-stats-badge/internal/domain"
	"github.com/naka-gawa/github-stats-badge/internal/gateway"
	"github.com/naka-gawa/github-stats-badge/internal/render"
)

// ProfileResult is the outcome of the best-effort profile lookup.
// Followers is zero whenever Err is set.
type ProfileResult struct {
	Followers int
	Err       error
}

// Aggregator is the use case for building the stats badge.
// It orchestrates fetching, aggregating and rendering.
type Aggregator struct {
	fetcher gateway.Fetcher
	logger  *log.Logger
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(fetcher gateway.Fetcher, logger *log.Logger) *Aggregator {
	return &Aggregator{
		fetcher: fetcher,
		logger:  logger,
	}
}

// Aggregate fetches every repository, then the profile, and summarizes them.
// Only a repository fetch failure is returned; the profile is best-effort.
func (a *Aggregator) Aggregate(ctx context.Context, account string) (*domain.Summary, error) {
	a.logger.Println("Usecase: Starting data aggregation...")

	repos, err := a.fetcher.FetchRepositories(ctx, account)
	if err != nil {
		return nil, err
	}

	profile := a.fetchProfile(ctx, account)
	if profile.Err != nil {
		a.logger.Printf("Usecase: Ignoring profile fetch failure, followers set to 0: %v", profile.Err)
	}

	summary := Summarize(account, repos, profile.Followers)
	a.logger.Println("Usecase: Aggregation complete.")
	return &summary, nil
}

func (a *Aggregator) fetchProfile(ctx context.Context, account string) ProfileResult {
	profile, err := a.fetcher.FetchProfile(ctx, account)
	if err != nil {
		return ProfileResult{Err: err}
	}
	if profile == nil {
		return ProfileResult{}
	}
	return ProfileResult{Followers: profile.Followers}
}

// Generate aggregates the account and writes the rendered badge to path,
// replacing any existing file. Nothing is written if aggregation fails.
// The parent directory must already exist.
func (a *Aggregator) Generate(ctx context.Context, account, path string) (*domain.Summary, error) {
	summary, err := a.Aggregate(ctx, account)
	if err != nil {
		return nil, err
	}

	svg, err := render.Render(*summary)
	if err != nil {
		return nil, fmt.Errorf("failed to render badge: %w", err)
	}
	if err := os.WriteFile(path, []byte(svg), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}
	a.logger.Printf("Usecase: Wrote %d bytes to %s.", len(svg), path)
	return summary, nil
}
