// Package gateway provides a gateway to the GitHub REST API,
// abstracting away the underlying go-github client.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"reflect"
	"time"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	"github.com/naka-gawa/github-stats-badge/internal/domain"
)

const (
	// PageSize is the per_page value sent with every listing request.
	PageSize = 100
	// MaxPages bounds pagination against an endpoint that never returns a short page.
	MaxPages = 1000

	userAgent = "github-stats-generator"
)

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	FetchRepositories(ctx context.Context, account string) ([]domain.Repository, error)
	FetchProfile(ctx context.Context, account string) (*domain.Profile, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	authenticated bool
	maxPages      int
	logger        *log.Logger
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// An empty token selects the public endpoints.
func NewGitHubGateway(token string, logger *log.Logger) (Fetcher, error) {
	transport, err := newRateLimitTransport(http.DefaultTransport, logger)
	if err != nil {
		return nil, err
	}
	return newGitHubGateway(transport, token, logger), nil
}

// newRateLimitTransport detects secondary rate limits without waiting or
// retrying: the zero sleep limit reports the limit through the callback, and
// the single-send base rejects the waiter's retry of an already-sent request.
func newRateLimitTransport(base http.RoundTripper, logger *log.Logger) (http.RoundTripper, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(newSingleSendTransport(base), github_ratelimit.WithSingleSleepLimit(0, onSecondaryRateLimit(logger)))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	return rateLimitWaiter, nil
}

func newGitHubGateway(base http.RoundTripper, token string, logger *log.Logger) *GitHubGateway {
	httpClient := &http.Client{Transport: base}
	if token != "" {
		httpClient.Transport = &oauth2.Transport{
			Base:   base,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		}
	}
	client := github.NewClient(httpClient)
	client.UserAgent = userAgent
	return &GitHubGateway{
		restClient:    client,
		authenticated: token != "",
		maxPages:      MaxPages,
		logger:        logger,
	}
}

func onSecondaryRateLimit(logger *log.Logger) github_ratelimit.OnSingleLimitExceeded {
	return func(cbContext *github_ratelimit.CallbackContext) {
		var until time.Time
		if cbContext.SleepUntil != nil {
			until = *cbContext.SleepUntil
		}
		url := ""
		if cbContext.Request != nil {
			url = cbContext.Request.URL.String()
		}
		logger.Printf("Secondary rate limit hit for %s (resets at %s), not retrying.", url, until.Format(time.RFC3339))
	}
}

// FetchRepositories returns every repository of the account in API order.
// With a credential it lists the authenticated user's owned repositories,
// including private ones; otherwise the public listing of account.
func (g *GitHubGateway) FetchRepositories(ctx context.Context, account string) ([]domain.Repository, error) {
	g.logger.Println("[1/2] Fetching repositories...")
	var all []domain.Repository
	for page := 1; ; page++ {
		if page > g.maxPages {
			return nil, fmt.Errorf("repository listing did not terminate after %d pages", g.maxPages)
		}
		repos, err := g.listPage(ctx, account, page)
		if isNonListBody(err) {
			g.logger.Printf("  Page %d is not a list, stopping.", page)
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list repositories: %w", wrapHTTPError(err))
		}
		for _, r := range repos {
			all = append(all, toRepository(r))
		}
		if len(repos) < PageSize {
			break
		}
		g.logger.Printf("  Fetching page %d of repositories...", page+1)
	}
	g.logger.Printf("Completed fetching %d repositories.", len(all))
	return all, nil
}

func (g *GitHubGateway) listPage(ctx context.Context, account string, page int) ([]*github.Repository, error) {
	listOpts := github.ListOptions{Page: page, PerPage: PageSize}
	if g.authenticated {
		repos, _, err := g.restClient.Repositories.ListByAuthenticatedUser(ctx, &github.RepositoryListByAuthenticatedUserOptions{
			Affiliation: "owner",
			ListOptions: listOpts,
		})
		return repos, err
	}
	repos, _, err := g.restClient.Repositories.ListByUser(ctx, account, &github.RepositoryListByUserOptions{
		ListOptions: listOpts,
	})
	return repos, err
}

// FetchProfile returns the authenticated user's profile when a credential is
// configured, else the public profile of account.
func (g *GitHubGateway) FetchProfile(ctx context.Context, account string) (*domain.Profile, error) {
	g.logger.Println("[2/2] Fetching account profile...")
	login := account
	if g.authenticated {
		login = ""
	}
	user, _, err := g.restClient.Users.Get(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", wrapHTTPError(err))
	}
	g.logger.Println("Completed fetching account profile.")
	return &domain.Profile{
		Login:     user.GetLogin(),
		Followers: user.GetFollowers(),
	}, nil
}

// isNonListBody reports whether err comes from a page whose top-level JSON
// value is not an array. Mistyped fields inside a list are not matched.
func isNonListBody(err error) bool {
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) {
		return false
	}
	return typeErr.Field == "" && typeErr.Type != nil && typeErr.Type.Kind() == reflect.Slice
}

func toRepository(r *github.Repository) domain.Repository {
	return domain.Repository{
		Name:    r.GetName(),
		Private: r.GetPrivate(),
		Stars:   r.GetStargazersCount(),
		Forks:   r.GetForksCount(),
	}
}
