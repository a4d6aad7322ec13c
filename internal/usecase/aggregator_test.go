package usecase

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/naka-gawa/github-stats-badge/internal/domain"
	"github.com/naka-gawa/github-stats-badge/internal/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockFetcher is a mock implementation of the gateway.Fetcher interface.
type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchRepositories(ctx context.Context, account string) ([]domain.Repository, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Repository), args.Error(1)
}

func (m *mockFetcher) FetchProfile(ctx context.Context, account string) (*domain.Profile, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

var _ gateway.Fetcher = (*mockFetcher)(nil)

var testRepos = []domain.Repository{
	{Name: "a", Private: true, Stars: 50, Forks: 3},
	{Name: "b", Stars: 7, Forks: 6},
}

func TestAggregator_Aggregate(t *testing.T) {
	testCases := []struct {
		name           string
		mockRepos      []domain.Repository
		mockReposErr   error
		mockProfile    *domain.Profile
		mockProfileErr error
		expectProfile  bool
		expected       *domain.Summary
		expectError    bool
	}{
		{
			name:          "happy path - repositories and profile",
			mockRepos:     testRepos,
			mockProfile:   &domain.Profile{Login: "alice", Followers: 4},
			expectProfile: true,
			expected: &domain.Summary{
				Account: "alice", TotalRepos: 2, PrivateCount: 1, Stars: 57, Forks: 9, Followers: 4,
				StarMean: 28.5, StarMedian: 28.5, MostStarred: "a",
			},
		},
		{
			name:           "profile failure is swallowed - followers zero",
			mockRepos:      testRepos,
			mockProfileErr: errors.New("network down"),
			expectProfile:  true,
			expected: &domain.Summary{
				Account: "alice", TotalRepos: 2, PrivateCount: 1, Stars: 57, Forks: 9, Followers: 0,
				StarMean: 28.5, StarMedian: 28.5, MostStarred: "a",
			},
		},
		{
			name:          "empty account",
			mockRepos:     []domain.Repository{},
			mockProfile:   &domain.Profile{Login: "alice"},
			expectProfile: true,
			expected:      &domain.Summary{Account: "alice"},
		},
		{
			name:         "error case - repository fetch fails, profile never requested",
			mockReposErr: &gateway.HTTPError{StatusCode: 500, Status: "500 Internal Server Error"},
			expectError:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fetcher := new(mockFetcher)
			fetcher.On("FetchRepositories", mock.Anything, "alice").Return(tc.mockRepos, tc.mockReposErr).Once()
			if tc.expectProfile {
				fetcher.On("FetchProfile", mock.Anything, "alice").Return(tc.mockProfile, tc.mockProfileErr).Once()
			}
			aggregator := NewAggregator(fetcher, log.New(io.Discard, "", 0))

			summary, err := aggregator.Aggregate(context.Background(), "alice")

			if tc.expectError {
				assert.Error(t, err)
				assert.Nil(t, summary)
				fetcher.AssertNotCalled(t, "FetchProfile", mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.expected, summary)
			}
			fetcher.AssertExpectations(t)
		})
	}
}

func TestAggregator_Aggregate_ProfileAfterRepositories(t *testing.T) {
	var order []string
	fetcher := new(mockFetcher)
	fetcher.On("FetchRepositories", mock.Anything, "alice").
		Run(func(mock.Arguments) { order = append(order, "repos") }).
		Return(testRepos, nil)
	fetcher.On("FetchProfile", mock.Anything, "alice").
		Run(func(mock.Arguments) { order = append(order, "profile") }).
		Return(&domain.Profile{Followers: 1}, nil)

	_, err := NewAggregator(fetcher, log.New(io.Discard, "", 0)).Aggregate(context.Background(), "alice")

	require.NoError(t, err)
	assert.Equal(t, []string{"repos", "profile"}, order)
}

func TestAggregator_Generate(t *testing.T) {
	t.Run("writes the badge, replacing existing content", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "stats.svg")
		require.NoError(t, os.WriteFile(path, []byte("stale content that is longer than nothing"), 0o644))

		fetcher := new(mockFetcher)
		fetcher.On("FetchRepositories", mock.Anything, "alice").Return(testRepos, nil)
		fetcher.On("FetchProfile", mock.Anything, "alice").Return(&domain.Profile{Followers: 4}, nil)

		summary, err := NewAggregator(fetcher, log.New(io.Discard, "", 0)).Generate(context.Background(), "alice", path)

		require.NoError(t, err)
		assert.Equal(t, 57, summary.Stars)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "stale")
		assert.Contains(t, string(data), "alice · GitHub Stats")
		assert.Contains(t, string(data), "private: 1")
	})

	t.Run("profile failure still writes output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "stats.svg")
		fetcher := new(mockFetcher)
		fetcher.On("FetchRepositories", mock.Anything, "alice").Return(testRepos, nil)
		fetcher.On("FetchProfile", mock.Anything, "alice").Return(nil, errors.New("boom"))

		summary, err := NewAggregator(fetcher, log.New(io.Discard, "", 0)).Generate(context.Background(), "alice", path)

		require.NoError(t, err)
		assert.Zero(t, summary.Followers)
		assert.FileExists(t, path)
	})

	t.Run("repository failure writes nothing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "stats.svg")
		fetcher := new(mockFetcher)
		fetcher.On("FetchRepositories", mock.Anything, "alice").Return(nil, errors.New("HTTP 502 Bad Gateway"))

		summary, err := NewAggregator(fetcher, log.New(io.Discard, "", 0)).Generate(context.Background(), "alice", path)

		assert.Error(t, err)
		assert.Nil(t, summary)
		assert.NoFileExists(t, path)
	})

	t.Run("missing output directory is not created", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "images")
		path := filepath.Join(dir, "stats.svg")
		fetcher := new(mockFetcher)
		fetcher.On("FetchRepositories", mock.Anything, "alice").Return(testRepos, nil)
		fetcher.On("FetchProfile", mock.Anything, "alice").Return(&domain.Profile{}, nil)

		summary, err := NewAggregator(fetcher, log.New(io.Discard, "", 0)).Generate(context.Background(), "alice", path)

		require.Error(t, err)
		assert.Nil(t, summary)
		assert.Contains(t, err.Error(), "failed to write")
		assert.NoDirExists(t, dir)
	})
}
