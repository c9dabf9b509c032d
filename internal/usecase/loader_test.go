package usecase

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-devcard/internal/auth"
	"github.com/naka-gawa/github-devcard/internal/domain"
	"github.com/naka-gawa/github-devcard/internal/gateway"
)

// mockFetcher is a mock implementation of the gateway.Fetcher interface.
// It allows us to simulate the behavior of the GitHub gateway without making real API calls.
type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchProfile(ctx context.Context) (*domain.RawProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RawProfile), args.Error(1)
}

func (m *mockFetcher) FetchRepositories(ctx context.Context) ([]domain.RawRepository, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RawRepository), args.Error(1)
}

func (m *mockFetcher) FetchInsights(ctx context.Context, from, to time.Time) (*domain.RawInsights, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RawInsights), args.Error(1)
}

func discardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// TestLoader_Load uses a table-driven approach to test the all-or-fail barrier.
func TestLoader_Load(t *testing.T) {
	now := time.Date(2026, time.February, 2, 10, 0, 0, 0, time.UTC)
	from := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	snap := testSnapshot()

	testCases := []struct {
		name            string
		mockProfile     *domain.RawProfile
		mockRepos       []domain.RawRepository
		mockInsights    *domain.RawInsights
		mockProfileErr  error
		mockReposErr    error
		mockInsightsErr error
		expectedErr     error
	}{
		{
			name:         "happy path - all three calls succeed",
			mockProfile:  snap.Profile,
			mockRepos:    snap.Repositories,
			mockInsights: snap.Insights,
		},
		{
			name:           "error case - profile 401",
			mockProfileErr: domain.NewFetchError(domain.KindSessionExpired, errors.New("401")),
			mockRepos:      snap.Repositories,
			mockInsights:   snap.Insights,
			expectedErr:    domain.ErrSessionExpired,
		},
		{
			name:         "error case - repositories fail",
			mockProfile:  snap.Profile,
			mockReposErr: domain.NewFetchError(domain.KindUpstreamUnavailable, errors.New("500")),
			mockInsights: snap.Insights,
			expectedErr:  domain.ErrUpstreamUnavailable,
		},
		{
			name:            "error case - insights fail although REST calls succeed",
			mockProfile:     snap.Profile,
			mockRepos:       snap.Repositories,
			mockInsightsErr: domain.NewFetchError(domain.KindInsightsUnavailable, errors.New("graphql: Something went wrong")),
			expectedErr:     domain.ErrInsightsUnavailable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Arrange ---
			fetcher := new(mockFetcher)
			fetcher.On("FetchProfile", mock.Anything).Return(tc.mockProfile, tc.mockProfileErr).Maybe()
			fetcher.On("FetchRepositories", mock.Anything).Return(tc.mockRepos, tc.mockReposErr).Maybe()
			fetcher.On("FetchInsights", mock.Anything, from, now).Return(tc.mockInsights, tc.mockInsightsErr).Maybe()

			var gotToken string
			loader := NewLoader(auth.NewStaticAccessor("gho_abc"), func(token string) (gateway.Fetcher, error) {
				gotToken = token
				return fetcher, nil
			}, discardLogger())
			loader.now = func() time.Time { return now }

			// --- Act ---
			vm, err := loader.Load(context.Background(), domain.NewSession("u-1", "", "octocat", "", ""))

			// --- Assert ---
			assert.Equal(t, "gho_abc", gotToken)
			if tc.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Nil(t, vm)
			} else {
				require.NoError(t, err)
				require.NotNil(t, vm)
				assert.Equal(t, BuildViewModel(snap, now), vm)
				fetcher.AssertExpectations(t)
			}
		})
	}
}

func TestLoader_Load_MissingToken(t *testing.T) {
	called := false
	loader := NewLoader(auth.NewStaticAccessor(""), func(string) (gateway.Fetcher, error) {
		called = true
		return nil, nil
	}, discardLogger())

	vm, err := loader.Load(context.Background(), domain.NewSession("u-1", "", "octocat", "", ""))

	assert.ErrorIs(t, err, domain.ErrReauthenticationRequired)
	assert.Nil(t, vm)
	assert.False(t, called, "no upstream call without a token")
}

func TestLoader_Load_GatewayConstructionFails(t *testing.T) {
	loader := NewLoader(auth.NewStaticAccessor("gho_abc"), func(string) (gateway.Fetcher, error) {
		return nil, errors.New("bad transport")
	}, discardLogger())

	_, err := loader.Load(context.Background(), domain.NewSession("u-1", "", "octocat", "", ""))

	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}
