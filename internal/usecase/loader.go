package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/github-devcard/internal/auth"
	"github.com/naka-gawa/github-devcard/internal/domain"
	"github.com/naka-gawa/github-devcard/internal/gateway"
)

// Loader is the use case for loading a DevCard.
// It orchestrates the fetching and building of the view model.
type Loader struct {
	credentials auth.TokenGetter
	newFetcher  gateway.NewFetcherFunc
	logger      logrus.FieldLogger
	now         func() time.Time
}

// NewLoader creates a new Loader instance.
func NewLoader(credentials auth.TokenGetter, newFetcher gateway.NewFetcherFunc, logger logrus.FieldLogger) *Loader {
	return &Loader{
		credentials: credentials,
		newFetcher:  newFetcher,
		logger:      logger,
		now:         time.Now,
	}
}

// Load fetches profile, repositories and insights for the session concurrently and
// builds the view model. If any call fails the whole load fails with that call's
// classified error and no view model is built.
func (l *Loader) Load(ctx context.Context, session domain.Session) (*domain.ViewModel, error) {
	logger := l.logger.WithField("user_id", session.UserID)
	logger.Debug("Usecase: Starting DevCard load...")

	token, err := l.credentials.CurrentToken(ctx)
	if err != nil {
		return nil, err
	}
	fetcher, err := l.newFetcher(token)
	if err != nil {
		return nil, domain.NewFetchError(domain.KindUpstreamUnavailable, fmt.Errorf("failed to create GitHub gateway: %w", err))
	}

	now := l.now()
	from, to := YearWindow(now)
	var snap Snapshot

	// Use an errgroup to fetch all data concurrently.
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		var err error
		snap.Profile, err = fetcher.FetchProfile(egCtx)
		return err
	})

	eg.Go(func() error {
		var err error
		snap.Repositories, err = fetcher.FetchRepositories(egCtx)
		return err
	})

	eg.Go(func() error {
		var err error
		snap.Insights, err = fetcher.FetchInsights(egCtx, from, to)
		return err
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	logger.Debug("Usecase: All data fetched successfully.")

	vm := BuildViewModel(snap, now)
	logger.WithFields(logrus.Fields{
		"login":     vm.Profile.Login,
		"languages": len(vm.Languages),
		"days":      len(vm.Heatmap),
	}).Debug("Usecase: DevCard built.")
	return vm, nil
}
