// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/naka-gawa/github-devcard/internal/domain"
)

// RepositoryPageSize bounds the repository list to a single page.
const RepositoryPageSize = 100

// Fetcher defines the behavior of a gateway for fetching the signed-in user's data from GitHub.
// Every error it returns is a *domain.FetchError.
type Fetcher interface {
	FetchProfile(ctx context.Context) (*domain.RawProfile, error)
	FetchRepositories(ctx context.Context) ([]domain.RawRepository, error)
	FetchInsights(ctx context.Context, from, to time.Time) (*domain.RawInsights, error)
}

// NewFetcherFunc builds a Fetcher bound to one bearer token.
type NewFetcherFunc func(token string) (Fetcher, error)

// Options configures where the gateway sends its requests.
type Options struct {
	// APIURL and GraphQLURL override the public GitHub endpoints (GitHub Enterprise).
	APIURL     string
	GraphQLURL string
	// RateLimitSleep is the longest single sleep allowed on a secondary rate limit.
	RateLimitSleep time.Duration
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        logrus.FieldLogger
}

// insightsQuery fetches PR and issue totals plus the contribution calendar in one round trip.
type insightsQuery struct {
	Viewer struct {
		PullRequests struct {
			TotalCount int
		} `graphql:"pullRequests(states: [OPEN, MERGED, CLOSED], first: 1)"`
		Issues struct {
			TotalCount int
		} `graphql:"issues(states: [OPEN, CLOSED], first: 1)"`
		ContributionsCollection struct {
			ContributionCalendar struct {
				TotalContributions int
				Weeks              []struct {
					ContributionDays []struct {
						Date              string
						ContributionCount int
					}
				}
			}
		} `graphql:"contributionsCollection(from: $from, to: $to)"`
	}
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(token string, opts Options, logger logrus.FieldLogger) (Fetcher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(opts.RateLimitSleep, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}

	restClient := github.NewClient(httpClient)
	graphqlClient := githubv4.NewClient(httpClient)
	if opts.APIURL != "" {
		restClient, err = restClient.WithEnterpriseURLs(opts.APIURL, opts.APIURL)
		if err != nil {
			return nil, fmt.Errorf("failed to configure enterprise API URL: %w", err)
		}
	}
	if opts.GraphQLURL != "" {
		graphqlClient = githubv4.NewEnterpriseClient(opts.GraphQLURL, httpClient)
	}

	return &GitHubGateway{
		restClient:    restClient,
		graphqlClient: graphqlClient,
		logger:        logger,
	}, nil
}

// Factory returns a NewFetcherFunc that shares opts and logger across tokens.
func Factory(opts Options, logger logrus.FieldLogger) NewFetcherFunc {
	return func(token string) (Fetcher, error) {
		return NewGitHubGateway(token, opts, logger)
	}
}

// FetchProfile fetches the authenticated user's account record.
// A 401 means the provider token was revoked or expired upstream.
func (g *GitHubGateway) FetchProfile(ctx context.Context) (*domain.RawProfile, error) {
	g.logger.Debug("[1/3] Fetching profile using REST API...")
	user, resp, err := g.restClient.Users.Get(ctx, "")
	if err != nil {
		if statusCode(resp, err) == http.StatusUnauthorized {
			return nil, domain.NewFetchError(domain.KindSessionExpired, fmt.Errorf("failed to fetch profile: %w", err))
		}
		return nil, domain.NewFetchError(domain.KindUpstreamUnavailable, fmt.Errorf("failed to fetch profile: %w", err))
	}

	profile := &domain.RawProfile{
		Login:           user.GetLogin(),
		Name:            user.GetName(),
		AvatarURL:       user.GetAvatarURL(),
		Bio:             user.GetBio(),
		Company:         user.GetCompany(),
		Location:        user.GetLocation(),
		Blog:            user.GetBlog(),
		TwitterUsername: user.GetTwitterUsername(),
		CreatedAt:       user.GetCreatedAt().Time,
		PublicRepos:     user.GetPublicRepos(),
	}
	g.logger.WithField("login", profile.Login).Debug("Completed fetching profile.")
	return profile, nil
}

// FetchRepositories fetches the first page of the user's public repositories, most recently updated first.
func (g *GitHubGateway) FetchRepositories(ctx context.Context) ([]domain.RawRepository, error) {
	g.logger.Debug("[2/3] Fetching repositories using REST API...")
	opts := &github.RepositoryListByAuthenticatedUserOptions{
		Visibility:  "public",
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: RepositoryPageSize},
	}
	repos, _, err := g.restClient.Repositories.ListByAuthenticatedUser(ctx, opts)
	if err != nil {
		return nil, domain.NewFetchError(domain.KindUpstreamUnavailable, fmt.Errorf("failed to list repositories: %w", err))
	}

	result := make([]domain.RawRepository, 0, len(repos))
	for _, repo := range repos {
		result = append(result, domain.RawRepository{
			Name:        repo.GetName(),
			Language:    repo.GetLanguage(),
			Stars:       repo.GetStargazersCount(),
			Forks:       repo.GetForksCount(),
			URL:         repo.GetHTMLURL(),
			Description: repo.GetDescription(),
		})
	}
	g.logger.WithField("count", len(result)).Debug("Completed fetching repositories.")
	return result, nil
}

// FetchInsights runs the contribution query for the [from, to] window.
// Both transport failures and GraphQL-level errors are reported as insights failures.
func (g *GitHubGateway) FetchInsights(ctx context.Context, from, to time.Time) (*domain.RawInsights, error) {
	g.logger.Debug("[3/3] Fetching contribution insights using GraphQL API...")
	variables := map[string]interface{}{
		"from": githubv4.DateTime{Time: from},
		"to":   githubv4.DateTime{Time: to},
	}

	var q insightsQuery
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return nil, domain.NewFetchError(domain.KindInsightsUnavailable, fmt.Errorf("failed to execute GraphQL query for insights: %w", err))
	}

	calendar := q.Viewer.ContributionsCollection.ContributionCalendar
	insights := &domain.RawInsights{
		PullRequests:       q.Viewer.PullRequests.TotalCount,
		Issues:             q.Viewer.Issues.TotalCount,
		TotalContributions: calendar.TotalContributions,
		Weeks:              make([][]domain.ContributionDay, 0, len(calendar.Weeks)),
	}
	for _, week := range calendar.Weeks {
		days := make([]domain.ContributionDay, 0, len(week.ContributionDays))
		for _, day := range week.ContributionDays {
			days = append(days, domain.ContributionDay{Date: day.Date, Count: day.ContributionCount})
		}
		insights.Weeks = append(insights.Weeks, days)
	}
	g.logger.WithField("weeks", len(insights.Weeks)).Debug("Completed fetching contribution insights.")
	return insights, nil
}

// statusCode extracts the HTTP status of a failed REST call, or 0 for transport errors.
func statusCode(resp *github.Response, err error) int {
	if resp != nil && resp.Response != nil {
		return resp.StatusCode
	}
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		return errResp.Response.StatusCode
	}
	return 0
}
