package usecase

import (
	"strings"
	"time"

	"github.com/naka-gawa/github-devcard/internal/domain"
)

const (
	fallbackHandle    = "your-github"
	fallbackName      = "Showra Maker"
	fallbackAvatarURL = "/logo.png"
)

// Snapshot holds the three upstream responses of one successful fetch.
type Snapshot struct {
	Profile      *domain.RawProfile
	Repositories []domain.RawRepository
	Insights     *domain.RawInsights
}

// YearWindow returns the contribution window for now: January 1 of the current year through now.
func YearWindow(now time.Time) (from, to time.Time) {
	return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), now
}

// BuildViewModel assembles the card from a complete snapshot.
// It must only be called once all three upstream calls have succeeded.
func BuildViewModel(snap Snapshot, now time.Time) *domain.ViewModel {
	summary := SummarizeRepositories(snap.Repositories)

	from, to := YearWindow(now)
	heatmap := FillCalendar(FlattenCalendar(snap.Insights.Weeks), from, to)

	return &domain.ViewModel{
		Profile: cardProfile(snap.Profile),
		Stats: domain.CardStats{
			Repos:         snap.Profile.PublicRepos,
			Stars:         summary.Stars,
			Forks:         summary.Forks,
			PullRequests:  snap.Insights.PullRequests,
			Issues:        snap.Insights.Issues,
			Contributions: snap.Insights.TotalContributions,
		},
		Languages: summary.Languages,
		TopRepo:   summary.TopRepo,
		Heatmap:   heatmap,
		Timeline:  MonthlyRollup(heatmap),
	}
}

// FallbackViewModel is the card shown before any fetch has completed.
// It has the same shape as a built card with zero stats and empty series,
// and depends only on the session, so repeated calls are identical.
func FallbackViewModel(session *domain.Session) domain.ViewModel {
	profile := domain.CardProfile{
		Login:     fallbackHandle,
		Name:      fallbackName,
		AvatarURL: fallbackAvatarURL,
	}
	if session != nil {
		profile.Login = session.Handle
		profile.Name = session.DisplayName
		profile.AvatarURL = session.AvatarURL
	}
	return domain.ViewModel{
		Profile:   profile,
		Languages: []domain.LanguageShare{},
		Heatmap:   []domain.ContributionDay{},
		Timeline:  []domain.MonthlyPoint{},
	}
}

func cardProfile(p *domain.RawProfile) domain.CardProfile {
	name := p.Name
	if name == "" {
		name = p.Login
	}
	return domain.CardProfile{
		Login:           p.Login,
		Name:            name,
		AvatarURL:       p.AvatarURL,
		Bio:             p.Bio,
		Company:         p.Company,
		Location:        p.Location,
		Blog:            p.Blog,
		BlogHost:        blogHost(p.Blog),
		TwitterUsername: p.TwitterUsername,
		Joined:          joinDate(p.CreatedAt),
	}
}

func joinDate(createdAt time.Time) *domain.JoinDate {
	if createdAt.IsZero() {
		return nil
	}
	return &domain.JoinDate{Month: createdAt.Month().String()[:3], Year: createdAt.Year()}
}

func blogHost(blog string) string {
	host := strings.TrimPrefix(blog, "https://")
	return strings.TrimPrefix(host, "http://")
}
