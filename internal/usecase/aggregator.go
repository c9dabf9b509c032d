// Package usecase contains the business logic of the application.
package usecase

import (
	"sort"
	"strings"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/github-devcard/internal/domain"
)

const (
	// MaxLanguages caps the language breakdown shown on the card.
	MaxLanguages = 6
	// MaxTimelineMonths caps the monthly rollup.
	MaxTimelineMonths = 12

	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
)

// RepositorySummary is everything derived from the repository list.
type RepositorySummary struct {
	Stars     int
	Forks     int
	Languages []domain.LanguageShare
	TopRepo   *domain.TopRepository
}

type languageCount struct {
	name  string
	count int
}

// SummarizeRepositories folds the repository list in a single pass into star and fork
// totals, the language breakdown and the most starred repository.
// An empty list yields zero totals, no languages and no top repository.
// Repositories without a declared language are skipped in the breakdown.
func SummarizeRepositories(repos []domain.RawRepository) RepositorySummary {
	var summary RepositorySummary
	var top *domain.RawRepository
	index := make(map[string]int)
	var counts []languageCount

	for i := range repos {
		repo := &repos[i]
		summary.Stars += repo.Stars
		summary.Forks += repo.Forks

		if key := strings.ToLower(strings.TrimSpace(repo.Language)); key != "" {
			if pos, ok := index[key]; ok {
				counts[pos].count++
			} else {
				index[key] = len(counts)
				counts = append(counts, languageCount{name: key, count: 1})
			}
		}

		// Strictly greater: the first repository wins ties.
		if top == nil || repo.Stars > top.Stars {
			top = repo
		}
	}

	// No declared language anywhere means no breakdown: the first repository has none to offer either.
	summary.Languages = languageShares(counts)

	if top != nil {
		summary.TopRepo = &domain.TopRepository{
			Name:        top.Name,
			Description: top.Description,
			Stars:       top.Stars,
			URL:         top.URL,
		}
	}
	return summary
}

// languageShares turns first-seen ordered counts into at most MaxLanguages rounded percentages.
func languageShares(counts []languageCount) []domain.LanguageShare {
	shares := []domain.LanguageShare{}
	if len(counts) == 0 {
		return shares
	}

	var total int
	for _, c := range counts {
		total += c.count
	}

	ranked := make([]languageCount, len(counts))
	copy(ranked, counts)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].count > ranked[j].count
	})
	if len(ranked) > MaxLanguages {
		ranked = ranked[:MaxLanguages]
	}

	roundedUp := make([]bool, len(ranked))
	var sum int
	for i, c := range ranked {
		exact := float64(c.count) / float64(total) * 100
		rounded, err := stats.Round(exact, 0)
		if err != nil {
			rounded = 0
		}
		roundedUp[i] = rounded > exact
		shares = append(shares, domain.LanguageShare{Name: c.name, Percentage: int(rounded)})
		sum += int(rounded)
	}

	// Half-up rounding can overshoot (3/8, 3/8, 2/8 -> 38+38+25); take the excess
	// back from the lowest ranked entries that were rounded up.
	for i := len(shares) - 1; i >= 0 && sum > 100; i-- {
		if roundedUp[i] {
			shares[i].Percentage--
			sum--
		}
	}
	return shares
}

// FlattenCalendar joins the weeks of the contribution calendar into one
// chronological sequence, keeping upstream order.
func FlattenCalendar(weeks [][]domain.ContributionDay) []domain.ContributionDay {
	days := []domain.ContributionDay{}
	for _, week := range weeks {
		days = append(days, week...)
	}
	return days
}

// FillCalendar returns one entry per calendar day from from through to, inclusive.
// Days the upstream calendar did not report count as zero; reported days outside
// the window are dropped.
func FillCalendar(days []domain.ContributionDay, from, to time.Time) []domain.ContributionDay {
	byDate := make(map[string]int, len(days))
	for _, d := range days {
		byDate[d.Date] = d.Count
	}

	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)

	filled := []domain.ContributionDay{}
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := day.Format(dayLayout)
		filled = append(filled, domain.ContributionDay{Date: key, Count: byDate[key]})
	}
	return filled
}

// MonthlyRollup sums the days per year-month, ordered ascending, keeping the most
// recent MaxTimelineMonths months.
func MonthlyRollup(days []domain.ContributionDay) []domain.MonthlyPoint {
	totals := make(map[string]int)
	for _, d := range days {
		if len(d.Date) < len(monthLayout) {
			continue
		}
		totals[d.Date[:len(monthLayout)]] += d.Count
	}

	keys := make([]string, 0, len(totals))
	for key := range totals {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	if len(keys) > MaxTimelineMonths {
		keys = keys[len(keys)-MaxTimelineMonths:]
	}

	points := make([]domain.MonthlyPoint, 0, len(keys))
	for _, key := range keys {
		points = append(points, domain.MonthlyPoint{Label: monthLabel(key), Total: totals[key]})
	}
	return points
}

func monthLabel(key string) string {
	month, err := time.Parse(monthLayout, key)
	if err != nil {
		return key
	}
	return month.Month().String()[:3]
}
