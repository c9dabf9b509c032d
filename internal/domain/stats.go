// Package domain contains the core data structures and domain logic for the application.
package domain

// LanguageShare is the rounded share of repositories declaring a language.
type LanguageShare struct {
	Name       string `json:"name"`
	Percentage int    `json:"percentage"`
}

// TopRepository is the most starred repository of the fetched set.
type TopRepository struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Stars       int    `json:"stars"`
	URL         string `json:"url"`
}

// MonthlyPoint is the contribution total for one calendar month.
type MonthlyPoint struct {
	Label string `json:"label"`
	Total int    `json:"total"`
}

// JoinDate is the month and year the account was created.
type JoinDate struct {
	Month string `json:"month"`
	Year  int    `json:"year"`
}

// CardProfile is the profile subset shown on the card.
type CardProfile struct {
	Login           string    `json:"login"`
	Name            string    `json:"name"`
	AvatarURL       string    `json:"avatarUrl"`
	Bio             string    `json:"bio,omitempty"`
	Company         string    `json:"company,omitempty"`
	Location        string    `json:"location,omitempty"`
	Blog            string    `json:"blog,omitempty"`
	BlogHost        string    `json:"blogHost,omitempty"`
	TwitterUsername string    `json:"twitterUsername,omitempty"`
	Joined          *JoinDate `json:"joined,omitempty"`
}

// CardStats is the numeric block of the card.
type CardStats struct {
	Repos         int `json:"repos"`
	Stars         int `json:"stars"`
	Forks         int `json:"forks"`
	PullRequests  int `json:"pullRequests"`
	Issues        int `json:"issues"`
	Contributions int `json:"contributions"`
}

// ViewModel is the renderer-ready DevCard.
// It is built in one piece and never mutated afterwards.
type ViewModel struct {
	Profile   CardProfile       `json:"profile"`
	Stats     CardStats         `json:"stats"`
	Languages []LanguageShare   `json:"languages"`
	TopRepo   *TopRepository    `json:"topRepo"`
	Heatmap   []ContributionDay `json:"heatmap"`
	Timeline  []MonthlyPoint    `json:"timeline"`
}
