package domain

import (
	"fmt"
	"net/url"
	"time"
)

const (
	defaultDisplayName = "Showra Maker"
	defaultHandle      = "maker"
	defaultAvatarSeed  = "showra"
	avatarSeedURL      = "https://api.dicebear.com/7.x/initials/svg?seed=%s"
)

// Session is the signed-in identity handed to the dashboard by the auth collaborator.
type Session struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	Handle      string `json:"handle"`
	AvatarURL   string `json:"avatarUrl"`
	Email       string `json:"email,omitempty"`
}

// NewSession fills the display fields the identity provider left empty.
func NewSession(userID, displayName, handle, avatarURL, email string) Session {
	if displayName == "" {
		displayName = firstNonEmpty(email, defaultDisplayName)
	}
	if avatarURL == "" {
		// Only a provider handle seeds the avatar; the email never ends up in the URL.
		avatarURL = fmt.Sprintf(avatarSeedURL, url.QueryEscape(firstNonEmpty(handle, defaultAvatarSeed)))
	}
	if handle == "" {
		handle = firstNonEmpty(email, defaultHandle)
	}
	return Session{
		UserID:      userID,
		DisplayName: displayName,
		Handle:      handle,
		AvatarURL:   avatarURL,
		Email:       email,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// RawProfile is the upstream account record of the authenticated user.
type RawProfile struct {
	Login           string
	Name            string
	AvatarURL       string
	Bio             string
	Company         string
	Location        string
	Blog            string
	TwitterUsername string
	CreatedAt       time.Time
	PublicRepos     int
}

// RawRepository is one entry of the authenticated user's repository list.
type RawRepository struct {
	Name        string
	Language    string
	Stars       int
	Forks       int
	URL         string
	Description string
}

// ContributionDay is a single cell of the contribution calendar.
type ContributionDay struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// RawInsights is the result of the structured contribution query.
type RawInsights struct {
	PullRequests       int
	Issues             int
	TotalContributions int
	// Weeks keeps the upstream calendar shape: weeks of chronologically ordered days.
	Weeks [][]ContributionDay
}
