package session

import (
	"github.com/naka-gawa/github-devcard/internal/domain"
	"github.com/naka-gawa/github-devcard/internal/embed"
)

// Status is the fetch lifecycle phase.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// State is what the renderer reads.
//
// ViewModel is absent until a load succeeds and is cleared by a failed one; a retry
// keeps the previous view model until its result arrives. Card is always renderable: the loaded
// view model, or the fallback built from the session. Error is the user-facing
// message of the last failure and is never set together with ViewModel.
type State struct {
	Status      Status            `json:"status"`
	Session     *domain.Session   `json:"session,omitempty"`
	ViewModel   *domain.ViewModel `json:"viewModel,omitempty"`
	Card        domain.ViewModel  `json:"card"`
	Error       string            `json:"error,omitempty"`
	ErrorKind   *domain.ErrorKind `json:"errorKind,omitempty"`
	Orientation embed.Orientation `json:"orientation"`
	Copied      bool              `json:"copied"`
	EmbedCode   string            `json:"embedCode"`
	DownloadURL string            `json:"downloadUrl,omitempty"`
}

// IsLoading reports whether a load is in flight.
func (s State) IsLoading() bool {
	return s.Status == StatusLoading
}

// Settled reports whether the last load finished, successfully or not.
func (s State) Settled() bool {
	return s.Status == StatusSuccess || s.Status == StatusError
}
