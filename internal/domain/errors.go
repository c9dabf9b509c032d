package domain

import (
	"context"
	"errors"
	"fmt"
)

// ErrorKind classifies why a DevCard could not be loaded.
type ErrorKind int

const (
	KindUpstreamUnavailable ErrorKind = iota
	KindReauthenticationRequired
	KindSessionExpired
	KindInsightsUnavailable
)

var (
	ErrReauthenticationRequired = errors.New("reauthentication required")
	ErrSessionExpired           = errors.New("session expired")
	ErrUpstreamUnavailable      = errors.New("upstream unavailable")
	ErrInsightsUnavailable      = errors.New("insights unavailable")
)

var kindSentinels = map[ErrorKind]error{
	KindReauthenticationRequired: ErrReauthenticationRequired,
	KindSessionExpired:           ErrSessionExpired,
	KindUpstreamUnavailable:      ErrUpstreamUnavailable,
	KindInsightsUnavailable:      ErrInsightsUnavailable,
}

var kindMessages = map[ErrorKind]string{
	KindReauthenticationRequired: "Missing GitHub token. Please sign out and sign back in with GitHub.",
	KindSessionExpired:           "GitHub session expired. Please sign in again.",
	KindUpstreamUnavailable:      "Unable to fetch your GitHub profile at the moment.",
	KindInsightsUnavailable:      "Unable to fetch contribution insights.",
}

func (k ErrorKind) String() string {
	if sentinel, ok := kindSentinels[k]; ok {
		return sentinel.Error()
	}
	return "unknown"
}

func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Message is the text shown to the user for this kind.
func (k ErrorKind) Message() string {
	return kindMessages[k]
}

// FetchError is a classified failure produced at the upstream boundary.
// Err keeps the underlying cause for logs only.
type FetchError struct {
	Kind ErrorKind
	Err  error
}

// NewFetchError wraps err with the given classification.
func NewFetchError(kind ErrorKind, err error) *FetchError {
	return &FetchError{Kind: kind, Err: err}
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match a FetchError against the sentinel of its kind.
func (e *FetchError) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

// Message is the user-facing text; it never contains the cause.
func (e *FetchError) Message() string {
	return e.Kind.Message()
}

// ClassifyError returns the classification carried by err.
// Errors that were never classified count as upstream failures.
func ClassifyError(err error) ErrorKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	for kind, sentinel := range kindSentinels {
		if errors.Is(err, sentinel) {
			return kind
		}
	}
	return KindUpstreamUnavailable
}

// IsCanceled reports whether err only reflects the caller giving up.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}
