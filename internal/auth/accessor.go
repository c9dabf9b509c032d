// Package auth exposes the bearer token of the current session.
// The OAuth handshake itself belongs to the identity provider; this package
// only reads what it produced.
package auth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/naka-gawa/github-devcard/internal/domain"
)

// TokenGetter returns the bearer token for the current session or fails.
type TokenGetter interface {
	CurrentToken(ctx context.Context) (string, error)
}

// Accessor reads tokens from an oauth2.TokenSource supplied by the identity provider.
type Accessor struct {
	source oauth2.TokenSource
}

// NewAccessor creates an Accessor. A nil source behaves as a signed-out provider.
func NewAccessor(source oauth2.TokenSource) *Accessor {
	return &Accessor{source: source}
}

// NewStaticAccessor wraps a fixed token, as handed over by the CLI environment.
func NewStaticAccessor(token string) *Accessor {
	if token == "" {
		return NewAccessor(nil)
	}
	return NewAccessor(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
}

// CurrentToken returns a usable access token. Missing, empty or expired tokens
// are all reported as domain.ErrReauthenticationRequired.
func (a *Accessor) CurrentToken(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if a.source == nil {
		return "", domain.NewFetchError(domain.KindReauthenticationRequired, fmt.Errorf("no token source"))
	}
	tok, err := a.source.Token()
	if err != nil {
		return "", domain.NewFetchError(domain.KindReauthenticationRequired, fmt.Errorf("read provider token: %w", err))
	}
	if tok == nil || !tok.Valid() {
		return "", domain.NewFetchError(domain.KindReauthenticationRequired, fmt.Errorf("provider token missing or expired"))
	}
	return tok.AccessToken, nil
}
