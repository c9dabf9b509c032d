package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/naka-gawa/github-devcard/internal/domain"
)

type tokenSourceFunc func() (*oauth2.Token, error)

func (f tokenSourceFunc) Token() (*oauth2.Token, error) { return f() }

func TestAccessor_CurrentToken(t *testing.T) {
	testCases := []struct {
		name        string
		accessor    *Accessor
		expected    string
		expectError bool
	}{
		{
			name:     "happy path - static token",
			accessor: NewStaticAccessor("gho_valid"),
			expected: "gho_valid",
		},
		{
			name:        "error case - empty token",
			accessor:    NewStaticAccessor(""),
			expectError: true,
		},
		{
			name: "error case - expired token",
			accessor: NewAccessor(oauth2.StaticTokenSource(&oauth2.Token{
				AccessToken: "gho_old",
				Expiry:      time.Now().Add(-time.Hour),
			})),
			expectError: true,
		},
		{
			name: "error case - provider fails",
			accessor: NewAccessor(tokenSourceFunc(func() (*oauth2.Token, error) {
				return nil, errors.New("refresh failed")
			})),
			expectError: true,
		},
		{
			name: "error case - provider returns nil token",
			accessor: NewAccessor(tokenSourceFunc(func() (*oauth2.Token, error) {
				return nil, nil
			})),
			expectError: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			token, err := tc.accessor.CurrentToken(context.Background())
			if tc.expectError {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrReauthenticationRequired)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.expected, token)
			}
		})
	}
}

func TestAccessor_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewStaticAccessor("gho_valid").CurrentToken(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
