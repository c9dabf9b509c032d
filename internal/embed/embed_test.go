package embed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnippet(t *testing.T) {
	testCases := []struct {
		name        string
		orientation Orientation
		expected    string
	}{
		{
			name:        "vertical",
			orientation: Vertical,
			expected:    `<iframe src="https://showra.app/embed/devcard/octocat?layout=vertical" width="356" height="560" style="border:0;border-radius:28px;" loading="lazy"></iframe>`,
		},
		{
			name:        "horizontal",
			orientation: Horizontal,
			expected:    `<iframe src="https://showra.app/embed/devcard/octocat?layout=horizontal" width="720" height="360" style="border:0;border-radius:28px;" loading="lazy"></iframe>`,
		},
		{
			name:        "unknown orientation renders vertical",
			orientation: Orientation("diagonal"),
			expected:    `<iframe src="https://showra.app/embed/devcard/octocat?layout=vertical" width="356" height="560" style="border:0;border-radius:28px;" loading="lazy"></iframe>`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Snippet("https://showra.app", "octocat", tc.orientation)
			assert.Equal(t, tc.expected, got)
			assert.Equal(t, got, Snippet("https://showra.app", "octocat", tc.orientation))
		})
	}
}

func TestSize(t *testing.T) {
	assert.Equal(t, Size{Width: 356, Height: 560}, Vertical.Size())
	assert.Equal(t, Size{Width: 720, Height: 360}, Horizontal.Size())
}

func TestDownloadURL(t *testing.T) {
	assert.Equal(t, "https://showra.app/api/devcard/octocat?variant=horizontal", DownloadURL("https://showra.app", "octocat", Horizontal))
	assert.Equal(t, "https://showra.app/api/devcard/a%2Fb?variant=vertical", DownloadURL("https://showra.app", "a/b", Vertical))
}

func TestParseOrientation(t *testing.T) {
	o, err := ParseOrientation("horizontal")
	require.NoError(t, err)
	assert.Equal(t, Horizontal, o)

	_, err = ParseOrientation("square")
	assert.Error(t, err)
}
