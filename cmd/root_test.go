package cmd

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-devcard/internal/config"
	"github.com/naka-gawa/github-devcard/internal/embed"
)

func newFlagCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	c.Flags().BoolP("verbose", "v", false, "")
	c.Flags().String("base-url", "", "")
	require.NoError(t, c.Flags().Parse(args))
	return c
}

func TestBaseURL(t *testing.T) {
	cfg := &config.Config{Card: config.CardConfig{BaseURL: "https://showra.app"}}

	testCases := []struct {
		name     string
		args     []string
		expected string
	}{
		{name: "configured origin", expected: "https://showra.app"},
		{name: "flag wins", args: []string{"--base-url", "http://localhost:3000"}, expected: "http://localhost:3000"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, baseURL(newFlagCommand(t, tc.args...), cfg))
		})
	}
}

func TestNewLogger(t *testing.T) {
	cfg := &config.Config{Log: config.LogConfig{Level: logrus.DebugLevel}}

	quiet := newLogger(newFlagCommand(t), cfg)
	assert.Equal(t, io.Discard, quiet.Out)
	assert.Equal(t, logrus.DebugLevel, quiet.GetLevel())

	verbose := newLogger(newFlagCommand(t, "-v"), cfg)
	assert.Equal(t, os.Stderr, verbose.Out)
	assert.Equal(t, logrus.DebugLevel, verbose.GetLevel())
}

func TestCommandsRegistered(t *testing.T) {
	names := make([]string, 0)
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "card")
	assert.Contains(t, names, "embed")
}

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestEmbedCommand(t *testing.T) {
	t.Setenv("DEVCARD_BASE_URL", "https://cards.example.com/")

	out, err := executeRoot(t, "embed", "--user", "octocat", "--layout", "horizontal")

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, embed.Snippet("https://cards.example.com", "octocat", embed.Horizontal), lines[0])
	assert.Equal(t, "https://cards.example.com/api/devcard/octocat?variant=horizontal", lines[1])
}

func TestCardCommand_MissingTokenReturnsError(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")

	out, err := executeRoot(t, "card", "--handle", "octocat")

	require.Error(t, err)
	assert.Equal(t, "Missing GitHub token. Please sign out and sign back in with GitHub.", err.Error())
	assert.Contains(t, out, `"status": "error"`)
	assert.Contains(t, out, `"embedCode"`)
	assert.NotContains(t, out, `"downloadUrl"`)
}
