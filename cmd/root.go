// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-devcard/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "devcard",
	Short: "Builds a shareable DevCard from your GitHub account.",
	Long: `devcard turns the GitHub account behind a token into a DevCard view model:
profile, star and fork totals, language breakdown, top repository, the
contribution calendar of the current year and a monthly timeline.
It also prints the embed snippet for the card.`,
	// Failures are reported once by Execute; usage is only for flag errors.
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable logging to stderr at LOG_LEVEL")
	rootCmd.PersistentFlags().String("base-url", "", "Public origin used in embed snippets (default from DEVCARD_BASE_URL)")
}

// newLogger discards everything unless --verbose is set. The level comes from LOG_LEVEL.
func newLogger(cmd *cobra.Command, cfg *config.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard) // Default: discard all logs.
	logger.SetLevel(cfg.Log.Level)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "15:04:05.00"})
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger.SetOutput(os.Stderr) // If verbose, log to standard error.
	}
	return logger
}

// baseURL prefers the --base-url flag over the configured origin.
func baseURL(cmd *cobra.Command, cfg *config.Config) string {
	if flag, _ := cmd.Flags().GetString("base-url"); flag != "" {
		return flag
	}
	return cfg.Card.BaseURL
}
