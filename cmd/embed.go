package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-devcard/internal/config"
	"github.com/naka-gawa/github-devcard/internal/embed"
)

var embedCmd = &cobra.Command{
	Use:   "embed",
	Short: "Prints the embed snippet and download link for a handle",
	Long: `Prints the iframe snippet and the download link for a handle without calling GitHub.
The download link only resolves once the card for that handle has been built, e.g. by
running the card command or opening the dashboard.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		user, _ := cmd.Flags().GetString("user")
		layout, _ := cmd.Flags().GetString("layout")
		orientation, err := embed.ParseOrientation(layout)
		if err != nil {
			return fmt.Errorf("invalid --layout: %w", err)
		}

		base := baseURL(cmd, cfg)
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, embed.Snippet(base, user, orientation))
		fmt.Fprintln(out, embed.DownloadURL(base, user, orientation))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(embedCmd)
	embedCmd.Flags().StringP("user", "u", "", "GitHub handle (required)")
	embedCmd.MarkFlagRequired("user")
	embedCmd.Flags().StringP("layout", "l", string(embed.Vertical), "Card layout: vertical or horizontal")
}
