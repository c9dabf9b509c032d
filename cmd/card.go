package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-devcard/internal/auth"
	"github.com/naka-gawa/github-devcard/internal/config"
	"github.com/naka-gawa/github-devcard/internal/domain"
	"github.com/naka-gawa/github-devcard/internal/embed"
	"github.com/naka-gawa/github-devcard/internal/gateway"
	"github.com/naka-gawa/github-devcard/internal/session"
	"github.com/naka-gawa/github-devcard/internal/usecase"
)

var cardCmd = &cobra.Command{
	Use:   "card",
	Short: "Builds the DevCard of the token's account and outputs it as JSON",
	Long: `Fetches the profile, repositories and contribution insights of the account behind
GITHUB_TOKEN, builds the DevCard view model and prints the dashboard state as JSON,
including the embed snippet and the download link.`,
	RunE: runCard,
}

// runCard returns errors instead of exiting so the controller is always closed.
func runCard(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := newLogger(cmd, cfg)

	layout, _ := cmd.Flags().GetString("layout")
	orientation, err := embed.ParseOrientation(layout)
	if err != nil {
		return fmt.Errorf("invalid --layout: %w", err)
	}

	// The identity normally comes from the auth provider; on the CLI it comes from flags.
	userID, _ := cmd.Flags().GetString("user-id")
	name, _ := cmd.Flags().GetString("name")
	handle, _ := cmd.Flags().GetString("handle")
	avatar, _ := cmd.Flags().GetString("avatar")
	email, _ := cmd.Flags().GetString("email")
	sess := domain.NewSession(userID, name, handle, avatar, email)

	// Inject dependencies and run the main business logic.
	newFetcher := gateway.Factory(gateway.Options{
		APIURL:         cfg.GitHub.APIURL,
		GraphQLURL:     cfg.GitHub.GraphQLURL,
		RateLimitSleep: cfg.GitHub.RateLimitSleep,
	}, logger)
	loader := usecase.NewLoader(auth.NewStaticAccessor(cfg.GitHub.Token), newFetcher, logger)
	controller := session.New(loader, session.Options{
		BaseURL:   baseURL(cmd, cfg),
		CopyReset: cfg.Card.CopyReset,
	}, logger)
	defer controller.Close()

	settled := make(chan session.State, 1)
	unsubscribe := controller.Subscribe(session.ObserverFunc(func(s session.State) {
		if s.Settled() {
			select {
			case settled <- s:
			default:
			}
		}
	}))
	defer unsubscribe()

	controller.SetOrientation(orientation)
	controller.SetSession(&sess)

	var state session.State
	select {
	case state = <-settled:
	case <-ctx.Done():
		return errors.New("interrupted before the card was loaded")
	}

	// Marshal the state into a pretty-printed JSON string.
	jsonData, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results to JSON: %w", err)
	}

	// Print the final JSON to standard output.
	fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	if state.Status == session.StatusError {
		return errors.New(state.Error)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(cardCmd)
	cardCmd.Flags().StringP("layout", "l", string(embed.Vertical), "Card layout: vertical or horizontal")
	cardCmd.Flags().String("user-id", "cli", "Session user id")
	cardCmd.Flags().String("name", "", "Session display name")
	cardCmd.Flags().StringP("handle", "u", "", "Session handle shown until the profile loads")
	cardCmd.Flags().String("avatar", "", "Session avatar URL")
	cardCmd.Flags().String("email", "", "Session email")
}
