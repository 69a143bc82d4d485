package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/foodhub/foodhub-client/client"
	"github.com/foodhub/foodhub-client/internal/config"
	"github.com/foodhub/foodhub-client/internal/logger"
	"github.com/foodhub/foodhub-client/session"
)

const commandTimeout = 15 * time.Second

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// globals are the persistent flags shared by every sub-command.
type globals struct {
	cfg *config.Config

	envFile  string
	baseURL  string
	timeout  time.Duration
	debug    bool
	email    string
	password string
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:           "foodctl",
		Short:         "foodctl talks to the food ordering backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := zerolog.InfoLevel
			if g.debug {
				level = zerolog.DebugLevel
			}
			logger.SetGlobal(logger.NewConsole(cmd.ErrOrStderr(), level))
			log.Debug().Msg("debug logging enabled")

			if g.envFile != "" {
				if err := config.LoadEnvFile(g.envFile); err != nil {
					return err
				}
			}
			cfg, err := config.New()
			if err != nil {
				return err
			}
			// flags win over the environment
			if cmd.Flags().Changed("base-url") {
				cfg.BaseURL = g.baseURL
			}
			if cmd.Flags().Changed("timeout") {
				cfg.HTTPTimeout = g.timeout
			}
			cfg.Debug = cfg.Debug || g.debug
			if err := cfg.Validate(); err != nil {
				return err
			}
			g.cfg = cfg
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&g.envFile, "env-file", "", "Load FOODHUB_* variables from a dotenv file")
	rootCmd.PersistentFlags().StringVar(&g.baseURL, "base-url", client.DefaultBaseURL, "Backend API root (overrides FOODHUB_BASE_URL)")
	rootCmd.PersistentFlags().DurationVar(&g.timeout, "timeout", client.DefaultTimeout, "Per-request timeout (overrides FOODHUB_HTTP_TIMEOUT)")
	rootCmd.PersistentFlags().BoolVarP(&g.debug, "debug", "d", false, "Enable verbose debug output")
	rootCmd.PersistentFlags().StringVar(&g.email, "email", os.Getenv("FOODHUB_EMAIL"), "Account email for commands that need a session")
	rootCmd.PersistentFlags().StringVar(&g.password, "password", os.Getenv("FOODHUB_PASSWORD"), "Account password for commands that need a session")

	// Catalog
	rootCmd.AddCommand(newListFoodsCmd(g))
	rootCmd.AddCommand(newGetFoodCmd(g))
	rootCmd.AddCommand(newListCategoriesCmd(g))
	rootCmd.AddCommand(newListRestaurantsCmd(g))
	rootCmd.AddCommand(newGetRestaurantCmd(g))

	// Accounts
	rootCmd.AddCommand(newRegisterCmd(g))
	rootCmd.AddCommand(newSignInCmd(g))
	rootCmd.AddCommand(newGetUserCmd(g))

	// Owner and customer actions
	rootCmd.AddCommand(newCreateRestaurantCmd(g))
	rootCmd.AddCommand(newCreateFoodCmd(g))
	rootCmd.AddCommand(newUpdateFoodCmd(g))
	rootCmd.AddCommand(newDeleteFoodCmd(g))
	rootCmd.AddCommand(newOrderCmd(g))

	return rootCmd
}

func (g *globals) client() *client.Client {
	return client.New(
		client.WithBaseURL(g.cfg.BaseURL),
		client.WithHTTPTimeout(g.cfg.HTTPTimeout),
		client.WithDebugLogging(g.cfg.Debug),
	)
}

// signedIn returns a store signed in with --email/--password.
func (g *globals) signedIn(ctx context.Context) (*session.Store, error) {
	if g.email == "" || g.password == "" {
		return nil, fmt.Errorf("this command needs --email and --password (or FOODHUB_EMAIL and FOODHUB_PASSWORD)")
	}
	store := session.NewStore(g.client())
	if err := store.SignIn(ctx, client.Credentials{Email: g.email, Password: g.password}); err != nil {
		return nil, err
	}
	return store, stateErr("sign in", store.State())
}

// stateErr turns a failed composite operation into an error.
func stateErr(op string, st session.State) error {
	if st.Error != nil {
		return fmt.Errorf("%s: %s", op, st.Error.Message())
	}
	if !st.SignedIn() {
		return fmt.Errorf("%s: no session established", op)
	}
	return nil
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), commandTimeout)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
