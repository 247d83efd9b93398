package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mamae10/webhook-relay/internal/config"
	"github.com/mamae10/webhook-relay/internal/logging"
	"github.com/mamae10/webhook-relay/internal/server"
	"github.com/mamae10/webhook-relay/internal/service"
	"github.com/mamae10/webhook-relay/pkg/premium"
)

// Version information (set at build time with -ldflags)
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var rootCmd = &cobra.Command{
	Use:          "webhook-relay",
	Short:        "Relays Cakto and Kiwify payment webhooks to the premium backend",
	Version:      Version,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(daysCmd)
	rootCmd.AddCommand(grantCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "webhook-relay %s\n", Version)
		if GitCommit != "unknown" {
			fmt.Fprintf(cmd.OutOrStdout(), "Commit: %s\n", GitCommit)
		}
	},
}

func main() {
	// Load .env file if present (for local development)
	loadDotEnv()

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServer(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log.Info().Str("version", Version).Str("backend", cfg.BackendURL).Msg("Starting webhook relay")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	router := server.NewRouter(ctx, server.Deps{
		Events:         service.NewSubscriptionService(newBackend(cfg)),
		WebhookSecrets: cfg.WebhookSecrets,
		CORSOrigins:    cfg.CORSOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		Version:        Version,
	})

	return server.Run(ctx, fmt.Sprintf("0.0.0.0:%d", cfg.Port), router)
}

// loadConfig reads configuration and re-initializes logging from it.
func loadConfig() (*config.Config, error) {
	logging.Init(logging.Config{Format: "auto", Level: "info", Component: "webhook-relay"})

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logging.Init(logging.Config{Format: cfg.LogFormat, Level: cfg.LogLevel, Component: "webhook-relay"})
	return cfg, nil
}

func newBackend(cfg *config.Config) *premium.Client {
	return premium.NewClient(premium.Options{
		URL:         cfg.BackendURL,
		Timeout:     cfg.BackendTimeout,
		TokenSecret: cfg.BackendTokenSecret,
		MaxRetries:  cfg.BackendMaxRetries,
	})
}

// loadDotEnv reads a .env file if it exists.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env: %v\n", err)
	}
}
