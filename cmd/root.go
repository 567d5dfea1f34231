// Package cmd defines the CLI commands for the notice-crawler executable.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kookmin-feed/notice-crawler/internal/app"
	"github.com/kookmin-feed/notice-crawler/internal/config"
)

var cfgFile string

// newApp is the application factory, replaceable in tests.
var newApp = func(ctx context.Context, cfg config.Config) (*app.App, error) {
	return app.New(ctx, cfg)
}

// loadApp builds the service container from the configured file and
// environment.
func loadApp(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return newApp(ctx, cfg)
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notice-crawler",
		Short: "Scrapes university notice boards and tracks new announcements",
		Long: `notice-crawler watches the university's departmental notice boards
and RSS feeds, extracts announcements, and persists the ones that have
not been seen before. It can run as a one-shot scrape or as an HTTP
service that triggers runs on demand.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (environment is used when omitted)")

	cmd.AddCommand(newScrapeCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newSourcesCmd())

	return cmd
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
