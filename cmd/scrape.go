package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kookmin-feed/notice-crawler/internal/adapter"
)

func newScrapeCmd() *cobra.Command {
	var sourceIDs []string

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Runs one scrape pass over the notice boards",
		Long: `Scrapes the configured notice boards once and exits. With --source
only the named boards are scraped; otherwise the full catalog runs in
batches.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			sources := adapter.Catalog()
			if len(sourceIDs) > 0 {
				sources = make([]adapter.Source, 0, len(sourceIDs))
				for _, id := range sourceIDs {
					src, ok := adapter.Lookup(id)
					if !ok {
						return fmt.Errorf("unknown source %q", id)
					}
					sources = append(sources, src)
				}
			}

			runID, results := a.Orchestrator.Run(cmd.Context(), sources)

			failed := 0
			for _, res := range results {
				if !res.Success {
					failed++
				}
			}
			a.Logger.Info("scrape command finished",
				zap.String("run_id", runID),
				zap.Int("sources", len(results)),
				zap.Int("failed", failed),
			)
			if failed > 0 {
				return fmt.Errorf("%d of %d sources failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&sourceIDs, "source", nil, "scrape only the named source ids")
	return cmd
}
