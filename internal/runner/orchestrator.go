package runner

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/kookmin-feed/notice-crawler/internal/adapter"
	"github.com/kookmin-feed/notice-crawler/internal/notice"
)

// Orchestrator runs batches of sources concurrently. A panicking source
// is contained and reported as a failed run so one broken board never
// takes down the batch.
type Orchestrator struct {
	runner    *Runner
	logger    *zap.Logger
	batchSize int
	wait      bool
}

// NewOrchestrator builds an Orchestrator over the given Runner. When wait
// is false, Run returns as soon as the run is scheduled and the batches
// finish in the background.
func NewOrchestrator(r *Runner, logger *zap.Logger, batchSize int, wait bool) *Orchestrator {
	if batchSize <= 0 {
		batchSize = 10
	}
	return &Orchestrator{runner: r, logger: logger, batchSize: batchSize, wait: wait}
}

// RunAll scrapes every source in the catalog. See Run.
func (o *Orchestrator) RunAll(ctx context.Context) (string, []notice.RunResult) {
	return o.Run(ctx, adapter.Catalog())
}

// Run scrapes the given sources in batches and returns the run ID along
// with one result per source, in input order. In fire-and-forget mode the
// results slice is nil and the run continues in the background, detached
// from the caller's context.
func (o *Orchestrator) Run(ctx context.Context, sources []adapter.Source) (string, []notice.RunResult) {
	runID := uuid.NewString()
	log := o.logger.With(zap.String("run_id", runID))
	log.Info("scrape run starting", zap.Int("sources", len(sources)))

	if !o.wait {
		go o.runBatches(context.WithoutCancel(ctx), sources, log)
		return runID, nil
	}
	return runID, o.runBatches(ctx, sources, log)
}

func (o *Orchestrator) runBatches(ctx context.Context, sources []adapter.Source, log *zap.Logger) []notice.RunResult {
	results := make([]notice.RunResult, len(sources))
	offset := 0
	for _, batch := range lo.Chunk(sources, o.batchSize) {
		var wg sync.WaitGroup
		for i, src := range batch {
			wg.Add(1)
			go func(idx int, src adapter.Source) {
				defer wg.Done()
				results[idx] = o.runOne(ctx, src, log)
			}(offset+i, src)
		}
		wg.Wait()
		offset += len(batch)
	}

	succeeded := lo.CountBy(results, func(r notice.RunResult) bool { return r.Success })
	log.Info("scrape run finished",
		zap.Int("succeeded", succeeded),
		zap.Int("failed", len(results)-succeeded),
	)
	return results
}

// runOne isolates a single source, converting panics into failed results.
func (o *Orchestrator) runOne(ctx context.Context, src adapter.Source, log *zap.Logger) (result notice.RunResult) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error("source panicked",
				zap.String("source", src.ID),
				zap.Any("panic", rec),
			)
			result = notice.RunResult{
				SourceID: src.ID,
				Err:      fmt.Sprintf("panic: %v", rec),
			}
		}
	}()
	return o.runner.RunSource(ctx, src)
}
