// Package runner drives the scrape pipeline for each notice board:
// fetch, extract, filter, dedup, persist, and fan the outcome out to
// alerts and run events.
package runner

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kookmin-feed/notice-crawler/internal/adapter"
	"github.com/kookmin-feed/notice-crawler/internal/fetch"
	"github.com/kookmin-feed/notice-crawler/internal/logging"
	"github.com/kookmin-feed/notice-crawler/internal/metrics"
	"github.com/kookmin-feed/notice-crawler/internal/notice"
)

// Options tunes pipeline behavior shared by every source.
type Options struct {
	// WindowDays is the recency window. Sources may override it.
	WindowDays int
	// FeedLimit caps how many items an RSS fetch keeps.
	FeedLimit int
	// FetchTimeout bounds each page retrieval.
	FetchTimeout time.Duration
	// ArchiveContentType is stamped on archived page snapshots.
	ArchiveContentType string
}

// Runner executes the pipeline for individual sources.
type Runner struct {
	fetcher   fetch.Fetcher
	headless  fetch.Fetcher
	store     notice.Store
	notifier  notice.Notifier
	archiver  notice.Archiver
	publisher notice.Publisher
	clock     notice.Clock
	logger    *zap.Logger
	opts      Options
}

// New wires a Runner. The headless fetcher may be a noop when browser
// scraping is disabled; sources that need it then fail with a clear
// error instead of silently scraping nothing.
func New(
	fetcher, headless fetch.Fetcher,
	store notice.Store,
	notifier notice.Notifier,
	archiver notice.Archiver,
	publisher notice.Publisher,
	clock notice.Clock,
	logger *zap.Logger,
	opts Options,
) *Runner {
	metrics.Init()
	if opts.WindowDays <= 0 {
		opts.WindowDays = 30
	}
	return &Runner{
		fetcher:   fetcher,
		headless:  headless,
		store:     store,
		notifier:  notifier,
		archiver:  archiver,
		publisher: publisher,
		clock:     clock,
		logger:    logger,
		opts:      opts,
	}
}

// runEvent is the payload published after a successful run.
type runEvent struct {
	SourceID   string    `json:"source_id"`
	SourceName string    `json:"source_name"`
	RanAt      time.Time `json:"ran_at"`
	TotalFound int       `json:"total_found"`
	NewCount   int       `json:"new_notices_count"`
	SavedCount int       `json:"saved_count"`
}

// RunSource executes the full pipeline for one source and reports the
// outcome. Archive and publish failures are logged, never fatal; a
// pipeline failure raises an alert through the notifier.
func (r *Runner) RunSource(ctx context.Context, src adapter.Source) notice.RunResult {
	log := logging.ForSource(r.logger, src.ID)
	now := r.clock.Now()

	scraped, found, err := r.scrape(ctx, src, log)
	if err != nil {
		log.Error("scrape failed", zap.Error(err))
		metrics.ObserveRun(src.ID, "failure", 0, 0, 0)
		r.alert(ctx, src, err, log)
		return notice.RunResult{SourceID: src.ID, Err: err.Error()}
	}

	window := r.opts.WindowDays
	if src.WindowDays > 0 {
		window = src.WindowDays
	}
	recent := notice.Recent(scraped, now, window)

	known, err := r.store.Recent(ctx, src.ID)
	if err != nil {
		err = fmt.Errorf("load known notices: %w", err)
		log.Error("scrape failed", zap.Error(err))
		metrics.ObserveRun(src.ID, "failure", found, 0, 0)
		r.alert(ctx, src, err, log)
		return notice.RunResult{SourceID: src.ID, TotalFound: found, Err: err.Error()}
	}

	fresh := notice.Diff(recent, known)

	saved, err := r.store.SaveAll(ctx, src.ID, fresh)
	if err != nil {
		err = fmt.Errorf("save notices: %w", err)
		log.Error("scrape failed", zap.Error(err))
		metrics.ObserveRun(src.ID, "failure", found, len(fresh), saved)
		r.alert(ctx, src, err, log)
		return notice.RunResult{
			SourceID:   src.ID,
			TotalFound: found,
			NewCount:   len(fresh),
			SavedCount: saved,
			Err:        err.Error(),
		}
	}

	r.publish(ctx, src, now, found, len(fresh), saved, log)

	log.Info("scrape finished",
		zap.Int("found", found),
		zap.Int("extracted", len(scraped)),
		zap.Int("new", len(fresh)),
		zap.Int("saved", saved),
	)
	metrics.ObserveRun(src.ID, "success", found, len(fresh), saved)

	return notice.RunResult{
		SourceID:   src.ID,
		Success:    true,
		TotalFound: found,
		NewCount:   len(fresh),
		SavedCount: saved,
	}
}

// scrape retrieves and extracts notices for the source. The returned
// count is the number of raw candidates seen before extraction, so rows
// an adapter skips still show up in the run totals.
func (r *Runner) scrape(ctx context.Context, src adapter.Source, log *zap.Logger) ([]notice.Notice, int, error) {
	if src.Mode == adapter.ModeRSS {
		start := time.Now()
		notices, total, err := adapter.FetchFeed(ctx, src, r.opts.FeedLimit, r.clock)
		if err != nil {
			return nil, 0, err
		}
		metrics.ObserveFetch(src.ID, string(src.Mode), time.Since(start))
		return notices, total, nil
	}

	fetcher := r.fetcher
	if src.Mode == adapter.ModeHeadless {
		fetcher = r.headless
	}

	page, err := fetcher.Fetch(ctx, fetch.Request{
		URL:          src.URL,
		Timeout:      r.opts.FetchTimeout,
		WaitSelector: src.WaitSelector,
	})
	if err != nil {
		return nil, 0, err
	}
	metrics.ObserveFetch(src.ID, string(src.Mode), page.Duration)

	r.archive(ctx, src, page, log)

	doc, err := page.Document()
	if err != nil {
		return nil, 0, err
	}

	a, err := adapter.New(src, adapter.Deps{Fetcher: r.fetcher, Clock: r.clock, Logger: log})
	if err != nil {
		return nil, 0, err
	}

	candidates := a.SelectCandidates(doc)

	var notices []notice.Notice
	for _, sel := range candidates {
		n := a.Extract(ctx, sel)
		if n == nil {
			continue
		}
		n.SourceID = src.ID
		notices = append(notices, *n)
	}
	return notices, len(candidates), nil
}

// archive stores the raw page snapshot. Best effort.
func (r *Runner) archive(ctx context.Context, src adapter.Source, page *fetch.Page, log *zap.Logger) {
	objectName := fmt.Sprintf("%s/%s.html", src.ID, r.clock.Now().Format("20060102T150405"))
	uri, err := r.archiver.Archive(ctx, objectName, r.opts.ArchiveContentType, []byte(page.Body))
	if err != nil {
		log.Warn("archiving page snapshot failed", zap.Error(err))
		return
	}
	if uri != "" {
		log.Debug("archived page snapshot", zap.String("uri", uri))
	}
}

// publish emits the run event. Best effort.
func (r *Runner) publish(ctx context.Context, src adapter.Source, ranAt time.Time, found, fresh, saved int, log *zap.Logger) {
	_, err := r.publisher.Publish(ctx, runEvent{
		SourceID:   src.ID,
		SourceName: src.Name,
		RanAt:      ranAt,
		TotalFound: found,
		NewCount:   fresh,
		SavedCount: saved,
	})
	if err != nil {
		log.Warn("publishing run event failed", zap.Error(err))
	}
}

// alert raises a failure notification. Best effort.
func (r *Runner) alert(ctx context.Context, src adapter.Source, cause error, log *zap.Logger) {
	message := fmt.Sprintf("%s (%s): %v", src.Name, src.URL, cause)
	if err := r.notifier.Notify(ctx, src.ID, message); err != nil {
		log.Warn("delivering alert failed", zap.Error(err))
	}
}
