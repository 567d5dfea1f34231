// Package app initializes and holds the long-lived services of the
// crawler, acting as the dependency injection container.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kookmin-feed/notice-crawler/internal/archive"
	"github.com/kookmin-feed/notice-crawler/internal/clock/system"
	"github.com/kookmin-feed/notice-crawler/internal/config"
	"github.com/kookmin-feed/notice-crawler/internal/fetch"
	collyfetcher "github.com/kookmin-feed/notice-crawler/internal/fetch/colly"
	"github.com/kookmin-feed/notice-crawler/internal/fetch/headless"
	"github.com/kookmin-feed/notice-crawler/internal/logging"
	"github.com/kookmin-feed/notice-crawler/internal/metrics"
	"github.com/kookmin-feed/notice-crawler/internal/notice"
	"github.com/kookmin-feed/notice-crawler/internal/notify"
	"github.com/kookmin-feed/notice-crawler/internal/publish"
	"github.com/kookmin-feed/notice-crawler/internal/runner"
	"github.com/kookmin-feed/notice-crawler/internal/store"
	"github.com/kookmin-feed/notice-crawler/internal/store/dynamo"
	"github.com/kookmin-feed/notice-crawler/internal/store/postgres"
)

// App holds every shared service. It is built once at startup and handed
// to the command that needs it.
type App struct {
	Config       config.Config
	Logger       *zap.Logger
	Store        notice.Store
	Notifier     notice.Notifier
	Archiver     notice.Archiver
	Publisher    notice.Publisher
	Fetcher      fetch.Fetcher
	Headless     fetch.Fetcher
	Runner       *runner.Runner
	Orchestrator *runner.Orchestrator

	closers []func()
}

// New instantiates the service graph from configuration, failing fast
// when any backing service cannot be reached.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	metrics.Init()

	a := &App{Config: cfg, Logger: logger}
	clk := system.Clock{}

	a.Fetcher = collyfetcher.New(collyfetcher.Config{
		UserAgent:    cfg.HTTP.UserAgent,
		Timeout:      cfg.FetchTimeout(),
		MaxBodyBytes: cfg.HTTP.MaxBodyBytes,
	})

	if cfg.Headless.Enabled {
		hf := headless.NewChromedp(headless.Config{
			UserAgent:         cfg.HTTP.UserAgent,
			NavigationTimeout: cfg.FetchTimeout(),
			SettleDelay:       cfg.SettleDelay(),
		})
		a.Headless = hf
		a.closers = append(a.closers, hf.Close)
	} else {
		logger.Info("headless fetching disabled, browser sources will fail")
		a.Headless = headless.NewNoop()
	}

	if err := a.buildStore(ctx, cfg, clk, logger); err != nil {
		a.Close()
		return nil, err
	}
	if err := a.buildNotifier(ctx, cfg, logger); err != nil {
		a.Close()
		return nil, err
	}
	if err := a.buildArchiver(ctx, cfg, logger); err != nil {
		a.Close()
		return nil, err
	}
	if err := a.buildPublisher(ctx, cfg, logger); err != nil {
		a.Close()
		return nil, err
	}

	a.Runner = runner.New(
		a.Fetcher, a.Headless,
		a.Store, a.Notifier, a.Archiver, a.Publisher,
		clk, logger,
		runner.Options{
			WindowDays:         cfg.Scrape.WindowDays,
			FeedLimit:          cfg.Scrape.FeedLimit,
			FetchTimeout:       cfg.FetchTimeout(),
			ArchiveContentType: cfg.Archive.ContentType,
		},
	)
	a.Orchestrator = runner.NewOrchestrator(a.Runner, logger, cfg.Scrape.BatchSize, cfg.Scrape.WaitForCompletion)

	logger.Info("application services initialized",
		zap.String("store", cfg.Store.Driver),
		zap.String("notify", cfg.Notify.Driver),
		zap.String("archive", cfg.Archive.Driver),
		zap.String("publish", cfg.Publish.Driver),
	)
	return a, nil
}

func (a *App) buildStore(ctx context.Context, cfg config.Config, clk notice.Clock, logger *zap.Logger) error {
	switch cfg.Store.Driver {
	case "memory":
		a.Store = store.NewMemory(clk, cfg.Store.LookbackDays)
	case "dynamo":
		client, err := dynamo.NewClient(ctx, cfg.Store.Dynamo)
		if err != nil {
			return fmt.Errorf("initialize dynamo store: %w", err)
		}
		a.Store = dynamo.New(client, cfg.Store.Dynamo.Table, clk).WithLookback(cfg.Store.LookbackDays)
		logger.Info("using dynamo store", zap.String("table", cfg.Store.Dynamo.Table))
	case "postgres":
		pg, err := postgres.New(ctx, cfg.Store.Postgres.DSN, clk)
		if err != nil {
			return fmt.Errorf("initialize postgres store: %w", err)
		}
		if err := pg.EnsureSchema(ctx); err != nil {
			pg.Close()
			return err
		}
		a.Store = pg.WithLookback(cfg.Store.LookbackDays)
		a.closers = append(a.closers, pg.Close)
		logger.Info("using postgres store")
	default:
		return fmt.Errorf("unknown store driver: %s", cfg.Store.Driver)
	}
	return nil
}

func (a *App) buildNotifier(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	switch cfg.Notify.Driver {
	case "log":
		a.Notifier = notify.NewLog(logger)
	case "sns":
		n, err := notify.NewSNS(ctx, cfg.Notify)
		if err != nil {
			return fmt.Errorf("initialize sns notifier: %w", err)
		}
		a.Notifier = n
		logger.Info("using sns notifier", zap.String("topic", cfg.Notify.TopicARN))
	default:
		return fmt.Errorf("unknown notify driver: %s", cfg.Notify.Driver)
	}
	return nil
}

func (a *App) buildArchiver(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	switch cfg.Archive.Driver {
	case "noop":
		a.Archiver = archive.NewNoop()
	case "gcs":
		g, err := archive.NewGCS(ctx, cfg.Archive.GCSBucket, cfg.Archive.Prefix, logger)
		if err != nil {
			return fmt.Errorf("initialize gcs archiver: %w", err)
		}
		a.Archiver = g
		a.closers = append(a.closers, func() {
			if cerr := g.Close(); cerr != nil {
				logger.Warn("closing gcs client", zap.Error(cerr))
			}
		})
		logger.Info("using gcs archiver", zap.String("bucket", cfg.Archive.GCSBucket))
	default:
		return fmt.Errorf("unknown archive driver: %s", cfg.Archive.Driver)
	}
	return nil
}

func (a *App) buildPublisher(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	switch cfg.Publish.Driver {
	case "noop":
		a.Publisher = publish.NewNoop()
	case "memory":
		a.Publisher = publish.NewMemory()
	case "pubsub":
		p, err := publish.NewPubSub(ctx, cfg.Publish.ProjectID, cfg.Publish.TopicName, logger)
		if err != nil {
			return fmt.Errorf("initialize pubsub publisher: %w", err)
		}
		a.Publisher = p
		a.closers = append(a.closers, func() {
			if cerr := p.Close(); cerr != nil {
				logger.Warn("closing pubsub client", zap.Error(cerr))
			}
		})
		logger.Info("using pubsub publisher", zap.String("topic", cfg.Publish.TopicName))
	default:
		return fmt.Errorf("unknown publish driver: %s", cfg.Publish.Driver)
	}
	return nil
}

// Close shuts services down in reverse initialization order and flushes
// the logger.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
	// Sync fails on stderr in some environments; nothing useful to do.
	_ = a.Logger.Sync()
}
