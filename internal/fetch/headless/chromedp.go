// Package headless implements fetch.Fetcher with a real browser for the
// boards that render their lists client side.
package headless

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"

	"github.com/kookmin-feed/notice-crawler/internal/fetch"
)

// Config controls the behavior of the headless fetcher.
type Config struct {
	UserAgent         string
	NavigationTimeout time.Duration
	// SettleDelay is how long to wait after the target selector appears,
	// giving the page's own scripts time to finish filling the list.
	SettleDelay time.Duration
	// WaitTimeout bounds the wait for the target selector. When it
	// expires the page is captured anyway.
	WaitTimeout time.Duration
}

// Fetcher implements fetch.Fetcher using chromedp and headless Chrome.
type Fetcher struct {
	cfg         Config
	allocator   context.Context
	allocCancel context.CancelFunc
}

// NewChromedp creates a headless fetcher backed by chromedp.
func NewChromedp(cfg Config) *Fetcher {
	if cfg.NavigationTimeout <= 0 {
		cfg.NavigationTimeout = 25 * time.Second
	}
	if cfg.SettleDelay <= 0 {
		cfg.SettleDelay = 2 * time.Second
	}
	if cfg.WaitTimeout <= 0 {
		cfg.WaitTimeout = 10 * time.Second
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", "new"),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.Flag("ignore-certificate-errors", true),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &Fetcher{cfg: cfg, allocator: allocCtx, allocCancel: allocCancel}
}

// Close cancels the allocator context.
func (f *Fetcher) Close() {
	f.allocCancel()
}

// Fetch navigates with a headless browser and returns the rendered DOM.
// When the request names a wait selector, the capture is delayed until
// that element is visible or the wait budget runs out; a missed selector
// degrades to a best-effort capture instead of failing the run.
func (f *Fetcher) Fetch(ctx context.Context, req fetch.Request) (*fetch.Page, error) {
	taskCtx, taskCancel := chromedp.NewContext(f.allocator)
	defer taskCancel()

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = f.cfg.NavigationTimeout
	}
	taskCtx, cancel := context.WithTimeout(taskCtx, timeout)
	defer cancel()

	go func() {
		select {
		case <-ctx.Done():
			taskCancel()
		case <-taskCtx.Done():
		}
	}()

	start := time.Now()
	var html string
	actions := []chromedp.Action{
		f.setupAction(),
		chromedp.Navigate(req.URL),
		chromedp.WaitReady("body", chromedp.ByQuery),
	}
	if req.WaitSelector != "" {
		actions = append(actions, f.waitAction(req.WaitSelector))
	}
	actions = append(actions,
		chromedp.Sleep(f.cfg.SettleDelay),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)

	if err := chromedp.Run(taskCtx, actions...); err != nil {
		kind := fetch.KindNetwork
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			kind = fetch.KindTimeout
		}
		return nil, &fetch.Error{Kind: kind, URL: req.URL, Err: fmt.Errorf("chromedp run: %w", err)}
	}

	return &fetch.Page{
		URL:        req.URL,
		StatusCode: 200,
		Body:       html,
		Duration:   time.Since(start),
	}, nil
}

func (f *Fetcher) setupAction() chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		if f.cfg.UserAgent == "" {
			return nil
		}
		if err := emulation.SetUserAgentOverride(f.cfg.UserAgent).Do(ctx); err != nil {
			return fmt.Errorf("set user-agent: %w", err)
		}
		return nil
	})
}

func (f *Fetcher) waitAction(selector string) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		waitCtx, cancel := context.WithTimeout(ctx, f.cfg.WaitTimeout)
		defer cancel()
		err := chromedp.WaitVisible(selector, chromedp.ByQuery).Do(waitCtx)
		if err != nil && ctx.Err() == nil {
			// Selector never showed up; capture whatever rendered.
			return nil
		}
		return err
	})
}
