package headless

import (
	"context"
	"testing"
	"time"

	"github.com/kookmin-feed/notice-crawler/internal/fetch"
)

func TestConfigDefaults(t *testing.T) {
	t.Parallel()

	f := NewChromedp(Config{})
	defer f.Close()

	if f.cfg.NavigationTimeout != 25*time.Second {
		t.Fatalf("expected default nav timeout, got %v", f.cfg.NavigationTimeout)
	}
	if f.cfg.SettleDelay != 2*time.Second {
		t.Fatalf("expected default settle delay, got %v", f.cfg.SettleDelay)
	}
	if f.cfg.WaitTimeout != 10*time.Second {
		t.Fatalf("expected default wait timeout, got %v", f.cfg.WaitTimeout)
	}
}

func TestConfigOverrides(t *testing.T) {
	t.Parallel()

	f := NewChromedp(Config{
		NavigationTimeout: time.Second,
		SettleDelay:       100 * time.Millisecond,
		WaitTimeout:       time.Second,
	})
	defer f.Close()

	if f.cfg.NavigationTimeout != time.Second {
		t.Fatalf("expected override to be used, got %v", f.cfg.NavigationTimeout)
	}
}

func TestNoopFetchErrors(t *testing.T) {
	t.Parallel()

	if _, err := NewNoop().Fetch(context.Background(), fetch.Request{URL: "https://example.com"}); err == nil {
		t.Fatal("expected noop fetcher to error")
	}
}
