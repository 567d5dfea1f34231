// Package store provides notice snapshot persistence. The in-memory
// implementation backs local runs and tests; the dynamo and postgres
// subpackages hold the production stores.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/kookmin-feed/notice-crawler/internal/notice"
)

// Memory implements notice.Store in process memory.
type Memory struct {
	clock    notice.Clock
	lookback time.Duration

	mu sync.Mutex
	// notices per source, in save order
	data map[string][]notice.Notice
}

// NewMemory builds an in-memory store with the given snapshot lookback.
func NewMemory(clock notice.Clock, lookbackDays int) *Memory {
	if lookbackDays <= 0 {
		lookbackDays = 90
	}
	return &Memory{
		clock:    clock,
		lookback: time.Duration(lookbackDays) * 24 * time.Hour,
		data:     make(map[string][]notice.Notice),
	}
}

// Recent returns the title/link pairs saved for the source within the
// lookback window.
func (m *Memory) Recent(_ context.Context, sourceID string) ([]notice.Known, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.clock.Now().Add(-m.lookback)
	return lo.FilterMap(m.data[sourceID], func(n notice.Notice, _ int) (notice.Known, bool) {
		if n.Published.Before(cutoff) {
			return notice.Known{}, false
		}
		return notice.Known{Title: n.Title, Link: n.Link}, true
	}), nil
}

// SaveAll stores the notices, skipping any whose link is already present.
func (m *Memory) SaveAll(_ context.Context, sourceID string, notices []notice.Notice) (int, error) {
	if len(notices) == 0 {
		return 0, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	existing := lo.SliceToMap(m.data[sourceID], func(n notice.Notice) (string, struct{}) {
		return n.Link, struct{}{}
	})

	saved := 0
	for _, n := range notices {
		if _, ok := existing[n.Link]; ok {
			continue
		}
		m.data[sourceID] = append(m.data[sourceID], n)
		existing[n.Link] = struct{}{}
		saved++
	}
	return saved, nil
}
