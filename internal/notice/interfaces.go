package notice

import (
	"context"
	"time"
)

// Store is the persistence gateway for notices. Implementations own the
// persisted copy; the pipeline only ever reads back the Known projection.
type Store interface {
	// Recent returns the dedup snapshot for a source: the title/link pairs
	// of notices persisted within the store's lookback window.
	Recent(ctx context.Context, sourceID string) ([]Known, error)

	// SaveAll persists the given notices and returns how many were written.
	// Calling with an empty slice is a no-op returning 0.
	SaveAll(ctx context.Context, sourceID string, notices []Notice) (int, error)
}

// Notifier delivers human-readable failure alerts. Delivery is best effort:
// callers log a returned error and move on, never fail the pipeline.
type Notifier interface {
	Notify(ctx context.Context, sourceID, message string) error
}

// Archiver stores raw fetched markup and returns a storage URI.
type Archiver interface {
	Archive(ctx context.Context, objectName, contentType string, data []byte) (string, error)
}

// Publisher pushes per-source run summaries to downstream consumers
// (the feed bot reads these to know which boards have fresh notices).
type Publisher interface {
	Publish(ctx context.Context, payload any) (string, error)
	Close() error
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}
