// Package notify delivers alerts when a scrape run fails.
package notify

import (
	"context"

	"go.uber.org/zap"
)

// Log writes alerts to the service log. It is the default channel and the
// fallback when no external channel is configured.
type Log struct {
	logger *zap.Logger
}

// NewLog builds a log-backed notifier.
func NewLog(logger *zap.Logger) *Log {
	return &Log{logger: logger}
}

// Notify records the failure at error level.
func (l *Log) Notify(_ context.Context, sourceID, message string) error {
	l.logger.Error("scrape alert",
		zap.String("source", sourceID),
		zap.String("message", message),
	)
	return nil
}
