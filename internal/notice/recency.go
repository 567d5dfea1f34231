package notice

import (
	"time"

	"github.com/samber/lo"
)

// Recent keeps notices published within the last windowDays, boundary
// inclusive: a notice dated exactly windowDays ago survives.
func Recent(notices []Notice, now time.Time, windowDays int) []Notice {
	cutoff := now.Add(-time.Duration(windowDays) * 24 * time.Hour)
	return lo.Filter(notices, func(n Notice, _ int) bool {
		return !n.Published.Before(cutoff)
	})
}
