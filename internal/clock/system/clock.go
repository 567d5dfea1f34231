// Package system provides a real clock implementation.
package system

import (
	"time"

	"github.com/kookmin-feed/notice-crawler/internal/notice"
)

// Clock implements notice.Clock using time.Now in Korea Standard Time.
// Board dates carry no zone, so the whole pipeline reasons in KST.
type Clock struct{}

// New creates a new Clock.
func New() *Clock {
	return &Clock{}
}

// Now returns the current time in KST.
func (Clock) Now() time.Time {
	return time.Now().In(notice.Seoul)
}
