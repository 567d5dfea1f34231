// Package adapter turns fetched board pages into notices. Each notice
// board family shares one adapter implementation parameterized per
// source; the registry maps source ids to their descriptors and
// constructors.
package adapter

import (
	"context"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/kookmin-feed/notice-crawler/internal/fetch"
	"github.com/kookmin-feed/notice-crawler/internal/notice"
)

// Mode selects how a source's page is retrieved.
type Mode string

const (
	// ModeHTTP fetches with the plain HTTP fetcher.
	ModeHTTP Mode = "http"
	// ModeHeadless fetches with a real browser for client-rendered boards.
	ModeHeadless Mode = "headless"
	// ModeRSS reads the source's feed instead of scraping HTML.
	ModeRSS Mode = "rss"
)

// Source describes one notice board.
type Source struct {
	ID   string
	Name string
	URL  string
	Mode Mode
	// WaitSelector is the element a headless fetch waits for.
	WaitSelector string
	// WindowDays overrides the run-level recency window when > 0.
	WindowDays int
	// Family names the adapter implementation for HTML sources.
	Family string
}

// Deps carries the collaborators an adapter may need. Only the
// detail-page families use the fetcher.
type Deps struct {
	Fetcher fetch.Fetcher
	Clock   notice.Clock
	Logger  *zap.Logger
}

// Adapter extracts notices from a parsed board page.
//
// SelectCandidates returns the row elements in display order; families
// that place pinned rows in a separate container concatenate the two
// selections. Extract returns nil for rows that are not notices
// (headers, hidden inputs, rows missing a required field).
type Adapter interface {
	SelectCandidates(doc *goquery.Document) []*goquery.Selection
	Extract(ctx context.Context, sel *goquery.Selection) *notice.Notice
}

// eachSelection splits a goquery match set into per-node selections.
func eachSelection(s *goquery.Selection) []*goquery.Selection {
	out := make([]*goquery.Selection, 0, s.Length())
	s.Each(func(_ int, row *goquery.Selection) {
		out = append(out, row)
	})
	return out
}
