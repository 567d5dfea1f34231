// Package fetch defines the page-retrieval contract shared by the plain
// HTTP fetcher and the headless browser fetcher.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Request describes a single page retrieval.
type Request struct {
	URL string
	// Timeout bounds the whole fetch. Zero means the fetcher default.
	Timeout time.Duration
	// WaitSelector, when set, tells a headless fetcher which element must
	// be present before the page is captured. Plain fetchers ignore it.
	WaitSelector string
}

// Page is a fetched and decoded HTML document.
type Page struct {
	URL        string
	StatusCode int
	Body       string
	Duration   time.Duration

	doc *goquery.Document
}

// Document parses the body lazily and caches the result.
func (p *Page) Document() (*goquery.Document, error) {
	if p.doc != nil {
		return p.doc, nil
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewBufferString(p.Body))
	if err != nil {
		return nil, fmt.Errorf("parse page %s: %w", p.URL, err)
	}
	p.doc = doc
	return doc, nil
}

// Fetcher retrieves a page.
type Fetcher interface {
	Fetch(ctx context.Context, req Request) (*Page, error)
}

// ErrorKind classifies fetch failures.
type ErrorKind string

const (
	// KindStatus means the server answered with a non-2xx status.
	KindStatus ErrorKind = "status"
	// KindTimeout means the fetch exceeded its deadline.
	KindTimeout ErrorKind = "timeout"
	// KindOversize means the response body exceeded the configured cap.
	KindOversize ErrorKind = "oversize"
	// KindNetwork covers DNS, dial and TLS failures.
	KindNetwork ErrorKind = "network"
)

// Error wraps a fetch failure with its classification.
type Error struct {
	Kind   ErrorKind
	URL    string
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: %s (status %d)", e.URL, e.Kind, e.Status)
	}
	return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
