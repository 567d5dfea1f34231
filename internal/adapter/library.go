package adapter

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/kookmin-feed/notice-crawler/internal/notice"
)

// library handles the Seongkok library's Angular notice list. The page
// needs a browser to render and exposes no per-notice URLs, so links
// are synthesized from the list index.
type library struct {
	src   Source
	clock notice.Clock
}

func newLibrary(src Source, deps Deps) Adapter {
	return &library{src: src, clock: deps.Clock}
}

func (a *library) SelectCandidates(doc *goquery.Document) []*goquery.Selection {
	return eachSelection(doc.Find("table.ikc-bulletins tbody tr.ng-star-inserted"))
}

func (a *library) Extract(_ context.Context, sel *goquery.Selection) *notice.Notice {
	index := strings.TrimSpace(sel.Find(".ikc-bulletins-index span").First().Text())
	if index == "" {
		return nil
	}
	title := notice.CleanTitle(sel.Find(".ikc-bulletins-title span").First().Text())
	if title == "" {
		return nil
	}

	// Properties run author, date, views.
	published := a.clock.Now()
	props := sel.Find(".ikc-bulletins-properties li span")
	if props.Length() >= 2 {
		published = notice.ParseDate(strings.TrimSpace(props.Eq(1).Text()), a.clock.Now())
	}

	return &notice.Notice{
		Title:     title,
		Link:      a.src.URL + "#" + index,
		Published: published,
		SourceID:  a.src.ID,
	}
}
