package adapter

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/kookmin-feed/notice-crawler/internal/notice"
)

// kboardOptions parameterizes the WordPress KBoard adapter.
type kboardOptions struct {
	rowSelector   string
	titleSelector string
	// withCategory folds the span.category1 label into the title, the
	// way the ceramics board displays it.
	withCategory bool
}

// kboard handles WordPress KBoard plugin tables.
type kboard struct {
	src   Source
	clock notice.Clock
	opts  kboardOptions
}

func newKBoard(opts kboardOptions) func(Source, Deps) Adapter {
	return func(src Source, deps Deps) Adapter {
		return &kboard{src: src, clock: deps.Clock, opts: opts}
	}
}

func (a *kboard) SelectCandidates(doc *goquery.Document) []*goquery.Selection {
	return eachSelection(doc.Find(a.opts.rowSelector))
}

func (a *kboard) Extract(_ context.Context, sel *goquery.Selection) *notice.Notice {
	titleTag := sel.Find(a.opts.titleSelector).First()
	if titleTag.Length() == 0 {
		return nil
	}

	title := notice.CleanTitle(titleTag.Text())
	if a.opts.withCategory {
		category := strings.TrimSpace(sel.Find("span.category1").First().Text())
		if category != "" {
			// The category label is rendered inside the anchor text too.
			title = strings.TrimSpace(strings.TrimPrefix(title, category))
			title = category + " " + title
		}
	}
	if title == "" {
		return nil
	}
	if sel.HasClass("kboard-list-notice") {
		title = notice.MarkPinned(title)
	}

	link := notice.ResolveLink(a.src.URL, titleTag.AttrOr("href", ""))
	if link == "" {
		return nil
	}

	published := notice.ParseDate(sel.Find(".kboard-list-date").First().Text(), a.clock.Now())

	return &notice.Notice{
		Title:     title,
		Link:      link,
		Published: published,
		SourceID:  a.src.ID,
	}
}
