package adapter

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/kookmin-feed/notice-crawler/internal/notice"
)

// artsList handles the arts college board, which lays each row out as a
// ul of li cells.
type artsList struct {
	src   Source
	clock notice.Clock
}

func newArtsList(src Source, deps Deps) Adapter {
	return &artsList{src: src, clock: deps.Clock}
}

func (a *artsList) SelectCandidates(doc *goquery.Document) []*goquery.Selection {
	return eachSelection(doc.Find("div.list-tbody > ul"))
}

func (a *artsList) Extract(_ context.Context, sel *goquery.Selection) *notice.Notice {
	subject := sel.Find("li.subject").First()
	aTag := subject.Find("a").First()
	if aTag.Length() == 0 {
		return nil
	}

	title := notice.CleanTitle(aTag.Text())
	if title == "" {
		return nil
	}
	if sel.Find("li.notice").Length() > 0 {
		title = notice.MarkPinned(title)
	}

	href := aTag.AttrOr("href", "")
	var link string
	switch {
	case strings.HasPrefix(href, "/"):
		link = notice.ResolveLink(a.src.URL, href)
	default:
		link = notice.JoinPath(a.src.URL, href)
	}
	if link == "" {
		return nil
	}

	dateText := strings.TrimSpace(sel.Find("li.date").First().Text())
	if dateText == "" {
		return nil
	}
	published := notice.ParseDate(dateText, a.clock.Now())

	return &notice.Notice{
		Title:     title,
		Link:      link,
		Published: published,
		SourceID:  a.src.ID,
	}
}
