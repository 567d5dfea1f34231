package adapter

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/kookmin-feed/notice-crawler/internal/notice"
)

// lincList handles the LINC program board.
type lincList struct {
	src   Source
	base  string
	clock notice.Clock
}

func newLincList(src Source, deps Deps) Adapter {
	base := src.URL
	if i := strings.Index(base, "?"); i >= 0 {
		base = base[:i]
	}
	return &lincList{src: src, base: base, clock: deps.Clock}
}

func (a *lincList) SelectCandidates(doc *goquery.Document) []*goquery.Selection {
	return eachSelection(doc.Find(".board_list .content_wrap li"))
}

func (a *lincList) Extract(_ context.Context, sel *goquery.Selection) *notice.Notice {
	aTag := sel.Find("a").First()
	if aTag.Length() == 0 {
		return nil
	}
	title := notice.CleanTitle(aTag.Find(".tit0").First().Text())
	if title == "" {
		return nil
	}
	if sel.Find(".icon_notice").Length() > 0 {
		title = notice.MarkPinned(title)
	}

	href := strings.TrimSpace(aTag.AttrOr("href", ""))
	var link string
	switch {
	case strings.HasPrefix(href, "http"):
		link = href
	case strings.HasPrefix(href, "?"):
		// Board hrefs are query strings relative to the menu endpoint.
		link = a.base + href
	default:
		link = notice.ResolveLink(a.src.URL, href)
	}

	dateText := strings.TrimSpace(sel.Find(".date").First().Text())
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
