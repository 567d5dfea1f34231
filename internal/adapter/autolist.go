package adapter

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/kookmin-feed/notice-crawler/internal/notice"
)

// autoList handles the automotive college board: a main list plus a
// separate aside block holding the pinned posts.
type autoList struct {
	src   Source
	base  string
	clock notice.Clock
}

func newAutoList(src Source, deps Deps) Adapter {
	base := src.URL
	if i := strings.Index(base, "?"); i >= 0 {
		base = base[:i]
	}
	return &autoList{src: src, base: base, clock: deps.Clock}
}

func (a *autoList) SelectCandidates(doc *goquery.Document) []*goquery.Selection {
	main := eachSelection(doc.Find("div.list-type01.list-l > ul > li"))
	aside := eachSelection(doc.Find("div.aside-list-area ul li.aside-list"))
	return append(main, aside...)
}

func (a *autoList) Extract(_ context.Context, sel *goquery.Selection) *notice.Notice {
	aTag := sel.Find("a").First()
	if aTag.Length() == 0 {
		return nil
	}
	href := strings.TrimSpace(aTag.AttrOr("href", ""))
	if href == "" {
		return nil
	}

	var title, dateText string
	pinned := false
	if titleTag := sel.Find("strong.list01-tit").First(); titleTag.Length() > 0 {
		title = notice.CleanTitle(titleTag.Text())
		dateText = sel.Find("span.list01-date").First().Text()
	} else {
		// Aside rows keep the title in a bare strong and the date in a
		// bare span inside the anchor.
		title = notice.CleanTitle(aTag.Find("strong").First().Text())
		dateText = aTag.Find("span").First().Text()
		pinned = true
	}
	if title == "" {
		return nil
	}
	if pinned {
		title = notice.MarkPinned(title)
	}

	link := href
	if !strings.HasPrefix(href, "http") {
		link = notice.JoinPath(a.base, href)
	}

	published := notice.ParseDate(strings.TrimSpace(dateText), a.clock.Now())

	return &notice.Notice{
		Title:     title,
		Link:      link,
		Published: published,
		SourceID:  a.src.ID,
	}
}
