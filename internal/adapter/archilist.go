package adapter

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/kookmin-feed/notice-crawler/internal/notice"
)

// archiList handles the architecture college board. The title class
// carries the site's own typo ("borad").
type archiList struct {
	src   Source
	clock notice.Clock
}

func newArchiList(src Source, deps Deps) Adapter {
	return &archiList{src: src, clock: deps.Clock}
}

func (a *archiList) SelectCandidates(doc *goquery.Document) []*goquery.Selection {
	return eachSelection(doc.Find(".board-list-type01 li"))
}

func (a *archiList) Extract(_ context.Context, sel *goquery.Selection) *notice.Notice {
	aTag := sel.Find("a").First()
	if aTag.Length() == 0 {
		return nil
	}
	title := notice.CleanTitle(sel.Find(".borad-list-tit").First().Text())
	if title == "" {
		return nil
	}

	href := aTag.AttrOr("href", "")
	link := href
	if !strings.HasPrefix(href, "http") {
		link = notice.JoinPath(a.src.URL, href)
	}
	if link == "" {
		return nil
	}

	dateText := strings.TrimSpace(sel.Find(".board-list-date").First().Text())
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
