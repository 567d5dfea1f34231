package adapter

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/kookmin-feed/notice-crawler/internal/fetch"
	"github.com/kookmin-feed/notice-crawler/internal/notice"
)

// boardList handles the www.kookmin.ac.kr board_list markup. Pinned rows
// omit the list date, so their date comes from the detail page.
type boardList struct {
	src     Source
	fetcher fetch.Fetcher
	clock   notice.Clock
	logger  *zap.Logger
}

func newBoardList(src Source, deps Deps) Adapter {
	return &boardList{src: src, fetcher: deps.Fetcher, clock: deps.Clock, logger: deps.Logger}
}

func (a *boardList) SelectCandidates(doc *goquery.Document) []*goquery.Selection {
	return eachSelection(doc.Find("div.board_list > ul > li"))
}

func (a *boardList) Extract(ctx context.Context, sel *goquery.Selection) *notice.Notice {
	aTag := sel.Find("a").First()
	if aTag.Length() == 0 {
		return nil
	}
	pinned := sel.HasClass("notice")

	titleTag := aTag.Find("div.board_txt p.title").First()
	if titleTag.Length() == 0 {
		titleTag = aTag.Find("p.title").First()
	}
	if titleTag.Length() == 0 {
		return nil
	}
	title := notice.CleanTitle(titleTag.Text())
	if title == "" {
		return nil
	}
	if pinned {
		title = notice.MarkPinned(title)
	}

	link := notice.ResolveLink(a.src.URL, aTag.AttrOr("href", ""))
	if link == "" {
		return nil
	}

	published, ok := a.listDate(sel)
	if !ok {
		published = a.detailDate(ctx, link)
	}

	return &notice.Notice{
		Title:     title,
		Link:      link,
		Published: published,
		SourceID:  a.src.ID,
	}
}

func (a *boardList) listDate(sel *goquery.Selection) (time.Time, bool) {
	text := strings.TrimSpace(sel.Find("div.board_etc span").First().Text())
	if text == "" {
		return time.Time{}, false
	}
	now := a.clock.Now()
	published := notice.ParseDate(text, now)
	// ParseDate falls back to now for unrecognized text; treat that as a
	// miss so the detail page gets a chance.
	if published.Equal(now) {
		return time.Time{}, false
	}
	return published, true
}

// detailDate fetches the notice's own page and reads the date from its
// header block.
func (a *boardList) detailDate(ctx context.Context, link string) time.Time {
	now := a.clock.Now()
	page, err := a.fetcher.Fetch(ctx, fetch.Request{URL: link})
	if err != nil {
		a.logger.Warn("detail page fetch failed", zap.String("link", link), zap.Error(err))
		return now
	}
	doc, err := page.Document()
	if err != nil {
		a.logger.Warn("detail page parse failed", zap.String("link", link), zap.Error(err))
		return now
	}
	text := doc.Find("div.view_top div.board_etc span").First().Text()
	return notice.FindDate(text, now)
}
