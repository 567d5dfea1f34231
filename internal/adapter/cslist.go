package adapter

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/kookmin-feed/notice-crawler/internal/notice"
)

// csList handles the cs.kookmin.ac.kr news boards. Rows carry either a
// normal-bg or a notice-bg class; notice-bg rows are pinned.
type csList struct {
	src   Source
	clock notice.Clock
}

func newCSList(src Source, deps Deps) Adapter {
	return &csList{src: src, clock: deps.Clock}
}

func (a *csList) SelectCandidates(doc *goquery.Document) []*goquery.Selection {
	return eachSelection(doc.Find(".list-tbody .normal-bg, .list-tbody .notice-bg"))
}

func (a *csList) Extract(_ context.Context, sel *goquery.Selection) *notice.Notice {
	titleTag := sel.Find(".subject a").First()
	if titleTag.Length() == 0 {
		return nil
	}

	title := notice.CleanTitle(titleTag.Text())
	if title == "" {
		return nil
	}
	if sel.HasClass("notice-bg") {
		title = notice.MarkPinned(title)
	}

	link := titleTag.AttrOr("href", "")
	if !strings.HasPrefix(link, "http") {
		link = notice.JoinPath(a.src.URL, link)
	}

	published := notice.ParseDate(sel.Find(".date").First().Text(), a.clock.Now())

	return &notice.Notice{
		Title:     title,
		Link:      link,
		Published: published,
		SourceID:  a.src.ID,
	}
}
