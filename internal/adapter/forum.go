package adapter

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/kookmin-feed/notice-crawler/internal/notice"
)

var forumPostID = regexp.MustCompile(`global\.write\('(\d+)'`)

// forum handles the Bukak political forum board. Rows link through an
// onclick handler rather than an href, and the session's round and
// speaker are folded into the title.
type forum struct {
	src     Source
	viewURL string
	clock   notice.Clock
}

func newForum(src Source, deps Deps) Adapter {
	viewURL := strings.TrimSuffix(src.URL, "index.do") + "view.do"
	return &forum{src: src, viewURL: viewURL, clock: deps.Clock}
}

func (a *forum) SelectCandidates(doc *goquery.Document) []*goquery.Selection {
	return eachSelection(doc.Find(".board_list ul li"))
}

func (a *forum) Extract(_ context.Context, sel *goquery.Selection) *notice.Notice {
	aTag := sel.Find("a").First()
	if aTag.Length() == 0 {
		return nil
	}
	titleTag := aTag.Find("p.title").First()
	if titleTag.Length() == 0 {
		return nil
	}
	title := notice.CleanTitle(titleTag.Text())
	if title == "" {
		return nil
	}
	if speaker := notice.CleanTitle(aTag.Find("p.desc").First().Text()); speaker != "" {
		title = fmt.Sprintf("[%s] %s", speaker, title)
	}
	if round := notice.CleanTitle(aTag.Find(".ctg_name em").First().Text()); round != "" {
		title = fmt.Sprintf("[%s] %s", round, title)
	}

	link := a.src.URL
	if m := forumPostID.FindStringSubmatch(aTag.AttrOr("onclick", "")); m != nil {
		link = fmt.Sprintf("%s?dataSeq=%s", a.viewURL, m[1])
	}

	// The first span holds "일시 및 기간: 2025.04.29 (18:45~20:15)".
	dateText := aTag.Find(".board_etc span").First().Text()
	published := notice.FindDate(dateText, a.clock.Now())

	return &notice.Notice{
		Title:     title,
		Link:      link,
		Published: published,
		SourceID:  a.src.ID,
	}
}
