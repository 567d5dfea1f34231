package adapter

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/kookmin-feed/notice-crawler/internal/notice"
)

// chemPHP handles the applied chemistry department's legacy PHP board,
// served as EUC-KR. The first table row is the header.
type chemPHP struct {
	src     Source
	baseDir string
	clock   notice.Clock
}

func newChemPHP(src Source, deps Deps) Adapter {
	baseDir := src.URL
	if i := strings.LastIndex(baseDir, "/"); i >= 0 {
		baseDir = baseDir[:i+1]
	}
	return &chemPHP{src: src, baseDir: baseDir, clock: deps.Clock}
}

func (a *chemPHP) SelectCandidates(doc *goquery.Document) []*goquery.Selection {
	rows := eachSelection(doc.Find("div#ezsBBS table").First().Find("tr"))
	if len(rows) <= 1 {
		return nil
	}
	return rows[1:]
}

func (a *chemPHP) Extract(_ context.Context, sel *goquery.Selection) *notice.Notice {
	titleTag := sel.Find("td ul li a.Board").First()
	if titleTag.Length() == 0 {
		return nil
	}
	title := notice.CleanTitle(titleTag.Text())
	if title == "" {
		return nil
	}

	href := titleTag.AttrOr("href", "")
	var link string
	if strings.HasPrefix(href, "/") {
		link = notice.ResolveLink(a.src.URL, href)
	} else {
		link = notice.JoinPath(a.baseDir, href)
	}
	if link == "" {
		return nil
	}

	// Center-aligned cells run number, date, views.
	published := a.clock.Now()
	cells := sel.Find("td.txtc.txtN")
	if cells.Length() >= 3 {
		published = notice.ParseDate(strings.TrimSpace(cells.Eq(1).Text()), a.clock.Now())
	}

	return &notice.Notice{
		Title:     title,
		Link:      link,
		Published: published,
		SourceID:  a.src.ID,
	}
}
