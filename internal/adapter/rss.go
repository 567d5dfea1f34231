package adapter

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"time"

	"github.com/SlyMarbo/rss"
	"github.com/samber/lo"

	"github.com/kookmin-feed/notice-crawler/internal/notice"
)

// feedClient tolerates the campus boards' broken certificates.
var feedClient = &http.Client{
	Timeout: 30 * time.Second,
	Transport: &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // campus boards run broken certs
	},
}

// FetchFeed reads a source's RSS feed and returns up to limit notices in
// feed order, along with the total item count before the limit was
// applied. Items without a parseable date get the current time.
func FetchFeed(ctx context.Context, src Source, limit int, clock notice.Clock) ([]notice.Notice, int, error) {
	feed, err := loadFeed(ctx, src.URL)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch feed %s: %w", src.ID, err)
	}

	items := feed.Items
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	notices := lo.Map(items, func(item *rss.Item, _ int) notice.Notice {
		published := clock.Now()
		if item.DateValid {
			published = item.Date.In(notice.Seoul)
		}
		return notice.Notice{
			Title:     notice.CleanTitle(item.Title),
			Link:      item.Link,
			Published: published,
			SourceID:  src.ID,
		}
	})

	return notices, len(feed.Items), nil
}

func loadFeed(ctx context.Context, url string) (*rss.Feed, error) {
	var (
		feedCh = make(chan *rss.Feed, 1)
		errCh  = make(chan error, 1)
	)

	go func() {
		feed, err := rss.FetchByClient(url, feedClient)
		if err != nil {
			errCh <- err
			return
		}
		feedCh <- feed
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case err := <-errCh:
		return nil, err
	case feed := <-feedCh:
		return feed, nil
	}
}
