package notice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	t.Parallel()

	known := []Known{
		{Title: "기존 공지", Link: "https://x/1"},
		{Title: "이전 제목", Link: "https://x/2"},
	}
	scraped := []Notice{
		{Title: "새 공지", Link: "https://x/3"},
		{Title: "기존 공지", Link: "https://x/99"}, // same title, migrated link
		{Title: "바뀐 제목", Link: "https://x/2"},  // same link, edited title
		{Title: "또 다른 새 공지", Link: "https://x/4"},
	}

	got := Diff(scraped, known)
	require.Len(t, got, 2)
	require.Equal(t, "새 공지", got[0].Title)
	require.Equal(t, "또 다른 새 공지", got[1].Title)
}

func TestDiffEmptySnapshot(t *testing.T) {
	t.Parallel()

	scraped := []Notice{{Title: "a", Link: "l"}}
	require.Equal(t, scraped, Diff(scraped, nil))
}

func TestRecentInclusiveBoundary(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 8, 31, 0, 0, 0, 0, Seoul)
	onBoundary := Notice{Title: "boundary", Published: now.AddDate(0, 0, -30)}
	inside := Notice{Title: "inside", Published: now.AddDate(0, 0, -1)}
	outside := Notice{Title: "outside", Published: now.AddDate(0, 0, -31)}

	got := Recent([]Notice{onBoundary, inside, outside}, now, 30)
	require.Len(t, got, 2)
	require.Equal(t, "boundary", got[0].Title)
	require.Equal(t, "inside", got[1].Title)
}
