package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kookmin-feed/notice-crawler/internal/notice"
)

type fakeClock struct{ t time.Time }

func (c fakeClock) Now() time.Time { return c.t }

func TestMemoryRoundTrip(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 8, 31, 12, 0, 0, 0, notice.Seoul)
	s := NewMemory(fakeClock{t: now}, 90)
	ctx := context.Background()

	known, err := s.Recent(ctx, "arts_academic")
	require.NoError(t, err)
	require.Empty(t, known)

	saved, err := s.SaveAll(ctx, "arts_academic", []notice.Notice{
		{Title: "a", Link: "https://x/1", Published: now, SourceID: "arts_academic"},
		{Title: "b", Link: "https://x/2", Published: now.AddDate(0, 0, -10), SourceID: "arts_academic"},
	})
	require.NoError(t, err)
	require.Equal(t, 2, saved)

	known, err = s.Recent(ctx, "arts_academic")
	require.NoError(t, err)
	require.Len(t, known, 2)
	require.Equal(t, notice.Known{Title: "a", Link: "https://x/1"}, known[0])
}

func TestMemorySaveAllSkipsDuplicateLinks(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 8, 31, 12, 0, 0, 0, notice.Seoul)
	s := NewMemory(fakeClock{t: now}, 90)
	ctx := context.Background()

	_, err := s.SaveAll(ctx, "s", []notice.Notice{{Title: "a", Link: "l", Published: now}})
	require.NoError(t, err)

	saved, err := s.SaveAll(ctx, "s", []notice.Notice{
		{Title: "a2", Link: "l", Published: now},
		{Title: "b", Link: "l2", Published: now},
	})
	require.NoError(t, err)
	require.Equal(t, 1, saved)
}

func TestMemoryRecentHonorsLookback(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 8, 31, 12, 0, 0, 0, notice.Seoul)
	s := NewMemory(fakeClock{t: now}, 90)
	ctx := context.Background()

	_, err := s.SaveAll(ctx, "s", []notice.Notice{
		{Title: "old", Link: "l1", Published: now.AddDate(0, 0, -120)},
		{Title: "new", Link: "l2", Published: now.AddDate(0, 0, -5)},
	})
	require.NoError(t, err)

	known, err := s.Recent(ctx, "s")
	require.NoError(t, err)
	require.Len(t, known, 1)
	require.Equal(t, "new", known[0].Title)
}

func TestMemorySaveAllEmpty(t *testing.T) {
	t.Parallel()

	s := NewMemory(fakeClock{t: time.Now()}, 90)
	saved, err := s.SaveAll(context.Background(), "s", nil)
	require.NoError(t, err)
	require.Zero(t, saved)
}
