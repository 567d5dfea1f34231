package notice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDateFormats(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 8, 31, 12, 0, 0, 0, Seoul)
	want := time.Date(2025, 8, 20, 0, 0, 0, 0, Seoul)

	require.Equal(t, want, ParseDate("2025-08-20", now))
	require.Equal(t, want, ParseDate("2025.08.20", now))
	require.Equal(t, want, ParseDate("25.08.20", now))
	require.Equal(t, want, ParseDate("8월 20일", now))
}

func TestParseDateRFC1123(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 8, 31, 12, 0, 0, 0, Seoul)
	got := ParseDate("Wed, 20 Aug 2025 01:30:00 +0900", now)
	require.Equal(t, time.Date(2025, 8, 20, 1, 30, 0, 0, Seoul).Unix(), got.Unix())
}

func TestParseDateFallbacks(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 8, 31, 12, 0, 0, 0, Seoul)
	require.Equal(t, now, ParseDate("번호", now))
	require.Equal(t, now, ParseDate("", now))

	today := time.Date(2025, 8, 31, 0, 0, 0, 0, Seoul)
	require.Equal(t, today, ParseDate("오후 3:12", now))
}

func TestFindDate(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 8, 31, 12, 0, 0, 0, Seoul)
	got := FindDate("작성일 2025.08.20 조회수 391", now)
	require.Equal(t, time.Date(2025, 8, 20, 0, 0, 0, 0, Seoul), got)
	require.Equal(t, now, FindDate("조회수 391", now))
}
