package notice

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	isoDate     = regexp.MustCompile(`^(\d{4})[.\-/](\d{1,2})[.\-/](\d{1,2})$`)
	shortDate   = regexp.MustCompile(`^(\d{2})\.(\d{1,2})\.(\d{1,2})$`)
	koreanDate  = regexp.MustCompile(`(\d{1,2})월\s*(\d{1,2})일`)
	anyDateText = regexp.MustCompile(`(\d{4})[.\-/](\d{1,2})[.\-/](\d{1,2})`)
)

// ParseDate interprets the date formats the notice boards emit, most
// common first. Korean month-day strings assume the current year. Strings
// that match nothing resolve to now, which keeps a notice with a mangled
// date inside the recency window instead of silently dropping it.
func ParseDate(raw string, now time.Time) time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return now
	}
	if m := isoDate.FindStringSubmatch(s); m != nil {
		return dateOf(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}
	if m := shortDate.FindStringSubmatch(s); m != nil {
		return dateOf(2000+atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}
	if t, err := time.Parse(time.RFC1123Z, s); err == nil {
		return t.In(Seoul)
	}
	if t, err := time.Parse(time.RFC1123, s); err == nil {
		return t.In(Seoul)
	}
	if m := koreanDate.FindStringSubmatch(s); m != nil {
		return dateOf(now.In(Seoul).Year(), atoi(m[1]), atoi(m[2]))
	}
	// 오전/오후 timestamps mean the item was posted today.
	if strings.Contains(s, "오전") || strings.Contains(s, "오후") {
		y, mo, d := now.In(Seoul).Date()
		return dateOf(y, int(mo), d)
	}
	return now
}

// FindDate scans free text (detail-page headers mix the date with views
// and author) for the first year-month-day group.
func FindDate(text string, now time.Time) time.Time {
	if m := anyDateText.FindStringSubmatch(text); m != nil {
		return dateOf(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}
	return now
}

func dateOf(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, Seoul)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
