package notice

import (
	"regexp"
	"strings"
)

// PinnedTag marks notices the source displays as always-on-top.
const PinnedTag = "[공지]"

// readMoreSuffix is the screen-reader hint most Kookmin CMS boards append
// to the anchor text and title attribute.
const readMoreSuffix = " 자세히 보기"

var whitespaceRun = regexp.MustCompile(`\s+`)

// CleanTitle normalizes scraped title text: collapses whitespace runs to
// single spaces and strips the trailing "read more" marker.
func CleanTitle(raw string) string {
	title := whitespaceRun.ReplaceAllString(strings.TrimSpace(raw), " ")
	return strings.TrimSpace(strings.TrimSuffix(title, readMoreSuffix))
}

// RecoverTruncated prefers the full-text attribute over a visibly truncated
// title. The attribute is used only when the visible text ends in an
// ellipsis and the attribute itself carries usable, untruncated text.
func RecoverTruncated(visible, attr string) string {
	if !truncated(visible) {
		return visible
	}
	full := CleanTitle(attr)
	if full == "" || truncated(full) {
		return visible
	}
	return full
}

func truncated(title string) bool {
	return strings.HasSuffix(title, "...") || strings.HasSuffix(title, "…")
}

// MarkPinned prepends the pinned tag exactly once. Applying it to an
// already tagged title is a no-op.
func MarkPinned(title string) string {
	if strings.HasPrefix(title, PinnedTag) {
		return title
	}
	return PinnedTag + " " + title
}
