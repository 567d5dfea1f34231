package notice

import "github.com/samber/lo"

// KnownSets indexes a stored snapshot for membership checks.
type KnownSets struct {
	titles map[string]struct{}
	links  map[string]struct{}
}

// IndexKnown builds lookup sets over the titles and links of previously
// stored notices.
func IndexKnown(known []Known) KnownSets {
	return KnownSets{
		titles: lo.SliceToMap(known, func(k Known) (string, struct{}) { return k.Title, struct{}{} }),
		links:  lo.SliceToMap(known, func(k Known) (string, struct{}) { return k.Link, struct{}{} }),
	}
}

// Seen reports whether a notice matches the snapshot by title or by link.
// Either match suffices: boards renumber article URLs on migration and
// editors retitle pinned posts, so one stable key is enough.
func (s KnownSets) Seen(n Notice) bool {
	if _, ok := s.titles[n.Title]; ok {
		return true
	}
	_, ok := s.links[n.Link]
	return ok
}

// Diff returns the notices absent from the snapshot, preserving scrape
// order.
func Diff(scraped []Notice, known []Known) []Notice {
	sets := IndexKnown(known)
	return lo.Filter(scraped, func(n Notice, _ int) bool {
		return !sets.Seen(n)
	})
}
