// Package notice defines the core types shared across the scraping pipeline.
package notice

import (
	"fmt"
	"time"
)

// Seoul is the civil timezone every published timestamp is anchored to,
// regardless of how the source represents dates.
var Seoul = loadSeoul()

func loadSeoul() *time.Location {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		// Containers without tzdata still get the correct fixed offset.
		return time.FixedZone("KST", 9*60*60)
	}
	return loc
}

// Notice is a single extracted announcement record. It is immutable once
// constructed; corrections require re-scraping.
type Notice struct {
	Title     string    `json:"title"`
	Link      string    `json:"link"`
	Published time.Time `json:"published"`
	SourceID  string    `json:"source_id"`
}

// String renders the notice for human-readable logs and alerts.
func (n Notice) String() string {
	return fmt.Sprintf("%s (%s) %s", n.Title, n.Published.Format("2006-01-02"), n.Link)
}

// Known is the title/link projection of a previously persisted notice,
// used purely for dedup comparison.
type Known struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// RunResult is the structured outcome of one source's pipeline run,
// returned to the orchestration boundary.
type RunResult struct {
	SourceID   string `json:"source_id"`
	Success    bool   `json:"success"`
	TotalFound int    `json:"total_found"`
	NewCount   int    `json:"new_notices_count"`
	SavedCount int    `json:"saved_count"`
	Err        string `json:"error,omitempty"`
}
