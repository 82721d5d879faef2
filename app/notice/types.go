package notice

import (
	"time"
)

// Notice is the canonical record shape every source is normalized into.
// StartDate and EndDate are "YYYY-MM-DD" strings; the empty string means
// "unscheduled" and "open-ended / no deadline" respectively. URL is the
// dedup key across fetch cycles and across sources.
type Notice struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Agency      string    `json:"agency"`
	StartDate   string    `json:"startDate"`
	EndDate     string    `json:"endDate"`
	Region      string    `json:"region"`
	Category    string    `json:"category"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	Description string    `json:"description"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Filter holds the conjunctive query parameters. Zero values disable the
// corresponding filter, as do the RegionAll/CategoryAll sentinels.
type Filter struct {
	Keyword       string
	Region        string
	Category      string
	Agency        string
	StartDateFrom string
	StartDateTo   string
	EndDateFrom   string
	EndDateTo     string
}

// Sentinel values sent by the UI to disable a filter.
const (
	RegionAll   = "전체 지역"
	CategoryAll = "전체 분야"
)

// Sort modes
const (
	SortRecent   = "recent"   // StartDate descending (default)
	SortDeadline = "deadline" // EndDate ascending, no-deadline records last
	SortCrawled  = "crawled"  // FetchedAt descending
)
