package notice

import (
	"sort"
	"strings"
)

// Date-range bounds applied when only one side of a range is supplied.
const (
	rangeFloor   = "1970-01-01"
	rangeCeiling = "2099-12-31"
)

// Apply filters and sorts an in-memory record set. Pure function: never
// performs I/O, never mutates the input slice. All filters are conjunctive.
func Apply(records []Notice, f Filter, sortMode string) []Notice {
	result := filter(records, f)
	sortNotices(result, sortMode)
	return result
}

func filter(records []Notice, f Filter) []Notice {
	result := make([]Notice, 0, len(records))
	for _, n := range records {
		if matches(n, f) {
			result = append(result, n)
		}
	}
	return result
}

func matches(n Notice, f Filter) bool {
	if f.Keyword != "" {
		kw := strings.ToLower(f.Keyword)
		if !strings.Contains(strings.ToLower(n.Title), kw) &&
			!strings.Contains(strings.ToLower(n.Description), kw) &&
			!strings.Contains(strings.ToLower(n.Agency), kw) {
			return false
		}
	}

	if f.Region != "" && f.Region != RegionAll && n.Region != f.Region {
		return false
	}

	if f.Category != "" && f.Category != CategoryAll {
		if !strings.Contains(n.Category, f.Category) {
			return false
		}
	}

	if f.Agency != "" && !strings.Contains(n.Agency, f.Agency) {
		return false
	}

	if f.StartDateFrom != "" || f.StartDateTo != "" {
		// Unscheduled records are excluded whenever a bound is supplied.
		if n.StartDate == "" || !inRange(n.StartDate, f.StartDateFrom, f.StartDateTo) {
			return false
		}
	}

	if f.EndDateFrom != "" || f.EndDateTo != "" {
		// Strict filter: open-ended records are not "always in range".
		if n.EndDate == "" || !inRange(n.EndDate, f.EndDateFrom, f.EndDateTo) {
			return false
		}
	}

	return true
}

// inRange compares canonical YYYY-MM-DD strings; lexicographic order is
// chronological order for this format.
func inRange(date, from, to string) bool {
	if from == "" {
		from = rangeFloor
	}
	if to == "" {
		to = rangeCeiling
	}
	return date >= from && date <= to
}

func sortNotices(records []Notice, sortMode string) {
	switch sortMode {
	case SortDeadline:
		sort.SliceStable(records, func(i, j int) bool {
			a, b := records[i].EndDate, records[j].EndDate
			if a == "" {
				return false
			}
			if b == "" {
				return true
			}
			return a < b
		})
	case SortCrawled:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].FetchedAt.After(records[j].FetchedAt)
		})
	default: // SortRecent
		// Descending; the empty string sorts last, matching the
		// "unscheduled is the earliest possible instant" rule.
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].StartDate > records[j].StartDate
		})
	}
}
