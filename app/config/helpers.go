package config

import (
	"time"
)

// GetTimeout returns the fetch timeout as time.Duration
func (s *SourceSettings) GetTimeout() time.Duration {
	if s.Timeout <= 0 {
		return 8 * time.Second // default per-source fetch bound
	}
	return time.Duration(s.Timeout) * time.Second
}

// GetNumRows returns the page size, falling back to the source's own
// default when the configuration leaves it unset.
func (s *SourceSettings) GetNumRows(fallback int) int {
	if s.NumRows <= 0 {
		return fallback
	}
	return s.NumRows
}
