package notice

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Namespace for deriving stable notice IDs from canonical URLs. The same
// upstream item therefore keeps the same ID across fetch cycles, unlike the
// per-fetch surrogate IDs the upstream APIs hand out.
var urlNamespace = uuid.MustParse("9f2c1f5e-8a3b-4c6d-9e0f-1a2b3c4d5e6f")

// StableID derives a deterministic notice ID from the canonical URL.
func StableID(url string) string {
	return uuid.NewSHA1(urlNamespace, []byte(url)).String()
}

// Today returns the current date in canonical YYYY-MM-DD form.
func Today() string {
	return time.Now().Format("2006-01-02")
}

// NormalizeDate reformats the date encodings the upstream APIs use into
// YYYY-MM-DD. Handled inputs: "YYYYMMDD", "YYYYMMDDHHmm[ss]",
// "YYYY-MM-DD", and "YYYY-MM-DD HH:mm[:ss]" style timestamps. Returns the
// empty string when the value cannot be resolved to a valid calendar date.
func NormalizeDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	// Timestamp variants carry the date in front of a space.
	if i := strings.IndexByte(raw, ' '); i > 0 {
		raw = raw[:i]
	}

	if isDigits(raw) && len(raw) >= 8 {
		// YYYYMMDD, optionally followed by HHmm or HHmmss
		d := raw[:8]
		formatted := d[:4] + "-" + d[4:6] + "-" + d[6:8]
		if _, err := time.Parse("2006-01-02", formatted); err != nil {
			return ""
		}
		return formatted
	}

	if len(raw) >= 10 {
		// ISO date, possibly with a T-separated time portion
		d := raw[:10]
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return ""
		}
		return d
	}

	return ""
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
