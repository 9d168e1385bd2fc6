package feed

import (
	"strings"
	"time"
)

// ElectionDay returns the US general election day of a year: the first Tuesday after the first
// Monday of November.
func ElectionDay(year int) time.Time {
	d := time.Date(year, time.November, 1, 0, 0, 0, 0, time.UTC)
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}
	return d.AddDate(0, 0, 1)
}

// ElectionDate formats ElectionDay as used in feed URLs.
func ElectionDate(year int) string {
	return ElectionDay(year).Format("2006-01-02")
}

// joinURL joins URL segments with single slashes.
func joinURL(parts ...string) string {
	cleaned := make([]string, 0, len(parts))
	for i, p := range parts {
		if i > 0 {
			p = strings.TrimPrefix(p, "/")
		}
		if i < len(parts)-1 {
			p = strings.TrimSuffix(p, "/")
		}
		if p != "" {
			cleaned = append(cleaned, p)
		}
	}
	return strings.Join(cleaned, "/")
}
