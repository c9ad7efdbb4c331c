package analysis

import (
	"fmt"
	"strings"
	"time"
)

// Granularity selects the time bucket size for trend aggregation.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
	GranularityYear  Granularity = "year"
)

// ParseGranularity maps a request parameter to a Granularity, ignoring
// case. Unknown or empty values fall back to month.
func ParseGranularity(s string) Granularity {
	switch Granularity(strings.ToLower(s)) {
	case GranularityDay, GranularityWeek, GranularityMonth, GranularityYear:
		return Granularity(s)
	default:
		return GranularityMonth
	}
}

// BucketKey maps a date to its canonical bucket key for the granularity:
// day "2006-01-02", week ISO "2006-W02", month "2006-01", year "2006".
// Keys sort chronologically as strings thanks to the zero padding.
func BucketKey(date time.Time, g Granularity) string {
	switch g {
	case GranularityDay:
		return date.Format("2006-01-02")
	case GranularityWeek:
		year, week := date.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case GranularityYear:
		return date.Format("2006")
	default:
		return date.Format("2006-01")
	}
}

// LocalDate converts an epoch-second timestamp to its local calendar date,
// truncated to midnight.
func LocalDate(epoch int64) time.Time {
	t := time.Unix(epoch, 0)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
