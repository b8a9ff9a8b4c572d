package queries

import (
	"fmt"
	"time"
)

// AbsoluteTimeLayout is used for timestamps a week old or older
const AbsoluteTimeLayout = "Jan 2, 2006 15:04"

const week = 7 * 24 * time.Hour

// FormatRelativeTime renders ts relative to now. Each bucket includes its
// lower bound and excludes its upper bound. Future timestamps read "just now".
func FormatRelativeTime(ts, now time.Time) string {
	diff := now.Sub(ts)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return plural(int(diff/time.Minute), "minute")
	case diff < 24*time.Hour:
		return plural(int(diff/time.Hour), "hour")
	case diff < week:
		return plural(int(diff/(24*time.Hour)), "day")
	default:
		return ts.In(now.Location()).Format(AbsoluteTimeLayout)
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
