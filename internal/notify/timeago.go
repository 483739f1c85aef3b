package notify

import (
	"fmt"
	"time"
)

// TimeAgo renders the age of createdAt relative to now. Bands: under a
// minute "just now", under an hour minutes, under a day hours, then days.
func TimeAgo(createdAt, now time.Time) string {
	d := now.Sub(createdAt)
	if d < 0 {
		d = 0
	}

	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%d min ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour")
	default:
		return plural(int(d.Hours()/24), "day")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
