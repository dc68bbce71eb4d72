package activity

import (
	"fmt"
	"time"
)

// RelativeTime renders how long ago t happened relative to now: "just
// now" under a minute, then minutes, hours, and days, falling back to a
// short date once a week has passed.
func RelativeTime(t, now time.Time) string {
	diff := now.Sub(t)

	mins := int(diff.Minutes())
	hours := int(diff.Hours())
	days := hours / 24

	switch {
	case mins < 1:
		return "just now"
	case mins < 60:
		return fmt.Sprintf("%dm ago", mins)
	case hours < 24:
		return fmt.Sprintf("%dh ago", hours)
	case days < 7:
		return fmt.Sprintf("%dd ago", days)
	default:
		return t.Format("Jan 2")
	}
}
