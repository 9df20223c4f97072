package uiutil

import (
	"strconv"
	"strings"
	"time"
)

// Display layouts.
const (
	FriendlyDateTimeLayout = "Jan 2, 2006 3:04 PM"
	FriendlyDateLayout     = "2 Jan 2006"
)

// FriendlyRelativeTime returns a human-friendly description of how long ago t occurred.
// Times in the future read "just now".
func FriendlyRelativeTime(t time.Time, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return plural(int(diff.Minutes()), "minute") + " ago"
	case diff < 24*time.Hour:
		return plural(int(diff.Hours()), "hour") + " ago"
	case diff < 7*24*time.Hour:
		return plural(int(diff.Hours()/24), "day") + " ago"
	default:
		return FormatFriendlyDate(t)
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return strconv.Itoa(n) + " " + unit + "s"
}

// FormatFriendlyDateTime returns a local timestamp such as "Mar 3, 2024 9:30 AM".
func FormatFriendlyDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(FriendlyDateTimeLayout)
}

// FormatFriendlyDate returns a calendar date such as "3 Mar 2024". Dates are
// kept in UTC since the backend stores them at midnight UTC.
func FormatFriendlyDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(FriendlyDateLayout)
}

// TruncateWithEllipsis shortens text to the provided rune limit and appends an ellipsis when truncated.
func TruncateWithEllipsis(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	if limit <= 1 {
		return "…"
	}
	return strings.TrimSpace(string(runes[:limit-1])) + "…"
}
