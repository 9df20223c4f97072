package uiutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFriendlyRelativeTime(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{-time.Hour, "just now"},
		{30 * time.Second, "just now"},
		{time.Minute, "1 minute ago"},
		{45 * time.Minute, "45 minutes ago"},
		{time.Hour, "1 hour ago"},
		{5 * time.Hour, "5 hours ago"},
		{36 * time.Hour, "1 day ago"},
		{6 * 24 * time.Hour, "6 days ago"},
		{10 * 24 * time.Hour, "6 Oct 2026"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FriendlyRelativeTime(now.Add(-tt.ago), now), tt.ago.String())
	}
}

func TestFormatFriendlyDate(t *testing.T) {
	assert.Empty(t, FormatFriendlyDate(time.Time{}))
	assert.Empty(t, FormatFriendlyDateTime(time.Time{}))
	// Midnight UTC stays on the same day in any local zone.
	assert.Equal(t, "1 Jan 2026", FormatFriendlyDate(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestTruncateWithEllipsis(t *testing.T) {
	assert.Equal(t, "abc", TruncateWithEllipsis("abc", 3))
	assert.Equal(t, "ab…", TruncateWithEllipsis("abcd", 3))
	assert.Equal(t, "…", TruncateWithEllipsis("abcd", 1))
	assert.Equal(t, "Ma…", TruncateWithEllipsis("Ma thing", 3))
	assert.Equal(t, "ŝŝ…", TruncateWithEllipsis("ŝŝŝŝ", 3))
}
