package model

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the layout of date inputs in forms and CLI flags.
const DateLayout = "2006-01-02"

// wireLayouts are accepted when decoding backend timestamps. The backend emits
// naive ISO-8601 values (no zone) which are treated as UTC.
var wireLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	DateLayout,
}

// Timestamp is a backend datetime. It decodes both zoned and naive values and
// encodes as RFC 3339 in UTC.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t in UTC.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC()}
}

// ParseTimestamp parses any of the accepted wire layouts.
func ParseTimestamp(value string) (Timestamp, error) {
	value = strings.TrimSpace(value)
	for _, layout := range wireLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return NewTimestamp(t), nil
		}
	}
	return Timestamp{}, fmt.Errorf("unrecognized timestamp %q", value)
}

// ParseDate parses a YYYY-MM-DD input into a midnight UTC timestamp.
func ParseDate(value string) (Timestamp, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(value), time.UTC)
	if err != nil {
		return Timestamp{}, err
	}
	return NewTimestamp(t), nil
}

// MarshalJSON encodes the timestamp as an RFC 3339 string, or null when zero.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(t.UTC().Format(time.RFC3339))), nil
}

// UnmarshalJSON accepts null and any of the wire layouts.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if s == "" {
		*t = Timestamp{}
		return nil
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// DateString formats the date part, or "" when zero.
func (t Timestamp) DateString() string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DateLayout)
}
