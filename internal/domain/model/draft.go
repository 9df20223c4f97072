package model

import (
	"sort"
	"strings"
)

// FieldErrors maps a form field name to a user-facing message.
type FieldErrors map[string]string

// Error implements error with a stable, field-sorted message.
func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return strings.Join(parts, "; ")
}

// OrNil returns nil when there are no field errors.
func (fe FieldErrors) OrNil() FieldErrors {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

func requireField(fe FieldErrors, field, value, msg string) {
	if strings.TrimSpace(value) == "" {
		fe[field] = msg
	}
}

// optional returns a pointer to the trimmed value, or nil when blank.
func optional(value string) *string {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil
	}
	return &v
}
