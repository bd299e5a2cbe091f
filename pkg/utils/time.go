package utils

import (
	"fmt"
	"time"
)

// ParseTimeParam accepts either RFC3339 or a bare YYYY-MM-DD date.
// A bare date means the start of that day in UTC.
func ParseTimeParam(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time format, expected RFC3339 or YYYY-MM-DD, got %s", value)
	}
	return t, nil
}
