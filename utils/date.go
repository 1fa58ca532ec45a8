package utils

import (
	"fmt"
	"time"
)

// BrisbaneTZ is the fixed fallback zone for hosts without a tz
// database. Queensland has no daylight saving, so the fixed offset is
// exact year round.
var BrisbaneTZ = time.FixedZone("UTC+10", 10*60*60)

func ParseISOTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, fmt.Errorf("empty time string")
	}

	// Try standard RFC3339 format (ISO 8601)
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return &t, nil
	}

	// Try with nanoseconds (e.g. 2025-10-13T09:30:00.123Z)
	t, err = time.Parse(time.RFC3339Nano, s)
	if err == nil {
		return &t, nil
	}

	// Try fallback common formats
	layouts := []string{
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if tt, e := time.ParseInLocation(layout, s, time.UTC); e == nil {
			return &tt, nil
		}
	}

	return nil, fmt.Errorf("failed to parse time: %v", s)
}
