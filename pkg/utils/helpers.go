package utils

import (
	"strings"
	"time"
)

// ParseDuration safely parses duration string like "5m"
func ParseDuration(d string) time.Duration {
	if d == "" {
		return 5 * time.Minute
	}
	duration, err := time.ParseDuration(d)
	if err != nil || duration <= 0 {
		return 5 * time.Minute
	}
	return duration
}

// missingValues are the cell markers treated as "no value".
var missingValues = []string{"", "NA", "NaN", "nan", "<nil>", "null"}

// IsMissing reports whether a raw cell holds no value.
func IsMissing(s string) bool {
	s = strings.TrimSpace(s)
	for _, m := range missingValues {
		if s == m {
			return true
		}
	}
	return false
}

// CleanValue trims a cell and maps missing markers to "".
func CleanValue(s string) string {
	if IsMissing(s) {
		return ""
	}
	return strings.TrimSpace(s)
}
