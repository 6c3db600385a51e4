package pipeline

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go-bikeshare/internal/model"
)

// timestampLayouts are tried in order when parsing Start Time / End Time.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
}

func parseTimestamp(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp format")
}

// parseTripDuration accepts whole or fractional seconds and rounds to the
// nearest second.
func parseTripDuration(raw string) (int64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("duration out of range")
	}
	return int64(math.Round(f)), nil
}

// parseBirthYear accepts "1989" as well as the float form "1989.0".
func parseBirthYear(raw string) (int, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("birth year out of range")
	}
	return int(math.Round(f)), nil
}

// deriveCalendarFields fills Month, Weekday and Hour from StartTime.
func deriveCalendarFields(rec *model.TripRecord) {
	rec.Month = rec.StartTime.Month().String()
	rec.Weekday = rec.StartTime.Weekday().String()
	rec.Hour = rec.StartTime.Hour()
}
