package pipeline

import (
	"fmt"
	"strings"

	"go-bikeshare/internal/model"
)

// Column names as they appear in the city CSV headers.
const (
	ColStartTime    = "Start Time"
	ColEndTime      = "End Time"
	ColTripDuration = "Trip Duration"
	ColStartStation = "Start Station"
	ColEndStation   = "End Station"
	ColUserType     = "User Type"
	ColGender       = "Gender"
	ColBirthYear    = "Birth Year"
)

// RequiredColumns must be present in every city source.
var RequiredColumns = []string{
	ColStartTime,
	ColTripDuration,
	ColStartStation,
	ColEndStation,
	ColUserType,
}

// ParseFilters validates raw city/month/day input. Matching is
// case-insensitive and "all" selects no month or day filter.
func ParseFilters(city, month, day string) (model.FilterSpec, error) {
	c, err := ParseCity(city)
	if err != nil {
		return model.FilterSpec{}, err
	}
	m, err := ParseMonth(month)
	if err != nil {
		return model.FilterSpec{}, err
	}
	d, err := ParseDay(day)
	if err != nil {
		return model.FilterSpec{}, err
	}
	return model.FilterSpec{City: c, Month: m, Day: d}, nil
}

// ParseCity returns the supported city matching raw.
func ParseCity(raw string) (model.City, error) {
	value := strings.TrimSpace(raw)
	for _, c := range model.Cities {
		if strings.EqualFold(value, string(c)) || strings.EqualFold(value, c.Slug()) {
			return c, nil
		}
	}
	return "", &model.ValidationError{Field: "city", Value: raw}
}

// ParseMonth returns the canonical month name or model.NoFilter.
func ParseMonth(raw string) (string, error) {
	return parseChoice("month", raw, model.Months)
}

// ParseDay returns the canonical weekday name or model.NoFilter.
func ParseDay(raw string) (string, error) {
	return parseChoice("day", raw, model.Weekdays)
}

func parseChoice(field, raw string, choices []string) (string, error) {
	value := strings.TrimSpace(raw)
	if strings.EqualFold(value, model.NoFilter) {
		return model.NoFilter, nil
	}
	for _, choice := range choices {
		if strings.EqualFold(value, choice) {
			return choice, nil
		}
	}
	return "", &model.ValidationError{Field: field, Value: raw}
}

// validateColumns checks that every required column is present in the header.
func validateColumns(columns []string) error {
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}
	for _, field := range RequiredColumns {
		if !present[field] {
			return fmt.Errorf("missing required column: %s", field)
		}
	}
	return nil
}

// schemaFor reports which optional columns a header carries.
func schemaFor(columns []string) model.Schema {
	schema := model.Schema{Columns: append([]string(nil), columns...)}
	for _, c := range columns {
		switch c {
		case ColEndTime:
			schema.HasEndTime = true
		case ColGender:
			schema.HasGender = true
		case ColBirthYear:
			schema.HasBirthYear = true
		}
	}
	return schema
}
