package model

import (
	"strings"
	"time"
)

// City identifies one of the supported bike-share systems
type City string

const (
	Chicago     City = "Chicago"
	NewYorkCity City = "New York City"
	Washington  City = "Washington"
)

// Cities lists the supported cities in prompt order.
var Cities = []City{Chicago, NewYorkCity, Washington}

// Slug is the config/file friendly key for a city, e.g. "new_york_city".
func (c City) Slug() string {
	return strings.ReplaceAll(strings.ToLower(string(c)), " ", "_")
}

// NoFilter marks a month or day selection that applies no filtering.
const NoFilter = "all"

// Months covered by the source data (first half of the year only).
var Months = []string{
	time.January.String(),
	time.February.String(),
	time.March.String(),
	time.April.String(),
	time.May.String(),
	time.June.String(),
}

// Weekdays in Monday-first order.
var Weekdays = []string{
	time.Monday.String(),
	time.Tuesday.String(),
	time.Wednesday.String(),
	time.Thursday.String(),
	time.Friday.String(),
	time.Saturday.String(),
	time.Sunday.String(),
}

// FilterSpec is the validated city/month/day selection for one query.
// Month and Day hold a canonical name or NoFilter.
type FilterSpec struct {
	City  City   `json:"city"`
	Month string `json:"month"`
	Day   string `json:"day"`
}

// MonthFiltered reports whether a month filter applies.
func (f FilterSpec) MonthFiltered() bool { return f.Month != "" && f.Month != NoFilter }

// DayFiltered reports whether a weekday filter applies.
func (f FilterSpec) DayFiltered() bool { return f.Day != "" && f.Day != NoFilter }

// Route is the composite (start, end) station key of a trip.
type Route struct {
	Start string `json:"start_station"`
	End   string `json:"end_station"`
}

func (r Route) String() string { return r.Start + " - " + r.End }

// TripRecord represents a single trip row. Month, Weekday and Hour are
// derived from StartTime when the dataset is loaded.
type TripRecord struct {
	StartTime    time.Time  `json:"start_time"`
	EndTime      *time.Time `json:"end_time,omitempty"`
	TripDuration int64      `json:"trip_duration"` // seconds
	StartStation string     `json:"start_station"`
	EndStation   string     `json:"end_station"`
	UserType     string     `json:"user_type"`
	Gender       string     `json:"gender,omitempty"`
	BirthYear    *int       `json:"birth_year,omitempty"`

	Month   string `json:"month"`
	Weekday string `json:"day_of_week"`
	Hour    int    `json:"hour"`
}

// Clone returns a copy of t that shares no memory with it.
func (t TripRecord) Clone() TripRecord {
	if t.EndTime != nil {
		end := *t.EndTime
		t.EndTime = &end
	}
	if t.BirthYear != nil {
		year := *t.BirthYear
		t.BirthYear = &year
	}
	return t
}

// Route returns the trip's start/end station pair.
func (t TripRecord) Route() Route {
	return Route{Start: t.StartStation, End: t.EndStation}
}

// Schema describes which columns a city's source carries.
type Schema struct {
	Columns      []string `json:"columns"`
	HasEndTime   bool     `json:"has_end_time"`
	HasGender    bool     `json:"has_gender"`
	HasBirthYear bool     `json:"has_birth_year"`
}
