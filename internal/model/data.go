package model

import (
	"fmt"
	"time"
)

// FrequencyResult holds every value tied for the highest occurrence count.
// Values are in first-occurrence order of the source sequence.
type FrequencyResult[V comparable] struct {
	Values []V `json:"values"`
	Count  int `json:"count"`
}

// Tied reports whether more than one value shares the top count.
func (f FrequencyResult[V]) Tied() bool { return len(f.Values) > 1 }

// ValueCount pairs a distinct value with its number of occurrences.
type ValueCount[V comparable] struct {
	Value V   `json:"value"`
	Count int `json:"count"`
}

// Breakdown is a duration split into hours, minutes and seconds.
// Hours are not wrapped into days.
type Breakdown struct {
	Hours   int64 `json:"hours"`
	Minutes int64 `json:"minutes"`
	Seconds int64 `json:"seconds"`
}

func (b Breakdown) String() string {
	return fmt.Sprintf("%d:%02d:%02d", b.Hours, b.Minutes, b.Seconds)
}

// DurationStats aggregates trip durations.
type DurationStats struct {
	TotalSeconds int64     `json:"total_seconds"`
	Total        Breakdown `json:"total"`
	MeanSeconds  float64   `json:"mean_seconds"`
	MeanRounded  float64   `json:"mean_seconds_rounded"` // two decimals
	Mean         Breakdown `json:"mean"`
}

// BirthYearStats summarises the Birth Year column.
type BirthYearStats struct {
	Earliest   int `json:"earliest"`
	MostRecent int `json:"most_recent"`
	MostCommon int `json:"most_common"`
}

// UserStats groups the demographic sections. HasGender reports whether the
// city's source has a Gender column; Genders may be empty even then.
// BirthYears is nil when the column is absent or holds no values.
type UserStats struct {
	Types      []ValueCount[string] `json:"user_types"`
	HasGender  bool                 `json:"has_gender"`
	Genders    []ValueCount[string] `json:"genders"`
	BirthYears *BirthYearStats      `json:"birth_years,omitempty"`
}

// SectionTiming records how long one report section took to compute.
type SectionTiming struct {
	Section  string        `json:"section"`
	Duration time.Duration `json:"duration"`
}

// Report is the full set of statistics computed for one filtered dataset.
// CommonMonth and CommonDay are nil when the matching filter was applied.
type Report struct {
	Filters     FilterSpec `json:"filters"`
	RecordCount int        `json:"record_count"`

	CommonMonth *FrequencyResult[string] `json:"most_common_month,omitempty"`
	CommonDay   *FrequencyResult[string] `json:"most_common_day,omitempty"`
	CommonHour  FrequencyResult[int]     `json:"most_common_hour"`

	CommonStartStation FrequencyResult[string] `json:"most_common_start_station"`
	CommonEndStation   FrequencyResult[string] `json:"most_common_end_station"`
	CommonRoute        FrequencyResult[Route]  `json:"most_common_route"`

	Duration DurationStats `json:"trip_duration"`
	Users    UserStats     `json:"users"`

	Timings []SectionTiming `json:"timings,omitempty"`
}
