package pipeline

import (
	"fmt"

	"go-bikeshare/internal/model"
)

// BuildReport computes every statistic for d. The most common month and day
// are skipped when filters already narrow on them. Callers are expected to
// handle datasets with fewer than two records themselves; an empty dataset
// returns ErrEmptyDataset. On error no report is returned.
func BuildReport(d *Dataset, filters model.FilterSpec) (*model.Report, error) {
	if d.Len() == 0 {
		return nil, model.ErrEmptyDataset
	}

	report := &model.Report{Filters: filters, RecordCount: d.Len()}
	tracker := NewTracker()

	sections := []struct {
		name string
		fn   func(*model.Report, *Dataset, model.FilterSpec) error
	}{
		{SectionTimes, timeStats},
		{SectionStations, stationStats},
		{SectionDuration, durationStats},
		{SectionUsers, userStats},
	}
	for _, s := range sections {
		if err := tracker.Track(s.name, func() error { return s.fn(report, d, filters) }); err != nil {
			return nil, fmt.Errorf("%s statistics: %w", s.name, err)
		}
	}

	report.Timings = tracker.Timings()
	return report, nil
}

func timeStats(r *model.Report, d *Dataset, filters model.FilterSpec) error {
	if !filters.MonthFiltered() {
		month, err := ModeWithTies(d.months())
		if err != nil {
			return err
		}
		r.CommonMonth = &month
	}
	if !filters.DayFiltered() {
		day, err := ModeWithTies(d.weekdays())
		if err != nil {
			return err
		}
		r.CommonDay = &day
	}

	hour, err := ModeWithTies(d.hours())
	if err != nil {
		return err
	}
	r.CommonHour = hour
	return nil
}

func stationStats(r *model.Report, d *Dataset, _ model.FilterSpec) error {
	start, err := presentMode(d.startStations())
	if err != nil {
		return err
	}
	end, err := presentMode(d.endStations())
	if err != nil {
		return err
	}
	route, err := presentMode(d.routes())
	if err != nil {
		return err
	}

	r.CommonStartStation = start
	r.CommonEndStation = end
	r.CommonRoute = route
	return nil
}

// presentMode is ModeWithTies over a column whose cells may all be missing,
// in which case the result is empty.
func presentMode[V comparable](values []V) (model.FrequencyResult[V], error) {
	if len(values) == 0 {
		return model.FrequencyResult[V]{}, nil
	}
	return ModeWithTies(values)
}

func durationStats(r *model.Report, d *Dataset, _ model.FilterSpec) error {
	summary, err := DurationSummary(d)
	if err != nil {
		return err
	}
	r.Duration = summary
	return nil
}

func userStats(r *model.Report, d *Dataset, _ model.FilterSpec) error {
	r.Users.Types = UserTypeCounts(d)
	if genders, ok := GenderCounts(d); ok {
		r.Users.HasGender = true
		r.Users.Genders = genders
	}
	years, err := BirthYearSummary(d)
	if err != nil {
		return err
	}
	r.Users.BirthYears = years
	return nil
}
