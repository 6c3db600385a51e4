package pipeline

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"go-bikeshare/internal/model"
)

// TotalDuration sums trip durations in seconds.
func TotalDuration(d *Dataset) (int64, error) {
	if d.Len() == 0 {
		return 0, model.ErrEmptyDataset
	}
	sum, err := stats.Sum(d.durations())
	if err != nil {
		return 0, fmt.Errorf("sum trip duration: %w", err)
	}
	return int64(math.Round(sum)), nil
}

// MeanDuration is the arithmetic mean trip duration in seconds.
func MeanDuration(d *Dataset) (float64, error) {
	if d.Len() == 0 {
		return 0, model.ErrEmptyDataset
	}
	mean, err := stats.Mean(d.durations())
	if err != nil {
		return 0, fmt.Errorf("mean trip duration: %w", err)
	}
	return mean, nil
}

// DurationBreakdown splits whole seconds into hours, minutes and seconds.
func DurationBreakdown(seconds int64) model.Breakdown {
	return model.Breakdown{
		Hours:   seconds / 3600,
		Minutes: seconds % 3600 / 60,
		Seconds: seconds % 60,
	}
}

// DurationSummary computes total and mean durations with their breakdowns.
// The mean breakdown uses the mean rounded half-to-even to a whole second.
func DurationSummary(d *Dataset) (model.DurationStats, error) {
	total, err := TotalDuration(d)
	if err != nil {
		return model.DurationStats{}, err
	}
	mean, err := MeanDuration(d)
	if err != nil {
		return model.DurationStats{}, err
	}
	rounded, err := stats.Round(mean, 2)
	if err != nil {
		return model.DurationStats{}, fmt.Errorf("round mean trip duration: %w", err)
	}

	return model.DurationStats{
		TotalSeconds: total,
		Total:        DurationBreakdown(total),
		MeanSeconds:  mean,
		MeanRounded:  rounded,
		Mean:         DurationBreakdown(int64(math.RoundToEven(mean))),
	}, nil
}

// UserTypeCounts counts user types, most frequent first. Rows without a
// user type are skipped.
func UserTypeCounts(d *Dataset) []model.ValueCount[string] {
	return Rank(d.present(func(t model.TripRecord) string { return t.UserType }))
}

// GenderCounts counts genders, most frequent first. ok is false when the
// city's source has no Gender column.
func GenderCounts(d *Dataset) (counts []model.ValueCount[string], ok bool) {
	if !d.Schema().HasGender {
		return nil, false
	}
	return Rank(d.present(func(t model.TripRecord) string { return t.Gender })), true
}

// BirthYearSummary returns earliest, most recent and most common birth year.
// It returns nil when the source has no Birth Year column or no row in the
// dataset carries one. Ties for most common resolve to the smallest year.
func BirthYearSummary(d *Dataset) (*model.BirthYearStats, error) {
	if !d.Schema().HasBirthYear {
		return nil, nil
	}
	years := d.birthYears()
	if len(years) == 0 {
		return nil, nil
	}

	data := stats.LoadRawData(years)
	earliest, err := stats.Min(data)
	if err != nil {
		return nil, fmt.Errorf("earliest birth year: %w", err)
	}
	latest, err := stats.Max(data)
	if err != nil {
		return nil, fmt.Errorf("most recent birth year: %w", err)
	}

	mode, err := ModeWithTies(years)
	if err != nil {
		return nil, fmt.Errorf("most common birth year: %w", err)
	}
	common := mode.Values[0]
	for _, y := range mode.Values[1:] {
		if y < common {
			common = y
		}
	}

	return &model.BirthYearStats{
		Earliest:   int(earliest),
		MostRecent: int(latest),
		MostCommon: common,
	}, nil
}
