package pipeline

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-bikeshare/internal/model"
)

func TestBuildReport_NoFilters(t *testing.T) {
	ds := load(t, model.Chicago, model.NoFilter, model.NoFilter)

	report, err := BuildReport(ds, ds.Filters())
	require.NoError(t, err)

	assert.Equal(t, 7, report.RecordCount)

	require.NotNil(t, report.CommonMonth)
	assert.Equal(t, []string{"January"}, report.CommonMonth.Values)
	assert.Equal(t, 3, report.CommonMonth.Count)

	require.NotNil(t, report.CommonDay)
	assert.Equal(t, []string{"Monday"}, report.CommonDay.Values)
	assert.Equal(t, 4, report.CommonDay.Count)

	// Hours 9 and 8 both occur twice; 9 appears first.
	assert.Equal(t, []int{9, 8}, report.CommonHour.Values)
	assert.True(t, report.CommonHour.Tied())

	assert.Equal(t, []string{"A"}, report.CommonStartStation.Values)
	assert.Equal(t, 3, report.CommonStartStation.Count)
	assert.Equal(t, []string{"B"}, report.CommonEndStation.Values)
	assert.Equal(t, []model.Route{{Start: "A", End: "B"}}, report.CommonRoute.Values)
	assert.Equal(t, 2, report.CommonRoute.Count)

	assert.Equal(t, int64(1020), report.Duration.TotalSeconds)
	assert.Equal(t, "0:17:00", report.Duration.Total.String())
	assert.InDelta(t, 145.71, report.Duration.MeanRounded, 1e-9)
	assert.Equal(t, "0:02:26", report.Duration.Mean.String())

	assert.Equal(t, []model.ValueCount[string]{
		{Value: "Subscriber", Count: 4},
		{Value: "Customer", Count: 2},
		{Value: "Dependent", Count: 1},
	}, report.Users.Types)
	assert.Equal(t, []model.ValueCount[string]{
		{Value: "Male", Count: 3},
		{Value: "Female", Count: 2},
	}, report.Users.Genders)
	assert.Equal(t, &model.BirthYearStats{Earliest: 1975, MostRecent: 1992, MostCommon: 1989}, report.Users.BirthYears)

	require.Len(t, report.Timings, 4)
	sections := []string{}
	for _, timing := range report.Timings {
		sections = append(sections, timing.Section)
		assert.GreaterOrEqual(t, int64(timing.Duration), int64(0))
	}
	assert.Equal(t, []string{SectionTimes, SectionStations, SectionDuration, SectionUsers}, sections)
}

func TestBuildReport_MonthFilterSkipsMonth(t *testing.T) {
	ds := load(t, model.Chicago, "January", model.NoFilter)

	report, err := BuildReport(ds, ds.Filters())
	require.NoError(t, err)

	assert.Nil(t, report.CommonMonth)
	require.NotNil(t, report.CommonDay)
	assert.Equal(t, []string{"Monday"}, report.CommonDay.Values)
	assert.Equal(t, 2, report.CommonDay.Count)
	assert.NotEmpty(t, report.CommonHour.Values)
}

func TestBuildReport_DayFilterSkipsDay(t *testing.T) {
	ds := load(t, model.Chicago, model.NoFilter, "Monday")

	report, err := BuildReport(ds, ds.Filters())
	require.NoError(t, err)

	assert.Nil(t, report.CommonDay)
	require.NotNil(t, report.CommonMonth)
	assert.Equal(t, []string{"January"}, report.CommonMonth.Values)
	assert.Equal(t, 2, report.CommonMonth.Count)
}

func TestBuildReport_WithoutDemographicColumns(t *testing.T) {
	ds := load(t, model.Washington, model.NoFilter, model.NoFilter)

	report, err := BuildReport(ds, ds.Filters())
	require.NoError(t, err)

	assert.False(t, report.Users.HasGender)
	assert.Nil(t, report.Users.Genders)
	assert.Nil(t, report.Users.BirthYears)
	assert.Len(t, report.Users.Types, 2)
	// Both routes occur once, so every route is reported.
	assert.Len(t, report.CommonRoute.Values, 2)
}

func TestBuildReport_BlankGenderColumn(t *testing.T) {
	const csv = `Start Time,Trip Duration,Start Station,End Station,User Type,Gender
2017-01-02 09:00:00,120,A,B,Subscriber,
2017-01-03 09:00:00,180,B,A,Subscriber,
`
	loader := NewLoader(map[model.City]Source{
		model.NewYorkCity: ReaderSource{Label: "new_york_city.csv", Data: []byte(csv)},
	})
	ds, err := loader.Load(context.Background(), model.FilterSpec{City: model.NewYorkCity, Month: model.NoFilter, Day: model.NoFilter})
	require.NoError(t, err)

	report, err := BuildReport(ds, ds.Filters())
	require.NoError(t, err)
	assert.True(t, report.Users.HasGender)
	assert.NotNil(t, report.Users.Genders)
	assert.Empty(t, report.Users.Genders)

	data, err := json.Marshal(report.Users)
	require.NoError(t, err)
	var decoded model.UserStats
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.HasGender)
	assert.NotNil(t, decoded.Genders)
	assert.Empty(t, decoded.Genders)
}

func TestBuildReport_MissingStationsExcluded(t *testing.T) {
	ds := tripsWith(model.Schema{},
		model.TripRecord{StartStation: "A", EndStation: "", UserType: "Subscriber"},
		model.TripRecord{StartStation: "B", EndStation: "", UserType: "Subscriber"},
		model.TripRecord{StartStation: "A", EndStation: "C", UserType: "Subscriber"},
	)

	report, err := BuildReport(ds, ds.Filters())
	require.NoError(t, err)
	assert.Equal(t, model.FrequencyResult[string]{Values: []string{"A"}, Count: 2}, report.CommonStartStation)
	assert.Equal(t, model.FrequencyResult[string]{Values: []string{"C"}, Count: 1}, report.CommonEndStation)
	assert.Equal(t, model.FrequencyResult[model.Route]{Values: []model.Route{{Start: "A", End: "C"}}, Count: 1}, report.CommonRoute)
}

func TestBuildReport_AllStationsMissing(t *testing.T) {
	ds := tripsWith(model.Schema{},
		model.TripRecord{UserType: "Subscriber"},
		model.TripRecord{UserType: "Customer"},
	)

	report, err := BuildReport(ds, ds.Filters())
	require.NoError(t, err)
	assert.Empty(t, report.CommonStartStation.Values)
	assert.Empty(t, report.CommonRoute.Values)
}

func TestBuildReport_EmptyDataset(t *testing.T) {
	report, err := BuildReport(durationsDataset(), model.FilterSpec{})
	assert.ErrorIs(t, err, model.ErrEmptyDataset)
	assert.Nil(t, report)
}
