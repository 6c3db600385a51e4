package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-bikeshare/internal/model"
)

func TestDataset_Rows(t *testing.T) {
	ds := durationsDataset(1, 2, 3, 4, 5, 6, 7)
	assert.Equal(t, 7, ds.Len())

	tests := []struct {
		name       string
		start, end int
		want       []int64
	}{
		{"first page", 0, 5, []int64{1, 2, 3, 4, 5}},
		{"short last page", 5, 10, []int64{6, 7}},
		{"exact end", 2, 7, []int64{3, 4, 5, 6, 7}},
		{"start past end", 7, 12, []int64{}},
		{"negative start", -1, 3, []int64{}},
		{"empty range", 3, 3, []int64{}},
		{"inverted range", 4, 2, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := ds.Rows(tt.start, tt.end)
			assert.NotNil(t, rows)
			got := make([]int64, len(rows))
			for i, r := range rows {
				got[i] = r.TripDuration
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDataset_Isolation(t *testing.T) {
	records := []model.TripRecord{{StartStation: "A"}, {StartStation: "B"}}
	ds := NewDataset(model.FilterSpec{}, model.Schema{}, records)

	records[0].StartStation = "changed"
	rows := ds.Rows(0, 2)
	assert.Equal(t, "A", rows[0].StartStation)

	rows[1].StartStation = "changed"
	assert.Equal(t, "B", ds.Rows(1, 2)[0].StartStation)
}

func TestDataset_IsolationOfOptionalFields(t *testing.T) {
	end := time.Date(2017, 1, 1, 10, 0, 0, 0, time.UTC)
	records := []model.TripRecord{
		{BirthYear: intPtr(1980), EndTime: &end},
		{BirthYear: intPtr(1990), EndTime: &end},
	}
	ds := NewDataset(model.FilterSpec{}, model.Schema{HasBirthYear: true, HasEndTime: true}, records)

	*records[1].BirthYear = 1850
	rows := ds.Rows(0, 1)
	*rows[0].BirthYear = 2005
	*rows[0].EndTime = end.Add(time.Hour)

	by, err := BirthYearSummary(ds)
	require.NoError(t, err)
	require.NotNil(t, by)
	assert.Equal(t, 1980, by.Earliest)
	assert.Equal(t, 1990, by.MostRecent)
	assert.Equal(t, end, *ds.Rows(0, 1)[0].EndTime)
}

func TestDataset_NilLen(t *testing.T) {
	var ds *Dataset
	assert.Equal(t, 0, ds.Len())
	assert.Empty(t, ds.Rows(0, 5))
}
