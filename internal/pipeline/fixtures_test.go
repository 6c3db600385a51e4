package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go-bikeshare/internal/model"
)

const chicagoCSV = `Start Time,End Time,Trip Duration,Start Station,End Station,User Type,Gender,Birth Year
2017-01-02 09:07:57,2017-01-02 09:09:57,120,A,B,Subscriber,Male,1989.0
2017-01-03 09:10:00,2017-01-03 09:13:00,180,B,A,Subscriber,Female,1992.0
2017-02-06 10:00:00,2017-02-06 10:05:00,300,A,B,Customer,,
2017-03-07 17:30:00,2017-03-07 17:34:00,240,C,A,Subscriber,Male,1989.0
2017-06-05 08:00:00,2017-06-05 08:01:00,60,B,C,Customer,,1992.0
2017-06-11 08:15:00,2017-06-11 08:16:30,90,C,B,Subscriber,Female,1975.0
2017-01-09 12:00:00,2017-01-09 12:00:30,30,A,C,Dependent,Male,1989.0
`

const washingtonCSV = `Start Time,End Time,Trip Duration,Start Station,End Station,User Type
2017-04-03 07:00:00,2017-04-03 07:10:00,600.4,X,Y,Subscriber
2017-04-04 07:00:00,2017-04-04 07:05:00,299.6,Y,X,Customer
`

func testLoader() *Loader {
	return NewLoader(map[model.City]Source{
		model.Chicago:    ReaderSource{Label: "chicago.csv", Data: []byte(chicagoCSV)},
		model.Washington: ReaderSource{Label: "washington.csv", Data: []byte(washingtonCSV)},
	})
}

func load(t *testing.T, city model.City, month, day string) *Dataset {
	t.Helper()
	ds, err := testLoader().Load(context.Background(), model.FilterSpec{City: city, Month: month, Day: day})
	require.NoError(t, err)
	return ds
}

// tripsWith builds a dataset straight from records, deriving calendar fields.
func tripsWith(schema model.Schema, records ...model.TripRecord) *Dataset {
	for i := range records {
		if records[i].StartTime.IsZero() {
			records[i].StartTime = time.Date(2017, time.January, 2, 9, 0, 0, 0, time.UTC)
		}
		deriveCalendarFields(&records[i])
	}
	return NewDataset(model.FilterSpec{City: model.Chicago, Month: model.NoFilter, Day: model.NoFilter}, schema, records)
}

func durationsDataset(durations ...int64) *Dataset {
	records := make([]model.TripRecord, len(durations))
	for i, d := range durations {
		records[i] = model.TripRecord{TripDuration: d, StartStation: "A", EndStation: "B", UserType: "Subscriber"}
	}
	return tripsWith(model.Schema{}, records...)
}

func intPtr(v int) *int { return &v }
