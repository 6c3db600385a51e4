package pipeline

import "go-bikeshare/internal/model"

// Dataset is the filtered, read-only set of trips produced for one query.
type Dataset struct {
	filters model.FilterSpec
	schema  model.Schema
	records []model.TripRecord
}

// NewDataset copies records so later changes by the caller are not visible.
func NewDataset(filters model.FilterSpec, schema model.Schema, records []model.TripRecord) *Dataset {
	return &Dataset{
		filters: filters,
		schema:  schema,
		records: cloneRecords(records),
	}
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// Rows returns records in [start, end). Bounds are clamped to the dataset;
// a start outside the dataset yields an empty slice.
func (d *Dataset) Rows(start, end int) []model.TripRecord {
	n := d.Len()
	if start < 0 || start >= n || end <= start {
		return []model.TripRecord{}
	}
	if end > n {
		end = n
	}
	return cloneRecords(d.records[start:end])
}

func cloneRecords(records []model.TripRecord) []model.TripRecord {
	out := make([]model.TripRecord, len(records))
	for i, rec := range records {
		out[i] = rec.Clone()
	}
	return out
}

// Filters returns the selection the dataset was loaded with.
func (d *Dataset) Filters() model.FilterSpec { return d.filters }

// Schema returns the column layout of the city's source.
func (d *Dataset) Schema() model.Schema { return d.schema }

func column[V any](d *Dataset, get func(model.TripRecord) V) []V {
	out := make([]V, 0, d.Len())
	for _, rec := range d.records {
		out = append(out, get(rec))
	}
	return out
}

func (d *Dataset) months() []string {
	return column(d, func(t model.TripRecord) string { return t.Month })
}

func (d *Dataset) weekdays() []string {
	return column(d, func(t model.TripRecord) string { return t.Weekday })
}

func (d *Dataset) hours() []int {
	return column(d, func(t model.TripRecord) int { return t.Hour })
}

func (d *Dataset) startStations() []string {
	return d.present(func(t model.TripRecord) string { return t.StartStation })
}

func (d *Dataset) endStations() []string {
	return d.present(func(t model.TripRecord) string { return t.EndStation })
}

// routes skips trips missing either station.
func (d *Dataset) routes() []model.Route {
	out := make([]model.Route, 0, d.Len())
	for _, rec := range d.records {
		if rec.StartStation != "" && rec.EndStation != "" {
			out = append(out, rec.Route())
		}
	}
	return out
}

func (d *Dataset) durations() []float64 {
	return column(d, func(t model.TripRecord) float64 { return float64(t.TripDuration) })
}

// present collects the non-empty values of a text column.
func (d *Dataset) present(get func(model.TripRecord) string) []string {
	out := make([]string, 0, d.Len())
	for _, rec := range d.records {
		if v := get(rec); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (d *Dataset) birthYears() []int {
	out := make([]int, 0, d.Len())
	for _, rec := range d.records {
		if rec.BirthYear != nil {
			out = append(out, *rec.BirthYear)
		}
	}
	return out
}
