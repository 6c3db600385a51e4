package pipeline

import "go-bikeshare/internal/model"

type predicate func(model.TripRecord) bool

func monthIs(month string) predicate {
	return func(t model.TripRecord) bool { return t.Month == month }
}

func dayIs(day string) predicate {
	return func(t model.TripRecord) bool { return t.Weekday == day }
}

func predicatesFor(filters model.FilterSpec) []predicate {
	var preds []predicate
	if filters.MonthFiltered() {
		preds = append(preds, monthIs(filters.Month))
	}
	if filters.DayFiltered() {
		preds = append(preds, dayIs(filters.Day))
	}
	return preds
}

// ApplyFilters keeps the records matching every month/day filter in
// filters, preserving their order. The city is not consulted.
func ApplyFilters(records []model.TripRecord, filters model.FilterSpec) []model.TripRecord {
	preds := predicatesFor(filters)
	out := make([]model.TripRecord, 0, len(records))
	for _, rec := range records {
		if matchesAll(rec, preds) {
			out = append(out, rec)
		}
	}
	return out
}

func matchesAll(rec model.TripRecord, preds []predicate) bool {
	for _, p := range preds {
		if !p(rec) {
			return false
		}
	}
	return true
}
