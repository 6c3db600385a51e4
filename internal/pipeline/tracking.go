package pipeline

import (
	"time"

	"go-bikeshare/internal/model"
)

// Report sections, in computation order.
const (
	SectionTimes    = "times"
	SectionStations = "stations"
	SectionDuration = "trip_duration"
	SectionUsers    = "users"
)

// Tracker records how long each report section takes.
type Tracker struct {
	timings []model.SectionTiming
	now     func() time.Time
}

// NewTracker creates a tracker using the wall clock.
func NewTracker() *Tracker {
	return &Tracker{now: time.Now}
}

// Track runs fn and records its duration under section, even if fn fails.
func (t *Tracker) Track(section string, fn func() error) error {
	start := t.now()
	err := fn()
	t.timings = append(t.timings, model.SectionTiming{
		Section:  section,
		Duration: t.now().Sub(start),
	})
	return err
}

// Timings returns the recorded sections in the order they ran.
func (t *Tracker) Timings() []model.SectionTiming {
	return append([]model.SectionTiming(nil), t.timings...)
}
