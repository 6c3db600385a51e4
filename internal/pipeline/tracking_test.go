package pipeline

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTracker(t *testing.T) {
	clock := time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC)
	tracker := NewTracker()
	tracker.now = func() time.Time {
		clock = clock.Add(250 * time.Millisecond)
		return clock
	}

	assert.NoError(t, tracker.Track(SectionTimes, func() error { return nil }))
	boom := errors.New("boom")
	assert.ErrorIs(t, tracker.Track(SectionUsers, func() error { return boom }), boom)

	timings := tracker.Timings()
	assert.Len(t, timings, 2)
	assert.Equal(t, SectionTimes, timings[0].Section)
	assert.Equal(t, 250*time.Millisecond, timings[0].Duration)
	assert.Equal(t, SectionUsers, timings[1].Section)

	timings[0].Section = "changed"
	assert.Equal(t, SectionTimes, tracker.Timings()[0].Section)
}
