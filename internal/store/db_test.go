package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-bikeshare/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

var juneMondays = model.FilterSpec{City: model.Chicago, Month: "June", Day: "Monday"}

func TestStore_QueryLifecycle(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SaveQuery("q-1", juneMondays))

	q, err := s.GetQuery("q-1")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, q.Status)
	assert.Equal(t, juneMondays, q.Filters)
	assert.Nil(t, q.Report)

	require.NoError(t, s.UpdateQueryStatus("q-1", StatusRunning))

	report := &model.Report{
		Filters:            juneMondays,
		RecordCount:        12,
		CommonHour:         model.FrequencyResult[int]{Values: []int{8, 17}, Count: 3},
		CommonStartStation: model.FrequencyResult[string]{Values: []string{"Canal St"}, Count: 4},
		Duration:           model.DurationStats{TotalSeconds: 3600, Total: model.Breakdown{Hours: 1}},
	}
	require.NoError(t, s.SaveOutcome("q-1", "report", 12, report))

	q, err = s.GetQuery("q-1")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, q.Status)
	assert.Equal(t, "report", q.Outcome)
	assert.Equal(t, 12, q.RecordCount)
	require.NotNil(t, q.Report)
	assert.Equal(t, report.CommonHour, q.Report.CommonHour)
	assert.Equal(t, report.Duration, q.Report.Duration)
	assert.Empty(t, q.Errors)
}

func TestStore_ReportKeepsEmptyGenderSection(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SaveQuery("q-gender", juneMondays))

	report := &model.Report{
		Filters: juneMondays,
		Users: model.UserStats{
			Types:     []model.ValueCount[string]{{Value: "Subscriber", Count: 2}},
			HasGender: true,
			Genders:   []model.ValueCount[string]{},
		},
	}
	require.NoError(t, s.SaveOutcome("q-gender", "report", 2, report))

	q, err := s.GetQuery("q-gender")
	require.NoError(t, err)
	require.NotNil(t, q.Report)
	assert.True(t, q.Report.Users.HasGender)
	assert.NotNil(t, q.Report.Users.Genders)
	assert.Empty(t, q.Report.Users.Genders)
}

func TestStore_OutcomeWithoutReport(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SaveQuery("q-empty", juneMondays))
	require.NoError(t, s.SaveOutcome("q-empty", "no_data", 0, nil))

	q, err := s.GetQuery("q-empty")
	require.NoError(t, err)
	assert.Equal(t, "no_data", q.Outcome)
	assert.Nil(t, q.Report)
}

func TestStore_SaveQueryError(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SaveQuery("q-bad", juneMondays))

	require.NoError(t, s.SaveQueryError("q-bad", errors.New("row 3: cannot parse Start Time")))
	require.NoError(t, s.SaveQueryError("q-bad", nil))

	q, err := s.GetQuery("q-bad")
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, q.Status)
	assert.Equal(t, []string{"row 3: cannot parse Start Time"}, q.Errors)
}

func TestStore_ListQueries(t *testing.T) {
	s := newTestStore(t)

	queries, err := s.ListQueries()
	require.NoError(t, err)
	assert.Empty(t, queries)

	require.NoError(t, s.SaveQuery("q-a", juneMondays))
	require.NoError(t, s.SaveQuery("q-b", model.FilterSpec{City: model.Washington, Month: model.NoFilter, Day: model.NoFilter}))

	queries, err = s.ListQueries()
	require.NoError(t, err)
	require.Len(t, queries, 2)

	ids := []string{queries[0].ID, queries[1].ID}
	assert.ElementsMatch(t, []string{"q-a", "q-b"}, ids)
}

func TestStore_GetQueryNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetQuery("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
