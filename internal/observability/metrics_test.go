package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"go-bikeshare/internal/model"
)

func TestRecordQuery(t *testing.T) {
	before := testutil.ToFloat64(queriesTotal.WithLabelValues("new_york_city", "report"))
	RecordQuery(model.NewYorkCity, "report")
	RecordQuery(model.NewYorkCity, "report")
	assert.Equal(t, before+2, testutil.ToFloat64(queriesTotal.WithLabelValues("new_york_city", "report")))
}

func TestRecordQueryFailure(t *testing.T) {
	before := testutil.ToFloat64(queryFailures.WithLabelValues("washington"))
	RecordQueryFailure(model.Washington)
	assert.Equal(t, before+1, testutil.ToFloat64(queryFailures.WithLabelValues("washington")))
}

func TestObserveLoad(t *testing.T) {
	ObserveLoad(model.Chicago, 120*time.Millisecond)
	assert.GreaterOrEqual(t, testutil.CollectAndCount(loadSeconds), 1)
}
