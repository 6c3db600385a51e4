package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"go-bikeshare/internal/model"
	"go-bikeshare/internal/observability"
)

// DatasetLoader produces the filtered dataset for a query.
type DatasetLoader interface {
	Load(ctx context.Context, filters model.FilterSpec) (*Dataset, error)
}

// OutcomeKind tells the presentation layer what a query produced.
type OutcomeKind string

const (
	OutcomeNoData       OutcomeKind = "no_data"
	OutcomeSingleRecord OutcomeKind = "single_record"
	OutcomeReport       OutcomeKind = "report"
)

// Outcome is the result of one query. Report is set only for OutcomeReport.
type Outcome struct {
	Kind    OutcomeKind      `json:"kind"`
	Filters model.FilterSpec `json:"filters"`
	Dataset *Dataset         `json:"-"`
	Report  *model.Report    `json:"report,omitempty"`
}

// ------------------- Query Runner -------------------

// Run loads the dataset for filters and builds a report when it holds at
// least two records. Empty and single-record datasets are returned without
// computing statistics.
func Run(ctx context.Context, loader DatasetLoader, filters model.FilterSpec) (*Outcome, error) {
	start := time.Now()
	log.Printf("🚀 Starting query: city=%s month=%s day=%s", filters.City, filters.Month, filters.Day)

	ds, err := loader.Load(ctx, filters)
	observability.ObserveLoad(filters.City, time.Since(start))
	if err != nil {
		observability.RecordQueryFailure(filters.City)
		log.Printf("❌ Load failed for %s: %v", filters.City, err)
		return nil, err
	}

	outcome := &Outcome{Filters: filters, Dataset: ds}
	switch ds.Len() {
	case 0:
		outcome.Kind = OutcomeNoData
	case 1:
		outcome.Kind = OutcomeSingleRecord
	default:
		report, err := BuildReport(ds, filters)
		if err != nil {
			observability.RecordQueryFailure(filters.City)
			return nil, fmt.Errorf("build report: %w", err)
		}
		outcome.Kind = OutcomeReport
		outcome.Report = report
	}

	observability.RecordQuery(filters.City, string(outcome.Kind))
	log.Printf("🏁 Query completed for %s in %v (%s, %d records)", filters.City, time.Since(start), outcome.Kind, ds.Len())
	return outcome, nil
}
