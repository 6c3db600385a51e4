package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	"go-bikeshare/internal/model"
	"go-bikeshare/internal/pipeline"
	"go-bikeshare/internal/store"
	"go-bikeshare/pkg/utils"
)

// app drives the question/answer loop over one loader.
type app struct {
	prompt   *prompter
	render   *renderer
	loader   pipeline.DatasetLoader
	history  *store.Store         // nil disables query history
	output   *utils.OutputManager // nil disables report export
	format   string
	pageSize int
	timeout  time.Duration
}

// run asks for filters and reports on them until the user declines to
// restart or input ends.
func (a *app) run(ctx context.Context) error {
	for {
		filters, err := a.prompt.askFilters()
		if err != nil {
			return ignoreEOF(err)
		}
		if err := a.query(ctx, filters); err != nil {
			return ignoreEOF(err)
		}
		again, err := a.prompt.askRestart()
		if err != nil || !again {
			return ignoreEOF(err)
		}
	}
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// query runs one filter selection. Load and parse failures are shown to the
// user and do not end the session; cancellation does.
func (a *app) query(ctx context.Context, filters model.FilterSpec) error {
	queryID := uuid.New().String()
	a.remember(func() error { return a.history.SaveQuery(queryID, filters) })

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	outcome, err := pipeline.Run(ctx, a.loader, filters)
	if err != nil {
		a.remember(func() error { return a.history.SaveQueryError(queryID, err) })
		if errors.Is(err, context.Canceled) {
			return err
		}
		fmt.Fprintln(a.render.out, a.render.warn.Render(fmt.Sprintf("\nCould not analyse %s: %v", filters.City, err)))
		return nil
	}
	a.remember(func() error {
		return a.history.SaveOutcome(queryID, string(outcome.Kind), outcome.Dataset.Len(), outcome.Report)
	})

	switch outcome.Kind {
	case pipeline.OutcomeNoData:
		a.render.noData(filters)
	case pipeline.OutcomeSingleRecord:
		a.render.singleRecord(filters, outcome.Dataset)
	case pipeline.OutcomeReport:
		a.render.report(outcome.Report)
		if a.output != nil {
			em := pipeline.NewExportManager(queryID, a.output)
			a.render.exported(em.ExportReport(outcome.Report, a.format))
		}
		return page(a.prompt, a.render, outcome.Dataset, a.pageSize)
	}
	return nil
}

// remember runs a history write when history is enabled. Failures are
// logged only.
func (a *app) remember(write func() error) {
	if a.history == nil {
		return
	}
	if err := write(); err != nil {
		log.Printf("❌ Failed to update query history: %v", err)
	}
}
