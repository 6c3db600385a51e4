package main

import (
	"fmt"

	"go-bikeshare/internal/pipeline"
)

// nextPagePrompt phrases the question for the rows still to show.
func nextPagePrompt(remaining, pageSize int) string {
	switch {
	case remaining > pageSize:
		return fmt.Sprintf("\nWould you like to see the next %d lines? Enter yes or no.\n", pageSize)
	case remaining > 1:
		return fmt.Sprintf("\nWould you like to see the last %d lines? Enter yes or no.\n", remaining)
	default:
		return "\nWould you like to see the last line? Enter yes or no.\n"
	}
}

// page offers the raw rows of ds pageSize at a time until the user
// declines or every row has been shown.
func page(p *prompter, r *renderer, ds *pipeline.Dataset, pageSize int) error {
	total := ds.Len()
	question := fmt.Sprintf("\nThere are %d rows of data to show after filtering.\nWould you like to see raw data? Enter yes or no.\n", total)

	for start := 0; start < total; start += pageSize {
		show, err := p.askYesNo(question)
		if err != nil || !show {
			return err
		}
		r.rows(ds.Schema(), ds.Rows(start, start+pageSize), start)
		question = nextPagePrompt(total-start-pageSize, pageSize)
	}
	return nil
}
