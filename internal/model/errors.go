package model

import (
	"errors"
	"fmt"
)

var (
	// ErrDataSource marks a city source that is missing, unreadable or lacks required columns.
	ErrDataSource = errors.New("data source error")
	// ErrParse marks a field that could not be parsed.
	ErrParse = errors.New("parse error")
	// ErrEmptySequence is returned when a mode is requested over no values.
	ErrEmptySequence = errors.New("empty sequence")
	// ErrEmptyDataset is returned when an aggregate is requested over zero records.
	ErrEmptyDataset = errors.New("empty dataset")
	// ErrValidation marks user input that is not a valid filter value.
	ErrValidation = errors.New("validation error")
)

// DataSourceError describes a failure to read a city's backing source.
type DataSourceError struct {
	City   City
	Source string
	Err    error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("data source %s for %s: %v", e.Source, e.City, e.Err)
}

func (e *DataSourceError) Unwrap() error { return e.Err }

func (e *DataSourceError) Is(target error) bool { return target == ErrDataSource }

// ParseError points at the row (1-based, header excluded) and column that failed.
type ParseError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d: cannot parse %s %q: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// ValidationError reports an invalid value for a filter field.
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
