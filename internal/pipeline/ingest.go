package pipeline

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"go-bikeshare/internal/model"
	"go-bikeshare/pkg/utils"
)

// ------------------- Sources -------------------

// Source is a handle to one city's raw trip CSV.
type Source interface {
	Name() string
	Open(ctx context.Context) (io.ReadCloser, error)
}

// FileSource reads a CSV from local disk.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return s.Path }

func (s FileSource) Open(_ context.Context) (io.ReadCloser, error) {
	file, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	return file, nil
}

// HTTPSource fetches a CSV over HTTP(S). Network errors and 5xx responses
// are retried with backoff; other non-200 responses fail at once.
type HTTPSource struct {
	URL    string
	Client *http.Client
	Retry  RetryConfig
}

func (s HTTPSource) Name() string { return s.URL }

func (s HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	var body io.ReadCloser
	err = retry(ctx, s.Retry, s.URL, func() error {
		resp, err := client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return permanent(err)
			}
			return fmt.Errorf("failed to GET CSV: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			err := fmt.Errorf("failed to GET CSV: unexpected status %s", resp.Status)
			if resp.StatusCode < http.StatusInternalServerError {
				return permanent(err)
			}
			return err
		}
		body = resp.Body
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

// ReaderSource serves CSV content held in memory.
type ReaderSource struct {
	Label string
	Data  []byte
}

func (s ReaderSource) Name() string { return s.Label }

func (s ReaderSource) Open(_ context.Context) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(s.Data)), nil
}

// NewSource picks an HTTP source for http(s) URLs and a file source otherwise.
func NewSource(pathOrURL string) Source {
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return HTTPSource{URL: pathOrURL}
	}
	return FileSource{Path: pathOrURL}
}

// ------------------- Loader -------------------

// Loader reads a city's trips and applies month/day filters.
type Loader struct {
	sources map[model.City]Source
}

// NewLoader creates a loader over an explicit city to source mapping.
func NewLoader(sources map[model.City]Source) *Loader {
	m := make(map[model.City]Source, len(sources))
	for city, src := range sources {
		m[city] = src
	}
	return &Loader{sources: m}
}

// Load reads the source for filters.City, parses every row, derives the
// calendar fields and returns the records matching the month/day filters in
// file order. Any unparseable start time fails the whole load.
func (l *Loader) Load(ctx context.Context, filters model.FilterSpec) (*Dataset, error) {
	src, ok := l.sources[filters.City]
	if !ok {
		return nil, &model.DataSourceError{City: filters.City, Source: "<unconfigured>", Err: errors.New("no source configured")}
	}

	log.Printf("➡️ Loading trips for %s from %s", filters.City, src.Name())

	rc, err := src.Open(ctx)
	if err != nil {
		return nil, &model.DataSourceError{City: filters.City, Source: src.Name(), Err: err}
	}
	defer rc.Close()

	records, err := readCSV(ctx, rc)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &model.DataSourceError{City: filters.City, Source: src.Name(), Err: err}
	}

	header := records[0]
	if err := validateColumns(header); err != nil {
		return nil, &model.DataSourceError{City: filters.City, Source: src.Name(), Err: err}
	}
	schema := schemaFor(header)

	trips, err := decodeTrips(records, schema)
	if err != nil {
		var perr *model.ParseError
		if errors.As(err, &perr) {
			return nil, err
		}
		return nil, &model.DataSourceError{City: filters.City, Source: src.Name(), Err: err}
	}

	filtered := ApplyFilters(trips, filters)
	log.Printf("📄 %s: %d of %d trips match month=%s day=%s", filters.City, len(filtered), len(trips), filters.Month, filters.Day)

	return NewDataset(filters, schema, filtered), nil
}

// ------------------- CSV Ingestion -------------------

// readCSV returns the cleaned header followed by every data row.
func readCSV(ctx context.Context, r io.Reader) ([][]string, error) {
	csvReader := csv.NewReader(r)
	csvReader.LazyQuotes = true

	headers, err := csvReader.Read()
	if err == io.EOF {
		return nil, errors.New("empty CSV: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\ufeff")
	}
	for i, h := range headers {
		// Clean header names: trim whitespace and remove ALL quotes
		headers[i] = strings.ReplaceAll(strings.TrimSpace(h), `"`, "")
	}

	records := [][]string{headers}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := csvReader.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %w", err)
		}
		records = append(records, record)
	}
}

// decodeTrips loads the rows into a string-typed DataFrame and converts
// each row into a TripRecord.
func decodeTrips(records [][]string, schema model.Schema) ([]model.TripRecord, error) {
	if len(records) < 2 {
		return []model.TripRecord{}, nil
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("failed to load records: %w", df.Err)
	}

	col := func(name string) []string { return df.Col(name).Records() }
	starts := col(ColStartTime)
	durations := col(ColTripDuration)
	startStations := col(ColStartStation)
	endStations := col(ColEndStation)
	userTypes := col(ColUserType)

	var ends, genders, years []string
	if schema.HasEndTime {
		ends = col(ColEndTime)
	}
	if schema.HasGender {
		genders = col(ColGender)
	}
	if schema.HasBirthYear {
		years = col(ColBirthYear)
	}

	trips := make([]model.TripRecord, df.Nrow())
	for i := range trips {
		row := i + 1
		rec := &trips[i]

		start, err := parseTimestamp(starts[i])
		if err != nil {
			return nil, &model.ParseError{Row: row, Column: ColStartTime, Value: starts[i], Err: err}
		}
		rec.StartTime = start

		dur, err := parseTripDuration(durations[i])
		if err != nil {
			return nil, &model.ParseError{Row: row, Column: ColTripDuration, Value: durations[i], Err: err}
		}
		rec.TripDuration = dur

		rec.StartStation = utils.CleanValue(startStations[i])
		rec.EndStation = utils.CleanValue(endStations[i])
		rec.UserType = utils.CleanValue(userTypes[i])

		if ends != nil && !utils.IsMissing(ends[i]) {
			end, err := parseTimestamp(ends[i])
			if err != nil {
				return nil, &model.ParseError{Row: row, Column: ColEndTime, Value: ends[i], Err: err}
			}
			rec.EndTime = &end
		}
		if genders != nil {
			rec.Gender = utils.CleanValue(genders[i])
		}
		if years != nil && !utils.IsMissing(years[i]) {
			year, err := parseBirthYear(years[i])
			if err != nil {
				return nil, &model.ParseError{Row: row, Column: ColBirthYear, Value: years[i], Err: err}
			}
			rec.BirthYear = &year
		}

		deriveCalendarFields(rec)
	}
	return trips, nil
}
