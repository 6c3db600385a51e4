package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"go-bikeshare/internal/model"
)

// Query statuses.
const (
	StatusPending   = "pending"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// ErrNotFound is returned when a query id is unknown.
var ErrNotFound = errors.New("query not found")

// Store keeps the history of queries and their computed reports.
type Store struct {
	db *sql.DB
}

// QueryRecord is one stored query with its outcome.
type QueryRecord struct {
	ID          string           `json:"id"`
	Filters     model.FilterSpec `json:"filters"`
	Status      string           `json:"status"`
	Outcome     string           `json:"outcome,omitempty"`
	RecordCount int              `json:"record_count"`
	Report      *model.Report    `json:"report,omitempty"`
	Errors      []string         `json:"errors,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// NewStore opens or creates the sqlite database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	queryTable := `
	CREATE TABLE IF NOT EXISTS queries (
		id TEXT PRIMARY KEY,
		city TEXT,
		month TEXT,
		day TEXT,
		status TEXT,
		outcome TEXT,
		record_count INTEGER DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	);
	`
	reportTable := `
	CREATE TABLE IF NOT EXISTS reports (
		query_id TEXT PRIMARY KEY,
		report TEXT,
		created_at DATETIME
	);
	`
	errorTable := `
	CREATE TABLE IF NOT EXISTS query_errors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		query_id TEXT,
		error_message TEXT,
		created_at DATETIME
	);
	`

	for _, stmt := range []string{queryTable, reportTable, errorTable} {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveQuery stores a new pending query
func (s *Store) SaveQuery(queryID string, filters model.FilterSpec) error {
	now := time.Now().UTC()
	_, err := s.db.Exec(`INSERT INTO queries (id, city, month, day, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		queryID, string(filters.City), filters.Month, filters.Day, StatusPending, now, now)
	return err
}

// UpdateQueryStatus updates query status
func (s *Store) UpdateQueryStatus(queryID string, status string) error {
	now := time.Now().UTC()
	_, err := s.db.Exec(`UPDATE queries SET status = ?, updated_at = ? WHERE id = ?`, status, now, queryID)
	return err
}

// SaveOutcome marks a query completed and stores its report, if any.
func (s *Store) SaveOutcome(queryID, outcome string, recordCount int, report *model.Report) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	if _, err := tx.Exec(`UPDATE queries SET status = ?, outcome = ?, record_count = ?, updated_at = ? WHERE id = ?`,
		StatusCompleted, outcome, recordCount, now, queryID); err != nil {
		return err
	}

	if report != nil {
		reportJSON, err := json.Marshal(report)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(`INSERT OR REPLACE INTO reports (query_id, report, created_at) VALUES (?, ?, ?)`,
			queryID, string(reportJSON), now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// SaveQueryError records an error for a query and marks it failed
func (s *Store) SaveQueryError(queryID string, err error) error {
	if err == nil {
		return nil
	}
	now := time.Now().UTC()
	if _, e := s.db.Exec(`INSERT INTO query_errors (query_id, error_message, created_at) VALUES (?, ?, ?)`,
		queryID, err.Error(), now); e != nil {
		return e
	}
	return s.UpdateQueryStatus(queryID, StatusFailed)
}

// ListQueries returns all queries, newest first, without their reports
func (s *Store) ListQueries() ([]QueryRecord, error) {
	rows, err := s.db.Query(`SELECT id, city, month, day, status, COALESCE(outcome, ''), record_count, created_at, updated_at FROM queries ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	queries := []QueryRecord{}
	for rows.Next() {
		q, err := scanQuery(rows)
		if err != nil {
			return nil, err
		}
		queries = append(queries, q)
	}
	return queries, rows.Err()
}

// GetQuery fetches a query with its report and errors
func (s *Store) GetQuery(queryID string) (*QueryRecord, error) {
	row := s.db.QueryRow(`SELECT id, city, month, day, status, COALESCE(outcome, ''), record_count, created_at, updated_at FROM queries WHERE id = ?`, queryID)
	q, err := scanQuery(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var reportJSON string
	err = s.db.QueryRow(`SELECT report FROM reports WHERE query_id = ?`, queryID).Scan(&reportJSON)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, err
	default:
		var report model.Report
		if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
			return nil, fmt.Errorf("decode report: %w", err)
		}
		q.Report = &report
	}

	q.Errors, err = s.queryErrors(queryID)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *Store) queryErrors(queryID string) ([]string, error) {
	rows, err := s.db.Query(`SELECT error_message FROM query_errors WHERE query_id = ? ORDER BY id`, queryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []string
	for rows.Next() {
		var msg string
		if err := rows.Scan(&msg); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanQuery(sc scanner) (QueryRecord, error) {
	var q QueryRecord
	var city string
	err := sc.Scan(&q.ID, &city, &q.Filters.Month, &q.Filters.Day, &q.Status, &q.Outcome, &q.RecordCount, &q.CreatedAt, &q.UpdatedAt)
	q.Filters.City = model.City(city)
	return q, err
}
