package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-bikeshare/internal/model"
	"go-bikeshare/internal/pipeline"
	"go-bikeshare/internal/store"
	"go-bikeshare/pkg/utils"
)

const reportsPrefix = "/api/v1/reports/"

// ReportRequest is the body of POST /api/v1/reports. Month and day accept
// "all" for no filter; matching is case-insensitive.
type ReportRequest struct {
	City  string `json:"city" example:"Chicago"`
	Month string `json:"month" example:"all"`
	Day   string `json:"day" example:"Monday"`
}

// ReportResponse is returned when a query runs.
type ReportResponse struct {
	QueryID     string            `json:"query_id"`
	Kind        string            `json:"kind"`
	Filters     model.FilterSpec  `json:"filters"`
	RecordCount int               `json:"record_count"`
	Record      *model.TripRecord `json:"record,omitempty"`
	Report      *model.Report     `json:"report,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// ReportHandler serves queries over the same core as the CLI.
type ReportHandler struct {
	store    *store.Store
	loader   pipeline.DatasetLoader
	output   *utils.OutputManager
	timeout  time.Duration
	pageSize int
}

// NewReportHandler wires the handler dependencies.
func NewReportHandler(st *store.Store, loader pipeline.DatasetLoader, output *utils.OutputManager, timeout time.Duration, pageSize int) *ReportHandler {
	if pageSize <= 0 {
		pageSize = 5
	}
	return &ReportHandler{store: st, loader: loader, output: output, timeout: timeout, pageSize: pageSize}
}

// CreateReport runs a new query
// @Summary Run a query
// @Description Load the city's trips, apply month/day filters and compute statistics
// @Tags reports
// @Accept json
// @Produce json
// @Param query body ReportRequest true "Filters"
// @Success 200 {object} ReportResponse "Query outcome"
// @Failure 400 {string} string "Invalid filters"
// @Failure 422 {string} string "Source data could not be parsed"
// @Failure 500 {string} string "Internal server error"
// @Router /reports [post]
func (h *ReportHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	var req ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	// 1. Validate payload
	filters, err := pipeline.ParseFilters(req.City, req.Month, req.Day)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// 2. Generate query ID and save
	queryID := uuid.New().String()
	if err := h.store.SaveQuery(queryID, filters); err != nil {
		http.Error(w, "Failed to save query", http.StatusInternalServerError)
		return
	}
	if err := h.store.UpdateQueryStatus(queryID, store.StatusRunning); err != nil {
		log.Printf("⚠️ Failed to mark query %s running: %v", queryID, err)
	}

	// 3. Run
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	outcome, err := pipeline.Run(ctx, h.loader, filters)
	if err != nil {
		if serr := h.store.SaveQueryError(queryID, err); serr != nil {
			log.Printf("❌ Failed to save error for query %s: %v", queryID, serr)
		}
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	if err := h.store.SaveOutcome(queryID, string(outcome.Kind), outcome.Dataset.Len(), outcome.Report); err != nil {
		http.Error(w, "Failed to save report", http.StatusInternalServerError)
		return
	}

	// 4. Return response
	resp := ReportResponse{
		QueryID:     queryID,
		Kind:        string(outcome.Kind),
		Filters:     filters,
		RecordCount: outcome.Dataset.Len(),
		Report:      outcome.Report,
		CreatedAt:   time.Now().UTC(),
	}
	if outcome.Kind == pipeline.OutcomeSingleRecord {
		rec := outcome.Dataset.Rows(0, 1)[0]
		resp.Record = &rec
	}
	writeJSON(w, resp)
}

// ListReports retrieves all stored queries
// @Summary List queries
// @Description List stored queries, newest first
// @Tags reports
// @Produce json
// @Success 200 {array} store.QueryRecord "Stored queries"
// @Failure 500 {string} string "Internal server error"
// @Router /reports [get]
func (h *ReportHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	queries, err := h.store.ListQueries()
	if err != nil {
		http.Error(w, "Failed to fetch queries", http.StatusInternalServerError)
		return
	}
	writeJSON(w, queries)
}

// GetReport retrieves a stored query and its report
// @Summary Get query
// @Description Retrieve a stored query with its report and errors
// @Tags reports
// @Produce json
// @Param id path string true "Query ID"
// @Success 200 {object} store.QueryRecord "Stored query"
// @Failure 400 {string} string "Invalid query ID"
// @Failure 404 {string} string "Query not found"
// @Router /reports/{id} [get]
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	queryID := pathParam(r.URL.Path, reportsPrefix, "")
	if queryID == "" {
		http.Error(w, "Query ID is required", http.StatusBadRequest)
		return
	}

	q, err := h.store.GetQuery(queryID)
	if err != nil {
		writeLookupError(w, err)
		return
	}
	writeJSON(w, q)
}

// GetReportRows pages through the query's raw filtered rows
// @Summary Get raw rows
// @Description Reload the query's dataset and return rows in [start, end)
// @Tags reports
// @Produce json
// @Param id path string true "Query ID"
// @Param start query int false "First row (inclusive)"
// @Param end query int false "Last row (exclusive)"
// @Success 200 {object} map[string]interface{} "Rows page"
// @Failure 404 {string} string "Query not found"
// @Router /reports/{id}/rows [get]
func (h *ReportHandler) GetReportRows(w http.ResponseWriter, r *http.Request) {
	queryID := pathParam(r.URL.Path, reportsPrefix, "/rows")
	if queryID == "" {
		http.Error(w, "Query ID is required", http.StatusBadRequest)
		return
	}

	start := queryInt(r, "start", 0)
	end := queryInt(r, "end", start+h.pageSize)

	q, err := h.store.GetQuery(queryID)
	if err != nil {
		writeLookupError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()
	ds, err := h.loader.Load(ctx, q.Filters)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	rows := ds.Rows(start, end)
	writeJSON(w, map[string]interface{}{
		"query_id": queryID,
		"rows":     rows,
		"count":    len(rows),
		"start":    start,
		"end":      end,
		"total":    ds.Len(),
	})
}

// ExportReport writes the report or raw rows to a file
// @Summary Export query
// @Description Export the stored report (target=report) or the raw rows (target=rows) as CSV or JSON
// @Tags reports
// @Produce json
// @Param id path string true "Query ID"
// @Param format query string false "csv or json" default(csv)
// @Param target query string false "report or rows" default(report)
// @Success 200 {object} pipeline.ExportResult "Export result"
// @Failure 404 {string} string "Query not found"
// @Failure 409 {string} string "Query has no report"
// @Router /reports/{id}/export [post]
func (h *ReportHandler) ExportReport(w http.ResponseWriter, r *http.Request) {
	queryID := pathParam(r.URL.Path, reportsPrefix, "/export")
	if queryID == "" {
		http.Error(w, "Query ID is required", http.StatusBadRequest)
		return
	}

	q, err := h.store.GetQuery(queryID)
	if err != nil {
		writeLookupError(w, err)
		return
	}

	format := r.URL.Query().Get("format")
	em := pipeline.NewExportManager(queryID, h.output)

	var result pipeline.ExportResult
	switch target := r.URL.Query().Get("target"); target {
	case "", "report":
		if q.Report == nil {
			http.Error(w, "Query has no report", http.StatusConflict)
			return
		}
		result = em.ExportReport(q.Report, format)
	case "rows":
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()
		ds, err := h.loader.Load(ctx, q.Filters)
		if err != nil {
			http.Error(w, err.Error(), statusFor(err))
			return
		}
		result = em.ExportRows(ds, format)
	default:
		http.Error(w, fmt.Sprintf("Unknown export target %q", target), http.StatusBadRequest)
		return
	}

	if !result.Success {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(result)
		return
	}
	writeJSON(w, result)
}

// DownloadFile serves an exported file
// @Summary Download file
// @Description Download an exported file of a query
// @Tags files
// @Produce application/octet-stream
// @Param id path string true "Query ID"
// @Param filename path string true "File name"
// @Success 200 {file} file "File download"
// @Failure 400 {string} string "Invalid URL format"
// @Failure 404 {string} string "File not found"
// @Router /download/{id}/{filename} [get]
func (h *ReportHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	// URL format: /api/v1/download/queryID/filename
	pathParts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(pathParts) != 5 {
		http.Error(w, fmt.Sprintf("Invalid URL format. Expected 5 parts, got %d", len(pathParts)), http.StatusBadRequest)
		return
	}
	queryID, fileName := pathParts[3], pathParts[4]

	filePath, err := h.output.ResolveFile(queryID, fileName)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", fileName))
	switch h.output.GetFileType(fileName) {
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
	case "json":
		w.Header().Set("Content-Type", "application/json")
	default:
		w.Header().Set("Content-Type", "application/octet-stream")
	}
	http.ServeFile(w, r, filePath)
}

// GetFilters lists the accepted filter values
// @Summary Filter values
// @Description Supported cities, months and weekdays
// @Tags reports
// @Produce json
// @Success 200 {object} map[string]interface{} "Filter values"
// @Router /filters [get]
func (h *ReportHandler) GetFilters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"cities":    model.Cities,
		"months":    model.Months,
		"days":      model.Weekdays,
		"no_filter": model.NoFilter,
	})
}

// ------------------- helpers -------------------

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "Query not found", http.StatusNotFound)
		return
	}
	http.Error(w, "Failed to retrieve query", http.StatusInternalServerError)
}

// statusFor maps core errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrParse):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// pathParam extracts the segment between prefix and suffix.
func pathParam(path, prefix, suffix string) string {
	if !strings.HasPrefix(path, prefix) || !strings.HasSuffix(path, suffix) {
		return ""
	}
	id := path[len(prefix) : len(path)-len(suffix)]
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}

func queryInt(r *http.Request, key string, fallback int) int {
	if s := r.URL.Query().Get(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			return v
		}
	}
	return fallback
}
