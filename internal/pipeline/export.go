package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"go-bikeshare/internal/model"
	"go-bikeshare/pkg/utils"
)

// Export formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

const timestampLayout = "2006-01-02 15:04:05"

// ExportResult represents the result of an export operation
type ExportResult struct {
	Type        string    `json:"type"` // "report" or "rows"
	Format      string    `json:"format"`
	Path        string    `json:"path"`
	URL         string    `json:"url,omitempty"`
	RecordCount int       `json:"record_count"`
	Success     bool      `json:"success"`
	Error       string    `json:"error,omitempty"`
	ExportedAt  time.Time `json:"exported_at"`
}

// ExportManager writes a query's report and rows under its output directory.
type ExportManager struct {
	QueryID string
	Output  *utils.OutputManager
}

// NewExportManager creates an export manager for one query.
func NewExportManager(queryID string, output *utils.OutputManager) *ExportManager {
	return &ExportManager{QueryID: queryID, Output: output}
}

// ExportReport writes report as JSON or CSV. An empty format means CSV.
func (em *ExportManager) ExportReport(report *model.Report, format string) ExportResult {
	format, err := ParseFormat(format)
	if err != nil {
		return em.result("report", format, "", "", 0, err)
	}
	fileName := "report." + format

	var count int
	path, err := em.Output.GetOutputFilePath(em.QueryID, fileName)
	if err == nil {
		if format == FormatJSON {
			count, err = em.writeJSON(path, "report", 1, report)
		} else {
			rows := reportRows(report)
			count, err = writeCSV(path, []string{"section", "statistic", "value", "count"}, rows)
		}
	}
	return em.result("report", format, path, fileName, count, err)
}

// ExportRows writes every record of d as JSON or CSV. An empty format means CSV.
func (em *ExportManager) ExportRows(d *Dataset, format string) ExportResult {
	format, err := ParseFormat(format)
	if err != nil {
		return em.result("rows", format, "", "", 0, err)
	}
	fileName := "rows." + format
	rows := d.Rows(0, d.Len())

	var count int
	path, err := em.Output.GetOutputFilePath(em.QueryID, fileName)
	if err == nil {
		if format == FormatJSON {
			count, err = em.writeJSON(path, "rows", len(rows), rows)
		} else {
			header, body := RowRecords(d.Schema(), rows)
			count, err = writeCSV(path, header, body)
		}
	}
	return em.result("rows", format, path, fileName, count, err)
}

func (em *ExportManager) result(kind, format, path, fileName string, count int, err error) ExportResult {
	result := ExportResult{
		Type:        kind,
		Format:      format,
		Path:        path,
		RecordCount: count,
		Success:     err == nil,
		ExportedAt:  time.Now(),
	}
	if err != nil {
		result.Error = err.Error()
		log.Printf("❌ Export of %s failed: %v", kind, err)
		return result
	}
	result.URL = em.Output.GetDownloadURL(em.QueryID, fileName)
	log.Printf("💾 Exported %s: %d records to %s", kind, count, path)
	return result
}

// ParseFormat normalizes an export format. An empty format means CSV.
func ParseFormat(format string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case "":
		return FormatCSV, nil
	case FormatCSV, FormatJSON:
		return format, nil
	default:
		return format, fmt.Errorf("unsupported export format: %s", format)
	}
}

// writeJSON wraps data with export metadata.
func (em *ExportManager) writeJSON(path, exportType string, count int, data interface{}) (int, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	exportData := map[string]interface{}{
		"export_info": map[string]interface{}{
			"query_id":     em.QueryID,
			"exported_at":  time.Now().UTC(),
			"record_count": count,
			"export_type":  exportType,
		},
		"data": data,
	}
	if err := encoder.Encode(exportData); err != nil {
		return 0, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return count, nil
}

func writeCSV(path string, header []string, rows [][]string) (int, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	recordCount := 0
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return recordCount, fmt.Errorf("failed to write row: %w", err)
		}
		recordCount++
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return recordCount, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return recordCount, nil
}

// reportRows flattens a report into section/statistic/value/count rows.
func reportRows(r *model.Report) [][]string {
	var rows [][]string
	if r.CommonMonth != nil {
		rows = append(rows, frequencyRows(SectionTimes, "most_common_month", *r.CommonMonth)...)
	}
	if r.CommonDay != nil {
		rows = append(rows, frequencyRows(SectionTimes, "most_common_day", *r.CommonDay)...)
	}
	rows = append(rows, frequencyRows(SectionTimes, "most_common_hour", r.CommonHour)...)
	rows = append(rows, frequencyRows(SectionStations, "most_common_start_station", r.CommonStartStation)...)
	rows = append(rows, frequencyRows(SectionStations, "most_common_end_station", r.CommonEndStation)...)
	rows = append(rows, frequencyRows(SectionStations, "most_common_route", r.CommonRoute)...)

	d := r.Duration
	rows = append(rows,
		[]string{SectionDuration, "total_seconds", strconv.FormatInt(d.TotalSeconds, 10), ""},
		[]string{SectionDuration, "total", d.Total.String(), ""},
		[]string{SectionDuration, "mean_seconds", strconv.FormatFloat(d.MeanRounded, 'f', 2, 64), ""},
		[]string{SectionDuration, "mean", d.Mean.String(), ""},
	)

	for _, vc := range r.Users.Types {
		rows = append(rows, []string{SectionUsers, "user_type", vc.Value, strconv.Itoa(vc.Count)})
	}
	for _, vc := range r.Users.Genders {
		rows = append(rows, []string{SectionUsers, "gender", vc.Value, strconv.Itoa(vc.Count)})
	}
	if by := r.Users.BirthYears; by != nil {
		rows = append(rows,
			[]string{SectionUsers, "earliest_birth_year", strconv.Itoa(by.Earliest), ""},
			[]string{SectionUsers, "most_recent_birth_year", strconv.Itoa(by.MostRecent), ""},
			[]string{SectionUsers, "most_common_birth_year", strconv.Itoa(by.MostCommon), ""},
		)
	}
	return rows
}

func frequencyRows[V comparable](section, statistic string, f model.FrequencyResult[V]) [][]string {
	rows := make([][]string, 0, len(f.Values))
	for _, v := range f.Values {
		rows = append(rows, []string{section, statistic, fmt.Sprint(v), strconv.Itoa(f.Count)})
	}
	return rows
}

// RowRecords renders trips as a header and string rows. Optional columns
// follow the schema; derived calendar fields come last.
func RowRecords(schema model.Schema, trips []model.TripRecord) ([]string, [][]string) {
	header := []string{ColStartTime}
	if schema.HasEndTime {
		header = append(header, ColEndTime)
	}
	header = append(header, ColTripDuration, ColStartStation, ColEndStation, ColUserType)
	if schema.HasGender {
		header = append(header, ColGender)
	}
	if schema.HasBirthYear {
		header = append(header, ColBirthYear)
	}
	header = append(header, "Month", "Day of week", "Hour")

	rows := make([][]string, 0, len(trips))
	for _, t := range trips {
		row := []string{t.StartTime.Format(timestampLayout)}
		if schema.HasEndTime {
			end := ""
			if t.EndTime != nil {
				end = t.EndTime.Format(timestampLayout)
			}
			row = append(row, end)
		}
		row = append(row, strconv.FormatInt(t.TripDuration, 10), t.StartStation, t.EndStation, t.UserType)
		if schema.HasGender {
			row = append(row, t.Gender)
		}
		if schema.HasBirthYear {
			year := ""
			if t.BirthYear != nil {
				year = strconv.Itoa(*t.BirthYear)
			}
			row = append(row, year)
		}
		row = append(row, t.Month, t.Weekday, strconv.Itoa(t.Hour))
		rows = append(rows, row)
	}
	return header, rows
}
