package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"go-bikeshare/internal/model"
	"go-bikeshare/internal/pipeline"
)

const separator = "----------------------------------------"

// renderer prints query outcomes. Styles are bound to out so colors are
// dropped when out is not a terminal.
type renderer struct {
	out     io.Writer
	heading lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	dim     lipgloss.Style
	warn    lipgloss.Style
}

func newRenderer(out io.Writer) *renderer {
	r := lipgloss.NewRenderer(out)
	return &renderer{
		out:     out,
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		label:   r.NewStyle().Bold(true),
		value:   r.NewStyle().Foreground(lipgloss.Color("10")),
		dim:     r.NewStyle().Foreground(lipgloss.Color("8")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("11")),
	}
}

func (r *renderer) line(label, value string) {
	fmt.Fprintf(r.out, "%s %s\n", r.label.Render(label+":"), r.value.Render(value))
}

func (r *renderer) section(title string) {
	fmt.Fprintf(r.out, "\n%s\n\n", r.heading.Render(title))
}

func (r *renderer) took(rep *model.Report, section string) {
	for _, t := range rep.Timings {
		if t.Section == section {
			fmt.Fprintln(r.out, r.dim.Render(fmt.Sprintf("\nThis took %.6f seconds.", t.Duration.Seconds())))
			break
		}
	}
	fmt.Fprintln(r.out, separator)
}

// mostCommon picks the singular or plural label and joins the tied values.
func mostCommon[V comparable](singular, plural string, f model.FrequencyResult[V]) (string, string) {
	if len(f.Values) == 0 {
		return singular, "none"
	}
	values := make([]string, len(f.Values))
	for i, v := range f.Values {
		values[i] = fmt.Sprint(v)
	}
	label := singular
	if f.Tied() {
		label = plural + " (equal frequency of occurrence)"
	}
	return label, strings.Join(values, ", ")
}

func (r *renderer) report(rep *model.Report) {
	r.section("Calculating The Most Frequent Times of Travel...")
	if rep.CommonMonth != nil {
		r.line(mostCommon("Most common month", "Most common months", *rep.CommonMonth))
	}
	if rep.CommonDay != nil {
		r.line(mostCommon("Most common day of week", "Most common days of week", *rep.CommonDay))
	}
	r.line(mostCommon("Most common hour of day", "Most common hours of day", rep.CommonHour))
	r.took(rep, pipeline.SectionTimes)

	r.section("Calculating The Most Popular Stations and Trip...")
	r.line(mostCommon("Most common start station", "Most common start stations", rep.CommonStartStation))
	r.line(mostCommon("Most common end station", "Most common end stations", rep.CommonEndStation))
	r.line(mostCommon(
		"Most common combination of start and end stations",
		"Most common combinations of start and end stations",
		rep.CommonRoute))
	r.took(rep, pipeline.SectionStations)

	d := rep.Duration
	r.section("Calculating Trip Duration...")
	r.line("Total travel time (seconds)", strconv.FormatInt(d.TotalSeconds, 10))
	r.line("Total travel time (h:m:s)", d.Total.String())
	r.line("Average travel time (seconds)", strconv.FormatFloat(d.MeanRounded, 'f', 2, 64))
	r.line("Average travel time (h:m:s)", d.Mean.String())
	r.took(rep, pipeline.SectionDuration)

	r.section("Calculating User Stats...")
	fmt.Fprintln(r.out, r.label.Render("Counts of each user type:"))
	r.counts(rep.Users.Types)
	if rep.Users.HasGender {
		fmt.Fprintln(r.out, "\n"+r.label.Render("Counts of each gender:"))
		r.counts(rep.Users.Genders)
	}
	if by := rep.Users.BirthYears; by != nil {
		fmt.Fprintln(r.out)
		r.line("Earliest year of birth", strconv.Itoa(by.Earliest))
		r.line("Most recent year of birth", strconv.Itoa(by.MostRecent))
		r.line("Most common year of birth", strconv.Itoa(by.MostCommon))
	}
	r.took(rep, pipeline.SectionUsers)
}

func (r *renderer) counts(counts []model.ValueCount[string]) {
	width := 0
	for _, vc := range counts {
		width = max(width, len(vc.Value))
	}
	for _, vc := range counts {
		fmt.Fprintf(r.out, "  %-*s  %s\n", width, vc.Value, r.value.Render(strconv.Itoa(vc.Count)))
	}
}

func describe(f model.FilterSpec) string {
	return fmt.Sprintf("(city: %s, month: %s, day: %s)", f.City, f.Month, f.Day)
}

func (r *renderer) noData(f model.FilterSpec) {
	fmt.Fprintln(r.out, r.warn.Render(fmt.Sprintf("\nYour filtering conditions %s returned no data.", describe(f))))
}

func (r *renderer) singleRecord(f model.FilterSpec, ds *pipeline.Dataset) {
	fmt.Fprintln(r.out, r.warn.Render(fmt.Sprintf("\nYour filtering conditions %s returned only one entry:", describe(f))))
	r.rows(ds.Schema(), ds.Rows(0, 1), 0)
}

// rows prints trips as a table; offset is the index of the first trip.
func (r *renderer) rows(schema model.Schema, trips []model.TripRecord, offset int) {
	header, body := pipeline.RowRecords(schema, trips)
	for i := range body {
		body[i] = append([]string{strconv.Itoa(offset + i)}, body[i]...)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.dim).
		Headers(append([]string{"#"}, header...)...).
		Rows(body...)
	fmt.Fprintf(r.out, "\n%s\n", t.Render())
}

func (r *renderer) exported(res pipeline.ExportResult) {
	if !res.Success {
		fmt.Fprintln(r.out, r.warn.Render("Export failed: "+res.Error))
		return
	}
	fmt.Fprintf(r.out, "%s %s\n", r.dim.Render("Report written to"), res.Path)
}
