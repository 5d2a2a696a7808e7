package export

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/de-tools/geff/pkg/models/domain"
)

// Table is the azimuth summary grid of the combined report.
type Table struct {
	Header []string
	Rows   [][]string
}

// ResultTable builds the summary grid: one row per azimuth and a result row.
func ResultTable(report *domain.Report) Table {
	row := func(r domain.AzimuthResult) []string {
		return []string{
			string(r.Azimuth),
			r.ISO,
			strconv.Itoa(r.ExpectedSets),
			strconv.Itoa(r.Drops),
			fmt.Sprintf("%.2f", r.Gravity),
			fmt.Sprintf("%.2f", r.StandardDeviation),
			fmt.Sprintf("%.2f", r.SetupHeight),
		}
	}
	agg := report.Aggregate
	return Table{
		Header: []string{"Azimuth", "Start DateTime", "Sets", "Drops", "g_eff", "sd", "h_setup"},
		Rows: [][]string{
			row(report.North),
			row(report.South),
			{
				"result", "", "", "",
				fmt.Sprintf("%.2f", agg.Gravity),
				fmt.Sprintf("%.2f", agg.StandardDeviation),
				fmt.Sprintf("%.2f", agg.SetupHeight),
			},
		},
	}
}

// Widths returns the width of each column: the widest of header and cells.
func (t Table) Widths() []int {
	widths := make([]int, len(t.Header))
	for i, h := range t.Header {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, r := range t.Rows {
		for i, c := range r {
			if n := utf8.RuneCountInString(c); i < len(widths) && n > widths[i] {
				widths[i] = n
			}
		}
	}
	return widths
}

func center(s string, width int) string {
	excess := width - utf8.RuneCountInString(s)
	if excess <= 0 {
		return s
	}
	// odd excess: the extra space goes left of even-length text, right of odd
	left := excess/2 + (excess & width & 1)
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", excess-left)
}

type Reporter struct {
	writer io.Writer
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

const reportTemplate = `Recalculation Report

Site Name:  {{.SiteName}}
Site Code:  {{.SiteCode}}
Calculation Date:  {{.CalculationDate.Format "2006-01-02"}}
Gravity_eff:  {{printf "%.2f" .Aggregate.Gravity}} µGal
Standard Deviation:  {{printf "%.2f" .Aggregate.StandardDeviation}} µGal
Vertical Gradient:  {{printf "%.2f" .Gradient}} µGal/cm
Effective Height:  {{printf "%.2f" .Aggregate.EffectiveHeight}} cm
Setup Height:  {{printf "%.2f" .Aggregate.SetupHeight}} cm
Height_mod:  {{printf "%.2f" .Heights.Mod}} cm
Factory Height:  {{printf "%.2f" .Heights.Factory}} cm

{{separator}}
{{formatRow header}}
{{separator}}
{{range rows}}{{formatRow .}}
{{end}}{{separator}}

Azimuth Difference (N-S):  {{printf "%.2f" .Aggregate.Difference}} µGal`

// Handle renders the combined report of both azimuths.
func (c *Reporter) Handle(report *domain.Report) error {
	table := ResultTable(report)
	widths := table.Widths()

	funcMap := template.FuncMap{
		"header": func() []string { return table.Header },
		"rows":   func() [][]string { return table.Rows },
		"formatRow": func(cells []string) string {
			padded := make([]string, len(widths))
			for i, w := range widths {
				cell := ""
				if i < len(cells) {
					cell = cells[i]
				}
				padded[i] = center(cell, w)
			}
			return "| " + strings.Join(padded, " | ") + " |"
		},
		"separator": func() string {
			parts := make([]string, len(widths))
			for i, w := range widths {
				parts[i] = strings.Repeat("-", w+2)
			}
			return "+" + strings.Join(parts, "+") + "+"
		},
	}

	t, err := template.New("report").Funcs(funcMap).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}

// WriteFile renders the report into path, replacing any previous report.
func WriteFile(path string, report *domain.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	if err := NewReporter(f).Handle(report); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
