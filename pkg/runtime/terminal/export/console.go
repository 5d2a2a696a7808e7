package export

import (
	"cmp"
	"fmt"
	"io"
	"os"
	"slices"
	"text/template"

	"github.com/de-tools/geff/pkg/models/domain"
)

// Console prints command results in a short text form.
type Console struct {
	writer io.Writer
}

func NewConsole(writer io.Writer) *Console {
	if writer == nil {
		writer = os.Stdout
	}
	return &Console{writer: writer}
}

type setCountView struct {
	Category domain.SetCategory
	Count    int
}

type outcomeView struct {
	Azimuth domain.Azimuth
	Status  domain.AzimuthStatus
	Result  *domain.AzimuthResult
	Error   string
}

var consoleTemplates = template.Must(template.New("console").Parse(`
{{define "metadata"}}Project file:  {{.Path}}
Measurement Start:  {{.Time.ISO}} UTC
MJD:  {{.Time.MJD}}
{{range .Counts}}Sets ({{.Category}}):  {{.Count}}
{{end}}{{end}}

{{define "pole"}}MJD:  {{.MJD}}
Status:  {{.Lookup.Status}}
Bulletin:  {{.Lookup.Coordinates.Bulletin}}
{{with .Lookup.Coordinates.XPole}}x_pole:  {{.}}
{{end}}{{with .Lookup.Coordinates.YPole}}y_pole:  {{.}}
{{end}}{{with .Lookup.Reason}}Reason:  {{.}}
{{end}}{{end}}

{{define "summary"}}{{range .Outcomes}}{{.Azimuth}}:  {{.Status}}{{with .Result}} (g_eff {{printf "%.2f" .Gravity}} µGal, sd {{printf "%.2f" .StandardDeviation}} µGal){{end}}{{with .Error}} ({{.}}){{end}}
{{end}}{{with .ReportPath}}Report:  {{.}}
{{end}}{{end}}
`))

// HandleMetadata prints what was decoded from a project file.
func (c *Console) HandleMetadata(path string, tv domain.TimeValues, counts domain.SetCounts) error {
	views := make([]setCountView, 0, len(counts))
	for category, n := range counts {
		views = append(views, setCountView{Category: category, Count: n})
	}
	slices.SortFunc(views, func(a, b setCountView) int {
		return cmp.Compare(a.Category, b.Category)
	})

	return c.execute("metadata", map[string]any{"Path": path, "Time": tv, "Counts": views})
}

// HandlePole prints a polar motion lookup.
func (c *Console) HandlePole(mjd string, lookup domain.PoleLookup) error {
	return c.execute("pole", map[string]any{"MJD": mjd, "Lookup": lookup})
}

// HandleOutcomes prints the per-azimuth status of a survey run.
func (c *Console) HandleOutcomes(outcomes []domain.AzimuthOutcome, reportPath string) error {
	views := make([]outcomeView, 0, len(outcomes))
	for _, o := range outcomes {
		v := outcomeView{Azimuth: o.Azimuth, Status: o.Status, Result: o.Result}
		if o.Error != nil {
			v.Error = *o.Error
		}
		views = append(views, v)
	}
	return c.execute("summary", map[string]any{"Outcomes": views, "ReportPath": reportPath})
}

func (c *Console) execute(name string, data any) error {
	if err := consoleTemplates.ExecuteTemplate(c.writer, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return nil
}
