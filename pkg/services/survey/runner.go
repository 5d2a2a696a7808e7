package survey

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/de-tools/geff/pkg/models/domain"
	"github.com/de-tools/geff/pkg/runtime/terminal/export"
	"github.com/de-tools/geff/pkg/services/workflow"
	"github.com/rs/zerolog"
)

type Processor interface {
	Process(ctx context.Context, job workflow.Job) (domain.AzimuthResult, error)
}

type LogStore interface {
	Append(ctx context.Context, projectFile string, result domain.AzimuthResult, heights domain.Heights) error
}

type Settings struct {
	Gradient float64
	Heights  domain.Heights
	// ReportPath defaults to report.txt in the parent of the project
	// directory.
	ReportPath string
	WriteYAML  bool
}

// Summary describes a finished or aborted survey run.
type Summary struct {
	Outcomes   []domain.AzimuthOutcome
	Report     *domain.Report
	ReportPath string
	YAMLPath   string
}

// Runner reprocesses the azimuths of one survey project directory.
type Runner struct {
	processor Processor
	log       LogStore
	settings  Settings
	now       func() time.Time
}

func NewRunner(processor Processor, log LogStore, settings Settings) *Runner {
	return &Runner{
		processor: processor,
		log:       log,
		settings:  settings,
		now:       time.Now,
	}
}

// ProjectFile returns <dir>/<azimuth>/<azimuth>.fg5.
func ProjectFile(projectDir string, az domain.Azimuth) string {
	return filepath.Join(projectDir, string(az), string(az)+".fg5")
}

// DefaultReportPath returns report.txt in the parent of the project
// directory.
func DefaultReportPath(projectDir string) (string, error) {
	abs, err := filepath.Abs(projectDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(abs), "report.txt"), nil
}

// Run processes north then south. Azimuths without a project file are
// skipped with a warning. A processing failure ends the run. The combined
// report is written only when both azimuths were processed.
func (r *Runner) Run(ctx context.Context, projectDir string) (*Summary, error) {
	logger := zerolog.Ctx(ctx)
	summary := &Summary{}
	results := make(map[domain.Azimuth]domain.AzimuthResult, len(domain.Azimuths))

	for _, az := range domain.Azimuths {
		file := ProjectFile(projectDir, az)

		info, err := os.Stat(file)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return summary, fmt.Errorf("failed to stat %s: %w", file, err)
		}
		if err != nil || info.IsDir() {
			logger.Warn().Str("azimuth", string(az)).Str("path", file).Msg("project file not found, azimuth skipped")
			summary.Outcomes = append(summary.Outcomes, domain.AzimuthOutcome{Azimuth: az, Status: domain.AzimuthStatusSkipped})
			continue
		}

		result, err := r.processor.Process(ctx, workflow.Job{
			Azimuth:     az,
			ProjectFile: file,
			Gradient:    r.settings.Gradient,
			Heights:     r.settings.Heights,
		})
		if err != nil {
			msg := err.Error()
			summary.Outcomes = append(summary.Outcomes, domain.AzimuthOutcome{Azimuth: az, Status: domain.AzimuthStatusFailed, Error: &msg})
			return summary, err
		}

		if err := r.log.Append(ctx, file, result, r.settings.Heights); err != nil {
			return summary, err
		}
		summary.Outcomes = append(summary.Outcomes, domain.AzimuthOutcome{Azimuth: az, Status: domain.AzimuthStatusProcessed, Result: &result})
		results[az] = result
	}

	var missing []string
	for _, az := range domain.Azimuths {
		if _, ok := results[az]; !ok {
			missing = append(missing, string(az))
		}
	}
	if len(missing) > 0 {
		return summary, fmt.Errorf("%w: %s", ErrMissingAzimuth, strings.Join(missing, ", "))
	}

	report := NewReport(results[domain.AzimuthNorth], results[domain.AzimuthSouth], r.settings, r.now())
	if err := r.writeReport(ctx, projectDir, report, summary); err != nil {
		return summary, err
	}
	summary.Report = report
	return summary, nil
}

func (r *Runner) writeReport(ctx context.Context, projectDir string, report *domain.Report, summary *Summary) error {
	path := r.settings.ReportPath
	if path == "" {
		var err error
		if path, err = DefaultReportPath(projectDir); err != nil {
			return fmt.Errorf("failed to resolve report path: %w", err)
		}
	}

	if err := export.WriteFile(path, report); err != nil {
		return err
	}
	summary.ReportPath = path

	if r.settings.WriteYAML {
		yamlPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".yaml"
		if err := export.WriteYAMLFile(yamlPath, report); err != nil {
			return err
		}
		summary.YAMLPath = yamlPath
	}

	zerolog.Ctx(ctx).Info().
		Str("path", path).
		Float64("gravity", report.Aggregate.Gravity).
		Float64("difference", report.Aggregate.Difference).
		Msg("report written")
	return nil
}
