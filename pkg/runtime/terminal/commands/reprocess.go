package commands

import (
	"context"
	"fmt"

	"github.com/de-tools/geff/pkg/metrics"
	"github.com/de-tools/geff/pkg/services/config"
	"github.com/de-tools/geff/pkg/services/eop"
	"github.com/de-tools/geff/pkg/services/gui"
	"github.com/de-tools/geff/pkg/services/projectfile"
	"github.com/de-tools/geff/pkg/services/survey"
	"github.com/de-tools/geff/pkg/services/workflow"
	"github.com/de-tools/geff/pkg/store/projectlog"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type ReprocessCmd struct {
	opts *Options
}

func NewReprocessCmd(opts *Options) *cobra.Command {
	rc := &ReprocessCmd{opts: opts}
	return &cobra.Command{
		Use:   "reprocess [project-dir]",
		Short: "Reprocess the north and south azimuths of a survey project",
		Long: "Reprocess runs the processing application for <dir>/north/north.fg5 and\n" +
			"<dir>/south/south.fg5 with updated pole coordinates and writes the\n" +
			"combined report next to the project directory. The directory defaults\n" +
			"to the working directory.",
		Args: cobra.MaximumNArgs(1),
		RunE: rc.Run,
	}
}

func (rc *ReprocessCmd) Run(cmd *cobra.Command, args []string) error {
	projectDir := "."
	if len(args) == 1 {
		projectDir = args[0]
	}

	ctx, cfg, err := rc.opts.loadConfig(cmd.Context(), projectDir)
	if err != nil {
		return err
	}
	logger := zerolog.Ctx(ctx)

	runner, err := newRunner(ctx, cfg)
	if err != nil {
		return err
	}

	logger.Info().Str("project", projectDir).Msg("reprocessing started")
	summary, runErr := runner.Run(ctx, projectDir)

	if cfg.Metrics.Textfile != "" {
		if err := metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			logger.Error().Err(err).Str("path", cfg.Metrics.Textfile).Msg("failed to write metrics")
		}
	}
	if summary != nil {
		if err := rc.opts.Console.HandleOutcomes(summary.Outcomes, summary.ReportPath); err != nil {
			return err
		}
	}
	return runErr
}

func newRunner(ctx context.Context, cfg *config.Config) (*survey.Runner, error) {
	heights, err := cfg.ResolveHeights(ctx)
	if err != nil {
		return nil, err
	}
	layout, err := gui.LookupLayout(cfg.App.Layout)
	if err != nil {
		return nil, err
	}
	app, err := cfg.Application()
	if err != nil {
		return nil, err
	}
	driver, err := gui.NewLDTPDriver(cfg.LDTP.URL, cfg.LDTP.Timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect gui agent: %w", err)
	}

	orchestrator := workflow.NewOrchestrator(
		driver,
		layout,
		app,
		projectfile.NewExtractor(),
		eop.NewClient(cfg.EOP.Endpoint, cfg.EOP.Timeout),
		cfg.RunnerConfig(),
	)

	return survey.NewRunner(orchestrator, projectlog.NewStore(), survey.Settings{
		Gradient:   cfg.Gradient,
		Heights:    heights,
		ReportPath: cfg.Report.Path,
		WriteYAML:  cfg.Report.YAML,
	}), nil
}
