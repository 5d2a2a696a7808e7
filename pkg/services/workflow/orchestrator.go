package workflow

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/de-tools/geff/pkg/metrics"
	"github.com/de-tools/geff/pkg/models/domain"
	"github.com/de-tools/geff/pkg/services/gui"
	"github.com/rs/zerolog"
)

const (
	StepLaunch                  = "launch"
	StepOpenSetup               = "open_setup"
	StepCaptureIdentity         = "capture_identity"
	StepConfigurePressure       = "configure_pressure"
	StepConfigureGradient       = "configure_gradient"
	StepResolveTimestamp        = "resolve_timestamp"
	StepResolvePoleCoordinates  = "resolve_pole_coordinates"
	StepConfigureTransferHeight = "configure_transfer_height"
	StepReadAcquisition         = "read_acquisition"
	StepConfigureTides          = "configure_tides"
	StepDisablePeakDetection    = "disable_peak_detection"
	StepConfirmSetup            = "confirm_setup"
	StepStartProcessing         = "start_processing"
	StepAwaitCompletion         = "await_completion"
	StepCaptureResult           = "capture_result"
	StepTeardown                = "teardown"
)

type MetadataSource interface {
	ExtractTimestamp(path string) (domain.TimeValues, error)
	ExtractSetCounts(path string) (domain.SetCounts, error)
}

type PoleSource interface {
	QueryPoleCoordinates(ctx context.Context, mjd string) (domain.PoleLookup, error)
}

// Job is one azimuth to reprocess.
type Job struct {
	Azimuth     domain.Azimuth
	ProjectFile string
	Gradient    float64
	Heights     domain.Heights
}

// Orchestrator drives the processing application through one azimuth run.
// It owns the application instance for the whole run, so runs must not
// overlap.
type Orchestrator struct {
	driver   gui.Driver
	layout   gui.Layout
	app      gui.Application
	metadata MetadataSource
	poles    PoleSource
	config   RunnerConfig
}

func NewOrchestrator(
	driver gui.Driver,
	layout gui.Layout,
	app gui.Application,
	metadata MetadataSource,
	poles PoleSource,
	config RunnerConfig,
) *Orchestrator {
	return &Orchestrator{
		driver:   driver,
		layout:   layout,
		app:      app,
		metadata: metadata,
		poles:    poles,
		config:   config,
	}
}

// run is the mutable state of a single Process call.
type run struct {
	job     Job
	session *gui.Session
	buttons gui.Buttons
	result  domain.AzimuthResult
}

type step struct {
	name string
	fn   func(ctx context.Context, r *run) error
}

func (o *Orchestrator) steps() []step {
	return []step{
		{StepLaunch, o.launch},
		{StepOpenSetup, o.openSetup},
		{StepCaptureIdentity, o.captureIdentity},
		{StepConfigurePressure, o.configurePressure},
		{StepConfigureGradient, o.configureGradient},
		{StepResolveTimestamp, o.resolveTimestamp},
		{StepResolvePoleCoordinates, o.resolvePoleCoordinates},
		{StepConfigureTransferHeight, o.configureTransferHeight},
		{StepReadAcquisition, o.readAcquisition},
		{StepConfigureTides, o.configureTides},
		{StepDisablePeakDetection, o.disablePeakDetection},
		{StepConfirmSetup, o.confirmSetup},
		{StepStartProcessing, o.startProcessing},
		{StepAwaitCompletion, o.awaitCompletion},
		{StepCaptureResult, o.captureResult},
		{StepTeardown, o.teardown},
	}
}

// Process runs every step in order and returns the azimuth result. The
// application is terminated on return, whether the run succeeded or not.
func (o *Orchestrator) Process(ctx context.Context, job Job) (domain.AzimuthResult, error) {
	logger := zerolog.Ctx(ctx).With().Str("azimuth", string(job.Azimuth)).Logger()
	ctx = logger.WithContext(ctx)

	r := &run{
		job:    job,
		result: domain.AzimuthResult{Azimuth: job.Azimuth},
	}
	defer func() {
		if r.session == nil {
			return
		}
		if err := r.session.Release(ctx); err != nil {
			logger.Error().Err(err).Msg("failed to terminate processing application")
		}
	}()

	for _, s := range o.steps() {
		logger.Info().Str("step", s.name).Msg("step started")
		started := time.Now()

		err := s.fn(ctx, r)
		metrics.ObserveStep(s.name, time.Since(started).Seconds())
		if err != nil {
			return domain.AzimuthResult{}, &StepError{Azimuth: job.Azimuth, Step: s.name, Err: err}
		}
	}

	logger.Info().
		Float64("gravity", r.result.Gravity).
		Float64("sd", r.result.StandardDeviation).
		Str("bulletin", string(r.result.Bulletin)).
		Msg("azimuth processed")
	return r.result, nil
}

func (o *Orchestrator) launch(ctx context.Context, r *run) error {
	session, err := gui.Acquire(ctx, o.driver, o.app, r.job.ProjectFile)
	if err != nil {
		return err
	}
	r.session = session

	if err := o.driver.Sleep(ctx, o.config.Settle); err != nil {
		return err
	}

	r.buttons, err = o.layout.ResolveButtons(ctx, o.driver)
	return err
}

func (o *Orchestrator) openSetup(ctx context.Context, r *run) error {
	if err := o.driver.Click(ctx, o.layout.MainWindow, r.buttons.Setup); err != nil {
		return err
	}
	return o.driver.Sleep(ctx, o.config.Settle)
}

func (o *Orchestrator) captureIdentity(ctx context.Context, r *run) error {
	form, c := o.layout.SetupForm, o.layout.Controls

	var err error
	if r.result.SiteName, err = o.driver.GetText(ctx, form, c.SiteName); err != nil {
		return err
	}
	if r.result.SiteCode, err = o.driver.GetText(ctx, form, c.SiteCode); err != nil {
		return err
	}
	r.result.SetupHeight, err = o.readFloat(ctx, form, c.SetupHeight)
	return err
}

func (o *Orchestrator) configurePressure(ctx context.Context, _ *run) error {
	return o.driver.Click(ctx, o.layout.SetupForm, o.layout.Controls.NominalPressure)
}

func (o *Orchestrator) configureGradient(ctx context.Context, r *run) error {
	return o.driver.SetText(ctx, o.layout.SetupForm, o.layout.Controls.Gradient, FormatDecimal(r.job.Gradient))
}

func (o *Orchestrator) resolveTimestamp(ctx context.Context, r *run) error {
	tv, err := o.metadata.ExtractTimestamp(r.job.ProjectFile)
	if err != nil {
		return err
	}
	r.result.ISO = tv.ISO
	r.result.MJD = tv.MJD

	zerolog.Ctx(ctx).Info().Str("start", tv.ISO).Str("mjd", tv.MJD).Msg("project start resolved")
	return nil
}

func (o *Orchestrator) resolvePoleCoordinates(ctx context.Context, r *run) error {
	logger := zerolog.Ctx(ctx)

	lookup, err := o.poles.QueryPoleCoordinates(ctx, r.result.MJD)
	if err != nil {
		return err
	}

	switch {
	case lookup.Resolved():
		form, c := o.layout.SetupForm, o.layout.Controls
		if err := o.driver.SetText(ctx, form, c.XPole, lookup.Coordinates.XPole); err != nil {
			return err
		}
		if err := o.driver.SetText(ctx, form, c.YPole, lookup.Coordinates.YPole); err != nil {
			return err
		}
		r.result.Bulletin = lookup.Coordinates.Bulletin
		logger.Info().
			Str("bulletin", string(lookup.Coordinates.Bulletin)).
			Str("x_pole", lookup.Coordinates.XPole).
			Str("y_pole", lookup.Coordinates.YPole).
			Msg("pole coordinates set")
	case lookup.Status == domain.LookupPartial:
		r.result.Bulletin = domain.BulletinDefault
		logger.Warn().
			Str("bulletin", string(lookup.Coordinates.Bulletin)).
			Str("reason", lookup.Reason).
			Msg("partial pole coordinates, keeping application defaults")
	default:
		r.result.Bulletin = domain.BulletinDefault
		logger.Warn().Str("reason", lookup.Reason).Msg("pole coordinates unavailable, keeping application defaults")
	}
	return nil
}

func (o *Orchestrator) configureTransferHeight(ctx context.Context, _ *run) error {
	return o.driver.SetText(ctx, o.layout.SetupForm, o.layout.Controls.TransferHeight, o.config.TransferHeight)
}

func (o *Orchestrator) readAcquisition(ctx context.Context, r *run) error {
	form, c := o.layout.SetupForm, o.layout.Controls
	if err := o.driver.SelectTab(ctx, form, c.TabGroup, c.AcquisitionTab); err != nil {
		return err
	}

	counts, err := o.metadata.ExtractSetCounts(r.job.ProjectFile)
	if err != nil {
		return err
	}
	expected, ok := counts[domain.SetCategoryFact]
	if !ok {
		return fmt.Errorf("project file has no %q set count", domain.SetCategoryFact)
	}
	if expected <= 0 {
		return fmt.Errorf("project file reports %d sets", expected)
	}
	r.result.ExpectedSets = expected

	r.result.Drops, err = o.readInt(ctx, form, c.Drops)
	return err
}

func (o *Orchestrator) configureTides(ctx context.Context, _ *run) error {
	l, c := o.layout, o.layout.Controls
	actions := []func() error{
		func() error { return o.driver.SelectTab(ctx, l.SetupForm, c.TabGroup, c.ControlTab) },
		func() error { return o.driver.SelectComboItem(ctx, l.SetupForm, c.TidalModel, c.TidalModelItem) },
		func() error { return o.driver.Click(ctx, l.SetupForm, c.TidalSetup) },
		o.settle(ctx),
		func() error { return o.driver.Click(ctx, l.TidalSetupForm, c.RunOceanLoad) },
		o.settle(ctx),
		func() error { return o.driver.Click(ctx, l.OceanLoadForm, c.DialogOK) },
		o.settle(ctx),
		func() error { return o.driver.Click(ctx, l.TidalSetupForm, c.DialogOK) },
		o.settle(ctx),
	}
	for _, action := range actions {
		if err := action(); err != nil {
			return err
		}
	}
	return nil
}

func (o *Orchestrator) settle(ctx context.Context) func() error {
	return func() error { return o.driver.Sleep(ctx, o.config.Settle) }
}

func (o *Orchestrator) disablePeakDetection(ctx context.Context, _ *run) error {
	form, control := o.layout.SetupForm, o.layout.Controls.AutoPeakDetection

	checked, err := o.driver.IsChecked(ctx, form, control)
	if err != nil {
		return err
	}
	if !checked {
		return nil
	}
	return o.driver.Uncheck(ctx, form, control)
}

func (o *Orchestrator) confirmSetup(ctx context.Context, _ *run) error {
	return o.driver.Click(ctx, o.layout.SetupForm, o.layout.SetupConfirmButton)
}

func (o *Orchestrator) startProcessing(ctx context.Context, r *run) error {
	if err := o.driver.Click(ctx, o.layout.MainWindow, r.buttons.Go); err != nil {
		return err
	}

	exists, err := o.driver.WindowExists(ctx, o.layout.OverrideDialog)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	zerolog.Ctx(ctx).Info().Msg("confirming override dialog")
	return o.driver.Click(ctx, o.layout.OverrideDialog, o.layout.Controls.OverrideConfirm)
}

func (o *Orchestrator) awaitCompletion(ctx context.Context, r *run) error {
	logger := zerolog.Ctx(ctx)
	expected := r.result.ExpectedSets

	pollCtx, cancel := context.WithTimeout(ctx, o.config.CompletionTimeout)
	defer cancel()
	started := time.Now()

	timedOut := func(err error, last int) error {
		if ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
			return &TimeoutError{
				Azimuth:  r.job.Azimuth,
				Expected: expected,
				Last:     last,
				Waited:   time.Since(started).Round(time.Second),
			}
		}
		return err
	}

	last := 0
	if err := o.driver.Sleep(pollCtx, o.config.InitialWait); err != nil {
		return timedOut(err, last)
	}
	for {
		text, err := o.driver.GetText(pollCtx, o.layout.StateWindow, o.layout.Controls.CompletedSets)
		metrics.IncCompletionPolls(string(r.job.Azimuth))
		if err != nil {
			return timedOut(err, last)
		}

		if text = strings.TrimSpace(text); text != "" {
			n, err := strconv.Atoi(text)
			if err != nil {
				return fmt.Errorf("completed set counter %q is not a number: %w", text, err)
			}
			last = n
		}
		logger.Debug().Int("completed", last).Int("expected", expected).Msg("processing progress")

		if last == expected {
			break
		}
		if last > expected {
			return &OvershootError{Azimuth: r.job.Azimuth, Expected: expected, Reported: last}
		}
		if err := o.driver.Sleep(pollCtx, o.config.PollInterval); err != nil {
			return timedOut(err, last)
		}
	}

	return o.driver.Sleep(ctx, o.config.FinalWait)
}

func (o *Orchestrator) captureResult(ctx context.Context, r *run) error {
	window, c := o.layout.StateWindow, o.layout.Controls

	var err error
	if r.result.Gravity, err = o.readFloat(ctx, window, c.Gravity); err != nil {
		return err
	}
	if r.result.StandardDeviation, err = o.readFloat(ctx, window, c.StandardDeviation); err != nil {
		return err
	}
	r.result = r.result.WithEffectiveHeight(r.job.Heights)
	metrics.SetAzimuthGravity(string(r.job.Azimuth), r.result.Gravity)
	return nil
}

func (o *Orchestrator) teardown(ctx context.Context, r *run) error {
	return r.session.Release(ctx)
}

func (o *Orchestrator) readFloat(ctx context.Context, window, control string) (float64, error) {
	text, err := o.driver.GetText(ctx, window, control)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, fmt.Errorf("%s.%s value %q is not a number: %w", window, control, text, err)
	}
	return v, nil
}

func (o *Orchestrator) readInt(ctx context.Context, window, control string) (int, error) {
	text, err := o.driver.GetText(ctx, window, control)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("%s.%s value %q is not an integer: %w", window, control, text, err)
	}
	return v, nil
}

// FormatDecimal renders v the way the application's text fields expect it:
// shortest representation, always with a decimal point.
func FormatDecimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
