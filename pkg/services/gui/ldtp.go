package gui

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/kolo/xmlrpc"
	"github.com/rs/zerolog"
)

const (
	DefaultLDTPURL = "http://localhost:4118/RPC2"
	// DefaultLDTPTimeout bounds the wait for the agent's reply to one call.
	DefaultLDTPTimeout = 30 * time.Second
)

// rpcCaller is the part of *xmlrpc.Client the driver uses.
type rpcCaller interface {
	Call(serviceMethod string, args interface{}, reply interface{}) error
}

// commandRunner starts and runs local processes.
type commandRunner interface {
	Start(ctx context.Context, name string, args ...string) error
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// LDTPDriver drives the application through an LDTP (Cobra on Windows)
// agent speaking XML-RPC. Processes are started and stopped locally.
type LDTPDriver struct {
	rpc    rpcCaller
	runner commandRunner
}

func NewLDTPDriver(url string, timeout time.Duration) (*LDTPDriver, error) {
	if url == "" {
		url = DefaultLDTPURL
	}
	if timeout <= 0 {
		timeout = DefaultLDTPTimeout
	}
	transport := cleanhttp.DefaultPooledTransport()
	transport.ResponseHeaderTimeout = timeout

	client, err := xmlrpc.NewClient(url, transport)
	if err != nil {
		return nil, fmt.Errorf("failed to create ldtp client: %w", err)
	}
	return &LDTPDriver{rpc: client, runner: execRunner{}}, nil
}

func (d *LDTPDriver) Launch(ctx context.Context, binary string, args ...string) error {
	zerolog.Ctx(ctx).Debug().Str("binary", binary).Strs("args", args).Msg("launching application")
	if err := d.runner.Start(ctx, binary, args...); err != nil {
		return fmt.Errorf("failed to launch %s: %w", binary, err)
	}
	return nil
}

// Terminate force-kills every process with the given image name. A missing
// process is not an error.
func (d *LDTPDriver) Terminate(ctx context.Context, processName string) error {
	out, err := d.runner.Run(ctx, "taskkill", "/F", "/IM", processName)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			zerolog.Ctx(ctx).Debug().
				Str("process", processName).
				Str("output", strings.TrimSpace(string(out))).
				Msg("no running process to terminate")
			return nil
		}
		return fmt.Errorf("failed to terminate %s: %w", processName, err)
	}
	return nil
}

func (d *LDTPDriver) ListControls(ctx context.Context, window string) ([]string, error) {
	var controls []string
	err := d.call(ctx, "getobjectlist", &controls, window)
	return controls, err
}

func (d *LDTPDriver) GetText(ctx context.Context, window, control string) (string, error) {
	var text string
	err := d.call(ctx, "gettextvalue", &text, window, control)
	return text, err
}

func (d *LDTPDriver) SetText(ctx context.Context, window, control, value string) error {
	var ok int
	return d.call(ctx, "settextvalue", &ok, window, control, value)
}

func (d *LDTPDriver) Click(ctx context.Context, window, control string) error {
	var ok int
	return d.call(ctx, "click", &ok, window, control)
}

func (d *LDTPDriver) SelectTab(ctx context.Context, window, tabGroup, tab string) error {
	var ok int
	return d.call(ctx, "selecttab", &ok, window, tabGroup, tab)
}

func (d *LDTPDriver) SelectComboItem(ctx context.Context, window, control, item string) error {
	var ok int
	return d.call(ctx, "comboselect", &ok, window, control, item)
}

func (d *LDTPDriver) IsChecked(ctx context.Context, window, control string) (bool, error) {
	var state int
	err := d.call(ctx, "verifycheck", &state, window, control)
	return state == 1, err
}

func (d *LDTPDriver) Uncheck(ctx context.Context, window, control string) error {
	var ok int
	return d.call(ctx, "uncheck", &ok, window, control)
}

func (d *LDTPDriver) WindowExists(ctx context.Context, window string) (bool, error) {
	var state int
	err := d.call(ctx, "guiexist", &state, window)
	return state == 1, err
}

func (d *LDTPDriver) Sleep(ctx context.Context, dur time.Duration) error {
	return Sleep(ctx, dur)
}

func (d *LDTPDriver) call(ctx context.Context, method string, reply interface{}, args ...interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := d.rpc.Call(method, args, reply); err != nil {
		return fmt.Errorf("ldtp %s%v: %w", method, args, err)
	}
	return nil
}

type execRunner struct{}

func (execRunner) Start(ctx context.Context, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	// The application outlives the call; reap it in the background.
	go func() { _ = cmd.Wait() }()
	return nil
}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}
