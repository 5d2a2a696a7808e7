package gui

import (
	"context"
	"time"
)

// Driver is the set of operations the orchestrator needs from a GUI
// automation agent. Window and control names follow the agent's naming
// (window titles may be glob patterns such as "*Micro-g*").
type Driver interface {
	Launch(ctx context.Context, binary string, args ...string) error
	Terminate(ctx context.Context, processName string) error

	ListControls(ctx context.Context, window string) ([]string, error)
	GetText(ctx context.Context, window, control string) (string, error)
	SetText(ctx context.Context, window, control, value string) error
	Click(ctx context.Context, window, control string) error
	SelectTab(ctx context.Context, window, tabGroup, tab string) error
	SelectComboItem(ctx context.Context, window, control, item string) error
	IsChecked(ctx context.Context, window, control string) (bool, error)
	Uncheck(ctx context.Context, window, control string) error
	WindowExists(ctx context.Context, window string) (bool, error)

	// Sleep blocks for d or until ctx is done.
	Sleep(ctx context.Context, d time.Duration) error
}

// Sleep waits for d unless ctx ends first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
