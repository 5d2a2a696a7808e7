package gui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// DefaultBinaries are the install locations of the processing application,
// tried in order.
var DefaultBinaries = []string{
	`C:\Program Files\Micro-g LaCoste Inc\bin\g9.exe`,
	`C:\Program Files (x86)\Micro-g LaCoste Inc\bin\g9.exe`,
}

const DefaultProcessName = "g9.exe"

// ErrBinaryNotFound is returned when no candidate install path exists.
var ErrBinaryNotFound = errors.New("processing application not found")

// ResolveBinary returns the first candidate that is an existing file.
func ResolveBinary(candidates []string) (string, error) {
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w (tried %s)", ErrBinaryNotFound, strings.Join(candidates, ", "))
}

// Application describes how to start and stop the processing application.
type Application struct {
	Binary      string
	ProcessName string
}

// Session is exclusive ownership of the single running application instance.
// Release is safe to call more than once.
type Session struct {
	driver Driver
	app    Application

	once       sync.Once
	releaseErr error
}

// Acquire terminates any stale instance and launches the application for the
// given project file.
func Acquire(ctx context.Context, d Driver, app Application, project string) (*Session, error) {
	if err := d.Terminate(ctx, app.ProcessName); err != nil {
		return nil, fmt.Errorf("failed to terminate stale instance: %w", err)
	}

	s := &Session{driver: d, app: app}
	if err := d.Launch(ctx, app.Binary, project); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Str("binary", app.Binary).
		Str("project", project).
		Msg("application launched")
	return s, nil
}

// Release terminates the application, also when ctx is already cancelled.
func (s *Session) Release(ctx context.Context) error {
	s.once.Do(func() {
		s.releaseErr = s.driver.Terminate(context.WithoutCancel(ctx), s.app.ProcessName)
		if s.releaseErr == nil {
			zerolog.Ctx(ctx).Debug().Str("process", s.app.ProcessName).Msg("application terminated")
		}
	})
	return s.releaseErr
}
