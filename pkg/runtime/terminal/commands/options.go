package commands

import (
	"context"
	"fmt"

	"github.com/de-tools/geff/pkg/runtime/terminal/export"
	"github.com/de-tools/geff/pkg/services/config"
	"github.com/rs/zerolog"
)

// Options are shared by all commands.
type Options struct {
	ConfigPath string
	Console    *export.Console
}

// loadConfig reads the configuration and returns a context whose logger
// honours the configured level.
func (o *Options) loadConfig(ctx context.Context, projectDir string) (context.Context, *config.Config, error) {
	cfg, err := config.Load(o.ConfigPath, projectDir)
	if err != nil {
		return ctx, nil, err
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		return ctx, nil, fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}
	logger := zerolog.Ctx(ctx).Level(level)
	return logger.WithContext(ctx), cfg, nil
}
