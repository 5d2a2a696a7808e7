package config

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
	"github.com/de-tools/geff/pkg/services/eop"
	"github.com/de-tools/geff/pkg/services/gui"
	"github.com/de-tools/geff/pkg/services/workflow"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	// ProjectFileName is looked up in the project directory when no config
	// file is given explicitly.
	ProjectFileName = "geff.yaml"
	EnvPrefix       = "GEFF"
)

type Config struct {
	Heights    HeightsConfig    `mapstructure:"heights"`
	Gradient   float64          `mapstructure:"gradient"`
	Instrument InstrumentConfig `mapstructure:"instrument"`
	App        AppConfig        `mapstructure:"app"`
	LDTP       LDTPConfig       `mapstructure:"ldtp"`
	EOP        EOPConfig        `mapstructure:"eop"`
	Workflow   WorkflowConfig   `mapstructure:"workflow"`
	Report     ReportConfig     `mapstructure:"report"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Log        LogConfig        `mapstructure:"log"`
}

type HeightsConfig struct {
	Factory  float64 `mapstructure:"factory"`
	Mod      float64 `mapstructure:"mod"`
	Transfer string  `mapstructure:"transfer"`
}

type InstrumentConfig struct {
	Profile      string `mapstructure:"profile"`
	ProfilesPath string `mapstructure:"profiles_path"`
}

type AppConfig struct {
	Binaries    []string `mapstructure:"binaries"`
	ProcessName string   `mapstructure:"process_name"`
	Layout      string   `mapstructure:"layout"`
}

type LDTPConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type EOPConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type WorkflowConfig struct {
	Settle            time.Duration `mapstructure:"settle"`
	InitialWait       time.Duration `mapstructure:"initial_wait"`
	PollInterval      time.Duration `mapstructure:"poll_interval"`
	FinalWait         time.Duration `mapstructure:"final_wait"`
	CompletionTimeout time.Duration `mapstructure:"completion_timeout"`
}

type ReportConfig struct {
	Path string `mapstructure:"path"`
	YAML bool   `mapstructure:"yaml"`
}

type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	runner := workflow.DefaultRunnerConfig()

	v.SetDefault("heights.factory", 80.60)
	v.SetDefault("heights.mod", 7.08)
	v.SetDefault("heights.transfer", runner.TransferHeight)
	v.SetDefault("gradient", 0.0)
	v.SetDefault("instrument.profile", "")
	v.SetDefault("instrument.profiles_path", defaultProfilesPath())
	v.SetDefault("app.binaries", gui.DefaultBinaries)
	v.SetDefault("app.process_name", gui.DefaultProcessName)
	v.SetDefault("app.layout", gui.LayoutRussian.Version)
	v.SetDefault("ldtp.url", gui.DefaultLDTPURL)
	v.SetDefault("ldtp.timeout", gui.DefaultLDTPTimeout)
	v.SetDefault("eop.endpoint", eop.DefaultEndpoint)
	v.SetDefault("eop.timeout", 30*time.Second)
	v.SetDefault("workflow.settle", runner.Settle)
	v.SetDefault("workflow.initial_wait", runner.InitialWait)
	v.SetDefault("workflow.poll_interval", runner.PollInterval)
	v.SetDefault("workflow.final_wait", runner.FinalWait)
	v.SetDefault("workflow.completion_timeout", runner.CompletionTimeout)
	v.SetDefault("report.path", "")
	v.SetDefault("report.yaml", true)
	v.SetDefault("metrics.textfile", "")
	v.SetDefault("log.level", "info")
}

func defaultProfilesPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".fg5cfg"
	}
	return filepath.Join(home, ".fg5cfg")
}

// Load builds the configuration from defaults, an optional YAML file and
// GEFF_* environment variables (a .env file in the working directory is
// loaded first). An explicit path must exist; otherwise geff.yaml in
// projectDir is used when present.
func Load(path, projectDir string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	switch {
	case path != "":
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	case projectDir != "":
		candidate := filepath.Join(projectDir, ProjectFileName)
		if _, err := os.Stat(candidate); err == nil {
			v.SetConfigFile(candidate)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// ResolveHeights returns the configured heights, replaced by those of the
// instrument profile when one is named.
func (c *Config) ResolveHeights(ctx context.Context) (domain.Heights, error) {
	heights := domain.Heights{Factory: c.Heights.Factory, Mod: c.Heights.Mod}
	if c.Instrument.Profile == "" {
		return heights, nil
	}

	registry, err := NewRegistry(c.Instrument.ProfilesPath)
	if err != nil {
		return domain.Heights{}, fmt.Errorf("failed to load instrument profiles: %w", err)
	}
	profile, err := registry.GetProfile(ctx, c.Instrument.Profile)
	if err != nil {
		return domain.Heights{}, err
	}

	zerolog.Ctx(ctx).Info().Stringer("profile", profile).Msg("instrument profile applied")
	return profile.Heights, nil
}

func (c *Config) RunnerConfig() workflow.RunnerConfig {
	return workflow.RunnerConfig{
		Settle:            c.Workflow.Settle,
		InitialWait:       c.Workflow.InitialWait,
		PollInterval:      c.Workflow.PollInterval,
		FinalWait:         c.Workflow.FinalWait,
		CompletionTimeout: c.Workflow.CompletionTimeout,
		TransferHeight:    c.Heights.Transfer,
	}
}

func (c *Config) Application() (gui.Application, error) {
	binary, err := gui.ResolveBinary(c.App.Binaries)
	if err != nil {
		return gui.Application{}, err
	}
	return gui.Application{Binary: binary, ProcessName: c.App.ProcessName}, nil
}
