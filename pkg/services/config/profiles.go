package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/de-tools/geff/pkg/models/domain"
	"gopkg.in/ini.v1"
)

// Registry gives access to the instrument profiles file. Each section is one
// instrument with factory_height and mod_height keys in cm.
type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetProfile(ctx context.Context, name string) (domain.InstrumentProfile, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetProfile(ctx context.Context, name string) (domain.InstrumentProfile, error) {
	section, err := cr.cfg.GetSection(name)
	if err != nil {
		known, _ := cr.GetProfiles(ctx)
		return domain.InstrumentProfile{}, fmt.Errorf("profile %s not found (known: %s)", name, strings.Join(known, ", "))
	}

	factory, err := section.Key("factory_height").Float64()
	if err != nil {
		return domain.InstrumentProfile{}, fmt.Errorf("profile %s: invalid factory_height: %w", name, err)
	}
	mod, err := section.Key("mod_height").Float64()
	if err != nil {
		return domain.InstrumentProfile{}, fmt.Errorf("profile %s: invalid mod_height: %w", name, err)
	}

	return domain.InstrumentProfile{
		Name:    name,
		Heights: domain.Heights{Factory: factory, Mod: mod},
	}, nil
}
