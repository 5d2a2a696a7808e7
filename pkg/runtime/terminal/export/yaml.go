package export

import (
	"fmt"
	"io"
	"os"

	"github.com/de-tools/geff/pkg/models/domain"
	"gopkg.in/yaml.v3"
)

type yamlAzimuth struct {
	Azimuth           string  `yaml:"azimuth"`
	Start             string  `yaml:"start"`
	MJD               string  `yaml:"mjd"`
	Bulletin          string  `yaml:"bulletin"`
	Sets              int     `yaml:"sets"`
	Drops             int     `yaml:"drops"`
	Gravity           float64 `yaml:"gravity_microgal"`
	StandardDeviation float64 `yaml:"sd_microgal"`
	SetupHeight       float64 `yaml:"setup_height_cm"`
	EffectiveHeight   float64 `yaml:"effective_height_cm"`
}

type yamlReport struct {
	SiteName        string        `yaml:"site_name"`
	SiteCode        string        `yaml:"site_code"`
	CalculationDate string        `yaml:"calculation_date"`
	Gradient        float64       `yaml:"vertical_gradient"`
	FactoryHeight   float64       `yaml:"factory_height_cm"`
	HeightMod       float64       `yaml:"height_mod_cm"`
	Result          yamlResult    `yaml:"result"`
	Azimuths        []yamlAzimuth `yaml:"azimuths"`
}

type yamlResult struct {
	Gravity           float64 `yaml:"gravity_microgal"`
	StandardDeviation float64 `yaml:"sd_microgal"`
	EffectiveHeight   float64 `yaml:"effective_height_cm"`
	SetupHeight       float64 `yaml:"setup_height_cm"`
	Difference        float64 `yaml:"difference_microgal"`
}

func toYAMLAzimuth(r domain.AzimuthResult) yamlAzimuth {
	return yamlAzimuth{
		Azimuth:           string(r.Azimuth),
		Start:             r.ISO,
		MJD:               r.MJD,
		Bulletin:          string(r.Bulletin),
		Sets:              r.ExpectedSets,
		Drops:             r.Drops,
		Gravity:           r.Gravity,
		StandardDeviation: r.StandardDeviation,
		SetupHeight:       r.SetupHeight,
		EffectiveHeight:   r.EffectiveHeight,
	}
}

// WriteYAML writes the report data as a YAML document.
func WriteYAML(w io.Writer, report *domain.Report) error {
	doc := yamlReport{
		SiteName:        report.SiteName,
		SiteCode:        report.SiteCode,
		CalculationDate: report.CalculationDate.Format("2006-01-02"),
		Gradient:        report.Gradient,
		FactoryHeight:   report.Heights.Factory,
		HeightMod:       report.Heights.Mod,
		Result: yamlResult{
			Gravity:           report.Aggregate.Gravity,
			StandardDeviation: report.Aggregate.StandardDeviation,
			EffectiveHeight:   report.Aggregate.EffectiveHeight,
			SetupHeight:       report.Aggregate.SetupHeight,
			Difference:        report.Aggregate.Difference,
		},
		Azimuths: []yamlAzimuth{toYAMLAzimuth(report.North), toYAMLAzimuth(report.South)},
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return enc.Close()
}

func WriteYAMLFile(path string, report *domain.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	if err := WriteYAML(f, report); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
