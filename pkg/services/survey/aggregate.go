package survey

import (
	"errors"
	"math"
	"time"

	"github.com/de-tools/geff/pkg/models/domain"
)

// ErrMissingAzimuth is returned when a survey lacks one of the azimuths
// needed for the combined report.
var ErrMissingAzimuth = errors.New("survey is missing an azimuth result")

// Aggregate combines the north and south results. The standard deviation is
// sqrt(sdN² + sdS²) / 2 and the difference is north minus south.
func Aggregate(north, south domain.AzimuthResult) domain.AggregateReport {
	return domain.AggregateReport{
		Gravity:           (north.Gravity + south.Gravity) / 2,
		SetupHeight:       (north.SetupHeight + south.SetupHeight) / 2,
		EffectiveHeight:   (north.EffectiveHeight + south.EffectiveHeight) / 2,
		StandardDeviation: math.Sqrt(north.StandardDeviation*north.StandardDeviation+south.StandardDeviation*south.StandardDeviation) / 2,
		Difference:        north.Gravity - south.Gravity,
	}
}

// NewReport assembles the combined report. Site identity is taken from the
// north azimuth.
func NewReport(north, south domain.AzimuthResult, settings Settings, date time.Time) *domain.Report {
	return &domain.Report{
		SiteName:        north.SiteName,
		SiteCode:        north.SiteCode,
		CalculationDate: date,
		Gradient:        settings.Gradient,
		Heights:         settings.Heights,
		Aggregate:       Aggregate(north, south),
		North:           north,
		South:           south,
	}
}
