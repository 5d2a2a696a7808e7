package domain

type Azimuth string

const (
	AzimuthNorth Azimuth = "north"
	AzimuthSouth Azimuth = "south"
)

var Azimuths = []Azimuth{AzimuthNorth, AzimuthSouth}

// AzimuthResult is the outcome of one processing run. Gravity and
// StandardDeviation are in µGal, heights in cm.
type AzimuthResult struct {
	Azimuth           Azimuth
	SiteName          string
	SiteCode          string
	SetupHeight       float64
	ISO               string
	MJD               string
	Bulletin          Bulletin
	ExpectedSets      int
	Drops             int
	Gravity           float64
	StandardDeviation float64
	EffectiveHeight   float64
}

// WithEffectiveHeight returns a copy with EffectiveHeight set to
// factory + setup - mod.
func (r AzimuthResult) WithEffectiveHeight(h Heights) AzimuthResult {
	r.EffectiveHeight = h.Factory + r.SetupHeight - h.Mod
	return r
}
