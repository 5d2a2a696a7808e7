package domain

import "time"

// AggregateReport combines the north and south results.
type AggregateReport struct {
	Gravity           float64 // mean, µGal
	SetupHeight       float64 // mean, cm
	EffectiveHeight   float64 // mean, cm
	StandardDeviation float64 // sqrt(sdN² + sdS²) / 2
	Difference        float64 // north - south, µGal
}

// Report is everything the combined report renders.
type Report struct {
	SiteName        string
	SiteCode        string
	CalculationDate time.Time
	Gradient        float64
	Heights         Heights
	Aggregate       AggregateReport
	North           AzimuthResult
	South           AzimuthResult
}
