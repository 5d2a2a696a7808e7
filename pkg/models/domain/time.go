package domain

import (
	"math"
	"time"
)

// TimeValues holds the acquisition start decoded from a project file.
// ISO and MJD are both derived from RawEpoch.
type TimeValues struct {
	RawEpoch float64 // seconds since the Unix epoch
	ISO      string  // UTC, "2006-01-02 15:04"
	MJD      string  // integer Modified Julian Day
}

func (t TimeValues) Time() time.Time {
	sec, frac := math.Modf(t.RawEpoch)
	return time.Unix(int64(sec), int64(frac*1e9)).UTC()
}
