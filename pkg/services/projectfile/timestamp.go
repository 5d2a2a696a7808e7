package projectfile

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/de-tools/geff/pkg/models/domain"
)

const (
	// Offset from the start of the date anchor back to the timestamp record.
	timestampLead = 8

	// The record stores whole 45 minute units and a 32-bit fraction of one.
	unitMinutes   = 45.0
	fractionScale = 4294967295.0

	// Seconds between the instrument epoch and the Unix epoch.
	epochOffset = 2938117104000.0

	mjdUnixEpoch = 40587.0
	secondsInDay = 86400.0

	isoLayout = "2006-01-02 15:04"
)

// dateAnchor is E0 ?? 00 00 0B; the wildcard never matches a newline byte.
var dateAnchor = []int{0xE0, -1, 0x00, 0x00, 0x0B}

// DecodeTimestamp decodes the acquisition start from the content of a
// project file.
func DecodeTimestamp(data []byte) (domain.TimeValues, error) {
	start := lastWildcardMatch(data, dateAnchor)
	if start < 0 {
		return domain.TimeValues{}, newFormatError("timestamp", "date anchor not found")
	}

	offset := start - timestampLead
	if offset < 0 || offset+8 > len(data) {
		return domain.TimeValues{}, newFormatError("timestamp", "date record outside file bounds")
	}

	hours := binary.LittleEndian.Uint32(data[offset:])
	days := binary.LittleEndian.Uint32(data[offset+4:])

	return NewTimeValues(RawEpoch(days, hours)), nil
}

// RawEpoch converts the two record fields to Unix seconds.
func RawEpoch(days, hours uint32) float64 {
	secs := float64(days)*unitMinutes*60.0 + float64(hours)/(fractionScale/unitMinutes)*60.0
	return secs - epochOffset
}

// NewTimeValues derives the ISO timestamp and MJD from Unix seconds.
func NewTimeValues(unix float64) domain.TimeValues {
	tv := domain.TimeValues{RawEpoch: unix}
	tv.ISO = tv.Time().Format(isoLayout)
	tv.MJD = strconv.FormatInt(int64(math.Floor(ModifiedJulianDay(unix))), 10)
	return tv
}

// ModifiedJulianDay returns the continuous MJD for Unix seconds.
func ModifiedJulianDay(unix float64) float64 {
	return unix/secondsInDay + mjdUnixEpoch
}

// lastWildcardMatch returns the start of the last non-overlapping match of
// pattern in data, or -1. A pattern element of -1 matches any byte but '\n'.
func lastWildcardMatch(data []byte, pattern []int) int {
	last := -1
	for i := 0; i+len(pattern) <= len(data); {
		if matchAt(data, i, pattern) {
			last = i
			i += len(pattern)
			continue
		}
		i++
	}
	return last
}

func matchAt(data []byte, at int, pattern []int) bool {
	for j, p := range pattern {
		b := data[at+j]
		if p < 0 {
			if b == '\n' {
				return false
			}
			continue
		}
		if int(b) != p {
			return false
		}
	}
	return true
}
