package workflow

import (
	"fmt"
	"time"

	"github.com/de-tools/geff/pkg/models/domain"
)

// StepError wraps the failure of one processing step.
type StepError struct {
	Azimuth domain.Azimuth
	Step    string
	Err     error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: step %s failed: %v", e.Azimuth, e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// TimeoutError is returned when the processing application does not report
// the expected number of sets before the completion deadline.
type TimeoutError struct {
	Azimuth  domain.Azimuth
	Expected int
	Last     int
	Waited   time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: processing did not complete within %s (%d of %d sets)", e.Azimuth, e.Waited, e.Last, e.Expected)
}

// OvershootError is returned when the completed set counter reports more
// sets than the project file holds.
type OvershootError struct {
	Azimuth  domain.Azimuth
	Expected int
	Reported int
}

func (e *OvershootError) Error() string {
	return fmt.Sprintf("%s: completed set counter %d exceeds the %d sets in the project file", e.Azimuth, e.Reported, e.Expected)
}
