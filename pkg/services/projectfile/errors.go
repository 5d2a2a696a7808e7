package projectfile

import "fmt"

// FormatError reports a project file whose layout does not match the
// anchors the extractor relies on.
type FormatError struct {
	Field  string
	Path   string
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("project file format error in %s", e.Field)
	if e.Path != "" {
		msg += fmt.Sprintf(" (%s)", e.Path)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func newFormatError(field, reason string) *FormatError {
	return &FormatError{Field: field, Reason: reason}
}
