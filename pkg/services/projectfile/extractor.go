package projectfile

import (
	"errors"
	"fmt"
	"os"

	"github.com/de-tools/geff/pkg/models/domain"
)

// Extractor reads timing and set metadata from .fg5 project files.
// Each call re-reads the file.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

func (e *Extractor) ExtractTimestamp(path string) (domain.TimeValues, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.TimeValues{}, fmt.Errorf("failed to read project file: %w", err)
	}
	tv, err := DecodeTimestamp(data)
	return tv, withPath(err, path)
}

func (e *Extractor) ExtractSetCounts(path string) (domain.SetCounts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}
	counts, err := DecodeSetCounts(data)
	return counts, withPath(err, path)
}

func withPath(err error, path string) error {
	var fe *FormatError
	if errors.As(err, &fe) {
		fe.Path = path
	}
	return err
}
