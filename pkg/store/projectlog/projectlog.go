package projectlog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/de-tools/geff/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Suffix replaces the project file extension to form the log path.
const Suffix = ".project.txt"

// Store appends reprocessing entries to the text log kept next to each
// project file.
type Store struct {
	mu sync.Mutex
}

func NewStore() *Store {
	return &Store{}
}

// PathFor returns the log path for a project file, e.g.
// north/north.fg5 -> north/north.project.txt.
func PathFor(projectFile string) string {
	return strings.TrimSuffix(projectFile, filepath.Ext(projectFile)) + Suffix
}

// Append writes one entry for result. Existing content is kept.
func (s *Store) Append(ctx context.Context, projectFile string, result domain.AzimuthResult, heights domain.Heights) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := PathFor(projectFile)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open project log: %w", err)
	}
	defer file.Close()

	if _, err := file.WriteString(FormatEntry(result, heights)); err != nil {
		return fmt.Errorf("failed to append to %s: %w", path, err)
	}

	zerolog.Ctx(ctx).Info().Str("path", path).Msg("project log updated")
	return nil
}

// FormatEntry renders a single reprocessing entry. An entry starts with two
// newlines and has no trailing newline.
func FormatEntry(r domain.AzimuthResult, h domain.Heights) string {
	var b strings.Builder
	b.WriteString("\n\nReprocessing\n")
	fmt.Fprintf(&b, "MJD:  %s\n", r.MJD)
	fmt.Fprintf(&b, "Bulletin:  %s\n", r.Bulletin)
	fmt.Fprintf(&b, "Measurement Start:  %s\n", r.ISO)
	fmt.Fprintf(&b, "Gravity at Effective Height:  %.2f µGal\n", r.Gravity)
	fmt.Fprintf(&b, "Standard Deviation:  %.2f µGal\n", r.StandardDeviation)
	fmt.Fprintf(&b, "Effective Height:  %.2f cm\n", r.EffectiveHeight)
	fmt.Fprintf(&b, "Setup Height:  %.2f cm\n", r.SetupHeight)
	fmt.Fprintf(&b, "Height_mod:  %.2f cm\n", h.Mod)
	fmt.Fprintf(&b, "Factory Height:  %.2f cm", h.Factory)
	return b.String()
}
