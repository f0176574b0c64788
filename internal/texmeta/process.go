package texmeta

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/itsmostafa/texsplit/internal/texsplit"
)

// ErrNoEntries is returned when a .toc file holds no \contentsline entries.
var ErrNoEntries = errors.New("no table of contents entries")

// Files names the auxiliary files of one build, relative to the project root.
type Files struct {
	TOC   string
	SecID string
	Aux   string // optional; labels are left empty without it
}

// Process parses the auxiliary files under root and returns section records
// in document order, with source positions attached by secid and labels
// attached by hyperref anchor.
func Process(root string, files Files) ([]texsplit.Record, error) {
	entries, err := ParseTOC(filepath.Join(root, files.TOC))
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%s: %w", files.TOC, ErrNoEntries)
	}

	positions := map[int]Position{}
	if files.SecID != "" {
		positions, err = ParseSecID(filepath.Join(root, files.SecID))
		if err != nil {
			return nil, err
		}
	}

	labels := map[string]string{}
	if files.Aux != "" {
		labels, err = ParseAuxLabels(filepath.Join(root, files.Aux))
		if err != nil {
			return nil, err
		}
	}

	records := Records(entries)
	AttachPositions(records, entries, positions)
	AttachLabels(records, entries, labels)

	slog.Debug("aux files processed", "component", "texmeta", "operation", "process",
		"entries", len(entries), "positions", len(positions), "labels", len(labels))
	return records, nil
}

// AttachPositions sets File and Line on records whose entry carries a secid
// known to positions. records and entries are parallel slices.
func AttachPositions(records []texsplit.Record, entries []Entry, positions map[int]Position) {
	for i, e := range entries {
		if e.SecID == nil {
			continue
		}
		if pos, ok := positions[*e.SecID]; ok {
			records[i].File = pos.File
			records[i].Line = pos.Line
		}
	}
}

// AttachLabels sets Label on records whose entry anchor has a \newlabel.
func AttachLabels(records []texsplit.Record, entries []Entry, labels map[string]string) {
	for i, e := range entries {
		if e.Anchor == "" {
			continue
		}
		if name, ok := labels[e.Anchor]; ok {
			records[i].Label = name
		}
	}
}
