// Package manifest persists the outcome of a split run as JSON so later
// tooling can map output files back to their section records.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/itsmostafa/texsplit/internal/platform"
	"github.com/itsmostafa/texsplit/internal/texsplit"
)

// Manifest records one split run.
type Manifest struct {
	RunID     string            `json:"run_id"`
	Root      string            `json:"root"`
	OutputDir string            `json:"output_dir"`
	CreatedAt time.Time         `json:"created_at"`
	Outputs   []texsplit.Output `json:"outputs"`
	Issues    []texsplit.Issue  `json:"issues"`
}

// New builds a manifest from a split result.
func New(root, outDir string, result *texsplit.Result) *Manifest {
	m := &Manifest{
		RunID:     result.RunID,
		Root:      root,
		OutputDir: outDir,
		CreatedAt: time.Now().UTC(),
		Outputs:   result.Outputs,
		Issues:    result.Issues,
	}
	if m.Outputs == nil {
		m.Outputs = []texsplit.Output{}
	}
	if m.Issues == nil {
		m.Issues = []texsplit.Issue{}
	}
	return m
}

// Save writes the manifest as indented JSON, replacing any previous file.
func Save(path string, m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	data = append(data, '\n')

	if err := platform.AtomicWrite(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// Load reads a manifest written by Save.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

// Lookup returns the outputs written for a title, in document order.
func (m *Manifest) Lookup(title string) []texsplit.Output {
	var out []texsplit.Output
	for _, o := range m.Outputs {
		if o.Record.Title == title {
			out = append(out, o)
		}
	}
	return out
}
