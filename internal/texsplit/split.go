package texsplit

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/itsmostafa/texsplit/internal/platform"
)

const outputFilePerm = 0o644

// Replaceable for testing error paths.
var (
	atomicWrite = platform.AtomicWrite
	mkdirAll    = os.MkdirAll
)

// SplitOptions controls a Split call.
type SplitOptions struct {
	// IncludeSubsections keeps subsection records; by default they are
	// dropped and their content stays inside the enclosing section.
	IncludeSubsections bool

	// Validate runs the structural validator before splitting.
	Validate bool
}

// DefaultSplitOptions returns the options used when none are given.
func DefaultSplitOptions() SplitOptions {
	return SplitOptions{Validate: true}
}

// Output describes one written section file.
type Output struct {
	Index    int    `json:"index"`
	Record   Record `json:"record"`
	Filename string `json:"filename"`
	Path     string `json:"path"`
}

// Result is the observable outcome of a Split call.
type Result struct {
	// RunID tags the log lines of the run that produced this result.
	RunID string `json:"run_id"`

	// Files maps title to output path. When two records share a title the
	// later one wins; Outputs keeps every file.
	Files map[string]string `json:"files"`

	// Outputs lists every written file in document order.
	Outputs []Output `json:"outputs"`

	// Issues holds the validator's warnings, empty when validation is off.
	Issues []Issue `json:"issues,omitempty"`
}

// Splitter writes one file per section record.
type Splitter struct {
	extractor *Extractor
	logger    *slog.Logger
}

// NewSplitter creates a Splitter that extracts content with x. A nil logger
// falls back to slog.Default().
func NewSplitter(x *Extractor, logger *slog.Logger) *Splitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Splitter{extractor: x, logger: logger}
}

// Split filters records, optionally validates them, and writes each
// section's content to outDir. Per-record problems end up as comments in
// that record's file; only failing to create outDir or to write a file
// aborts the call.
func (s *Splitter) Split(ctx context.Context, records []Record, outDir string, opts SplitOptions) (*Result, error) {
	runID := uuid.New().String()
	log := s.logger.With("component", "texsplit", "run_id", runID)

	filtered := FilterSubsections(records, opts.IncludeSubsections)
	result := &Result{RunID: runID, Files: make(map[string]string, len(filtered))}

	if opts.Validate {
		result.Issues = Validate(filtered)
		for _, issue := range result.Issues {
			log.Warn(issue.Message,
				"operation", "validate", "level", issue.Record.Level.String(),
				"title", issue.Record.Title, "affected_file", issue.AffectedFile)
		}
		if len(result.Issues) > 0 {
			log.Warn("structure validation found potential content loss",
				"operation", "validate", "issues", len(result.Issues))
		}
	}

	if err := mkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", outDir, err)
	}

	alloc := newFilenameAllocator()
	for i, rec := range filtered {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		filename := alloc.allocate(rec) + s.extractor.res.ext
		content := s.extractor.Extract(filtered, i)
		path := filepath.Join(outDir, filename)

		if err := atomicWrite(path, []byte(content), outputFilePerm); err != nil {
			return result, fmt.Errorf("failed to write %s: %w", path, err)
		}

		result.Files[rec.Title] = path
		result.Outputs = append(result.Outputs, Output{Index: i, Record: rec, Filename: filename, Path: path})
		log.Debug("section written", "operation", "split", "title", rec.Title, "path", path)
	}

	log.Info("split complete", "operation", "split", "records", len(filtered),
		"files", len(result.Outputs), "issues", len(result.Issues), "output", outDir)
	return result, nil
}
