package texsplit

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	// DefaultExtension is appended to \input targets without one and
	// stripped from expansion markers.
	DefaultExtension = ".tex"

	// DefaultMaxInputDepth bounds nested \input expansion.
	DefaultMaxInputDepth = 10
)

var inputPattern = regexp.MustCompile(`\\input\{([^}]+)\}`)

// Extractor produces the LaTeX text belonging to one section record.
type Extractor struct {
	res      resolver
	maxDepth int
	logger   *slog.Logger
}

// ExtractorConfig configures an Extractor. Zero fields take the defaults.
type ExtractorConfig struct {
	// Extension is the source extension, including the dot. It is appended
	// to \input targets without one and stripped from expansion markers.
	Extension string

	// MaxInputDepth caps nested \input expansion.
	MaxInputDepth int

	Logger *slog.Logger
}

// NewExtractor creates an Extractor reading sources under root.
func NewExtractor(root string, cfg ExtractorConfig) *Extractor {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	if cfg.Extension == "" {
		cfg.Extension = DefaultExtension
	}
	if cfg.MaxInputDepth <= 0 {
		cfg.MaxInputDepth = DefaultMaxInputDepth
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Extractor{
		res:      resolver{root: root, ext: cfg.Extension},
		maxDepth: cfg.MaxInputDepth,
		logger:   cfg.Logger,
	}
}

// Root returns the absolute project root.
func (e *Extractor) Root() string {
	return e.res.root
}

// Extract returns the content of records[index]: the lines from its section
// command up to the next same-or-higher record in the same file (or end of
// file), with \input directives expanded. Problems never escape as errors;
// they are reported as LaTeX comments in the returned text.
func (e *Extractor) Extract(records []Record, index int) string {
	rec := records[index]
	if !rec.HasPosition() {
		return placeholder(rec, "No source file information available")
	}

	path, ok := e.res.recordFile(rec.File)
	if !ok {
		return placeholder(rec, "Source file not found: "+rec.File)
	}

	lines, err := readLines(path)
	if err != nil {
		return placeholder(rec, fmt.Sprintf("Error reading file: %v", err))
	}

	start := rec.Line - 1
	if start >= len(lines) {
		return placeholder(rec, fmt.Sprintf("Invalid line number: %d", rec.Line))
	}
	end := max(endLine(records, index, len(lines)), start)

	e.logger.Debug("extracting section",
		"component", "texsplit", "operation", "extract",
		"title", rec.Title, "file", rec.File, "start", start+1, "end", end)

	x := expansion{e: e, active: map[string]bool{path: true}}
	var out []string
	for _, line := range lines[start:end] {
		out = append(out, x.expand(line, path, 0)...)
	}
	return strings.Join(out, "\n") + "\n"
}

// expansion holds the cycle guard for one Extract call: the set of files on
// the active \input recursion path.
type expansion struct {
	e      *Extractor
	active map[string]bool
}

// expand returns line, or, when it holds an \input directive that can be
// resolved, a marker comment followed by the expanded target file.
func (x *expansion) expand(line, current string, depth int) []string {
	if depth > x.e.maxDepth {
		return []string{line}
	}
	m := inputPattern.FindStringSubmatch(line)
	if m == nil {
		return []string{line}
	}
	arg := m[1]

	target, ok := x.e.res.inputFile(arg, current)
	if !ok {
		x.e.logger.Debug("input not resolved",
			"component", "texsplit", "operation", "expand", "input", arg, "from", current)
		return []string{line}
	}
	if x.active[target] {
		x.e.logger.Debug("input cycle skipped",
			"component", "texsplit", "operation", "expand", "input", arg, "from", current)
		return []string{line}
	}

	lines, err := readLines(target)
	if err != nil {
		return []string{line}
	}

	rel, ok := x.e.res.relative(target)
	if !ok {
		rel = arg
	}

	x.active[target] = true
	out := []string{fmt.Sprintf(`%% Expanded from: \input{%s}`, rel)}
	for _, l := range lines {
		out = append(out, x.expand(l, target, depth+1)...)
	}
	delete(x.active, target)
	return out
}

func placeholder(rec Record, msg string) string {
	return fmt.Sprintf("%% %s: %s\n%% %s\n", rec.Level, rec.Title, msg)
}
