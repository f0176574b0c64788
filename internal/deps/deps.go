// Package deps walks the include graph of a LaTeX project starting from its
// main file and reports every file, package, class and bibliography the
// build pulls in.
package deps

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Kind is the LaTeX command that introduced a dependency.
type Kind string

const (
	KindInput        Kind = "input"
	KindInclude      Kind = "include"
	KindPackage      Kind = "usepackage"
	KindClass        Kind = "documentclass"
	KindBibliography Kind = "bibliography"
)

// DefaultMaxDepth bounds the nesting of followed inclusions.
const DefaultMaxDepth = 50

const defaultExtension = ".tex"

// Dependency is one reference from a source file to another file.
type Dependency struct {
	Source string `json:"source"` // including file, relative to the root
	Target string `json:"target"` // referenced file, relative to the root
	Kind   Kind   `json:"kind"`
	Line   int    `json:"line"`
	Exists bool   `json:"exists"`
}

// Follows reports whether the collector descends into the target.
func (d Dependency) Follows() bool {
	return d.Kind == KindInput || d.Kind == KindInclude
}

type pattern struct {
	kind Kind
	re   *regexp.Regexp
}

var patterns = []pattern{
	{KindInput, regexp.MustCompile(`\\input(?:\s*\{([^}]+)\}|\s+([^\s{}\\%]+))`)},
	{KindInclude, regexp.MustCompile(`\\include\s*\{([^}]+)\}`)},
	{KindPackage, regexp.MustCompile(`\\usepackage\s*(?:\[[^\]]*\])?\s*\{([^}]+)\}`)},
	{KindClass, regexp.MustCompile(`\\documentclass\s*(?:\[[^\]]*\])?\s*\{([^}]+)\}`)},
	{KindBibliography, regexp.MustCompile(`\\(?:bibliography|addbibresource)\s*(?:\[[^\]]*\])?\s*\{([^}]+)\}`)},
}

// Collector walks a project's include graph.
type Collector struct {
	root     string
	ext      string
	maxDepth int
	logger   *slog.Logger
}

// CollectorConfig configures a Collector. Zero fields take the defaults.
type CollectorConfig struct {
	// Extension is appended to extensionless \input and \include targets.
	Extension string

	// MaxDepth caps how deep the walk follows nested inclusions.
	MaxDepth int

	Logger *slog.Logger
}

// NewCollector returns a collector for the project rooted at root.
func NewCollector(root string, cfg CollectorConfig) *Collector {
	if cfg.Extension == "" {
		cfg.Extension = defaultExtension
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Collector{
		root:     root,
		ext:      cfg.Extension,
		maxDepth: cfg.MaxDepth,
		logger:   cfg.Logger.With("component", "deps"),
	}
}

// Collect returns every dependency reachable from main, in the order the walk
// meets them. Each file is scanned once, so cyclic inclusions terminate.
func (c *Collector) Collect(main string) ([]Dependency, error) {
	main = normalize(main)
	if !isFile(filepath.Join(c.root, filepath.FromSlash(main))) {
		return nil, fmt.Errorf("main file %s: %w", main, os.ErrNotExist)
	}

	w := &walk{c: c, visited: make(map[string]bool)}
	w.visit(main, 0)
	return w.deps, nil
}

// Tree groups the dependencies of main by including file.
func (c *Collector) Tree(main string) (map[string][]Dependency, error) {
	all, err := c.Collect(main)
	if err != nil {
		return nil, err
	}
	return Group(all), nil
}

// Group indexes dependencies by including file, keeping walk order within
// each file.
func Group(all []Dependency) map[string][]Dependency {
	tree := make(map[string][]Dependency)
	for _, d := range all {
		tree[d.Source] = append(tree[d.Source], d)
	}
	return tree
}

// Files returns main and every existing file it pulls in, sorted.
func (c *Collector) Files(main string) ([]string, error) {
	all, err := c.Collect(main)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{normalize(main): true}
	for _, d := range all {
		if d.Exists {
			seen[d.Target] = true
		}
	}
	files := make([]string, 0, len(seen))
	for f := range seen {
		files = append(files, f)
	}
	sort.Strings(files)
	return files, nil
}

type walk struct {
	c       *Collector
	visited map[string]bool
	deps    []Dependency
}

func (w *walk) visit(file string, depth int) {
	if depth > w.c.maxDepth || w.visited[file] {
		return
	}
	w.visited[file] = true

	lines, err := readLines(filepath.Join(w.c.root, filepath.FromSlash(file)))
	if err != nil {
		w.c.logger.Debug("skipping unreadable file", "operation", "collect", "file", file, "error", err)
		return
	}

	for n, line := range lines {
		for _, d := range w.scan(file, n+1, stripComment(line)) {
			w.deps = append(w.deps, d)
			if d.Exists && d.Follows() && path.Ext(d.Target) == w.c.ext {
				w.visit(d.Target, depth+1)
			}
		}
	}
}

func (w *walk) scan(file string, lineNo int, line string) []Dependency {
	var found []Dependency
	for _, p := range patterns {
		for _, m := range p.re.FindAllStringSubmatch(line, -1) {
			arg := m[1]
			if arg == "" && len(m) > 2 {
				arg = m[2]
			}
			for _, name := range splitArg(p.kind, arg) {
				target := w.c.target(p.kind, name)
				found = append(found, Dependency{
					Source: file,
					Target: target,
					Kind:   p.kind,
					Line:   lineNo,
					Exists: isFile(filepath.Join(w.c.root, filepath.FromSlash(target))),
				})
			}
		}
	}
	return found
}

// target maps a command argument to a root-relative file name. LaTeX resolves
// \input and \include against the main document's directory.
func (c *Collector) target(kind Kind, name string) string {
	switch kind {
	case KindPackage:
		name = withDefaultExt(name, ".sty")
	case KindClass:
		name = withDefaultExt(name, ".cls")
	case KindBibliography:
		name = withDefaultExt(name, ".bib")
	default:
		name = withDefaultExt(name, c.ext)
	}
	if filepath.IsAbs(name) {
		if rel, err := filepath.Rel(c.root, name); err == nil && !strings.HasPrefix(rel, "..") {
			return normalize(rel)
		}
		return filepath.ToSlash(name)
	}
	return normalize(name)
}

// splitArg splits comma-separated package and bibliography lists.
func splitArg(kind Kind, arg string) []string {
	if kind != KindPackage && kind != KindBibliography {
		if s := strings.TrimSpace(arg); s != "" {
			return []string{s}
		}
		return nil
	}
	var names []string
	for _, part := range strings.Split(arg, ",") {
		if s := strings.TrimSpace(part); s != "" {
			names = append(names, s)
		}
	}
	return names
}

func withDefaultExt(name, ext string) string {
	if path.Ext(name) == "" {
		return name + ext
	}
	return name
}

func normalize(p string) string {
	return path.Clean(strings.ReplaceAll(p, `\`, "/"))
}

// stripComment drops everything from the first unescaped %.
func stripComment(line string) string {
	for i := 0; i < len(line); i++ {
		if line[i] != '%' {
			continue
		}
		backslashes := 0
		for j := i - 1; j >= 0 && line[j] == '\\'; j-- {
			backslashes++
		}
		if backslashes%2 == 0 {
			return line[:i]
		}
	}
	return line
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

func readLines(p string) ([]string, error) {
	raw, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	text, _, err := transform.Bytes(unicode.UTF8.NewDecoder(), raw)
	if err != nil {
		return nil, err
	}
	s := strings.ReplaceAll(string(text), "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n"), nil
}
