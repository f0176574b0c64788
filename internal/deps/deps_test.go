package deps

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
	return root
}

func newTestCollector(root string, cfg CollectorConfig) *Collector {
	cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewCollector(root, cfg)
}

func TestCollect(t *testing.T) {
	root := writeProject(t, map[string]string{
		"main.tex": `\documentclass[11pt]{book}
\usepackage[utf8]{inputenc}
\usepackage{amsmath, local}
\begin{document}
\include{chapters/intro}
\input chapters/method
\bibliography{refs}
\end{document}
`,
		"local.sty":            "",
		"refs.bib":             "",
		"chapters/intro.tex":   "\\input{chapters/figures}\n",
		"chapters/method.tex":  "Method.\n",
		"chapters/figures.tex": "Figures.\n",
	})

	got, err := newTestCollector(root, CollectorConfig{}).Collect("main.tex")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Dependency{
		{Source: "main.tex", Target: "book.cls", Kind: KindClass, Line: 1},
		{Source: "main.tex", Target: "inputenc.sty", Kind: KindPackage, Line: 2},
		{Source: "main.tex", Target: "amsmath.sty", Kind: KindPackage, Line: 3},
		{Source: "main.tex", Target: "local.sty", Kind: KindPackage, Line: 3, Exists: true},
		{Source: "main.tex", Target: "chapters/intro.tex", Kind: KindInclude, Line: 5, Exists: true},
		{Source: "chapters/intro.tex", Target: "chapters/figures.tex", Kind: KindInput, Line: 1, Exists: true},
		{Source: "main.tex", Target: "chapters/method.tex", Kind: KindInput, Line: 6, Exists: true},
		{Source: "main.tex", Target: "refs.bib", Kind: KindBibliography, Line: 7, Exists: true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Collect mismatch\n got: %+v\nwant: %+v", got, want)
	}
}

func TestCollectSkipsComments(t *testing.T) {
	root := writeProject(t, map[string]string{
		"main.tex":  "% \\input{hidden}\nText 50\\% done \\input{shown} % \\input{trailing}\n",
		"shown.tex": "",
	})

	got, err := newTestCollector(root, CollectorConfig{}).Collect("main.tex")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Target != "shown.tex" || got[0].Line != 2 {
		t.Errorf("expected only shown.tex on line 2, got %+v", got)
	}
}

func TestCollectCycles(t *testing.T) {
	root := writeProject(t, map[string]string{
		"main.tex": "\\input{a}\n",
		"a.tex":    "\\input{b}\n",
		"b.tex":    "\\input{a}\n\\input{main}\n",
	})

	got, err := newTestCollector(root, CollectorConfig{}).Collect("main.tex")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 dependencies, got %d: %+v", len(got), got)
	}
}

func TestCollectDepthCap(t *testing.T) {
	root := writeProject(t, map[string]string{
		"main.tex": "\\input{l1}\n",
		"l1.tex":   "\\input{l2}\n",
		"l2.tex":   "\\input{l3}\n",
		"l3.tex":   "",
	})

	got, err := newTestCollector(root, CollectorConfig{MaxDepth: 1}).Collect("main.tex")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// main (0) and l1 (1) are scanned, l2 (2) is not.
	if len(got) != 2 {
		t.Errorf("expected 2 dependencies, got %+v", got)
	}
}

func TestCollectMissing(t *testing.T) {
	root := writeProject(t, map[string]string{
		"main.tex": "\\input{absent}\n",
	})

	got, err := newTestCollector(root, CollectorConfig{}).Collect("main.tex")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Exists {
		t.Errorf("expected one missing dependency, got %+v", got)
	}

	if _, err := newTestCollector(root, CollectorConfig{}).Collect("nope.tex"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist for missing main file, got %v", err)
	}
}

func TestCollectCustomExtension(t *testing.T) {
	root := writeProject(t, map[string]string{
		"main.ltx": "\\input{part}\n",
		"part.ltx": "\\input{leaf}\n",
		"leaf.ltx": "",
	})

	got, err := newTestCollector(root, CollectorConfig{Extension: ".ltx"}).Collect("main.ltx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[1].Target != "leaf.ltx" {
		t.Errorf("unexpected dependencies: %+v", got)
	}
}

func TestTreeAndFiles(t *testing.T) {
	root := writeProject(t, map[string]string{
		"main.tex": "\\input{a}\n\\input{b}\n\\usepackage{missing}\n",
		"a.tex":    "\\input{c}\n",
		"b.tex":    "",
		"c.tex":    "",
	})
	c := newTestCollector(root, CollectorConfig{})

	tree, err := c.Tree("main.tex")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree["main.tex"]) != 3 || len(tree["a.tex"]) != 1 {
		t.Errorf("unexpected tree: %+v", tree)
	}
	if _, ok := tree["b.tex"]; ok {
		t.Error("files without dependencies should not appear as sources")
	}

	files, err := c.Files("main.tex")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"a.tex", "b.tex", "c.tex", "main.tex"}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("Files = %v, want %v", files, want)
	}
}

func TestStripComment(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"% all comment", ""},
		{`50\% done`, `50\% done`},
		{`text % note`, "text "},
		{`line\\% comment`, `line\\`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := stripComment(tt.in); got != tt.want {
				t.Errorf("stripComment(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
