package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/itsmostafa/texsplit/internal/deps"
	"github.com/itsmostafa/texsplit/internal/texsplit"
)

func sampleRecords() []texsplit.Record {
	return []texsplit.Record{
		{Number: "1", Level: texsplit.Chapter, Title: "Introduction", Page: "1", File: "intro.tex", Line: 3, Label: "chap:intro"},
		{Number: "1.1", Level: texsplit.Section, Title: "Motivation", Page: "2", File: "motivation.tex", Line: 1},
		{Level: texsplit.Chapter, Title: "Appendix", Page: "9"},
	}
}

func assertContains(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, s := range want {
		if !strings.Contains(out, s) {
			t.Errorf("output missing %q:\n%s", s, out)
		}
	}
}

func TestFormatHeader(t *testing.T) {
	var buf bytes.Buffer
	FormatHeader(&buf, "thesis", "out", 12)
	assertContains(t, buf.String(), "Root:", "thesis", "Output:", "out", "Records:", "12")
}

func TestFormatIssues(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		var buf bytes.Buffer
		FormatIssues(&buf, nil)
		assertContains(t, buf.String(), "structure is consistent")
	})

	t.Run("warnings", func(t *testing.T) {
		records := sampleRecords()
		issues := []texsplit.Issue{{
			Index:        0,
			Record:       records[0],
			Severity:     texsplit.SeverityWarning,
			Message:      "nested content lives in motivation.tex",
			AffectedFile: "motivation.tex",
			AffectedLine: 0,
		}}
		var buf bytes.Buffer
		FormatIssues(&buf, issues)
		assertContains(t, buf.String(), "Found 1 structural issue(s)", "Introduction", "nested content lives in motivation.tex", "motivation.tex:?")
	})
}

func TestFormatSummary(t *testing.T) {
	result := &texsplit.Result{
		Files: map[string]string{"Introduction": "out/Introduction.tex"},
		Outputs: []texsplit.Output{
			{Index: 0, Filename: "Introduction.tex", Path: "out/Introduction.tex"},
			{Index: 1, Filename: "Introduction_1.tex", Path: "out/Introduction_1.tex"},
		},
	}

	var buf bytes.Buffer
	FormatSummary(&buf, result, "out")
	assertContains(t, buf.String(), "Split Complete", "Files:", "2", "Titles:", "1", "OK", "out")

	result.Issues = []texsplit.Issue{{}}
	buf.Reset()
	FormatSummary(&buf, result, "out")
	assertContains(t, buf.String(), "1 WARNING(S)")
}

func TestFormatOutputsAndError(t *testing.T) {
	var buf bytes.Buffer
	FormatOutputs(&buf, []texsplit.Output{{Filename: "Intro.tex", Record: texsplit.Record{Title: "Intro"}}})
	FormatError(&buf, errors.New("boom"))
	assertContains(t, buf.String(), "Intro.tex", "error:", "boom")
}

func TestFormatRecords(t *testing.T) {
	var buf bytes.Buffer
	FormatRecords(&buf, sampleRecords())
	assertContains(t, buf.String(),
		"LEVEL", "TITLE", "SOURCE",
		"chapter", "Introduction", "intro.tex:3", "chap:intro",
		"1.1", "motivation.tex:1",
		"Appendix", "?:?",
	)
}

func TestFormatOutline(t *testing.T) {
	records := []texsplit.Record{
		{Number: "1", Level: texsplit.Chapter, Title: "Introduction", File: "intro.tex", Line: 3},
		{Number: "1.1", Level: texsplit.Section, Title: "Motivation", File: "motivation.tex", Line: 1},
		{Number: "2", Level: texsplit.Chapter, Title: "Method", File: "method.tex", Line: 1},
	}

	var buf bytes.Buffer
	FormatOutline(&buf, "thesis", texsplit.BuildOutline(records))
	out := buf.String()
	assertContains(t, out, "thesis", "1 Introduction", "1.1 Motivation", "2 Method", "(spans 2 files)")
	if strings.Count(out, "spans") != 1 {
		t.Errorf("only the introduction spans files:\n%s", out)
	}
}

func TestFormatDeps(t *testing.T) {
	graph := map[string][]deps.Dependency{
		"main.tex": {
			{Source: "main.tex", Target: "book.cls", Kind: deps.KindClass, Line: 1},
			{Source: "main.tex", Target: "a.tex", Kind: deps.KindInput, Line: 3, Exists: true},
			{Source: "main.tex", Target: "gone.tex", Kind: deps.KindInclude, Line: 4},
		},
		"a.tex": {
			{Source: "a.tex", Target: "main.tex", Kind: deps.KindInput, Line: 1, Exists: true},
		},
	}

	var buf bytes.Buffer
	FormatDeps(&buf, "main.tex", graph)
	out := buf.String()
	assertContains(t, out, "main.tex", "book.cls", "documentclass", "a.tex", "line 3", "gone.tex", "missing")
	if strings.Count(out, "main.tex") != 2 {
		t.Errorf("the cycle back to main.tex should be listed but not expanded:\n%s", out)
	}

	var all []deps.Dependency
	for _, ds := range graph {
		all = append(all, ds...)
	}
	buf.Reset()
	FormatDepsSummary(&buf, all)
	assertContains(t, buf.String(), "documentclass=1", "include=1", "input=2", "1 missing source file(s)")
}
