// Package report renders texsplit results for the terminal.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/itsmostafa/texsplit/internal/deps"
	"github.com/itsmostafa/texsplit/internal/texsplit"
)

var (
	// titleStyle for bold headers
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("160"))

	// dimStyle for muted metadata text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	// boxStyle for the summary box
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("160")).
			Padding(0, 1)

	// headerBoxStyle for the run header
	headerBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("160")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	headerCellStyle = cellStyle.
			Bold(true).
			Foreground(lipgloss.Color("160"))
)

// FormatHeader renders the split header with project paths and record count.
func FormatHeader(w io.Writer, root, outDir string, records int) {
	content := fmt.Sprintf("%s %s\n%s %s\n%s %d",
		dimStyle.Render("Root:"), titleStyle.Render(root),
		dimStyle.Render("Output:"), outDir,
		dimStyle.Render("Records:"), records,
	)
	fmt.Fprintln(w, headerBoxStyle.Render(content))
}

// FormatIssues renders validation warnings, one per line.
func FormatIssues(w io.Writer, issues []texsplit.Issue) {
	if len(issues) == 0 {
		fmt.Fprintln(w, successStyle.Render("✓")+" structure is consistent")
		return
	}
	fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf("Found %d structural issue(s):", len(issues))))
	for _, issue := range issues {
		fmt.Fprintf(w, "%s %s\n", warnStyle.Render("!"), issue.String())
		fmt.Fprintf(w, "  %s %s:%s\n", dimStyle.Render("nested at"),
			issue.AffectedFile, lineOrUnknown(issue.AffectedLine))
	}
}

// FormatSummary renders the split summary box.
func FormatSummary(w io.Writer, result *texsplit.Result, outDir string) {
	status := successStyle.Render("OK")
	if len(result.Issues) > 0 {
		status = warnStyle.Render(fmt.Sprintf("%d WARNING(S)", len(result.Issues)))
	}

	line1 := fmt.Sprintf("%s %d  %s %d  %s",
		dimStyle.Render("Files:"), len(result.Outputs),
		dimStyle.Render("Titles:"), len(result.Files),
		status,
	)
	line2 := fmt.Sprintf("%s %s", dimStyle.Render("Written to:"), outDir)

	content := titleStyle.Render("Split Complete") + "\n" + line1 + "\n" + line2
	fmt.Fprintln(w, boxStyle.Render(content))
}

// FormatOutputs lists written files in document order.
func FormatOutputs(w io.Writer, outputs []texsplit.Output) {
	for _, o := range outputs {
		fmt.Fprintf(w, "%s %s %s\n", successStyle.Render("✓"), o.Filename, dimStyle.Render(o.Record.Title))
	}
}

// FormatError renders a fatal error line.
func FormatError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", errorStyle.Render("error:"), err)
}

// FormatRecords renders records as a table.
func FormatRecords(w io.Writer, records []texsplit.Record) {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{strconv.Itoa(i), r.Level.String(), r.Number, r.Title, r.Page, r.Location(), r.Label}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers("#", "LEVEL", "NUMBER", "TITLE", "PAGE", "SOURCE", "LABEL").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCellStyle
			}
			return cellStyle
		})

	fmt.Fprintln(w, t.Render())
}

// FormatOutline renders the section hierarchy as a tree. Sections whose
// subtree spans several source files are flagged.
func FormatOutline(w io.Writer, title string, nodes []*texsplit.OutlineNode) {
	root := tree.Root(titleStyle.Render(title)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(dimStyle)
	for _, n := range nodes {
		root.Child(outlineTree(n))
	}
	fmt.Fprintln(w, root.String())
}

func outlineTree(n *texsplit.OutlineNode) any {
	label := n.Record.Title
	if n.Record.Number != "" {
		label = n.Record.Number + " " + label
	}
	label += " " + dimStyle.Render(n.Record.Location())
	if files := n.Files(); len(files) > 1 {
		label += " " + warnStyle.Render(fmt.Sprintf("(spans %d files)", len(files)))
	}

	if len(n.Children) == 0 {
		return label
	}
	t := tree.Root(label)
	for _, child := range n.Children {
		t.Child(outlineTree(child))
	}
	return t
}

// FormatDeps renders the include graph rooted at main. Files already shown
// higher up are not expanded again.
func FormatDeps(w io.Writer, main string, graph map[string][]deps.Dependency) {
	shown := map[string]bool{main: true}
	root := depsTree(titleStyle.Render(main), main, graph, shown).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(dimStyle)
	fmt.Fprintln(w, root.String())
}

func depsTree(label, file string, graph map[string][]deps.Dependency, shown map[string]bool) *tree.Tree {
	t := tree.Root(label)
	for _, d := range graph[file] {
		text := fmt.Sprintf("%s %s %s", d.Target, dimStyle.Render(string(d.Kind)), dimStyle.Render("line "+strconv.Itoa(d.Line)))
		if !d.Exists {
			text += " " + errorStyle.Render("missing")
		}

		if d.Follows() && !shown[d.Target] && len(graph[d.Target]) > 0 {
			shown[d.Target] = true
			t.Child(depsTree(text, d.Target, graph, shown))
			continue
		}
		t.Child(text)
	}
	return t
}

// FormatDepsSummary counts dependencies by kind.
func FormatDepsSummary(w io.Writer, all []deps.Dependency) {
	counts := make(map[deps.Kind]int)
	missing := 0
	for _, d := range all {
		counts[d.Kind]++
		if !d.Exists && d.Follows() {
			missing++
		}
	}

	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)

	line := dimStyle.Render("Dependencies:")
	for _, k := range kinds {
		line += fmt.Sprintf(" %s=%d", k, counts[deps.Kind(k)])
	}
	if missing > 0 {
		line += " " + errorStyle.Render(fmt.Sprintf("%d missing source file(s)", missing))
	}
	fmt.Fprintln(w, line)
}

func lineOrUnknown(line int) string {
	if line <= 0 {
		return "?"
	}
	return strconv.Itoa(line)
}
