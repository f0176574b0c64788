// Package texmeta reads the auxiliary files of a LaTeX build (.toc, .aux and
// the .secid position file) and turns them into section records.
package texmeta

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/itsmostafa/texsplit/internal/texsplit"
)

var (
	numberlinePattern = regexp.MustCompile(`(?s)^\\numberline\s*\{([^}]+)\}(.*)$`)
	secidPattern      = regexp.MustCompile(`\[secid=(\d+)\]`)
)

// Entry is one \contentsline of a .toc file.
type Entry struct {
	Level  string
	Number string // "" when unnumbered
	Title  string
	Page   string
	Anchor string // hyperref destination, e.g. "chapter.1"; "" without hyperref
	SecID  *int   // nil when the entry carries no [secid=N] marker
}

// ParseTOC reads a .toc file and returns its entries in document order.
func ParseTOC(path string) ([]Entry, error) {
	text, err := readText(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read toc file: %w", err)
	}

	var entries []Entry
	for _, line := range strings.Split(text, "\n") {
		level, body, page, anchor, ok := parseContentsLine(line)
		if !ok {
			continue
		}
		entries = append(entries, newEntry(level, body, page, anchor))
	}
	return entries, nil
}

func newEntry(level, body, page, anchor string) Entry {
	e := Entry{
		Level:  strings.TrimSpace(level),
		Page:   strings.TrimSpace(page),
		Anchor: strings.TrimSpace(anchor),
	}
	body = strings.TrimSpace(body)

	if m := secidPattern.FindStringSubmatch(body); m != nil {
		if id, err := strconv.Atoi(m[1]); err == nil {
			e.SecID = &id
		}
		body = strings.TrimSpace(secidPattern.ReplaceAllString(body, ""))
	}

	e.Title = body
	if m := numberlinePattern.FindStringSubmatch(body); m != nil {
		e.Number = strings.TrimSpace(m[1])
		e.Title = m[2]
	}
	e.Title = strings.TrimSpace(e.Title)
	return e
}

// parseContentsLine splits "\contentsline {level}{body}{page}{anchor}" into
// its brace-balanced arguments. The anchor argument is optional.
func parseContentsLine(line string) (level, body, page, anchor string, ok bool) {
	if !strings.HasPrefix(strings.TrimSpace(line), `\contentsline`) {
		return "", "", "", "", false
	}

	args := make([]string, 0, 4)
	pos := strings.Index(line, "{")
	for pos >= 0 && len(args) < 4 {
		end := FindBraceEnd(line, pos+1)
		if end < 0 {
			break
		}
		args = append(args, line[pos+1:end])
		pos = nextArg(line, end+1, len(args) < 3)
	}
	if len(args) < 3 {
		return "", "", "", "", false
	}
	if len(args) == 4 {
		anchor = args[3]
	}
	return args[0], args[1], args[2], anchor, true
}

// nextArg returns the index of the next opening brace at or after from. The
// first three arguments may be separated by anything; an optional argument
// must follow immediately, apart from whitespace.
func nextArg(line string, from int, required bool) int {
	if from >= len(line) {
		return -1
	}
	if required {
		i := strings.Index(line[from:], "{")
		if i < 0 {
			return -1
		}
		return from + i
	}
	rest := strings.TrimLeft(line[from:], " \t")
	if !strings.HasPrefix(rest, "{") {
		return -1
	}
	return len(line) - len(rest)
}

// FindBraceEnd returns the index of the '}' closing the group whose content
// starts at start, honouring nested braces, or -1 when unbalanced.
func FindBraceEnd(text string, start int) int {
	depth := 1
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// Records converts entries to section records without positions.
func Records(entries []Entry) []texsplit.Record {
	out := make([]texsplit.Record, len(entries))
	for i, e := range entries {
		out[i] = texsplit.Record{
			Number: e.Number,
			Level:  texsplit.ParseLevel(e.Level),
			Title:  e.Title,
			Page:   e.Page,
		}
	}
	return out
}

// readText reads an auxiliary file, replacing invalid UTF-8 and normalising
// line endings to \n.
func readText(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	text, _, err := transform.Bytes(unicode.UTF8.NewDecoder(), raw)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(string(text), "\r\n", "\n"), nil
}
