package texmeta

import (
	"fmt"
	"strings"
)

const newlabelCmd = `\newlabel`

// ParseAuxLabels reads \newlabel lines from an .aux file and maps each
// hyperref anchor (e.g. "chapter.1") to the label name given by the author
// (e.g. "chap:intro"). Labels without an anchor are skipped.
func ParseAuxLabels(path string) (map[string]string, error) {
	text, err := readText(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read aux file: %w", err)
	}

	labels := make(map[string]string)
	for _, line := range strings.Split(text, "\n") {
		name, anchor, ok := parseNewlabel(line)
		if ok {
			labels[anchor] = name
		}
	}
	return labels, nil
}

// parseNewlabel handles \newlabel{name}{{num}{page}{title}{anchor}{}}.
func parseNewlabel(line string) (name, anchor string, ok bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, newlabelCmd+"{") {
		return "", "", false
	}

	start := len(newlabelCmd) + 1
	end := FindBraceEnd(line, start)
	if end < 0 {
		return "", "", false
	}
	name = line[start:end]

	if end+1 >= len(line) || line[end+1] != '{' {
		return "", "", false
	}
	outerEnd := FindBraceEnd(line, end+2)
	if outerEnd < 0 {
		return "", "", false
	}

	groups := braceGroups(line[end+2 : outerEnd])
	if len(groups) < 4 || strings.TrimSpace(groups[3]) == "" {
		return "", "", false
	}
	return name, strings.TrimSpace(groups[3]), true
}

// braceGroups returns the contents of consecutive top-level {...} groups.
func braceGroups(s string) []string {
	var groups []string
	for i := 0; i < len(s); i++ {
		if s[i] != '{' {
			continue
		}
		end := FindBraceEnd(s, i+1)
		if end < 0 {
			break
		}
		groups = append(groups, s[i+1:end])
		i = end
	}
	return groups
}
