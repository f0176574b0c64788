package texmeta

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strconv"
	"strings"
)

// Position is a section command's source location.
type Position struct {
	File string
	Line int
}

var secidLinePattern = regexp.MustCompile(`^(\d+)\|([^|]+)\|(\d+)\s*$`)

// ParseSecID reads a .secid file of "secid|file|line" lines. A missing file
// yields an empty map; malformed lines are skipped.
func ParseSecID(path string) (map[int]Position, error) {
	positions := make(map[int]Position)

	text, err := readText(path)
	if errors.Is(err, fs.ErrNotExist) {
		return positions, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read secid file: %w", err)
	}

	for _, line := range strings.Split(text, "\n") {
		m := secidLinePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		id, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		lineNo, err := strconv.Atoi(m[3])
		if err != nil {
			continue
		}
		positions[id] = Position{File: m[2], Line: lineNo}
	}
	return positions, nil
}
