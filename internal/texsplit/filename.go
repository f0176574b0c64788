package texsplit

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const invalidFilenameChars = `<>:"/\|?*`

// SanitizeFilename turns a section title into a file name stem: spaces and
// characters invalid in file names become underscores, runs of underscores
// collapse, and leading or trailing underscores are trimmed. The title is
// NFC-normalised first so composed and decomposed spellings agree.
func SanitizeFilename(title string) string {
	name := norm.NFC.String(title)
	name = strings.Map(func(r rune) rune {
		if r == ' ' || strings.ContainsRune(invalidFilenameChars, r) {
			return '_'
		}
		return r
	}, name)
	for strings.Contains(name, "__") {
		name = strings.ReplaceAll(name, "__", "_")
	}
	return strings.Trim(name, "_")
}

// filenameAllocator hands out collision-free stems within one Split call.
type filenameAllocator struct {
	used map[string]bool
}

func newFilenameAllocator() *filenameAllocator {
	return &filenameAllocator{used: make(map[string]bool)}
}

// allocate returns a unique stem for rec. The first use of a stem is
// returned unchanged; later uses get _1, _2, ... appended.
func (a *filenameAllocator) allocate(rec Record) string {
	base := SanitizeFilename(rec.Title)
	if base == "" {
		base = fallbackStem(rec)
	}
	name := base
	for n := 1; a.used[name]; n++ {
		name = fmt.Sprintf("%s_%d", base, n)
	}
	a.used[name] = true
	return name
}

func fallbackStem(rec Record) string {
	number := rec.Number
	if number == "" {
		number = "unnumbered"
	}
	level := rec.Level.Name
	if level == "" {
		level = "section"
	}
	if stem := SanitizeFilename(level + "_" + number); stem != "" {
		return stem
	}
	return "section"
}
