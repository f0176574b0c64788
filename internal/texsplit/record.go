// Package texsplit splits a multi-file LaTeX project into one file per
// chapter or section, using section records recovered from the build's
// auxiliary files.
//
// Records arrive as a flat list in document order. The package delimits each
// section's line range in its source file, inlines \input directives found in
// that range, and warns when a section's nested content lives in a file other
// than the one holding the section command.
package texsplit

import (
	"fmt"
)

// LevelKind identifies the sectioning levels that carry hierarchy meaning.
type LevelKind int

const (
	// LevelOther covers every level name without hierarchy meaning
	// (part, paragraph, figure, ...). It ranks below subsection.
	LevelOther LevelKind = iota
	LevelChapter
	LevelSection
	LevelSubsection
)

// Rank values, lower is more significant.
const (
	rankChapter    = 1
	rankSection    = 2
	rankSubsection = 3
	rankOther      = 99
)

// Level is a sectioning level. Unrecognised names keep their original
// spelling in Name so they survive a round trip.
type Level struct {
	Kind LevelKind
	Name string
}

var (
	Chapter    = Level{Kind: LevelChapter, Name: "chapter"}
	Section    = Level{Kind: LevelSection, Name: "section"}
	Subsection = Level{Kind: LevelSubsection, Name: "subsection"}
)

// ParseLevel maps a level name as it appears in a .toc file to a Level.
func ParseLevel(name string) Level {
	switch name {
	case "chapter":
		return Chapter
	case "section":
		return Section
	case "subsection":
		return Subsection
	default:
		return Level{Kind: LevelOther, Name: name}
	}
}

// Rank returns the hierarchy rank: chapter 1, section 2, subsection 3,
// anything else 99.
func (l Level) Rank() int {
	switch l.Kind {
	case LevelChapter:
		return rankChapter
	case LevelSection:
		return rankSection
	case LevelSubsection:
		return rankSubsection
	default:
		return rankOther
	}
}

func (l Level) String() string {
	return l.Name
}

// MarshalText encodes the level as its plain name.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.Name), nil
}

// UnmarshalText decodes a plain level name.
func (l *Level) UnmarshalText(b []byte) error {
	*l = ParseLevel(string(b))
	return nil
}

// Record is one table-of-contents entry enriched with its source position.
// Zero values act as the "unknown" sentinel: an empty Number is unnumbered,
// an empty File or a zero Line means the position is unknown.
type Record struct {
	Number string `json:"number"`
	Level  Level  `json:"level"`
	Title  string `json:"title"`
	Page   string `json:"page"`
	File   string `json:"file"`
	Line   int    `json:"line"`
	Label  string `json:"label"`
}

// HasPosition reports whether the record points at a source location.
func (r Record) HasPosition() bool {
	return r.File != "" && r.Line > 0
}

// Location renders file:line, using "?" for unknown parts.
func (r Record) Location() string {
	file, line := "?", "?"
	if r.File != "" {
		file = r.File
	}
	if r.Line > 0 {
		line = fmt.Sprintf("%d", r.Line)
	}
	return file + ":" + line
}

// FilterSubsections drops subsection records unless include is set. Only the
// subsection level is filtered.
func FilterSubsections(records []Record, include bool) []Record {
	if include {
		return records
	}
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Level.Kind == LevelSubsection {
			continue
		}
		out = append(out, r)
	}
	return out
}
