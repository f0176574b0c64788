package texsplit

import (
	"fmt"
)

// Severity grades a validation issue. The validator only emits warnings.
type Severity string

const SeverityWarning Severity = "warning"

// Issue describes a section whose nested content lives in a file other than
// the one holding the section command, so single-file extraction will miss it.
type Issue struct {
	Index        int      `json:"index"`
	Record       Record   `json:"record"`
	Severity     Severity `json:"severity"`
	Message      string   `json:"message"`
	AffectedFile string   `json:"affected_file"`
	AffectedLine int      `json:"affected_line,omitempty"`
	SourceFile   string   `json:"source_file"`
	SourceLine   int      `json:"source_line,omitempty"`
}

func (i Issue) String() string {
	return fmt.Sprintf("[%s] %s: %s", i.Record.Level, i.Record.Title, i.Message)
}

// Validate inspects records in document order and reports every nested
// record whose file differs from its enclosing section's file. It never
// fails and does not touch the filesystem.
func Validate(records []Record) []Issue {
	var issues []Issue
	for i, rec := range records {
		if rec.File == "" {
			continue
		}
		bounded := scopeEnd(records, i) < len(records)
		for _, k := range nested(records, i) {
			inner := records[k]
			if inner.File == "" || inner.File == rec.File {
				continue
			}
			issues = append(issues, Issue{
				Index:        i,
				Record:       rec,
				Severity:     SeverityWarning,
				Message:      issueMessage(rec, inner, bounded),
				AffectedFile: inner.File,
				AffectedLine: inner.Line,
				SourceFile:   rec.File,
				SourceLine:   rec.Line,
			})
		}
	}
	return issues
}

// ValidateRecords applies the same subsection filter as Split before
// validating, so the reported indices match the records Split processes.
func ValidateRecords(records []Record, includeSubsections bool) []Issue {
	return Validate(FilterSubsections(records, includeSubsections))
}

func issueMessage(rec, inner Record, bounded bool) string {
	if bounded {
		return fmt.Sprintf("Section '%s' has nested content in different file. "+
			"Content from '%s' (line %s) may not be included when extracting from '%s' (line %s). "+
			"Only the file containing the section command is extracted.",
			rec.Title, inner.File, lineOrUnknown(inner.Line), rec.File, lineOrUnknown(rec.Line))
	}
	return fmt.Sprintf("Section '%s' may have content in different file. "+
		"Content from '%s' (line %s) comes after this section but is in a different file than '%s'. "+
		"This content may not be included when extracting.",
		rec.Title, inner.File, lineOrUnknown(inner.Line), rec.File)
}

func lineOrUnknown(line int) string {
	if line <= 0 {
		return "?"
	}
	return fmt.Sprintf("%d", line)
}
