package texsplit

import (
	"encoding/json"
	"testing"
)

func TestLevelRank(t *testing.T) {
	tests := []struct {
		name     string
		expected int
	}{
		{"chapter", 1},
		{"section", 2},
		{"subsection", 3},
		{"subsubsection", 99},
		{"part", 99},
		{"", 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLevel(tt.name).Rank(); got != tt.expected {
				t.Errorf("ParseLevel(%q).Rank() = %d, want %d", tt.name, got, tt.expected)
			}
		})
	}
}

func TestLevelKeepsUnknownName(t *testing.T) {
	l := ParseLevel("paragraph")
	if l.Kind != LevelOther {
		t.Errorf("expected LevelOther, got %v", l.Kind)
	}
	if l.String() != "paragraph" {
		t.Errorf("expected name to survive, got %q", l.String())
	}
}

func TestRecordJSON(t *testing.T) {
	t.Run("decodes collaborator output", func(t *testing.T) {
		data := `[
			{"number": "1", "level": "chapter", "page": "1", "file": "chapters/intro.tex", "line": 3, "label": "chap:intro", "title": "Introduction"},
			{"number": null, "level": "section", "page": "2", "file": null, "line": null, "label": null, "title": "Notes"}
		]`
		var records []Record
		if err := json.Unmarshal([]byte(data), &records); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("expected 2 records, got %d", len(records))
		}
		if records[0].Level != Chapter || records[0].Line != 3 || records[0].Label != "chap:intro" {
			t.Errorf("unexpected first record: %+v", records[0])
		}
		if records[1].Number != "" || records[1].File != "" || records[1].Line != 0 {
			t.Errorf("null fields should decode to zero values: %+v", records[1])
		}
		if records[1].HasPosition() {
			t.Error("record without file should have no position")
		}
	})

	t.Run("encodes level as name", func(t *testing.T) {
		b, err := json.Marshal(Record{Level: ParseLevel("part"), Title: "Part I"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var raw map[string]any
		json.Unmarshal(b, &raw)
		if raw["level"] != "part" {
			t.Errorf("level = %v, want %q", raw["level"], "part")
		}
	})
}

func TestRecordLocation(t *testing.T) {
	if got := (Record{File: "a.tex", Line: 4}).Location(); got != "a.tex:4" {
		t.Errorf("Location() = %q", got)
	}
	if got := (Record{}).Location(); got != "?:?" {
		t.Errorf("Location() = %q", got)
	}
}

func TestFilterSubsections(t *testing.T) {
	records := []Record{
		{Level: Chapter, Title: "One"},
		{Level: Section, Title: "One.A"},
		{Level: Subsection, Title: "One.A.i"},
		{Level: ParseLevel("subsubsection"), Title: "deep"},
	}

	t.Run("drops only subsections", func(t *testing.T) {
		got := FilterSubsections(records, false)
		if len(got) != 3 {
			t.Fatalf("expected 3 records, got %d", len(got))
		}
		for _, r := range got {
			if r.Level.Kind == LevelSubsection {
				t.Errorf("subsection %q should have been dropped", r.Title)
			}
		}
	})

	t.Run("include keeps all", func(t *testing.T) {
		if got := FilterSubsections(records, true); len(got) != 4 {
			t.Errorf("expected 4 records, got %d", len(got))
		}
	})
}
