package analysis

import (
	"testing"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

func TestParseResults_AllAbsent(t *testing.T) {
	results := ParseResults(entities.RawAnalysis{})
	if results.Summary.Text != entities.NoSummaryText {
		t.Fatalf("unexpected summary %q", results.Summary.Text)
	}
	if results.NextTasks == nil || results.Email == nil || results.Calendar == nil || results.Blockers == nil {
		t.Fatal("category sequences must be non-nil")
	}
	if len(results.NextTasks)+len(results.Email)+len(results.Calendar)+len(results.Blockers) != 0 {
		t.Fatalf("expected empty categories, got %+v", results)
	}
}

// A malformed category never prevents the others from parsing.
func TestParseResults_CategoryIsolation(t *testing.T) {
	raw := entities.RawAnalysis{
		Summary:   "All good",
		NextTasks: []any{map[string]any{"task": "Do it"}},
		Calendar:  "{{{not json",
	}
	results := ParseResults(raw)
	if results.Summary.Text != "All good" {
		t.Fatalf("unexpected summary %q", results.Summary.Text)
	}
	if len(results.NextTasks) != 1 {
		t.Fatalf("unexpected tasks %v", results.NextTasks)
	}
}

func TestParseRawBlob_ObjectForm(t *testing.T) {
	blob := []byte(`{"summary": "S", "nextTasks": ["a"], "blockers": []}`)
	raw, ok := ParseRawBlob(blob)
	if !ok {
		t.Fatal("expected blob to decode")
	}
	if raw.Summary != "S" {
		t.Fatalf("unexpected summary %v", raw.Summary)
	}
	if raw.NextTasks == nil {
		t.Fatal("expected nextTasks to be present")
	}
}

func TestParseRawBlob_FieldAliases(t *testing.T) {
	blob := []byte(`{"next_tasks": ["a"], "emails": ["b"], "calendar_events": ["c"]}`)
	raw, ok := ParseRawBlob(blob)
	if !ok {
		t.Fatal("expected blob to decode")
	}
	if raw.NextTasks == nil || raw.Email == nil || raw.Calendar == nil {
		t.Fatalf("aliases not resolved: %+v", raw)
	}
}

// Historical rows stored the whole payload as a JSON-encoded string holding
// fenced JSON; that goes through the recovery engine twice.
func TestParseRawBlob_StringForm(t *testing.T) {
	blob := []byte(`"` + "```json\\n{\\\"summary\\\": \\\"frozen\\\"}\\n```" + `"`)
	raw, ok := ParseRawBlob(blob)
	if !ok {
		t.Fatal("expected string blob to decode")
	}
	if raw.Summary != "frozen" {
		t.Fatalf("unexpected summary %v", raw.Summary)
	}
}

func TestParseRawBlob_Invalid(t *testing.T) {
	for _, blob := range [][]byte{nil, {}, []byte("not json"), []byte(`"just a sentence"`), []byte(`[1,2]`)} {
		if _, ok := ParseRawBlob(blob); ok {
			t.Fatalf("expected %q to fail", blob)
		}
	}
}
