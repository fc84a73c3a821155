package analysis

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

func TestBuildResults_NilMeeting(t *testing.T) {
	results := BuildResults(nil, nil)
	if results.Summary.Text != entities.NoSummaryText {
		t.Fatalf("unexpected summary %q", results.Summary.Text)
	}
	if results.NextTasks == nil || len(results.NextTasks) != 0 {
		t.Fatalf("unexpected tasks %v", results.NextTasks)
	}
}

// The relational rows are the spine: output cardinality and identity always
// equal the row set, regardless of what the frozen blob claims.
func TestBuildResults_RowsAreTheSpine(t *testing.T) {
	rowA := entities.Task{ID: uuid.New(), Description: "Send the recap", Completed: true}
	rowB := entities.Task{ID: uuid.New(), Description: "Book the venue"}
	blob, _ := json.Marshal(map[string]any{
		"nextTasks": []any{
			map[string]any{"task": "Send the recap", "owner": "An", "rationale": "agreed in the call"},
			map[string]any{"task": "Book the venue", "owner": "Bao"},
			map[string]any{"task": "A third task the rows never had"},
		},
	})
	meeting := &entities.Meeting{
		ID:          uuid.New(),
		RawAnalysis: blob,
		Tasks:       []entities.Task{rowA, rowB},
	}

	results := BuildResults(meeting, nil)
	if len(results.NextTasks) != 2 {
		t.Fatalf("expected 2 tasks, got %v", results.NextTasks)
	}
	first := results.NextTasks[0]
	if first.ID != rowA.ID.String() {
		t.Fatalf("id must come from the row, got %q", first.ID)
	}
	if first.Owner != "An" || first.Rationale != "agreed in the call" {
		t.Fatalf("enrichment not merged: %+v", first)
	}
	if !first.Completed {
		t.Fatal("completed must come from the row")
	}
	if results.NextTasks[1].Owner != "Bao" {
		t.Fatalf("unexpected second task %+v", results.NextTasks[1])
	}
}

// Plain text rows pass through untouched; splitting or re-parsing must not
// change their text.
func TestBuildResults_PlainRowTextUnchanged(t *testing.T) {
	desc := "Review pricing, then update the deck"
	row := entities.Task{ID: uuid.New(), Description: desc}
	meeting := &entities.Meeting{ID: uuid.New(), Tasks: []entities.Task{row}}

	results := BuildResults(meeting, nil)
	if len(results.NextTasks) != 1 || results.NextTasks[0].Task != desc {
		t.Fatalf("plain row text changed: %v", results.NextTasks)
	}
}

// legacy rows can still hold a JSON fragment in the text column
func TestBuildResults_LegacyJSONFragmentRow(t *testing.T) {
	row := entities.Task{ID: uuid.New(), Description: `{"task": "Ship v2", "owner": "Chi", "priority": "high"}`}
	meeting := &entities.Meeting{ID: uuid.New(), Tasks: []entities.Task{row}}

	results := BuildResults(meeting, nil)
	if len(results.NextTasks) != 1 {
		t.Fatalf("expected 1 task, got %v", results.NextTasks)
	}
	item := results.NextTasks[0]
	if item.Task != "Ship v2" || item.Owner != "Chi" || item.Priority != "high" {
		t.Fatalf("fragment not recovered: %+v", item)
	}
	if item.ID != row.ID.String() {
		t.Fatalf("id must come from the row, got %q", item.ID)
	}
}

func TestBuildResults_SummaryPrecedence(t *testing.T) {
	blob, _ := json.Marshal(map[string]any{"summary": "from the blob"})
	meeting := &entities.Meeting{ID: uuid.New(), Summary: "stored column", RawAnalysis: blob}

	// Blob wins over the stored column.
	if got := BuildResults(meeting, nil).Summary.Text; got != "from the blob" {
		t.Fatalf("expected blob summary, got %q", got)
	}

	// In-memory overrides win over the blob.
	overrides := &entities.AnalysisResults{Summary: entities.SummaryData{Text: "fresh run"}}
	if got := BuildResults(meeting, overrides).Summary.Text; got != "fresh run" {
		t.Fatalf("expected override summary, got %q", got)
	}

	// A placeholder override does not count as set.
	overrides = &entities.AnalysisResults{Summary: entities.SummaryData{Text: entities.NoSummaryText}}
	if got := BuildResults(meeting, overrides).Summary.Text; got != "from the blob" {
		t.Fatalf("placeholder override must not win, got %q", got)
	}
}

func TestBuildResults_SummaryFallsBackToColumn(t *testing.T) {
	meeting := &entities.Meeting{ID: uuid.New(), Summary: "only the column"}
	if got := BuildResults(meeting, nil).Summary.Text; got != "only the column" {
		t.Fatalf("unexpected summary %q", got)
	}
}

func TestBuildResults_OverridesWinPerCategory(t *testing.T) {
	row := entities.Blocker{ID: uuid.New(), Description: "Vendor contract pending"}
	blob, _ := json.Marshal(map[string]any{
		"blockers": []any{map[string]any{"description": "Vendor contract pending", "severity": "low"}},
	})
	meeting := &entities.Meeting{ID: uuid.New(), RawAnalysis: blob, Blockers: []entities.Blocker{row}}

	overrides := &entities.AnalysisResults{
		Blockers: []entities.BlockerItem{{Description: "Vendor contract pending", Severity: "high"}},
	}
	results := BuildResults(meeting, overrides)
	if len(results.Blockers) != 1 || results.Blockers[0].Severity != "high" {
		t.Fatalf("override enrichment must win: %v", results.Blockers)
	}
}

func TestBuildResults_EmailRowStateWins(t *testing.T) {
	row := entities.EmailDraft{
		ID:      uuid.New(),
		Subject: "Recap",
		Body:    "short stored body",
		Status:  entities.EmailDraftStatusApproved,
	}
	blob, _ := json.Marshal(map[string]any{
		"email": []any{map[string]any{
			"subject":    "Recap",
			"body":       "the full generated body",
			"recipients": []any{"team@example.com"},
			"status":     "draft",
		}},
	})
	meeting := &entities.Meeting{ID: uuid.New(), RawAnalysis: blob, EmailDrafts: []entities.EmailDraft{row}}

	results := BuildResults(meeting, nil)
	if len(results.Email) != 1 {
		t.Fatalf("expected 1 draft, got %v", results.Email)
	}
	e := results.Email[0]
	if e.Status != entities.EmailDraftStatusApproved {
		t.Fatalf("status must come from the row, got %q", e.Status)
	}
	if e.Body != "the full generated body" {
		t.Fatalf("enrichment body must win, got %q", e.Body)
	}
	if !reflect.DeepEqual(e.Recipients, []string{"team@example.com"}) {
		t.Fatalf("unexpected recipients %v", e.Recipients)
	}
	if e.ID != row.ID.String() {
		t.Fatalf("id must come from the row, got %q", e.ID)
	}
}

func TestBuildResults_CalendarFragmentRows(t *testing.T) {
	row := entities.Event{
		ID:     uuid.New(),
		Title:  `{"title": "Standup", "start": "2026-09-02T09:00:00Z", "timezone": "UTC"}`,
		Status: entities.EventStatusSuggested,
	}
	meeting := &entities.Meeting{ID: uuid.New(), Events: []entities.Event{row}}

	results := BuildResults(meeting, nil)
	if len(results.Calendar) != 1 {
		t.Fatalf("expected 1 event, got %v", results.Calendar)
	}
	e := results.Calendar[0]
	if e.Title != "Standup" || e.StartTime != "2026-09-02T09:00:00Z" || e.Timezone != "UTC" {
		t.Fatalf("fragment not recovered: %+v", e)
	}
	if e.ID != row.ID.String() || e.Status != entities.EventStatusSuggested {
		t.Fatalf("row identity or state lost: %+v", e)
	}
	if e.Attendees == nil {
		t.Fatal("attendees must be non-nil")
	}
}

func TestBuildResults_CleanCalendarRowsNotReparsed(t *testing.T) {
	row := entities.Event{
		ID:          uuid.New(),
		Title:       "Planning, part two",
		Description: "quarterly planning continuation",
		Status:      entities.EventStatusApproved,
	}
	meeting := &entities.Meeting{ID: uuid.New(), Events: []entities.Event{row}}

	results := BuildResults(meeting, nil)
	if len(results.Calendar) != 1 {
		t.Fatalf("expected 1 event, got %v", results.Calendar)
	}
	e := results.Calendar[0]
	if e.Title != "Planning, part two" || e.Description != "quarterly planning continuation" {
		t.Fatalf("clean row changed: %+v", e)
	}
}

func TestBuildResults_BlockerRowStateWins(t *testing.T) {
	row := entities.Blocker{ID: uuid.New(), Description: "Access pending", Resolved: true}
	blob, _ := json.Marshal(map[string]any{
		"blockers": []any{map[string]any{"description": "Access pending", "resolved": false, "impact": "blocks QA"}},
	})
	meeting := &entities.Meeting{ID: uuid.New(), RawAnalysis: blob, Blockers: []entities.Blocker{row}}

	results := BuildResults(meeting, nil)
	if len(results.Blockers) != 1 {
		t.Fatalf("expected 1 blocker, got %v", results.Blockers)
	}
	b := results.Blockers[0]
	if !b.Resolved {
		t.Fatal("resolved must come from the row")
	}
	if b.Impact != "blocks QA" {
		t.Fatalf("enrichment not merged: %+v", b)
	}
}

func TestBuildResults_EmptyRowsYieldEmptyCategories(t *testing.T) {
	blob, _ := json.Marshal(map[string]any{
		"nextTasks": []any{map[string]any{"task": "phantom"}},
		"blockers":  []any{map[string]any{"description": "phantom"}},
	})
	meeting := &entities.Meeting{ID: uuid.New(), RawAnalysis: blob}

	results := BuildResults(meeting, nil)
	if len(results.NextTasks) != 0 || len(results.Blockers) != 0 {
		t.Fatalf("enrichment must never create entries: %+v", results)
	}
}
