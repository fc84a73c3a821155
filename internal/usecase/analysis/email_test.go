package analysis

import (
	"reflect"
	"testing"
)

func TestParseEmails_StructuredArray(t *testing.T) {
	in := []any{
		map[string]any{
			"subject":    "Meeting recap",
			"body":       "Hi team,\nhere is the recap.",
			"recipients": []any{"team@example.com"},
			"reason":     "follow-up",
		},
		map[string]any{"body": "   "},
	}
	items := ParseEmails(in)
	if len(items) != 1 {
		t.Fatalf("expected 1 draft, got %v", items)
	}
	e := items[0]
	if e.Subject != "Meeting recap" || e.Reason != "follow-up" {
		t.Fatalf("unexpected %+v", e)
	}
	if !reflect.DeepEqual(e.Recipients, []string{"team@example.com"}) {
		t.Fatalf("unexpected recipients %v", e.Recipients)
	}
}

func TestParseEmails_ContainerAliases(t *testing.T) {
	for _, key := range []string{"allEmails", "all_emails"} {
		in := map[string]any{key: []any{map[string]any{"body": "ping"}}}
		items := ParseEmails(in)
		if len(items) != 1 || items[0].Body != "ping" {
			t.Fatalf("container %q: unexpected %v", key, items)
		}
	}
}

// A bare string is one draft body. Bodies legitimately contain newlines and
// commas, so no line splitting happens here.
func TestParseEmails_BareStringIsOneDraft(t *testing.T) {
	body := "Hi An,\n\nThanks for joining today. Next steps: review, sign off."
	items := ParseEmails(body)
	if len(items) != 1 {
		t.Fatalf("expected one draft, got %v", items)
	}
	if items[0].Body != body {
		t.Fatalf("body changed: %q", items[0].Body)
	}
	if items[0].Recipients == nil {
		t.Fatal("recipients must be non-nil")
	}
}

func TestParseEmails_BodyAliases(t *testing.T) {
	for _, key := range []string{"body", "Body", "text", "content"} {
		items := ParseEmails([]any{map[string]any{key: "hello"}})
		if len(items) != 1 || items[0].Body != "hello" {
			t.Fatalf("alias %q: unexpected %v", key, items)
		}
	}
}

func TestFormatReferences(t *testing.T) {
	in := []any{
		map[string]any{"speaker": "An", "timestamp": "00:01:10", "text": "we agreed to ship"},
		map[string]any{"speaker": "Bao"},
		map[string]any{"text": "no speaker attached"},
		"already formatted",
		map[string]any{},
	}
	got := formatReferences(in)
	want := []string{
		"An (00:01:10) we agreed to ship",
		"Bao",
		"no speaker attached",
		"already formatted",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParseEmails_ReferencesRendered(t *testing.T) {
	in := []any{map[string]any{
		"body": "recap",
		"references": []any{
			map[string]any{"speaker": "Chi", "time": "00:02", "message": "noted"},
		},
	}}
	items := ParseEmails(in)
	if len(items) != 1 {
		t.Fatalf("expected 1 draft, got %v", items)
	}
	if !reflect.DeepEqual(items[0].References, []string{"Chi (00:02) noted"}) {
		t.Fatalf("unexpected references %v", items[0].References)
	}
}

func TestParseEmails_Empty(t *testing.T) {
	for _, in := range []any{nil, "", "  ", map[string]any{"unrelated": 1}} {
		if items := ParseEmails(in); len(items) != 0 {
			t.Fatalf("ParseEmails(%v) = %v, want empty", in, items)
		}
	}
}
