package analysis

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestTryParseJSON_CleanInput(t *testing.T) {
	v, ok := TryParseJSON(`{"a": 1, "b": "two"}`)
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	m, isMap := v.(map[string]any)
	if !isMap {
		t.Fatalf("expected map, got %T", v)
	}
	if m["b"] != "two" {
		t.Fatalf("unexpected value %v", m["b"])
	}
}

func TestTryParseJSON_FencedWithProse(t *testing.T) {
	in := "Here is the analysis:\n```json\n{\"summary\": \"done\"}\n```\nLet me know."
	v, ok := TryParseJSON(in)
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	m := v.(map[string]any)
	if m["summary"] != "done" {
		t.Fatalf("unexpected summary %v", m["summary"])
	}
}

func TestTryParseJSON_TrailingCommas(t *testing.T) {
	cases := []string{
		`{"a": 1,}`,
		`[1, 2, 3,]`,
		`{"a": [1,], "b": {"c": 2,},}`,
	}
	for _, in := range cases {
		if _, ok := TryParseJSON(in); !ok {
			t.Fatalf("expected %q to parse", in)
		}
	}
}

func TestTryParseJSON_TruncatedStructure(t *testing.T) {
	v, ok := TryParseJSON(`{"items": ["a", "b"`)
	if !ok {
		t.Fatal("expected bracket repair to recover the value")
	}
	m := v.(map[string]any)
	items, isSlice := m["items"].([]any)
	if !isSlice || len(items) != 2 {
		t.Fatalf("unexpected items %v", m["items"])
	}
}

func TestTryParseJSON_TruncatedAfterComma(t *testing.T) {
	v, ok := TryParseJSON(`{"ids": [1,`)
	if !ok {
		t.Fatal("expected repair to drop the dangling comma and close brackets")
	}
	m := v.(map[string]any)
	ids, isSlice := m["ids"].([]any)
	if !isSlice || len(ids) != 1 {
		t.Fatalf("unexpected ids %v", m["ids"])
	}
}

func TestTryParseJSON_UnterminatedString(t *testing.T) {
	v, ok := TryParseJSON(`{"text": "hello`)
	if !ok {
		t.Fatal("expected recovery to close the open string")
	}
	m := v.(map[string]any)
	if m["text"] != "hello" {
		t.Fatalf("unexpected text %v", m["text"])
	}
}

// Comma normalization must not touch well-formed input: a string value may
// legitimately contain ",}" or ",]".
func TestTryParseJSON_CommaCloserInsideStringValue(t *testing.T) {
	cases := map[string]string{
		`{"a": ",}"}`:      ",}",
		`{"a": "x,]y"}`:    "x,]y",
		`{"a": "end ,} "}`: "end ,} ",
	}
	for in, want := range cases {
		v, ok := TryParseJSON(in)
		if !ok {
			t.Fatalf("expected %q to parse", in)
		}
		if got := v.(map[string]any)["a"]; got != want {
			t.Fatalf("string content altered: got %q, want %q", got, want)
		}
	}
}

func TestTryParseJSON_BracketsInsideStrings(t *testing.T) {
	v, ok := TryParseJSON(`{"note": "a [b] {c}"}`)
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if v.(map[string]any)["note"] != "a [b] {c}" {
		t.Fatal("string content was altered")
	}
}

func TestTryParseJSON_Unrecoverable(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"no structure at all",
		"{{{",
	}
	for _, in := range cases {
		if v, ok := TryParseJSON(in); ok {
			t.Fatalf("expected %q to fail, got %v", in, v)
		}
	}
}

// Recovered values must survive a marshal round trip so they can be frozen
// into the raw_analysis column.
func TestTryParseJSON_RecoveredValueSerializable(t *testing.T) {
	inputs := []string{
		`{"a": [1, {"b": "c"`,
		"```json\n[\"x\", \"y\",]\n```",
		`prefix {"k": "v"} suffix`,
	}
	for _, in := range inputs {
		v, ok := TryParseJSON(in)
		if !ok {
			continue
		}
		if _, err := json.Marshal(v); err != nil {
			t.Fatalf("recovered value from %q not serializable: %v", in, err)
		}
	}
}

func TestTryParseJSON_NeverPanics(t *testing.T) {
	adversarial := []string{
		`"`,
		`\"`,
		`{"a": "\`,
		"]}",
		"[}",
		"{]",
		"\x00{\"a\":1}",
		`{"a": "` + string(make([]byte, 64)) + `"}`,
	}
	for _, in := range adversarial {
		TryParseJSON(in)
	}
}

func TestTryParseJSONFromLines(t *testing.T) {
	v, ok := TryParseJSONFromLines([]any{"{", `"a": 1,`, `"b": 2`, "}"})
	if !ok {
		t.Fatal("expected joined lines to parse")
	}
	want := map[string]any{"a": float64(1), "b": float64(2)}
	if !reflect.DeepEqual(v, want) {
		t.Fatalf("got %v, want %v", v, want)
	}

	if _, ok := TryParseJSONFromLines([]any{"plain", "lines"}); ok {
		t.Fatal("expected non-JSON lines to fail")
	}
	if _, ok := TryParseJSONFromLines([]any{1, 2}); ok {
		t.Fatal("expected non-string array to fail")
	}
	if _, ok := TryParseJSONFromLines(nil); ok {
		t.Fatal("expected nil to fail")
	}
}
