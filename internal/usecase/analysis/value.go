package analysis

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Shape helpers for the unknown-shape values the extractors work on. The
// alias tables in the extractor files are plain ordered key lists consumed
// by firstString/firstValue so the fallback order stays auditable.

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func asSlice(v any) ([]any, bool) {
	s, ok := v.([]any)
	return s, ok
}

// allStrings reports whether v is an array whose elements are all strings
func allStrings(v any) ([]string, bool) {
	if ss, ok := v.([]string); ok {
		return ss, len(ss) > 0
	}
	items, ok := asSlice(v)
	if !ok || len(items) == 0 {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// firstValue returns the first present key from the alias list
func firstValue(m map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// firstString returns the first present non-blank string for the alias list,
// stringifying scalar values.
func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		if s := strings.TrimSpace(stringify(v)); s != "" {
			return s
		}
	}
	return ""
}

// firstBool returns the first present boolean for the alias list
func firstBool(m map[string]any, keys ...string) bool {
	for _, k := range keys {
		if b, ok := m[k].(bool); ok {
			return b
		}
	}
	return false
}

// stringify renders a value in its most literal readable form: strings pass
// through, scalars print, containers fall back to compact JSON so no
// information is silently lost.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return fmt.Sprintf("%t", t)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
}

// stringList normalizes a value to a sequence of strings: an array maps
// element-wise through stringify, a scalar wraps into a single-element
// sequence, anything else yields an empty sequence.
func stringList(v any) []string {
	if v == nil {
		return []string{}
	}
	if ss, ok := v.([]string); ok {
		out := make([]string, 0, len(ss))
		for _, s := range ss {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	if items, ok := asSlice(v); ok {
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s := strings.TrimSpace(stringify(item)); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	if s := strings.TrimSpace(stringify(v)); s != "" {
		return []string{s}
	}
	return []string{}
}

// regexField is the last-resort single-field extraction applied when a
// fragment cannot be parsed as JSON. First matching alias wins.
func regexField(s string, keys ...string) string {
	for _, k := range keys {
		re, err := regexp.Compile(`"` + regexp.QuoteMeta(k) + `"\s*:\s*"([^"]+)"`)
		if err != nil {
			continue
		}
		if m := re.FindStringSubmatch(s); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// splitLines breaks a freeform string into list entries: newline-separated
// first, comma-separated as a fallback, else the whole string as one entry.
func splitLines(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	sep := ""
	if strings.Contains(s, "\n") {
		sep = "\n"
	} else if strings.Contains(s, ", ") {
		sep = ", "
	}
	if sep == "" {
		return []string{s}
	}
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(p), "- "))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// NormalizeKey builds the merge key used to join relational rows to
// freeform analysis entries.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
