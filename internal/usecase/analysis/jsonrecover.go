package analysis

import (
	"encoding/json"
	"regexp"
	"strings"
)

var trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)

// TryParseJSON attempts to recover a JSON value from an arbitrary string.
// The input may be wrapped in markdown fences or prose, carry trailing
// commas, or be truncated mid-structure. Returns (nil, false) when no
// structure can be recovered; never panics.
//
// The candidate is parsed as-is first. Comma normalization and bracket
// repair only run after that parse fails, so well-formed input is never
// rewritten (a string value may legitimately contain ",}" or ",]").
func TryParseJSON(s string) (any, bool) {
	s = StripMarkdown(s)
	if s == "" {
		return nil, false
	}

	candidate := extractCandidate(s)
	if candidate == "" {
		return nil, false
	}

	var v any
	if err := json.Unmarshal([]byte(candidate), &v); err == nil {
		return v, true
	}

	repaired := trailingCommaRe.ReplaceAllString(candidate, "$1")
	if repaired != candidate {
		if err := json.Unmarshal([]byte(repaired), &v); err == nil {
			return v, true
		}
	}

	// Last chance: close any brackets the source left open and retry once.
	// Truncation frequently leaves a comma right before the appended closer,
	// so commas are normalized again on the repaired form.
	repaired = repairBrackets(repaired)
	if repaired == candidate {
		return nil, false
	}
	repaired = trailingCommaRe.ReplaceAllString(repaired, "$1")
	if err := json.Unmarshal([]byte(repaired), &v); err == nil {
		return v, true
	}
	return nil, false
}

// TryParseJSONFromLines joins an exploded array of string lines back into a
// single blob and delegates to TryParseJSON. Used for payloads where the
// caller already split a JSON blob into lines.
func TryParseJSONFromLines(v any) (any, bool) {
	lines, ok := allStrings(v)
	if !ok || len(lines) == 0 {
		return nil, false
	}
	return TryParseJSON(strings.Join(lines, "\n"))
}

// extractCandidate locates the outermost {...} or [...] span. Prose before
// the first open bracket and after the last matching close bracket is
// dropped; a span with no closer is kept as-is for bracket repair.
func extractCandidate(s string) string {
	if strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[") {
		return s
	}
	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return ""
	}
	closer := byte('}')
	if s[start] == '[' {
		closer = ']'
	}
	if end := strings.LastIndexByte(s, closer); end > start {
		return s[start : end+1]
	}
	return s[start:]
}

// repairBrackets appends the closers for any brackets left open at end of
// input, in reverse order of the open stack. The scan is quote- and
// escape-aware so brackets inside string values are ignored. Close brackets
// that do not match the top of the stack are skipped rather than rejected,
// matching the lenient recovery the rest of the pipeline expects.
func repairBrackets(s string) string {
	var stack []byte
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{', '[':
			if !inString {
				stack = append(stack, c)
			}
		case '}':
			if !inString && len(stack) > 0 && stack[len(stack)-1] == '{' {
				stack = stack[:len(stack)-1]
			}
		case ']':
			if !inString && len(stack) > 0 && stack[len(stack)-1] == '[' {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if len(stack) == 0 && !inString {
		return s
	}

	var b strings.Builder
	b.WriteString(s)
	if inString {
		b.WriteByte('"')
	}
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == '{' {
			b.WriteByte('}')
		} else {
			b.WriteByte(']')
		}
	}
	return b.String()
}
