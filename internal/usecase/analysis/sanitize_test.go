package analysis

import "testing"

func TestStripMarkdown(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "hello world", "hello world"},
		{"json fence", "```json\n{\"a\": 1}\n```", "{\"a\": 1}"},
		{"uppercase fence", "```JSON\n[1]\n```", "[1]"},
		{"mixed case fence", "```Json\n[1]\n```", "[1]"},
		{"bare fence", "```\ntext\n```", "text"},
		{"fence mid string", "before ``` after", "before  after"},
		{"whitespace trimmed", "  padded  ", "padded"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StripMarkdown(tc.in); got != tc.want {
				t.Fatalf("StripMarkdown(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
