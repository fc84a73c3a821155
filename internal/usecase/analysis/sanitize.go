package analysis

import "strings"

// markdown fence markers emitted by the upstream analysis step, longest first
var fenceMarkers = []string{"```json", "```JSON", "```Json", "```"}

// StripMarkdown removes markdown code-fence markers anywhere in the string
// and trims surrounding whitespace. Total function: any input is accepted.
func StripMarkdown(s string) string {
	for _, marker := range fenceMarkers {
		s = strings.ReplaceAll(s, marker, "")
	}
	return strings.TrimSpace(s)
}
