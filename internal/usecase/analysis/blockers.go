package analysis

import (
	"strings"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// Blocker alias tables. First present key wins, in this order. The grouped
// container keys are concatenated in the listed order when no items array
// is present.
var (
	blockerTextKeys    = []string{"description", "text"}
	blockerGroupedKeys = []string{"open_questions", "uncertainties", "risks", "blockers"}
)

// ParseBlockers reduces a value of unknown shape to the canonical ordered
// blocker list. Elements whose description is blank after parsing are
// dropped.
func ParseBlockers(v any) []entities.BlockerItem {
	items := parseBlockers(v, false)
	out := make([]entities.BlockerItem, 0, len(items))
	for _, item := range items {
		item.Description = strings.TrimSpace(item.Description)
		if item.Description == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

func parseBlockers(v any, reparsed bool) []entities.BlockerItem {
	if v == nil {
		return nil
	}

	if _, ok := allStrings(v); ok && !reparsed {
		if parsed, ok := TryParseJSONFromLines(v); ok {
			return parseBlockers(parsed, true)
		}
	}

	if m, ok := asMap(v); ok {
		if inner, ok := m["items"]; ok {
			return parseBlockers(inner, reparsed)
		}
		var grouped []entities.BlockerItem
		for _, key := range blockerGroupedKeys {
			if inner, ok := m[key]; ok {
				grouped = append(grouped, parseBlockers(inner, reparsed)...)
			}
		}
		if grouped != nil {
			return grouped
		}
		if item, ok := blockerFromMap(m); ok {
			return []entities.BlockerItem{item}
		}
		return nil
	}

	if s, ok := v.(string); ok {
		if !reparsed {
			if parsed, ok := TryParseJSON(s); ok {
				return parseBlockers(parsed, true)
			}
		}
		var out []entities.BlockerItem
		for _, line := range splitLines(StripMarkdown(s)) {
			out = append(out, entities.BlockerItem{Description: line})
		}
		return out
	}

	if items, ok := asSlice(v); ok {
		var out []entities.BlockerItem
		for _, el := range items {
			if item, ok := blockerFromAny(el, reparsed); ok {
				out = append(out, item)
			}
		}
		return out
	}

	return nil
}

func blockerFromAny(v any, reparsed bool) (entities.BlockerItem, bool) {
	switch t := v.(type) {
	case map[string]any:
		return blockerFromMap(t)
	case string:
		if !reparsed {
			if parsed, ok := TryParseJSON(t); ok {
				if m, ok := asMap(parsed); ok {
					return blockerFromMap(m)
				}
			}
		}
		if text := regexField(t, blockerTextKeys...); text != "" {
			return entities.BlockerItem{Description: text}, true
		}
		return entities.BlockerItem{Description: strings.TrimSpace(t)}, true
	default:
		return entities.BlockerItem{Description: strings.TrimSpace(stringify(v))}, true
	}
}

func blockerFromMap(m map[string]any) (entities.BlockerItem, bool) {
	text := firstString(m, blockerTextKeys...)
	if text == "" {
		// Titled entries without a description still carry content.
		if text = firstString(m, "title"); text == "" {
			return entities.BlockerItem{}, false
		}
	}
	item := entities.BlockerItem{
		ID:          firstString(m, "id"),
		Type:        firstString(m, "type"),
		Title:       firstString(m, "title"),
		Description: text,
		Quote:       firstString(m, "quote"),
		Timestamp:   firstString(m, "timestamp"),
		Severity:    firstString(m, "severity"),
		Impact:      firstString(m, "impact"),
		Resolved:    firstBool(m, "resolved"),
	}
	if refs, ok := m["references"]; ok {
		item.References = stringList(refs)
	}
	if quotes, ok := firstValue(m, "evidence_quotes", "evidenceQuotes"); ok {
		item.EvidenceQuotes = stringList(quotes)
	}
	if missing, ok := firstValue(m, "missing_info_to_resolve", "missing_info", "missingInfo"); ok {
		item.MissingInfo = stringList(missing)
	}
	return item, true
}
