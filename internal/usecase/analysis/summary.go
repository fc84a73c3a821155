package analysis

import (
	"strings"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// Summary alias tables. First present key wins, in this order.
var (
	summaryTextKeys      = []string{"summary", "text", "display_text", "displayText"}
	summaryContainerKeys = []string{"meetingSummary", "meeting_summary"}
	outcomeTextKeys      = []string{"item", "text", "description"}
)

// ParseSummary reduces a value of unknown shape to the canonical summary.
// It never fails: unparsable input degrades to its literal text form, and
// fully absent content yields the placeholder summary.
func ParseSummary(v any) entities.SummaryData {
	sd := parseSummary(v, false)
	sd.Text = strings.TrimSpace(sd.Text)
	if sd.Text == "" {
		sd.Text = entities.NoSummaryText
	}
	if sd.Bullets == nil {
		sd.Bullets = []string{}
	}
	return sd
}

func parseSummary(v any, reparsed bool) entities.SummaryData {
	if v == nil {
		return entities.SummaryData{}
	}

	if lines, ok := allStrings(v); ok {
		if !reparsed {
			if parsed, ok := TryParseJSONFromLines(v); ok {
				return parseSummary(parsed, true)
			}
		}
		return entities.SummaryData{Text: strings.Join(lines, "\n")}
	}

	if m, ok := asMap(v); ok {
		if inner, ok := firstValue(m, summaryContainerKeys...); ok {
			sd := parseSummary(inner, reparsed)
			sd.Bullets = append(sd.Bullets, outcomeBullets(m)...)
			return sd
		}

		text := firstString(m, summaryTextKeys...)
		if text == "" {
			// No known alias matched; keep the content readable instead of
			// dropping it.
			return entities.SummaryData{Text: stringify(m)}
		}
		sd := entities.SummaryData{Text: text}
		if bullets, ok := m["bullets"]; ok {
			sd.Bullets = stringList(bullets)
		}
		sd.Bullets = append(sd.Bullets, outcomeBullets(m)...)
		return sd
	}

	if s, ok := v.(string); ok {
		if !reparsed {
			if parsed, ok := TryParseJSON(s); ok {
				return parseSummary(parsed, true)
			}
		}
		return entities.SummaryData{Text: StripMarkdown(s)}
	}

	return entities.SummaryData{Text: stringify(v)}
}

// outcomeBullets renders decisions_goals_outcomes entries as action-item
// bullet lines, keeping the reference when one is attached.
func outcomeBullets(m map[string]any) []string {
	items, ok := asSlice(m["decisions_goals_outcomes"])
	if !ok {
		return nil
	}
	var bullets []string
	for _, item := range items {
		var line, ref string
		if om, ok := asMap(item); ok {
			line = firstString(om, outcomeTextKeys...)
			ref = firstString(om, "reference")
		} else {
			line = strings.TrimSpace(stringify(item))
		}
		if line == "" {
			continue
		}
		if ref != "" {
			line = line + " (" + ref + ")"
		}
		bullets = append(bullets, line)
	}
	return bullets
}
