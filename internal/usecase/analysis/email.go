package analysis

import (
	"strings"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// Email alias tables. First present key wins, in this order.
var (
	emailBodyKeys      = []string{"body", "Body", "text", "content"}
	emailRefSpeaker    = []string{"speaker", "Speaker"}
	emailRefTimestamp  = []string{"timestamp", "Timestamp", "time"}
	emailRefText       = []string{"text", "Text", "message", "content"}
	emailContainerKeys = []string{"allEmails", "all_emails"}
)

// ParseEmails reduces a value of unknown shape to the canonical ordered
// email-draft list. Elements whose body is blank after parsing are dropped.
func ParseEmails(v any) []entities.EmailData {
	items := parseEmails(v, false)
	out := make([]entities.EmailData, 0, len(items))
	for _, item := range items {
		item.Body = strings.TrimSpace(item.Body)
		if item.Body == "" {
			continue
		}
		if item.Recipients == nil {
			item.Recipients = []string{}
		}
		out = append(out, item)
	}
	return out
}

func parseEmails(v any, reparsed bool) []entities.EmailData {
	if v == nil {
		return nil
	}

	if _, ok := allStrings(v); ok && !reparsed {
		if parsed, ok := TryParseJSONFromLines(v); ok {
			return parseEmails(parsed, true)
		}
	}

	if m, ok := asMap(v); ok {
		if inner, ok := firstValue(m, emailContainerKeys...); ok {
			return parseEmails(inner, reparsed)
		}
		if item, ok := emailFromMap(m); ok {
			return []entities.EmailData{item}
		}
		return nil
	}

	if s, ok := v.(string); ok {
		if !reparsed {
			if parsed, ok := TryParseJSON(s); ok {
				return parseEmails(parsed, true)
			}
		}
		// A bare string is one draft body; bodies legitimately span lines.
		s = StripMarkdown(s)
		if s == "" {
			return nil
		}
		return []entities.EmailData{{Body: s}}
	}

	if items, ok := asSlice(v); ok {
		var out []entities.EmailData
		for _, el := range items {
			if item, ok := emailFromAny(el, reparsed); ok {
				out = append(out, item)
			}
		}
		return out
	}

	return nil
}

func emailFromAny(v any, reparsed bool) (entities.EmailData, bool) {
	switch t := v.(type) {
	case map[string]any:
		return emailFromMap(t)
	case string:
		if !reparsed {
			if parsed, ok := TryParseJSON(t); ok {
				if m, ok := asMap(parsed); ok {
					return emailFromMap(m)
				}
			}
		}
		if text := regexField(t, emailBodyKeys...); text != "" {
			return entities.EmailData{Body: text}, true
		}
		return entities.EmailData{Body: strings.TrimSpace(t)}, true
	default:
		return entities.EmailData{Body: strings.TrimSpace(stringify(v))}, true
	}
}

func emailFromMap(m map[string]any) (entities.EmailData, bool) {
	body := firstString(m, emailBodyKeys...)
	if body == "" {
		return entities.EmailData{}, false
	}
	item := entities.EmailData{
		ID:      firstString(m, "id"),
		Reason:  firstString(m, "reason", "Reason"),
		Subject: firstString(m, "subject", "Subject"),
		Body:    body,
		Status:  firstString(m, "status", "Status"),
	}
	if recipients, ok := firstValue(m, "recipients", "Recipients"); ok {
		item.Recipients = stringList(recipients)
	} else {
		item.Recipients = []string{}
	}
	if refs, ok := firstValue(m, "references", "References"); ok {
		item.References = formatReferences(refs)
	}
	return item, true
}

// formatReferences renders transcript references as human-readable strings.
// Structured references become "<speaker> (<timestamp>) <text>" with empty
// parts omitted; strings pass through untouched.
func formatReferences(v any) []string {
	items, ok := asSlice(v)
	if !ok {
		items = []any{v}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
			continue
		}
		m, ok := asMap(item)
		if !ok {
			if s := strings.TrimSpace(stringify(item)); s != "" {
				out = append(out, s)
			}
			continue
		}
		var parts []string
		if speaker := firstString(m, emailRefSpeaker...); speaker != "" {
			parts = append(parts, speaker)
		}
		if ts := firstString(m, emailRefTimestamp...); ts != "" {
			parts = append(parts, "("+ts+")")
		}
		if text := firstString(m, emailRefText...); text != "" {
			parts = append(parts, text)
		}
		if len(parts) > 0 {
			out = append(out, strings.Join(parts, " "))
		}
	}
	return out
}
