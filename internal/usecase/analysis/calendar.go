package analysis

import (
	"strings"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// Calendar alias tables. The upstream step has emitted both snake_case and
// capitalized field variants over time; eventFromMap accepts the union so
// every historical container shape normalizes the same way.
var (
	calendarTitleKeys     = []string{"title", "Title", "summary"}
	calendarContainerKeys = []string{"suggestedEvents", "suggested_events", "events"}
	calendarStartKeys     = []string{"start", "startTime", "start_time", "Start time"}
	calendarEndKeys       = []string{"end", "endTime", "end_time", "End time"}
	calendarTimezoneKeys  = []string{"timezone", "timeZone", "Timezone"}
)

// ParseCalendar reduces a value of unknown shape to the canonical ordered
// event list. Elements whose title is blank after parsing are dropped;
// attendees always normalize to a string sequence.
func ParseCalendar(v any) []entities.CalendarEvent {
	items := parseCalendar(v, false)
	out := make([]entities.CalendarEvent, 0, len(items))
	for _, item := range items {
		item.Title = strings.TrimSpace(item.Title)
		if item.Title == "" {
			continue
		}
		if item.Attendees == nil {
			item.Attendees = []string{}
		}
		out = append(out, item)
	}
	return out
}

func parseCalendar(v any, reparsed bool) []entities.CalendarEvent {
	if v == nil {
		return nil
	}

	if _, ok := allStrings(v); ok && !reparsed {
		if parsed, ok := TryParseJSONFromLines(v); ok {
			return parseCalendar(parsed, true)
		}
	}

	if m, ok := asMap(v); ok {
		if inner, ok := firstValue(m, calendarContainerKeys...); ok {
			return parseCalendar(inner, reparsed)
		}
		if item, ok := eventFromMap(m); ok {
			return []entities.CalendarEvent{item}
		}
		return nil
	}

	if s, ok := v.(string); ok {
		if !reparsed {
			if parsed, ok := TryParseJSON(s); ok {
				return parseCalendar(parsed, true)
			}
		}
		var out []entities.CalendarEvent
		for _, line := range splitLines(StripMarkdown(s)) {
			out = append(out, entities.CalendarEvent{Title: line})
		}
		return out
	}

	if items, ok := asSlice(v); ok {
		var out []entities.CalendarEvent
		for _, el := range items {
			if item, ok := eventFromAny(el, reparsed); ok {
				out = append(out, item)
			}
		}
		return out
	}

	return nil
}

func eventFromAny(v any, reparsed bool) (entities.CalendarEvent, bool) {
	switch t := v.(type) {
	case map[string]any:
		return eventFromMap(t)
	case string:
		if !reparsed {
			if parsed, ok := TryParseJSON(t); ok {
				if m, ok := asMap(parsed); ok {
					return eventFromMap(m)
				}
			}
		}
		if text := regexField(t, calendarTitleKeys...); text != "" {
			return entities.CalendarEvent{Title: text}, true
		}
		return entities.CalendarEvent{Title: strings.TrimSpace(t)}, true
	default:
		return entities.CalendarEvent{Title: strings.TrimSpace(stringify(v))}, true
	}
}

func eventFromMap(m map[string]any) (entities.CalendarEvent, bool) {
	title := firstString(m, calendarTitleKeys...)
	if title == "" {
		return entities.CalendarEvent{}, false
	}
	item := entities.CalendarEvent{
		ID:          firstString(m, "id"),
		Title:       title,
		Description: firstString(m, "description", "Description"),
		StartTime:   firstString(m, calendarStartKeys...),
		EndTime:     firstString(m, calendarEndKeys...),
		Timezone:    firstString(m, calendarTimezoneKeys...),
		Status:      firstString(m, "status", "Status"),
	}
	if attendees, ok := firstValue(m, "attendees", "Attendees"); ok {
		item.Attendees = stringList(attendees)
	} else {
		item.Attendees = []string{}
	}
	if refs, ok := firstValue(m, "references", "References"); ok {
		item.References = stringList(refs)
	}
	if missing, ok := firstValue(m, "missing_info", "missingInfo", "Missing info"); ok {
		item.MissingInfo = stringList(missing)
	}
	return item, true
}
