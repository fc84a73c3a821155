package analysis

import (
	"encoding/json"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// ParseResults fans the raw payload bundle out over the five category
// extractors and assembles one canonical AnalysisResults. Extraction
// failures are isolated per category; a malformed calendar payload never
// prevents tasks or summary from parsing.
func ParseResults(raw entities.RawAnalysis) entities.AnalysisResults {
	return entities.AnalysisResults{
		Summary:   ParseSummary(raw.Summary),
		NextTasks: ParseTasks(raw.NextTasks),
		Email:     ParseEmails(raw.Email),
		Calendar:  ParseCalendar(raw.Calendar),
		Blockers:  ParseBlockers(raw.Blockers),
	}
}

// ParseRawBlob decodes a frozen raw_analysis blob back into the payload
// bundle. The blob is normally a JSON object with the five category fields,
// but historical rows stored bare strings or fenced JSON; those go through
// the recovery engine first.
func ParseRawBlob(blob []byte) (entities.RawAnalysis, bool) {
	if len(blob) == 0 {
		return entities.RawAnalysis{}, false
	}

	var v any
	if err := json.Unmarshal(blob, &v); err != nil {
		parsed, ok := TryParseJSON(string(blob))
		if !ok {
			return entities.RawAnalysis{}, false
		}
		v = parsed
	}

	if s, ok := v.(string); ok {
		if parsed, ok := TryParseJSON(s); ok {
			v = parsed
		}
	}

	m, ok := asMap(v)
	if !ok {
		return entities.RawAnalysis{}, false
	}
	raw := entities.RawAnalysis{}
	raw.Summary, _ = firstValue(m, "summary")
	raw.NextTasks, _ = firstValue(m, "nextTasks", "next_tasks", "tasks")
	raw.Email, _ = firstValue(m, "email", "emails")
	raw.Calendar, _ = firstValue(m, "calendar", "calendarEvents", "calendar_events")
	raw.Blockers, _ = firstValue(m, "blockers")
	return raw, true
}
