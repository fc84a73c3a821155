package analysis

import (
	"regexp"
	"strings"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// calendarFieldRe recognizes calendar rows whose text column still holds an
// embedded JSON fragment from before events were stored as columns.
var calendarFieldRe = regexp.MustCompile(`"(title|summary|start|start_time|startTime|end|end_time|endTime|timezone|attendees|status)"\s*:`)

// BuildResults merges a persisted meeting's relational rows with freeform
// analysis enrichment. The rows are the spine: output cardinality and
// identity always equal the row set, and every id originates from a row.
// Freeform analysis only ever enriches.
//
// Enrichment precedence per category: the in-memory overrides (a fresh
// analysis run not yet round-tripped through storage) win over the frozen
// raw_analysis blob. The summary has no relational backing and comes from
// the effective overrides or the meeting's summary column.
func BuildResults(meeting *entities.Meeting, overrides *entities.AnalysisResults) entities.AnalysisResults {
	if meeting == nil {
		return entities.EmptyResults()
	}
	var rawResults *entities.AnalysisResults
	if raw, ok := ParseRawBlob(meeting.RawAnalysis); ok {
		parsed := ParseResults(raw)
		rawResults = &parsed
	}
	return BuildResultsFromParsed(meeting, rawResults, overrides)
}

// BuildResultsFromParsed is BuildResults with the blob aggregation already
// computed, for callers that memoize the frozen blob's parse.
func BuildResultsFromParsed(meeting *entities.Meeting, rawResults, overrides *entities.AnalysisResults) entities.AnalysisResults {
	results := entities.EmptyResults()
	if meeting == nil {
		return results
	}

	effective := mergeOverrides(rawResults, overrides)

	results.Summary = reconcileSummary(meeting, effective)
	results.NextTasks = reconcileTasks(meeting.Tasks, effective.NextTasks)
	results.Email = reconcileEmails(meeting.EmailDrafts, effective.Email)
	results.Calendar = reconcileEvents(meeting.Events, effective.Calendar)
	results.Blockers = reconcileBlockers(meeting.Blockers, effective.Blockers)
	return results
}

// mergeOverrides shallow-merges the parsed raw blob with in-memory
// overrides, independently per category. A category counts as set when its
// sequence is non-empty (for the summary: non-placeholder text).
func mergeOverrides(raw, over *entities.AnalysisResults) entities.AnalysisResults {
	var out entities.AnalysisResults
	pick := func(overSet, rawSet bool, apply func(src *entities.AnalysisResults)) {
		if over != nil && overSet {
			apply(over)
		} else if raw != nil && rawSet {
			apply(raw)
		}
	}
	pick(over != nil && summarySet(over.Summary), raw != nil && summarySet(raw.Summary),
		func(src *entities.AnalysisResults) { out.Summary = src.Summary })
	pick(over != nil && len(over.NextTasks) > 0, raw != nil && len(raw.NextTasks) > 0,
		func(src *entities.AnalysisResults) { out.NextTasks = src.NextTasks })
	pick(over != nil && len(over.Email) > 0, raw != nil && len(raw.Email) > 0,
		func(src *entities.AnalysisResults) { out.Email = src.Email })
	pick(over != nil && len(over.Calendar) > 0, raw != nil && len(raw.Calendar) > 0,
		func(src *entities.AnalysisResults) { out.Calendar = src.Calendar })
	pick(over != nil && len(over.Blockers) > 0, raw != nil && len(raw.Blockers) > 0,
		func(src *entities.AnalysisResults) { out.Blockers = src.Blockers })
	return out
}

func summarySet(s entities.SummaryData) bool {
	text := strings.TrimSpace(s.Text)
	return text != "" && text != entities.NoSummaryText
}

func reconcileSummary(meeting *entities.Meeting, effective entities.AnalysisResults) entities.SummaryData {
	if summarySet(effective.Summary) {
		return ParseSummary(map[string]any{
			"text":    effective.Summary.Text,
			"bullets": effective.Summary.Bullets,
		})
	}
	return ParseSummary(meeting.Summary)
}

func reconcileTasks(rows []entities.Task, enrichment []entities.TaskItem) []entities.TaskItem {
	lookup := make(map[string]entities.TaskItem, len(enrichment))
	for _, e := range enrichment {
		lookup[NormalizeKey(e.Task)] = e
	}

	out := make([]entities.TaskItem, 0, len(rows))
	for _, row := range rows {
		var item entities.TaskItem
		// Legacy compatibility: the description column may still hold an
		// embedded JSON fragment with the rich fields.
		if looksLikeJSONFragment(row.Description) {
			if parsed := ParseTasks(row.Description); len(parsed) > 0 {
				item = parsed[0]
			}
		}
		e, ok := lookup[NormalizeKey(row.Description)]
		if !ok && item.Task != "" {
			e, ok = lookup[NormalizeKey(item.Task)]
		}
		if ok {
			item = overlayTask(item, e)
		}

		if strings.TrimSpace(item.Task) == "" {
			item.Task = strings.TrimSpace(row.Description)
		}
		if item.Task == "" {
			continue
		}
		item.ID = row.ID.String()
		item.Completed = row.Completed
		if item.Owner == "" {
			item.Owner = row.Owner
		}
		if item.Priority == "" {
			item.Priority = row.Priority
		}
		out = append(out, item)
	}
	return out
}

func overlayTask(base, e entities.TaskItem) entities.TaskItem {
	if e.Task != "" {
		base.Task = e.Task
	}
	if e.Owner != "" {
		base.Owner = e.Owner
	}
	if e.Rationale != "" {
		base.Rationale = e.Rationale
	}
	if e.Priority != "" {
		base.Priority = e.Priority
	}
	if len(e.References) > 0 {
		base.References = e.References
	}
	return base
}

func reconcileEmails(rows []entities.EmailDraft, enrichment []entities.EmailData) []entities.EmailData {
	lookup := make(map[string]entities.EmailData, len(enrichment))
	for _, e := range enrichment {
		key := e.Subject
		if key == "" {
			key = e.Body
		}
		lookup[NormalizeKey(key)] = e
	}

	out := make([]entities.EmailData, 0, len(rows))
	for _, row := range rows {
		var item entities.EmailData
		if looksLikeJSONFragment(row.Body) {
			if parsed := ParseEmails(row.Body); len(parsed) > 0 {
				item = parsed[0]
			}
		}
		rowKey := row.Subject
		if rowKey == "" {
			rowKey = row.Body
		}
		e, ok := lookup[NormalizeKey(rowKey)]
		if !ok && item.Subject != "" {
			e, ok = lookup[NormalizeKey(item.Subject)]
		}
		if ok {
			item = overlayEmail(item, e)
		}

		if strings.TrimSpace(item.Body) == "" {
			item.Body = strings.TrimSpace(row.Body)
		}
		if item.Body == "" {
			continue
		}
		item.ID = row.ID.String()
		if row.Subject != "" {
			item.Subject = row.Subject
		}
		item.Status = row.Status
		if len(item.Recipients) == 0 {
			item.Recipients = stringList(row.Recipient)
		}
		out = append(out, item)
	}
	return out
}

func overlayEmail(base, e entities.EmailData) entities.EmailData {
	if e.Body != "" {
		base.Body = e.Body
	}
	if e.Subject != "" {
		base.Subject = e.Subject
	}
	if e.Reason != "" {
		base.Reason = e.Reason
	}
	if len(e.Recipients) > 0 {
		base.Recipients = e.Recipients
	}
	if len(e.References) > 0 {
		base.References = e.References
	}
	return base
}

func reconcileEvents(rows []entities.Event, enrichment []entities.CalendarEvent) []entities.CalendarEvent {
	lookup := make(map[string]entities.CalendarEvent, len(enrichment))
	for _, e := range enrichment {
		lookup[NormalizeKey(e.Title)] = e
	}

	// Calendar rows predating the column split may hold JSON fragments in
	// title/description. Only when at least one row looks like a fragment is
	// the whole set re-parsed as concatenated text; clean rows pass through.
	fragmented := false
	for _, row := range rows {
		if looksLikeCalendarFragment(row.Title) || looksLikeCalendarFragment(row.Description) {
			fragmented = true
			break
		}
	}
	var reparsed []entities.CalendarEvent
	if fragmented {
		var sb strings.Builder
		for _, row := range rows {
			sb.WriteString(row.Title)
			sb.WriteString("\n")
			sb.WriteString(row.Description)
			sb.WriteString("\n")
		}
		reparsed = ParseCalendar(sb.String())
	}

	out := make([]entities.CalendarEvent, 0, len(rows))
	for i, row := range rows {
		var item entities.CalendarEvent
		if fragmented {
			if len(reparsed) == len(rows) {
				item = reparsed[i]
			} else {
				for _, p := range reparsed {
					if NormalizeKey(p.Title) == NormalizeKey(row.Title) {
						item = p
						break
					}
				}
			}
		}
		e, ok := lookup[NormalizeKey(row.Title)]
		if !ok && item.Title != "" {
			e, ok = lookup[NormalizeKey(item.Title)]
		}
		if ok {
			item = overlayEvent(item, e)
		}

		if strings.TrimSpace(item.Title) == "" {
			item.Title = strings.TrimSpace(row.Title)
		}
		if item.Title == "" {
			continue
		}
		item.ID = row.ID.String()
		if item.Description == "" {
			item.Description = row.Description
		}
		if item.StartTime == "" {
			item.StartTime = row.StartTime
		}
		if item.EndTime == "" {
			item.EndTime = row.EndTime
		}
		if item.Timezone == "" {
			item.Timezone = row.Timezone
		}
		item.Status = row.Status
		if item.Attendees == nil {
			item.Attendees = []string{}
		}
		out = append(out, item)
	}
	return out
}

func overlayEvent(base, e entities.CalendarEvent) entities.CalendarEvent {
	if e.Title != "" {
		base.Title = e.Title
	}
	if e.Description != "" {
		base.Description = e.Description
	}
	if e.StartTime != "" {
		base.StartTime = e.StartTime
	}
	if e.EndTime != "" {
		base.EndTime = e.EndTime
	}
	if e.Timezone != "" {
		base.Timezone = e.Timezone
	}
	if len(e.Attendees) > 0 {
		base.Attendees = e.Attendees
	}
	if len(e.References) > 0 {
		base.References = e.References
	}
	if len(e.MissingInfo) > 0 {
		base.MissingInfo = e.MissingInfo
	}
	return base
}

func reconcileBlockers(rows []entities.Blocker, enrichment []entities.BlockerItem) []entities.BlockerItem {
	lookup := make(map[string]entities.BlockerItem, len(enrichment))
	for _, e := range enrichment {
		lookup[NormalizeKey(e.Description)] = e
	}

	out := make([]entities.BlockerItem, 0, len(rows))
	for _, row := range rows {
		var item entities.BlockerItem
		if looksLikeJSONFragment(row.Description) {
			if parsed := ParseBlockers(row.Description); len(parsed) > 0 {
				item = parsed[0]
			}
		}
		e, ok := lookup[NormalizeKey(row.Description)]
		if !ok && item.Description != "" {
			e, ok = lookup[NormalizeKey(item.Description)]
		}
		if ok {
			item = overlayBlocker(item, e)
		}

		if strings.TrimSpace(item.Description) == "" {
			item.Description = strings.TrimSpace(row.Description)
		}
		if item.Description == "" {
			continue
		}
		item.ID = row.ID.String()
		item.Resolved = row.Resolved
		if item.Severity == "" {
			item.Severity = row.Severity
		}
		out = append(out, item)
	}
	return out
}

func overlayBlocker(base, e entities.BlockerItem) entities.BlockerItem {
	if e.Description != "" {
		base.Description = e.Description
	}
	if e.Type != "" {
		base.Type = e.Type
	}
	if e.Title != "" {
		base.Title = e.Title
	}
	if e.Quote != "" {
		base.Quote = e.Quote
	}
	if e.Timestamp != "" {
		base.Timestamp = e.Timestamp
	}
	if e.Severity != "" {
		base.Severity = e.Severity
	}
	if e.Impact != "" {
		base.Impact = e.Impact
	}
	if len(e.References) > 0 {
		base.References = e.References
	}
	if len(e.EvidenceQuotes) > 0 {
		base.EvidenceQuotes = e.EvidenceQuotes
	}
	if len(e.MissingInfo) > 0 {
		base.MissingInfo = e.MissingInfo
	}
	return base
}

// looksLikeJSONFragment reports whether a text column still carries an
// embedded JSON fragment rather than plain text.
func looksLikeJSONFragment(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	switch s[0] {
	case '{', '}', '[', '"':
		return true
	}
	return false
}

func looksLikeCalendarFragment(s string) bool {
	return looksLikeJSONFragment(s) || calendarFieldRe.MatchString(s)
}
