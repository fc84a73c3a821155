package entities

// RawAnalysis is the analysis payload bundle as produced by the upstream
// text-analysis step. Every field is of unknown shape: a JSON object, an
// array, a bare string, an array of JSON-string lines, or absent entirely.
type RawAnalysis struct {
	Summary   any `json:"summary,omitempty"`
	NextTasks any `json:"nextTasks,omitempty"`
	Email     any `json:"email,omitempty"`
	Calendar  any `json:"calendar,omitempty"`
	Blockers  any `json:"blockers,omitempty"`
}

// SummaryData is the canonical meeting summary
type SummaryData struct {
	Text    string   `json:"text"`
	Bullets []string `json:"bullets"`
}

// TaskItem is a canonical follow-up task
type TaskItem struct {
	ID         string   `json:"id,omitempty"`
	Task       string   `json:"task"`
	Owner      string   `json:"owner,omitempty"`
	Rationale  string   `json:"rationale,omitempty"`
	Priority   string   `json:"priority,omitempty"`
	References []string `json:"references,omitempty"`
	Completed  bool     `json:"completed"`
}

// BlockerItem is a canonical blocker, open question, risk or uncertainty
type BlockerItem struct {
	ID             string   `json:"id,omitempty"`
	Type           string   `json:"type,omitempty"`
	Title          string   `json:"title,omitempty"`
	Description    string   `json:"description"`
	Quote          string   `json:"quote,omitempty"`
	Timestamp      string   `json:"timestamp,omitempty"`
	Severity       string   `json:"severity,omitempty"`
	Impact         string   `json:"impact,omitempty"`
	References     []string `json:"references,omitempty"`
	EvidenceQuotes []string `json:"evidenceQuotes,omitempty"`
	MissingInfo    []string `json:"missingInfo,omitempty"`
	Resolved       bool     `json:"resolved"`
}

// CalendarEvent is a canonical suggested calendar event
type CalendarEvent struct {
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	StartTime   string   `json:"startTime,omitempty"`
	EndTime     string   `json:"endTime,omitempty"`
	Timezone    string   `json:"timezone,omitempty"`
	Attendees   []string `json:"attendees"`
	Status      string   `json:"status,omitempty"`
	References  []string `json:"references,omitempty"`
	MissingInfo []string `json:"missingInfo,omitempty"`
}

// EmailData is a canonical follow-up email draft
type EmailData struct {
	ID         string   `json:"id,omitempty"`
	Reason     string   `json:"reason,omitempty"`
	Recipients []string `json:"recipients"`
	Subject    string   `json:"subject,omitempty"`
	Body       string   `json:"body"`
	Status     string   `json:"status,omitempty"`
	References []string `json:"references,omitempty"`
}

// AnalysisResults is the single canonical output shape for both the
// aggregator and the reconciliation layer. Consumers treat it as immutable
// and build new values instead of mutating in place.
type AnalysisResults struct {
	Summary   SummaryData     `json:"summary"`
	NextTasks []TaskItem      `json:"nextTasks"`
	Email     []EmailData     `json:"email"`
	Calendar  []CalendarEvent `json:"calendar"`
	Blockers  []BlockerItem   `json:"blockers"`
}

// NoSummaryText is the placeholder used when no summary could be derived
const NoSummaryText = "No summary generated"

// EmptyResults returns an AnalysisResults with the default summary and
// empty category sequences.
func EmptyResults() AnalysisResults {
	return AnalysisResults{
		Summary:   SummaryData{Text: NoSummaryText, Bullets: []string{}},
		NextTasks: []TaskItem{},
		Email:     []EmailData{},
		Calendar:  []CalendarEvent{},
		Blockers:  []BlockerItem{},
	}
}
