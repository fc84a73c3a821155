package presenter

import (
	"strings"

	"github.com/johnquangdev/meeting-insights/internal/adapter/dto"
	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	"github.com/johnquangdev/meeting-insights/internal/usecase/analysis"
)

const (
	previewTitleLimit = 80
	previewTextLimit  = 200
)

// AnalysisResponse assembles the merged analysis view for one meeting
func AnalysisResponse(meetingID string, results entities.AnalysisResults) dto.AnalysisResponse {
	return dto.AnalysisResponse{
		MeetingID: meetingID,
		Preview:   Preview(results.Summary),
		Results:   results,
	}
}

// MeetingResponse maps a meeting entity to its list/create representation
func MeetingResponse(meeting *entities.Meeting) dto.MeetingResponse {
	// The summary column is raw persisted text; run it through the summary
	// extractor so legacy fenced-JSON columns still preview cleanly.
	summary := analysis.ParseSummary(meeting.Summary)
	return dto.MeetingResponse{
		ID:        meeting.ID.String(),
		Title:     meeting.Title,
		Preview:   Preview(summary),
		CreatedAt: meeting.CreatedAt,
		UpdatedAt: meeting.UpdatedAt,
	}
}

// Preview builds the title/text preview consumed by calling UI code: the
// first sentence of the summary as the title, the leading text as the body.
func Preview(summary entities.SummaryData) dto.PreviewDTO {
	text := strings.TrimSpace(summary.Text)
	if text == "" {
		text = entities.NoSummaryText
	}
	return dto.PreviewDTO{
		Title: truncate(firstSentence(text), previewTitleLimit),
		Text:  truncate(text, previewTextLimit),
	}
}

func firstSentence(s string) string {
	if idx := strings.IndexAny(s, ".\n"); idx > 0 {
		return strings.TrimSpace(s[:idx])
	}
	return s
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return strings.TrimSpace(string(runes[:limit-1])) + "…"
}
