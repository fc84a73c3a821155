package dto

import (
	"time"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// CreateMeetingRequest represents the request to register a meeting
type CreateMeetingRequest struct {
	Title string `json:"title" validate:"required,min=3,max=500"`
}

// IngestAnalysisRequest carries a raw analysis payload bundle. Every field
// is of unrestricted shape; the extractors own normalization.
type IngestAnalysisRequest struct {
	Summary   any `json:"summary,omitempty"`
	NextTasks any `json:"nextTasks,omitempty"`
	Email     any `json:"email,omitempty"`
	Calendar  any `json:"calendar,omitempty"`
	Blockers  any `json:"blockers,omitempty"`
}

// ToEntity converts the request into the domain payload bundle
func (r IngestAnalysisRequest) ToEntity() entities.RawAnalysis {
	return entities.RawAnalysis{
		Summary:   r.Summary,
		NextTasks: r.NextTasks,
		Email:     r.Email,
		Calendar:  r.Calendar,
		Blockers:  r.Blockers,
	}
}

// UpdateTaskRequest toggles a task's completion flag
type UpdateTaskRequest struct {
	Completed *bool `json:"completed" validate:"required"`
}

// UpdateBlockerRequest toggles a blocker's resolution flag
type UpdateBlockerRequest struct {
	Resolved *bool `json:"resolved" validate:"required"`
}

// UpdateEmailDraftRequest moves an email draft through its approval states
type UpdateEmailDraftRequest struct {
	Status string `json:"status" validate:"required,oneof=draft approved declined sent"`
}

// UpdateEventRequest moves a suggested event through its approval states
type UpdateEventRequest struct {
	Status string `json:"status" validate:"required,oneof=suggested approved declined created"`
}

// PreviewDTO is the title/text preview rendered by list views
type PreviewDTO struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// AnalysisResponse is the merged analysis view for one meeting
type AnalysisResponse struct {
	MeetingID string                   `json:"meeting_id"`
	Preview   PreviewDTO               `json:"preview"`
	Results   entities.AnalysisResults `json:"results"`
}

// MeetingResponse represents a meeting in list and create responses
type MeetingResponse struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Preview   PreviewDTO `json:"preview"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ListMeetingsRequest represents list pagination parameters
type ListMeetingsRequest struct {
	Page     int `query:"page" validate:"omitempty,min=1"`
	PageSize int `query:"page_size" validate:"omitempty,min=1,max=100"`
}
