package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Meeting is the persisted meeting aggregate. RawAnalysis holds the frozen
// analysis payload exactly as it was captured at analysis time; the
// relational rows below are the source of truth for identity and state.
type Meeting struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title       string         `json:"title" gorm:"type:varchar(500)"`
	Summary     string         `json:"summary,omitempty" gorm:"type:text"`
	RawAnalysis datatypes.JSON `json:"raw_analysis,omitempty" gorm:"type:jsonb"`
	Tasks       []Task         `json:"tasks" gorm:"foreignKey:MeetingID"`
	EmailDrafts []EmailDraft   `json:"email_drafts" gorm:"foreignKey:MeetingID"`
	Events      []Event        `json:"events" gorm:"foreignKey:MeetingID"`
	Blockers    []Blocker      `json:"blockers" gorm:"foreignKey:MeetingID"`
	CreatedAt   time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for Meeting
func (Meeting) TableName() string {
	return "meetings"
}

// NewMeeting creates a new Meeting entity
func NewMeeting(title string) *Meeting {
	return &Meeting{
		ID:    uuid.New(),
		Title: title,
	}
}

// Task is a persisted follow-up task row
type Task struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID   uuid.UUID `json:"meeting_id" gorm:"type:uuid;not null;index"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Owner       string    `json:"owner,omitempty" gorm:"type:varchar(255)"`
	Priority    string    `json:"priority,omitempty" gorm:"type:varchar(20)"`
	Completed   bool      `json:"completed" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for Task
func (Task) TableName() string {
	return "meeting_tasks"
}

// EmailDraft is a persisted follow-up email draft row
type EmailDraft struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID uuid.UUID `json:"meeting_id" gorm:"type:uuid;not null;index"`
	Subject   string    `json:"subject,omitempty" gorm:"type:varchar(500)"`
	Body      string    `json:"body" gorm:"type:text;not null"`
	Recipient string    `json:"recipient,omitempty" gorm:"type:varchar(500)"`
	Status    string    `json:"status" gorm:"type:varchar(20);default:'draft'"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for EmailDraft
func (EmailDraft) TableName() string {
	return "meeting_email_drafts"
}

// Event is a persisted suggested calendar event row
type Event struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID   uuid.UUID `json:"meeting_id" gorm:"type:uuid;not null;index"`
	Title       string    `json:"title" gorm:"type:varchar(500);not null"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	StartTime   string    `json:"start_time,omitempty" gorm:"type:varchar(64)"`
	EndTime     string    `json:"end_time,omitempty" gorm:"type:varchar(64)"`
	Timezone    string    `json:"timezone,omitempty" gorm:"type:varchar(64)"`
	Status      string    `json:"status" gorm:"type:varchar(20);default:'suggested'"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for Event
func (Event) TableName() string {
	return "meeting_events"
}

// Blocker is a persisted blocker row
type Blocker struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID   uuid.UUID `json:"meeting_id" gorm:"type:uuid;not null;index"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Severity    string    `json:"severity,omitempty" gorm:"type:varchar(20)"`
	Resolved    bool      `json:"resolved" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for Blocker
func (Blocker) TableName() string {
	return "meeting_blockers"
}

// EmailDraftStatus constants
const (
	EmailDraftStatusDraft    = "draft"
	EmailDraftStatusApproved = "approved"
	EmailDraftStatusDeclined = "declined"
	EmailDraftStatusSent     = "sent"
)

// EventStatus constants
const (
	EventStatusSuggested = "suggested"
	EventStatusApproved  = "approved"
	EventStatusDeclined  = "declined"
	EventStatusCreated   = "created"
)
