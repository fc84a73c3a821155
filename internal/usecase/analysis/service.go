package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "github.com/johnquangdev/meeting-insights/errors"
	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	"github.com/johnquangdev/meeting-insights/internal/domain/repositories"
	"github.com/johnquangdev/meeting-insights/internal/infrastructure/cache"
)

const rawResultsCacheTTL = 30 * time.Minute

// Service orchestrates analysis ingestion and reconciled reads over the
// meeting repository
type Service interface {
	CreateMeeting(ctx context.Context, title string) (*entities.Meeting, error)
	ListMeetings(ctx context.Context, limit, offset int) ([]*entities.Meeting, error)
	GetMeetingAnalysis(ctx context.Context, meetingID uuid.UUID) (*entities.AnalysisResults, error)
	IngestAnalysis(ctx context.Context, meetingID uuid.UUID, raw entities.RawAnalysis) (*entities.AnalysisResults, error)
	SetTaskCompleted(ctx context.Context, meetingID, taskID uuid.UUID, completed bool) error
	SetBlockerResolved(ctx context.Context, meetingID, blockerID uuid.UUID, resolved bool) error
	SetEmailDraftStatus(ctx context.Context, meetingID, draftID uuid.UUID, status string) error
	SetEventStatus(ctx context.Context, meetingID, eventID uuid.UUID, status string) error
}

type analysisService struct {
	meetingRepo repositories.MeetingRepository
	store       cache.Store
	logger      *zap.Logger
}

// NewService constructs the analysis service. The cache store may be nil;
// the service then re-parses the frozen blob on every read.
func NewService(meetingRepo repositories.MeetingRepository, store cache.Store, logger *zap.Logger) Service {
	return &analysisService{
		meetingRepo: meetingRepo,
		store:       store,
		logger:      logger,
	}
}

func (s *analysisService) CreateMeeting(ctx context.Context, title string) (*entities.Meeting, error) {
	meeting := entities.NewMeeting(title)
	if err := s.meetingRepo.Create(ctx, meeting); err != nil {
		return nil, apperrors.ErrInternal(err)
	}
	if s.logger != nil {
		s.logger.Info("meeting.created",
			zap.String("meeting_id", meeting.ID.String()),
		)
	}
	return meeting, nil
}

func (s *analysisService) ListMeetings(ctx context.Context, limit, offset int) ([]*entities.Meeting, error) {
	meetings, err := s.meetingRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}
	return meetings, nil
}

// GetMeetingAnalysis re-derives the merged view on every read: the
// relational rows may have changed (completed, resolved, deleted)
// independently of the frozen blob. Only the aggregated parse of the blob
// itself is cached, because the blob never changes after capture.
func (s *analysisService) GetMeetingAnalysis(ctx context.Context, meetingID uuid.UUID) (*entities.AnalysisResults, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}
	if meeting == nil {
		return nil, apperrors.ErrNotFound("meeting")
	}

	results := BuildResultsFromParsed(meeting, s.rawResults(ctx, meeting), nil)
	return &results, nil
}

// IngestAnalysis normalizes a fresh raw payload, replaces the meeting's
// derived rows and frozen blob, and returns the merged view with the fresh
// results as in-memory overrides (the rows were just written; the overrides
// path keeps the response consistent even before a re-read).
func (s *analysisService) IngestAnalysis(ctx context.Context, meetingID uuid.UUID, raw entities.RawAnalysis) (*entities.AnalysisResults, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}
	if meeting == nil {
		return nil, apperrors.ErrNotFound("meeting")
	}

	results := ParseResults(raw)

	blob, err := json.Marshal(raw)
	if err != nil {
		// The payload came off the wire as JSON; keep going without the
		// frozen copy rather than failing the ingest.
		if s.logger != nil {
			s.logger.Warn("analysis.raw_blob_marshal_failed",
				zap.String("meeting_id", meetingID.String()),
				zap.Error(err),
			)
		}
		blob = nil
	}

	meeting.Summary = results.Summary.Text
	meeting.RawAnalysis = blob
	meeting.Tasks = rowsFromTasks(meetingID, results.NextTasks)
	meeting.EmailDrafts = rowsFromEmails(meetingID, results.Email)
	meeting.Events = rowsFromEvents(meetingID, results.Calendar)
	meeting.Blockers = rowsFromBlockers(meetingID, results.Blockers)

	if err := s.meetingRepo.ReplaceAnalysis(ctx, meeting); err != nil {
		return nil, apperrors.ErrInternal(err)
	}
	if s.store != nil {
		s.store.Delete(ctx, rawResultsCacheKey(meetingID))
	}

	if s.logger != nil {
		s.logger.Info("analysis.ingested",
			zap.String("meeting_id", meetingID.String()),
			zap.Int("tasks", len(meeting.Tasks)),
			zap.Int("email_drafts", len(meeting.EmailDrafts)),
			zap.Int("events", len(meeting.Events)),
			zap.Int("blockers", len(meeting.Blockers)),
		)
	}

	merged := BuildResultsFromParsed(meeting, nil, &results)
	return &merged, nil
}

func (s *analysisService) SetTaskCompleted(ctx context.Context, meetingID, taskID uuid.UUID, completed bool) error {
	return s.updateFlag(s.meetingRepo.SetTaskCompleted(ctx, meetingID, taskID, completed), "task")
}

func (s *analysisService) SetBlockerResolved(ctx context.Context, meetingID, blockerID uuid.UUID, resolved bool) error {
	return s.updateFlag(s.meetingRepo.SetBlockerResolved(ctx, meetingID, blockerID, resolved), "blocker")
}

func (s *analysisService) SetEmailDraftStatus(ctx context.Context, meetingID, draftID uuid.UUID, status string) error {
	return s.updateFlag(s.meetingRepo.SetEmailDraftStatus(ctx, meetingID, draftID, status), "email draft")
}

func (s *analysisService) SetEventStatus(ctx context.Context, meetingID, eventID uuid.UUID, status string) error {
	return s.updateFlag(s.meetingRepo.SetEventStatus(ctx, meetingID, eventID, status), "event")
}

func (s *analysisService) updateFlag(err error, resource string) error {
	if err == nil {
		return nil
	}
	if isNotFound(err) {
		return apperrors.ErrNotFound(resource)
	}
	return apperrors.ErrInternal(err)
}

// rawResults returns the aggregated parse of the meeting's frozen blob,
// going through the cache store when one is configured.
func (s *analysisService) rawResults(ctx context.Context, meeting *entities.Meeting) *entities.AnalysisResults {
	if len(meeting.RawAnalysis) == 0 {
		return nil
	}
	key := rawResultsCacheKey(meeting.ID)

	if s.store != nil {
		if cached, ok := s.store.Get(ctx, key); ok {
			var results entities.AnalysisResults
			if err := json.Unmarshal([]byte(cached), &results); err == nil {
				return &results
			}
			s.store.Delete(ctx, key)
		}
	}

	raw, ok := ParseRawBlob(meeting.RawAnalysis)
	if !ok {
		return nil
	}
	results := ParseResults(raw)

	if s.store != nil {
		if encoded, err := json.Marshal(results); err == nil {
			s.store.Set(ctx, key, string(encoded), rawResultsCacheTTL)
		}
	}
	return &results
}

func rawResultsCacheKey(meetingID uuid.UUID) string {
	return "analysis:raw:" + meetingID.String()
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func rowsFromTasks(meetingID uuid.UUID, items []entities.TaskItem) []entities.Task {
	rows := make([]entities.Task, 0, len(items))
	for _, item := range items {
		rows = append(rows, entities.Task{
			ID:          uuid.New(),
			MeetingID:   meetingID,
			Description: item.Task,
			Owner:       item.Owner,
			Priority:    item.Priority,
			Completed:   item.Completed,
		})
	}
	return rows
}

func rowsFromEmails(meetingID uuid.UUID, items []entities.EmailData) []entities.EmailDraft {
	rows := make([]entities.EmailDraft, 0, len(items))
	for _, item := range items {
		recipient := ""
		if len(item.Recipients) > 0 {
			recipient = item.Recipients[0]
		}
		rows = append(rows, entities.EmailDraft{
			ID:        uuid.New(),
			MeetingID: meetingID,
			Subject:   item.Subject,
			Body:      item.Body,
			Recipient: recipient,
			Status:    entities.EmailDraftStatusDraft,
		})
	}
	return rows
}

func rowsFromEvents(meetingID uuid.UUID, items []entities.CalendarEvent) []entities.Event {
	rows := make([]entities.Event, 0, len(items))
	for _, item := range items {
		rows = append(rows, entities.Event{
			ID:          uuid.New(),
			MeetingID:   meetingID,
			Title:       item.Title,
			Description: item.Description,
			StartTime:   item.StartTime,
			EndTime:     item.EndTime,
			Timezone:    item.Timezone,
			Status:      entities.EventStatusSuggested,
		})
	}
	return rows
}

func rowsFromBlockers(meetingID uuid.UUID, items []entities.BlockerItem) []entities.Blocker {
	rows := make([]entities.Blocker, 0, len(items))
	for _, item := range items {
		rows = append(rows, entities.Blocker{
			ID:          uuid.New(),
			MeetingID:   meetingID,
			Description: item.Description,
			Severity:    item.Severity,
			Resolved:    item.Resolved,
		})
	}
	return rows
}
