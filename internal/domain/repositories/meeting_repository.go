package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// MeetingRepository defines persistence operations for meetings and their
// analysis rows
type MeetingRepository interface {
	Create(ctx context.Context, meeting *entities.Meeting) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)
	List(ctx context.Context, limit, offset int) ([]*entities.Meeting, error)

	// ReplaceAnalysis swaps a meeting's derived rows and frozen raw blob in
	// one transaction. Row state flags of prior rows are not carried over;
	// identity restarts with the new analysis.
	ReplaceAnalysis(ctx context.Context, meeting *entities.Meeting) error

	SetTaskCompleted(ctx context.Context, meetingID, taskID uuid.UUID, completed bool) error
	SetBlockerResolved(ctx context.Context, meetingID, blockerID uuid.UUID, resolved bool) error
	SetEmailDraftStatus(ctx context.Context, meetingID, draftID uuid.UUID, status string) error
	SetEventStatus(ctx context.Context, meetingID, eventID uuid.UUID, status string) error
}
