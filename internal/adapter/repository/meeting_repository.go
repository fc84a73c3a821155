package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	repo "github.com/johnquangdev/meeting-insights/internal/domain/repositories"
)

type meetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository backed by GORM
func NewMeetingRepository(db *gorm.DB) repo.MeetingRepository {
	return &meetingRepository{db: db}
}

func (r *meetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	return r.db.WithContext(ctx).Create(meeting).Error
}

func (r *meetingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.db.WithContext(ctx).
		Preload("Tasks", orderByCreated).
		Preload("EmailDrafts", orderByCreated).
		Preload("Events", orderByCreated).
		Preload("Blockers", orderByCreated).
		First(&meeting, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &meeting, nil
}

func orderByCreated(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}

func (r *meetingRepository) List(ctx context.Context, limit, offset int) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&meetings).Error
	return meetings, err
}

// ReplaceAnalysis swaps the derived rows and the frozen raw blob atomically.
// Old rows are deleted rather than updated: a re-run of the analysis issues
// fresh row identities.
func (r *meetingRepository) ReplaceAnalysis(ctx context.Context, meeting *entities.Meeting) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.Meeting{}).
			Where("id = ?", meeting.ID).
			Updates(map[string]interface{}{
				"summary":      meeting.Summary,
				"raw_analysis": meeting.RawAnalysis,
				"updated_at":   time.Now(),
			}).Error; err != nil {
			return err
		}

		for _, model := range []interface{}{
			&entities.Task{}, &entities.EmailDraft{}, &entities.Event{}, &entities.Blocker{},
		} {
			if err := tx.Where("meeting_id = ?", meeting.ID).Delete(model).Error; err != nil {
				return err
			}
		}

		if len(meeting.Tasks) > 0 {
			if err := tx.Create(&meeting.Tasks).Error; err != nil {
				return err
			}
		}
		if len(meeting.EmailDrafts) > 0 {
			if err := tx.Create(&meeting.EmailDrafts).Error; err != nil {
				return err
			}
		}
		if len(meeting.Events) > 0 {
			if err := tx.Create(&meeting.Events).Error; err != nil {
				return err
			}
		}
		if len(meeting.Blockers) > 0 {
			if err := tx.Create(&meeting.Blockers).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *meetingRepository) SetTaskCompleted(ctx context.Context, meetingID, taskID uuid.UUID, completed bool) error {
	return r.updateFlag(ctx, &entities.Task{}, meetingID, taskID, map[string]interface{}{"completed": completed})
}

func (r *meetingRepository) SetBlockerResolved(ctx context.Context, meetingID, blockerID uuid.UUID, resolved bool) error {
	return r.updateFlag(ctx, &entities.Blocker{}, meetingID, blockerID, map[string]interface{}{"resolved": resolved})
}

func (r *meetingRepository) SetEmailDraftStatus(ctx context.Context, meetingID, draftID uuid.UUID, status string) error {
	return r.updateFlag(ctx, &entities.EmailDraft{}, meetingID, draftID, map[string]interface{}{"status": status})
}

func (r *meetingRepository) SetEventStatus(ctx context.Context, meetingID, eventID uuid.UUID, status string) error {
	return r.updateFlag(ctx, &entities.Event{}, meetingID, eventID, map[string]interface{}{"status": status})
}

func (r *meetingRepository) updateFlag(ctx context.Context, model interface{}, meetingID, rowID uuid.UUID, values map[string]interface{}) error {
	values["updated_at"] = time.Now()
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND meeting_id = ?", rowID, meetingID).
		Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
