package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-insights/errors"
	"github.com/johnquangdev/meeting-insights/internal/adapter/dto"
	"github.com/johnquangdev/meeting-insights/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-insights/internal/usecase/analysis"
)

// MeetingHandler exposes meeting registration and the reconciled analysis
// view
type MeetingHandler struct {
	svc    analysis.Service
	logger *zap.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(svc analysis.Service, logger *zap.Logger) *MeetingHandler {
	return &MeetingHandler{svc: svc, logger: logger}
}

// CreateMeeting registers a meeting shell that analysis results attach to
func (h *MeetingHandler) CreateMeeting(c echo.Context) error {
	var req dto.CreateMeetingRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	meeting, err := h.svc.CreateMeeting(c.Request().Context(), req.Title)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.MeetingResponse(meeting))
}

// ListMeetings returns registered meetings, newest first
func (h *MeetingHandler) ListMeetings(c echo.Context) error {
	var req dto.ListMeetingsRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	meetings, err := h.svc.ListMeetings(c.Request().Context(), req.PageSize, (req.Page-1)*req.PageSize)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	out := make([]dto.MeetingResponse, 0, len(meetings))
	for _, meeting := range meetings {
		out = append(out, presenter.MeetingResponse(meeting))
	}
	return HandleSuccess(h.logger, c, out)
}

// GetAnalysis returns the merged analysis view, re-derived from the
// relational rows and the frozen raw blob on every read
func (h *MeetingHandler) GetAnalysis(c echo.Context) error {
	meetingID, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	results, err := h.svc.GetMeetingAnalysis(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.AnalysisResponse(meetingID.String(), *results))
}

// IngestAnalysis accepts a raw analysis payload bundle, normalizes it and
// replaces the meeting's derived rows
func (h *MeetingHandler) IngestAnalysis(c echo.Context) error {
	meetingID, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req dto.IngestAnalysisRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}

	results, err := h.svc.IngestAnalysis(c.Request().Context(), meetingID, req.ToEntity())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.AnalysisResponse(meetingID.String(), *results))
}

// UpdateTask toggles a task's completion flag
func (h *MeetingHandler) UpdateTask(c echo.Context) error {
	meetingID, taskID, err := parseRowParams(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req dto.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	if err := h.svc.SetTaskCompleted(c.Request().Context(), meetingID, taskID, *req.Completed); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{"completed": *req.Completed})
}

// UpdateBlocker toggles a blocker's resolution flag
func (h *MeetingHandler) UpdateBlocker(c echo.Context) error {
	meetingID, blockerID, err := parseRowParams(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req dto.UpdateBlockerRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	if err := h.svc.SetBlockerResolved(c.Request().Context(), meetingID, blockerID, *req.Resolved); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{"resolved": *req.Resolved})
}

// UpdateEmailDraft moves an email draft through its approval states
func (h *MeetingHandler) UpdateEmailDraft(c echo.Context) error {
	meetingID, draftID, err := parseRowParams(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req dto.UpdateEmailDraftRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	if err := h.svc.SetEmailDraftStatus(c.Request().Context(), meetingID, draftID, req.Status); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{"status": req.Status})
}

// UpdateEvent moves a suggested calendar event through its approval states
func (h *MeetingHandler) UpdateEvent(c echo.Context) error {
	meetingID, eventID, err := parseRowParams(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req dto.UpdateEventRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	if err := h.svc.SetEventStatus(c.Request().Context(), meetingID, eventID, req.Status); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{"status": req.Status})
}

func parseUUIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperrors.ErrInvalidArgument("invalid " + name)
	}
	return id, nil
}

func parseRowParams(c echo.Context) (uuid.UUID, uuid.UUID, error) {
	meetingID, err := parseUUIDParam(c, "id")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	rowID, err := parseUUIDParam(c, "rowId")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return meetingID, rowID, nil
}
