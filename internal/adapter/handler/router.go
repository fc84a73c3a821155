package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meeting-insights/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	meetingHandler *MeetingHandler
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, meetingHandler *MeetingHandler) *Router {
	return &Router{
		cfg:            cfg,
		meetingHandler: meetingHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupMeetingRoutes(v1)
}

// setupMeetingRoutes configures meeting and analysis routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetingGroup := g.Group("/meetings")

	meetingGroup.POST("", rt.meetingHandler.CreateMeeting)
	meetingGroup.GET("", rt.meetingHandler.ListMeetings)
	meetingGroup.GET("/:id/analysis", rt.meetingHandler.GetAnalysis)
	meetingGroup.POST("/:id/analysis", rt.meetingHandler.IngestAnalysis)
	meetingGroup.PATCH("/:id/tasks/:rowId", rt.meetingHandler.UpdateTask)
	meetingGroup.PATCH("/:id/blockers/:rowId", rt.meetingHandler.UpdateBlocker)
	meetingGroup.PATCH("/:id/emails/:rowId", rt.meetingHandler.UpdateEmailDraft)
	meetingGroup.PATCH("/:id/events/:rowId", rt.meetingHandler.UpdateEvent)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
