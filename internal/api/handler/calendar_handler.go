package handler

import (
	"net/http"

	"github.com/alexanderramin/studyplan/internal/api/response"
	"github.com/alexanderramin/studyplan/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CalendarHandler struct {
	connector service.CalendarConnector
	sync      service.SyncService
	logger    *zap.Logger
}

func NewCalendarHandler(connector service.CalendarConnector, sync service.SyncService, logger *zap.Logger) *CalendarHandler {
	return &CalendarHandler{connector: connector, sync: sync, logger: logger}
}

func (h *CalendarHandler) enabled(c *gin.Context) bool {
	if h.connector == nil || h.sync == nil {
		response.Error(c, http.StatusServiceUnavailable, response.CodeCalendarFailed, "google calendar is not configured")
		return false
	}
	return true
}

// Connect GET /api/v1/calendar/connect
func (h *CalendarHandler) Connect(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok || !h.enabled(c) {
		return
	}
	url, err := h.connector.AuthURL(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, gin.H{"auth_url": url})
}

// Callback GET /api/v1/calendar/callback?state=...&code=...
//
// Public: the caller is identified by the single-use state. A successful
// connection is followed by an immediate sync.
func (h *CalendarHandler) Callback(c *gin.Context) {
	if !h.enabled(c) {
		return
	}
	if reason := c.Query("error"); reason != "" {
		response.Error(c, http.StatusBadRequest, response.CodeCalendarState, "authorization was not granted")
		return
	}
	state, code := c.Query("state"), c.Query("code")
	if state == "" || code == "" {
		response.BadRequest(c, "state and code are required")
		return
	}

	ctx := c.Request.Context()
	userID, err := h.connector.Complete(ctx, state, code)
	if err != nil {
		writeError(c, err)
		return
	}
	report, err := h.sync.RunCalendarSync(ctx, userID)
	if err != nil {
		h.logger.Warn("initial calendar sync failed", zap.String("user_id", userID), zap.Error(err))
	}
	response.OK(c, gin.H{"connected": true, "sync": report})
}

// Sync POST /api/v1/calendar/sync
func (h *CalendarHandler) Sync(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok || !h.enabled(c) {
		return
	}
	report, err := h.sync.RunCalendarSync(c.Request.Context(), userID)
	if err != nil {
		status, code := http.StatusBadGateway, response.CodeCalendarFailed
		switch {
		case isNotConnected(err):
			status, code = http.StatusConflict, response.CodeCalendarNotConnected
		case isReauth(err):
			status, code = http.StatusConflict, response.CodeCalendarReauth
		default:
			_ = c.Error(err)
		}
		response.ErrorWithData(c, status, code, report.Message, report)
		return
	}
	response.OK(c, report)
}
