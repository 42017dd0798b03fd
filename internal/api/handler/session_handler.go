package handler

import (
	"time"

	"github.com/alexanderramin/studyplan/internal/api/response"
	"github.com/alexanderramin/studyplan/internal/service"
	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	sessions  service.SessionService
	dashboard service.DashboardService
	env       Env
}

func NewSessionHandler(sessions service.SessionService, dashboard service.DashboardService, env Env) *SessionHandler {
	return &SessionHandler{sessions: sessions, dashboard: dashboard, env: env}
}

// List GET /api/v1/sessions
func (h *SessionHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	list, err := h.sessions.ListUpcoming(c.Request.Context(), userID, h.env.now())
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// Week GET /api/v1/sessions/week?date=2006-01-02
func (h *SessionHandler) Week(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	loc := h.env.loc()
	day := h.env.now().In(loc)
	if raw := c.Query("date"); raw != "" {
		d, err := time.ParseInLocation(time.DateOnly, raw, loc)
		if err != nil {
			response.BadRequest(c, "date must be YYYY-MM-DD")
			return
		}
		day = d
	}
	week, err := h.sessions.ListWeek(c.Request.Context(), userID, day, loc)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, week)
}

// Toggle POST /api/v1/sessions/:id/toggle
func (h *SessionHandler) Toggle(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	sess, err := h.sessions.ToggleComplete(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, sess)
}

// Complete POST /api/v1/sessions/:id/complete
func (h *SessionHandler) Complete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	if err := h.sessions.MarkComplete(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, gin.H{"id": c.Param("id"), "completed": true})
}

// Dashboard GET /api/v1/dashboard
func (h *SessionHandler) Dashboard(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	d, err := h.dashboard.Get(c.Request.Context(), userID, h.env.now(), h.env.loc())
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, d)
}
