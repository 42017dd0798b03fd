package handler

import (
	"github.com/alexanderramin/studyplan/internal/api/response"
	"github.com/alexanderramin/studyplan/internal/service"
	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	settings service.SettingsService
}

func NewSettingsHandler(settings service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// settingsRequest uses pointers so omitted fields keep their stored value.
type settingsRequest struct {
	SessionDurationMin   *int    `json:"session_duration_min"`
	BreakDurationMin     *int    `json:"break_duration_min"`
	NotificationsEnabled *bool   `json:"notifications_enabled"`
	Bio                  *string `json:"bio"`
	AcademicGoal         *string `json:"academic_goal"`
}

// Get GET /api/v1/settings
func (h *SettingsHandler) Get(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	s, err := h.settings.Get(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, s)
}

// Update PUT /api/v1/settings
func (h *SettingsHandler) Update(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid settings")
		return
	}
	s, err := h.settings.Get(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	if req.SessionDurationMin != nil {
		s.SessionDurationMin = *req.SessionDurationMin
	}
	if req.BreakDurationMin != nil {
		s.BreakDurationMin = *req.BreakDurationMin
	}
	if req.NotificationsEnabled != nil {
		s.NotificationsEnabled = *req.NotificationsEnabled
	}
	if req.Bio != nil {
		s.Bio = *req.Bio
	}
	if req.AcademicGoal != nil {
		s.AcademicGoal = *req.AcademicGoal
	}
	if err := h.settings.Save(c.Request.Context(), s); err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, s)
}
