package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/alexanderramin/studyplan/internal/api/response"
	"github.com/alexanderramin/studyplan/internal/service"
	"github.com/gin-gonic/gin"
)

type ScheduleHandler struct {
	planner  service.PlannerService
	settings service.SettingsService
	env      Env
}

func NewScheduleHandler(planner service.PlannerService, settings service.SettingsService, env Env) *ScheduleHandler {
	return &ScheduleHandler{planner: planner, settings: settings, env: env}
}

type generateRequest struct {
	SessionDurationMin *int `json:"session_duration_min"`
	BreakDurationMin   *int `json:"break_duration_min"`
}

// Generate POST /api/v1/schedule/generate
//
// With a body the durations are saved to settings first. Without one the
// stored settings are used as they are.
func (h *ScheduleHandler) Generate(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, "invalid request")
		return
	}
	ctx := c.Request.Context()
	settings, err := h.settings.Get(ctx, userID)
	if err != nil {
		writeError(c, err)
		return
	}

	var result *service.ReconcileResult
	if req.SessionDurationMin != nil || req.BreakDurationMin != nil {
		if req.SessionDurationMin != nil {
			settings.SessionDurationMin = *req.SessionDurationMin
		}
		if req.BreakDurationMin != nil {
			settings.BreakDurationMin = *req.BreakDurationMin
		}
		result, err = h.planner.GenerateWithSettings(ctx, settings, h.env.now(), h.env.loc())
	} else {
		result, err = h.planner.RunReconciliation(ctx, service.ReconcileRequest{
			UserID:   userID,
			Config:   settings.ScheduleConfig(),
			Now:      h.env.now(),
			Location: h.env.loc(),
		})
	}
	if errors.Is(err, service.ErrEmptyResult) && result != nil {
		response.ErrorWithData(c, http.StatusUnprocessableEntity, response.CodeEmptySchedule, msgGenerationFailed, result)
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, result)
}
