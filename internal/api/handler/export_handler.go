package handler

import (
	"bytes"
	"net/http"

	"github.com/alexanderramin/studyplan/internal/export"
	"github.com/alexanderramin/studyplan/internal/service"
	"github.com/gin-gonic/gin"
)

const (
	contentTypeICS  = "text/calendar; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type ExportHandler struct {
	sessions service.SessionService
	env      Env
}

func NewExportHandler(sessions service.SessionService, env Env) *ExportHandler {
	return &ExportHandler{sessions: sessions, env: env}
}

// ICS GET /api/v1/export.ics
func (h *ExportHandler) ICS(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	sessions, err := h.sessions.ListAll(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	var buf bytes.Buffer
	if err := export.WriteICS(&buf, sessions, h.env.loc(), h.env.Export); err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="study-schedule.ics"`)
	c.Data(http.StatusOK, contentTypeICS, buf.Bytes())
}

// XLSX GET /api/v1/export.xlsx
func (h *ExportHandler) XLSX(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	sessions, err := h.sessions.ListAll(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, sessions, h.env.loc()); err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="study-schedule.xlsx"`)
	c.Data(http.StatusOK, contentTypeXLSX, buf.Bytes())
}
