package handler

import (
	"time"

	"github.com/alexanderramin/studyplan/internal/api/response"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/service"
	"github.com/gin-gonic/gin"
)

type SubjectHandler struct {
	subjects     service.SubjectService
	availability service.AvailabilityService
}

func NewSubjectHandler(subjects service.SubjectService, availability service.AvailabilityService) *SubjectHandler {
	return &SubjectHandler{subjects: subjects, availability: availability}
}

type subjectRequest struct {
	Name        string     `json:"name" binding:"required,max=255"`
	Description string     `json:"description"`
	Difficulty  int        `json:"difficulty" binding:"omitempty,min=1,max=3"`
	Importance  int        `json:"importance" binding:"omitempty,min=1,max=3"`
	ExamAt      *time.Time `json:"exam_at"`
}

func (r subjectRequest) apply(s *domain.Subject) {
	s.Name = r.Name
	s.Description = r.Description
	s.Difficulty = domain.Difficulty(r.Difficulty)
	s.Importance = domain.Importance(r.Importance)
	s.ExamAt = r.ExamAt
}

// List GET /api/v1/subjects
func (h *SubjectHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	subjects, err := h.subjects.List(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, gin.H{"list": subjects})
}

// Create POST /api/v1/subjects
func (h *SubjectHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req subjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid subject")
		return
	}
	subject := &domain.Subject{UserID: userID}
	req.apply(subject)
	if err := h.subjects.Create(c.Request.Context(), subject); err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, subject)
}

// Get GET /api/v1/subjects/:id
func (h *SubjectHandler) Get(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	subject, err := h.subjects.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, subject)
}

// Update PUT /api/v1/subjects/:id
func (h *SubjectHandler) Update(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req subjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid subject")
		return
	}
	existing, err := h.subjects.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	req.apply(existing)
	if existing.Difficulty == 0 {
		existing.Difficulty = domain.DifficultyMedium
	}
	if existing.Importance == 0 {
		existing.Importance = domain.ImportanceMedium
	}
	if err := h.subjects.Update(c.Request.Context(), existing); err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, existing)
}

// Delete DELETE /api/v1/subjects/:id
func (h *SubjectHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	if err := h.subjects.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, nil)
}

type slotView struct {
	Day   domain.Weekday `json:"day"`
	Hour  int            `json:"hour"`
	Label string         `json:"label"`
}

type availabilityRequest struct {
	Slots []struct {
		Day  int `json:"day" binding:"min=0,max=6"`
		Hour int `json:"hour" binding:"min=0,max=23"`
	} `json:"slots" binding:"dive"`
}

// ListAvailability GET /api/v1/availability
func (h *SubjectHandler) ListAvailability(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	slots, err := h.availability.List(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	views := make([]slotView, 0, len(slots))
	for _, s := range slots {
		views = append(views, slotView{Day: s.Day, Hour: s.Hour, Label: s.Label()})
	}
	response.OK(c, gin.H{"list": views})
}

// ReplaceAvailability PUT /api/v1/availability
func (h *SubjectHandler) ReplaceAvailability(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req availabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid availability")
		return
	}
	slots := make([]domain.AvailabilitySlot, 0, len(req.Slots))
	for _, s := range req.Slots {
		slots = append(slots, domain.AvailabilitySlot{UserID: userID, Day: domain.Weekday(s.Day), Hour: s.Hour})
	}
	if err := h.availability.Replace(c.Request.Context(), userID, slots); err != nil {
		writeError(c, err)
		return
	}
	h.ListAvailability(c)
}
