package handler

import (
	"github.com/alexanderramin/studyplan/internal/api/response"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/service"
	"github.com/gin-gonic/gin"
)

type TutorHandler struct {
	tutor service.TutorService
}

func NewTutorHandler(tutor service.TutorService) *TutorHandler {
	return &TutorHandler{tutor: tutor}
}

// SessionSummary GET /api/v1/sessions/:id/summary
func (h *TutorHandler) SessionSummary(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	summary, err := h.tutor.SessionSummary(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, summary)
}

// ListSummaries GET /api/v1/summaries
func (h *TutorHandler) ListSummaries(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	list, err := h.tutor.ListSummaries(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// SessionQuiz GET /api/v1/sessions/:id/quiz
func (h *TutorHandler) SessionQuiz(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	draft, err := h.tutor.SessionQuiz(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, draft)
}

type submitQuizRequest struct {
	SessionID string                `json:"session_id" binding:"required"`
	Questions []domain.QuizQuestion `json:"questions" binding:"required,min=1"`
	Answers   []*int                `json:"answers"`
}

type quizResultView struct {
	*domain.QuizResult
	Percentage int                   `json:"percentage"`
	Solutions  []domain.QuizSolution `json:"solutions"`
}

func newQuizResultView(r *domain.QuizResult) quizResultView {
	return quizResultView{QuizResult: r, Percentage: r.Percentage(), Solutions: r.Solutions()}
}

// SubmitQuiz POST /api/v1/quizzes
func (h *TutorHandler) SubmitQuiz(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req submitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid quiz submission")
		return
	}
	result, err := h.tutor.SubmitQuiz(c.Request.Context(), userID, req.SessionID, req.Questions, req.Answers)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, newQuizResultView(result))
}

// GetResult GET /api/v1/quizzes/:id
func (h *TutorHandler) GetResult(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	result, err := h.tutor.GetResult(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, newQuizResultView(result))
}
