package handler

import (
	"errors"
	"net/http"

	"github.com/alexanderramin/studyplan/internal/api/response"
	"github.com/alexanderramin/studyplan/internal/calendar"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/repository"
	"github.com/alexanderramin/studyplan/internal/service"
	"github.com/gin-gonic/gin"
)

// msgGenerationFailed is all a client learns about oracle or parsing trouble.
const msgGenerationFailed = "could not generate a schedule, please try again"

// writeError maps service errors to responses. Unknown errors are attached
// to the context for the logger and surface as a bare 500.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, service.ErrForbidden):
		response.NotFound(c, "not found")
	case errors.Is(err, service.ErrInvalidSettings), errors.Is(err, domain.ErrValidation):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrNoSubjects):
		response.Error(c, http.StatusUnprocessableEntity, response.CodeNoSubjects, "add a subject before generating a schedule")
	case errors.Is(err, service.ErrOracleFailure), errors.Is(err, service.ErrExtractionFailure):
		_ = c.Error(err)
		response.Error(c, http.StatusBadGateway, response.CodeGenerationFailed, msgGenerationFailed)
	case errors.Is(err, service.ErrEmptyResult):
		response.Error(c, http.StatusUnprocessableEntity, response.CodeEmptySchedule, msgGenerationFailed)
	case errors.Is(err, service.ErrQuizUnavailable):
		_ = c.Error(err)
		response.Error(c, http.StatusServiceUnavailable, response.CodeTutorUnavailable, "quiz unavailable, please try again")
	case errors.Is(err, service.ErrSummaryUnavailable):
		_ = c.Error(err)
		response.Error(c, http.StatusServiceUnavailable, response.CodeTutorUnavailable, "summary unavailable, please try again")
	case errors.Is(err, calendar.ErrNotConnected):
		response.Error(c, http.StatusConflict, response.CodeCalendarNotConnected, "google calendar is not connected")
	case errors.Is(err, calendar.ErrReauthRequired):
		response.Error(c, http.StatusConflict, response.CodeCalendarReauth, "google calendar access expired, please reconnect")
	case errors.Is(err, calendar.ErrStateNotFound):
		response.Error(c, http.StatusBadRequest, response.CodeCalendarState, "authorization request expired, please reconnect")
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}

func isNotConnected(err error) bool { return errors.Is(err, calendar.ErrNotConnected) }

func isReauth(err error) bool { return errors.Is(err, calendar.ErrReauthRequired) }
