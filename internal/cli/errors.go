package cli

import (
	"errors"

	"github.com/alexanderramin/studyplan/internal/calendar"
	"github.com/alexanderramin/studyplan/internal/repository"
	"github.com/alexanderramin/studyplan/internal/service"
)

var (
	errGeneration = errors.New("could not generate a schedule, please try again")
	errNotFound   = errors.New("not found")
)

// friendlyError hides oracle and parser diagnostics; they are already in the
// log. Validation errors pass through since they describe the user's input.
func friendlyError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, service.ErrOracleFailure), errors.Is(err, service.ErrExtractionFailure), errors.Is(err, service.ErrEmptyResult):
		return errGeneration
	case errors.Is(err, service.ErrNoSubjects):
		return errors.New("add a subject first: studyplan subject add <name>")
	case errors.Is(err, service.ErrQuizUnavailable):
		return errors.New("quiz unavailable, please try again")
	case errors.Is(err, service.ErrSummaryUnavailable):
		return errors.New("summary unavailable, please try again")
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, service.ErrForbidden):
		return errNotFound
	case errors.Is(err, calendar.ErrNotConnected):
		return errors.New("google calendar is not connected: run studyplan calendar connect")
	case errors.Is(err, calendar.ErrReauthRequired):
		return errors.New("google calendar access expired: run studyplan calendar connect")
	case errors.Is(err, calendar.ErrStateNotFound):
		return errors.New("authorization request expired: run studyplan calendar connect again")
	}
	return err
}
