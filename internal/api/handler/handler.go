package handler

import (
	"time"

	"github.com/alexanderramin/studyplan/internal/export"
	"github.com/alexanderramin/studyplan/internal/service"
	"go.uber.org/zap"
)

// Services is everything the HTTP layer calls. Sync and Connector are nil
// when Google Calendar is not configured.
type Services struct {
	Subjects     service.SubjectService
	Availability service.AvailabilityService
	Settings     service.SettingsService
	Planner      service.PlannerService
	Sessions     service.SessionService
	Dashboard    service.DashboardService
	Tutor        service.TutorService
	Sync         service.SyncService
	Connector    service.CalendarConnector
}

// Env carries request-independent context: the planner zone, the clock and
// export formatting.
type Env struct {
	Location *time.Location
	Now      func() time.Time
	Export   export.Options
	Logger   *zap.Logger
}

func (e Env) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e Env) loc() *time.Location {
	if e.Location != nil {
		return e.Location
	}
	return time.UTC
}

// Handler groups the handlers registered by the router.
type Handler struct {
	Subject  *SubjectHandler
	Settings *SettingsHandler
	Schedule *ScheduleHandler
	Session  *SessionHandler
	Tutor    *TutorHandler
	Calendar *CalendarHandler
	Export   *ExportHandler
}

func NewHandler(svc Services, env Env) *Handler {
	if env.Logger == nil {
		env.Logger = zap.NewNop()
	}
	return &Handler{
		Subject:  NewSubjectHandler(svc.Subjects, svc.Availability),
		Settings: NewSettingsHandler(svc.Settings),
		Schedule: NewScheduleHandler(svc.Planner, svc.Settings, env),
		Session:  NewSessionHandler(svc.Sessions, svc.Dashboard, env),
		Tutor:    NewTutorHandler(svc.Tutor),
		Calendar: NewCalendarHandler(svc.Connector, svc.Sync, env.Logger),
		Export:   NewExportHandler(svc.Sessions, env),
	}
}
