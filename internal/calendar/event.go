package calendar

import (
	"context"
	"time"

	"github.com/alexanderramin/studyplan/internal/domain"
)

const (
	DefaultTitlePrefix     = "Study: "
	DefaultReminderMinutes = 10
	createdByLine          = "(Created by Study Planner)"
)

// Event is the payload pushed to the remote calendar.
type Event struct {
	Summary         string
	Description     string
	Start           time.Time
	End             time.Time
	ReminderMinutes int
}

// EventOptions controls how sessions are rendered as events.
type EventOptions struct {
	TitlePrefix     string
	ReminderMinutes int
}

// EventFromSession renders s in loc.
func EventFromSession(s *domain.StudySession, opts EventOptions, loc *time.Location) Event {
	return Event{
		Summary:         opts.TitlePrefix + s.SubjectName,
		Description:     "Topic: " + s.Topic + "\n" + createdByLine,
		Start:           s.StartAt.In(loc),
		End:             s.EndAt.In(loc),
		ReminderMinutes: opts.ReminderMinutes,
	}
}

// Calendar is the remote calendar port.
type Calendar interface {
	// CreateEvent returns the remote event id.
	CreateEvent(ctx context.Context, cred *domain.Credential, ev Event) (string, error)
	DeleteEvent(ctx context.Context, cred *domain.Credential, eventID string) error
	// RefreshCredential returns a new credential or ErrReauthRequired when the
	// grant was revoked.
	RefreshCredential(ctx context.Context, cred *domain.Credential) (*domain.Credential, error)
}

// Authorizer runs the OAuth consent flow.
type Authorizer interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, userID, code string) (*domain.Credential, error)
}
