package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/studyplan/internal/calendar"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgNotConnected   = "Google Calendar is not connected."
	msgReauthRequired = "Google Calendar access has expired. Please reconnect."
	msgNothingToSync  = "Everything is already in sync."
)

type syncService struct {
	creds    repository.CredentialRepo
	sessions repository.StudySessionRepo
	cal      calendar.Calendar
	events   calendar.EventOptions
	loc      *time.Location
	now      func() time.Time
	logger   *zap.Logger
	observer UseCaseObserver
}

// NewSyncService mirrors sessions to cal. Event times are rendered in loc.
func NewSyncService(
	creds repository.CredentialRepo,
	sessions repository.StudySessionRepo,
	cal calendar.Calendar,
	events calendar.EventOptions,
	loc *time.Location,
	logger *zap.Logger,
	observers ...UseCaseObserver,
) SyncService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &syncService{
		creds:    creds,
		sessions: sessions,
		cal:      cal,
		events:   events,
		loc:      loc,
		now:      time.Now,
		logger:   logger,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *syncService) EnsureValidCredential(ctx context.Context, userID string) (*domain.Credential, error) {
	cred, err := s.creds.Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, calendar.ErrNotConnected
	}
	if err != nil {
		return nil, fmt.Errorf("loading credential: %w", err)
	}
	if !cred.Expired(s.now()) {
		return cred, nil
	}

	next, err := s.cal.RefreshCredential(ctx, cred)
	if errors.Is(err, calendar.ErrReauthRequired) {
		s.forget(ctx, userID, err)
		return nil, calendar.ErrReauthRequired
	}
	if err != nil {
		return nil, err
	}
	next.UpdatedAt = s.now().UTC()
	if err := s.creds.Upsert(ctx, next); err != nil {
		return nil, fmt.Errorf("saving refreshed credential: %w", err)
	}
	return next, nil
}

// forget drops a credential that can no longer be used.
func (s *syncService) forget(ctx context.Context, userID string, cause error) {
	s.logger.Warn("calendar grant revoked, removing credential", zap.String("user_id", userID), zap.Error(cause))
	if err := s.creds.Delete(ctx, userID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.logger.Error("removing credential", zap.String("user_id", userID), zap.Error(err))
	}
}

func (s *syncService) PushPending(ctx context.Context, userID string) (PushReport, error) {
	var report PushReport
	cred, err := s.EnsureValidCredential(ctx, userID)
	if err != nil {
		return report, err
	}

	unsynced, err := s.sessions.ListUnsynced(ctx, userID)
	if err != nil {
		return report, fmt.Errorf("loading unsynced sessions: %w", err)
	}

	for _, sess := range unsynced {
		id, err := s.cal.CreateEvent(ctx, cred, calendar.EventFromSession(sess, s.events, s.loc))
		if errors.Is(err, calendar.ErrReauthRequired) {
			s.forget(ctx, userID, err)
			return report, calendar.ErrReauthRequired
		}
		if err != nil {
			s.logger.Warn("calendar push failed", zap.String("session_id", sess.ID), zap.Error(err))
			report.Failed++
			continue
		}
		if err := s.sessions.MarkSynced(ctx, sess.ID, id); err != nil {
			s.logger.Error("recording synced session", zap.String("session_id", sess.ID), zap.Error(err))
			report.Failed++
			continue
		}
		report.Synced++
	}
	return report, nil
}

func (s *syncService) DeleteRemote(ctx context.Context, userID, eventID string) bool {
	cred, err := s.EnsureValidCredential(ctx, userID)
	if err != nil {
		s.logger.Warn("calendar delete skipped", zap.String("event_id", eventID), zap.Error(err))
		return false
	}
	if err := s.cal.DeleteEvent(ctx, cred, eventID); err != nil {
		s.logger.Warn("calendar delete failed", zap.String("event_id", eventID), zap.Error(err))
		return false
	}
	return true
}

func (s *syncService) RunCalendarSync(ctx context.Context, userID string) (report SyncReport, err error) {
	fields := map[string]any{"user_id": userID}
	done := observe(ctx, s.observer, "calendar-sync", fields)
	defer func() { done(err) }()

	push, err := s.PushPending(ctx, userID)
	report.PushReport = push
	fields["synced"] = push.Synced
	fields["failed"] = push.Failed

	switch {
	case errors.Is(err, calendar.ErrNotConnected):
		report.Message = msgNotConnected
	case errors.Is(err, calendar.ErrReauthRequired):
		report.Message = msgReauthRequired
	case err != nil:
		report.Message = "Calendar sync failed. Please try again."
	case push.Synced == 0 && push.Failed == 0:
		report.Message = msgNothingToSync
	case push.Failed > 0:
		report.Message = fmt.Sprintf("Synced %d sessions to Google Calendar, %d failed.", push.Synced, push.Failed)
	default:
		report.Message = fmt.Sprintf("Synced %d sessions to Google Calendar.", push.Synced)
	}
	return report, err
}

type calendarConnector struct {
	auth   calendar.Authorizer
	states calendar.StateStore
	creds  repository.CredentialRepo
	newID  func() string
}

// NewCalendarConnector issues OAuth states from newID, or random UUIDs when nil.
func NewCalendarConnector(auth calendar.Authorizer, states calendar.StateStore, creds repository.CredentialRepo, newID func() string) CalendarConnector {
	if newID == nil {
		newID = func() string { return uuid.New().String() }
	}
	return &calendarConnector{auth: auth, states: states, creds: creds, newID: newID}
}

func (c *calendarConnector) AuthURL(ctx context.Context, userID string) (string, error) {
	state := c.newID()
	if err := c.states.Put(ctx, state, userID, calendar.StateTTL); err != nil {
		return "", fmt.Errorf("storing oauth state: %w", err)
	}
	return c.auth.AuthURL(state), nil
}

func (c *calendarConnector) Complete(ctx context.Context, state, code string) (string, error) {
	userID, err := c.states.Take(ctx, state)
	if err != nil {
		return "", err
	}
	cred, err := c.auth.Exchange(ctx, userID, code)
	if err != nil {
		return "", err
	}
	if err := c.creds.Upsert(ctx, cred); err != nil {
		return "", fmt.Errorf("saving credential: %w", err)
	}
	return userID, nil
}
