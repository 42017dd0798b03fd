package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/studyplan/internal/domain"
)

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

type SettingsRepo interface {
	Get(ctx context.Context, userID string) (*domain.UserSettings, error)
	Upsert(ctx context.Context, s *domain.UserSettings) error
}

type SubjectRepo interface {
	Create(ctx context.Context, s *domain.Subject) error
	GetByID(ctx context.Context, id string) (*domain.Subject, error)
	// ListByUser orders by created_at then id so earliest-created wins name ties.
	ListByUser(ctx context.Context, userID string) ([]*domain.Subject, error)
	ListUpcomingExams(ctx context.Context, userID string, since time.Time) ([]*domain.Subject, error)
	Update(ctx context.Context, s *domain.Subject) error
	Delete(ctx context.Context, id string) error
}

type AvailabilityRepo interface {
	ListByUser(ctx context.Context, userID string) ([]domain.AvailabilitySlot, error)
	DeleteByUser(ctx context.Context, userID string) error
	Create(ctx context.Context, slot *domain.AvailabilitySlot) error
}

type StudySessionRepo interface {
	BulkCreate(ctx context.Context, sessions []*domain.StudySession) error
	GetByID(ctx context.Context, id string) (*domain.StudySession, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.StudySession, error)
	ListInRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.StudySession, error)
	ListUpcoming(ctx context.Context, userID string, since time.Time, limit int) ([]*domain.StudySession, error)
	ListPending(ctx context.Context, userID string) ([]*domain.StudySession, error)
	ListUnsynced(ctx context.Context, userID string) ([]*domain.StudySession, error)
	DeletePending(ctx context.Context, userID string) (int64, error)
	MarkSynced(ctx context.Context, id, externalEventID string) error
	// ClearSync marks a session unsynced and forgets its remote event.
	ClearSync(ctx context.Context, id string) error
	SetCompleted(ctx context.Context, id string, completed bool) error
	CountByUser(ctx context.Context, userID string) (total, completed int, err error)
}

type CredentialRepo interface {
	Get(ctx context.Context, userID string) (*domain.Credential, error)
	Upsert(ctx context.Context, c *domain.Credential) error
	Delete(ctx context.Context, userID string) error
}

type SummaryRepo interface {
	Create(ctx context.Context, s *domain.StudySummary) error
	GetBySession(ctx context.Context, sessionID string) (*domain.StudySummary, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.StudySummary, error)
}

type QuizResultRepo interface {
	Create(ctx context.Context, r *domain.QuizResult) error
	GetByID(ctx context.Context, id string) (*domain.QuizResult, error)
	ListBySession(ctx context.Context, sessionID string) ([]*domain.QuizResult, error)
}
