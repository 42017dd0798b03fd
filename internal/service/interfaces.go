package service

import (
	"context"
	"time"

	"github.com/alexanderramin/studyplan/internal/domain"
)

type UserService interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

type SettingsService interface {
	// Get returns the defaults when the user never saved settings.
	Get(ctx context.Context, userID string) (*domain.UserSettings, error)
	Save(ctx context.Context, s *domain.UserSettings) error
}

type SubjectService interface {
	Create(ctx context.Context, s *domain.Subject) error
	Get(ctx context.Context, userID, id string) (*domain.Subject, error)
	List(ctx context.Context, userID string) ([]*domain.Subject, error)
	Update(ctx context.Context, s *domain.Subject) error
	Delete(ctx context.Context, userID, id string) error
}

type AvailabilityService interface {
	List(ctx context.Context, userID string) ([]domain.AvailabilitySlot, error)
	// Replace swaps the user's whole weekly grid in one transaction.
	Replace(ctx context.Context, userID string, slots []domain.AvailabilitySlot) error
}

// ReconcileRequest is one planner run for one user.
type ReconcileRequest struct {
	UserID   string
	Config   domain.ScheduleConfig
	Now      time.Time
	Location *time.Location
}

// ResolutionWarning explains why one proposed session was dropped.
type ResolutionWarning struct {
	Index       int    `json:"index"`
	SubjectName string `json:"subject_name"`
	Reason      string `json:"reason"`
}

// ReconcileResult summarizes a completed run. Warnings stay server side;
// callers only ever see the Skipped count.
type ReconcileResult struct {
	Sessions      []*domain.StudySession `json:"sessions"`
	Warnings      []ResolutionWarning    `json:"-"`
	Skipped       int                    `json:"skipped"`
	Replaced      int64                  `json:"replaced"`
	RemoteDeleted int                    `json:"remote_deleted"`
	RemoteFailed  int                    `json:"remote_failed"`
	Model         string                 `json:"model,omitempty"`
}

type PlannerService interface {
	// RunReconciliation asks the oracle for a schedule and replaces the
	// user's pending sessions with the sessions that resolve.
	RunReconciliation(ctx context.Context, req ReconcileRequest) (*ReconcileResult, error)
	// GenerateWithSettings saves settings, then runs reconciliation with them.
	GenerateWithSettings(ctx context.Context, settings *domain.UserSettings, now time.Time, loc *time.Location) (*ReconcileResult, error)
}

// PushReport counts the outcome of one push pass.
type PushReport struct {
	Synced int `json:"synced"`
	Failed int `json:"failed"`
}

// SyncReport is the user-facing outcome of a calendar sync.
type SyncReport struct {
	PushReport
	Message string `json:"message"`
}

type SyncService interface {
	EnsureValidCredential(ctx context.Context, userID string) (*domain.Credential, error)
	PushPending(ctx context.Context, userID string) (PushReport, error)
	// DeleteRemote never fails; it reports whether the event was removed.
	DeleteRemote(ctx context.Context, userID, eventID string) bool
	RunCalendarSync(ctx context.Context, userID string) (SyncReport, error)
}

type CalendarConnector interface {
	AuthURL(ctx context.Context, userID string) (string, error)
	// Complete returns the user the state was issued to.
	Complete(ctx context.Context, state, code string) (string, error)
}

// WeekDay is one column of the weekly grid.
type WeekDay struct {
	Date     time.Time              `json:"date"`
	Sessions []*domain.StudySession `json:"sessions"`
}

// Week is a Sunday-start week of sessions.
type Week struct {
	Start time.Time `json:"start"`
	Days  []WeekDay `json:"days"`
}

type SessionService interface {
	Get(ctx context.Context, userID, id string) (*domain.StudySession, error)
	ListAll(ctx context.Context, userID string) ([]*domain.StudySession, error)
	ListUpcoming(ctx context.Context, userID string, now time.Time) ([]*domain.StudySession, error)
	ListWeek(ctx context.Context, userID string, day time.Time, loc *time.Location) (*Week, error)
	ToggleComplete(ctx context.Context, userID, id string) (*domain.StudySession, error)
	MarkComplete(ctx context.Context, userID, id string) error
}

// UpcomingExam is a subject with an exam ahead.
type UpcomingExam struct {
	Subject  *domain.Subject `json:"subject"`
	DaysLeft int             `json:"days_left"`
}

// Dashboard is the home screen summary.
type Dashboard struct {
	Today         []*domain.StudySession `json:"today"`
	DailyProgress int                    `json:"daily_progress"`
	Next          *domain.StudySession   `json:"next,omitempty"`
	Readiness     int                    `json:"readiness"`
	SubjectCount  int                    `json:"subject_count"`
	SessionCount  int                    `json:"session_count"`
	UpcomingExams []UpcomingExam         `json:"upcoming_exams"`
}

type DashboardService interface {
	Get(ctx context.Context, userID string, now time.Time, loc *time.Location) (*Dashboard, error)
}

// QuizDraft is a generated quiz not yet answered.
type QuizDraft struct {
	Session   *domain.StudySession  `json:"session"`
	Questions []domain.QuizQuestion `json:"questions"`
}

type TutorService interface {
	SummarizeTopic(ctx context.Context, subjectName, topic string) (string, error)
	// SessionSummary returns the stored summary, generating it on first use.
	SessionSummary(ctx context.Context, userID, sessionID string) (*domain.StudySummary, error)
	ListSummaries(ctx context.Context, userID string) ([]*domain.StudySummary, error)
	GenerateQuiz(ctx context.Context, subjectName, topic string) ([]domain.QuizQuestion, error)
	SessionQuiz(ctx context.Context, userID, sessionID string) (*QuizDraft, error)
	SubmitQuiz(ctx context.Context, userID, sessionID string, questions []domain.QuizQuestion, answers []*int) (*domain.QuizResult, error)
	GetResult(ctx context.Context, userID, id string) (*domain.QuizResult, error)
}
