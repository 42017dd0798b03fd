package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/google/uuid"
)

var testEmailCounter atomic.Int64

// Fixed reference instant used by tests that need a stable "now".
var RefNow = time.Date(2025, 1, 9, 14, 30, 0, 0, time.UTC)

// User options
type UserOption func(*domain.User)

func WithEmail(email string) UserOption {
	return func(u *domain.User) {
		u.Email = email
	}
}

func NewTestUser(opts ...UserOption) *domain.User {
	n := testEmailCounter.Add(1)
	u := &domain.User{
		ID:          uuid.New().String(),
		Email:       fmt.Sprintf("student%02d@example.com", n),
		DisplayName: fmt.Sprintf("Student %d", n),
		CreatedAt:   time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Subject options
type SubjectOption func(*domain.Subject)

func WithDifficulty(d domain.Difficulty) SubjectOption {
	return func(s *domain.Subject) {
		s.Difficulty = d
	}
}

func WithExamAt(t time.Time) SubjectOption {
	return func(s *domain.Subject) {
		s.ExamAt = &t
	}
}

func WithSubjectCreatedAt(t time.Time) SubjectOption {
	return func(s *domain.Subject) {
		s.CreatedAt = t
	}
}

func WithDescription(d string) SubjectOption {
	return func(s *domain.Subject) {
		s.Description = d
	}
}

func NewTestSubject(userID, name string, opts ...SubjectOption) *domain.Subject {
	s := &domain.Subject{
		ID:         uuid.New().String(),
		UserID:     userID,
		Name:       name,
		Difficulty: domain.DifficultyMedium,
		Importance: domain.ImportanceMedium,
		CreatedAt:  time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StudySession options
type SessionOption func(*domain.StudySession)

func WithStart(t time.Time, d time.Duration) SessionOption {
	return func(s *domain.StudySession) {
		s.StartAt = t
		s.EndAt = t.Add(d)
	}
}

func WithTopic(topic string) SessionOption {
	return func(s *domain.StudySession) {
		s.Topic = topic
	}
}

func WithCompleted() SessionOption {
	return func(s *domain.StudySession) {
		s.Completed = true
	}
}

func WithExternalEvent(id string) SessionOption {
	return func(s *domain.StudySession) {
		s.MarkSynced(id)
	}
}

func NewTestStudySession(subject *domain.Subject, opts ...SessionOption) *domain.StudySession {
	start := time.Now().UTC().Truncate(time.Hour).Add(time.Hour)
	s := &domain.StudySession{
		ID:          uuid.New().String(),
		UserID:      subject.UserID,
		SubjectID:   subject.ID,
		SubjectName: subject.Name,
		StartAt:     start,
		EndAt:       start.Add(time.Hour),
		Topic:       "Review",
		CreatedAt:   time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func NewTestCredential(userID string, expiry time.Time) *domain.Credential {
	return &domain.Credential{
		UserID:       userID,
		AccessToken:  "access-" + userID,
		RefreshToken: "refresh-" + userID,
		TokenType:    "Bearer",
		Expiry:       expiry,
		Scopes:       []string{"https://www.googleapis.com/auth/calendar.events"},
	}
}

func NewTestQuestions(n int) []domain.QuizQuestion {
	qs := make([]domain.QuizQuestion, n)
	for i := range qs {
		qs[i] = domain.QuizQuestion{
			Question:     fmt.Sprintf("Question %d?", i+1),
			Options:      []string{"A", "B", "C", "D"},
			CorrectIndex: i % domain.QuizOptionCount,
		}
	}
	return qs
}
