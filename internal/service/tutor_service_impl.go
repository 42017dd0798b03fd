package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/intelligence"
	"github.com/alexanderramin/studyplan/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type tutorService struct {
	tutor     intelligence.Tutor
	sessions  SessionService
	summaries repository.SummaryRepo
	quizzes   repository.QuizResultRepo
	logger    *zap.Logger
	observer  UseCaseObserver
}

func NewTutorService(
	tutor intelligence.Tutor,
	sessions SessionService,
	summaries repository.SummaryRepo,
	quizzes repository.QuizResultRepo,
	logger *zap.Logger,
	observers ...UseCaseObserver,
) TutorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &tutorService{
		tutor:     tutor,
		sessions:  sessions,
		summaries: summaries,
		quizzes:   quizzes,
		logger:    logger,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *tutorService) SummarizeTopic(ctx context.Context, subjectName, topic string) (text string, err error) {
	done := observe(ctx, s.observer, "summarize-topic", map[string]any{"subject": subjectName})
	defer func() { done(err) }()

	text, err = s.tutor.Summarize(ctx, subjectName, topic)
	if err != nil {
		s.logFailure("summary generation failed", err)
		return "", fmt.Errorf("%w: %w", ErrSummaryUnavailable, err)
	}
	return text, nil
}

func (s *tutorService) SessionSummary(ctx context.Context, userID, sessionID string) (*domain.StudySummary, error) {
	sess, err := s.sessions.Get(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	existing, err := s.summaries.GetBySession(ctx, sessionID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	content, err := s.SummarizeTopic(ctx, sess.SubjectName, sess.Topic)
	if err != nil {
		return nil, err
	}
	summary := &domain.StudySummary{
		ID:          uuid.New().String(),
		UserID:      userID,
		SessionID:   sess.ID,
		SubjectID:   sess.SubjectID,
		SubjectName: sess.SubjectName,
		Content:     content,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.summaries.Create(ctx, summary); err != nil {
		// A concurrent request may have stored one first.
		if stored, getErr := s.summaries.GetBySession(ctx, sessionID); getErr == nil {
			return stored, nil
		}
		return nil, err
	}
	return summary, nil
}

func (s *tutorService) ListSummaries(ctx context.Context, userID string) ([]*domain.StudySummary, error) {
	return s.summaries.ListByUser(ctx, userID)
}

func (s *tutorService) GenerateQuiz(ctx context.Context, subjectName, topic string) (questions []domain.QuizQuestion, err error) {
	fields := map[string]any{"subject": subjectName}
	done := observe(ctx, s.observer, "generate-quiz", fields)
	defer func() { done(err) }()

	questions, err = s.tutor.Quiz(ctx, subjectName, topic)
	if err != nil {
		s.logFailure("quiz generation failed", err)
		return nil, fmt.Errorf("%w: %w", ErrQuizUnavailable, err)
	}
	fields["questions"] = len(questions)
	return questions, nil
}

func (s *tutorService) SessionQuiz(ctx context.Context, userID, sessionID string) (*QuizDraft, error) {
	sess, err := s.sessions.Get(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	questions, err := s.GenerateQuiz(ctx, sess.SubjectName, sess.Topic)
	if err != nil {
		return nil, err
	}
	return &QuizDraft{Session: sess, Questions: questions}, nil
}

// SubmitQuiz scores answers positionally; extra answers are ignored and
// missing ones count as unanswered.
func (s *tutorService) SubmitQuiz(ctx context.Context, userID, sessionID string, questions []domain.QuizQuestion, answers []*int) (*domain.QuizResult, error) {
	if _, err := s.sessions.Get(ctx, userID, sessionID); err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: quiz has no questions", ErrInvalidSettings)
	}
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("%w: question %d: %w", ErrInvalidSettings, i+1, err)
		}
	}

	padded := make([]*int, len(questions))
	copy(padded, answers)

	result := &domain.QuizResult{
		ID:             uuid.New().String(),
		UserID:         userID,
		SessionID:      sessionID,
		Questions:      questions,
		UserAnswers:    padded,
		Score:          domain.ScoreAnswers(questions, padded),
		TotalQuestions: len(questions),
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.quizzes.Create(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *tutorService) GetResult(ctx context.Context, userID, id string) (*domain.QuizResult, error) {
	result, err := s.quizzes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if result.UserID != userID {
		return nil, ErrForbidden
	}
	return result, nil
}

func (s *tutorService) logFailure(msg string, err error) {
	fields := []zap.Field{zap.Error(err)}
	var genErr *intelligence.GenerationError
	if errors.As(err, &genErr) && genErr.Raw != "" {
		fields = append(fields, zap.String("stage", string(genErr.Stage)), zap.String("raw", genErr.Raw))
	}
	s.logger.Error(msg, fields...)
}
