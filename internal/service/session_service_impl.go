package service

import (
	"context"
	"time"

	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/repository"
)

const upcomingLimit = 20

type sessionService struct {
	sessions repository.StudySessionRepo
}

func NewSessionService(sessions repository.StudySessionRepo) SessionService {
	return &sessionService{sessions: sessions}
}

func (s *sessionService) Get(ctx context.Context, userID, id string) (*domain.StudySession, error) {
	sess, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.UserID != userID {
		return nil, ErrForbidden
	}
	return sess, nil
}

func (s *sessionService) ListAll(ctx context.Context, userID string) ([]*domain.StudySession, error) {
	return s.sessions.ListByUser(ctx, userID)
}

// ListUpcoming includes sessions from the last day so recent ones stay visible.
func (s *sessionService) ListUpcoming(ctx context.Context, userID string, now time.Time) ([]*domain.StudySession, error) {
	return s.sessions.ListUpcoming(ctx, userID, now.Add(-24*time.Hour), upcomingLimit)
}

func (s *sessionService) ListWeek(ctx context.Context, userID string, day time.Time, loc *time.Location) (*Week, error) {
	start := startOfWeek(day, loc)
	sessions, err := s.sessions.ListInRange(ctx, userID, start, start.AddDate(0, 0, 7))
	if err != nil {
		return nil, err
	}
	inLocation(sessions, loc)

	week := &Week{Start: start, Days: make([]WeekDay, 7)}
	for i := range week.Days {
		week.Days[i].Date = start.AddDate(0, 0, i)
	}
	for _, sess := range sessions {
		i := daysBetween(start, sess.StartAt, loc)
		if i >= 0 && i < 7 {
			week.Days[i].Sessions = append(week.Days[i].Sessions, sess)
		}
	}
	return week, nil
}

func (s *sessionService) ToggleComplete(ctx context.Context, userID, id string) (*domain.StudySession, error) {
	sess, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	sess.Completed = !sess.Completed
	if err := s.sessions.SetCompleted(ctx, id, sess.Completed); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *sessionService) MarkComplete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.sessions.SetCompleted(ctx, id, true)
}

type dashboardService struct {
	subjects repository.SubjectRepo
	sessions repository.StudySessionRepo
}

func NewDashboardService(subjects repository.SubjectRepo, sessions repository.StudySessionRepo) DashboardService {
	return &dashboardService{subjects: subjects, sessions: sessions}
}

func (s *dashboardService) Get(ctx context.Context, userID string, now time.Time, loc *time.Location) (*Dashboard, error) {
	dayStart := startOfDay(now, loc)
	today, err := s.sessions.ListInRange(ctx, userID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	inLocation(today, loc)

	d := &Dashboard{Today: today, UpcomingExams: []UpcomingExam{}}
	doneToday := 0
	for _, sess := range today {
		if sess.Completed {
			doneToday++
		} else if d.Next == nil {
			d.Next = sess
		}
	}
	d.DailyProgress = percent(doneToday, len(today))

	total, completed, err := s.sessions.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	d.SessionCount = total
	d.Readiness = percent(completed, total)

	subjects, err := s.subjects.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	d.SubjectCount = len(subjects)

	exams, err := s.subjects.ListUpcomingExams(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	for _, subj := range exams {
		d.UpcomingExams = append(d.UpcomingExams, UpcomingExam{
			Subject:  subj,
			DaysLeft: daysBetween(now, *subj.ExamAt, loc),
		})
	}
	return d, nil
}
