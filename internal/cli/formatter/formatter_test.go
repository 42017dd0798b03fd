package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/service"
	"github.com/stretchr/testify/assert"
)

var refNow = time.Date(2025, 1, 9, 14, 30, 0, 0, time.UTC)

func intp(i int) *int { return &i }

func sampleSession(id, subject, topic string, start time.Time, completed bool) *domain.StudySession {
	return &domain.StudySession{
		ID:          id,
		SubjectName: subject,
		Topic:       topic,
		StartAt:     start,
		EndAt:       start.Add(time.Hour),
		Completed:   completed,
	}
}

func TestFormatSubjects(t *testing.T) {
	exam := refNow.Add(72 * time.Hour)
	out := FormatSubjects([]*domain.Subject{
		{ID: "subject-0001", Name: "History", Difficulty: domain.DifficultyHard, Importance: domain.ImportanceHigh, ExamAt: &exam},
		{ID: "subject-0002", Name: "Math", Difficulty: domain.DifficultyEasy, Importance: domain.ImportanceLow},
	}, refNow, time.UTC)

	assert.Contains(t, out, "History")
	assert.Contains(t, out, "Hard")
	assert.Contains(t, out, "★★★")
	assert.Contains(t, out, "Sun Jan 12 14:30")
	assert.Contains(t, out, "In 3d")
	assert.Contains(t, out, "Easy")

	assert.Contains(t, FormatSubjects(nil, refNow, time.UTC), "No subjects yet")
}

func TestFormatAvailability(t *testing.T) {
	out := FormatAvailability([]domain.AvailabilitySlot{{Day: domain.Monday, Hour: 9}, {Day: domain.Sunday, Hour: 23}})
	assert.Contains(t, out, "Monday: 09:00 - 10:00")
	assert.Contains(t, out, "Sunday: 23:00 - 00:00")
}

func TestFormatSettings(t *testing.T) {
	s := domain.DefaultSettings("u1")
	s.AcademicGoal = "Pass finals"
	out := FormatSettings(s)
	assert.Contains(t, out, "1h")
	assert.Contains(t, out, "10m")
	assert.Contains(t, out, "Pass finals")
}

func TestFormatReconcile(t *testing.T) {
	r := &service.ReconcileResult{
		Sessions: []*domain.StudySession{sampleSession("s1", "History", "WWII", refNow.Add(20*time.Hour), false)},
		Warnings: []service.ResolutionWarning{{Index: 1, SubjectName: "Art", Reason: "unknown subject"}},
		Skipped:  1,
		Replaced: 3,
	}
	out := FormatReconcile(r, time.UTC)
	assert.Contains(t, out, "1 sessions planned, 3 pending sessions replaced")
	assert.Contains(t, out, "WWII")
	assert.Contains(t, out, "1 proposed sessions skipped.")
	assert.NotContains(t, out, "Art")
	assert.NotContains(t, out, "unknown subject")
	assert.NotContains(t, out, "Calendar:")
}

func TestFormatWeek(t *testing.T) {
	start := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	week := &service.Week{Start: start, Days: make([]service.WeekDay, 7)}
	for i := range week.Days {
		week.Days[i].Date = start.AddDate(0, 0, i)
	}
	week.Days[5].Sessions = []*domain.StudySession{sampleSession("s1", "History", "WWII", time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC), true)}

	out := FormatWeek(week, time.UTC)
	assert.Contains(t, out, "WEEK OF JAN 5 - JAN 11")
	assert.Contains(t, out, "Friday, Jan 10")
	assert.Contains(t, out, "09:00-10:00")
	assert.Contains(t, out, "free")
}

func TestFormatDashboard(t *testing.T) {
	exam := refNow.AddDate(0, 0, 2)
	next := sampleSession("s2", "Math", "Algebra", refNow.Add(time.Hour), false)
	d := &service.Dashboard{
		Today:         []*domain.StudySession{sampleSession("s1", "History", "WWII", refNow.Add(-2*time.Hour), true), next},
		DailyProgress: 50,
		Next:          next,
		Readiness:     25,
		SubjectCount:  2,
		SessionCount:  4,
		UpcomingExams: []service.UpcomingExam{{Subject: &domain.Subject{Name: "History", ExamAt: &exam}, DaysLeft: 2}},
	}
	out := FormatDashboard(d, time.UTC)
	assert.Contains(t, out, " 50%")
	assert.Contains(t, out, " 25%")
	assert.Contains(t, out, "2 subjects, 4 sessions")
	assert.Contains(t, out, "Math at 15:30")
	assert.Contains(t, out, "2 days left")
}

func TestFormatQuizResult(t *testing.T) {
	r := &domain.QuizResult{
		Questions: []domain.QuizQuestion{
			{Question: "2+2?", Options: []string{"3", "4", "5", "6"}, CorrectIndex: 1},
			{Question: "Capital of France?", Options: []string{"Paris", "Rome", "Oslo", "Bern"}, CorrectIndex: 0},
		},
		UserAnswers:    []*int{intp(1), nil},
		Score:          1,
		TotalQuestions: 2,
	}
	out := FormatQuizResult(r)
	assert.Contains(t, out, "1/2")
	assert.Contains(t, out, " 50%")
	assert.Contains(t, out, "B) 4")
	assert.Contains(t, out, "(not answered)")
	assert.Equal(t, "?", OptionLetter(4))
}

func TestFormatSummaries(t *testing.T) {
	list := []*domain.StudySummary{{SessionID: "sess-000001", SubjectName: "History", Content: "# WWII\nbody", CreatedAt: refNow}}
	out := FormatSummaries(list, time.UTC)
	assert.Contains(t, out, "History")
	assert.Contains(t, out, "# WWII")
	assert.NotContains(t, out, "body")
}
