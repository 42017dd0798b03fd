package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studyplan/internal/domain"
)

const dateTimeLayout = "Mon Jan 2 15:04"

func FormatSubjects(subjects []*domain.Subject, now time.Time, loc *time.Location) string {
	if len(subjects) == 0 {
		return Dim("No subjects yet. Add one with `studyplan subject add <name>`.") + "\n"
	}
	rows := make([][]string, 0, len(subjects))
	for _, s := range subjects {
		exam := Dim("--")
		if s.ExamAt != nil {
			exam = s.ExamAt.In(loc).Format(dateTimeLayout) + " " + Dim("("+RelativeDateFrom(*s.ExamAt, now)+")")
		}
		rows = append(rows, []string{
			TruncID(s.ID),
			Bold(s.Name),
			DifficultyBadge(s.Difficulty),
			ImportanceStars(s.Importance),
			exam,
		})
	}
	return RenderTable([]string{"ID", "SUBJECT", "DIFFICULTY", "IMPORTANCE", "EXAM"}, rows)
}

func FormatAvailability(slots []domain.AvailabilitySlot) string {
	if len(slots) == 0 {
		return Dim("No availability set: the planner may use any reasonable hour.") + "\n"
	}
	var b strings.Builder
	b.WriteString(Header("Availability") + "\n")
	for _, s := range slots {
		fmt.Fprintf(&b, "  %s\n", s.Label())
	}
	return b.String()
}

func FormatSettings(s *domain.UserSettings) string {
	notify := "off"
	if s.NotificationsEnabled {
		notify = "on"
	}
	lines := []string{
		fmt.Sprintf("%s %s", Dim("Session length:"), FormatMinutes(s.SessionDurationMin)),
		fmt.Sprintf("%s %s", Dim("Break length:  "), FormatMinutes(s.BreakDurationMin)),
		fmt.Sprintf("%s %s", Dim("Notifications: "), notify),
	}
	if s.AcademicGoal != "" {
		lines = append(lines, fmt.Sprintf("%s %s", Dim("Goal:          "), s.AcademicGoal))
	}
	if s.Bio != "" {
		lines = append(lines, fmt.Sprintf("%s %s", Dim("Bio:           "), s.Bio))
	}
	return RenderBox("Settings", strings.Join(lines, "\n")) + "\n"
}
