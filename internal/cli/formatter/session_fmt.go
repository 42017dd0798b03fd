package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/service"
)

func sessionRow(s *domain.StudySession, loc *time.Location) []string {
	start := s.StartAt.In(loc)
	synced := Dim("--")
	if s.Synced {
		synced = StyleBlue.Render("synced")
	}
	return []string{
		TruncID(s.ID),
		CheckMark(s.Completed),
		start.Format(dateTimeLayout) + Dim("-"+s.EndAt.In(loc).Format("15:04")),
		Bold(s.SubjectName),
		s.Topic,
		synced,
	}
}

var sessionHeaders = []string{"ID", "", "WHEN", "SUBJECT", "TOPIC", "CALENDAR"}

func FormatSessions(sessions []*domain.StudySession, loc *time.Location) string {
	if len(sessions) == 0 {
		return Dim("No upcoming sessions. Generate a plan with `studyplan plan generate`.") + "\n"
	}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, sessionRow(s, loc))
	}
	return RenderTable(sessionHeaders, rows)
}

func FormatWeek(week *service.Week, loc *time.Location) string {
	var b strings.Builder
	end := week.Start.AddDate(0, 0, 6)
	b.WriteString(Header(fmt.Sprintf("Week of %s - %s", week.Start.Format("Jan 2"), end.Format("Jan 2"))) + "\n")
	for _, day := range week.Days {
		b.WriteString("\n" + StyleBlue.Render(day.Date.Format("Monday, Jan 2")) + "\n")
		if len(day.Sessions) == 0 {
			b.WriteString("  " + Dim("free") + "\n")
			continue
		}
		for _, s := range day.Sessions {
			fmt.Fprintf(&b, "  %s %s-%s  %s  %s %s\n",
				CheckMark(s.Completed),
				s.StartAt.In(loc).Format("15:04"),
				s.EndAt.In(loc).Format("15:04"),
				Bold(s.SubjectName),
				s.Topic,
				TruncID(s.ID),
			)
		}
	}
	return b.String()
}

// FormatReconcile reports a planner run: the new sessions, then how many
// proposals were dropped.
func FormatReconcile(r *service.ReconcileResult, loc *time.Location) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d sessions planned, %d pending sessions replaced.\n",
		StyleGreen.Render("✔"), len(r.Sessions), r.Replaced)
	if r.RemoteDeleted > 0 || r.RemoteFailed > 0 {
		fmt.Fprintf(&b, "%s removed %d calendar events, %d could not be removed.\n",
			Dim("Calendar:"), r.RemoteDeleted, r.RemoteFailed)
	}
	if len(r.Sessions) > 0 {
		b.WriteString("\n")
		b.WriteString(FormatSessions(r.Sessions, loc))
	}
	if r.Skipped > 0 {
		b.WriteString("\n" + StyleYellow.Render(fmt.Sprintf("%d proposed sessions skipped.", r.Skipped)) + "\n")
	}
	return b.String()
}
