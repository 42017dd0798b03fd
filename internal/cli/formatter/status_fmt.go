package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studyplan/internal/service"
)

func FormatDashboard(d *service.Dashboard, loc *time.Location) string {
	var b strings.Builder

	b.WriteString(Header("Today") + "\n")
	if len(d.Today) == 0 {
		b.WriteString(Dim("  Nothing scheduled today.") + "\n")
	}
	for _, s := range d.Today {
		fmt.Fprintf(&b, "  %s %s-%s  %s  %s\n",
			CheckMark(s.Completed),
			s.StartAt.In(loc).Format("15:04"),
			s.EndAt.In(loc).Format("15:04"),
			Bold(s.SubjectName),
			s.Topic,
		)
	}
	fmt.Fprintf(&b, "\n  %s %s\n", Dim("Daily progress"), RenderProgress(d.DailyProgress, 20))
	if d.Next != nil {
		fmt.Fprintf(&b, "  %s %s at %s\n", Dim("Up next       "), Bold(d.Next.SubjectName), d.Next.StartAt.In(loc).Format("15:04"))
	}

	b.WriteString("\n" + Header("Overall") + "\n")
	fmt.Fprintf(&b, "  %s %s\n", Dim("Readiness     "), RenderProgress(d.Readiness, 20))
	fmt.Fprintf(&b, "  %s %d subjects, %d sessions\n", Dim("Tracking      "), d.SubjectCount, d.SessionCount)

	if len(d.UpcomingExams) > 0 {
		b.WriteString("\n" + Header("Upcoming exams") + "\n")
		for _, e := range d.UpcomingExams {
			when := ""
			if e.Subject.ExamAt != nil {
				when = e.Subject.ExamAt.In(loc).Format(dateTimeLayout)
			}
			fmt.Fprintf(&b, "  %s  %s  %s\n", Bold(e.Subject.Name), Dim(when), DaysLeftStyled(e.DaysLeft))
		}
	}
	return b.String()
}
