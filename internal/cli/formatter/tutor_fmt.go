package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studyplan/internal/domain"
)

func FormatSummary(s *domain.StudySummary) string {
	return RenderBox(s.SubjectName, s.Content) + "\n"
}

func FormatSummaries(list []*domain.StudySummary, loc *time.Location) string {
	if len(list) == 0 {
		return Dim("No summaries yet. Open one with `studyplan summary show <session-id>`.") + "\n"
	}
	rows := make([][]string, 0, len(list))
	for _, s := range list {
		preview := strings.SplitN(s.Content, "\n", 2)[0]
		if len([]rune(preview)) > 60 {
			preview = string([]rune(preview)[:57]) + "..."
		}
		rows = append(rows, []string{
			TruncID(s.SessionID),
			Bold(s.SubjectName),
			s.CreatedAt.In(loc).Format(dateTimeLayout),
			Dim(preview),
		})
	}
	return RenderTable([]string{"SESSION", "SUBJECT", "CREATED", "PREVIEW"}, rows)
}

var optionLetters = []string{"A", "B", "C", "D"}

// OptionLetter maps an option index to A-D.
func OptionLetter(i int) string {
	if i >= 0 && i < len(optionLetters) {
		return optionLetters[i]
	}
	return "?"
}

func FormatQuizResult(r *domain.QuizResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d/%d  %s\n\n", Bold("Score"), r.Score, r.TotalQuestions, RenderProgress(r.Percentage(), 20))
	for i, sol := range r.Solutions() {
		mark := StyleRed.Render("✘")
		if sol.IsCorrect {
			mark = StyleGreen.Render("✔")
		}
		fmt.Fprintf(&b, "%s %d. %s\n", mark, i+1, sol.Question)
		for j, opt := range sol.Options {
			line := fmt.Sprintf("     %s) %s", OptionLetter(j), opt)
			switch {
			case j == sol.CorrectIndex:
				line = StyleGreen.Render(line)
			case sol.UserIndex != nil && *sol.UserIndex == j:
				line = StyleRed.Render(line)
			default:
				line = Dim(line)
			}
			b.WriteString(line + "\n")
		}
		if sol.UserIndex == nil {
			b.WriteString(Dim("     (not answered)") + "\n")
		}
	}
	return b.String()
}
