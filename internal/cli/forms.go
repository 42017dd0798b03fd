package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/studyplan/internal/cli/formatter"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const examLayout = "2006-01-02 15:04"

func studyHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// subjectFormValues backs the interactive subject form.
type subjectFormValues struct {
	Name        string
	Description string
	Difficulty  domain.Difficulty
	Importance  domain.Importance
	Exam        string
}

func subjectForm(v *subjectFormValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Subject").
				Placeholder("History").
				Value(&v.Name).
				Validate(validateRequired),
			huh.NewInput().
				Title("Description (optional)").
				Value(&v.Description),
			huh.NewSelect[domain.Difficulty]().
				Title("Difficulty").
				Options(
					huh.NewOption("Easy", domain.DifficultyEasy),
					huh.NewOption("Medium", domain.DifficultyMedium),
					huh.NewOption("Hard", domain.DifficultyHard),
				).
				Value(&v.Difficulty),
			huh.NewSelect[domain.Importance]().
				Title("Importance").
				Options(
					huh.NewOption("Low", domain.ImportanceLow),
					huh.NewOption("Medium", domain.ImportanceMedium),
					huh.NewOption("High", domain.ImportanceHigh),
				).
				Value(&v.Importance),
			huh.NewInput().
				Title("Exam (YYYY-MM-DD HH:MM, blank for none)").
				Placeholder("2025-06-30 09:00").
				Value(&v.Exam).
				Validate(validateOptionalExam),
		),
	).WithTheme(studyHuhTheme()).WithShowHelp(false)
}

// codeForm asks for the authorization code shown by Google after consent.
func codeForm(code *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Paste the authorization code").
				Value(code).
				Validate(validateRequired),
		),
	).WithTheme(studyHuhTheme()).WithShowHelp(false)
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

func validateOptionalExam(s string) error {
	if s == "" {
		return nil
	}
	if _, err := parseExam(s, time.UTC); err != nil {
		return err
	}
	return nil
}

// parseExam accepts "YYYY-MM-DD HH:MM" or a bare date, which means 09:00.
func parseExam(s string, loc *time.Location) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.ParseInLocation(examLayout, s, loc); err == nil {
		return &t, nil
	}
	d, err := time.ParseInLocation(time.DateOnly, s, loc)
	if err != nil {
		return nil, fmt.Errorf("use YYYY-MM-DD or YYYY-MM-DD HH:MM")
	}
	d = d.Add(9 * time.Hour)
	return &d, nil
}

// parseSlotSpecs reads availability like "mon:9", "mon:9-12" (9, 10 and 11)
// or "sat:14,16".
func parseSlotSpecs(specs []string) ([]domain.AvailabilitySlot, error) {
	var slots []domain.AvailabilitySlot
	for _, spec := range specs {
		dayPart, hourPart, ok := strings.Cut(spec, ":")
		if !ok {
			return nil, fmt.Errorf("%q: want day:hours, e.g. mon:9-12", spec)
		}
		day, ok := domain.ParseWeekday(strings.TrimSpace(dayPart))
		if !ok {
			return nil, fmt.Errorf("%q: unknown day %q", spec, dayPart)
		}
		for _, part := range strings.Split(hourPart, ",") {
			from, to, err := parseHourRange(part)
			if err != nil {
				return nil, fmt.Errorf("%q: %w", spec, err)
			}
			for h := from; h < to; h++ {
				slots = append(slots, domain.AvailabilitySlot{Day: day, Hour: h})
			}
		}
	}
	return slots, nil
}

func parseHourRange(s string) (int, int, error) {
	s = strings.TrimSpace(s)
	lo, hi, isRange := strings.Cut(s, "-")
	from, err := strconv.Atoi(lo)
	if err != nil || from < 0 || from > 23 {
		return 0, 0, fmt.Errorf("hour %q must be 0-23", lo)
	}
	if !isRange {
		return from, from + 1, nil
	}
	to, err := strconv.Atoi(hi)
	if err != nil || to <= from || to > 24 {
		return 0, 0, fmt.Errorf("range %q must end after it starts, at 24 at most", s)
	}
	return from, to, nil
}
