package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// DifficultyBadge colors the difficulty label: hard is red, medium yellow,
// easy green.
func DifficultyBadge(d domain.Difficulty) string {
	switch d {
	case domain.DifficultyHard:
		return StyleRed.Render(d.Label())
	case domain.DifficultyMedium:
		return StyleYellow.Render(d.Label())
	case domain.DifficultyEasy:
		return StyleGreen.Render(d.Label())
	default:
		return StyleDim.Render(d.Label())
	}
}

// ImportanceStars renders importance 1..3 as filled stars.
func ImportanceStars(i domain.Importance) string {
	n := int(i)
	if n < 0 {
		n = 0
	}
	if n > 3 {
		n = 3
	}
	return StyleYellow.Render(strings.Repeat("★", n)) + StyleDim.Render(strings.Repeat("☆", 3-n))
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
