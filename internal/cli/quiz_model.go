package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/studyplan/internal/cli/formatter"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type quizKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Choose key.Binding
	Skip   key.Binding
	Quit   key.Binding
}

func defaultQuizKeyMap() quizKeyMap {
	return quizKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Choose: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "answer")),
		Skip:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skip")),
		Quit:   key.NewBinding(key.WithKeys("esc", "ctrl+c", "q"), key.WithHelp("esc", "quit")),
	}
}

// quizModel walks the user through one question at a time. Skipped
// questions keep a nil answer.
type quizModel struct {
	questions []domain.QuizQuestion
	answers   []*int
	current   int
	cursor    int
	finished  bool
	aborted   bool
	keys      quizKeyMap
}

func newQuizModel(questions []domain.QuizQuestion) quizModel {
	return quizModel{
		questions: questions,
		answers:   make([]*int, len(questions)),
		keys:      defaultQuizKeyMap(),
	}
}

func (m quizModel) Init() tea.Cmd { return nil }

func (m quizModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok || m.finished || m.aborted {
		return m, nil
	}
	switch {
	case key.Matches(km, m.keys.Quit):
		m.aborted = true
		return m, tea.Quit
	case key.Matches(km, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(km, m.keys.Down):
		if m.cursor < len(m.questions[m.current].Options)-1 {
			m.cursor++
		}
	case key.Matches(km, m.keys.Choose):
		choice := m.cursor
		m.answers[m.current] = &choice
		return m.advance()
	case key.Matches(km, m.keys.Skip):
		return m.advance()
	}
	return m, nil
}

func (m quizModel) advance() (tea.Model, tea.Cmd) {
	m.current++
	m.cursor = 0
	if m.current >= len(m.questions) {
		m.finished = true
		return m, tea.Quit
	}
	return m, nil
}

func (m quizModel) View() string {
	if m.finished || m.aborted || len(m.questions) == 0 {
		return ""
	}
	q := m.questions[m.current]
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", formatter.Dim(fmt.Sprintf("Question %d of %d", m.current+1, len(m.questions))))
	b.WriteString(formatter.Bold(q.Question) + "\n\n")
	for i, opt := range q.Options {
		line := fmt.Sprintf("%s) %s", formatter.OptionLetter(i), opt)
		if i == m.cursor {
			b.WriteString(formatter.StyleHeader.Render("› "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	help := []string{m.keys.Up.Help().Key + " " + m.keys.Up.Help().Desc,
		m.keys.Down.Help().Key + " " + m.keys.Down.Help().Desc,
		m.keys.Choose.Help().Key + " " + m.keys.Choose.Help().Desc,
		m.keys.Skip.Help().Key + " " + m.keys.Skip.Help().Desc,
		m.keys.Quit.Help().Key + " " + m.keys.Quit.Help().Desc,
	}
	b.WriteString("\n" + formatter.Dim(strings.Join(help, " • ")) + "\n")
	return b.String()
}

// parseAnswers reads "A,C,-,B": letters or 1-based numbers, "-" to skip.
func parseAnswers(s string, count int) ([]*int, error) {
	out := make([]*int, count)
	if strings.TrimSpace(s) == "" {
		return out, nil
	}
	for i, raw := range strings.Split(s, ",") {
		if i >= count {
			break
		}
		raw = strings.ToUpper(strings.TrimSpace(raw))
		if raw == "" || raw == "-" {
			continue
		}
		var idx int
		switch {
		case len(raw) == 1 && raw[0] >= 'A' && raw[0] <= 'D':
			idx = int(raw[0] - 'A')
		case len(raw) == 1 && raw[0] >= '1' && raw[0] <= '4':
			idx = int(raw[0] - '1')
		default:
			return nil, fmt.Errorf("answer %d: %q is not A-D or 1-4", i+1, raw)
		}
		out[i] = &idx
	}
	return out, nil
}
