// Package teatest drives bubbletea models synchronously in tests: each
// message goes through Update and the returned commands are run inline
// until they stop producing messages.
package teatest

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxDepth bounds command chains so a model that keeps re-arming itself
// cannot hang a test.
const maxDepth = 50

// cmdTimeout skips commands that block, such as timers.
const cmdTimeout = 10 * time.Millisecond

// Driver holds the current model between key presses.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quit is set once a command returns tea.QuitMsg.
	Quit bool
}

func New(t *testing.T, model tea.Model) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	d.run(model.Init(), 0)
	return d
}

// Send delivers msg unless the program already quit.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quit {
		return
	}
	next, cmd := d.Model.Update(msg)
	d.Model = next
	d.run(cmd, 0)
}

// Press sends named keys: "enter", "esc", "up", "down", "ctrl+c", or a
// single character.
func (d *Driver) Press(keys ...string) {
	d.T.Helper()
	for _, k := range keys {
		d.Send(keyMsg(k))
	}
}

func (d *Driver) View() string {
	return d.Model.View()
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func (d *Driver) run(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= maxDepth {
		d.T.Logf("teatest: command depth limit %d reached", maxDepth)
		return
	}
	msg := execWithTimeout(cmd)
	switch m := msg.(type) {
	case nil:
		return
	case tea.BatchMsg:
		for _, sub := range m {
			d.run(sub, depth+1)
		}
	case tea.QuitMsg:
		d.Quit = true
	default:
		next, nextCmd := d.Model.Update(m)
		d.Model = next
		d.run(nextCmd, depth+1)
	}
}

func execWithTimeout(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}
