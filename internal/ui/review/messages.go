package review

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles key presses and terminal resizes. Keys that are not
// verdicts scroll the suggestion.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.stopped = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Accept):
			m.decide(Accepted)
		case key.Matches(msg, m.keys.Skip):
			m.decide(Skipped)
		case key.Matches(msg, m.keys.Undo):
			m.undo()
			return m, nil
		default:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

		if m.Done() {
			return m, tea.Quit
		}
	}

	return m, nil
}
