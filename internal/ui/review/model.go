// Package review is the interactive terminal review of fix suggestions.
package review

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/joshsymonds/tokubetsu/internal/models"
)

// Verdict is the reviewer's decision on one suggestion.
type Verdict int

// Verdicts.
const (
	Pending Verdict = iota
	Accepted
	Skipped
)

// String returns the verdict name.
func (v Verdict) String() string {
	switch v {
	case Accepted:
		return "accepted"
	case Skipped:
		return "skipped"
	default:
		return "pending"
	}
}

// DefaultHistorySize is how many decisions can be undone.
const DefaultHistorySize = 50

const minBodyHeight = 3

// Model walks the reviewer through suggestions one at a time.
type Model struct {
	history     *RingBuffer[int]
	keys        keyMap
	help        help.Model
	viewport    viewport.Model
	document    string
	suggestions []models.FixSuggestion
	verdicts    []Verdict
	cursor      int
	width       int
	height      int
	stopped     bool
}

// NewModel creates a review over suggestions. document is only shown in the
// header and may be empty.
func NewModel(document string, suggestions []models.FixSuggestion, historySize int) Model {
	if historySize <= 0 {
		historySize = DefaultHistorySize
	}
	vp := viewport.New(0, 0)
	vp.KeyMap = scrollKeys()
	return Model{
		history:     NewRingBuffer[int](historySize),
		keys:        defaultKeyMap(),
		help:        help.New(),
		viewport:    vp,
		document:    document,
		suggestions: suggestions,
		verdicts:    make([]Verdict, len(suggestions)),
		width:       100,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	if m.Done() {
		return tea.Quit
	}
	return nil
}

// Done reports whether every suggestion has a verdict.
func (m Model) Done() bool {
	return m.cursor >= len(m.suggestions)
}

// Stopped reports whether the reviewer quit before finishing.
func (m Model) Stopped() bool {
	return m.stopped
}

// Current returns the suggestion under review.
func (m Model) Current() (models.FixSuggestion, bool) {
	if m.Done() {
		return models.FixSuggestion{}, false
	}
	return m.suggestions[m.cursor], true
}

// Verdicts returns a copy of the verdicts, aligned with the suggestions.
func (m Model) Verdicts() []Verdict {
	return append([]Verdict(nil), m.verdicts...)
}

// Accepted returns the accepted suggestions in their original order.
func (m Model) Accepted() []models.FixSuggestion {
	return m.withVerdict(Accepted)
}

// Skipped returns the skipped suggestions in their original order.
func (m Model) Skipped() []models.FixSuggestion {
	return m.withVerdict(Skipped)
}

func (m Model) withVerdict(v Verdict) []models.FixSuggestion {
	var out []models.FixSuggestion
	for i, s := range m.suggestions {
		if m.verdicts[i] == v {
			out = append(out, s)
		}
	}
	return out
}

// decide records v for the current suggestion and advances.
func (m *Model) decide(v Verdict) {
	if m.Done() {
		return
	}
	m.verdicts[m.cursor] = v
	m.history.Add(m.cursor)
	m.cursor++
	m.syncViewport()
	m.viewport.GotoTop()
}

// undo reverts the latest decision still in history.
func (m *Model) undo() bool {
	idx, ok := m.history.Pop()
	if !ok {
		return false
	}
	m.verdicts[idx] = Pending
	m.cursor = idx
	m.syncViewport()
	m.viewport.GotoTop()
	return true
}

// resize fits the viewport between the header and the help line.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(height-lipgloss.Height(m.renderHeader())-lipgloss.Height(m.renderHelp())-2, minBodyHeight)
	m.syncViewport()
}

// syncViewport renders the current suggestion into the viewport.
func (m *Model) syncViewport() {
	if s, ok := m.Current(); ok {
		m.viewport.SetContent(renderSuggestion(s, m.width-4))
		return
	}
	m.viewport.SetContent("")
}

// sized reports whether a terminal size has been received.
func (m Model) sized() bool {
	return m.height > 0
}

// counts returns accepted and skipped totals.
func (m Model) counts() (accepted, skipped int) {
	for _, v := range m.verdicts {
		switch v {
		case Accepted:
			accepted++
		case Skipped:
			skipped++
		}
	}
	return accepted, skipped
}
