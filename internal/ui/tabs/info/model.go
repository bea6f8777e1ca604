// Package info is the tab that shows the resolved configuration, what the
// last analysis covered and which build is running.
package info

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/weblog-analyzer/internal/app"
	"github.com/j-veylop/weblog-analyzer/internal/config"
)

// Model scrolls the info cards in a viewport. A nil config renders a
// placeholder card.
type Model struct {
	state  *app.State
	config *config.Config

	width, height int
	viewport      viewport.Model
}

// New returns the info tab.
func New(state *app.State, cfg *config.Config) *Model {
	return &Model{state: state, config: cfg, viewport: viewport.New(0, 0)}
}

// Init implements app.Tab.
func (m *Model) Init() tea.Cmd { return nil }

// Update scrolls on key presses and ignores everything else.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); !ok {
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// SetSize implements app.Tab.
func (m *Model) SetSize(width, height int) {
	m.width, m.height = width, height
	m.viewport.Width, m.viewport.Height = width, height
}

// ShortHelp lists the viewport's scroll bindings.
func (m *Model) ShortHelp() []key.Binding {
	km := m.viewport.KeyMap
	return []key.Binding{km.Up, km.Down, km.PageUp, km.PageDown}
}

// FullHelp implements app.Tab.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{m.ShortHelp()}
}
