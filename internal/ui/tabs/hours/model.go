// Package hours provides the hour-of-day traffic tab.
package hours

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/weblog-analyzer/internal/app"
	"github.com/j-veylop/weblog-analyzer/internal/ui/components"
)

// Model represents the hours tab state.
type Model struct {
	state     *app.State
	pane      components.Pane
	toggle    key.Binding
	showTable bool
}

// New creates a new hours model showing the line chart.
func New(state *app.State) *Model {
	return &Model{
		state:  state,
		pane:   components.NewPane("Analyzing log...", 0, 0),
		toggle: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "chart/table")),
	}
}

// Init starts the placeholder animation.
func (m *Model) Init() tea.Cmd {
	return m.pane.Init()
}

// Update flips between chart and table on t and scrolls otherwise.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, m.toggle) {
		m.showTable = !m.showTable
		return m, nil
	}
	return m, m.pane.Update(msg)
}

// SetSize sets the available size for the tab.
func (m *Model) SetSize(width, height int) {
	m.pane.SetSize(width, height)
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return append([]key.Binding{m.toggle}, m.pane.Keys()...)
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{{m.toggle}, m.pane.Keys()}
}
