// Package raw provides the tab listing every parsed entry.
package raw

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/weblog-analyzer/internal/app"
	"github.com/j-veylop/weblog-analyzer/internal/ui/components"
)

// headerHeight is the number of lines above the entry list.
const headerHeight = 3

// Model represents the raw tab state.
type Model struct {
	state   *app.State
	pane    components.Pane
	content string
	lines   int
}

// New creates a new raw model.
func New(state *app.State) *Model {
	return &Model{
		state: state,
		// The document frame takes three columns a side and one row below.
		pane: components.NewPane("Loading entries...", 6, headerHeight+2),
	}
}

// Init starts the placeholder animation.
func (m *Model) Init() tea.Cmd {
	return m.pane.Init()
}

// Update scrolls the entry list. New raw text is picked up first so a jump
// to the bottom lands on the latest entry.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		m.sync()
	}
	return m, m.pane.Update(msg)
}

// SetSize sets the available size for the tab.
func (m *Model) SetSize(width, height int) {
	m.pane.SetSize(width, height)
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	keys := m.pane.Keys()
	return keys[len(keys)-2:]
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	keys := m.pane.Keys()
	return [][]key.Binding{keys[:2], keys[2:4], keys[4:]}
}
