// Package calendar provides the day, month and year traffic tab.
package calendar

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/weblog-analyzer/internal/app"
	"github.com/j-veylop/weblog-analyzer/internal/models"
	"github.com/j-veylop/weblog-analyzer/internal/ui/components"
)

// Model represents the calendar tab state.
type Model struct {
	state      *app.State
	pane       components.Pane
	next, prev key.Binding
	focus      models.Dimension
}

// New creates a new calendar model focused on days of the month.
func New(state *app.State) *Model {
	return &Model{
		state: state,
		pane:  components.NewPane("Analyzing log...", 0, 0),
		next:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next view")),
		prev:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev view")),
		focus: models.DimensionDay,
	}
}

// Focus returns the dimension shown in detail.
func (m *Model) Focus() models.Dimension {
	return m.focus
}

// nextFocus cycles through the calendar dimensions, skipping hours.
func nextFocus(d models.Dimension) models.Dimension {
	d = d.Next()
	if d == models.DimensionHour {
		d = d.Next()
	}
	return d
}

// prevFocus cycles backwards through the calendar dimensions.
func prevFocus(d models.Dimension) models.Dimension {
	for range len(models.Dimensions) - 2 {
		d = nextFocus(d)
	}
	return d
}

// Init starts the placeholder animation.
func (m *Model) Init() tea.Cmd {
	return m.pane.Init()
}

// Update moves the detail focus on left and right. Other keys scroll.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, m.next):
			m.refocus(nextFocus(m.focus))
			return m, nil
		case key.Matches(k, m.prev):
			m.refocus(prevFocus(m.focus))
			return m, nil
		}
	}
	return m, m.pane.Update(msg)
}

func (m *Model) refocus(d models.Dimension) {
	m.focus = d
	m.pane.Rewind()
}

// SetSize sets the available size for the tab.
func (m *Model) SetSize(width, height int) {
	m.pane.SetSize(width, height)
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.next, m.prev}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{{m.next, m.prev}, m.pane.Keys()}
}
