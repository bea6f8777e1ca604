package raw

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/weblog-analyzer/internal/app"
)

func rawLines(n int) string {
	var b strings.Builder
	for i := range n {
		fmt.Fprintf(&b, "entry %03d\n", i)
	}
	return b.String()
}

func loadedState(raw string) *app.State {
	state := app.NewState()
	state.SetLoading(app.ResourceInitial, false)
	state.SetRawData(raw)
	return state
}

func TestNew(t *testing.T) {
	m := New(app.NewState())
	if m == nil {
		t.Fatal("New returned nil")
	}
	if m.Init() == nil {
		t.Error("Init should start the loading animation")
	}
}

func TestModel_ViewLoading(t *testing.T) {
	m := New(app.NewState())
	m.SetSize(80, 20)
	if view := m.View(); !strings.Contains(view, "Loading entries...") {
		t.Errorf("loading view = %q", view)
	}
}

func TestModel_ViewEmpty(t *testing.T) {
	m := New(loadedState(""))
	m.SetSize(80, 20)
	if view := m.View(); !strings.Contains(view, "No entries parsed yet.") {
		t.Errorf("empty view = %q", view)
	}
}

func TestModel_View(t *testing.T) {
	m := New(loadedState(rawLines(50)))
	m.SetSize(80, 20)

	view := m.View()
	if m.lines != 50 {
		t.Errorf("lines = %d, want 50", m.lines)
	}
	for _, want := range []string{"Raw Entries", "50 lines", "entry 000"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "entry 049") {
		t.Error("last entry should be scrolled out of view")
	}
}

func TestModel_TopBottom(t *testing.T) {
	m := New(loadedState(rawLines(50)))
	m.SetSize(80, 20)
	m.View()

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	if _, _, _, atBottom := m.pane.Position(); !atBottom {
		t.Error("G should jump to the bottom")
	}
	if view := m.View(); !strings.Contains(view, "entry 049") {
		t.Error("bottom view should show the last entry")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	if _, _, atTop, _ := m.pane.Position(); !atTop {
		t.Error("g should jump to the top")
	}
}

func TestModel_SyncKeepsOffset(t *testing.T) {
	state := loadedState(rawLines(50))
	m := New(state)
	m.SetSize(80, 20)
	m.View()

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	offset, _, _, _ := m.pane.Position()
	if offset == 0 {
		t.Fatal("down should scroll")
	}

	state.SetRawData(rawLines(60))
	m.View()
	if got, _, _, _ := m.pane.Position(); got != offset {
		t.Errorf("offset = %d after new data, want %d", got, offset)
	}
	if m.lines != 60 {
		t.Errorf("lines = %d, want 60", m.lines)
	}
}

func TestModel_SetSize(t *testing.T) {
	m := New(app.NewState())
	m.SetSize(100, 40)
	if w, h := m.pane.ViewportSize(); w != 94 || h != 35 {
		t.Errorf("viewport = %dx%d, want 94x35", w, h)
	}
	m.SetSize(0, 0)
	if _, h := m.pane.ViewportSize(); h != 1 {
		t.Errorf("viewport height = %d, want 1", h)
	}
}

func TestModel_Help(t *testing.T) {
	m := New(app.NewState())
	if got := len(m.ShortHelp()); got != 2 {
		t.Errorf("ShortHelp has %d bindings, want top and bottom", got)
	}
	if got := len(m.FullHelp()); got != 3 {
		t.Errorf("FullHelp has %d groups, want 3", got)
	}
}
