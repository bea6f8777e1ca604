package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap holds the bindings the model handles before a tab sees the key.
// Arrow and vim keys are left to the tabs.
type KeyMap struct {
	// Jump[i] selects TabID(i).
	Jump    [tabCount]key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
	Escape  key.Binding
}

// DefaultKeyMap returns the global bindings.
func DefaultKeyMap() KeyMap {
	km := KeyMap{
		NextTab: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		PrevTab: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous tab")),
		Refresh: key.NewBinding(key.WithKeys("r", "ctrl+r"), key.WithHelp("r", "re-read log and recount")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Escape:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close help")),
	}
	for i := range km.Jump {
		digit := fmt.Sprint(i + 1)
		km.Jump[i] = key.NewBinding(key.WithKeys(digit), key.WithHelp(digit, strings.ToLower(tabTitles[i])))
	}
	return km
}

// jumpTarget reports which tab a digit key selects.
func (k KeyMap) jumpTarget(msg tea.KeyMsg) (TabID, bool) {
	for i, b := range k.Jump {
		if key.Matches(msg, b) {
			return TabID(i), true
		}
	}
	return 0, false
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Refresh, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.Jump[:],
		{k.NextTab, k.PrevTab},
		{k.Refresh, k.Help, k.Quit},
	}
}
