package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// TabID indexes the views in the tab bar.
type TabID int

const (
	// TabHours shows traffic by hour of day.
	TabHours TabID = iota
	// TabCalendar shows traffic by day, month and year.
	TabCalendar
	// TabRaw lists the parsed entries.
	TabRaw
	// TabInfo shows configuration and build details.
	TabInfo

	tabCount
)

var tabTitles = [tabCount]string{"Hours", "Calendar", "Raw", "Info"}

func (t TabID) String() string {
	if t < 0 || t >= tabCount {
		return "Unknown"
	}
	return tabTitles[t]
}

// Tab is one view of the analysis. The model forwards every message to the
// visible tab only.
type Tab interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Tab, tea.Cmd)
	View() string
	SetSize(width, height int)

	// ShortHelp lists the tab's own bindings for the help overlay.
	ShortHelp() []key.Binding
	FullHelp() [][]key.Binding
}
