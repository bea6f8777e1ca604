package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/weblog-analyzer/internal/ui/styles"
)

// chromeHeight is the rows taken by the tab bar (with its border) and the
// status bar, plus the separating newlines.
const chromeHeight = 6

// toastTop is the first screen row a toast may cover, just below the tab bar.
const toastTop = 2

type toastLook struct {
	badge string
	style lipgloss.Style
}

var toastLooks = map[NotificationType]toastLook{
	NotificationSuccess: {"[OK]", styles.SuccessTextStyle},
	NotificationError:   {"[ERR]", styles.ErrorTextStyle.Bold(true)},
	NotificationLoading: {"", styles.InfoTextStyle},
}

var (
	tabBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(styles.Subtle)
	activeTabStyle   = lipgloss.NewStyle().Bold(true).Foreground(styles.Primary).Padding(0, 2)
	inactiveTabStyle = lipgloss.NewStyle().Foreground(styles.Subtle).Padding(0, 2)
	bodyStyle        = lipgloss.NewStyle().Padding(1, 2)
	sectionStyle     = lipgloss.NewStyle().Bold(true).Foreground(styles.Info)
)

// View renders the tab bar, the visible tab, the status bar and any
// overlays.
func (m *Model) View() string {
	var b strings.Builder
	if m.width > 0 {
		b.WriteString(m.tabBar())
		b.WriteString("\n")
	}
	if !m.ready {
		b.WriteString(bodyStyle.Render(m.spinner.View() + " Waiting for terminal size..."))
		return b.String()
	}

	if tab := m.currentTab(); tab != nil {
		b.WriteString(tab.View())
	} else {
		b.WriteString(bodyStyle.Render(styles.HelpStyle.Render(
			fmt.Sprintf("No view is registered for tab %d (%s).", m.activeTab+1, m.activeTab))))
	}
	b.WriteString("\n")
	b.WriteString(m.statusBar())

	screen := b.String()
	if m.showHelp {
		screen = centerOver(screen, m.helpPanel(), m.width, m.height)
	}
	if toasts := m.toastStack(); toasts != "" {
		x := max(m.width-lipgloss.Width(toasts)-2, 0)
		screen = stamp(screen, toasts, x, toastTop, 0)
	}
	return screen
}

func (m *Model) tabBar() string {
	cells := make([]string, tabCount)
	for i := range cells {
		id := TabID(i)
		if id == m.activeTab {
			cells[i] = activeTabStyle.Render(fmt.Sprintf("[%d] %s", i+1, id))
		} else {
			cells[i] = inactiveTabStyle.Render(fmt.Sprintf(" %d  %s", i+1, id))
		}
	}
	return tabBarStyle.Width(m.width).Render(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
}

// statusBar describes the analyzed source: its name, entry count, whether
// it is watched and when it was last counted.
func (m *Model) statusBar() string {
	var parts []string
	if analysis, ok := m.state.GetAnalysis(); ok {
		parts = append(parts, analysis.Source, fmt.Sprintf("%d entries", analysis.Entries))
	} else if m.services != nil {
		parts = append(parts, m.services.Source())
	}
	if m.state.IsWatching() {
		parts = append(parts, "watching")
	}
	if updated := m.state.GetLastUpdated(); !updated.IsZero() {
		parts = append(parts, "updated "+updated.Format(time.TimeOnly))
	}
	parts = append(parts, "? help")

	line := ansi.Truncate(strings.Join(parts, " • "), max(m.width-2, 0), "…")
	return styles.StatusBarStyle.Width(m.width).Render(line)
}

// toastStack renders the active notifications stacked and right-aligned.
func (m *Model) toastStack() string {
	notes := m.state.GetNotifications()
	if len(notes) == 0 {
		return ""
	}

	maxLen := max(m.width/2, 20)
	toasts := make([]string, 0, len(notes))
	for _, n := range notes {
		look := toastLooks[n.Type]
		badge := look.badge
		if n.Type == NotificationLoading {
			badge = m.spinner.View()
		}
		text := ansi.Truncate(n.Message, maxLen, "…")
		toasts = append(toasts, styles.ToastStyle.Render(look.style.Padding(0, 1).Render(badge+" "+text)))
	}
	return lipgloss.JoinVertical(lipgloss.Right, toasts...)
}

// helpPanel lists the global bindings followed by the visible tab's own.
func (m *Model) helpPanel() string {
	var b strings.Builder
	row := func(keys, desc string) {
		fmt.Fprintf(&b, "  %-10s %s\n", keys, desc)
	}

	b.WriteString(styles.TitleStyle.UnsetMarginBottom().Render("Key Bindings"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Navigation") + "\n")
	row(fmt.Sprintf("1-%d", tabCount), "jump to tab")
	for _, k := range []key.Binding{m.keymap.NextTab, m.keymap.PrevTab} {
		row(k.Help().Key, k.Help().Desc)
	}
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Actions") + "\n")
	for _, k := range m.keymap.ShortHelp() {
		row(k.Help().Key, k.Help().Desc)
	}
	b.WriteString("\n")

	if tab := m.currentTab(); tab != nil {
		if bindings := tab.ShortHelp(); len(bindings) > 0 {
			b.WriteString(sectionStyle.Render(m.activeTab.String()+" Tab") + "\n")
			for _, k := range bindings {
				row(k.Help().Key, k.Help().Desc)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString(styles.HelpStyle.Render("? or esc closes this panel"))
	return styles.HelpPanelStyle.Render(b.String())
}
