package raw

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/weblog-analyzer/internal/ui/styles"
)

// sync copies new raw text into the pane, keeping the scroll offset.
func (m *Model) sync() {
	raw := m.state.GetRawData()
	if raw == m.content {
		return
	}
	m.content = raw
	m.lines = 0
	if raw != "" {
		m.lines = strings.Count(strings.TrimRight(raw, "\n"), "\n") + 1
	}
	m.pane.SetContent(strings.TrimRight(raw, "\n"))
}

// View renders the raw tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() && m.state.GetRawData() == "" {
		return m.pane.Waiting()
	}

	m.sync()

	var body string
	if m.lines == 0 {
		body = styles.HelpStyle.Render("No entries parsed yet.")
	} else {
		body = m.pane.View()
	}

	return m.pane.Frame(lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body))
}

func (m *Model) renderHeader() string {
	title := styles.TitleStyle.UnsetMarginBottom().Render("Raw Entries")

	position := ""
	if m.lines > 0 {
		_, percent, _, _ := m.pane.Position()
		position = fmt.Sprintf("  %d lines  %3.0f%%", m.lines, percent*100)
	}
	subtitle := styles.HelpStyle.Render("Timestamps of every parsed access" + position)

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}
