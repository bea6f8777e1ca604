package info

import (
	"fmt"
	"runtime"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/weblog-analyzer/internal/models"
	"github.com/j-veylop/weblog-analyzer/internal/ui/components"
	"github.com/j-veylop/weblog-analyzer/internal/ui/styles"
	"github.com/j-veylop/weblog-analyzer/internal/version"
)

const labelWidth = 18

var (
	labelStyle = lipgloss.NewStyle().Width(labelWidth).Foreground(styles.TextMuted)
	valueStyle = lipgloss.NewStyle().Foreground(styles.TextPrimary)
)

type field struct {
	label, value string
}

// View implements app.Tab.
func (m *Model) View() string {
	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.UnsetMarginBottom().Render("Info"),
		styles.HelpStyle.Render("Configuration, last analysis and build"),
		"",
		m.card("Configuration", m.configFields(), "Configuration not loaded"),
		m.card("Analysis", m.analysisFields(), "No analysis yet"),
		m.card("About "+version.Name, buildFields(), ""),
	))
	return styles.DocStyle.Width(m.width).Height(m.height).Render(m.viewport.View())
}

// card renders fields under title, or placeholder when there are none.
func (m *Model) card(title string, fields []field, placeholder string) string {
	lines := []string{styles.CardTitleStyle.Render(title)}
	if len(fields) == 0 {
		lines = append(lines, styles.HelpStyle.Render(placeholder))
	}
	for _, f := range fields {
		lines = append(lines, labelStyle.Render(f.label+":")+" "+valueStyle.Render(f.value))
	}
	width := min(max(m.width-6, 50), 80)
	return styles.CardStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *Model) configFields() []field {
	cfg := m.config
	if cfg == nil {
		return nil
	}
	database := cfg.DatabasePath
	if database == "" {
		database = "none"
	}
	return []field{
		{"Log Source", cfg.LogSource},
		{"Database", database},
		{"Import to DB", onOff(cfg.ImportToDB)},
		{"File Watch", fmt.Sprintf("%s (debounce %s)", onOff(cfg.Watch), cfg.WatchDebounce)},
		{"Notifications", onOff(cfg.Notify)},
		{"Log Level", cfg.LogLevel},
	}
}

func (m *Model) analysisFields() []field {
	analysis, ok := m.state.GetAnalysis()
	if !ok {
		return nil
	}
	hourly := components.Floats(analysis.Summary(models.DimensionHour).Counts)
	return []field{
		{"Source", analysis.Source},
		{"Entries", fmt.Sprint(analysis.Entries)},
		{"Skipped Lines", fmt.Sprint(analysis.Skipped)},
		{"Hourly Shape", components.RenderSparkline(hourly, models.DimensionHour.Slots())},
		{"Watching", onOff(m.state.IsWatching())},
		{"Updated", analysis.UpdatedAt.Format(time.DateTime)},
	}
}

func buildFields() []field {
	return []field{
		{"Version", version.GetVersion()},
		{"Build Date", version.GetDate()},
		{"Git Commit", version.GetCommit()},
		{"Go Version", runtime.Version()},
		{"Platform", runtime.GOOS + "/" + runtime.GOARCH},
	}
}

func onOff(on bool) string {
	if on {
		return "enabled"
	}
	return "disabled"
}
