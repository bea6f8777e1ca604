package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/weblog-analyzer/internal/models"
	"github.com/j-veylop/weblog-analyzer/internal/ui/components"
	"github.com/j-veylop/weblog-analyzer/internal/ui/styles"
)

var calendarDimensions = []models.Dimension{
	models.DimensionDay,
	models.DimensionMonth,
	models.DimensionYear,
}

// View renders the calendar tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return m.pane.Waiting()
	}

	analysis, _ := m.state.GetAnalysis()

	sections := []string{
		m.renderTitle(),
		m.renderOverview(analysis.Summary),
		m.renderDetail(analysis.Summary(m.focus)),
	}

	m.pane.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))
	return m.pane.Frame(m.pane.View())
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Calendar Traffic")
	subtitle := styles.HelpStyle.Render("Accesses by day of month, month and year")
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) cardWidth() int {
	return max(m.pane.Width()-8, 40)
}

// BucketLabel names a bucket value for display.
func BucketLabel(d models.Dimension, value int) string {
	if d == models.DimensionMonth && value >= 1 && value <= 12 {
		return time.Month(value).String()[:3]
	}
	return strconv.Itoa(value)
}

func labels(s models.Summary) []string {
	out := make([]string, len(s.Counts))
	for i := range s.Counts {
		out[i] = BucketLabel(s.Dimension, s.Label(i))
	}
	return out
}

// extremes formats the busiest and quietest buckets of a summary.
func extremes(s models.Summary) string {
	if s.Total == 0 {
		return styles.HelpStyle.Render(components.NoDataText)
	}
	return fmt.Sprintf("%s %s   %s %s",
		styles.StatLabelStyle.UnsetWidth().Render("busiest"),
		styles.BusiestStyle.Render(fmt.Sprintf("%s (%d)", BucketLabel(s.Dimension, s.Label(s.Busiest)), s.BusiestCount)),
		styles.StatLabelStyle.UnsetWidth().Render("quietest"),
		styles.QuietestStyle.Render(fmt.Sprintf("%s (%d)", BucketLabel(s.Dimension, s.Label(s.Quietest)), s.QuietestCount)),
	)
}

// renderOverview shows a sparkline row per calendar dimension.
func (m *Model) renderOverview(summary func(models.Dimension) models.Summary) string {
	rows := []string{styles.CardTitleStyle.Render("Overview")}
	for _, d := range calendarDimensions {
		s := summary(d)
		name := d.String()
		if d == m.focus {
			name = "▸ " + name
		} else {
			name = "  " + name
		}
		spark := components.RenderColoredSparkline(components.Floats(s.Counts), len(s.Counts))
		rows = append(rows, fmt.Sprintf("%-10s %s  %s",
			name, spark+strings.Repeat(" ", max(31-len(s.Counts), 0)), extremes(s)))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// renderDetail draws the focused dimension as a bar chart.
func (m *Model) renderDetail(s models.Summary) string {
	title := fmt.Sprintf("By %s", strings.ToLower(m.focus.String()))
	if m.focus == models.DimensionDay {
		title = "By day of month"
	}

	body := components.RenderBarChart(s.Counts, labels(s), m.cardWidth()-6, s.Busiest)
	if s.Total == 0 {
		body = styles.HelpStyle.Render("No accesses recorded yet.")
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.CardTitleStyle.Render(title),
		body,
		"",
		styles.HelpStyle.Render(fmt.Sprintf("Total %d", s.Total)),
	))
}
