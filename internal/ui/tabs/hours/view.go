package hours

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/weblog-analyzer/internal/models"
	"github.com/j-veylop/weblog-analyzer/internal/ui/components"
	"github.com/j-veylop/weblog-analyzer/internal/ui/styles"
)

const chartHeight = 10

// View renders the hours tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return m.pane.Waiting()
	}

	analysis, _ := m.state.GetAnalysis()
	summary := analysis.Summary(models.DimensionHour)

	sections := []string{m.renderTitle()}
	if summary.Total == 0 {
		sections = append(sections, styles.HelpStyle.Render("No accesses recorded yet."))
	} else {
		sections = append(sections,
			m.renderSummary(summary, analysis.BusiestTwoHours, analysis.TwoHourAccesses),
			m.renderChart(summary),
			m.renderHeatmap(summary),
		)
	}

	m.pane.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))
	return m.pane.Frame(m.pane.View())
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Hourly Traffic")
	subtitle := styles.HelpStyle.Render("Accesses by hour of day")
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) cardWidth() int {
	return max(m.pane.Width()-8, 40)
}

// HourRange formats width consecutive hours starting at start, e.g. "09:00-10:59".
func HourRange(start, width int) string {
	end := (start + width - 1) % 24
	return fmt.Sprintf("%02d:00-%02d:59", start, end)
}

func statRow(label, value string) string {
	return styles.StatLabelStyle.Render(label) + value
}

func (m *Model) renderSummary(s models.Summary, twoHours, twoHourAccesses int) string {
	rows := []string{
		styles.CardTitleStyle.Render("Summary"),
		statRow("Total accesses", styles.StatValueStyle.Render(fmt.Sprint(s.Total))),
		statRow("Busiest hour", styles.BusiestStyle.Render(
			fmt.Sprintf("%s (%d)", HourRange(s.Busiest, 1), s.BusiestCount))),
		statRow("Quietest hour", styles.QuietestStyle.Render(
			fmt.Sprintf("%s (%d)", HourRange(s.Quietest, 1), s.QuietestCount))),
	}
	if twoHours >= 0 {
		rows = append(rows, statRow("Busiest two hours", styles.StatValueStyle.Render(
			fmt.Sprintf("%s (%d)", HourRange(twoHours, 2), twoHourAccesses))))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) renderChart(s models.Summary) string {
	var body string
	if m.showTable {
		body = renderTable(s)
	} else {
		body = components.RenderLineChart(components.Floats(s.Counts), m.cardWidth()-14, chartHeight,
			"accesses per hour, 00 to 23")
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, styles.CardTitleStyle.Render("Distribution"), body),
	)
}

// renderTable lists the counts in two columns of twelve hours.
func renderTable(s models.Summary) string {
	var b strings.Builder
	half := (len(s.Counts) + 1) / 2
	for i := 0; i < half; i++ {
		b.WriteString(tableCell(s, i))
		if j := i + half; j < len(s.Counts) {
			b.WriteString("    ")
			b.WriteString(tableCell(s, j))
		}
		if i < half-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func tableCell(s models.Summary, i int) string {
	cell := fmt.Sprintf("%02d: %6d", s.Label(i), s.Counts[i])
	switch i {
	case s.Busiest:
		return styles.BusiestStyle.Render(cell)
	case s.Quietest:
		return styles.QuietestStyle.Render(cell)
	default:
		return cell
	}
}

func (m *Model) renderHeatmap(s models.Summary) string {
	legend := components.RenderLegend([]components.LegendItem{
		{Label: "idle", Color: styles.Subtle},
		{Label: "light", Color: styles.Success},
		{Label: "busy", Color: styles.Warning},
		{Label: "peak", Color: styles.Error},
	})

	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.CardTitleStyle.Render("Heatmap"),
		components.RenderHourlyHeatmap(s.Counts),
		"",
		legend,
	))
}
