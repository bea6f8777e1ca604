// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/j-veylop/weblog-analyzer/internal/ui/styles"
)

// NoDataText is shown in place of a chart with nothing to plot.
const NoDataText = "No data available"

// SparkChars are the sparkline glyphs from lowest to highest.
var SparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// HeatmapBlocks are Unicode block characters for heatmaps (low to high intensity).
var HeatmapBlocks = []rune{'░', '▒', '▓', '█'}

// Floats converts count slots to chart values.
func Floats(counts []int) []float64 {
	out := make([]float64, len(counts))
	for i, c := range counts {
		out[i] = float64(c)
	}
	return out
}

// maxOf is the largest value, or 1 when nothing is positive so callers can
// divide by it.
func maxOf(values []float64) float64 {
	peak := 1.0
	for _, v := range values {
		peak = max(peak, v)
	}
	return peak
}

// level maps v onto [0, steps-1] relative to maxVal.
func level(v, maxVal float64, steps int) int {
	n := int((v / maxVal) * float64(steps-1))
	return min(max(n, 0), steps-1)
}

// RenderLineChart creates a single-series ASCII line chart.
func RenderLineChart(data []float64, width, height int, caption string) string {
	if len(data) == 0 {
		return styles.HelpStyle.Render(NoDataText)
	}

	return asciigraph.Plot(data,
		asciigraph.Height(max(height, 3)),
		asciigraph.Width(max(width, 20)),
		asciigraph.LowerBound(0),
		asciigraph.Precision(0),
		asciigraph.Caption(caption),
	)
}

// RenderBarChart creates a horizontal bar chart. The bar at index highlight
// is drawn in the busiest style; pass -1 to highlight nothing.
func RenderBarChart(values []int, labels []string, width, highlight int) string {
	if len(values) == 0 {
		return styles.HelpStyle.Render(NoDataText)
	}

	peak := maxOf(Floats(values))
	gutter := 0
	for _, l := range labels {
		gutter = max(gutter, lipgloss.Width(l))
	}
	// Ten columns stay free for the separator and the count.
	span := max(width-gutter-10, 10)

	rows := make([]string, len(values))
	for i, v := range values {
		var label string
		if i < len(labels) {
			label = labels[i]
		}
		bar := strings.Repeat("█", max(int(float64(v)/peak*float64(span)), 0))
		if i == highlight {
			bar = styles.BusiestStyle.Render(bar)
		}
		rows[i] = fmt.Sprintf("%*s │%s %d", gutter, label, bar, v)
	}
	return strings.Join(rows, "\n")
}

// RenderHourlyHeatmap draws one shaded block per hour with a gap at noon.
func RenderHourlyHeatmap(counts []int) string {
	hours := make([]float64, 24)
	copy(hours, Floats(counts))
	peak := maxOf(hours)

	var b strings.Builder
	b.WriteString("00 ")
	for h, v := range hours {
		if h == 12 {
			b.WriteByte(' ')
		}
		b.WriteString(glyph(HeatmapBlocks, v, peak, true))
	}
	b.WriteString(" 23")
	return b.String()
}

// glyph picks the rune for v out of ramp and optionally tints it by share.
func glyph(ramp []rune, v, peak float64, tinted bool) string {
	r := string(ramp[level(v, peak, len(ramp))])
	if !tinted {
		return r
	}
	return styles.HeatStyle(v / peak).Render(r)
}

// sparkline samples values down to at most width cells.
func sparkline(values []float64, width int, tinted bool) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}
	peak := maxOf(values)
	stride := max(float64(len(values))/float64(width), 1)

	var b strings.Builder
	for cell := 0; cell < width; cell++ {
		at := int(float64(cell) * stride)
		if at >= len(values) {
			break
		}
		b.WriteString(glyph(SparkChars, values[at], peak, tinted))
	}
	return b.String()
}

// RenderSparkline creates a compact inline sparkline chart.
func RenderSparkline(values []float64, width int) string {
	return sparkline(values, width, false)
}

// RenderColoredSparkline creates a sparkline colored by intensity.
func RenderColoredSparkline(values []float64, width int) string {
	return sparkline(values, width, true)
}

// RenderLegend creates a chart legend.
func RenderLegend(items []LegendItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		colorBox := lipgloss.NewStyle().Foreground(item.Color).Render("■")
		parts = append(parts, fmt.Sprintf("%s %s", colorBox, item.Label))
	}
	return strings.Join(parts, "  ")
}

// LegendItem represents a single legend entry.
type LegendItem struct {
	Label string
	Color lipgloss.Color
}
