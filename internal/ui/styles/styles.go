// Package styles holds the palette and the lipgloss styles shared by the
// tabs, the charts and the app chrome.
package styles

import "github.com/charmbracelet/lipgloss"

// Palette, as ANSI 256 color indexes.
var (
	Primary = lipgloss.Color("205")
	Subtle  = lipgloss.Color("240")

	Success = lipgloss.Color("42")
	Error   = lipgloss.Color("196")
	Warning = lipgloss.Color("220")
	Info    = lipgloss.Color("39")

	TextPrimary   = lipgloss.Color("252")
	TextSecondary = lipgloss.Color("245")
	TextMuted     = lipgloss.Color("240")

	panelBg  = lipgloss.Color("235")
	footerBg = lipgloss.Color("237")
)

// Layout.
var (
	// DocStyle frames a whole tab.
	DocStyle = lipgloss.NewStyle().Margin(1, 2).Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(Primary).MarginBottom(1)
	HelpStyle  = lipgloss.NewStyle().Foreground(TextMuted)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Subtle).
			Padding(0, 2).
			MarginBottom(1)
	CardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(Primary).MarginBottom(1)

	// StatLabelStyle and StatValueStyle lay out "label  value" summary rows.
	StatLabelStyle = lipgloss.NewStyle().Foreground(TextSecondary).Width(22)
	StatValueStyle = lipgloss.NewStyle().Foreground(TextPrimary).Bold(true)
)

// Busiest and quietest buckets are marked the same way in every chart.
var (
	BusiestStyle  = lipgloss.NewStyle().Foreground(Error).Bold(true)
	QuietestStyle = lipgloss.NewStyle().Foreground(Info)
)

// App chrome.
var (
	HelpPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(Primary).
			Padding(1, 3).
			Background(panelBg)
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondary).
			Background(footerBg).
			Padding(0, 1)
	ToastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1).
			MarginBottom(1)

	SuccessTextStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorTextStyle   = lipgloss.NewStyle().Foreground(Error)
	WarningTextStyle = lipgloss.NewStyle().Foreground(Warning)
	InfoTextStyle    = lipgloss.NewStyle().Foreground(Info)
)

// HeatStyle colors a bucket by its count relative to the busiest bucket:
// share is count/max in [0, 1]. Idle buckets are muted, the top quarter red.
func HeatStyle(share float64) lipgloss.Style {
	switch {
	case share >= 0.75:
		return ErrorTextStyle
	case share >= 0.5:
		return WarningTextStyle
	case share > 0:
		return SuccessTextStyle
	default:
		return HelpStyle
	}
}

// CenterBoth places content in the middle of a width x height box.
func CenterBoth(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
