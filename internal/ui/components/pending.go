package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/weblog-analyzer/internal/ui/styles"
)

// Pending is the placeholder a tab shows until the first analysis arrives.
type Pending struct {
	spin    spinner.Model
	message string
}

// NewPending returns a placeholder that animates next to message.
func NewPending(message string) Pending {
	spin := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.Primary)),
	)
	return Pending{spin: spin, message: message}
}

// Init starts the animation.
func (p Pending) Init() tea.Cmd {
	return p.spin.Tick
}

// Update advances the animation on spinner ticks and ignores everything else.
func (p Pending) Update(msg tea.Msg) (Pending, tea.Cmd) {
	if _, ok := msg.(spinner.TickMsg); !ok {
		return p, nil
	}
	var cmd tea.Cmd
	p.spin, cmd = p.spin.Update(msg)
	return p, cmd
}

// View renders the animation and message centered in a width x height area.
func (p Pending) View(width, height int) string {
	line := p.spin.View() + " " + lipgloss.NewStyle().Foreground(styles.TextSecondary).Render(p.message)
	return styles.CenterBoth(line, width, height)
}
