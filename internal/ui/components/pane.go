package components

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/weblog-analyzer/internal/ui/styles"
)

// Pane is the scrolling body of a tab. Until the tab has data it shows a
// Pending placeholder; after that a viewport sized to the tab minus an inset
// for whatever the tab draws around it.
type Pane struct {
	vp      viewport.Model
	pending Pending

	top, bottom key.Binding

	width, height  int
	insetX, insetY int
}

// NewPane returns a pane whose placeholder says waiting.
func NewPane(waiting string, insetX, insetY int) Pane {
	return Pane{
		vp:      viewport.New(0, 0),
		pending: NewPending(waiting),
		top:     key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		bottom:  key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		insetX:  insetX,
		insetY:  insetY,
	}
}

// Init starts the placeholder animation.
func (p *Pane) Init() tea.Cmd {
	return p.pending.Init()
}

// Update animates the placeholder on spinner ticks and scrolls on keys.
func (p *Pane) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		p.pending, cmd = p.pending.Update(msg)
		return cmd
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.top):
			p.vp.GotoTop()
			return nil
		case key.Matches(msg, p.bottom):
			p.vp.GotoBottom()
			return nil
		}
		var cmd tea.Cmd
		p.vp, cmd = p.vp.Update(msg)
		return cmd
	}
	return nil
}

// SetSize records the tab's size. The viewport keeps at least one row.
func (p *Pane) SetSize(width, height int) {
	p.width, p.height = width, height
	p.vp.Width = max(width-p.insetX, 0)
	p.vp.Height = max(height-p.insetY, 1)
}

// Width is the tab width last passed to SetSize.
func (p *Pane) Width() int { return p.width }

// Waiting renders the placeholder over the whole tab.
func (p *Pane) Waiting() string {
	return p.pending.View(p.width, p.height)
}

// SetContent replaces the scrolled text. The offset survives unless the new
// text is shorter than it.
func (p *Pane) SetContent(content string) {
	p.vp.SetContent(content)
}

// View renders the visible window of the content.
func (p *Pane) View() string {
	return p.vp.View()
}

// Frame wraps body in the document margins, sized to the tab.
func (p *Pane) Frame(body string) string {
	return styles.DocStyle.Width(p.width).Height(p.height).Render(body)
}

// Rewind scrolls back to the first line.
func (p *Pane) Rewind() { p.vp.GotoTop() }

// Position reports the scroll state.
func (p *Pane) Position() (offset int, percent float64, atTop, atBottom bool) {
	return p.vp.YOffset, p.vp.ScrollPercent(), p.vp.AtTop(), p.vp.AtBottom()
}

// ViewportSize is the size of the scrolling window.
func (p *Pane) ViewportSize() (width, height int) {
	return p.vp.Width, p.vp.Height
}

// Keys lists the scroll bindings for help.
func (p *Pane) Keys() []key.Binding {
	km := p.vp.KeyMap
	return []key.Binding{km.Up, km.Down, km.PageUp, km.PageDown, p.top, p.bottom}
}
