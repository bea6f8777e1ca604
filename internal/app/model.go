// Package app is the Bubble Tea program: the tab bar, the shared State the
// tabs render from, and the commands that talk to the service manager.
package app

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/weblog-analyzer/internal/services"
	"github.com/j-veylop/weblog-analyzer/internal/ui/styles"
)

// Model owns the tabs and the state they share. It is a tea.Model.
type Model struct {
	tabs      []Tab
	activeTab TabID

	state    *State
	services *services.Manager
	events   chan services.ServiceEvent
	keymap   KeyMap
	spinner  spinner.Model

	width, height int
	ready         bool
	showHelp      bool
}

// NewModel returns a model that reads from mgr. mgr may be nil, in which
// case nothing is loaded and refresh is a no-op.
func NewModel(mgr *services.Manager) *Model {
	state := NewState()
	if mgr != nil {
		state.SetWatching(mgr.Watching())
	}
	return &Model{
		tabs:     make([]Tab, tabCount),
		state:    state,
		services: mgr,
		keymap:   DefaultKeyMap(),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.Primary)),
		),
	}
}

// SetTabs installs the tab views in TabID order.
func (m *Model) SetTabs(tabs []Tab) {
	m.tabs = tabs
	m.resizeTabs()
}

// State returns the state shared with the tabs.
func (m *Model) State() *State { return m.state }

// ActiveTab returns the visible tab.
func (m *Model) ActiveTab() TabID { return m.activeTab }

// Ready reports whether the terminal size is known.
func (m *Model) Ready() bool { return m.ready }

// Init starts the clock, the spinner and every tab, and kicks off the first
// load when a manager is attached.
func (m *Model) Init() tea.Cmd {
	m.state.SetLoadingNotification("Analyzing log...")

	cmds := []tea.Cmd{m.spinner.Tick, clockCmd()}
	if m.services != nil {
		m.state.SetLoading(ResourceRaw, true)
		cmds = append(cmds, subscribeToServicesCmd(m.services), loadInitialData(m.services))
	}
	for _, tab := range m.tabs {
		if tab != nil {
			cmds = append(cmds, tab.Init())
		}
	}
	return tea.Batch(cmds...)
}

// Update reacts to msg and then hands it to the visible tab.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := m.react(msg)
	if tab := m.currentTab(); tab != nil {
		var cmd tea.Cmd
		m.tabs[m.activeTab], cmd = tab.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) react(msg tea.Msg) []tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height, m.ready = msg.Width, msg.Height, true
		m.resizeTabs()
	case tea.KeyMsg:
		return []tea.Cmd{m.onKey(msg)}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return []tea.Cmd{cmd}

	case TickMsg:
		m.state.ClearExpiredNotifications()
		return []tea.Cmd{clockCmd()}
	case AddNotificationMsg:
		id := m.state.AddNotification(msg.Type, msg.Message, msg.Duration)
		if msg.Duration > 0 {
			return []tea.Cmd{clearNotificationCmd(id, msg.Duration)}
		}
	case RemoveNotificationMsg:
		m.state.RemoveNotification(msg.ID)

	case SubscriptionEventMsg:
		m.events = msg.Channel
		return []tea.Cmd{waitForServiceEventCmd(m.events)}
	case ServiceEventMsg:
		cmds := []tea.Cmd{m.onServiceEvent(msg.Event)}
		if m.events != nil {
			cmds = append(cmds, waitForServiceEventCmd(m.events))
		}
		return cmds

	case AnalysisLoadedMsg:
		m.state.SetAnalysis(msg.Event)
		m.doneLoading(ResourceInitial)
	case RawDataLoadedMsg:
		m.doneLoading(ResourceRaw)
		if msg.Error != nil {
			return []tea.Cmd{notifyErrorCmd(fmt.Sprintf("Failed to load entries: %v", msg.Error))}
		}
		m.state.SetRawData(msg.Text)
	case RefreshResultMsg:
		return m.onRefreshResult(msg)
	}
	return nil
}

// doneLoading clears r and drops the loading toast once nothing
// else is pending.
func (m *Model) doneLoading(r Resource) {
	m.state.SetLoading(r, false)
	if !m.state.AnyLoading() {
		m.state.ClearLoadingNotification()
	}
}

func (m *Model) onServiceEvent(event services.ServiceEvent) tea.Cmd {
	switch e := event.(type) {
	case services.AnalysisUpdatedEvent:
		m.state.SetAnalysis(e)
		if m.services != nil {
			return loadRawCmd(m.services)
		}
	case services.ErrorEvent:
		return notifyErrorCmd(fmt.Sprintf("[%s] %v", e.Service, e.Error))
	}
	return nil
}

// requestRefresh starts a recount unless one is already running.
func (m *Model) requestRefresh() tea.Cmd {
	if m.services == nil || m.state.IsLoading(ResourceRefresh) {
		return nil
	}
	m.state.SetLoading(ResourceRefresh, true)
	m.state.SetLoadingNotification("Refreshing...")
	return refreshCmd(m.services)
}

func (m *Model) onRefreshResult(msg RefreshResultMsg) []tea.Cmd {
	m.doneLoading(ResourceRefresh)
	if msg.Error != nil {
		return []tea.Cmd{notifyErrorCmd(fmt.Sprintf("Refresh failed: %v", msg.Error))}
	}

	m.state.SetAnalysis(msg.Event)
	cmds := []tea.Cmd{notifySuccessCmd(fmt.Sprintf("Analyzed %d entries", msg.Event.Entries))}
	if m.services != nil {
		cmds = append(cmds, loadRawCmd(m.services))
	}
	return cmds
}

// onKey handles the global bindings. Keys it does not claim still reach the
// visible tab through Update.
func (m *Model) onKey(msg tea.KeyMsg) tea.Cmd {
	if id, ok := m.keymap.jumpTarget(msg); ok {
		m.show(id)
		return nil
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		return tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.showHelp = !m.showHelp
	case key.Matches(msg, m.keymap.Escape):
		m.showHelp = false
	case key.Matches(msg, m.keymap.NextTab):
		m.step(1)
	case key.Matches(msg, m.keymap.PrevTab):
		m.step(-1)
	case key.Matches(msg, m.keymap.Refresh):
		return m.requestRefresh()
	}
	return nil
}

// step moves delta tabs along the bar, wrapping at either end. It does
// nothing while the help panel covers the screen.
func (m *Model) step(delta int) {
	n := len(m.tabs)
	if m.showHelp || n == 0 {
		return
	}
	m.show(TabID(((int(m.activeTab)+delta)%n + n) % n))
}

func (m *Model) show(id TabID) {
	if id < 0 || int(id) >= len(m.tabs) {
		return
	}
	m.activeTab = id
	m.resizeTabs()
}

func (m *Model) currentTab() Tab {
	if int(m.activeTab) < len(m.tabs) {
		return m.tabs[m.activeTab]
	}
	return nil
}

func (m *Model) resizeTabs() {
	if !m.ready {
		return
	}
	h := max(m.height-chromeHeight, 0)
	for _, tab := range m.tabs {
		if tab != nil {
			tab.SetSize(m.width, h)
		}
	}
}
