package app

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/weblog-analyzer/internal/services"
)

// Toast lifetimes.
const (
	SuccessToastDuration = 5 * time.Second
	ErrorToastDuration   = 10 * time.Second
)

// ClockInterval is how often expired toasts are swept.
const ClockInterval = 2 * time.Second

func clockCmd() tea.Cmd {
	return tea.Tick(ClockInterval, func(t time.Time) tea.Msg { return TickMsg{Time: t} })
}

// loadInitialData fetches the startup analysis and the raw dump together.
func loadInitialData(mgr *services.Manager) tea.Cmd {
	return tea.Batch(loadAnalysisCmd(mgr), loadRawCmd(mgr))
}

func loadAnalysisCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		return AnalysisLoadedMsg{Event: mgr.InitialState()}
	}
}

// refreshCmd re-reads the log and recounts on the command goroutine.
func refreshCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		err := mgr.Refresh()
		return RefreshResultMsg{Event: mgr.InitialState(), Error: err}
	}
}

// loadRawCmd renders every entry of the source in log format.
func loadRawCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		var b strings.Builder
		err := mgr.Analyzer().PrintData(&b)
		return RawDataLoadedMsg{Text: b.String(), Error: err}
	}
}

// subscribeToServicesCmd subscribes now and delivers the channel as a message.
func subscribeToServicesCmd(mgr *services.Manager) tea.Cmd {
	ch, _ := mgr.Subscribe()
	return func() tea.Msg { return SubscriptionEventMsg{Channel: ch} }
}

// waitForServiceEventCmd blocks for the next event. A closed channel ends
// the loop with a nil message.
func waitForServiceEventCmd(ch <-chan services.ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		if event, ok := <-ch; ok {
			return ServiceEventMsg{Event: event}
		}
		return nil
	}
}

func clearNotificationCmd(id string, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg { return RemoveNotificationMsg{ID: id} })
}

func toastCmd(kind NotificationType, text string, d time.Duration) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{Type: kind, Message: text, Duration: d}
	}
}

func notifySuccessCmd(text string) tea.Cmd {
	return toastCmd(NotificationSuccess, text, SuccessToastDuration)
}

func notifyErrorCmd(text string) tea.Cmd {
	return toastCmd(NotificationError, text, ErrorToastDuration)
}
