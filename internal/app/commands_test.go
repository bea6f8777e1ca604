package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/weblog-analyzer/internal/config"
	"github.com/j-veylop/weblog-analyzer/internal/models"
	"github.com/j-veylop/weblog-analyzer/internal/services"
)

const testLog = "2024 01 10 09 00\n2024 01 11 09 30\n2024 02 11 17 45\n"

// newTestManager analyzes a three-entry log without watching it.
func newTestManager(t *testing.T) (*services.Manager, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "access.log")
	if err := os.WriteFile(path, []byte(testLog), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	mgr, err := services.NewManager(&config.Config{LogSource: path})
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	t.Cleanup(func() { _ = mgr.Close() })
	return mgr, path
}

func TestClockCmd(t *testing.T) {
	if clockCmd() == nil {
		t.Error("clockCmd returned nil")
	}
}

func TestNotifyCmds(t *testing.T) {
	tests := []struct {
		name     string
		fn       func(string) tea.Cmd
		want     NotificationType
		duration time.Duration
	}{
		{"Success", notifySuccessCmd, NotificationSuccess, SuccessToastDuration},
		{"Error", notifyErrorCmd, NotificationError, ErrorToastDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.fn("msg")()

			addMsg, ok := msg.(AddNotificationMsg)
			if !ok {
				t.Fatalf("Expected AddNotificationMsg, got %T", msg)
			}
			if addMsg.Type != tt.want || addMsg.Message != "msg" || addMsg.Duration != tt.duration {
				t.Errorf("AddNotificationMsg = %+v", addMsg)
			}
		})
	}
}

func TestClearNotificationCmd(t *testing.T) {
	msg := clearNotificationCmd("id", time.Millisecond)()
	remove, ok := msg.(RemoveNotificationMsg)
	if !ok || remove.ID != "id" {
		t.Errorf("clearNotificationCmd() = %#v, want RemoveNotificationMsg{id}", msg)
	}
}

func TestLoadAnalysisCmd(t *testing.T) {
	mgr, _ := newTestManager(t)

	msg, ok := loadAnalysisCmd(mgr)().(AnalysisLoadedMsg)
	if !ok {
		t.Fatal("Expected AnalysisLoadedMsg")
	}
	if msg.Event.Entries != 3 {
		t.Errorf("Entries = %d, want 3", msg.Event.Entries)
	}
	if got := msg.Event.Summary(models.DimensionHour).Busiest; got != 9 {
		t.Errorf("busiest hour = %d, want 9", got)
	}
}

func TestRefreshCmd(t *testing.T) {
	mgr, path := newTestManager(t)

	if err := os.WriteFile(path, []byte(testLog+"2024 03 01 17 00\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	msg, ok := refreshCmd(mgr)().(RefreshResultMsg)
	if !ok {
		t.Fatal("Expected RefreshResultMsg")
	}
	if msg.Error != nil {
		t.Fatalf("refresh error: %v", msg.Error)
	}
	if msg.Event.Entries != 4 {
		t.Errorf("Entries = %d, want 4", msg.Event.Entries)
	}
}

func TestLoadRawCmd(t *testing.T) {
	mgr, _ := newTestManager(t)

	msg, ok := loadRawCmd(mgr)().(RawDataLoadedMsg)
	if !ok {
		t.Fatal("Expected RawDataLoadedMsg")
	}
	if msg.Error != nil {
		t.Fatalf("raw error: %v", msg.Error)
	}
	if got := strings.Count(msg.Text, "\n"); got != 3 {
		t.Errorf("raw lines = %d, want 3", got)
	}
	if !strings.HasPrefix(msg.Text, "2024 01 10 09 00") {
		t.Errorf("raw text = %q", msg.Text)
	}
}

func TestWaitForServiceEventCmd(t *testing.T) {
	ch := make(chan services.ServiceEvent, 1)
	ch <- services.ErrorEvent{Service: "x"}

	msg, ok := waitForServiceEventCmd(ch)().(ServiceEventMsg)
	if !ok {
		t.Fatal("Expected ServiceEventMsg")
	}
	if _, ok := msg.Event.(services.ErrorEvent); !ok {
		t.Errorf("Event = %T, want ErrorEvent", msg.Event)
	}

	close(ch)
	if got := waitForServiceEventCmd(ch)(); got != nil {
		t.Errorf("closed channel should yield nil, got %v", got)
	}
}
