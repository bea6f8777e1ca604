package info

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/weblog-analyzer/internal/app"
	"github.com/j-veylop/weblog-analyzer/internal/config"
	"github.com/j-veylop/weblog-analyzer/internal/models"
	"github.com/j-veylop/weblog-analyzer/internal/services"
	"github.com/j-veylop/weblog-analyzer/internal/version"
)

func TestNew(t *testing.T) {
	m := New(app.NewState(), &config.Config{})
	if m == nil {
		t.Fatal("New returned nil")
	}
	if m.Init() != nil {
		t.Error("Init should return nil")
	}
}

func TestModel_Update(t *testing.T) {
	m := New(app.NewState(), &config.Config{})

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if updated == nil {
		t.Error("Update returned nil model")
	}
	updated, cmd := m.Update(nil)
	if updated == nil || cmd != nil {
		t.Error("non-key messages should be ignored")
	}
}

func TestModel_View(t *testing.T) {
	cfg := &config.Config{
		LogSource:     "access.log",
		Watch:         true,
		WatchDebounce: 100 * time.Millisecond,
		LogLevel:      "info",
	}
	m := New(app.NewState(), cfg)
	m.SetSize(100, 60)

	view := m.View()
	for _, want := range []string{"access.log", "Database:", "none", "100ms", "No analysis yet", version.Name} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModel_ViewWithAnalysis(t *testing.T) {
	state := app.NewState()
	hourly := make([]int, 24)
	hourly[23] = 4
	state.SetAnalysis(services.AnalysisUpdatedEvent{
		Summaries: []models.Summary{{Dimension: models.DimensionHour, Counts: hourly, Total: 4}},
		Source:    "sqlite:weblog.db",
		Entries:   42,
		Skipped:   3,
		UpdatedAt: time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
	})
	m := New(state, nil)
	m.SetSize(100, 60)

	view := m.View()
	for _, want := range []string{"Configuration not loaded", "sqlite:weblog.db", "42", "Skipped Lines:", "2024-03-05 10:00:00", "▁▁▁▁▁▁▁▁▁▁▁▁▁▁▁▁▁▁▁▁▁▁▁█"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestOnOff(t *testing.T) {
	if onOff(true) != "enabled" || onOff(false) != "disabled" {
		t.Error("onOff returned wrong labels")
	}
}

func TestModel_Help(t *testing.T) {
	m := New(app.NewState(), nil)
	if len(m.ShortHelp()) != 4 {
		t.Errorf("ShortHelp = %d bindings, want 4", len(m.ShortHelp()))
	}
	if len(m.FullHelp()) != 1 {
		t.Errorf("FullHelp = %d groups, want 1", len(m.FullHelp()))
	}
}
