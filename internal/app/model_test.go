package app

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/weblog-analyzer/internal/models"
	"github.com/j-veylop/weblog-analyzer/internal/services"
)

// stubTab records the messages it receives.
type stubTab struct {
	name          string
	width, height int
	received      []tea.Msg
}

func (s *stubTab) Init() tea.Cmd { return nil }
func (s *stubTab) Update(msg tea.Msg) (Tab, tea.Cmd) {
	s.received = append(s.received, msg)
	return s, nil
}
func (s *stubTab) View() string              { return "stub:" + s.name }
func (s *stubTab) SetSize(width, height int) { s.width, s.height = width, height }
func (s *stubTab) ShortHelp() []key.Binding {
	return []key.Binding{key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stub action"))}
}
func (s *stubTab) FullHelp() [][]key.Binding { return [][]key.Binding{s.ShortHelp()} }
func runeKey(r rune) tea.KeyMsg              { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }
func readyModel(mgr *services.Manager) *Model {
	model := NewModel(mgr)
	model.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return model
}

func sampleAnalysis() services.AnalysisUpdatedEvent {
	hours := make([]int, 24)
	hours[9] = 2
	hours[17] = 1
	return services.AnalysisUpdatedEvent{
		Summaries: []models.Summary{{
			Dimension:    models.DimensionHour,
			Counts:       hours,
			Busiest:      9,
			BusiestCount: 2,
			Total:        3,
		}},
		Entries:   3,
		Source:    "access.log",
		UpdatedAt: time.Date(2024, 1, 1, 12, 30, 0, 0, time.UTC),
	}
}

func TestNewModel(t *testing.T) {
	model := NewModel(nil)
	if model == nil {
		t.Fatal("NewModel returned nil")
	}
	if model.state == nil {
		t.Error("State should be initialized")
	}
	if model.activeTab != TabHours {
		t.Error("Default tab should be Hours")
	}
	if len(model.tabs) != 4 {
		t.Errorf("Should have 4 tabs placeholder, got %d", len(model.tabs))
	}
}

func TestModel_Init(t *testing.T) {
	model := NewModel(nil)
	if model.Init() == nil {
		t.Error("Init returned nil command")
	}

	notifs := model.state.GetNotifications()
	if len(notifs) != 1 || notifs[0].ID != LoadingNotificationID {
		t.Errorf("Init should show a loading notification, got %+v", notifs)
	}
}

func TestModel_Update_WindowSize(t *testing.T) {
	model := NewModel(nil)
	tabs := []Tab{&stubTab{name: "a"}, &stubTab{name: "b"}, &stubTab{name: "c"}}
	model.SetTabs(tabs)

	newModel, _ := model.Update(tea.WindowSizeMsg{Width: 100, Height: 50})
	m, ok := newModel.(*Model)
	if !ok {
		t.Fatal("Update returned wrong model type")
	}

	if m.width != 100 || m.height != 50 {
		t.Errorf("size = %dx%d, want 100x50", m.width, m.height)
	}
	if !m.Ready() {
		t.Error("Model should be ready after WindowSizeMsg")
	}
	for i, tab := range tabs {
		st := tab.(*stubTab)
		if st.width != 100 || st.height != 44 {
			t.Errorf("tab %d size = %dx%d, want 100x44", i, st.width, st.height)
		}
	}
}

func TestModel_TabSwitching(t *testing.T) {
	model := readyModel(nil)

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want TabID
	}{
		{"Key3", runeKey('3'), TabRaw},
		{"Key4", runeKey('4'), TabInfo},
		{"NextWraps", tea.KeyMsg{Type: tea.KeyTab}, TabHours},
		{"PrevWraps", tea.KeyMsg{Type: tea.KeyShiftTab}, TabInfo},
		{"Key1", runeKey('1'), TabHours},
		{"Key2", runeKey('2'), TabCalendar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model.Update(tt.msg)
			if model.activeTab != tt.want {
				t.Errorf("ActiveTab = %v, want %v", model.activeTab, tt.want)
			}
		})
	}
}

func TestModel_ForwardsToActiveTab(t *testing.T) {
	model := NewModel(nil)
	hours, calendar := &stubTab{name: "hours"}, &stubTab{name: "calendar"}
	model.SetTabs([]Tab{hours, calendar, &stubTab{name: "raw"}})

	model.Update(runeKey('x'))
	if len(hours.received) != 1 || len(calendar.received) != 0 {
		t.Errorf("only the active tab should receive messages: hours=%d calendar=%d",
			len(hours.received), len(calendar.received))
	}
}

func TestModel_ArrowKeysBelongToTab(t *testing.T) {
	model := readyModel(nil)
	calendar := &stubTab{name: "calendar"}
	model.SetTabs([]Tab{&stubTab{name: "hours"}, calendar, &stubTab{name: "raw"}, &stubTab{name: "info"}})
	model.Update(runeKey('2'))
	calendar.received = nil

	for _, msg := range []tea.KeyMsg{{Type: tea.KeyRight}, {Type: tea.KeyLeft}, runeKey('l'), runeKey('h')} {
		model.Update(msg)
		if model.activeTab != TabCalendar {
			t.Fatalf("%s switched to %v", msg, model.activeTab)
		}
	}
	if len(calendar.received) != 4 {
		t.Errorf("calendar received %d keys, want 4", len(calendar.received))
	}
}

func TestModel_Quit(t *testing.T) {
	model := NewModel(nil)
	cmd := model.onKey(runeKey('q'))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestModel_Update_Tick(t *testing.T) {
	model := NewModel(nil)

	_, cmd := model.Update(TickMsg{Time: time.Now()})
	if cmd == nil {
		t.Error("TickMsg should return a command (next tick)")
	}
}

func TestModel_View(t *testing.T) {
	model := NewModel(nil)

	// Not ready
	if view := model.View(); !strings.Contains(view, "Waiting for terminal size") {
		t.Error("View should say it is waiting when not ready")
	}

	model.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	view := model.View()
	for _, name := range []string{"Hours", "Calendar", "Raw"} {
		if !strings.Contains(view, name) {
			t.Errorf("View should show %s tab", name)
		}
	}
	// Should show placeholder since tabs are nil
	if !strings.Contains(view, "No view is registered") {
		t.Error("View should show placeholder text")
	}
	if !strings.Contains(view, "? help") {
		t.Error("View should show the status bar")
	}
}

func TestModel_ViewWithTabAndAnalysis(t *testing.T) {
	model := NewModel(nil)
	model.SetTabs([]Tab{&stubTab{name: "hours"}, nil, nil})
	model.Update(tea.WindowSizeMsg{Width: 100, Height: 24})
	model.Update(AnalysisLoadedMsg{Event: sampleAnalysis()})

	view := model.View()
	if !strings.Contains(view, "stub:hours") {
		t.Error("View should render the active tab")
	}
	if !strings.Contains(view, "access.log") || !strings.Contains(view, "3 entries") {
		t.Errorf("status bar should describe the analysis: %q", view)
	}
	if !strings.Contains(view, "12:30:00") {
		t.Error("status bar should show the update time")
	}
}

func TestModel_Help(t *testing.T) {
	model := NewModel(nil)
	model.SetTabs([]Tab{&stubTab{name: "hours"}, nil, nil})
	model.Update(tea.WindowSizeMsg{Width: 80, Height: 40})

	model.Update(runeKey('?'))
	if !model.showHelp {
		t.Error("showHelp should be true")
	}

	view := model.View()
	if !strings.Contains(view, "Key Bindings") {
		t.Error("View should show help modal")
	}
	if !strings.Contains(view, "stub action") {
		t.Error("help should list the active tab's bindings")
	}

	// Tab keys are ignored while help is open.
	model.Update(tea.KeyMsg{Type: tea.KeyTab})
	if model.activeTab != TabHours {
		t.Error("next tab should be ignored while help is shown")
	}

	model.onKey(tea.KeyMsg{Type: tea.KeyEsc})
	if model.showHelp {
		t.Error("Esc should close help")
	}

	model.onKey(runeKey('?'))
	model.onKey(runeKey('?'))
	if model.showHelp {
		t.Error("showHelp should be false after toggling twice")
	}
}

func TestModel_Notifications(t *testing.T) {
	model := NewModel(nil)

	model.Update(AddNotificationMsg{
		Message:  "Test Note",
		Type:     NotificationSuccess,
		Duration: 0,
	})

	notifs := model.state.GetNotifications()
	if len(notifs) != 1 {
		t.Errorf("Expected 1 notification, got %d", len(notifs))
	}

	model.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if view := model.View(); !strings.Contains(view, "Test Note") {
		t.Error("View should show notification")
	}

	model.Update(RemoveNotificationMsg{ID: notifs[0].ID})
	if len(model.state.GetNotifications()) != 0 {
		t.Error("notification should be removed")
	}
}

func TestModel_AddNotificationSchedulesRemoval(t *testing.T) {
	model := NewModel(nil)
	_, cmd := model.Update(AddNotificationMsg{Message: "bye", Type: NotificationSuccess, Duration: time.Second})
	if cmd == nil {
		t.Error("timed notification should schedule its removal")
	}
}

func TestModel_HandleServiceEvent(t *testing.T) {
	model := NewModel(nil)

	model.onServiceEvent(sampleAnalysis())
	analysis, ok := model.state.GetAnalysis()
	if !ok || analysis.Entries != 3 {
		t.Errorf("analysis = %+v, want 3 entries", analysis)
	}

	cmd := model.onServiceEvent(services.ErrorEvent{Service: "watcher", Error: errors.New("gone")})
	if cmd == nil {
		t.Fatal("Error event should trigger notification command")
	}
	msg, ok := cmd().(AddNotificationMsg)
	if !ok || msg.Type != NotificationError || !strings.Contains(msg.Message, "[watcher] gone") {
		t.Errorf("error notification = %#v", msg)
	}
}

func TestModel_LoadingLifecycle(t *testing.T) {
	model := NewModel(nil)
	model.Init()
	model.state.SetLoading(ResourceRaw, true)

	model.Update(AnalysisLoadedMsg{Event: sampleAnalysis()})
	if model.state.IsInitialLoading() {
		t.Error("initial loading should be cleared")
	}
	if len(model.state.GetNotifications()) != 1 {
		t.Error("loading notification should stay while raw data loads")
	}

	model.Update(RawDataLoadedMsg{Text: "2024 01 01 00 00\n"})
	if model.state.AnyLoading() {
		t.Error("nothing should be loading")
	}
	if len(model.state.GetNotifications()) != 0 {
		t.Error("loading notification should be cleared")
	}
	if model.state.GetRawData() != "2024 01 01 00 00\n" {
		t.Error("raw data should be stored")
	}
}

func TestModel_RawDataError(t *testing.T) {
	model := NewModel(nil)
	_, cmd := model.Update(RawDataLoadedMsg{Error: errors.New("locked")})
	if cmd == nil {
		t.Error("raw data error should notify")
	}
}

func TestModel_RefreshResult(t *testing.T) {
	model := NewModel(nil)
	model.state.SetLoading(ResourceRefresh, true)

	cmds := model.onRefreshResult(RefreshResultMsg{Event: sampleAnalysis()})
	if model.state.IsLoading(ResourceRefresh) {
		t.Error("refresh should no longer be pending")
	}
	msg, ok := cmds[0]().(AddNotificationMsg)
	if !ok || msg.Type != NotificationSuccess || !strings.Contains(msg.Message, "3 entries") {
		t.Errorf("success notification = %#v", msg)
	}

	cmds = model.onRefreshResult(RefreshResultMsg{Error: errors.New("fail")})
	msg, ok = cmds[0]().(AddNotificationMsg)
	if !ok || msg.Type != NotificationError {
		t.Errorf("error notification = %#v", msg)
	}
}

func TestModel_RefreshWithManager(t *testing.T) {
	mgr, _ := newTestManager(t)
	model := readyModel(mgr)

	if model.state.IsWatching() != mgr.Watching() {
		t.Error("watching flag should mirror the manager")
	}

	cmd := model.onKey(runeKey('r'))
	if cmd == nil {
		t.Fatal("r should start a refresh")
	}
	if !model.state.IsLoading(ResourceRefresh) {
		t.Error("refresh should be marked as loading")
	}
	if model.onKey(runeKey('r')) != nil {
		t.Error("a second r should not start another refresh while one is running")
	}

	result, ok := refreshCmd(mgr)().(RefreshResultMsg)
	if !ok {
		t.Fatal("Expected RefreshResultMsg")
	}
	model.Update(result)
	analysis, _ := model.state.GetAnalysis()
	if analysis.Entries != 3 {
		t.Errorf("Entries = %d, want 3", analysis.Entries)
	}
}

func TestModel_RefreshWithoutManager(t *testing.T) {
	model := NewModel(nil)
	if model.requestRefresh() != nil {
		t.Error("refresh without a manager should do nothing")
	}
	if model.onKey(runeKey('r')) != nil {
		t.Error("r without a manager should do nothing")
	}
}

func TestModel_HandleSpinnerTick(t *testing.T) {
	model := NewModel(nil)
	_, cmd := model.Update(spinner.TickMsg{})
	if cmd == nil {
		t.Error("Spinner tick should return command")
	}
}

func TestCenterOver(t *testing.T) {
	got := centerOver("aaaaaaaaaa\nbbbbbbbbbb\ncccccccccc", "XX", 10, 3)
	lines := strings.Split(got, "\n")
	if lines[1] != "bbbbXXbbbb" {
		t.Errorf("overlay line = %q, want %q", lines[1], "bbbbXXbbbb")
	}
	if lines[0] != "aaaaaaaaaa" || lines[2] != "cccccccccc" {
		t.Error("lines outside the overlay should be untouched")
	}
}

func TestStamp(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		box     string
		x, y    int
		minRows int
		want    string
	}{
		{"PadsShortLine", "ab\ncd", "ZZ", 4, 1, 0, "ab\ncd  ZZ"},
		{"KeepsRightSide", "abcdef", "Z", 2, 0, 0, "abZdef"},
		{"ClipsBelowBase", "ab", "Y\nZ", 0, 0, 0, "Yb"},
		{"PadsRows", "ab", "Y\nZ", 0, 1, 3, "ab\nY\nZ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stamp(tt.base, tt.box, tt.x, tt.y, tt.minRows); got != tt.want {
				t.Errorf("stamp() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestModel_ToastsBelowTabBar(t *testing.T) {
	model := readyModel(nil)
	model.Update(AddNotificationMsg{Message: "counted", Type: NotificationSuccess})

	lines := strings.Split(model.View(), "\n")
	if strings.Contains(lines[0], "counted") || strings.Contains(lines[1], "counted") {
		t.Error("toasts should not cover the tab bar")
	}
	if !strings.Contains(model.View(), "[OK] counted") {
		t.Error("success toast should carry its badge")
	}
}

func TestTabID_String(t *testing.T) {
	tests := []struct {
		tab  TabID
		want string
	}{
		{TabHours, "Hours"},
		{TabCalendar, "Calendar"},
		{TabRaw, "Raw"},
		{TabInfo, "Info"},
		{TabID(999), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.tab.String(); got != tt.want {
			t.Errorf("TabID(%d).String() = %q, want %q", tt.tab, got, tt.want)
		}
	}
}

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()
	if len(km.ShortHelp()) == 0 {
		t.Error("ShortHelp empty")
	}
	if len(km.FullHelp()) != 3 {
		t.Errorf("FullHelp groups = %d, want 3", len(km.FullHelp()))
	}
	for i, b := range km.Jump {
		id, ok := km.jumpTarget(runeKey(rune('1' + i)))
		if !ok || id != TabID(i) {
			t.Errorf("key %d selects %v (%v), want %v", i+1, id, ok, TabID(i))
		}
		if b.Help().Desc != strings.ToLower(TabID(i).String()) {
			t.Errorf("Jump[%d] help = %q", i, b.Help().Desc)
		}
	}
	if _, ok := km.jumpTarget(runeKey('9')); ok {
		t.Error("9 should not select a tab")
	}
}
