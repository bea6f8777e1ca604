// Package services provides service orchestration for the TUI.
package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/gen2brain/beeep"

	"github.com/j-veylop/weblog-analyzer/internal/analyzer"
	"github.com/j-veylop/weblog-analyzer/internal/config"
	"github.com/j-veylop/weblog-analyzer/internal/db"
	"github.com/j-veylop/weblog-analyzer/internal/logfile"
	"github.com/j-veylop/weblog-analyzer/internal/logger"
	"github.com/j-veylop/weblog-analyzer/internal/models"
)

const defaultDebounce = 100 * time.Millisecond

type (
	// AnalysisUpdatedEvent is emitted after every successful refresh.
	AnalysisUpdatedEvent struct {
		Summaries       []models.Summary
		BusiestTwoHours int
		// TwoHourAccesses is the access count of the BusiestTwoHours window.
		TwoHourAccesses int
		Entries         int
		// Skipped counts malformed lines in a plain log file.
		Skipped   int
		Source    string
		UpdatedAt time.Time
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (AnalysisUpdatedEvent) isServiceEvent() {}
func (ErrorEvent) isServiceEvent()           {}

// Summary returns the summary for dim, or a zero summary if absent.
func (e AnalysisUpdatedEvent) Summary(dim models.Dimension) models.Summary {
	for _, s := range e.Summaries {
		if s.Dimension == dim {
			return s
		}
	}
	return models.Summary{Dimension: dim, Busiest: analyzer.NoBucket, Quietest: analyzer.NoBucket}
}

// Manager owns the log source and analyzer, keeps them fresh, and fans
// analysis results out to subscribers.
type Manager struct {
	mu          sync.RWMutex
	subscribers []chan<- ServiceEvent

	refreshMu sync.Mutex
	analyzer  *analyzer.Analyzer
	reader    *logfile.Reader
	database  *db.DB
	importing bool
	source    string
	last      *AnalysisUpdatedEvent

	notifyEnabled bool
	notify        func(title, message string) error

	watcher       *fsnotify.Watcher
	debounce      time.Duration
	timerMu       sync.Mutex
	debounceTimer *time.Timer
	stopChan      chan struct{}
	closeOnce     sync.Once
}

// NewManager opens the configured log source, runs the first analysis and,
// when enabled, starts watching the log file.
func NewManager(cfg *config.Config) (*Manager, error) {
	m := &Manager{
		source:        cfg.LogSource,
		notifyEnabled: cfg.Notify,
		notify:        desktopNotify,
		debounce:      cfg.WatchDebounce,
		stopChan:      make(chan struct{}),
	}
	if m.debounce <= 0 {
		m.debounce = defaultDebounce
	}

	if err := ensureDemoLog(cfg); err != nil {
		return nil, fmt.Errorf("failed to create demo log: %w", err)
	}

	src, err := m.open(cfg)
	if err != nil {
		return nil, err
	}
	m.analyzer = analyzer.New(src)

	if err := m.refresh(false); err != nil {
		_ = m.closeResources()
		return nil, err
	}

	if cfg.Watch && m.reader != nil {
		if err := m.startWatcher(); err != nil {
			// The dashboard still works without live updates.
			logger.Warn("file watcher unavailable", "path", m.reader.Path(), "error", err)
		}
	}

	return m, nil
}

// open builds the analyzer's source, importing a log file into the entry
// store first when IMPORT_TO_DB is set.
func (m *Manager) open(cfg *config.Config) (logfile.Source, error) {
	if _, isDB := DatabasePath(cfg.LogSource); isDB || !cfg.ImportToDB {
		src, database, err := OpenSource(cfg.LogSource)
		if err != nil {
			return nil, err
		}
		m.database = database
		if reader, ok := src.(*logfile.Reader); ok {
			m.reader = reader
		}
		return src, nil
	}

	reader, err := logfile.NewReader(cfg.LogSource)
	if err != nil {
		return nil, err
	}
	database, err := db.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	m.reader = reader
	m.database = database
	m.importing = true

	n, err := database.ImportSource(context.Background(), reader)
	if err != nil {
		_ = database.Close()
		return nil, err
	}
	logger.Info("imported log into entry store", "entries", n, "database", database.Path())
	// The import replaced any rows from an earlier run.
	if err := database.Vacuum(); err != nil {
		logger.Warn("failed to vacuum entry store", "error", err)
	}

	return database.NewSource(), nil
}

// skipped returns the malformed-line count of the log file, if any.
func (m *Manager) skipped() int {
	if m.reader == nil {
		return 0
	}
	return m.reader.Skipped()
}

// Refresh re-reads the log source and recomputes every table.
func (m *Manager) Refresh() error {
	return m.refresh(true)
}

func (m *Manager) refresh(reload bool) error {
	m.refreshMu.Lock()
	defer m.refreshMu.Unlock()

	if reload && m.reader != nil {
		if err := m.reader.Reload(); err != nil {
			return err
		}
		if m.importing {
			if _, err := m.database.ImportSource(context.Background(), m.reader); err != nil {
				return err
			}
		}
	}

	if err := m.analyzer.Rebuild(); err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	twoHours := m.analyzer.BusiestTwoHours()
	event := AnalysisUpdatedEvent{
		Summaries:       m.analyzer.Summaries(),
		BusiestTwoHours: twoHours,
		TwoHourAccesses: m.analyzer.WindowSum(models.DimensionHour, twoHours, 2),
		Skipped:         m.skipped(),
		Entries:         m.analyzer.NumberOfAccesses(),
		Source:          m.source,
		UpdatedAt:       time.Now(),
	}

	m.checkNotifications(m.last, &event)
	m.mu.Lock()
	m.last = &event
	m.mu.Unlock()

	logger.Debug("analysis refreshed", "source", m.source, "entries", event.Entries, "skipped", event.Skipped)
	m.broadcast(event)
	return nil
}

// checkNotifications raises a desktop notification when the busiest hour moves.
func (m *Manager) checkNotifications(prev, next *AnalysisUpdatedEvent) {
	if !m.notifyEnabled || prev == nil {
		return
	}

	oldHour := prev.Summary(models.DimensionHour)
	newHour := next.Summary(models.DimensionHour)
	if newHour.Total == 0 || oldHour.Busiest == newHour.Busiest {
		return
	}

	title := "Busiest hour changed"
	body := fmt.Sprintf("Busiest hour moved from %02d:00 to %02d:00 (%d accesses)",
		oldHour.Busiest, newHour.Busiest, newHour.BusiestCount)
	if err := m.notify(title, body); err != nil {
		logger.Warn("desktop notification failed", "error", err)
	}
}

func desktopNotify(title, message string) error {
	return beeep.Notify(title, message, "")
}

// startWatcher starts the file system watcher.
func (m *Manager) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// Watch the directory (to catch editors that replace the file)
	dir := filepath.Dir(m.reader.Path())
	if err := watcher.Add(dir); err != nil {
		if closeErr := watcher.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return err
	}
	m.watcher = watcher

	go m.watchLoop()
	return nil
}

// watchLoop handles file system events with debouncing.
func (m *Manager) watchLoop() {
	target := filepath.Base(m.reader.Path())

	for {
		select {
		case event, ok := <-m.watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != target {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				m.timerMu.Lock()
				if m.debounceTimer != nil {
					m.debounceTimer.Stop()
				}
				m.debounceTimer = time.AfterFunc(m.debounce, m.handleFileChange)
				m.timerMu.Unlock()
			}

		case err, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
			m.broadcast(ErrorEvent{Service: "watcher", Error: err})

		case <-m.stopChan:
			return
		}
	}
}

// handleFileChange re-analyzes the log after an external change.
func (m *Manager) handleFileChange() {
	select {
	case <-m.stopChan:
		return
	default:
	}

	if err := m.Refresh(); err != nil {
		logger.Error("refresh after file change failed", "error", err)
		m.broadcast(ErrorEvent{Service: "analyzer", Error: err})
	}
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, waitForEvent(ch)
}

// waitForEvent returns a tea.Cmd that waits for the next event.
func waitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return event
	}
}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return waitForEvent(ch)
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Analyzer returns the analyzer owned by the manager. Refreshes swap its
// tables in whole, so reads never see a partly rebuilt table.
func (m *Manager) Analyzer() *analyzer.Analyzer {
	return m.analyzer
}

// Database returns the entry store, or nil for plain log files.
func (m *Manager) Database() *db.DB {
	return m.database
}

// Source returns the configured log source identifier.
func (m *Manager) Source() string {
	return m.source
}

// Watching reports whether the log file is being watched.
func (m *Manager) Watching() bool {
	return m.watcher != nil
}

// InitialState returns the most recent analysis for TUI initialization.
func (m *Manager) InitialState() AnalysisUpdatedEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.last == nil {
		return AnalysisUpdatedEvent{Source: m.source}
	}
	return *m.last
}

// Close stops the watcher, closes subscriber channels and the entry store.
func (m *Manager) Close() error {
	var err error
	m.closeOnce.Do(func() {
		close(m.stopChan)

		m.timerMu.Lock()
		if m.debounceTimer != nil {
			m.debounceTimer.Stop()
		}
		m.timerMu.Unlock()

		m.mu.Lock()
		for _, sub := range m.subscribers {
			close(sub)
		}
		m.subscribers = nil
		m.mu.Unlock()

		err = m.closeResources()
	})
	return err
}

func (m *Manager) closeResources() error {
	var errs []error

	if m.watcher != nil {
		if err := m.watcher.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if m.database != nil {
		if err := m.database.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
