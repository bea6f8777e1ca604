package app

import (
	"sync"
	"time"

	"github.com/j-veylop/weblog-analyzer/internal/models"
	"github.com/j-veylop/weblog-analyzer/internal/services"
)

// Resource names something the UI waits for.
type Resource uint8

const (
	// ResourceInitial is the first analysis after startup.
	ResourceInitial Resource = 1 << iota
	// ResourceRefresh is a recount started with the refresh key.
	ResourceRefresh
	// ResourceRaw is the rendered entry dump for the raw tab.
	ResourceRaw
)

// State is what the tabs render from. The root model writes it on the
// Bubble Tea goroutine; tab views read it through the getters.
type State struct {
	mu sync.RWMutex

	analysis *services.AnalysisUpdatedEvent
	updated  time.Time
	raw      string
	watching bool
	pending  Resource

	toasts []Notification
}

// NewState returns a state that is waiting for the first analysis.
func NewState() *State {
	return &State{pending: ResourceInitial}
}

// SetLoading marks r as pending or done.
func (s *State) SetLoading(r Resource, loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if loading {
		s.pending |= r
	} else {
		s.pending &^= r
	}
}

// IsLoading reports whether r is pending.
func (s *State) IsLoading(r Resource) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pending&r != 0
}

// AnyLoading reports whether anything is pending.
func (s *State) AnyLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pending != 0
}

// IsInitialLoading reports whether the first analysis is still pending.
func (s *State) IsInitialLoading() bool {
	return s.IsLoading(ResourceInitial)
}

// SetAnalysis stores event. An event without a timestamp counts as updated now.
func (s *State) SetAnalysis(event services.AnalysisUpdatedEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analysis = &event
	s.updated = event.UpdatedAt
	if s.updated.IsZero() {
		s.updated = time.Now()
	}
}

// GetAnalysis returns the latest analysis, or false before the first one.
func (s *State) GetAnalysis() (services.AnalysisUpdatedEvent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.analysis == nil {
		return services.AnalysisUpdatedEvent{}, false
	}
	return *s.analysis, true
}

// Summary returns dim's summary from the latest analysis.
func (s *State) Summary(dim models.Dimension) (models.Summary, bool) {
	analysis, ok := s.GetAnalysis()
	if !ok {
		return models.Summary{}, false
	}
	return analysis.Summary(dim), true
}

// GetLastUpdated returns when the latest analysis was taken.
func (s *State) GetLastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updated
}

// SetRawData stores the entry dump.
func (s *State) SetRawData(raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw = raw
}

// GetRawData returns the entry dump.
func (s *State) GetRawData() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.raw
}

// SetWatching records whether the log file is watched for changes.
func (s *State) SetWatching(watching bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watching = watching
}

// IsWatching reports whether the log file is watched for changes.
func (s *State) IsWatching() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.watching
}
