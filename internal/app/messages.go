package app

import (
	"time"

	"github.com/j-veylop/weblog-analyzer/internal/services"
)

// TickMsg drives toast expiry.
type TickMsg struct {
	Time time.Time
}

// AnalysisLoadedMsg carries the manager's analysis at startup.
type AnalysisLoadedMsg struct {
	Event services.AnalysisUpdatedEvent
}

// RefreshResultMsg reports a refresh started with the refresh key. Event is
// the latest analysis even when Error is set.
type RefreshResultMsg struct {
	Event services.AnalysisUpdatedEvent
	Error error
}

// RawDataLoadedMsg carries the entries rendered one per line.
type RawDataLoadedMsg struct {
	Text  string
	Error error
}

// AddNotificationMsg shows a toast. A zero Duration keeps it until removed.
type AddNotificationMsg struct {
	Type     NotificationType
	Message  string
	Duration time.Duration
}

// RemoveNotificationMsg drops the toast with ID.
type RemoveNotificationMsg struct {
	ID string
}

// SubscriptionEventMsg hands the model its service event channel.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// ServiceEventMsg wraps one event from the channel.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}
