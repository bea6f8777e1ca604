package app

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// NotificationType picks a toast's badge and color.
type NotificationType int

const (
	// NotificationSuccess reports a finished action.
	NotificationSuccess NotificationType = iota
	// NotificationError reports a failure.
	NotificationError
	// NotificationLoading shows the spinner instead of a badge.
	NotificationLoading
)

func (n NotificationType) String() string {
	switch n {
	case NotificationSuccess:
		return "success"
	case NotificationError:
		return "error"
	case NotificationLoading:
		return "loading"
	default:
		return "unknown"
	}
}

// LoadingNotificationID is the ID of the single progress toast.
const LoadingNotificationID = "loading"

// maxToasts bounds the stack; the oldest toasts go first.
const maxToasts = 10

// Notification is one toast. A zero Duration never expires.
type Notification struct {
	ID        string
	Type      NotificationType
	Message   string
	CreatedAt time.Time
	Duration  time.Duration
}

func (n Notification) expiredAt(now time.Time) bool {
	return n.Duration > 0 && now.Sub(n.CreatedAt) > n.Duration
}

// AddNotification pushes a toast and returns its ID.
func (s *State) AddNotification(kind NotificationType, message string, d time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.toasts = append(s.toasts, Notification{
		ID:        id,
		Type:      kind,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  d,
	})
	if extra := len(s.toasts) - maxToasts; extra > 0 {
		s.toasts = slices.Delete(s.toasts, 0, extra)
	}
	return id
}

// RemoveNotification drops the toast with id, if present.
func (s *State) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toasts = slices.DeleteFunc(s.toasts, func(n Notification) bool { return n.ID == id })
}

// ClearExpiredNotifications drops every expired toast.
func (s *State) ClearExpiredNotifications() {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toasts = slices.DeleteFunc(s.toasts, func(n Notification) bool { return n.expiredAt(now) })
}

// GetNotifications returns the unexpired toasts, oldest first.
func (s *State) GetNotifications() []Notification {
	now := time.Now()
	s.mu.RLock()
	defer s.mu.RUnlock()

	live := make([]Notification, 0, len(s.toasts))
	for _, n := range s.toasts {
		if !n.expiredAt(now) {
			live = append(live, n)
		}
	}
	return live
}

// SetLoadingNotification shows message in the progress toast, creating it
// on first use.
func (s *State) SetLoadingNotification(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := slices.IndexFunc(s.toasts, func(n Notification) bool { return n.ID == LoadingNotificationID }); i >= 0 {
		s.toasts[i].Message = message
		return
	}
	s.toasts = append(s.toasts, Notification{
		ID:        LoadingNotificationID,
		Type:      NotificationLoading,
		Message:   message,
		CreatedAt: time.Now(),
	})
}

// ClearLoadingNotification removes the progress toast.
func (s *State) ClearLoadingNotification() {
	s.RemoveNotification(LoadingNotificationID)
}
