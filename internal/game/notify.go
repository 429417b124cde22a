package game

import (
	"log/slog"
	"sync"
)

type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityError Severity = "error"
)

// Notification is one outbound toast-style event. Delivery is
// fire-and-forget: the engine never waits on or inspects the sink.
type Notification struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

type Notifier interface {
	Notify(n Notification)
}

// LogNotifier writes notifications to a slog logger.
type LogNotifier struct {
	Log *slog.Logger
}

func (l LogNotifier) Notify(n Notification) {
	logger := l.Log
	if logger == nil {
		logger = slog.Default()
	}
	if n.Severity == SeverityError {
		logger.Warn("notification", "title", n.Title, "description", n.Description)
		return
	}
	logger.Info("notification", "title", n.Title, "description", n.Description)
}

// Recorder captures notifications for assertions in tests.
type Recorder struct {
	mu     sync.Mutex
	events []Notification
}

func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, n)
}

func (r *Recorder) Events() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.events))
	copy(out, r.events)
	return out
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
