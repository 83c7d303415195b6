// Package notify delivers transient user-facing notices (the "toasts" of the
// presentation layer).
package notify

import (
	"log"
	"sync"
	"time"
)

// Level distinguishes failures from explanatory notices.
type Level string

const (
	LevelError Level = "error"
	LevelInfo  Level = "info"
)

// Notification is one transient message naming the action it concerns.
type Notification struct {
	Level   Level     `json:"level"`
	Action  string    `json:"action"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Notifier receives notifications.
type Notifier interface {
	Notify(n Notification)
}

// Log writes notifications to the standard logger.
type Log struct{}

func (Log) Notify(n Notification) {
	log.Printf("[NOTIFY] %s %s: %s", n.Level, n.Action, n.Message)
}

// Feed keeps the most recent notifications in memory.
type Feed struct {
	mu    sync.Mutex
	items []Notification
	limit int
}

// NewFeed creates a feed holding at most limit notifications.
func NewFeed(limit int) *Feed {
	if limit <= 0 {
		limit = 50
	}
	return &Feed{limit: limit}
}

func (f *Feed) Notify(n Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, n)
	if len(f.items) > f.limit {
		f.items = f.items[len(f.items)-f.limit:]
	}
}

// Recent returns a copy of the stored notifications, oldest first.
func (f *Feed) Recent() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Notification, len(f.items))
	copy(out, f.items)
	return out
}

// Multi fans a notification out to several notifiers.
type Multi []Notifier

func (m Multi) Notify(n Notification) {
	for _, notifier := range m {
		notifier.Notify(n)
	}
}
