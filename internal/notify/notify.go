// Package notify is the status channel the core uses to report outcomes to
// UI collaborators. The core only publishes; rendering (toasts, banners) is
// entirely the subscriber's concern.
package notify

import (
	"sync"
	"time"
)

// Kind is the severity of a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// Notification is one user-visible status event. Duration is a display
// hint; subscribers may ignore it. It serializes as nanoseconds, the
// time.Duration wire form.
type Notification struct {
	Message  string        `json:"message"`
	Kind     Kind          `json:"kind"`
	Duration time.Duration `json:"duration"`
}

// Notifier is what the core holds. Publish must not block.
type Notifier interface {
	Publish(n Notification)
}

// Discard drops every notification; the zero dependency for tests and
// headless use.
type Discard struct{}

func (Discard) Publish(Notification) {}

// Hub fans notifications out to subscriber channels. Delivery is
// best-effort: a subscriber that is not keeping up loses events rather than
// stalling the publisher.
type Hub struct {
	mu   sync.RWMutex
	subs map[chan Notification]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan Notification]struct{})}
}

// Subscribe registers a new subscriber and returns its channel plus an
// unsubscribe function.
func (h *Hub) Subscribe(buffer int) (<-chan Notification, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan Notification, buffer)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
	}
	return ch, cancel
}

func (h *Hub) Publish(n Notification) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs {
		select {
		case ch <- n:
		default:
		}
	}
}

// Recorder keeps every published notification; tests assert on it.
type Recorder struct {
	mu     sync.Mutex
	events []Notification
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Publish(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, n)
}

// Events returns a copy of everything published so far.
func (r *Recorder) Events() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.events))
	copy(out, r.events)
	return out
}

// Last returns the most recent notification, or false when none were
// published.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return Notification{}, false
	}
	return r.events[len(r.events)-1], true
}
