// Package notify provides transient, self-dismissing acknowledgments.
package notify

import (
	"sync"
	"time"
)

// DefaultDuration is how long a toast stays visible.
const DefaultDuration = 2 * time.Second

// Toast holds at most one message that expires on its own.
// A newer message replaces the older one and restarts the timer.
type Toast struct {
	mu       sync.Mutex
	text     string
	expires  time.Time
	seq      int
	duration time.Duration
	now      func() time.Time
}

// New creates a toast whose messages live for d.
func New(d time.Duration) *Toast {
	if d <= 0 {
		d = DefaultDuration
	}
	return &Toast{duration: d, now: time.Now}
}

// SetNow overrides the clock, for tests.
func (t *Toast) SetNow(now func() time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.now = now
}

// Duration returns how long each message is shown.
func (t *Toast) Duration() time.Duration {
	return t.duration
}

// Notify shows text, replacing any current message.
func (t *Toast) Notify(text string) {
	t.Show(text)
}

// Show displays text and returns a sequence number identifying this message.
// Hosts pass the number back to Expire when their timer fires.
func (t *Toast) Show(text string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	t.text = text
	t.expires = t.now().Add(t.duration)
	return t.seq
}

// Seq returns the sequence number of the latest message.
func (t *Toast) Seq() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.seq
}

// Text returns the current message, or "" once it has expired.
func (t *Toast) Text() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.text == "" || !t.now().Before(t.expires) {
		return ""
	}
	return t.text
}

// Expire clears the message identified by seq. A stale timer for an older
// message does nothing, so a fresh message keeps its full lifetime.
func (t *Toast) Expire(seq int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if seq == t.seq {
		t.text = ""
	}
}
