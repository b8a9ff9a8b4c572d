// Package notify shows user feedback. Only the latest notification is
// visible and it is dismissed automatically after a fixed interval.
package notify

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"memoboard/application/ports"
)

// Sink renders notifications somewhere the user can see them
type Sink interface {
	Show(n ports.Notification)
	Dismiss()
}

// Center implements ports.Notifier
type Center struct {
	mu         sync.Mutex
	ttl        time.Duration
	current    *ports.Notification
	timer      *time.Timer
	generation uint64
	sinks      []Sink
	closed     bool
	now        func() time.Time
	logger     *zap.Logger
}

// NewCenter creates a notification center that dismisses after ttl
func NewCenter(ttl time.Duration, logger *zap.Logger, sinks ...Sink) *Center {
	return &Center{
		ttl:    ttl,
		sinks:  sinks,
		now:    time.Now,
		logger: logger,
	}
}

// AddSink registers another sink for later notifications
func (c *Center) AddSink(s Sink) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sinks = append(c.sinks, s)
}

// Notify replaces the visible notification and restarts the dismiss timer
func (c *Center) Notify(message string, severity ports.Severity) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	n := ports.Notification{
		Message:  message,
		Severity: severity,
		ShownAt:  c.now(),
	}
	c.current = &n
	c.generation++
	gen := c.generation

	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.ttl, func() { c.expire(gen) })

	sinks := c.snapshotSinks()
	c.mu.Unlock()

	c.logger.Debug("Notification shown",
		zap.String("type", string(severity)),
		zap.String("message", message),
	)

	for _, s := range sinks {
		s.Show(n)
	}
}

// Current returns the visible notification, if any
func (c *Center) Current() (ports.Notification, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return ports.Notification{}, false
	}
	return *c.current, true
}

// Close stops the pending timer. Later notifications are dropped.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	c.current = nil
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// expire dismisses the notification shown at generation gen unless a
// newer one replaced it
func (c *Center) expire(gen uint64) {
	c.mu.Lock()
	if gen != c.generation || c.current == nil {
		c.mu.Unlock()
		return
	}
	c.current = nil
	c.timer = nil
	sinks := c.snapshotSinks()
	c.mu.Unlock()

	for _, s := range sinks {
		s.Dismiss()
	}
}

func (c *Center) snapshotSinks() []Sink {
	out := make([]Sink, len(c.sinks))
	copy(out, c.sinks)
	return out
}
