package notify

import (
	"sync"
	"time"

	"github.com/mangestic/ctfctl/internal/dependencies/clock"
)

// DefaultTTL is how long a message stays visible unless preempted.
const DefaultTTL = 2500 * time.Millisecond

// Kind classifies a message for display purposes.
type Kind string

const (
	KindInfo  Kind = "info"
	KindError Kind = "error"
)

// Message is a single user-facing notification.
type Message struct {
	Text string
	Kind Kind
}

// Center holds at most one visible message at a time. Showing a new
// message replaces the current one and restarts the expiry timer; the
// old timer is stopped first so two timers never race to clear
// different messages.
type Center struct {
	clk clock.Clock
	ttl time.Duration

	mu      sync.Mutex
	current *Message
	timer   clock.Timer
	seq     uint64
}

// NewCenter creates a Center with the given clock and message lifetime.
// A zero ttl falls back to DefaultTTL.
func NewCenter(clk clock.Clock, ttl time.Duration) *Center {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Center{clk: clk, ttl: ttl}
}

// Info shows an informational message.
func (c *Center) Info(text string) {
	c.show(text, KindInfo)
}

// Error shows an error message.
func (c *Center) Error(text string) {
	c.show(text, KindError)
}

func (c *Center) show(text string, kind Kind) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
	}

	c.current = &Message{Text: text, Kind: kind}
	c.seq++

	// The sequence number guards against a stale timer that already
	// fired clearing a newer message.
	seq := c.seq
	c.timer = c.clk.AfterFunc(c.ttl, func() {
		c.expire(seq)
	})
}

func (c *Center) expire(seq uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seq != seq {
		return
	}
	c.current = nil
	c.timer = nil
}

// Current returns the visible message, or nil if none is showing.
func (c *Center) Current() *Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil
	}
	msg := *c.current
	return &msg
}

// Clear removes the visible message immediately.
func (c *Center) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.current = nil
	c.seq++
}
