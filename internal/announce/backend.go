// Package announce turns engine events into spoken output. The Sink is
// the single speech funnel: every handler talks to it, it talks to one
// opaque Backend, and nothing it does can ever take the host down.
package announce

import (
	"github.com/gameaccess/callout/internal/logger"
)

// Backend is the opaque speech provider behind the Sink. Implementations
// can be a platform screen reader bridge, an external TTS process, or
// the NoOp below. Both methods are best-effort: errors are reported to
// the Sink, which logs and moves on.
type Backend interface {
	// Speak voices text. When interrupt is true any in-flight
	// utterance is cut off first; otherwise the text queues after it.
	Speak(text string, interrupt bool) error
	// Stop cuts off the current utterance and drops anything queued.
	Stop() error
}

// Compile-time interface check.
var _ Backend = (*NoOp)(nil)

// NoOp is a speech backend that does nothing. Used when no speech
// provider is reachable, so the rest of the engine keeps running and
// "repeat last" keeps working.
type NoOp struct {
	log *logger.Logger
}

// NewNoOp creates a no-op speech backend.
func NewNoOp(log *logger.Logger) *NoOp {
	return &NoOp{log: log}
}

// Speak does nothing but note the text in the debug log.
func (n *NoOp) Speak(text string, interrupt bool) error {
	n.log.Debug("speech no-op: would say %q (interrupt=%v)", text, interrupt)
	return nil
}

// Stop does nothing.
func (n *NoOp) Stop() error { return nil }
