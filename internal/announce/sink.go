package announce

import (
	"sync"

	"github.com/gameaccess/callout/internal/logger"
)

// Sink is the announcement funnel. All speech goes through one Sink so
// "repeat last" has a single source of truth and backend failures are
// contained in one place.
//
// Failure semantics: speech is a side channel. A failing backend is
// logged and otherwise ignored — the last message is still recorded so
// RepeatLast keeps working once the backend recovers.
type Sink struct {
	backend Backend
	log     *logger.Logger

	mu          sync.Mutex
	lastMessage string
}

// NewSink creates a sink over the given backend. A nil backend is
// replaced with NoOp so callers never have to check.
func NewSink(backend Backend, log *logger.Logger) *Sink {
	if backend == nil {
		backend = NewNoOp(log)
	}
	return &Sink{backend: backend, log: log}
}

// Speak voices text, interrupting the current utterance when interrupt
// is true. Empty text is a complete no-op. The text is recorded as the
// last message even if the backend fails.
func (s *Sink) Speak(text string, interrupt bool) {
	if text == "" {
		return
	}

	s.mu.Lock()
	s.lastMessage = text
	s.mu.Unlock()

	if err := s.backend.Speak(text, interrupt); err != nil {
		s.log.Error("speak failed (interrupt=%v): %v", interrupt, err)
		return
	}
	s.log.Debug("spoke (interrupt=%v): %s", interrupt, text)
}

// SpeakQueued voices text after the current utterance finishes.
func (s *Sink) SpeakQueued(text string) {
	s.Speak(text, false)
}

// Silence stops any in-flight utterance. Best effort.
func (s *Sink) Silence() {
	if err := s.backend.Stop(); err != nil {
		s.log.Error("silence failed: %v", err)
	}
}

// RepeatLast re-issues the last non-empty message, interrupting.
// Does nothing if nothing has been spoken yet.
func (s *Sink) RepeatLast() {
	s.mu.Lock()
	last := s.lastMessage
	s.mu.Unlock()

	if last == "" {
		return
	}
	if err := s.backend.Speak(last, true); err != nil {
		s.log.Error("repeat failed: %v", err)
	}
}

// LastMessage returns the most recent non-empty message sent to Speak.
func (s *Sink) LastMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastMessage
}
