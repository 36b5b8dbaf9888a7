// Package engine assembles the narration pipeline and runs it once
// per host frame: sample input, service the global actions, then let
// the dispatcher drive every handler. It depends only on the other
// internal packages and is fully testable with fakes.
package engine

import (
	"github.com/gameaccess/callout/internal/announce"
	"github.com/gameaccess/callout/internal/handler"
	"github.com/gameaccess/callout/internal/input"
	"github.com/gameaccess/callout/internal/logger"
)

// Default global action names. They are ordinary entries in the
// action map, so the bindings panel can rebind them like anything
// else.
const (
	ActionReadStatus = "Read Status"
	ActionRepeatLast = "Repeat Last"
	ActionSilence    = "Silence"
)

// Option configures the engine.
type Option func(*Engine)

// WithStatusAction renames the action that requests a status readout.
func WithStatusAction(name string) Option {
	return func(e *Engine) {
		e.statusAction = name
	}
}

// WithRepeatAction renames the action that re-speaks the last message.
func WithRepeatAction(name string) Option {
	return func(e *Engine) {
		e.repeatAction = name
	}
}

// WithSilenceAction renames the action that stops speech.
func WithSilenceAction(name string) Option {
	return func(e *Engine) {
		e.silenceAction = name
	}
}

// WithCaptureGuard installs a callback that reports whether a
// binding-capture session is live. While it reports true the global
// actions stand down, so a press meant for the capture doesn't also
// fire the action it happens to be bound to.
func WithCaptureGuard(fn func() bool) Option {
	return func(e *Engine) {
		e.capturing = fn
	}
}

// Engine is the per-tick entry point the host's update callback calls.
type Engine struct {
	tracker    *input.Tracker
	actions    *input.Map
	dispatcher *handler.Dispatcher
	sink       *announce.Sink
	log        *logger.Logger

	statusAction  string
	repeatAction  string
	silenceAction string
	capturing     func() bool

	ticks uint64
}

// New wires an engine. All collaborators are required.
func New(tracker *input.Tracker, actions *input.Map, dispatcher *handler.Dispatcher, sink *announce.Sink, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		tracker:       tracker,
		actions:       actions,
		dispatcher:    dispatcher,
		sink:          sink,
		log:           log,
		statusAction:  ActionReadStatus,
		repeatAction:  ActionRepeatLast,
		silenceAction: ActionSilence,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Tick runs one frame. Strictly sequential: input first, so handlers
// see this tick's edges; global actions next, so an explicit user
// request wins the tick; handler dispatch last. While a capture
// session is live the global actions are skipped entirely — the
// pressed combo belongs to the capture.
func (e *Engine) Tick(s input.State) {
	e.ticks++
	e.tracker.Update(s)

	if e.capturing != nil && e.capturing() {
		e.dispatcher.Tick()
		return
	}

	switch {
	case e.actions.Triggered(e.tracker, e.statusAction):
		if !e.dispatcher.AnnounceStatus() {
			e.log.Debug("status requested with nothing open")
		}
	case e.actions.Triggered(e.tracker, e.repeatAction):
		e.sink.RepeatLast()
	case e.actions.Triggered(e.tracker, e.silenceAction):
		e.sink.Silence()
	}

	e.dispatcher.Tick()
}

// Ticks returns how many frames have run. Diagnostics only.
func (e *Engine) Ticks() uint64 { return e.ticks }
