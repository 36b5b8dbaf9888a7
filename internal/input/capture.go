package input

import (
	"github.com/gameaccess/callout/internal/logger"
)

// Status is the outcome of one capture tick.
type Status int

const (
	// StatusListening means no candidate fired yet; keep calling Update.
	StatusListening Status = iota
	// StatusCaptured means a valid binding was stored and the session ended.
	StatusCaptured
	// StatusRejected means the pressed input is on the disallow list.
	StatusRejected
	// StatusConflict means another action already claims the combo.
	StatusConflict
	// StatusCancelled means the cancel control ended the session.
	StatusCancelled
)

// Result describes how a capture session ended. Binding is set for
// StatusCaptured; Conflict names the owning action for StatusConflict;
// Rejected names the disallowed control for StatusRejected.
type Result struct {
	Status   Status
	Binding  Binding
	Conflict string
	Rejected Control
}

// defaultDisallowed are controls that can never be rebound: the ones
// the host itself reserves plus the capture cancel key.
var defaultDisallowed = map[Control]struct{}{
	KeyEscape: {},
	KeyEnter:  {},
	PadStart:  {},
}

// CaptureOption configures a capture session.
type CaptureOption func(*Capture)

// WithCancelControl sets the control that aborts the session.
func WithCancelControl(c Control) CaptureOption {
	return func(s *Capture) {
		s.cancel = c
	}
}

// WithDisallowed replaces the default reserved-control list.
func WithDisallowed(cs ...Control) CaptureOption {
	return func(s *Capture) {
		s.disallowed = make(map[Control]struct{}, len(cs))
		for _, c := range cs {
			s.disallowed[c] = struct{}{}
		}
	}
}

// Capture is a listening session for one action: each tick it scans
// every physical control, and the first edge-triggered candidate
// becomes the new binding — if it passes the allow-list and conflict
// checks. There is no timeout; a session ends only by capture, a
// failed validation, or the cancel control.
type Capture struct {
	m          *Map
	log        *logger.Logger
	action     string
	context    string
	cancel     Control
	disallowed map[Control]struct{}
}

// NewCapture starts a capture session that will bind action in the
// given context on success.
func NewCapture(m *Map, action, context string, log *logger.Logger, opts ...CaptureOption) *Capture {
	s := &Capture{
		m:          m,
		log:        log,
		action:     action,
		context:    context,
		cancel:     KeyEscape,
		disallowed: defaultDisallowed,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Action returns the action being rebound.
func (s *Capture) Action() string { return s.action }

// Update runs one capture tick against the tracker. It returns
// StatusListening until the session ends; any other status ends the
// session the same tick it is detected. On StatusCaptured the binding
// has already been stored in the map. On failure nothing is stored —
// the action keeps whatever binding it had.
func (s *Capture) Update(t *Tracker) Result {
	if t.IsJustPressed(s.cancel) {
		s.log.Debug("capture for %q cancelled", s.action)
		return Result{Status: StatusCancelled}
	}

	c, ok := s.firstEdge(t)
	if !ok {
		return Result{Status: StatusListening}
	}

	if _, bad := s.disallowed[c]; bad {
		s.log.Info("capture for %q rejected: %s is reserved", s.action, c)
		return Result{Status: StatusRejected, Rejected: c}
	}

	b := Binding{
		Primary:  c,
		Modifier: t.HeldModifier(),
		Context:  s.context,
	}

	if owner, clash := s.m.ConflictingAction(b, s.action); clash {
		s.log.Info("capture for %q conflicts: %s already bound to %q", s.action, b, owner)
		return Result{Status: StatusConflict, Binding: b, Conflict: owner}
	}

	s.m.Bind(s.action, b)
	s.log.Info("captured %s for %q", b, s.action)
	return Result{Status: StatusCaptured, Binding: b}
}

// firstEdge finds the first non-modifier, non-stick control that saw
// its edge this tick. Modifiers don't count as candidates — they only
// ride along with a primary — and stick directions drift too easily
// to be bindable.
func (s *Capture) firstEdge(t *Tracker) (Control, bool) {
	for c := Control(1); c < numControls; c++ {
		if c.IsModifier() || c.IsStick() {
			continue
		}
		if t.IsJustPressed(c) {
			return c, true
		}
	}
	return ControlNone, false
}
