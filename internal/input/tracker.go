package input

import (
	"github.com/gameaccess/callout/internal/logger"
)

// State is one raw device sample, taken once per tick by the host
// adapter. Held controls are a bitset; the stick is the analog pair
// before deadzone coercion.
type State struct {
	held   [controlWords]uint64
	StickX float64
	StickY float64
}

// Press marks a control as held in this sample.
func (s *State) Press(c Control) {
	s.held[int(c)/64] |= 1 << (uint(c) % 64)
}

// Held reports whether a control is held in this sample.
func (s *State) Held(c Control) bool {
	return s.held[int(c)/64]&(1<<(uint(c)%64)) != 0
}

// TrackerOption configures the tracker.
type TrackerOption func(*Tracker)

// WithRepeatDelay sets how many ticks a direction must stay held
// before it starts repeating.
func WithRepeatDelay(ticks int) TrackerOption {
	return func(t *Tracker) {
		if ticks > 0 {
			t.repeatDelay = ticks
		}
	}
}

// WithRepeatInterval sets the tick gap between repeats once the delay
// has elapsed.
func WithRepeatInterval(ticks int) TrackerOption {
	return func(t *Tracker) {
		if ticks > 0 {
			t.repeatInterval = ticks
		}
	}
}

// WithDeadzone sets the stick magnitude below which the stick reads
// as centered.
func WithDeadzone(d float64) TrackerOption {
	return func(t *Tracker) {
		if d > 0 {
			t.deadzone = d
		}
	}
}

// Tracker turns raw per-tick samples into edge and repeat signals.
// Update must be called exactly once per tick, before any handler
// queries it; all query methods answer for the current tick.
type Tracker struct {
	log            *logger.Logger
	repeatDelay    int
	repeatInterval int
	deadzone       float64

	held      [controlWords]uint64
	prev      [controlWords]uint64
	heldTicks [numControls]int
}

// NewTracker creates a tracker with the default repeat cadence
// (16-tick delay, 4-tick interval) and a 0.5 stick deadzone.
func NewTracker(log *logger.Logger, opts ...TrackerOption) *Tracker {
	t := &Tracker{
		log:            log,
		repeatDelay:    16,
		repeatInterval: 4,
		deadzone:       0.5,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Update ingests one device sample: coerces the stick into the four
// virtual direction controls, then advances all held/edge counters.
func (t *Tracker) Update(s State) {
	if s.StickX <= -t.deadzone {
		s.Press(StickLeft)
	}
	if s.StickX >= t.deadzone {
		s.Press(StickRight)
	}
	if s.StickY <= -t.deadzone {
		s.Press(StickUp)
	}
	if s.StickY >= t.deadzone {
		s.Press(StickDown)
	}

	t.prev = t.held
	t.held = s.held

	for c := Control(1); c < numControls; c++ {
		if t.IsHeld(c) {
			t.heldTicks[c]++
		} else {
			t.heldTicks[c] = 0
		}
	}
}

// IsHeld reports whether the control is down this tick.
func (t *Tracker) IsHeld(c Control) bool {
	return t.held[int(c)/64]&(1<<(uint(c)%64)) != 0
}

// IsJustPressed reports the not-held to held edge: true on exactly the
// first tick of a press, never again until released and re-pressed.
func (t *Tracker) IsJustPressed(c Control) bool {
	wasHeld := t.prev[int(c)/64]&(1<<(uint(c)%64)) != 0
	return t.IsHeld(c) && !wasHeld
}

// IsRepeating reports a repeat re-fire: false through the initial
// press and the delay window, then true once the control has been
// held for the full delay and again at every interval after that.
// The initial edge itself is IsJustPressed, not a repeat.
func (t *Tracker) IsRepeating(c Control) bool {
	ticks := t.heldTicks[c]
	if ticks < t.repeatDelay {
		return false
	}
	return (ticks-t.repeatDelay)%t.repeatInterval == 0
}

// Repeats is the navigation channel: the initial edge plus repeat
// re-fires. Directional inputs use this; confirm/cancel never do.
func (t *Tracker) Repeats(c Control) bool {
	return t.IsJustPressed(c) || t.IsRepeating(c)
}

// AnyJustPressed reports whether any control in the group saw its
// edge this tick.
func (t *Tracker) AnyJustPressed(cs ...Control) bool {
	for _, c := range cs {
		if t.IsJustPressed(c) {
			return true
		}
	}
	return false
}

// AnyRepeats reports whether any control in the group fired on the
// navigation channel this tick.
func (t *Tracker) AnyRepeats(cs ...Control) bool {
	for _, c := range cs {
		if t.Repeats(c) {
			return true
		}
	}
	return false
}

// AnyHeld reports whether any control in the group is down this tick.
func (t *Tracker) AnyHeld(cs ...Control) bool {
	for _, c := range cs {
		if t.IsHeld(c) {
			return true
		}
	}
	return false
}

// Seed marks the given controls as already held, so a press that is
// physically down when a menu activates produces no edge on the next
// tick. With no arguments it seeds everything currently held — the
// usual call at a panel-open transition, since the opener doesn't
// know which button did the opening.
func (t *Tracker) Seed(cs ...Control) {
	if len(cs) == 0 {
		for c := Control(1); c < numControls; c++ {
			if t.IsHeld(c) {
				t.seedOne(c)
			}
		}
		return
	}
	for _, c := range cs {
		t.seedOne(c)
	}
}

func (t *Tracker) seedOne(c Control) {
	t.prev[int(c)/64] |= 1 << (uint(c) % 64)
	t.held[int(c)/64] |= 1 << (uint(c) % 64)
	// A seeded press also restarts its repeat clock so the first
	// repeat can't land on the tick right after activation.
	t.heldTicks[c] = 1
}

// HeldModifier returns the first modifier control currently held, or
// ControlNone. Binding capture uses it to attach at most one modifier.
func (t *Tracker) HeldModifier() Control {
	for c := Control(1); c < numControls; c++ {
		if c.IsModifier() && t.IsHeld(c) {
			return c
		}
	}
	return ControlNone
}
