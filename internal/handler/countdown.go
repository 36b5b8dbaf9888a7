package handler

// Countdown is the engine's only waiting primitive: an explicit
// counting-down-then-fire state machine ticked by its owner's Update.
// It replaces the loose boolean+counter pairs this pattern tends to
// accumulate. Zero value is disarmed.
type Countdown struct {
	remaining int
	armed     bool
}

// Arm starts a countdown that fires on the nth Tick from now.
// Arm(0) and Arm(1) both fire on the next Tick. Re-arming restarts
// the count.
func (c *Countdown) Arm(n int) {
	c.remaining = n
	c.armed = true
}

// Tick advances the countdown and reports whether it fired this
// tick. A countdown fires exactly once per arming.
func (c *Countdown) Tick() bool {
	if !c.armed {
		return false
	}
	c.remaining--
	if c.remaining <= 0 {
		c.armed = false
		return true
	}
	return false
}

// Armed reports whether the countdown is still pending.
func (c *Countdown) Armed() bool {
	return c.armed
}

// Stop disarms without firing.
func (c *Countdown) Stop() {
	c.armed = false
	c.remaining = 0
}
