package sim

import (
	"sync"

	"github.com/gameaccess/callout/internal/input"
)

// pressTicks is how many engine ticks a terminal key event counts as
// held. Terminal input is discrete, so each event becomes a short
// synthetic hold; OS key repeat produces fresh events that keep the
// hold alive for real held keys.
const pressTicks = 3

// Device turns discrete terminal key events into the per-tick held
// state the engine samples. Press is called from the UI goroutine and
// Sample from the tick loop, so the remaining-ticks table is locked.
type Device struct {
	mu        sync.Mutex
	remaining map[input.Control]int
}

// NewDevice creates an idle device.
func NewDevice() *Device {
	return &Device{remaining: make(map[input.Control]int)}
}

// Press records a key event. The control reads as held for the next
// few ticks.
func (d *Device) Press(c input.Control) {
	if c == input.ControlNone {
		return
	}
	d.mu.Lock()
	d.remaining[c] = pressTicks
	d.mu.Unlock()
}

// Sample returns the currently held controls and decays each hold by
// one tick.
func (d *Device) Sample() input.State {
	d.mu.Lock()
	defer d.mu.Unlock()

	var s input.State
	for c, left := range d.remaining {
		s.Press(c)
		if left <= 1 {
			delete(d.remaining, c)
		} else {
			d.remaining[c] = left - 1
		}
	}
	return s
}
