package handler

import (
	"sort"

	"github.com/gameaccess/callout/internal/logger"
)

// Dispatcher owns the ordered handler collection and runs the per-tick
// control flow. It is strictly sequential and single-threaded: one
// Tick visits every handler in priority order, and no handler ever
// runs concurrently with another.
//
// The dispatcher also owns open/close edge detection, so handlers only
// implement the three lifecycle moments. A panic inside any handler
// call is caught here, logged with the handler's name, and costs that
// handler its turn for the tick — never the loop.
type Dispatcher struct {
	log     *logger.Logger
	entries []*entry
}

type entry struct {
	h    Handler
	open bool
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(log *logger.Logger) *Dispatcher {
	return &Dispatcher{log: log}
}

// Register adds handlers to the collection, keeping it sorted by
// ascending priority. Registration order breaks ties. Handlers are
// registered once at startup and live for the process lifetime.
func (d *Dispatcher) Register(hs ...Handler) {
	for _, h := range hs {
		d.entries = append(d.entries, &entry{h: h})
	}
	sort.SliceStable(d.entries, func(i, j int) bool {
		return d.entries[i].h.Priority() < d.entries[j].h.Priority()
	})
}

// Handlers returns the registered handlers in dispatch order.
func (d *Dispatcher) Handlers() []Handler {
	out := make([]Handler, len(d.entries))
	for i, e := range d.entries {
		out[i] = e.h
	}
	return out
}

// Tick runs one frame: every handler is visited unconditionally —
// independent panels can be open at the same time — and each one's
// own IsOpen gates what it actually does.
func (d *Dispatcher) Tick() {
	for _, e := range d.entries {
		d.tickOne(e)
	}
}

func (d *Dispatcher) tickOne(e *entry) {
	open := d.probeOpen(e.h)

	switch {
	case open && !e.open:
		d.log.Debug("%s opened", e.h.Name())
		d.guard(e.h.Name(), "open", e.h.Open)
	case open && e.open:
		d.guard(e.h.Name(), "update", e.h.Update)
	case !open && e.open:
		d.log.Debug("%s closed", e.h.Name())
		d.guard(e.h.Name(), "close", e.h.Close)
	}

	e.open = open
}

// AnnounceStatus services an explicit "what is selected" request: the
// first open handler in priority order answers, and only that one —
// exactly one status announcement per request no matter how many
// panels are technically open. Returns false when nothing is open.
func (d *Dispatcher) AnnounceStatus() bool {
	for _, e := range d.entries {
		if !d.probeOpen(e.h) {
			continue
		}
		d.guard(e.h.Name(), "status", e.h.AnnounceStatus)
		return true
	}
	return false
}

// probeOpen calls IsOpen under the panic guard. A probe that panics
// reads as closed — the host object it inspects is in some half-torn-
// down state.
func (d *Dispatcher) probeOpen(h Handler) (open bool) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("%s: IsOpen panicked: %v", h.Name(), r)
			open = false
		}
	}()
	return h.IsOpen()
}

// guard runs one handler call, containing any panic to this handler's
// tick. Narration must never take the host down.
func (d *Dispatcher) guard(name, phase string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("%s: %s panicked: %v", name, phase, r)
		}
	}()
	fn()
}
