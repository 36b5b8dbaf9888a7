// Package handler contains the narration engine core: the Handler
// contract every panel state machine implements, snapshot cells for
// echo suppression, the countdown scheduler, and the Dispatcher that
// drives them all once per tick.
package handler

// Handler is one self-contained state machine narrating one game
// panel. Implementations own their snapshot state exclusively; no
// handler reads another's.
//
// Lifecycle is driven by the Dispatcher, which detects open/close
// edges: Open fires once on the tick a panel appears, Update on every
// later tick while it stays open, Close once when it goes away.
type Handler interface {
	// Name identifies the handler in logs and the transcript view.
	Name() string
	// Priority orders handlers for status requests: lower is more
	// urgent. A modal dialog outranks a background HUD.
	Priority() int
	// IsOpen is a cheap, side-effect-free probe of host state. It is
	// called every tick, open or not.
	IsOpen() bool
	// Open resets all last-seen snapshot state and starts the opening
	// announcement (possibly after a localization delay).
	Open()
	// Update polls host fields, diffs them against the snapshot, and
	// announces at most one change per tick.
	Update()
	// Close clears snapshot state so a later reopen starts fresh.
	Close()
	// AnnounceStatus reconstructs and speaks the current full
	// announcement without touching the snapshot. Idempotent.
	AnnounceStatus()
}
