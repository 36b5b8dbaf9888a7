package handler

// Cell is one last-seen value in a handler's snapshot. It starts
// unset, so the first observation after a panel opens never reads as
// a change. Cells exist purely for echo suppression — they are
// compared and overwritten, never used to drive panel logic.
type Cell[T comparable] struct {
	val T
	set bool
}

// Set records the current value.
func (c *Cell[T]) Set(v T) {
	c.val = v
	c.set = true
}

// Changed reports whether v differs from the last recorded value.
// An unset cell reports false: there is nothing to differ from.
func (c *Cell[T]) Changed(v T) bool {
	return c.set && c.val != v
}

// Value returns the last recorded value and whether one was recorded.
func (c *Cell[T]) Value() (T, bool) {
	return c.val, c.set
}

// Reset returns the cell to unset. Called when a panel closes.
func (c *Cell[T]) Reset() {
	var zero T
	c.val = zero
	c.set = false
}
