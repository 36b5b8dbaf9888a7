package input

import (
	"sort"
	"sync"

	"github.com/gameaccess/callout/internal/logger"
)

// Contexts a binding can live in. Bindings conflict when their
// contexts overlap: global overlaps everything, equal contexts
// overlap each other, and two different non-global contexts coexist.
const (
	ContextGlobal = "global"
	ContextMenu   = "menu"
	ContextField  = "field"
)

// Binding is one physical combination an action resolves to: a primary
// control and at most one modifier. Immutable once constructed.
type Binding struct {
	Primary  Control
	Modifier Control
	Context  string
}

// SameCombo reports whether two bindings use the same physical
// combination, ignoring context.
func (b Binding) SameCombo(o Binding) bool {
	return b.Primary == o.Primary && b.Modifier == o.Modifier
}

// Overlaps reports whether two bindings' contexts can be active at
// the same time, which is what makes a shared combo a conflict.
func (b Binding) Overlaps(o Binding) bool {
	return b.Context == o.Context || b.Context == ContextGlobal || o.Context == ContextGlobal
}

// String returns the spoken form of the combination: "Ctrl + R",
// "Left Trigger + A Button".
func (b Binding) String() string {
	if b.Primary == ControlNone {
		return "Unbound"
	}
	if b.Modifier != ControlNone {
		return b.Modifier.String() + " + " + b.Primary.String()
	}
	return b.Primary.String()
}

// Map resolves action names to bindings. It is the single owner of
// the action table; capture sessions and the settings layer both go
// through it.
type Map struct {
	log *logger.Logger

	mu       sync.Mutex
	bindings map[string]Binding
}

// NewMap creates an empty action map.
func NewMap(log *logger.Logger) *Map {
	return &Map{log: log, bindings: make(map[string]Binding)}
}

// Bind stores a binding for an action, replacing any prior one.
func (m *Map) Bind(action string, b Binding) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bindings[action] = b
	m.log.Debug("bound %q to %s (%s)", action, b, b.Context)
}

// Clear removes an action's binding.
func (m *Map) Clear(action string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.bindings, action)
	m.log.Debug("cleared binding for %q", action)
}

// Get returns the binding for an action.
func (m *Map) Get(action string) (Binding, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bindings[action]
	return b, ok
}

// Actions returns the bound action names, unordered.
func (m *Map) Actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.bindings))
	for name := range m.bindings {
		out = append(out, name)
	}
	return out
}

// All returns a copy of the full action table.
func (m *Map) All() map[string]Binding {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]Binding, len(m.bindings))
	for name, b := range m.bindings {
		out[name] = b
	}
	return out
}

// Replace swaps in an entire table, e.g. after loading settings.
func (m *Map) Replace(table map[string]Binding) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bindings = make(map[string]Binding, len(table))
	for name, b := range table {
		m.bindings[name] = b
	}
}

// Triggered reports whether an action fired this tick: the primary
// control saw its edge while the required modifier (if any) was held.
// Unbound actions never trigger. Edge-only — actions never repeat, so
// a held combo can't double-activate.
func (m *Map) Triggered(t *Tracker, action string) bool {
	b, ok := m.Get(action)
	if !ok || b.Primary == ControlNone {
		return false
	}
	if !t.IsJustPressed(b.Primary) {
		return false
	}
	if b.Modifier != ControlNone && !t.IsHeld(b.Modifier) {
		return false
	}
	return true
}

// ConflictingAction returns the name of the action (other than
// exclude) that already claims the given combo in an overlapping
// context, if any. Candidates are checked in sorted name order so the
// same combo always names the same owner.
func (m *Map) ConflictingAction(b Binding, exclude string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.bindings))
	for name := range m.bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if name == exclude {
			continue
		}
		if existing := m.bindings[name]; existing.SameCombo(b) && existing.Overlaps(b) {
			return name, true
		}
	}
	return "", false
}
