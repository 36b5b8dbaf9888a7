// Package panels contains the worked per-panel handlers: a tabbed
// list menu, a dialog box, the binding-configuration screen, and the
// background field HUD. Each one is a small state machine over host
// fields, narrating through the shared announcement sink.
package panels

import (
	"github.com/gameaccess/callout/internal/announce"
	"github.com/gameaccess/callout/internal/handler"
	"github.com/gameaccess/callout/internal/host"
	"github.com/gameaccess/callout/internal/logger"
)

// MenuFields is the host surface of one tabbed list panel. Any field
// left nil simply reads as unavailable and degrades to a fallback.
type MenuFields struct {
	// Exists reports whether the panel object is alive at all.
	Exists host.BoolField
	// Active reports whether the panel's state flag is not a
	// terminal/closed value.
	Active host.BoolField
	// State is the panel-internal level (top list, sub-list, ...).
	State host.IntField
	// Tab is the selected tab index.
	Tab host.IntField
	// Cursor is the list cursor index.
	Cursor host.IntField
	// ItemCount is the number of items under the current tab.
	ItemCount host.IntField
	// ItemText reads the label of one item by index.
	ItemText func(i int) (string, bool)
	// ValueText is the value column for the item under the cursor.
	// The host populates it one tick after a cursor move.
	ValueText host.StringField
}

// MenuOption configures a Menu.
type MenuOption func(*Menu)

// WithOpenDelay sets how many ticks the opening announcement waits
// for asynchronous text localization. Default 2.
func WithOpenDelay(ticks int) MenuOption {
	return func(m *Menu) {
		m.openDelay = ticks
	}
}

// WithStateNames sets spoken names for panel-internal states.
func WithStateNames(names map[int]string) MenuOption {
	return func(m *Menu) {
		m.stateNames = names
	}
}

// WithTabNames sets spoken names for the panel's tabs.
func WithTabNames(names []string) MenuOption {
	return func(m *Menu) {
		m.tabNames = names
	}
}

// WithWrapCue installs a hook fired when the cursor wraps between the
// list ends — the usual place to play a positional earcon.
func WithWrapCue(fn func()) MenuOption {
	return func(m *Menu) {
		m.wrapCue = fn
	}
}

// Menu narrates one tabbed list panel. Per tick it reads the host
// fields once, compares them against the last-seen snapshot in fixed
// precedence — state, then cursor, then tab, then value — and speaks
// at most the single highest-priority change.
type Menu struct {
	title    string
	priority int
	fields   MenuFields
	sink     *announce.Sink
	log      *logger.Logger

	openDelay  int
	stateNames map[int]string
	tabNames   []string
	wrapCue    func()

	// Snapshot. Write-once-per-tick, compared and overwritten only.
	lastState  handler.Cell[int]
	lastCursor handler.Cell[int]
	lastTab    handler.Cell[int]
	lastValue  handler.Cell[string]

	opening      handler.Countdown
	pendingValue bool // re-snapshot ValueText silently next tick
}

// Compile-time interface check.
var _ handler.Handler = (*Menu)(nil)

// NewMenu creates a menu handler. Title is the spoken panel name.
func NewMenu(title string, priority int, fields MenuFields, sink *announce.Sink, log *logger.Logger, opts ...MenuOption) *Menu {
	m := &Menu{
		title:     title,
		priority:  priority,
		fields:    fields,
		sink:      sink,
		log:       log.Named(title),
		openDelay: 2,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Menu) Name() string  { return m.title }
func (m *Menu) Priority() int { return m.priority }

// IsOpen probes the panel: it must exist and its activity flag must
// not be a closed value.
func (m *Menu) IsOpen() bool {
	return host.BoolOr(m.fields.Exists, false) && host.BoolOr(m.fields.Active, false)
}

// Open resets the snapshot and arms the localization delay before the
// opening announcement.
func (m *Menu) Open() {
	m.resetSnapshot()
	m.opening.Arm(m.openDelay)
}

// Close clears everything so a reopen starts from scratch.
func (m *Menu) Close() {
	m.resetSnapshot()
	m.opening.Stop()
}

func (m *Menu) resetSnapshot() {
	m.lastState.Reset()
	m.lastCursor.Reset()
	m.lastTab.Reset()
	m.lastValue.Reset()
	m.pendingValue = false
}

// Update is the per-tick diff. Exactly one announcement can leave
// this method per call.
func (m *Menu) Update() {
	// Deferred read: the value column for the row the cursor just
	// moved to only exists this tick. Snapshot it without speaking so
	// the cursor-made change is never mistaken for a user edit.
	if m.pendingValue {
		m.pendingValue = false
		m.lastValue.Set(host.StringOr(m.fields.ValueText, ""))
	}

	if m.opening.Armed() {
		if m.opening.Tick() {
			m.announceOpened()
		}
		return
	}

	state := host.IntOr(m.fields.State, 0)
	cursor := host.IntOr(m.fields.Cursor, 0)
	tab := host.IntOr(m.fields.Tab, 0)
	value := host.StringOr(m.fields.ValueText, "")

	switch {
	case m.lastState.Changed(state):
		m.sink.Speak(m.stateName(state), true)
	case m.lastCursor.Changed(cursor):
		m.announceCursor(cursor)
		m.pendingValue = true
	case m.lastTab.Changed(tab):
		m.sink.Speak(m.tabName(tab)+" tab", true)
	case m.lastValue.Changed(value):
		m.sink.Speak(announce.StripMarkup(value), true)
	default:
		// No change this tick.
	}

	m.lastState.Set(state)
	m.lastCursor.Set(cursor)
	m.lastTab.Set(tab)
	if !m.pendingValue {
		m.lastValue.Set(value)
	}
}

// announceOpened composes the just-opened announcement: panel name,
// tab, item under the cursor, position.
func (m *Menu) announceOpened() {
	cursor := host.IntOr(m.fields.Cursor, 0)
	text := announce.Join(m.title, m.tabSuffix(), m.itemPhrase(cursor))
	m.sink.Speak(text, true)

	m.lastState.Set(host.IntOr(m.fields.State, 0))
	m.lastCursor.Set(cursor)
	m.lastTab.Set(host.IntOr(m.fields.Tab, 0))
	m.lastValue.Set(host.StringOr(m.fields.ValueText, ""))
}

// announceCursor speaks the newly selected item and fires the wrap
// cue when the move crossed a list end.
func (m *Menu) announceCursor(cursor int) {
	count := host.IntOr(m.fields.ItemCount, 0)
	if m.wrapCue != nil && count > 1 {
		if prev, ok := m.lastCursor.Value(); ok {
			if (prev == count-1 && cursor == 0) || (prev == 0 && cursor == count-1) {
				m.wrapCue()
			}
		}
	}
	m.sink.Speak(m.itemPhrase(cursor), true)
}

// AnnounceStatus re-speaks the full current selection. It rebuilds
// the phrase from live host reads and touches no snapshot state, so
// it can be called any number of times with identical results.
func (m *Menu) AnnounceStatus() {
	cursor := host.IntOr(m.fields.Cursor, 0)
	m.sink.Speak(announce.Join(m.title, m.tabSuffix(), m.itemPhrase(cursor)), true)
}

// itemPhrase builds "label, n of m" for one item, degrading to the
// neutral "Option N" when the host can't supply a label.
func (m *Menu) itemPhrase(cursor int) string {
	count := host.IntOr(m.fields.ItemCount, 0)
	raw := ""
	if m.fields.ItemText != nil {
		if s, ok := m.fields.ItemText(cursor); ok {
			raw = s
		}
	}
	return announce.Position(announce.Label(raw, cursor), cursor, count)
}

func (m *Menu) tabSuffix() string {
	if len(m.tabNames) == 0 {
		return ""
	}
	return m.tabName(host.IntOr(m.fields.Tab, 0)) + " tab"
}

func (m *Menu) tabName(tab int) string {
	if tab >= 0 && tab < len(m.tabNames) {
		return m.tabNames[tab]
	}
	return announce.FallbackOption(tab)
}

func (m *Menu) stateName(state int) string {
	if name, ok := m.stateNames[state]; ok {
		return name
	}
	return announce.Join(m.title, announce.FallbackOption(state))
}
