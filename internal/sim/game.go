// Package sim is a stand-in host game for the demo harness and
// integration tests: a little world with an inventory menu, a scripted
// conversation, a controls screen, and field stats, exposing exactly
// the field surface a real host adapter would.
package sim

import (
	"github.com/gameaccess/callout/internal/host"
	"github.com/gameaccess/callout/internal/input"
	"github.com/gameaccess/callout/internal/logger"
	"github.com/gameaccess/callout/internal/panels"
)

type item struct {
	name  string
	value string
}

type tab struct {
	name  string
	items []item
}

type line struct {
	speaker string
	text    string
	voiced  bool
}

// Game is the simulated host. All mutation happens through Apply and
// the toggle methods, on the same goroutine that ticks the engine.
type Game struct {
	log *logger.Logger

	// Field state.
	hp, maxHP int
	money     int
	location  string
	locations []string
	locIdx    int

	inBattle   bool
	paused     bool
	inCutscene bool

	// Inventory panel.
	invOpen   bool
	invTab    int
	invCursor int
	tabs      []tab

	// Conversation.
	dialogOpen bool
	lineIdx    int
	script     []line
	// OnLine is the text-intercept hook; the demo wires it to the
	// dialog handler.
	OnLine func(speaker, text string)

	// Controls screen.
	controlsOpen bool
}

// NewGame creates the sim world the demo walks through.
func NewGame(log *logger.Logger) *Game {
	return &Game{
		log:       log.Named("sim"),
		hp:        40,
		maxHP:     50,
		money:     120,
		locations: []string{"Harbor Town", "North Road", "Old Mill"},
		location:  "Harbor Town",
		tabs: []tab{
			{name: "Items", items: []item{
				{"Potion", "x3"}, {"Antidote", "x1"}, {"Ether", "x2"}, {"<color=#888>???</color>", ""},
			}},
			{name: "Equipment", items: []item{
				{"Bronze Sword", "ATK 12"}, {"Leather Vest", "DEF 8"},
			}},
		},
		script: []line{
			{speaker: "Ferryman", text: "The <i>crossing</i> costs ten gold."},
			{speaker: "Ferryman", text: "Storm's coming. Decide quick.", voiced: true},
			{speaker: "???", text: "...you won't make it across."},
		},
	}
}

// ── Panel toggles ────────────────────────────────────────────────

// ToggleInventory opens or closes the inventory panel.
func (g *Game) ToggleInventory() {
	g.invOpen = !g.invOpen
	if g.invOpen {
		g.invTab = 0
		g.invCursor = 0
	}
}

// ToggleControls opens or closes the controls screen.
func (g *Game) ToggleControls() {
	g.controlsOpen = !g.controlsOpen
}

// ControlsOpen reports the controls screen flag.
func (g *Game) ControlsOpen() bool { return g.controlsOpen }

// StartDialog begins the scripted conversation from the top.
func (g *Game) StartDialog() {
	if g.dialogOpen {
		return
	}
	g.dialogOpen = true
	g.lineIdx = 0
	g.emitLine()
}

// AdvanceDialog moves to the next line, closing after the last.
func (g *Game) AdvanceDialog() {
	if !g.dialogOpen {
		g.StartDialog()
		return
	}
	g.lineIdx++
	if g.lineIdx >= len(g.script) {
		g.dialogOpen = false
		return
	}
	g.emitLine()
}

func (g *Game) emitLine() {
	l := g.script[g.lineIdx]
	if g.OnLine != nil {
		g.OnLine(l.speaker, l.text)
	}
}

// ── Field events ─────────────────────────────────────────────────

// ToggleBattle flips battle state.
func (g *Game) ToggleBattle() { g.inBattle = !g.inBattle }

// TogglePause flips the pause flag.
func (g *Game) TogglePause() { g.paused = !g.paused }

// Damage knocks ten HP off the player, to a floor of zero.
func (g *Game) Damage() {
	g.hp -= 10
	if g.hp < 0 {
		g.hp = 0
	}
}

// Loot adds gold.
func (g *Game) Loot() { g.money += 25 }

// Travel cycles to the next location.
func (g *Game) Travel() {
	g.locIdx = (g.locIdx + 1) % len(g.locations)
	g.location = g.locations[g.locIdx]
}

// Apply routes a navigation control to whatever panel currently has
// the sim's focus. The controls screen handles its own input through
// the engine's tracker, so nothing is routed there.
func (g *Game) Apply(c input.Control) {
	if g.controlsOpen {
		return
	}
	if g.dialogOpen {
		if c == input.KeyEnter || c == input.PadA {
			g.AdvanceDialog()
		}
		return
	}
	if !g.invOpen {
		return
	}

	items := g.tabs[g.invTab].items
	switch c {
	case input.KeyDown, input.PadDown:
		g.invCursor = (g.invCursor + 1) % len(items)
	case input.KeyUp, input.PadUp:
		g.invCursor = (g.invCursor - 1 + len(items)) % len(items)
	case input.KeyRight, input.PadRight:
		g.invTab = (g.invTab + 1) % len(g.tabs)
		g.invCursor = 0
	case input.KeyLeft, input.PadLeft:
		g.invTab = (g.invTab - 1 + len(g.tabs)) % len(g.tabs)
		g.invCursor = 0
	case input.KeyEscape, input.PadB:
		g.invOpen = false
	}
}

// ── Host field surface ───────────────────────────────────────────

// MenuFields exposes the inventory panel the way a host adapter would.
func (g *Game) MenuFields() panels.MenuFields {
	return panels.MenuFields{
		Exists:    func() (bool, bool) { return true, true },
		Active:    func() (bool, bool) { return g.invOpen, true },
		State:     func() (int, bool) { return 0, true },
		Tab:       func() (int, bool) { return g.invTab, true },
		Cursor:    func() (int, bool) { return g.invCursor, true },
		ItemCount: func() (int, bool) { return len(g.tabs[g.invTab].items), true },
		ItemText: func(i int) (string, bool) {
			items := g.tabs[g.invTab].items
			if i < 0 || i >= len(items) {
				return "", false
			}
			return items[i].name, true
		},
		ValueText: func() (string, bool) {
			items := g.tabs[g.invTab].items
			if g.invCursor < 0 || g.invCursor >= len(items) {
				return "", false
			}
			return items[g.invCursor].value, true
		},
	}
}

// TabNames returns the inventory tab labels.
func (g *Game) TabNames() []string {
	names := make([]string, len(g.tabs))
	for i, t := range g.tabs {
		names[i] = t.name
	}
	return names
}

// DialogFields exposes the conversation box.
func (g *Game) DialogFields() panels.DialogFields {
	return panels.DialogFields{
		Exists: func() (bool, bool) { return true, true },
		Active: func() (bool, bool) { return g.dialogOpen, true },
		Voiced: func() (bool, bool) {
			if !g.dialogOpen || g.lineIdx >= len(g.script) {
				return false, true
			}
			return g.script[g.lineIdx].voiced, true
		},
		Caption: func() (string, bool) { return "", true },
	}
}

// HUDFields exposes the field stats.
func (g *Game) HUDFields() panels.HUDFields {
	return panels.HUDFields{
		HP:       func() (int, bool) { return g.hp, true },
		MaxHP:    func() (int, bool) { return g.maxHP, true },
		Money:    func() (int, bool) { return g.money, true },
		Location: func() (string, bool) { return g.location, true },
	}
}

// Facade exposes the blocking-state predicates.
func (g *Game) Facade() *host.Facade {
	return &host.Facade{
		InBattle:   func() (bool, bool) { return g.inBattle, true },
		Paused:     func() (bool, bool) { return g.paused, true },
		InCutscene: func() (bool, bool) { return g.inCutscene, true },
		Recovering: host.FixedBool(false),
		AnimLocked: host.FixedBool(false),
		BlockingMenu: func() (bool, bool) {
			return g.invOpen || g.dialogOpen || g.controlsOpen, true
		},
	}
}

// ControlsOpenField exposes the controls screen flag as a host field.
func (g *Game) ControlsOpenField() host.BoolField {
	return func() (bool, bool) { return g.controlsOpen, true }
}

// ── View accessors for the demo UI ───────────────────────────────

// Snapshot is what the demo UI renders each frame.
type Snapshot struct {
	HP, MaxHP, Money int
	Location         string
	InBattle, Paused bool
	InventoryOpen    bool
	TabNames         []string
	TabIndex         int
	Items            []string
	Values           []string
	Cursor           int
	DialogOpen       bool
	DialogSpeaker    string
	DialogText       string
	DialogVoiced     bool
	ControlsOpen     bool
}

// View returns a copy of everything the demo UI draws.
func (g *Game) View() Snapshot {
	s := Snapshot{
		HP: g.hp, MaxHP: g.maxHP, Money: g.money,
		Location: g.location, InBattle: g.inBattle, Paused: g.paused,
		InventoryOpen: g.invOpen, TabNames: g.TabNames(), TabIndex: g.invTab,
		Cursor: g.invCursor, ControlsOpen: g.controlsOpen,
	}
	for _, it := range g.tabs[g.invTab].items {
		s.Items = append(s.Items, it.name)
		s.Values = append(s.Values, it.value)
	}
	if g.dialogOpen && g.lineIdx < len(g.script) {
		l := g.script[g.lineIdx]
		s.DialogOpen = true
		s.DialogSpeaker = l.speaker
		s.DialogText = l.text
		s.DialogVoiced = l.voiced
	}
	return s
}
