// Package display provides the demo's terminal UI using Bubble Tea.
//
// The [UI] type renders the simulated game — status bar, inventory,
// dialog box, controls screen — and drives the engine at a fixed frame
// rate. Spoken announcements are printed above the rendered area via
// Program.Println, so the scrollback doubles as a speech transcript.
package display

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gameaccess/callout/internal/input"
	"github.com/gameaccess/callout/internal/sim"
)

// framesPerSecond matches the polling cadence of the engine.
const framesPerSecond = 60

// ── Styles ───────────────────────────────────────────────────────

var (
	barBg = lipgloss.NewStyle().
		Background(lipgloss.Color("#27272a")).
		Foreground(lipgloss.Color("#a1a1aa"))

	hpStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#bbf7d0"))

	hpLowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5"))

	goldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a"))

	sepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#52525b"))

	flagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5")).
			Bold(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd"))

	itemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	tabActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0")).
			Underline(true)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	speakerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a"))

	dialogStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#52525b")).
			Padding(0, 1)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	// BannerStyle — muted slate for the startup banner.
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	// speechStyle — soft sky blue for announced lines in scrollback.
	speechStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd"))

	interruptTagStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#fca5a5"))
)

// ── UI ───────────────────────────────────────────────────────────

// UI manages the terminal through Bubble Tea.
//
// Call [NewUI], set [UI.OnTick], then [UI.Run] (blocking). The engine
// tick callback, key handling, and sim mutation all run on the Bubble
// Tea event loop, so the sim needs no locking of its own.
type UI struct {
	program *tea.Program
	game    *sim.Game
	dev     *sim.Device
	quitCh  chan struct{}
	done    atomic.Bool

	// OnTick is invoked once per frame after input has been applied.
	// The demo points it at the engine's tick.
	OnTick func()
}

// NewUI creates the display. Call Run() to start.
func NewUI(game *sim.Game, dev *sim.Device) *UI {
	return &UI{
		game:   game,
		dev:    dev,
		quitCh: make(chan struct{}),
	}
}

// Speak prints an announced line above the view, tagged when it cut
// off earlier speech, and feeds the live speech pane. UI satisfies
// announce.Backend so the transcript is the demo's speech output.
func (u *UI) Speak(text string, interrupt bool) error {
	tag := "  "
	if interrupt {
		tag = interruptTagStyle.Render("! ")
	}
	u.Println(tag + speechStyle.Render(text))
	if u.program != nil && !u.done.Load() {
		u.program.Send(speechMsg{line: text})
	}
	return nil
}

// Stop is a no-op for the transcript backend.
func (u *UI) Stop() error { return nil }

// Println prints a line above the rendered area. Thread-safe.
// If the program hasn't started yet, falls back to fmt.Println.
func (u *UI) Println(a ...interface{}) {
	if u.program != nil && !u.done.Load() {
		u.program.Println(a...)
	} else {
		fmt.Println(a...)
	}
}

// Quit tells Bubble Tea to exit.
func (u *UI) Quit() {
	if u.program != nil {
		u.program.Quit()
	}
}

// QuitChan is closed when Run returns.
func (u *UI) QuitChan() <-chan struct{} { return u.quitCh }

// Run starts the Bubble Tea event loop. Blocks until quit.
func (u *UI) Run() error {
	vp := viewport.New(60, 3)

	m := model{
		game: u.game,
		dev:  u.dev,
		onTick: func() {
			if u.OnTick != nil {
				u.OnTick()
			}
		},
		speech: vp,
	}

	u.program = tea.NewProgram(m)
	_, err := u.program.Run()
	u.done.Store(true)
	close(u.quitCh)
	return err
}

// ── Bubble Tea model ─────────────────────────────────────────────

type model struct {
	game   *sim.Game
	dev    *sim.Device
	onTick func()
	// speech is the live pane showing the most recent announcements.
	speech viewport.Model
	lines  []string
	width  int
}

type frameMsg time.Time

// speechMsg carries one announced line into the event loop.
type speechMsg struct {
	line string
}

// speechKeep bounds the live pane's backing buffer.
const speechKeep = 50

func (m model) Init() tea.Cmd {
	return frameCmd()
}

func frameCmd() tea.Cmd {
	return tea.Tick(time.Second/framesPerSecond, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		m.handleKey(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.speech.Width = msg.Width
		return m, nil

	case speechMsg:
		m.lines = append(m.lines, msg.line)
		if len(m.lines) > speechKeep {
			m.lines = m.lines[len(m.lines)-speechKeep:]
		}
		m.speech.SetContent(speechStyle.Render(strings.Join(m.lines, "\n")))
		m.speech.GotoBottom()
		return m, nil

	case frameMsg:
		m.onTick()
		return m, frameCmd()
	}

	var cmd tea.Cmd
	m.speech, cmd = m.speech.Update(msg)
	return m, cmd
}

// handleKey feeds the control into the engine's device and, for sim
// hotkeys, mutates the simulated world directly.
func (m model) handleKey(msg tea.KeyMsg) {
	controls, hot := translateKey(msg)
	for _, c := range controls {
		m.dev.Press(c)
	}

	switch hot {
	case hotInventory:
		m.game.ToggleInventory()
	case hotControls:
		m.game.ToggleControls()
	case hotDialog:
		m.game.StartDialog()
	case hotBattle:
		m.game.ToggleBattle()
	case hotPause:
		m.game.TogglePause()
	case hotDamage:
		m.game.Damage()
	case hotLoot:
		m.game.Loot()
	case hotTravel:
		m.game.Travel()
	default:
		// Navigation keys also drive the sim's own focus.
		for _, c := range controls {
			m.game.Apply(c)
		}
	}
}

type hotkey int

const (
	hotNone hotkey = iota
	hotInventory
	hotControls
	hotDialog
	hotBattle
	hotPause
	hotDamage
	hotLoot
	hotTravel
)

// translateKey maps a terminal key event to engine controls plus the
// demo hotkey it triggers, if any. Ctrl chords press the modifier and
// the letter in the same frame, which is how a real keyboard reads.
func translateKey(msg tea.KeyMsg) ([]input.Control, hotkey) {
	switch msg.Type {
	case tea.KeyUp:
		return []input.Control{input.KeyUp}, hotNone
	case tea.KeyDown:
		return []input.Control{input.KeyDown}, hotNone
	case tea.KeyLeft:
		return []input.Control{input.KeyLeft}, hotNone
	case tea.KeyRight:
		return []input.Control{input.KeyRight}, hotNone
	case tea.KeyEnter:
		return []input.Control{input.KeyEnter}, hotNone
	case tea.KeyEscape:
		return []input.Control{input.KeyEscape}, hotNone
	case tea.KeySpace:
		return []input.Control{input.KeySpace}, hotNone
	case tea.KeyTab:
		return []input.Control{input.KeyTab}, hotNone
	case tea.KeyBackspace:
		return []input.Control{input.KeyBackspace}, hotNone
	}

	s := msg.String()
	if strings.HasPrefix(s, "ctrl+") && len(s) == len("ctrl+")+1 {
		letter := s[len("ctrl+")]
		if letter >= 'a' && letter <= 'z' {
			c := input.KeyA + input.Control(letter-'a')
			return []input.Control{input.KeyCtrl, c}, hotNone
		}
	}

	if len(s) == 1 && s[0] >= 'a' && s[0] <= 'z' {
		c := input.KeyA + input.Control(s[0]-'a')
		switch s[0] {
		case 'i':
			return []input.Control{c}, hotInventory
		case 'c':
			return []input.Control{c}, hotControls
		case 'n':
			return []input.Control{c}, hotDialog
		case 'b':
			return []input.Control{c}, hotBattle
		case 'p':
			return []input.Control{c}, hotPause
		case 'h':
			return []input.Control{c}, hotDamage
		case 'g':
			return []input.Control{c}, hotLoot
		case 'l':
			return []input.Control{c}, hotTravel
		}
		return []input.Control{c}, hotNone
	}

	return nil, hotNone
}

// ── View ─────────────────────────────────────────────────────────

func (m model) View() string {
	v := m.game.View()

	var b strings.Builder
	b.WriteString(m.renderBar(v))
	b.WriteByte('\n')

	switch {
	case v.ControlsOpen:
		b.WriteString(renderControls())
	case v.DialogOpen:
		b.WriteString(renderDialog(v))
	case v.InventoryOpen:
		b.WriteString(renderInventory(v))
	default:
		b.WriteString(hintStyle.Render("  (field)"))
		b.WriteByte('\n')
	}

	if len(m.lines) > 0 {
		b.WriteByte('\n')
		b.WriteString(hintStyle.Render("  speech:"))
		b.WriteByte('\n')
		b.WriteString(m.speech.View())
	}

	b.WriteByte('\n')
	b.WriteString(hintStyle.Render(
		"  i inventory · n talk · c controls · b battle · p pause · h hurt · g gold · l travel · r status · t repeat · ctrl+c quit"))
	return b.String()
}

func (m model) renderBar(v sim.Snapshot) string {
	hp := hpStyle
	if v.HP*4 <= v.MaxHP {
		hp = hpLowStyle
	}
	parts := []string{
		v.Location,
		hp.Render(fmt.Sprintf("HP %d/%d", v.HP, v.MaxHP)),
		goldStyle.Render(fmt.Sprintf("%dg", v.Money)),
	}
	if v.InBattle {
		parts = append(parts, flagStyle.Render("BATTLE"))
	}
	if v.Paused {
		parts = append(parts, flagStyle.Render("PAUSED"))
	}

	content := " " + strings.Join(parts, sepStyle.Render("  │  ")) + " "
	w := m.width
	if w <= 0 {
		w = 80
	}
	return barBg.Width(w).Render(content)
}

func renderInventory(v sim.Snapshot) string {
	var b strings.Builder

	tabs := make([]string, len(v.TabNames))
	for i, name := range v.TabNames {
		if i == v.TabIndex {
			tabs[i] = tabActiveStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(name)
		}
	}
	b.WriteString("  " + strings.Join(tabs, "  ") + "\n")

	for i, it := range v.Items {
		marker := "  "
		style := itemStyle
		if i == v.Cursor {
			marker = cursorStyle.Render("> ")
			style = cursorStyle
		}
		b.WriteString("  " + marker + style.Render(it))
		if val := v.Values[i]; val != "" {
			b.WriteString("  " + valueStyle.Render(val))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func renderDialog(v sim.Snapshot) string {
	header := speakerStyle.Render(v.DialogSpeaker)
	if v.DialogVoiced {
		header += valueStyle.Render("  (voiced)")
	}
	return dialogStyle.Render(header+"\n"+v.DialogText) + "\n"
}

func renderControls() string {
	return hintStyle.Render(
		"  Controls screen — up/down to move, enter to rebind, backspace to clear") + "\n"
}
