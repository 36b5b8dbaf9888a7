// Package input unifies keyboard keys, gamepad buttons, and the left
// stick into one button set with edge detection: held, just-pressed,
// and repeating with a delay-then-interval cadence. On top of the raw
// layer sits a named-action map and a binding-capture mode.
package input

// Control identifies one physical input in a single enum space shared
// by keyboard and gamepad, plus the four virtual controls the left
// stick is coerced into.
type Control uint8

const (
	ControlNone Control = iota

	// Keyboard.
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeySpace
	KeyTab
	KeyBackspace
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	KeyCtrl
	KeyAlt
	KeyShift

	// Gamepad.
	PadUp
	PadDown
	PadLeft
	PadRight
	PadA
	PadB
	PadX
	PadY
	PadLB
	PadRB
	PadLT
	PadRT
	PadStart
	PadBack

	// Virtual: left stick coerced through the deadzone.
	StickUp
	StickDown
	StickLeft
	StickRight

	numControls
)

const controlWords = (int(numControls) + 63) / 64

var controlNames = map[Control]string{
	KeyUp: "Up Arrow", KeyDown: "Down Arrow", KeyLeft: "Left Arrow", KeyRight: "Right Arrow",
	KeyEnter: "Enter", KeyEscape: "Escape", KeySpace: "Space", KeyTab: "Tab", KeyBackspace: "Backspace",
	KeyCtrl: "Ctrl", KeyAlt: "Alt", KeyShift: "Shift",
	PadUp: "D-Pad Up", PadDown: "D-Pad Down", PadLeft: "D-Pad Left", PadRight: "D-Pad Right",
	PadA: "A Button", PadB: "B Button", PadX: "X Button", PadY: "Y Button",
	PadLB: "Left Bumper", PadRB: "Right Bumper", PadLT: "Left Trigger", PadRT: "Right Trigger",
	PadStart: "Start", PadBack: "Back",
	StickUp: "Stick Up", StickDown: "Stick Down", StickLeft: "Stick Left", StickRight: "Stick Right",
}

// String returns the spoken name of a control — it goes straight into
// binding announcements, so names are words, not symbols.
func (c Control) String() string {
	if name, ok := controlNames[c]; ok {
		return name
	}
	if c >= KeyA && c <= KeyZ {
		return string(rune('A' + (c - KeyA)))
	}
	return "Unknown"
}

// ParseControl resolves a spoken control name back to its Control.
// The inverse of String; used when loading persisted bindings.
func ParseControl(name string) (Control, bool) {
	for c, n := range controlNames {
		if n == name {
			return c, true
		}
	}
	if len(name) == 1 && name[0] >= 'A' && name[0] <= 'Z' {
		return KeyA + Control(name[0]-'A'), true
	}
	return ControlNone, false
}

// IsModifier reports whether the control acts as a binding modifier:
// Ctrl/Alt/Shift on keyboard, LT/RT on a gamepad.
func (c Control) IsModifier() bool {
	switch c {
	case KeyCtrl, KeyAlt, KeyShift, PadLT, PadRT:
		return true
	}
	return false
}

// IsStick reports whether the control is a virtual stick direction.
// Stick directions can navigate but can never be captured as bindings.
func (c Control) IsStick() bool {
	return c >= StickUp && c <= StickRight
}

// Logical direction groups. Handlers navigate on these so d-pad,
// arrows, and stick all behave identically.
var (
	Ups    = []Control{KeyUp, PadUp, StickUp}
	Downs  = []Control{KeyDown, PadDown, StickDown}
	Lefts  = []Control{KeyLeft, PadLeft, StickLeft}
	Rights = []Control{KeyRight, PadRight, StickRight}
)
