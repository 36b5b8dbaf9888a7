package input

import (
	"testing"

	"github.com/gameaccess/callout/internal/logger"
)

func testLog() *logger.Logger {
	return logger.New(logger.LevelOff, nil)
}

// tick feeds one sample where the given controls are held.
func tick(t *Tracker, held ...Control) {
	var s State
	for _, c := range held {
		s.Press(c)
	}
	t.Update(s)
}

func TestJustPressedFiresOncePerPress(t *testing.T) {
	tr := NewTracker(testLog())

	tick(tr, PadA)
	if !tr.IsJustPressed(PadA) {
		t.Fatal("no edge on first held tick")
	}

	tick(tr, PadA)
	if tr.IsJustPressed(PadA) {
		t.Fatal("edge fired twice for one press")
	}

	tick(tr) // release
	tick(tr, PadA)
	if !tr.IsJustPressed(PadA) {
		t.Fatal("no edge after release and re-press")
	}
}

func TestRepeatCadence(t *testing.T) {
	// Defaults: delay 16, interval 4.
	tr := NewTracker(testLog())

	// Holding for exactly 15 ticks: one edge at tick 1, zero repeats.
	edges, repeats := 0, 0
	for i := 0; i < 15; i++ {
		tick(tr, KeyDown)
		if tr.IsJustPressed(KeyDown) {
			edges++
		}
		if tr.IsRepeating(KeyDown) {
			repeats++
		}
	}
	if edges != 1 {
		t.Fatalf("edges over 15 held ticks = %d, want 1", edges)
	}
	if repeats != 0 {
		t.Fatalf("repeats over 15 held ticks = %d, want 0", repeats)
	}

	// Continue holding through tick 20: repeats at exactly 16 and 20.
	var repeatTicks []int
	for i := 15; i < 20; i++ {
		tick(tr, KeyDown)
		if tr.IsRepeating(KeyDown) {
			repeatTicks = append(repeatTicks, i+1)
		}
	}
	if len(repeatTicks) != 2 || repeatTicks[0] != 16 || repeatTicks[1] != 20 {
		t.Fatalf("repeat ticks = %v, want [16 20]", repeatTicks)
	}

	// Release resets the clock entirely.
	tick(tr)
	if tr.IsRepeating(KeyDown) {
		t.Fatal("repeating after release")
	}
}

func TestRepeatsChannelCombinesEdgeAndRepeat(t *testing.T) {
	tr := NewTracker(testLog(), WithRepeatDelay(3), WithRepeatInterval(2))

	var fires []int
	for i := 0; i < 8; i++ {
		tick(tr, PadDown)
		if tr.Repeats(PadDown) {
			fires = append(fires, i+1)
		}
	}
	// Edge at 1, repeats at 3, 5, 7.
	want := []int{1, 3, 5, 7}
	if len(fires) != len(want) {
		t.Fatalf("fires = %v, want %v", fires, want)
	}
	for i := range want {
		if fires[i] != want[i] {
			t.Fatalf("fires = %v, want %v", fires, want)
		}
	}
}

func TestStickCoercion(t *testing.T) {
	tests := []struct {
		name   string
		x, y   float64
		expect Control
		held   bool
	}{
		{"inside deadzone", 0.3, 0.0, StickRight, false},
		{"right past deadzone", 0.8, 0.0, StickRight, true},
		{"left past deadzone", -0.8, 0.0, StickLeft, true},
		{"up past deadzone", 0.0, -0.9, StickUp, true},
		{"down past deadzone", 0.0, 0.9, StickDown, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker(testLog())
			tr.Update(State{StickX: tt.x, StickY: tt.y})
			if got := tr.IsHeld(tt.expect); got != tt.held {
				t.Fatalf("IsHeld(%v) = %v, want %v", tt.expect, got, tt.held)
			}
		})
	}
}

func TestStickUsesRepeatChannel(t *testing.T) {
	tr := NewTracker(testLog(), WithRepeatDelay(4), WithRepeatInterval(2))

	fires := 0
	for i := 0; i < 6; i++ {
		tr.Update(State{StickY: 1.0})
		if tr.AnyRepeats(Downs...) {
			fires++
		}
	}
	// Edge at 1, repeats at 4 and 6.
	if fires != 3 {
		t.Fatalf("stick-down fires over 6 ticks = %d, want 3", fires)
	}
}

func TestSeedSuppressesOpeningPress(t *testing.T) {
	tr := NewTracker(testLog())

	// The confirm press that opened the menu is still physically down
	// when the handler activates and seeds the tracker.
	tr.Seed(KeyEnter)
	tick(tr, KeyEnter)
	if tr.IsJustPressed(KeyEnter) {
		t.Fatal("seeded control produced an edge")
	}

	// After release, the next press registers normally.
	tick(tr)
	tick(tr, KeyEnter)
	if !tr.IsJustPressed(KeyEnter) {
		t.Fatal("seed swallowed a genuine later press")
	}
}

func TestSeedAllCurrentlyHeld(t *testing.T) {
	tr := NewTracker(testLog())
	tick(tr, PadA, PadLT)

	tr.Seed()
	// prev now includes both; the following tick sees no edges.
	tick(tr, PadA, PadLT)
	if tr.IsJustPressed(PadA) || tr.IsJustPressed(PadLT) {
		t.Fatal("Seed() left an edge on a held control")
	}
}

func TestHeldModifier(t *testing.T) {
	tr := NewTracker(testLog())
	tick(tr, KeyShift, KeyR)
	if got := tr.HeldModifier(); got != KeyShift {
		t.Fatalf("HeldModifier = %v, want KeyShift", got)
	}

	tick(tr, KeyR)
	if got := tr.HeldModifier(); got != ControlNone {
		t.Fatalf("HeldModifier with none held = %v", got)
	}
}
