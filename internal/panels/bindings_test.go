package panels

import (
	"strings"
	"testing"

	"github.com/gameaccess/callout/internal/announce"
	"github.com/gameaccess/callout/internal/input"
	"github.com/gameaccess/callout/internal/logger"
)

type bindingsFixture struct {
	panel   *Bindings
	tracker *input.Tracker
	actions *input.Map
	rec     *announce.Recorder
	open    bool
	saves   int
}

func newBindingsFixture(t *testing.T) *bindingsFixture {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	f := &bindingsFixture{
		tracker: input.NewTracker(log),
		actions: input.NewMap(log),
		rec:     announce.NewRecorder(),
	}
	f.actions.Bind("Read Status", input.Binding{Primary: input.KeyR, Context: input.ContextGlobal})
	f.actions.Bind("Repeat Last", input.Binding{Primary: input.KeyT, Context: input.ContextGlobal})

	sink := announce.NewSink(f.rec, log)
	f.panel = NewBindings(20,
		func() (bool, bool) { return f.open, true },
		[]string{"Read Status", "Repeat Last", "Toggle Cues"},
		f.actions, f.tracker, sink, log,
		WithOnSave(func() { f.saves++ }),
	)
	return f
}

// press feeds one tick with the given controls held, then updates the
// panel the way the dispatcher would.
func (f *bindingsFixture) press(t *testing.T, held ...input.Control) {
	t.Helper()
	var s input.State
	for _, c := range held {
		s.Press(c)
	}
	f.tracker.Update(s)
	f.panel.Update()
}

func (f *bindingsFixture) openPanel() {
	f.open = true
	f.panel.Open()
}

func TestBindingsOpenAnnouncesFirstRow(t *testing.T) {
	f := newBindingsFixture(t)
	f.openPanel()
	want := "Controls, Read Status, R, 1 of 3"
	if got := f.rec.Last(); got != want {
		t.Fatalf("open announcement = %q, want %q", got, want)
	}
}

func TestBindingsOpeningPressDoesNotNavigate(t *testing.T) {
	f := newBindingsFixture(t)

	// The menu key is held down on the tick the panel opens.
	var s input.State
	s.Press(input.KeyDown)
	f.tracker.Update(s)
	f.openPanel() // Open seeds the tracker

	n := len(f.rec.Texts())
	f.press(t, input.KeyDown) // still held: no edge, no navigation
	if len(f.rec.Texts()) != n {
		t.Fatalf("opening press navigated: %v", f.rec.Texts()[n:])
	}
}

func TestBindingsNavigationWraps(t *testing.T) {
	f := newBindingsFixture(t)
	f.openPanel()

	f.press(t, input.KeyDown)
	if got := f.rec.Last(); got != "Repeat Last, T, 2 of 3" {
		t.Fatalf("row announcement = %q", got)
	}

	f.press(t)
	f.press(t, input.KeyDown)
	f.press(t)
	f.press(t, input.KeyDown) // wraps to the top
	if got := f.rec.Last(); got != "Read Status, R, 1 of 3" {
		t.Fatalf("wrap announcement = %q", got)
	}
}

func TestBindingsUnboundRow(t *testing.T) {
	f := newBindingsFixture(t)
	f.openPanel()

	f.press(t, input.KeyDown)
	f.press(t)
	f.press(t, input.KeyDown)
	if got := f.rec.Last(); got != "Toggle Cues, Unbound, 3 of 3" {
		t.Fatalf("unbound row = %q", got)
	}
}

func TestBindingsCaptureFlow(t *testing.T) {
	f := newBindingsFixture(t)
	f.openPanel()

	f.press(t, input.KeyEnter)
	if got := f.rec.Last(); !strings.Contains(got, "Press a new input for Read Status") {
		t.Fatalf("listening announcement = %q", got)
	}
	if !f.panel.Capturing() {
		t.Fatal("Capturing() false during a live session")
	}

	f.press(t) // release
	f.press(t, input.KeyCtrl)
	f.press(t, input.KeyCtrl, input.KeyG)
	if got := f.rec.Last(); got != "Read Status bound to Ctrl + G." {
		t.Fatalf("capture announcement = %q", got)
	}
	if f.panel.Capturing() {
		t.Fatal("Capturing() true after the session resolved")
	}
	if b, _ := f.actions.Get("Read Status"); b.Primary != input.KeyG || b.Modifier != input.KeyCtrl {
		t.Fatalf("stored binding = %+v", b)
	}
	if f.saves != 1 {
		t.Fatalf("saves = %d, want 1", f.saves)
	}
}

func TestBindingsCaptureConflictNamesOwner(t *testing.T) {
	f := newBindingsFixture(t)
	f.openPanel()

	f.press(t, input.KeyEnter) // start capture for Read Status
	f.press(t)
	f.press(t, input.KeyT) // already owned by Repeat Last
	if got := f.rec.Last(); got != "T is already bound to Repeat Last." {
		t.Fatalf("conflict announcement = %q", got)
	}
	// Nothing changed, nothing saved.
	if b, _ := f.actions.Get("Read Status"); b.Primary != input.KeyR {
		t.Fatalf("Read Status mutated: %+v", b)
	}
	if f.saves != 0 {
		t.Fatalf("saves = %d, want 0", f.saves)
	}
}

func TestBindingsCaptureCancel(t *testing.T) {
	f := newBindingsFixture(t)
	f.openPanel()

	f.press(t, input.KeyEnter)
	f.press(t)
	f.press(t, input.KeyEscape)
	if got := f.rec.Last(); got != "Cancelled." {
		t.Fatalf("cancel announcement = %q", got)
	}

	// Back to navigating the same tick chain: down moves the cursor.
	f.press(t)
	f.press(t, input.KeyDown)
	if got := f.rec.Last(); got != "Repeat Last, T, 2 of 3" {
		t.Fatalf("post-cancel navigation = %q", got)
	}
}

func TestBindingsUnbindConfirmFlow(t *testing.T) {
	f := newBindingsFixture(t)
	f.openPanel()

	f.press(t, input.KeyBackspace)
	if got := f.rec.Last(); got != "Unbind Read Status? No selected." {
		t.Fatalf("confirm prompt = %q", got)
	}

	f.press(t)
	f.press(t, input.KeyRight)
	if got := f.rec.Last(); got != "Yes" {
		t.Fatalf("toggle announcement = %q", got)
	}

	f.press(t)
	f.press(t, input.KeyEnter)
	if got := f.rec.Last(); got != "Read Status unbound." {
		t.Fatalf("resolve announcement = %q", got)
	}
	if _, ok := f.actions.Get("Read Status"); ok {
		t.Fatal("binding not cleared")
	}
	if f.saves != 1 {
		t.Fatalf("saves = %d, want 1", f.saves)
	}
}

func TestBindingsConfirmDefaultsToNo(t *testing.T) {
	f := newBindingsFixture(t)
	f.openPanel()

	f.press(t, input.KeyBackspace)
	f.press(t)
	f.press(t, input.KeyEnter) // resolve with "No"
	if got := f.rec.Last(); got != "Kept." {
		t.Fatalf("resolve announcement = %q", got)
	}
	if _, ok := f.actions.Get("Read Status"); !ok {
		t.Fatal("binding cleared despite No")
	}
}

func TestBindingsUnbindUnboundRow(t *testing.T) {
	f := newBindingsFixture(t)
	f.openPanel()
	f.press(t, input.KeyDown)
	f.press(t)
	f.press(t, input.KeyDown) // Toggle Cues, unbound
	f.press(t)
	f.press(t, input.KeyBackspace)
	if got := f.rec.Last(); got != "Toggle Cues is not bound." {
		t.Fatalf("announcement = %q", got)
	}
}

func TestBindingsStatusPerSubstate(t *testing.T) {
	f := newBindingsFixture(t)
	f.openPanel()

	f.panel.AnnounceStatus()
	if got := f.rec.Last(); got != "Controls, Read Status, R, 1 of 3" {
		t.Fatalf("navigating status = %q", got)
	}

	f.press(t, input.KeyEnter)
	f.panel.AnnounceStatus()
	if got := f.rec.Last(); got != "Listening for a new input for Read Status." {
		t.Fatalf("listening status = %q", got)
	}
}
