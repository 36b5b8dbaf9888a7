package panels

import (
	"testing"

	"github.com/gameaccess/callout/internal/announce"
	"github.com/gameaccess/callout/internal/logger"
)

type fakeWorld struct {
	controllable bool
	hp, maxHP    int
	money        int
	location     string
}

func (w *fakeWorld) fields() HUDFields {
	return HUDFields{
		HP:       func() (int, bool) { return w.hp, true },
		MaxHP:    func() (int, bool) { return w.maxHP, true },
		Money:    func() (int, bool) { return w.money, true },
		Location: func() (string, bool) { return w.location, true },
	}
}

func newHUDFixture(t *testing.T) (*FieldHUD, *fakeWorld, *announce.Recorder) {
	t.Helper()
	w := &fakeWorld{controllable: true, hp: 40, maxHP: 50, money: 120, location: "Harbor Town"}
	rec := announce.NewRecorder()
	log := logger.New(logger.LevelOff, nil)
	h := NewFieldHUD(90, w.fields(), func() bool { return w.controllable }, announce.NewSink(rec, log), log)
	return h, w, rec
}

func TestHUDOpenIsSilent(t *testing.T) {
	h, _, rec := newHUDFixture(t)
	h.Open()
	h.Update()
	if len(rec.Texts()) != 0 {
		t.Fatalf("open replayed stats: %v", rec.Texts())
	}
}

func TestHUDAnnouncesChanges(t *testing.T) {
	h, w, rec := newHUDFixture(t)
	h.Open()
	h.Update()

	w.hp = 34
	h.Update()
	if got := rec.Last(); got != "HP 34 of 50" {
		t.Fatalf("hp announcement = %q", got)
	}

	w.money = 150
	h.Update()
	if got := rec.Last(); got != "150 gold" {
		t.Fatalf("money announcement = %q", got)
	}

	// Ambient changes queue instead of interrupting.
	for _, u := range rec.Utterances() {
		if u.Interrupt {
			t.Fatalf("ambient stat change interrupted: %+v", u)
		}
	}
}

func TestHUDLocationOutranksStats(t *testing.T) {
	h, w, rec := newHUDFixture(t)
	h.Open()
	h.Update()

	w.location = "North Road"
	w.hp = 1
	w.money = 0
	h.Update()
	if got := rec.Last(); got != "North Road" {
		t.Fatalf("announced %q, want the location", got)
	}
	if len(rec.Texts()) != 1 {
		t.Fatalf("more than one announcement in a tick: %v", rec.Texts())
	}
}

func TestHUDClosedWhileBlocked(t *testing.T) {
	h, w, _ := newHUDFixture(t)
	if !h.IsOpen() {
		t.Fatal("closed while controllable")
	}
	w.controllable = false
	if h.IsOpen() {
		t.Fatal("open while blocked")
	}
}

func TestHUDReopenDoesNotReplay(t *testing.T) {
	h, w, rec := newHUDFixture(t)
	h.Open()
	h.Update()

	// Battle: handler closes, stats change meanwhile.
	h.Close()
	w.hp = 5
	w.money = 900

	h.Open()
	h.Update()
	if len(rec.Texts()) != 0 {
		t.Fatalf("reopen replayed off-screen changes: %v", rec.Texts())
	}

	// Further changes announce normally.
	w.hp = 4
	h.Update()
	if got := rec.Last(); got != "HP 4 of 50" {
		t.Fatalf("post-reopen announcement = %q", got)
	}
}

func TestHUDStatusReadout(t *testing.T) {
	h, _, rec := newHUDFixture(t)
	h.Open()
	h.AnnounceStatus()
	want := "HP 40 of 50, 120 gold, Harbor Town"
	if got := rec.Last(); got != want {
		t.Fatalf("status = %q, want %q", got, want)
	}
}
