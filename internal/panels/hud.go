package panels

import (
	"fmt"

	"github.com/gameaccess/callout/internal/announce"
	"github.com/gameaccess/callout/internal/handler"
	"github.com/gameaccess/callout/internal/host"
	"github.com/gameaccess/callout/internal/logger"
)

// HUDFields is the host surface of the field HUD: the always-on
// overlay stats the player carries around the world.
type HUDFields struct {
	HP       host.IntField
	MaxHP    host.IntField
	Money    host.IntField
	Location host.StringField
}

// FieldHUD is the background handler: lowest urgency, open whenever
// the player is controllable, narrating stat changes as they happen.
// Location changes outrank HP changes, which outrank money. Stat
// announcements queue rather than interrupt — they are ambient, and
// cutting off a menu or dialog for a coin pickup would be hostile.
type FieldHUD struct {
	priority     int
	fields       HUDFields
	controllable func() bool
	sink         *announce.Sink
	log          *logger.Logger

	lastLocation handler.Cell[string]
	lastHP       handler.Cell[int]
	lastMoney    handler.Cell[int]
}

// Compile-time interface check.
var _ handler.Handler = (*FieldHUD)(nil)

// NewFieldHUD creates the HUD handler. controllable is normally the
// facade's IsPlayerControllable.
func NewFieldHUD(priority int, fields HUDFields, controllable func() bool, sink *announce.Sink, log *logger.Logger) *FieldHUD {
	return &FieldHUD{
		priority:     priority,
		fields:       fields,
		controllable: controllable,
		sink:         sink,
		log:          log.Named("hud"),
	}
}

func (h *FieldHUD) Name() string  { return "Field HUD" }
func (h *FieldHUD) Priority() int { return h.priority }

// IsOpen gates on player control: while a battle, cutscene, or pause
// is blocking, the HUD handler goes quiet entirely.
func (h *FieldHUD) IsOpen() bool {
	return h.controllable != nil && h.controllable()
}

// Open seeds the snapshot silently. Coming back from a battle or a
// menu should not replay every stat that changed while we were away.
func (h *FieldHUD) Open() {
	h.lastLocation.Set(host.StringOr(h.fields.Location, ""))
	h.lastHP.Set(host.IntOr(h.fields.HP, 0))
	h.lastMoney.Set(host.IntOr(h.fields.Money, 0))
}

// Close keeps the snapshot — see Open. Nothing to drop.
func (h *FieldHUD) Close() {}

// Update announces at most one stat change per tick, location first.
func (h *FieldHUD) Update() {
	location := announce.StripMarkup(host.StringOr(h.fields.Location, ""))
	hp := host.IntOr(h.fields.HP, 0)
	money := host.IntOr(h.fields.Money, 0)

	switch {
	case location != "" && h.lastLocation.Changed(location):
		h.sink.Speak(location, false)
	case h.lastHP.Changed(hp):
		h.sink.SpeakQueued(h.hpPhrase(hp))
	case h.lastMoney.Changed(money):
		h.sink.SpeakQueued(h.moneyPhrase(money))
	}

	h.lastLocation.Set(location)
	h.lastHP.Set(hp)
	h.lastMoney.Set(money)
}

// AnnounceStatus is the full stat readout.
func (h *FieldHUD) AnnounceStatus() {
	hp := host.IntOr(h.fields.HP, 0)
	money := host.IntOr(h.fields.Money, 0)
	location := announce.StripMarkup(host.StringOr(h.fields.Location, ""))

	h.sink.Speak(announce.Join(h.hpPhrase(hp), h.moneyPhrase(money), location), true)
}

func (h *FieldHUD) hpPhrase(hp int) string {
	if max := host.IntOr(h.fields.MaxHP, 0); max > 0 {
		return fmt.Sprintf("HP %d of %d", hp, max)
	}
	return fmt.Sprintf("HP %d", hp)
}

func (h *FieldHUD) moneyPhrase(money int) string {
	return fmt.Sprintf("%d gold", money)
}
