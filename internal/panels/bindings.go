package panels

import (
	"fmt"

	"github.com/gameaccess/callout/internal/announce"
	"github.com/gameaccess/callout/internal/handler"
	"github.com/gameaccess/callout/internal/host"
	"github.com/gameaccess/callout/internal/input"
	"github.com/gameaccess/callout/internal/logger"
)

// bindingsState is the panel's substate.
type bindingsState int

const (
	stateNavigating bindingsState = iota
	stateListening
	stateConfirming
)

// confirmation is the transient yes/no sub-dialog raised before a
// destructive change. Discarded as soon as it resolves.
type confirmation struct {
	action string
	prompt string
	yes    bool
}

// BindingsOption configures the bindings panel.
type BindingsOption func(*Bindings)

// WithOnSave installs a hook fired after any binding change, so the
// embedder can rewrite the persisted configuration.
func WithOnSave(fn func()) BindingsOption {
	return func(b *Bindings) {
		b.onSave = fn
	}
}

// WithCaptureContext sets the context newly captured bindings are
// stored under. Default is the global context.
func WithCaptureContext(ctx string) BindingsOption {
	return func(b *Bindings) {
		b.captureContext = ctx
	}
}

// Bindings is the key-configuration panel: a list of actions with
// their current bindings. Unlike the other panels it is driven by the
// narrator's own input layer rather than host fields — it navigates,
// starts a binding-capture session (Listening), and raises a yes/no
// confirmation before clearing a binding (Confirming).
type Bindings struct {
	name     string
	priority int
	open     host.BoolField
	actions  []string // fixed display order
	bindings *input.Map
	tracker  *input.Tracker
	sink     *announce.Sink
	log      *logger.Logger

	onSave         func()
	captureContext string

	state   bindingsState
	cursor  int
	capture *input.Capture
	confirm confirmation
}

// Compile-time interface check.
var _ handler.Handler = (*Bindings)(nil)

// NewBindings creates the bindings panel over the given action list.
// The open field is the host-side flag that shows/hides the panel.
func NewBindings(priority int, open host.BoolField, actions []string, bindings *input.Map, tracker *input.Tracker, sink *announce.Sink, log *logger.Logger, opts ...BindingsOption) *Bindings {
	b := &Bindings{
		name:           "Controls",
		priority:       priority,
		open:           open,
		actions:        actions,
		bindings:       bindings,
		tracker:        tracker,
		sink:           sink,
		log:            log.Named("controls"),
		captureContext: input.ContextGlobal,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Bindings) Name() string  { return b.name }
func (b *Bindings) Priority() int { return b.priority }

// Capturing reports whether a binding-capture session is live. While
// it is, the pressed combo belongs to the capture, so callers that
// also watch global actions should stand down for the tick.
func (b *Bindings) Capturing() bool { return b.state == stateListening }

// IsOpen probes the host-side visibility flag.
func (b *Bindings) IsOpen() bool {
	return host.BoolOr(b.open, false) && len(b.actions) > 0
}

// Open resets to the top row and swallows the press that opened the
// panel so it can't double as the first navigation input.
func (b *Bindings) Open() {
	b.state = stateNavigating
	b.cursor = 0
	b.capture = nil
	b.confirm = confirmation{}
	b.tracker.Seed()
	b.sink.Speak(announce.Join(b.name, b.rowPhrase(b.cursor)), true)
}

// Close clears all transient state, including a live capture session.
func (b *Bindings) Close() {
	b.state = stateNavigating
	b.capture = nil
	b.confirm = confirmation{}
}

// Update runs the substate machine. All navigation rides the repeat
// channel; confirm/cancel/capture are edge-only.
func (b *Bindings) Update() {
	switch b.state {
	case stateListening:
		b.updateListening()
	case stateConfirming:
		b.updateConfirming()
	default:
		b.updateNavigating()
	}
}

func (b *Bindings) updateNavigating() {
	t := b.tracker

	switch {
	case t.AnyRepeats(input.Downs...):
		b.moveCursor(1)
	case t.AnyRepeats(input.Ups...):
		b.moveCursor(-1)
	case t.AnyJustPressed(input.KeyEnter, input.PadA):
		b.startCapture()
	case t.AnyJustPressed(input.KeyBackspace, input.PadX):
		b.startConfirm()
	}
}

func (b *Bindings) moveCursor(delta int) {
	n := len(b.actions)
	b.cursor = (b.cursor + delta + n) % n
	b.sink.Speak(b.rowPhrase(b.cursor), true)
}

func (b *Bindings) startCapture() {
	action := b.actions[b.cursor]
	b.capture = input.NewCapture(b.bindings, action, b.captureContext, b.log)
	b.state = stateListening
	b.sink.Speak(fmt.Sprintf("Press a new input for %s. Escape cancels.", action), true)
}

func (b *Bindings) updateListening() {
	res := b.capture.Update(b.tracker)

	switch res.Status {
	case input.StatusListening:
		return
	case input.StatusCaptured:
		b.sink.Speak(fmt.Sprintf("%s bound to %s.", b.capture.Action(), res.Binding), true)
		b.save()
	case input.StatusConflict:
		b.sink.Speak(fmt.Sprintf("%s is already bound to %s.", res.Binding, res.Conflict), true)
	case input.StatusRejected:
		b.sink.Speak(fmt.Sprintf("%s can't be rebound.", res.Rejected), true)
	case input.StatusCancelled:
		b.sink.Speak("Cancelled.", true)
	}

	// Any terminal status ends the session the same tick.
	b.capture = nil
	b.state = stateNavigating
}

func (b *Bindings) startConfirm() {
	action := b.actions[b.cursor]
	if _, bound := b.bindings.Get(action); !bound {
		b.sink.Speak(fmt.Sprintf("%s is not bound.", action), true)
		return
	}
	b.confirm = confirmation{
		action: action,
		prompt: fmt.Sprintf("Unbind %s?", action),
		yes:    false,
	}
	b.state = stateConfirming
	b.sink.Speak(b.confirm.prompt+" No selected.", true)
}

func (b *Bindings) updateConfirming() {
	t := b.tracker

	switch {
	case t.AnyRepeats(input.Lefts...) || t.AnyRepeats(input.Rights...):
		b.confirm.yes = !b.confirm.yes
		b.sink.Speak(yesNo(b.confirm.yes), true)
	case t.AnyJustPressed(input.KeyEnter, input.PadA):
		b.resolveConfirm()
	case t.AnyJustPressed(input.KeyEscape, input.PadB):
		b.sink.Speak("Cancelled.", true)
		b.confirm = confirmation{}
		b.state = stateNavigating
	}
}

func (b *Bindings) resolveConfirm() {
	if b.confirm.yes {
		b.bindings.Clear(b.confirm.action)
		b.sink.Speak(fmt.Sprintf("%s unbound.", b.confirm.action), true)
		b.save()
	} else {
		b.sink.Speak("Kept.", true)
	}
	b.confirm = confirmation{}
	b.state = stateNavigating
}

func (b *Bindings) save() {
	if b.onSave != nil {
		b.onSave()
	}
}

// AnnounceStatus speaks whatever the panel is currently asking of the
// user: the prompt while confirming, the listening notice during a
// capture, otherwise the selected row.
func (b *Bindings) AnnounceStatus() {
	switch b.state {
	case stateListening:
		b.sink.Speak(fmt.Sprintf("Listening for a new input for %s.", b.capture.Action()), true)
	case stateConfirming:
		b.sink.Speak(announce.Join(b.confirm.prompt, yesNo(b.confirm.yes)+" selected"), true)
	default:
		b.sink.Speak(announce.Join(b.name, b.rowPhrase(b.cursor)), true)
	}
}

// rowPhrase builds "action, binding, n of m" for one row.
func (b *Bindings) rowPhrase(row int) string {
	action := b.actions[row]
	binding := "Unbound"
	if bd, ok := b.bindings.Get(action); ok {
		binding = bd.String()
	}
	return announce.Position(action+", "+binding, row, len(b.actions))
}

func yesNo(yes bool) string {
	if yes {
		return "Yes"
	}
	return "No"
}
