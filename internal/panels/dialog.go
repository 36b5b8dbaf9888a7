package panels

import (
	"github.com/gameaccess/callout/internal/announce"
	"github.com/gameaccess/callout/internal/handler"
	"github.com/gameaccess/callout/internal/host"
	"github.com/gameaccess/callout/internal/logger"
)

// DialogFields is the host surface of the dialog box.
type DialogFields struct {
	// Exists reports whether the dialog box object is alive.
	Exists host.BoolField
	// Active reports whether a conversation is in progress.
	Active host.BoolField
	// Voiced reports whether the current line has voice acting; voiced
	// lines are not spoken again by the narrator.
	Voiced host.BoolField
	// Caption polls the on-screen caption for lines that arrive
	// without going through the intercept hook (auto-advance text).
	Caption host.StringField
}

// Dialog narrates conversation text. Lines normally arrive through
// OnTextIntercepted — a push hook fired the moment the host finalizes
// a line, before any animated reveal — and the caption field is
// polled as a fallback. Each distinct line is announced once.
type Dialog struct {
	name     string
	priority int
	fields   DialogFields
	sink     *announce.Sink
	log      *logger.Logger

	// pending is the intercepted line waiting for the next tick.
	// Written by OnTextIntercepted, consumed by Update. The engine is
	// single-threaded per tick, so no locking: the hook fires inside
	// the host's frame, never concurrently with Update.
	pending     string
	hasPending  bool
	lastLine    handler.Cell[string]
	lastCaption handler.Cell[string]
}

// Compile-time interface check.
var _ handler.Handler = (*Dialog)(nil)

// NewDialog creates the dialog handler.
func NewDialog(priority int, fields DialogFields, sink *announce.Sink, log *logger.Logger) *Dialog {
	return &Dialog{
		name:     "Dialog",
		priority: priority,
		fields:   fields,
		sink:     sink,
		log:      log.Named("dialog"),
	}
}

func (d *Dialog) Name() string  { return d.name }
func (d *Dialog) Priority() int { return d.priority }

// IsOpen probes the dialog box.
func (d *Dialog) IsOpen() bool {
	return host.BoolOr(d.fields.Exists, false) && host.BoolOr(d.fields.Active, false)
}

// Open resets line tracking. Dialogs announce nothing until a line
// actually arrives.
func (d *Dialog) Open() {
	d.lastLine.Reset()
	d.lastCaption.Reset()
	// A line can be intercepted on the very tick the box opens; keep it.
}

// Close drops any un-spoken pending line along with the snapshot.
func (d *Dialog) Close() {
	d.pending = ""
	d.hasPending = false
	d.lastLine.Reset()
	d.lastCaption.Reset()
}

// OnTextIntercepted receives a finalized line from the host's text
// hook: the full text as it will eventually display, with the
// speaker's name when the host knows it.
func (d *Dialog) OnTextIntercepted(speaker, text string) {
	line := composeLine(speaker, text)
	if line == "" {
		return
	}
	d.pending = line
	d.hasPending = true
	d.log.Debug("intercepted: %s", line)
}

// Update speaks at most one new line per tick: an intercepted line
// first, else a changed caption.
func (d *Dialog) Update() {
	if d.hasPending {
		d.hasPending = false
		line := d.pending

		// The same line can be intercepted again when the host
		// re-renders the box. Announce each distinct line once.
		if last, ok := d.lastLine.Value(); ok && last == line {
			return
		}
		d.lastLine.Set(line)
		d.lastCaption.Set(host.StringOr(d.fields.Caption, ""))

		if host.BoolOr(d.fields.Voiced, false) {
			d.log.Debug("voiced line, not narrating: %s", line)
			return
		}
		d.sink.Speak(line, true)
		return
	}

	caption := announce.StripMarkup(host.StringOr(d.fields.Caption, ""))
	if caption != "" && d.captionIsNew(caption) {
		d.lastCaption.Set(caption)
		d.lastLine.Set(caption)
		d.sink.Speak(caption, true)
		return
	}
	d.lastCaption.Set(caption)
}

// captionIsNew reports whether the polled caption is a line we have
// not yet announced through either path.
func (d *Dialog) captionIsNew(caption string) bool {
	if last, ok := d.lastLine.Value(); ok && last == caption {
		return false
	}
	if last, ok := d.lastCaption.Value(); ok && last == caption {
		return false
	}
	return true
}

// AnnounceStatus re-speaks the current line without touching the
// snapshot.
func (d *Dialog) AnnounceStatus() {
	if line, ok := d.lastLine.Value(); ok && line != "" {
		d.sink.Speak(line, true)
		return
	}
	d.sink.Speak(d.name, true)
}

// composeLine joins speaker and text into "Speaker: text", stripping
// markup from both.
func composeLine(speaker, text string) string {
	text = announce.StripMarkup(text)
	if text == "" {
		return ""
	}
	speaker = announce.StripMarkup(speaker)
	if speaker == "" || announce.IsPlaceholder(speaker) {
		return text
	}
	return speaker + ": " + text
}
