package announce

import (
	"errors"
	"testing"

	"github.com/gameaccess/callout/internal/logger"
)

func newTestSink(t *testing.T) (*Sink, *Recorder) {
	t.Helper()
	rec := NewRecorder()
	return NewSink(rec, logger.New(logger.LevelOff, nil)), rec
}

func TestSpeakRecordsLastMessage(t *testing.T) {
	sink, rec := newTestSink(t)

	sink.Speak("Items", true)
	if got := sink.LastMessage(); got != "Items" {
		t.Fatalf("last message = %q, want %q", got, "Items")
	}
	utts := rec.Utterances()
	if len(utts) != 1 || !utts[0].Interrupt {
		t.Fatalf("expected one interrupting utterance, got %+v", utts)
	}
}

func TestSpeakEmptyIsNoOp(t *testing.T) {
	sink, rec := newTestSink(t)

	sink.Speak("", true)
	sink.SpeakQueued("")

	if len(rec.Utterances()) != 0 {
		t.Fatalf("empty text reached the backend: %+v", rec.Utterances())
	}
	if sink.LastMessage() != "" {
		t.Fatalf("empty text recorded as last message")
	}
}

func TestRepeatRoundTrip(t *testing.T) {
	sink, rec := newTestSink(t)

	sink.Speak("A", true)
	sink.RepeatLast()
	if got := rec.Texts(); len(got) != 2 || got[0] != "A" || got[1] != "A" {
		t.Fatalf("expected A spoken twice, got %v", got)
	}

	sink.Speak("B", false)
	sink.RepeatLast()
	if got := rec.Last(); got != "B" {
		t.Fatalf("repeat after A,B spoke %q, want B", got)
	}

	// Repeats always interrupt, even if the original was queued.
	utts := rec.Utterances()
	if !utts[len(utts)-1].Interrupt {
		t.Fatal("repeat did not interrupt")
	}
}

func TestRepeatWithNothingSpoken(t *testing.T) {
	sink, rec := newTestSink(t)

	sink.RepeatLast()
	if len(rec.Utterances()) != 0 {
		t.Fatalf("repeat with empty history spoke %v", rec.Texts())
	}
}

func TestBackendFailureStillRecordsLast(t *testing.T) {
	rec := NewRecorder()
	rec.Err = errors.New("device lost")
	sink := NewSink(rec, logger.New(logger.LevelOff, nil))

	sink.Speak("Status", true)
	if got := sink.LastMessage(); got != "Status" {
		t.Fatalf("last message after backend failure = %q, want Status", got)
	}

	// Backend recovers; repeat must still work.
	rec.Err = nil
	sink.RepeatLast()
	if got := rec.Last(); got != "Status" {
		t.Fatalf("repeat after recovery spoke %q, want Status", got)
	}
}

func TestNilBackendFallsBackToNoOp(t *testing.T) {
	sink := NewSink(nil, logger.New(logger.LevelOff, nil))
	sink.Speak("still records", true)
	if sink.LastMessage() != "still records" {
		t.Fatal("nil backend lost the last message")
	}
}

func TestSilence(t *testing.T) {
	sink, rec := newTestSink(t)
	sink.Speak("long line", false)
	sink.Silence()
	if rec.Stops() != 1 {
		t.Fatalf("stops = %d, want 1", rec.Stops())
	}
}
