package announce

import "sync"

// Compile-time interface check.
var _ Backend = (*Recorder)(nil)

// Utterance is one recorded Speak call.
type Utterance struct {
	Text      string
	Interrupt bool
}

// Recorder is a speech backend that captures every utterance instead
// of voicing it. It backs the engine's transcript view and the test
// suites of every package that announces.
type Recorder struct {
	mu    sync.Mutex
	log   []Utterance
	stops int
	// Err, when set, is returned from every Speak call. Lets tests
	// exercise the fail-and-continue path.
	Err error
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Speak records the utterance.
func (r *Recorder) Speak(text string, interrupt bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.log = append(r.log, Utterance{Text: text, Interrupt: interrupt})
	return nil
}

// Stop records the interruption.
func (r *Recorder) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stops++
	return nil
}

// Utterances returns a copy of everything spoken so far.
func (r *Recorder) Utterances() []Utterance {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Utterance, len(r.log))
	copy(out, r.log)
	return out
}

// Texts returns just the spoken strings, in order.
func (r *Recorder) Texts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.log))
	for i, u := range r.log {
		out[i] = u.Text
	}
	return out
}

// Last returns the most recent utterance text, or "" when empty.
func (r *Recorder) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.log) == 0 {
		return ""
	}
	return r.log[len(r.log)-1].Text
}

// Stops returns how many times Stop was called.
func (r *Recorder) Stops() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stops
}

// Clear drops all recorded utterances.
func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.log = nil
	r.stops = 0
}
