// Package audio plays short positional earcons — the non-speech half
// of the narration: list-wrap ticks, error buzzes, directional pings.
// Tones are synthesized locally and panned across the stereo field;
// anything fancier is the spatial-cue service's problem, not ours.
package audio

import (
	"bytes"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/gameaccess/callout/internal/logger"
)

// Audio parameters for the oto context.
const (
	sampleRate   = 24000
	channelCount = 2
)

// Tone describes one earcon. Pan runs -1 (hard left) to +1 (hard
// right); 0 is centered.
type Tone struct {
	Freq     float64
	Pan      float64
	Duration time.Duration
}

// Preset earcons.
var (
	// WrapTone marks the cursor wrapping between list ends.
	WrapTone = Tone{Freq: 880, Pan: 0, Duration: 60 * time.Millisecond}
	// ErrorTone marks a rejected input.
	ErrorTone = Tone{Freq: 220, Pan: 0, Duration: 120 * time.Millisecond}
)

// Cues plays earcons through the system audio device. Playback is
// fire-and-forget: the engine tick never waits on audio.
type Cues struct {
	ctx *oto.Context
	log *logger.Logger

	mu     sync.Mutex
	active *oto.Player
}

// NewCues initializes the audio context. Returns an error when the
// audio device is unavailable — callers treat that as "cues off",
// never as fatal.
func NewCues(log *logger.Logger) (*Cues, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channelCount,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-readyChan

	log.Debug("cue player initialized (rate=%d)", sampleRate)
	return &Cues{ctx: ctx, log: log}, nil
}

// Play starts a tone and returns immediately. A nil receiver is a
// no-op so disabled cues need no call-site checks.
func (c *Cues) Play(t Tone) {
	if c == nil {
		return
	}

	pcm := render(t, sampleRate)
	player := c.ctx.NewPlayer(bytes.NewReader(pcm))

	c.mu.Lock()
	if c.active != nil {
		c.active.Pause()
	}
	c.active = player
	c.mu.Unlock()

	player.Play()

	// Reap the player once it drains.
	go func() {
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()

		c.mu.Lock()
		if c.active == player {
			c.active = nil
		}
		c.mu.Unlock()
	}()
}

// Stop cuts off the current cue, if any. Best effort.
func (c *Cues) Stop() {
	if c == nil {
		return
	}
	c.mu.Lock()
	active := c.active
	c.mu.Unlock()

	if active != nil {
		active.Pause()
	}
}

// render synthesizes a tone as 16-bit interleaved stereo PCM: a sine
// at the given frequency with constant-power panning and a short
// linear envelope so starts and stops don't click.
func render(t Tone, rate int) []byte {
	samples := int(float64(rate) * t.Duration.Seconds())
	if samples <= 0 {
		return nil
	}

	// Constant-power pan: left/right gains trace a quarter circle.
	angle := (t.Pan + 1) * math.Pi / 4
	leftGain := math.Cos(angle)
	rightGain := math.Sin(angle)

	// Envelope ramp: 5% of the tone on each end, at least one sample.
	ramp := samples / 20
	if ramp < 1 {
		ramp = 1
	}

	const amplitude = 0.4 * math.MaxInt16

	out := make([]byte, samples*channelCount*2)
	for i := 0; i < samples; i++ {
		env := 1.0
		if i < ramp {
			env = float64(i) / float64(ramp)
		} else if left := samples - 1 - i; left < ramp {
			env = float64(left) / float64(ramp)
		}

		s := math.Sin(2 * math.Pi * t.Freq * float64(i) / float64(rate))
		v := amplitude * env * s

		writeSample(out, i*2, v*leftGain)
		writeSample(out, i*2+1, v*rightGain)
	}
	return out
}

func writeSample(out []byte, idx int, v float64) {
	n := int16(v)
	out[idx*2] = byte(n)
	out[idx*2+1] = byte(n >> 8)
}
