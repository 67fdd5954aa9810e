// Package sonify keys typed text as Morse audio and writes it as WAV, so a
// grown tree can be exported together with the sound of the text that grew
// it.
package sonify

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/wav"
)

// ErrNothingToKey is returned when text has no encodable characters.
var ErrNothingToKey = errors.New("sonify: no encodable characters")

// Options controls keying speed and tone.
type Options struct {
	WPM        int     `yaml:"wpm"`
	Frequency  float64 `yaml:"frequency"`
	SampleRate int     `yaml:"sample_rate"`
	// Volume is a linear gain in [0, 1].
	Volume float64 `yaml:"volume"`
	// Ramp is the attack and release applied to each tone to avoid clicks.
	Ramp time.Duration `yaml:"ramp"`
}

// DefaultOptions keys at 20 WPM with a 600 Hz tone.
func DefaultOptions() Options {
	return Options{
		WPM:        20,
		Frequency:  600,
		SampleRate: 44100,
		Volume:     0.5,
		Ramp:       5 * time.Millisecond,
	}
}

func (o Options) validate() error {
	switch {
	case o.WPM <= 0:
		return fmt.Errorf("sonify: wpm must be positive, got %d", o.WPM)
	case o.SampleRate <= 0:
		return fmt.Errorf("sonify: sample rate must be positive, got %d", o.SampleRate)
	case o.Frequency <= 0 || o.Frequency >= float64(o.SampleRate)/2:
		return fmt.Errorf("sonify: frequency %.1f outside (0, %d)", o.Frequency, o.SampleRate/2)
	}
	return nil
}

// Streamer returns the keyed audio for text. The stream ends after the last
// element.
func Streamer(text string, opt Options) (beep.Streamer, error) {
	if err := opt.validate(); err != nil {
		return nil, err
	}
	elems := Timeline(text)
	if len(elems) == 0 {
		return nil, ErrNothingToKey
	}

	rate := beep.SampleRate(opt.SampleRate)
	unit := Unit(opt.WPM)
	parts := make([]beep.Streamer, 0, len(elems))
	for _, e := range elems {
		d := time.Duration(e.Units) * unit
		if !e.Tone {
			parts = append(parts, beep.Silence(rate.N(d)))
			continue
		}
		sine, err := generators.SineTone(rate, opt.Frequency)
		if err != nil {
			return nil, fmt.Errorf("sonify: tone: %w", err)
		}
		tone := newEnvelope(beep.Take(rate.N(d), sine), d, opt.Ramp, rate)
		parts = append(parts, newVolume(tone, opt.Volume))
	}
	return beep.Seq(parts...), nil
}

// Encode writes text as a 16-bit mono WAV stream to w.
func Encode(w io.WriteSeeker, text string, opt Options) error {
	s, err := Streamer(text, opt)
	if err != nil {
		return err
	}
	format := beep.Format{
		SampleRate:  beep.SampleRate(opt.SampleRate),
		NumChannels: 1,
		Precision:   2,
	}
	if err := wav.Encode(w, s, format); err != nil {
		return fmt.Errorf("sonify: encode wav: %w", err)
	}
	return nil
}

// EncodeFile writes text as a WAV file at path.
func EncodeFile(path, text string, opt Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sonify: create %s: %w", path, err)
	}
	if err := Encode(f, text, opt); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

func newEnvelope(s beep.Streamer, duration, ramp time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	r := rate.N(ramp)
	if 2*r > total {
		r = total / 2
	}
	return &envelope{
		streamer:       s,
		attackSamples:  r,
		releaseSamples: r,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, false
		}
		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if remaining := e.totalSamples - e.position; remaining < e.releaseSamples {
			vol = float64(remaining) / float64(e.releaseSamples)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s by a linear gain. Log2(0) is -Inf, so zero is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
