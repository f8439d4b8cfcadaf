// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides synthetic audio for tests.
package audiotest

import (
	"io"
	"math"

	"github.com/ik5/regionedit/audio"
)

// Waveform returns the value of a sample given its frame index and channel.
type Waveform func(frame int, channel int) float32

// MockSource is a Source producing a fixed number of frames from a Waveform.
type MockSource struct {
	sampleRate int
	channels   int
	frames     int // total frames to generate
	generated  int
	waveform   Waveform
}

var _ audio.Source = (*MockSource)(nil)

func NewMockSource(sampleRate, channels, frames int, waveform Waveform) *MockSource {
	return &MockSource{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		waveform:   waveform,
	}
}

func NewSilentSource(sampleRate, channels, frames int) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(int, int) float32 { return 0 })
}

func NewSineSource(sampleRate, channels, frames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, frames, Sine(sampleRate, frequency))
}

func NewConstantSource(sampleRate, channels, frames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(int, int) float32 { return value })
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) Close() error    { return nil }

// Reset rewinds the source to its first frame.
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.frames {
		return 0, io.EOF
	}

	count := min(len(dst)/m.channels, m.frames-m.generated)
	for f := range count {
		for c := range m.channels {
			dst[f*m.channels+c] = m.waveform(m.generated+f, c)
		}
	}
	m.generated += count

	if m.generated >= m.frames {
		return count * m.channels, io.EOF
	}
	return count * m.channels, nil
}

// Sine returns a Waveform of a sine tone, identical on every channel.
func Sine(sampleRate int, frequency float64) Waveform {
	return func(frame int, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	}
}

// Ramp returns a Waveform whose value encodes its position: frame/scale on
// channel 0, negated on channel 1, and so on alternating. Useful to check
// that samples land at the expected offsets.
func Ramp(scale float32) Waveform {
	return func(frame int, channel int) float32 {
		v := float32(frame) / scale
		if channel%2 == 1 {
			return -v
		}
		return v
	}
}

// NewBuffer builds a decoded buffer directly from a Waveform. A nil
// waveform gives silence.
func NewBuffer(sampleRate, channels, frames int, waveform Waveform) *audio.Buffer {
	buf, err := audio.NewBuffer(channels, frames, sampleRate)
	if err != nil {
		panic(err)
	}
	if waveform == nil {
		return buf
	}

	for c := range channels {
		data, _ := buf.Channel(c)
		for f := range data {
			data[f] = waveform(f, c)
		}
	}
	return buf
}
