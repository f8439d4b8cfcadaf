// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"errors"
	"io"
	"testing"

	"github.com/ik5/regionedit/audio"
	"github.com/ik5/regionedit/internal/audiotest"
)

func TestNewBuffer(t *testing.T) {
	t.Parallel()

	buf, err := audio.NewBuffer(2, 441, 44100)
	if err != nil {
		t.Fatalf("NewBuffer() error = %v", err)
	}

	if buf.NumChannels() != 2 || buf.Len() != 441 || buf.SampleRate() != 44100 {
		t.Errorf("NewBuffer() = %d ch, %d frames, %d Hz", buf.NumChannels(), buf.Len(), buf.SampleRate())
	}
	if buf.Duration() != 0.01 {
		t.Errorf("Duration() = %v, want 0.01", buf.Duration())
	}

	for c := range 2 {
		data, err := buf.Channel(c)
		if err != nil {
			t.Fatalf("Channel(%d) error = %v", c, err)
		}
		for i, v := range data {
			if v != 0 {
				t.Fatalf("Channel(%d)[%d] = %v, want silence", c, i, v)
			}
		}
	}
}

func TestNewBuffer_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		frames   int
		rate     int
		want     error
	}{
		{"no channels", 0, 10, 8000, audio.ErrInvalidChannels},
		{"negative channels", -1, 10, 8000, audio.ErrInvalidChannels},
		{"no rate", 1, 10, 0, audio.ErrInvalidSampleRate},
		{"negative length", 1, -1, 8000, audio.ErrInvalidLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := audio.NewBuffer(tt.channels, tt.frames, tt.rate); !errors.Is(err, tt.want) {
				t.Errorf("NewBuffer() error = %v, want %v", err, tt.want)
			}
		})
	}

	if buf, err := audio.NewBuffer(1, 0, 8000); err != nil || buf.Len() != 0 {
		t.Errorf("NewBuffer(empty) = %v, %v", buf, err)
	}
}

func TestBuffer_Channel(t *testing.T) {
	t.Parallel()

	buf, _ := audio.NewBuffer(2, 4, 8000)

	for _, c := range []int{-1, 2} {
		if _, err := buf.Channel(c); !errors.Is(err, audio.ErrChannelOutOfRange) {
			t.Errorf("Channel(%d) error = %v", c, err)
		}
	}

	// The slice aliases the buffer.
	data, _ := buf.Channel(1)
	data[3] = 0.5
	again, _ := buf.Channel(1)
	if again[3] != 0.5 {
		t.Error("Channel() returned a copy")
	}
}

func TestBuffer_CopyToChannel(t *testing.T) {
	t.Parallel()

	buf, _ := audio.NewBuffer(2, 5, 8000)

	n, err := buf.CopyToChannel([]float32{1, 2, 3}, 1, 1)
	if err != nil || n != 3 {
		t.Fatalf("CopyToChannel() = %d, %v", n, err)
	}
	data, _ := buf.Channel(1)
	want := []float32{0, 1, 2, 3, 0}
	for i := range want {
		if data[i] != want[i] {
			t.Errorf("channel 1 = %v, want %v", data, want)
			break
		}
	}

	// Overflowing samples are dropped.
	if n, _ := buf.CopyToChannel([]float32{9, 9, 9}, 0, 3); n != 2 {
		t.Errorf("CopyToChannel(overflow) = %d, want 2", n)
	}
	if n, err := buf.CopyToChannel([]float32{9}, 0, 5); err != nil || n != 0 {
		t.Errorf("CopyToChannel(at end) = %d, %v", n, err)
	}

	if _, err := buf.CopyToChannel(nil, 2, 0); !errors.Is(err, audio.ErrChannelOutOfRange) {
		t.Errorf("CopyToChannel(bad channel) error = %v", err)
	}
	for _, off := range []int{-1, 6} {
		if _, err := buf.CopyToChannel(nil, 0, off); !errors.Is(err, audio.ErrOffsetOutOfRange) {
			t.Errorf("CopyToChannel(offset %d) error = %v", off, err)
		}
	}
}

func TestReadAll(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(8000, 3, 10000, audiotest.Ramp(10000))

	buf, err := audio.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if buf.NumChannels() != 3 || buf.Len() != 10000 || buf.SampleRate() != 8000 {
		t.Fatalf("ReadAll() = %d ch, %d frames, %d Hz", buf.NumChannels(), buf.Len(), buf.SampleRate())
	}

	wave := audiotest.Ramp(10000)
	for c := range 3 {
		data, _ := buf.Channel(c)
		for _, f := range []int{0, 1, 4095, 4096, 9999} {
			if data[f] != wave(f, c) {
				t.Errorf("channel %d frame %d = %v, want %v", c, f, data[f], wave(f, c))
			}
		}
	}
}

func TestBuffer_SourceRoundTrip(t *testing.T) {
	t.Parallel()

	orig := audiotest.NewBuffer(16000, 2, 1234, audiotest.Sine(16000, 440))

	// Odd chunk sizes exercise partial reads.
	src := orig.Source()
	dst := make([]float32, 2*100)
	total := 0
	for {
		n, err := src.ReadSamples(dst)
		total += n
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
	if total != 2*1234 {
		t.Errorf("read %d samples, want %d", total, 2*1234)
	}

	copied, err := audio.ReadAll(orig.Source())
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	for c := range 2 {
		a, _ := orig.Channel(c)
		b, _ := copied.Channel(c)
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("channel %d sample %d = %v, want %v", c, i, b[i], a[i])
			}
		}
	}
}

func TestBufferSource_InvalidDst(t *testing.T) {
	t.Parallel()

	buf, _ := audio.NewBuffer(2, 10, 8000)
	if _, err := buf.Source().ReadSamples(make([]float32, 3)); !errors.Is(err, audio.ErrInvalidDstSize) {
		t.Errorf("ReadSamples(odd dst) error = %v", err)
	}

	empty, _ := audio.NewBuffer(1, 0, 8000)
	if n, err := empty.Source().ReadSamples(make([]float32, 4)); n != 0 || err != io.EOF {
		t.Errorf("ReadSamples(empty) = %d, %v", n, err)
	}
}

// stuckSource never makes progress.
type stuckSource struct{}

func (stuckSource) SampleRate() int                    { return 8000 }
func (stuckSource) Channels() int                      { return 1 }
func (stuckSource) Close() error                       { return nil }
func (stuckSource) ReadSamples([]float32) (int, error) { return 0, nil }

// failingSource fails after the first read.
type failingSource struct{ reads int }

func (*failingSource) SampleRate() int { return 8000 }
func (*failingSource) Channels() int   { return 1 }
func (*failingSource) Close() error    { return nil }

func (s *failingSource) ReadSamples(dst []float32) (int, error) {
	s.reads++
	if s.reads > 1 {
		return 0, errors.New("device unplugged")
	}
	return len(dst), nil
}

func TestReadAll_Errors(t *testing.T) {
	t.Parallel()

	if _, err := audio.ReadAll(stuckSource{}); !errors.Is(err, io.ErrNoProgress) {
		t.Errorf("ReadAll(stuck) error = %v, want io.ErrNoProgress", err)
	}
	if _, err := audio.ReadAll(&failingSource{}); err == nil {
		t.Error("ReadAll(failing) succeeded")
	}
	if _, err := audio.ReadAll(audiotest.NewSilentSource(8000, 0, 10)); !errors.Is(err, audio.ErrInvalidChannels) {
		t.Errorf("ReadAll(0 channels) error = %v", err)
	}
	if _, err := audio.ReadAll(audiotest.NewSilentSource(0, 1, 10)); !errors.Is(err, audio.ErrInvalidSampleRate) {
		t.Errorf("ReadAll(0 Hz) error = %v", err)
	}
}
