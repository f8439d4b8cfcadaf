// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"io"
	"testing"

	"github.com/ik5/regionedit/audio"
	"github.com/ik5/regionedit/internal/audiotest"
)

func TestMonoMixer_Metadata(t *testing.T) {
	t.Parallel()

	m := audio.NewMonoMixer(audiotest.NewSilentSource(22050, 6, 10))

	if m.Channels() != 1 {
		t.Errorf("Channels() = %d, want 1", m.Channels())
	}
	if m.SampleRate() != 22050 {
		t.Errorf("SampleRate() = %d, want 22050", m.SampleRate())
	}
	if err := m.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestMonoMixer_Averages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		wave     audiotest.Waveform
		want     func(frame int) float32
	}{
		{
			name:     "mono passthrough",
			channels: 1,
			wave:     audiotest.Ramp(100),
			want:     func(f int) float32 { return float32(f) / 100 },
		},
		{
			name:     "opposite stereo cancels",
			channels: 2,
			wave:     audiotest.Ramp(100),
			want:     func(int) float32 { return 0 },
		},
		{
			name:     "stereo average",
			channels: 2,
			wave: func(_ int, c int) float32 {
				if c == 0 {
					return 1
				}
				return 0.5
			},
			want: func(int) float32 { return 0.75 },
		},
		{
			name:     "four channels",
			channels: 4,
			wave: func(_ int, c int) float32 {
				return float32(c) / 4
			},
			want: func(int) float32 { return 0.375 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewMockSource(8000, tt.channels, 100, tt.wave)
			out := drain(t, audio.NewMonoMixer(src), 37)

			if len(out) != 100 {
				t.Fatalf("got %d frames, want 100", len(out))
			}
			for f, v := range out {
				if v != tt.want(f) {
					t.Fatalf("frame %d = %v, want %v", f, v, tt.want(f))
				}
			}
		})
	}
}

func TestMonoMixer_EmptyDst(t *testing.T) {
	t.Parallel()

	m := audio.NewMonoMixer(audiotest.NewSilentSource(8000, 2, 10))
	if n, err := m.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v", n, err)
	}
}

func TestMonoMixer_EOF(t *testing.T) {
	t.Parallel()

	m := audio.NewMonoMixer(audiotest.NewSilentSource(8000, 2, 10))
	buf := make([]float32, 64)

	n, err := m.ReadSamples(buf)
	if n != 10 || err != io.EOF {
		t.Errorf("first read = %d, %v; want 10, EOF", n, err)
	}
	if n, err := m.ReadSamples(buf); n != 0 || err != io.EOF {
		t.Errorf("second read = %d, %v; want 0, EOF", n, err)
	}
}

func TestMonoMixer_AfterResampler(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSineSource(44100, 2, 44100, 440)
	out := drain(t, audio.NewMonoMixer(audio.NewResampler(src, 8000)), 4096)

	if len(out) < 7900 || len(out) > 8100 {
		t.Errorf("got %d samples, want ≈8000", len(out))
	}
}
