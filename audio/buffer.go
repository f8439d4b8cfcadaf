// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// Buffer holds fully decoded PCM audio in planar layout: one float32 slice
// per channel, samples in [-1,1]. All channels have the same length.
type Buffer struct {
	sampleRate int
	channels   [][]float32
}

// NewBuffer allocates a silent buffer of frames samples per channel.
func NewBuffer(channels, frames, sampleRate int) (*Buffer, error) {
	if channels <= 0 {
		return nil, ErrInvalidChannels
	}
	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if frames < 0 {
		return nil, ErrInvalidLength
	}

	data := make([][]float32, channels)
	for c := range data {
		data[c] = make([]float32, frames)
	}

	return &Buffer{sampleRate: sampleRate, channels: data}, nil
}

func (b *Buffer) SampleRate() int  { return b.sampleRate }
func (b *Buffer) NumChannels() int { return len(b.channels) }

// Len returns the number of frames (samples per channel).
func (b *Buffer) Len() int {
	if len(b.channels) == 0 {
		return 0
	}
	return len(b.channels[0])
}

// Duration returns the length of the buffer in seconds.
func (b *Buffer) Duration() float64 {
	return float64(b.Len()) / float64(b.sampleRate)
}

// Channel returns the samples of channel i. The slice aliases the buffer.
func (b *Buffer) Channel(i int) ([]float32, error) {
	if i < 0 || i >= len(b.channels) {
		return nil, ErrChannelOutOfRange
	}
	return b.channels[i], nil
}

// CopyToChannel copies src into channel ch starting at frame offset.
// Samples that do not fit are dropped; the number copied is returned.
func (b *Buffer) CopyToChannel(src []float32, ch, offset int) (int, error) {
	if ch < 0 || ch >= len(b.channels) {
		return 0, ErrChannelOutOfRange
	}
	if offset < 0 || offset > b.Len() {
		return 0, ErrOffsetOutOfRange
	}

	return copy(b.channels[ch][offset:], src), nil
}

// Source returns a Source that streams the buffer interleaved from the
// first frame. Each call returns an independent reader.
func (b *Buffer) Source() Source {
	return &bufferSource{buf: b}
}

// maxEmptyReads bounds consecutive (0, nil) reads before ReadAll gives up.
const maxEmptyReads = 100

// ReadAll drains src into a new Buffer, de-interleaving as it goes.
// src is not closed.
func ReadAll(src Source) (*Buffer, error) {
	channels := src.Channels()
	if channels <= 0 {
		return nil, ErrInvalidChannels
	}
	if src.SampleRate() <= 0 {
		return nil, ErrInvalidSampleRate
	}

	data := make([][]float32, channels)
	chunk := make([]float32, 4096*channels)
	empty := 0

	for {
		n, err := src.ReadSamples(chunk)
		frames := n / channels
		for f := range frames {
			base := f * channels
			for c := range channels {
				data[c] = append(data[c], chunk[base+c])
			}
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading samples: %w", err)
		}

		if n == 0 {
			empty++
			if empty >= maxEmptyReads {
				return nil, io.ErrNoProgress
			}
			continue
		}
		empty = 0
	}

	return &Buffer{sampleRate: src.SampleRate(), channels: data}, nil
}

type bufferSource struct {
	buf *Buffer
	pos int // next frame to read
}

func (s *bufferSource) SampleRate() int { return s.buf.sampleRate }
func (s *bufferSource) Channels() int   { return len(s.buf.channels) }
func (s *bufferSource) Close() error    { return nil }

func (s *bufferSource) ReadSamples(dst []float32) (int, error) {
	channels := len(s.buf.channels)
	if len(dst)%channels != 0 {
		return 0, ErrInvalidDstSize
	}

	remaining := s.buf.Len() - s.pos
	if remaining <= 0 {
		return 0, io.EOF
	}

	frames := min(len(dst)/channels, remaining)
	for f := range frames {
		for c := range channels {
			dst[f*channels+c] = s.buf.channels[c][s.pos+f]
		}
	}
	s.pos += frames

	if s.pos >= s.buf.Len() {
		return frames * channels, io.EOF
	}
	return frames * channels, nil
}
