// SPDX-License-Identifier: EPL-2.0

// Package waveform turns decoded audio into something drawable: min/max
// peaks per column for terminals, and PNG or JPEG plots through gonum.
package waveform

import (
	"errors"
	"fmt"

	"github.com/ik5/regionedit/audio"
	"github.com/ik5/regionedit/trim"
)

var (
	ErrNoBuffer     = errors.New("no audio buffer")
	ErrInvalidWidth = errors.New("width must be positive")
	ErrInvalidRange = errors.New("view range is empty")
)

// Peak is the sample range of one display column of the mono mix.
type Peak struct {
	Min, Max float32
}

// Mono mixes buf down to one channel.
func Mono(buf *audio.Buffer) ([]float32, error) {
	if buf == nil {
		return nil, ErrNoBuffer
	}
	if buf.NumChannels() == 1 {
		return buf.Channel(0)
	}

	mono, err := audio.ReadAll(audio.NewMonoMixer(buf.Source()))
	if err != nil {
		return nil, fmt.Errorf("mixing to mono: %w", err)
	}
	return mono.Channel(0)
}

// Peaks splits [start,end) seconds of buf into width columns and returns
// the min and max of each. end <= 0 means the end of the buffer. Columns
// past the last sample are zero.
func Peaks(buf *audio.Buffer, start, end float64, width int) ([]Peak, error) {
	if width <= 0 {
		return nil, ErrInvalidWidth
	}

	samples, err := Mono(buf)
	if err != nil {
		return nil, err
	}
	return peaksOf(samples, buf.SampleRate(), start, end, width)
}

func peaksOf(samples []float32, rate int, start, end float64, width int) ([]Peak, error) {
	total := len(samples)
	if end <= 0 {
		end = float64(total) / float64(rate)
	}

	first, length := trim.Bounds(start, end, rate, total)
	if length == 0 {
		return nil, ErrInvalidRange
	}
	view := samples[first : first+length]

	peaks := make([]Peak, width)
	perColumn := float64(length) / float64(width)

	for col := range peaks {
		lo := int(float64(col) * perColumn)
		hi := int(float64(col+1) * perColumn)
		if hi <= lo {
			hi = lo + 1
		}
		if lo >= length {
			break
		}
		hi = min(hi, length)

		p := Peak{Min: view[lo], Max: view[lo]}
		for _, v := range view[lo+1 : hi] {
			p.Min = min(p.Min, v)
			p.Max = max(p.Max, v)
		}
		peaks[col] = p
	}

	return peaks, nil
}
