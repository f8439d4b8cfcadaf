// SPDX-License-Identifier: EPL-2.0

// Package trim cuts a decoded buffer down to a region.
package trim

import (
	"errors"
	"fmt"
	"math"

	"github.com/ik5/regionedit/audio"
	"github.com/ik5/regionedit/region"
)

var (
	ErrNoBuffer  = errors.New("no audio buffer to trim")
	ErrEmptyTrim = errors.New("region covers no samples")
)

// Bounds returns the first frame and frame count covered by [start,end)
// at the given sample rate, clamped to a buffer of total frames.
func Bounds(start, end float64, sampleRate, total int) (first, length int) {
	rate := float64(sampleRate)

	first = int(math.Floor(start * rate))
	length = int(math.Floor((end - start) * rate))

	first = max(first, 0)
	if first > total {
		first = total
	}
	if length < 0 {
		length = 0
	}
	if first+length > total {
		length = total - first
	}
	return first, length
}

// Trim returns a new buffer holding only the samples of src inside r.
// Channel count and sample rate are kept; src is not modified.
func Trim(src *audio.Buffer, r region.Region) (*audio.Buffer, error) {
	if src == nil {
		return nil, ErrNoBuffer
	}

	first, length := Bounds(r.Start, r.End, src.SampleRate(), src.Len())
	if length == 0 {
		return nil, ErrEmptyTrim
	}

	out, err := audio.NewBuffer(src.NumChannels(), length, src.SampleRate())
	if err != nil {
		return nil, fmt.Errorf("allocating trimmed buffer: %w", err)
	}

	for c := range src.NumChannels() {
		samples, err := src.Channel(c)
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", c, err)
		}
		if _, err := out.CopyToChannel(samples[first:first+length], c, 0); err != nil {
			return nil, fmt.Errorf("channel %d: %w", c, err)
		}
	}

	return out, nil
}
