// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/regionedit/utils"
)

// Resampler streams src at a different sample rate using Catmull-Rom
// interpolation over a four frame window. Channel count is preserved.
// When downsampling, a one-pole low-pass filter is applied to the input.
type Resampler struct {
	src      Source
	dstRate  int
	step     float64 // source frames advanced per output frame
	channels int

	// window holds frames t-1, t0, t+1, t+2; output lies between t0 and t+1.
	// real marks slots holding actual source frames rather than edge padding.
	window  [4][]float32
	real    [4]bool
	started bool
	frac    float64

	// Block of source samples not yet pushed into the window.
	pending []float32
	next    int
	srcEOF  bool

	lowPass bool
	state   []float32
	warm    bool
}

// lowPassAlpha is the coefficient of the one-pole filter used when
// downsampling.
const lowPassAlpha float32 = 0.5

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	step := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		step:     step,
		channels: channels,
		pending:  make([]float32, 0, 4096*channels),
		lowPass:  step > 1.0,
		state:    make([]float32, channels),
	}
	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// readFrame returns the next (filtered) source frame, or false once the
// source is exhausted.
func (r *Resampler) readFrame() ([]float32, bool, error) {
	for r.next >= len(r.pending) {
		if r.srcEOF {
			return nil, false, nil
		}

		buf := r.pending[:cap(r.pending)]
		n, err := r.src.ReadSamples(buf)
		r.pending = buf[:n-n%r.channels]
		r.next = 0

		if err == io.EOF {
			r.srcEOF = true
		} else if err != nil {
			return nil, false, fmt.Errorf("%w", err)
		}
	}

	frame := r.pending[r.next : r.next+r.channels]
	r.next += r.channels

	if !r.lowPass {
		return frame, true, nil
	}

	if !r.warm {
		// Seed the filter with the first frame to avoid a fade-in.
		copy(r.state, frame)
		r.warm = true
	}
	for c, v := range frame {
		r.state[c] = lowPassAlpha*v + (1-lowPassAlpha)*r.state[c]
	}
	return r.state, true, nil
}

// fill loads slot i with the next source frame, or repeats slot i-1.
func (r *Resampler) fill(i int) error {
	frame, ok, err := r.readFrame()
	if err != nil {
		return err
	}
	if ok {
		copy(r.window[i], frame)
	} else {
		copy(r.window[i], r.window[i-1])
	}
	r.real[i] = ok
	return nil
}

func (r *Resampler) start() (bool, error) {
	frame, ok, err := r.readFrame()
	if err != nil || !ok {
		return false, err
	}

	copy(r.window[0], frame)
	copy(r.window[1], frame)
	r.real[1] = true

	for i := 2; i < 4; i++ {
		if err := r.fill(i); err != nil {
			return false, err
		}
	}

	r.started = true
	return true, nil
}

func (r *Resampler) shift() error {
	oldest := r.window[0]
	copy(r.window[:3], r.window[1:])
	copy(r.real[:3], r.real[1:])
	r.window[3] = oldest

	return r.fill(3)
}

// ReadSamples produces interleaved samples at the destination rate.
// dst length must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.started {
		ok, err := r.start()
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, io.EOF
		}
	}

	frames := len(dst) / r.channels
	written := 0

	for written < frames {
		for r.frac >= 1.0 {
			if err := r.shift(); err != nil {
				return written * r.channels, err
			}
			r.frac -= 1.0
		}

		if !r.real[1] {
			return written * r.channels, io.EOF
		}

		t := float32(r.frac)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			out[c] = utils.CubicInterpolate(r.window[0][c], r.window[1][c], r.window[2][c], r.window[3][c], t)
		}

		written++
		r.frac += r.step
	}

	return written * r.channels, nil
}
