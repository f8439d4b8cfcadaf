// SPDX-License-Identifier: EPL-2.0

package beepengine

import (
	"errors"
	"time"

	"go.uber.org/zap"
)

var ErrAudioUnavailable = errors.New("audio output not available in this build")

const (
	DefaultSampleRate = 44100
	DefaultBuffer     = 100 * time.Millisecond
	// resampleQuality is passed to beep.Resample.
	resampleQuality = 4
)

type options struct {
	sampleRate int
	buffer     time.Duration
	logger     *zap.Logger
}

type Option func(*options)

// WithSampleRate sets the speaker rate. Buffers at other rates are
// resampled while playing.
func WithSampleRate(rate int) Option {
	return func(o *options) {
		if rate > 0 {
			o.sampleRate = rate
		}
	}
}

// WithBuffer sets the speaker buffer length.
func WithBuffer(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.buffer = d
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		sampleRate: DefaultSampleRate,
		buffer:     DefaultBuffer,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
