// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize    = errors.New("dst size must be multiple of channels")
	ErrUnknownFormat     = errors.New("no decoder registered for format")
	ErrInvalidChannels   = errors.New("channel count must be positive")
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
	ErrInvalidLength     = errors.New("buffer length must not be negative")
	ErrChannelOutOfRange = errors.New("channel index out of range")
	ErrOffsetOutOfRange  = errors.New("offset out of range")
)
