// SPDX-License-Identifier: EPL-2.0

//go:build !((linux && cgo) || windows || darwin)

package beepengine

import (
	"github.com/ik5/regionedit/audio"
	"github.com/ik5/regionedit/engine"
)

// AudioAvailable reports whether this build can drive the speaker.
// Speaker output needs cgo on this platform.
const AudioAvailable = false

// Engine is a stub: every operation fails with ErrAudioUnavailable.
type Engine struct{}

var _ engine.Engine = (*Engine)(nil)

// New always returns ErrAudioUnavailable.
func New(...Option) (*Engine, error) {
	return nil, ErrAudioUnavailable
}

func (*Engine) Load(*audio.Buffer) error         { return ErrAudioUnavailable }
func (*Engine) Buffer() *audio.Buffer            { return nil }
func (*Engine) Duration() float64                { return 0 }
func (*Engine) Play() error                      { return ErrAudioUnavailable }
func (*Engine) Pause() error                     { return ErrAudioUnavailable }
func (*Engine) Seek(float64) error               { return ErrAudioUnavailable }
func (*Engine) Position() float64                { return 0 }
func (*Engine) IsPlaying() bool                  { return false }
func (*Engine) Subscribe(engine.Listener) func() { return func() {} }
func (*Engine) Close() error                     { return nil }
