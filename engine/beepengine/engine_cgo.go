// SPDX-License-Identifier: EPL-2.0

//go:build (linux && cgo) || windows || darwin

package beepengine

import (
	"fmt"
	"sync"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
	"go.uber.org/zap"

	"github.com/ik5/regionedit/audio"
	"github.com/ik5/regionedit/engine"
)

// AudioAvailable reports whether this build can drive the speaker.
const AudioAvailable = true

// The speaker is process wide and can only be initialised once.
var (
	speakerMtx  sync.Mutex
	speakerRate beep.SampleRate
)

func initSpeaker(o options) (beep.SampleRate, error) {
	speakerMtx.Lock()
	defer speakerMtx.Unlock()

	if speakerRate != 0 {
		return speakerRate, nil
	}

	rate := beep.SampleRate(o.sampleRate)
	if err := speaker.Init(rate, rate.N(o.buffer)); err != nil {
		return 0, fmt.Errorf("speaker init: %w", err)
	}
	speakerRate = rate
	return rate, nil
}

// Engine implements engine.Engine on the system speaker.
type Engine struct {
	log       *zap.Logger
	opts      options
	listeners engine.Listeners
	events    *engine.Dispatcher

	mtx     sync.Mutex
	rate    beep.SampleRate
	buf     *audio.Buffer
	stream  *bufferStreamer
	ctrl    *beep.Ctrl
	queued  bool // ctrl is on the speaker
	playing bool
	gen     int // bumped on every Load to drop stale finish callbacks
	closed  bool
}

var _ engine.Engine = (*Engine)(nil)

// New returns an engine. The speaker is opened on the first Load.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{opts: newOptions(opts)}
	e.log = e.opts.logger.Named("engine")
	e.events = engine.NewDispatcher(&e.listeners)
	return e, nil
}

func (e *Engine) Subscribe(l engine.Listener) func() {
	return e.listeners.Add(l)
}

// Load replaces the playing buffer and emits Ready asynchronously.
func (e *Engine) Load(buf *audio.Buffer) error {
	if buf == nil || buf.NumChannels() == 0 {
		return engine.ErrNotLoaded
	}

	e.mtx.Lock()
	defer e.mtx.Unlock()

	if e.closed {
		return engine.ErrClosed
	}

	if e.rate == 0 {
		rate, err := initSpeaker(e.opts)
		if err != nil {
			return err
		}
		e.rate = rate
	}

	e.stopLocked()

	e.gen++
	e.buf = buf
	e.stream = newBufferStreamer(buf)
	e.ctrl = &beep.Ctrl{Streamer: e.resampled(e.stream), Paused: true}

	duration := buf.Duration()
	e.log.Debug("buffer loaded",
		zap.Int("channels", buf.NumChannels()),
		zap.Int("sample_rate", buf.SampleRate()),
		zap.Float64("duration", duration),
	)

	e.events.Emit(engine.Ready{Duration: duration})
	return nil
}

func (e *Engine) resampled(s beep.Streamer) beep.Streamer {
	from := beep.SampleRate(e.buf.SampleRate())
	if from == e.rate {
		return s
	}
	return beep.Resample(resampleQuality, from, e.rate, s)
}

// stopLocked takes the current stream off the speaker.
func (e *Engine) stopLocked() {
	if e.ctrl != nil {
		speaker.Lock()
		e.ctrl.Paused = true
		e.ctrl.Streamer = nil
		speaker.Unlock()
	}
	e.ctrl = nil
	e.queued = false
	e.playing = false
}

func (e *Engine) Buffer() *audio.Buffer {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	return e.buf
}

func (e *Engine) Duration() float64 {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	if e.buf == nil {
		return 0
	}
	return e.buf.Duration()
}

func (e *Engine) Play() error {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	if e.closed {
		return engine.ErrClosed
	}
	if e.ctrl == nil {
		return engine.ErrNotLoaded
	}

	if !e.queued {
		speaker.Lock()
		if e.stream.Position() >= e.stream.Len() {
			_ = e.stream.Seek(0)
		}
		// A finished resampler stays drained, so wrap the stream again.
		e.ctrl.Streamer = e.resampled(e.stream)
		speaker.Unlock()

		gen := e.gen
		speaker.Play(beep.Seq(e.ctrl, beep.Callback(func() {
			// Runs on the speaker goroutine with the speaker locked.
			e.events.Post(func() { e.finished(gen) })
		})))
		e.queued = true
	}

	speaker.Lock()
	e.ctrl.Paused = false
	speaker.Unlock()

	e.playing = true
	return nil
}

func (e *Engine) finished(gen int) {
	e.mtx.Lock()
	if gen != e.gen || !e.queued {
		e.mtx.Unlock()
		return
	}
	e.queued = false
	e.playing = false
	e.mtx.Unlock()

	e.log.Debug("playback finished")
	e.listeners.Emit(engine.PlaybackFinished{})
}

func (e *Engine) Pause() error {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	if e.closed {
		return engine.ErrClosed
	}
	if e.ctrl == nil {
		return engine.ErrNotLoaded
	}

	speaker.Lock()
	e.ctrl.Paused = true
	speaker.Unlock()

	e.playing = false
	return nil
}

func (e *Engine) Seek(seconds float64) error {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	if e.stream == nil {
		return engine.ErrNotLoaded
	}

	frame := int(seconds * float64(e.buf.SampleRate()))
	frame = min(max(frame, 0), e.stream.Len())

	speaker.Lock()
	defer speaker.Unlock()

	return e.stream.Seek(frame)
}

func (e *Engine) Position() float64 {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	if e.stream == nil {
		return 0
	}

	speaker.Lock()
	pos := e.stream.Position()
	speaker.Unlock()

	return float64(pos) / float64(e.buf.SampleRate())
}

func (e *Engine) IsPlaying() bool {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	return e.playing
}

// Close stops playback and waits for queued events to be delivered.
func (e *Engine) Close() error {
	e.mtx.Lock()
	if e.closed {
		e.mtx.Unlock()
		return nil
	}
	e.closed = true
	e.stopLocked()
	e.mtx.Unlock()

	e.events.Close()
	return nil
}
