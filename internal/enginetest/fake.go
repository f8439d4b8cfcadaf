// SPDX-License-Identifier: EPL-2.0

// Package enginetest provides an in-memory engine.Engine for tests.
//
// The fake never emits events on its own: tests drive Ready, region and
// finish notifications explicitly, synchronously on the calling goroutine.
package enginetest

import (
	"sync"

	"github.com/ik5/regionedit/audio"
	"github.com/ik5/regionedit/engine"
	"github.com/ik5/regionedit/region"
)

type Fake struct {
	listeners engine.Listeners

	mtx      sync.Mutex
	buf      *audio.Buffer
	playing  bool
	position float64
	closed   bool
	loads    int

	// Errors returned by the next calls, if set.
	PlayErr  error
	PauseErr error
	LoadErr  error
}

var _ engine.Engine = (*Fake)(nil)

func New() *Fake { return &Fake{} }

func (f *Fake) Load(buf *audio.Buffer) error {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	if f.closed {
		return engine.ErrClosed
	}
	if f.LoadErr != nil {
		return f.LoadErr
	}

	f.buf = buf
	f.playing = false
	f.position = 0
	f.loads++
	return nil
}

func (f *Fake) Buffer() *audio.Buffer {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	return f.buf
}

func (f *Fake) Duration() float64 {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	if f.buf == nil {
		return 0
	}
	return f.buf.Duration()
}

func (f *Fake) Play() error {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	if f.buf == nil {
		return engine.ErrNotLoaded
	}
	if f.PlayErr != nil {
		return f.PlayErr
	}
	f.playing = true
	return nil
}

func (f *Fake) Pause() error {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	if f.buf == nil {
		return engine.ErrNotLoaded
	}
	if f.PauseErr != nil {
		return f.PauseErr
	}
	f.playing = false
	return nil
}

func (f *Fake) Seek(seconds float64) error {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	if f.buf == nil {
		return engine.ErrNotLoaded
	}
	f.position = min(max(seconds, 0), f.buf.Duration())
	return nil
}

func (f *Fake) Position() float64 {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	return f.position
}

func (f *Fake) IsPlaying() bool {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	return f.playing
}

func (f *Fake) Subscribe(l engine.Listener) func() {
	return f.listeners.Add(l)
}

func (f *Fake) Close() error {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	f.closed = true
	f.playing = false
	return nil
}

// Loads returns how many buffers have been loaded.
func (f *Fake) Loads() int {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	return f.loads
}

func (f *Fake) Closed() bool {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	return f.closed
}

// Emit delivers e to all subscribers.
func (f *Fake) Emit(e engine.Event) {
	f.listeners.Emit(e)
}

// Ready emits Ready with the duration of the loaded buffer.
func (f *Fake) Ready() {
	f.Emit(engine.Ready{Duration: f.Duration()})
}

// Finish stops playback and emits PlaybackFinished.
func (f *Fake) Finish() {
	f.mtx.Lock()
	f.playing = false
	if f.buf != nil {
		f.position = f.buf.Duration()
	}
	f.mtx.Unlock()

	f.Emit(engine.PlaybackFinished{})
}

// Drag emits RegionChanged for a user region.
func (f *Fake) Drag(id string, start, end float64) {
	f.Emit(engine.RegionChanged{Region: region.Region{
		ID:     id,
		Start:  start,
		End:    end,
		Origin: region.User,
	}})
}
