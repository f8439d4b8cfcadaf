// SPDX-License-Identifier: EPL-2.0

// Package engine defines the audio engine an editor drives, and the typed
// events it reports.
package engine

import (
	"errors"

	"github.com/ik5/regionedit/audio"
	"github.com/ik5/regionedit/region"
)

var (
	ErrNotLoaded = errors.New("no audio loaded")
	ErrClosed    = errors.New("engine closed")
)

// Event is one of Ready, RegionChanged, RegionRemoved or PlaybackFinished.
type Event interface {
	isEvent()
}

// Ready is sent once a loaded buffer can be played.
type Ready struct {
	Duration float64
}

// RegionChanged reports a region drawn or dragged in the view.
type RegionChanged struct {
	Region region.Region
}

// RegionRemoved reports that the view dropped the region.
type RegionRemoved struct{}

// PlaybackFinished is sent when playback reaches the end of the buffer.
type PlaybackFinished struct{}

func (Ready) isEvent()            {}
func (RegionChanged) isEvent()    {}
func (RegionRemoved) isEvent()    {}
func (PlaybackFinished) isEvent() {}

// Listener receives events. Calls for one engine never overlap.
type Listener interface {
	HandleEvent(Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(Event)

func (f ListenerFunc) HandleEvent(e Event) { f(e) }

// Engine plays a decoded buffer. Load is asynchronous: Ready follows once
// the buffer is in place, and is never delivered from inside Load.
type Engine interface {
	Load(buf *audio.Buffer) error
	Buffer() *audio.Buffer
	Duration() float64

	Play() error
	Pause() error
	Seek(seconds float64) error
	Position() float64
	IsPlaying() bool

	// Subscribe registers l and returns a function that removes it.
	Subscribe(l Listener) (unsubscribe func())
	Close() error
}
