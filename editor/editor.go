// SPDX-License-Identifier: EPL-2.0

// Package editor is the region editing controller. It owns an audio
// engine, the region model, the playback state and the two time fields,
// and turns user actions and engine events into validated mutations.
//
// Engine events may arrive on any goroutine. All state sits behind one
// mutex. Observer events are queued under it in commit order and delivered
// after it is released, one at a time.
package editor

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/ik5/regionedit/audio"
	"github.com/ik5/regionedit/engine"
	"github.com/ik5/regionedit/playback"
	"github.com/ik5/regionedit/region"
	"github.com/ik5/regionedit/timecode"
	"github.com/ik5/regionedit/trim"
)

// DefaultFieldText is the initial content of both time fields.
const DefaultFieldText = "00:00:00"

// State is a snapshot of the editor.
type State struct {
	Loaded    bool
	Duration  float64
	Playing   bool
	Region    region.Region
	HasRegion bool
	StartText string
	EndText   string
	// FieldsErr is ErrInvalidFormat while either field is malformed.
	FieldsErr error
}

type Editor struct {
	log       *zap.Logger
	eng       engine.Engine
	regions   *region.Model
	player    *playback.Controller
	observers engine.Listeners
	unsub     func()

	mtx       sync.Mutex
	loaded    bool
	startText string
	endText   string
	closed    bool

	pending  []engine.Event
	flushing bool
}

type options struct {
	policy region.Policy
	logger *zap.Logger
}

type Option func(*options)

// WithPolicy sets what happens when a second region is drawn.
func WithPolicy(p region.Policy) Option {
	return func(o *options) { o.policy = p }
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// New subscribes to eng. The editor stays gated until eng reports Ready.
func New(eng engine.Engine, opts ...Option) (*Editor, error) {
	if eng == nil {
		return nil, ErrEngineUnavailable
	}

	o := options{policy: region.PolicyReplace, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	e := &Editor{
		log:       o.logger.Named("editor"),
		eng:       eng,
		regions:   region.NewModel(o.policy),
		player:    playback.NewController(eng),
		startText: DefaultFieldText,
		endText:   DefaultFieldText,
	}
	e.unsub = eng.Subscribe(engine.ListenerFunc(e.handleEvent))

	return e, nil
}

// Subscribe registers an observer for committed changes. Observers get
// Ready, RegionChanged, RegionRemoved and PlaybackFinished.
func (e *Editor) Subscribe(l engine.Listener) func() {
	return e.observers.Add(l)
}

// notify queues events for observers. Callers hold e.mtx and call flush
// once it is released.
func (e *Editor) notify(events ...engine.Event) {
	e.pending = append(e.pending, events...)
}

// flush delivers queued events. A goroutine that finds another one
// flushing leaves its events to it, so deliveries never overlap and an
// observer may call back into the editor.
func (e *Editor) flush() {
	e.mtx.Lock()
	if e.flushing {
		e.mtx.Unlock()
		return
	}
	e.flushing = true

	for len(e.pending) > 0 {
		events := e.pending
		e.pending = nil
		e.mtx.Unlock()

		for _, ev := range events {
			e.observers.Emit(ev)
		}

		e.mtx.Lock()
	}

	e.flushing = false
	e.mtx.Unlock()
}

func (e *Editor) handleEvent(ev engine.Event) {
	switch ev := ev.(type) {
	case engine.Ready:
		e.onReady(ev.Duration)
	case engine.RegionChanged:
		if _, err := e.adopt(ev.Region); err != nil {
			e.log.Debug("region from engine rejected", zap.Error(err))
		}
	case engine.RegionRemoved:
		e.mtx.Lock()
		if e.regions.Clear() {
			e.notify(engine.RegionRemoved{})
		}
		e.mtx.Unlock()
		e.flush()
	case engine.PlaybackFinished:
		e.mtx.Lock()
		e.player.Finished()
		e.notify(engine.PlaybackFinished{})
		e.mtx.Unlock()
		e.flush()
	}
}

func (e *Editor) onReady(duration float64) {
	e.mtx.Lock()
	if e.closed {
		e.mtx.Unlock()
		return
	}
	r, err := e.regions.Create(duration)
	if err != nil {
		e.mtx.Unlock()
		e.log.Warn("engine ready without a duration", zap.Float64("duration", duration))
		return
	}
	e.loaded = true
	e.notify(engine.Ready{Duration: duration}, engine.RegionChanged{Region: r})
	e.mtx.Unlock()

	e.log.Info("audio ready",
		zap.Float64("duration", duration),
		zap.Float64("region_start", r.Start),
		zap.Float64("region_end", r.End),
	)
	e.flush()
}

// gate returns ErrEngineUnavailable until Ready. Callers hold e.mtx.
func (e *Editor) gate() error {
	if !e.loaded || e.closed {
		return ErrEngineUnavailable
	}
	return nil
}

// State returns a consistent snapshot.
func (e *Editor) State() State {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	r, ok := e.regions.Region()
	return State{
		Loaded:    e.loaded,
		Duration:  e.regions.Duration(),
		Playing:   e.player.Playing(),
		Region:    r,
		HasRegion: ok,
		StartText: e.startText,
		EndText:   e.endText,
		FieldsErr: fieldsError(e.startText, e.endText),
	}
}

// Buffer returns the audio currently loaded in the engine.
func (e *Editor) Buffer() *audio.Buffer {
	return e.eng.Buffer()
}

// Position returns the play head in seconds.
func (e *Editor) Position() float64 {
	return e.eng.Position()
}

// TogglePlayback plays or pauses and returns the new playing state.
func (e *Editor) TogglePlayback() (bool, error) {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	if err := e.gate(); err != nil {
		return false, err
	}
	return e.player.Toggle()
}

// Seek moves the play head.
func (e *Editor) Seek(seconds float64) error {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	if err := e.gate(); err != nil {
		return err
	}
	return e.player.Seek(seconds)
}

func (e *Editor) SetStartText(s string) {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	e.startText = s
}

func (e *Editor) SetEndText(s string) {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	e.endText = s
}

// ResetFields copies the active region into the time fields.
func (e *Editor) ResetFields() {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	if r, ok := e.regions.Region(); ok {
		e.startText = timecode.Format(r.Start)
		e.endText = timecode.Format(r.End)
	}
}

func fieldsError(start, end string) error {
	if !timecode.Valid(start) || !timecode.Valid(end) {
		return ErrInvalidFormat
	}
	return nil
}

// FieldsError returns ErrInvalidFormat while either field is malformed.
func (e *Editor) FieldsError() error {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	return fieldsError(e.startText, e.endText)
}

// ApplyFields parses both fields and moves the active region to them.
// A rejection is a *region.RangeError whose message is meant for the user.
func (e *Editor) ApplyFields() (region.Region, error) {
	e.mtx.Lock()
	if err := e.gate(); err != nil {
		e.mtx.Unlock()
		return region.Region{}, err
	}

	start, err := timecode.Parse(e.startText)
	if err != nil {
		e.mtx.Unlock()
		return region.Region{}, fmt.Errorf("start: %w", err)
	}
	end, err := timecode.Parse(e.endText)
	if err != nil {
		e.mtx.Unlock()
		return region.Region{}, fmt.Errorf("end: %w", err)
	}

	r, err := e.regions.Update(start, end)
	if err == nil {
		e.notify(engine.RegionChanged{Region: r})
	}
	e.mtx.Unlock()

	e.flush()
	return r, err
}

// SetStart commits the start bound alone.
func (e *Editor) SetStart(seconds float64) (region.Region, error) {
	return e.edit(func() (region.Region, error) { return e.regions.SetStart(seconds) })
}

// SetEnd commits the end bound alone.
func (e *Editor) SetEnd(seconds float64) (region.Region, error) {
	return e.edit(func() (region.Region, error) { return e.regions.SetEnd(seconds) })
}

func (e *Editor) edit(fn func() (region.Region, error)) (region.Region, error) {
	e.mtx.Lock()
	if err := e.gate(); err != nil {
		e.mtx.Unlock()
		return region.Region{}, err
	}
	r, err := fn()
	if err == nil {
		e.notify(engine.RegionChanged{Region: r})
	}
	e.mtx.Unlock()

	e.flush()
	return r, err
}

// DrawRegion handles a region drawn by the user in the view. An active
// region is replaced or kept depending on the policy.
func (e *Editor) DrawRegion(start, end float64) (region.Region, error) {
	return e.adopt(region.Region{Start: start, End: end, Origin: region.User})
}

// MoveRegion handles the active region being dragged to a new place.
func (e *Editor) MoveRegion(start, end float64) (region.Region, error) {
	e.mtx.Lock()
	r, ok := e.regions.Region()
	e.mtx.Unlock()
	if !ok {
		return region.Region{}, ErrNoActiveRegion
	}

	r.Start, r.End, r.Origin = start, end, region.User
	return e.adopt(r)
}

func (e *Editor) adopt(raw region.Region) (region.Region, error) {
	e.mtx.Lock()
	if err := e.gate(); err != nil {
		e.mtx.Unlock()
		return region.Region{}, err
	}
	r, changed, err := e.regions.Adopt(raw)
	if changed {
		e.notify(engine.RegionChanged{Region: r})
	}
	e.mtx.Unlock()

	e.flush()
	return r, err
}

// AddRegion creates a region when none exists.
func (e *Editor) AddRegion() (region.Region, error) {
	return e.edit(e.regions.Add)
}

// ClearRegion removes the active region.
func (e *Editor) ClearRegion() error {
	e.mtx.Lock()
	if err := e.gate(); err != nil {
		e.mtx.Unlock()
		return err
	}
	had := e.regions.Clear()
	if had {
		e.notify(engine.RegionRemoved{})
	}
	e.mtx.Unlock()

	if !had {
		return ErrNoActiveRegion
	}
	e.flush()
	return nil
}

// Trim replaces the engine's buffer with the samples of the active region.
// The region is cleared and playback stopped; the editor is gated again
// until the engine reports Ready for the trimmed buffer.
func (e *Editor) Trim() error {
	e.mtx.Lock()

	if err := e.gate(); err != nil {
		e.mtx.Unlock()
		return err
	}
	r, ok := e.regions.Region()
	if !ok {
		e.mtx.Unlock()
		return ErrNoActiveRegion
	}

	trimmed, err := trim.Trim(e.eng.Buffer(), r)
	if err != nil {
		e.mtx.Unlock()
		return fmt.Errorf("trim: %w", err)
	}

	stopErr := e.player.Stop()
	if err := e.eng.Load(trimmed); err != nil {
		e.mtx.Unlock()
		return errors.Join(fmt.Errorf("loading trimmed audio: %w", err), stopErr)
	}

	// Ready for the trimmed buffer needs e.mtx, so RegionRemoved is queued
	// ahead of it.
	e.regions.Reset()
	e.loaded = false
	e.notify(engine.RegionRemoved{})
	e.mtx.Unlock()

	e.log.Info("trimmed",
		zap.Float64("start", r.Start),
		zap.Float64("end", r.End),
		zap.Float64("length", r.Length()),
		zap.Int("frames", trimmed.Len()),
	)
	if stopErr != nil {
		e.log.Warn("pausing before trim", zap.Error(stopErr))
	}

	e.flush()
	return nil
}

// Close detaches from the engine and closes it.
func (e *Editor) Close() error {
	e.mtx.Lock()
	if e.closed {
		e.mtx.Unlock()
		return nil
	}
	e.closed = true
	e.loaded = false
	e.mtx.Unlock()

	e.unsub()
	if err := e.eng.Close(); err != nil {
		return fmt.Errorf("closing engine: %w", err)
	}
	return nil
}
