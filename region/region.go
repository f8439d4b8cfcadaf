// SPDX-License-Identifier: EPL-2.0

// Package region models the single editable time range of a track.
//
// A Model holds at most one Region. Every mutation is validated first and
// either commits completely or leaves the model untouched.
package region

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Origin tells a region created by the editor apart from one drawn by the
// user.
type Origin int

const (
	System Origin = iota
	User
)

func (o Origin) String() string {
	if o == System {
		return "system"
	}
	return "user"
}

// SystemID is the ID of the region created when a track becomes ready.
const SystemID = "region-1"

// Default display colors.
const (
	SystemColor = "rgba(0, 123, 255, 0.1)"
	UserColor   = "rgba(0, 255, 0, 0.1)"
)

// Region is a contiguous time range in seconds.
type Region struct {
	ID     string
	Start  float64
	End    float64
	Color  string
	Origin Origin
}

// Length returns End - Start.
func (r Region) Length() float64 { return r.End - r.Start }

// Policy decides what happens when a user draws a second region.
type Policy int

const (
	// PolicyReplace swaps the active region for the new one.
	PolicyReplace Policy = iota
	// PolicySuppress rejects the new region with ErrRegionExists.
	PolicySuppress
)

func (p Policy) String() string {
	if p == PolicySuppress {
		return "suppress"
	}
	return "replace"
}

// ParsePolicy accepts "replace" or "suppress", case-insensitively.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "replace":
		return PolicyReplace, nil
	case "suppress":
		return PolicySuppress, nil
	default:
		return PolicyReplace, fmt.Errorf("unknown region policy %q", s)
	}
}

// Model is safe for concurrent use.
type Model struct {
	policy Policy

	mtx      sync.RWMutex
	duration float64
	active   *Region
}

func NewModel(policy Policy) *Model {
	return &Model{policy: policy}
}

func (m *Model) Policy() Policy { return m.policy }

func (m *Model) Duration() float64 {
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	return m.duration
}

// Region returns a copy of the active region.
func (m *Model) Region() (Region, bool) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	if m.active == nil {
		return Region{}, false
	}
	return *m.active, true
}

// Create sets the duration and installs the system region over the middle
// half of the track, replacing any region present.
func (m *Model) Create(duration float64) (Region, error) {
	if !(duration > 0) {
		return Region{}, ErrUnknownDuration
	}

	start := duration / 4
	r := Region{
		ID:     SystemID,
		Start:  start,
		End:    start + duration/2,
		Color:  SystemColor,
		Origin: System,
	}

	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.duration = duration
	m.active = &r

	return r, nil
}

// check validates a full start/end pair against d.
func check(start, end, d float64) error {
	if start < 0 || start > d {
		return &RangeError{Bound: BoundStart, Duration: d}
	}
	if end < 0 || end > d {
		return &RangeError{Bound: BoundEnd, Duration: d}
	}
	if start >= end {
		return &RangeError{Bound: BoundOrder, Duration: d}
	}
	return nil
}

// Update replaces both bounds of the active region.
func (m *Model) Update(start, end float64) (Region, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if m.active == nil {
		return Region{}, ErrNoActiveRegion
	}
	if err := check(start, end, m.duration); err != nil {
		return *m.active, err
	}

	m.active.Start, m.active.End = start, end
	return *m.active, nil
}

// SetStart commits a new start alone. It accepts 0 <= v <= duration, so
// the start may pass the end while the user is still typing.
func (m *Model) SetStart(v float64) (Region, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if m.active == nil {
		return Region{}, ErrNoActiveRegion
	}
	if v < 0 || v > m.duration {
		return *m.active, &RangeError{Bound: BoundStart, Duration: m.duration}
	}

	m.active.Start = v
	return *m.active, nil
}

// SetEnd commits a new end alone. It accepts start <= v <= duration.
func (m *Model) SetEnd(v float64) (Region, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if m.active == nil {
		return Region{}, ErrNoActiveRegion
	}
	if v > m.duration || v < 0 {
		return *m.active, &RangeError{Bound: BoundEnd, Duration: m.duration}
	}
	if v < m.active.Start {
		return *m.active, &RangeError{Bound: BoundOrder, Duration: m.duration}
	}

	m.active.End = v
	return *m.active, nil
}

// Adopt handles a region reported by the waveform view. System regions are
// echoes of Create and are ignored. A region with the active ID moves the
// active region. A region with a new ID is subject to the policy.
//
// The returned bool reports whether the model changed.
func (m *Model) Adopt(raw Region) (Region, bool, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if raw.Origin == System {
		if m.active == nil {
			return Region{}, false, nil
		}
		return *m.active, false, nil
	}
	if !(m.duration > 0) {
		return Region{}, false, ErrUnknownDuration
	}

	if m.active != nil && raw.ID == m.active.ID {
		if err := check(raw.Start, raw.End, m.duration); err != nil {
			return *m.active, false, err
		}
		m.active.Start, m.active.End = raw.Start, raw.End
		return *m.active, true, nil
	}

	if m.active != nil && m.policy == PolicySuppress {
		return *m.active, false, ErrRegionExists
	}
	if err := check(raw.Start, raw.End, m.duration); err != nil {
		if m.active == nil {
			return Region{}, false, err
		}
		return *m.active, false, err
	}

	r := raw
	if r.ID == "" || r.ID == SystemID {
		r.ID = uuid.NewString()
	}
	if r.Color == "" {
		r.Color = UserColor
	}
	r.Origin = User
	m.active = &r

	return r, true, nil
}

// Add installs a user region ending at the middle of the track and one
// fifth of the duration long. It never replaces an existing region.
func (m *Model) Add() (Region, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if !(m.duration > 0) {
		return Region{}, ErrUnknownDuration
	}
	if m.active != nil {
		return *m.active, ErrRegionExists
	}

	mid := m.duration / 2
	r := Region{
		ID:     uuid.NewString(),
		Start:  mid - m.duration/5,
		End:    mid,
		Color:  UserColor,
		Origin: User,
	}
	m.active = &r

	return r, nil
}

// Clear removes the active region and reports whether one existed.
func (m *Model) Clear() bool {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	had := m.active != nil
	m.active = nil
	return had
}

// Reset forgets the duration and the region.
func (m *Model) Reset() {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.duration = 0
	m.active = nil
}
