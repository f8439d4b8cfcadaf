// SPDX-License-Identifier: EPL-2.0

package editor

import (
	"github.com/ik5/regionedit/playback"
	"github.com/ik5/regionedit/region"
	"github.com/ik5/regionedit/timecode"
)

// Error kinds surfaced by the editor. They are the package sentinels of
// the component that detects them, re-exported for callers that only
// import editor.
var (
	// ErrEngineUnavailable is returned before the engine reported Ready.
	// Callers treat it as a silent no-op.
	ErrEngineUnavailable = playback.ErrEngineUnavailable
	// ErrInvalidFormat means a time field is not "HH:MM:SS".
	ErrInvalidFormat = timecode.ErrInvalidFormat
	// ErrOutOfRange wraps every *region.RangeError.
	ErrOutOfRange     = region.ErrOutOfRange
	ErrNoActiveRegion = region.ErrNoActiveRegion
	ErrRegionExists   = region.ErrRegionExists
)
