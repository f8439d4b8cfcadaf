// SPDX-License-Identifier: EPL-2.0

package region

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrUnknownDuration = errors.New("duration is unknown")
	ErrNoActiveRegion  = errors.New("no active region")
	ErrRegionExists    = errors.New("a region already exists")
	ErrOutOfRange      = errors.New("region bound out of range")
)

// Bound names the region edge an edit failed on.
type Bound int

const (
	BoundStart Bound = iota
	BoundEnd
	// BoundOrder means the start did not come before the end.
	BoundOrder
)

func (b Bound) String() string {
	switch b {
	case BoundStart:
		return "start"
	case BoundEnd:
		return "end"
	case BoundOrder:
		return "order"
	default:
		return "Bound(" + strconv.Itoa(int(b)) + ")"
	}
}

// RangeError is a rejected edit. Error returns the message shown to the
// user.
type RangeError struct {
	Bound    Bound
	Duration float64
}

func (e *RangeError) Error() string {
	d := strconv.FormatFloat(e.Duration, 'f', -1, 64)

	switch e.Bound {
	case BoundStart:
		return fmt.Sprintf("Start time must be between 0 and %s seconds.", d)
	case BoundEnd:
		return fmt.Sprintf("End time must be between 0 and %s seconds.", d)
	default:
		return "End time must be greater than start time."
	}
}

func (e *RangeError) Unwrap() error { return ErrOutOfRange }
