// SPDX-License-Identifier: EPL-2.0

// Package timecode converts between "HH:MM:SS" strings and seconds.
//
// The format check is purely syntactic: exactly two digits per field,
// separated by colons. "00:75:99" parses (as 75 minutes 99 seconds); range
// checks against a track's duration happen in the region package.
package timecode

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// ErrInvalidFormat is returned for text that is not "HH:MM:SS".
var ErrInvalidFormat = errors.New("invalid time format, use hh:mm:ss")

var pattern = regexp.MustCompile(`^([0-9]{2}):([0-9]{2}):([0-9]{2})$`)

// Valid reports whether text has the "HH:MM:SS" shape.
func Valid(text string) bool {
	return pattern.MatchString(text)
}

// Parse returns hours*3600 + minutes*60 + seconds.
func Parse(text string) (float64, error) {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return 0, fmt.Errorf("%q: %w", text, ErrInvalidFormat)
	}

	// Two ASCII digits always convert.
	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	sec, _ := strconv.Atoi(m[3])

	return float64(h*3600 + min*60 + sec), nil
}

// Format renders seconds as "HH:MM:SS", truncating any fraction. Hours
// past 99 widen the first field. Negative input formats as zero and
// values beyond the int64 range clamp to it.
func Format(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}

	var total int64 = math.MaxInt64
	if seconds < math.MaxInt64 {
		total = int64(seconds)
	}
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total/60%60, total%60)
}
