// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	// ErrNotAiffFile indicates the input is not a valid AIFF file.
	ErrNotAiffFile = errors.New("not an AIFF file")
	// ErrUnsupportedBitDepth indicates a PCM bit depth other than 16, 24 or 32.
	ErrUnsupportedBitDepth = errors.New("unsupported AIFF bit depth")
)
