// SPDX-License-Identifier: EPL-2.0

package utils

// FullScale returns the magnitude of the most negative integer sample for
// a signed PCM bit depth (128 for 8-bit, 32768 for 16-bit, ...).
// Unknown depths are treated as 16-bit.
func FullScale(bitDepth int) float32 {
	switch bitDepth {
	case 8:
		return 128.0
	case 24:
		return 8388608.0
	case 32:
		return 2147483648.0
	default:
		return 32768.0
	}
}

// Float32ToInt converts a float sample in [-1,1] to a signed integer sample
// of the given bit depth, clamping out of range input.
func Float32ToInt(x float32, bitDepth int) int {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	scale := FullScale(bitDepth)
	if x >= 0 {
		// Positive full scale is one step short of the negative one.
		return int(float64(x) * float64(scale-1))
	}
	return int(float64(x) * float64(scale))
}

// IntToFloat32 converts a signed integer sample of the given bit depth to
// a float in [-1,1).
func IntToFloat32(v int, bitDepth int) float32 {
	return float32(float64(v) / float64(FullScale(bitDepth)))
}
