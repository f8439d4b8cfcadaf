// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF audio files via github.com/go-audio/aiff.
//
//	file, _ := os.Open("audio.aiff")
//	source, err := aiff.Decoder{}.Decode(file)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    // not an AIFF file
//	}
//
// 16, 24 and 32-bit PCM are supported. AIFF-C (compressed) is not.
// The decoder needs to seek; non-seekable readers are buffered in memory.
package aiff
