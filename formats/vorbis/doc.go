// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files via github.com/jfreymuth/oggvorbis.
//
//	source, err := vorbis.Decoder{}.Decode(file)
//
// Samples are already float32 in the decoder, so no conversion happens.
package vorbis
