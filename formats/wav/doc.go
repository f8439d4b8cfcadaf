// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and encodes PCM WAV files.
//
// Both directions use github.com/go-audio/wav.
//
// # Decoding
//
//	file, _ := os.Open("audio.wav")
//	source, err := wav.Decoder{}.Decode(file)
//
// The returned audio.Source yields interleaved float32 samples in [-1,1].
// 16, 24 and 32-bit integer PCM are supported with any channel count.
//
// # Encoding
//
// Encode writes a whole audio.Buffer, keeping its channel layout and sample
// rate. The target must be seekable because the header is patched once the
// data size is known:
//
//	out, _ := os.Create("trimmed.wav")
//	defer out.Close()
//	err := wav.Encode(out, buf, 16)
package wav
