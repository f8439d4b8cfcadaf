// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 files via github.com/hajimehoshi/go-mp3.
//
// go-mp3 always produces 16-bit stereo, so the returned source reports two
// channels regardless of the stream's own channel mode:
//
//	source, err := mp3.Decoder{}.Decode(file)
//	fmt.Println(source.Channels()) // 2
package mp3
