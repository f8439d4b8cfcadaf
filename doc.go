// SPDX-License-Identifier: EPL-2.0

// Package regionedit loads audio files into memory, lets a single time
// region be selected over them, and trims the audio down to that region.
//
// # Loading
//
// Open decodes a file by its extension into a planar audio.Buffer:
//
//	buf, err := regionedit.Open("voice.mp3", regionedit.WithSampleRate(44100))
//
// WAV, MP3, Ogg Vorbis and AIFF are supported through DefaultRegistry.
//
// # Trimming
//
// TrimFile is the one-shot path: decode, cut, and write a 16-bit WAV.
//
//	err := regionedit.TrimFile("in.wav", "out.wav", 10, 60)
//
// # Interactive editing
//
// The editor package drives an engine.Engine (see engine/beepengine for
// speaker output) and keeps the region, the playback state and the time
// fields consistent while engine events and user edits interleave.
//
//	eng, _ := beepengine.New()
//	ed, _ := editor.New(eng, editor.WithPolicy(region.PolicySuppress))
//	_ = eng.Load(buf)
//	// after Ready:
//	ed.SetStartText("00:00:10")
//	ed.SetEndText("00:01:00")
//	r, err := ed.ApplyFields()
//	err = ed.Trim()
//
// See the individual subpackages for more detailed documentation.
package regionedit
