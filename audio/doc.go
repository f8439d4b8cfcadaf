// SPDX-License-Identifier: EPL-2.0

// Package audio provides the PCM primitives the rest of the module is
// built on.
//
// # Streams and buffers
//
// A Source is a stream of interleaved float32 samples in [-1,1]:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    Close() error
//	}
//
// A Buffer holds a whole decoded track in planar layout, one slice per
// channel. ReadAll turns a Source into a Buffer and Buffer.Source turns it
// back into a stream:
//
//	buf, err := audio.ReadAll(src)
//	left, _ := buf.Channel(0)
//	fmt.Println(buf.Duration(), len(left))
//
// # Resampling
//
// The Resampler changes the sample rate using cubic interpolation, with a
// low-pass filter when downsampling:
//
//	resampled := audio.NewResampler(source, 16000)
//
// # Channel Mixing
//
// The MonoMixer averages every frame down to one channel:
//
//	mono := audio.NewMonoMixer(source)
//
// # Format Registry
//
// Decoders are looked up by file extension:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, err := registry.ForPath("song.WAV")
//
// # Error Handling
//
// ReadSamples returns io.EOF when no more data is available, possibly
// together with the last samples:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    process(buf[:n])
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
