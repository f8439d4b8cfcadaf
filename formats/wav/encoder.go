// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/regionedit/audio"
	"github.com/ik5/regionedit/utils"
)

// encodeChunkFrames is the number of frames converted per write.
const encodeChunkFrames = 8192

// Encode writes buf as an integer PCM WAV of the given bit depth.
func Encode(w io.WriteSeeker, buf *audio.Buffer, bitDepth int) error {
	if !supportedBitDepth(bitDepth) {
		return ErrUnsupportedBitDepth
	}

	channels := buf.NumChannels()
	if channels == 0 || buf.Len() == 0 {
		return ErrEmptyBuffer
	}

	enc := gowav.NewEncoder(w, buf.SampleRate(), bitDepth, channels, wavFormatPCM)

	planar := make([][]float32, channels)
	for c := range planar {
		planar[c], _ = buf.Channel(c)
	}

	chunk := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: channels,
			SampleRate:  buf.SampleRate(),
		},
		Data:           make([]int, 0, encodeChunkFrames*channels),
		SourceBitDepth: bitDepth,
	}

	for start := 0; start < buf.Len(); start += encodeChunkFrames {
		end := min(start+encodeChunkFrames, buf.Len())

		chunk.Data = chunk.Data[:0]
		for f := start; f < end; f++ {
			for c := range channels {
				chunk.Data = append(chunk.Data, utils.Float32ToInt(planar[c][f], bitDepth))
			}
		}

		if err := enc.Write(chunk); err != nil {
			return errors.Join(fmt.Errorf("writing samples: %w", err), enc.Close())
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing header: %w", err)
	}
	return nil
}
