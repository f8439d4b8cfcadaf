// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"io"

	gowav "github.com/go-audio/wav"

	"github.com/ik5/regionedit/audio"
	"github.com/ik5/regionedit/internal/pcm"
)

// wavFormatPCM is the WAVE_FORMAT_PCM tag.
const wavFormatPCM = 1

func supportedBitDepth(depth int) bool {
	return depth == 16 || depth == 24 || depth == 32
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := pcm.ReadSeeker(r)
	if err != nil {
		return nil, err
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	dec.ReadInfo()
	if dec.WavAudioFormat != wavFormatPCM {
		return nil, ErrNotPCM
	}

	depth := int(dec.BitDepth)
	if !supportedBitDepth(depth) {
		return nil, ErrUnsupportedBitDepth
	}

	format := dec.Format()
	if format == nil || format.NumChannels < 1 {
		return nil, ErrNotWavFile
	}

	return pcm.NewIntSource(dec, format, depth), nil
}
