// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"io"

	goaiff "github.com/go-audio/aiff"

	"github.com/ik5/regionedit/audio"
	"github.com/ik5/regionedit/internal/pcm"
)

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := pcm.ReadSeeker(r)
	if err != nil {
		return nil, err
	}

	dec := goaiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	depth := int(dec.BitDepth)
	switch depth {
	case 16, 24, 32:
	default:
		return nil, ErrUnsupportedBitDepth
	}

	format := dec.Format()
	if format == nil || format.NumChannels < 1 {
		return nil, ErrNotAiffFile
	}

	return pcm.NewIntSource(dec, format, depth), nil
}
