// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/regionedit/audio"
	"github.com/ik5/regionedit/utils"
)

// go-mp3 output layout.
const (
	outputChannels = 2
	bytesPerSample = 2
)

// pcmReader is the subset of gomp3.Decoder used by source.
type pcmReader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec  pcmReader
	buf  []byte
	tail []byte // bytes of a frame split across two reads
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return outputChannels }
func (s *source) Close() error    { return nil }

// ReadSamples returns whole frames only; dst is truncated to a multiple of
// the channel count.
func (s *source) ReadSamples(dst []float32) (int, error) {
	const frameBytes = outputChannels * bytesPerSample

	usable := len(dst) - len(dst)%outputChannels
	if usable == 0 {
		return 0, nil
	}

	want := usable * bytesPerSample
	if cap(s.buf) < want {
		s.buf = make([]byte, want)
	}
	s.buf = s.buf[:want]

	carried := copy(s.buf, s.tail)
	s.tail = s.tail[:0]

	n, err := s.dec.Read(s.buf[carried:])
	n += carried
	if err != nil && err != io.EOF {
		return 0, fmt.Errorf("%w", err)
	}

	whole := n - n%frameBytes
	samples := whole / bytesPerSample
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(s.buf[i*bytesPerSample:]))
		dst[i] = utils.IntToFloat32(int(v), 16)
	}
	s.tail = append(s.tail, s.buf[whole:n]...)

	return samples, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &source{
		dec: dec,
		buf: make([]byte, 8192),
	}, nil
}
