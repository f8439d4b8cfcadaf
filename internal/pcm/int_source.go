// SPDX-License-Identifier: EPL-2.0

// Package pcm adapts go-audio integer PCM decoders to audio.Source.
package pcm

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/regionedit/audio"
	"github.com/ik5/regionedit/utils"
)

// IntReader is the subset of the go-audio wav and aiff decoders used here.
type IntReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// IntSource converts interleaved integer PCM from an IntReader to float32.
type IntSource struct {
	dec      IntReader
	format   *goaudio.Format
	bitDepth int
	intBuf   *goaudio.IntBuffer
	done     bool
}

var _ audio.Source = (*IntSource)(nil)

func NewIntSource(dec IntReader, format *goaudio.Format, bitDepth int) *IntSource {
	return &IntSource{
		dec:      dec,
		format:   format,
		bitDepth: bitDepth,
	}
}

func (s *IntSource) SampleRate() int { return s.format.SampleRate }
func (s *IntSource) Channels() int   { return s.format.NumChannels }
func (s *IntSource) Close() error    { return nil }

func (s *IntSource) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if s.done {
		return 0, io.EOF
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:           make([]int, len(dst)),
			Format:         s.format,
			SourceBitDepth: s.bitDepth,
		}
	}
	s.intBuf.Data = s.intBuf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.intBuf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return 0, fmt.Errorf("reading PCM: %w", err)
	}

	for i, v := range s.intBuf.Data[:n] {
		dst[i] = utils.IntToFloat32(v, s.bitDepth)
	}

	// go-audio signals the end with a short read rather than io.EOF.
	if n < len(dst) || err != nil {
		s.done = true
		return n, io.EOF
	}
	return n, nil
}

// ReadSeeker returns r as an io.ReadSeeker, buffering it in memory when r
// cannot seek. The go-audio decoders need to seek between chunks.
func ReadSeeker(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffering input: %w", err)
	}
	return bytes.NewReader(data), nil
}
