// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/regionedit/audio"
)

// oggReader is the subset of oggvorbis.Reader used by source.
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec oggReader
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return s.dec.Channels() }
func (s *source) Close() error    { return nil }

// ReadSamples reads whole frames only; dst is truncated to a multiple of
// the channel count.
func (s *source) ReadSamples(dst []float32) (int, error) {
	channels := s.dec.Channels()
	usable := len(dst) - len(dst)%channels
	if usable == 0 {
		return 0, nil
	}

	// oggvorbis fills interleaved samples and returns the count of samples.
	n, err := s.dec.Read(dst[:usable])
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("%w", err)
	}
	return n, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &source{dec: dec}, nil
}
