// SPDX-License-Identifier: EPL-2.0

package beepengine

import (
	"fmt"

	"github.com/gopxl/beep/v2"

	"github.com/ik5/regionedit/audio"
)

// bufferStreamer exposes an audio.Buffer as a beep.StreamSeeker. Mono is
// sent to both speakers. With more than two channels only the first two
// are played.
type bufferStreamer struct {
	left, right []float32
	pos         int
}

var _ beep.StreamSeeker = (*bufferStreamer)(nil)

func newBufferStreamer(buf *audio.Buffer) *bufferStreamer {
	left, _ := buf.Channel(0)
	right := left
	if buf.NumChannels() > 1 {
		right, _ = buf.Channel(1)
	}
	return &bufferStreamer{left: left, right: right}
}

func (s *bufferStreamer) Stream(samples [][2]float64) (int, bool) {
	if s.pos >= len(s.left) {
		return 0, false
	}

	n := min(len(samples), len(s.left)-s.pos)
	for i := range n {
		samples[i][0] = float64(s.left[s.pos+i])
		samples[i][1] = float64(s.right[s.pos+i])
	}
	s.pos += n

	return n, true
}

func (s *bufferStreamer) Err() error    { return nil }
func (s *bufferStreamer) Len() int      { return len(s.left) }
func (s *bufferStreamer) Position() int { return s.pos }

func (s *bufferStreamer) Seek(p int) error {
	if p < 0 || p > len(s.left) {
		return fmt.Errorf("seek position %d out of range [0, %d]", p, len(s.left))
	}
	s.pos = p
	return nil
}
