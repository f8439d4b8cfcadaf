// SPDX-License-Identifier: EPL-2.0

package regionedit

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ik5/regionedit/audio"
	"github.com/ik5/regionedit/formats/aiff"
	"github.com/ik5/regionedit/formats/mp3"
	"github.com/ik5/regionedit/formats/vorbis"
	"github.com/ik5/regionedit/formats/wav"
	"github.com/ik5/regionedit/region"
	"github.com/ik5/regionedit/trim"
)

// OutputBitDepth is the bit depth of WAV files written by this package.
const OutputBitDepth = 16

// DefaultRegistry returns a registry with every bundled decoder.
func DefaultRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("aif", aiff.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	return r
}

type openOptions struct {
	sampleRate int
	registry   *audio.Registry
}

type OpenOption func(*openOptions)

// WithSampleRate resamples while decoding. 0 keeps the file's rate.
func WithSampleRate(rate int) OpenOption {
	return func(o *openOptions) {
		if rate >= 0 {
			o.sampleRate = rate
		}
	}
}

// WithRegistry decodes with r instead of DefaultRegistry.
func WithRegistry(r *audio.Registry) OpenOption {
	return func(o *openOptions) {
		if r != nil {
			o.registry = r
		}
	}
}

// Open decodes the file at path, choosing the decoder by extension.
func Open(path string, opts ...OpenOption) (*audio.Buffer, error) {
	o := openOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = DefaultRegistry()
	}

	dec, err := o.registry.ForPath(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := Decode(f, dec, o.sampleRate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return buf, nil
}

// Decode reads r with dec into a buffer, resampling to sampleRate unless
// it is 0 or already the source rate.
func Decode(r io.Reader, dec audio.Decoder, sampleRate int) (*audio.Buffer, error) {
	src, err := dec.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding: %w", err)
	}

	if sampleRate > 0 && sampleRate != src.SampleRate() {
		src = audio.NewResampler(src, sampleRate)
	}

	buf, err := audio.ReadAll(src)
	if cerr := src.Close(); cerr != nil {
		err = errors.Join(err, cerr)
	}
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// WriteWAV writes buf to path as a 16-bit WAV.
func WriteWAV(path string, buf *audio.Buffer) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return wav.Encode(f, buf, OutputBitDepth)
}

// TrimFile decodes in, keeps [start,end) seconds and writes the result to
// out as a 16-bit WAV. The range is validated like a region edit.
func TrimFile(in, out string, start, end float64) error {
	buf, err := Open(in)
	if err != nil {
		return err
	}

	m := region.NewModel(region.PolicyReplace)
	if _, err := m.Create(buf.Duration()); err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	r, err := m.Update(start, end)
	if err != nil {
		return err
	}

	trimmed, err := trim.Trim(buf, r)
	if err != nil {
		return err
	}

	if err := WriteWAV(out, trimmed); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	return nil
}
