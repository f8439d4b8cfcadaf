// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	inputs := map[string][]byte{
		"empty":     {},
		"text":      []byte("This is not AIFF data"),
		"riff":      []byte("RIFF\x24\x00\x00\x00WAVEfmt "),
		"form only": []byte("FORM\x00\x00\x00\x04AIFF"),
	}

	for name, data := range inputs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(data))
			if !errors.Is(err, ErrNotAiffFile) {
				t.Errorf("Decode() error = %v, want ErrNotAiffFile", err)
			}
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestDecoder_ReadFailure(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(failingReader{})
	if !errors.Is(err, io.ErrClosedPipe) {
		t.Errorf("Decode() error = %v, want io.ErrClosedPipe", err)
	}
}
