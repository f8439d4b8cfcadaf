// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ik5/regionedit"
	"github.com/ik5/regionedit/editor"
)

const editCommand = "edit"

func (a *app) editCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   editCommand + " <file>",
		Short: "Open a file in the interactive region editor",
		Long: `Open a file in the interactive region editor.

The editor starts with a region over the middle half of the audio. Play it
with space, move it by typing hh:mm:ss times into the start and end fields,
draw a new one with [ and ], and trim the audio to it with t.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.runEdit(args[0])
		},
	}

	flags := cmd.Flags()
	flags.String("policy", "", "when a second region is drawn: replace or suppress (env REGION_POLICY)")
	flags.Int("sample-rate", 0, "resample on load and play at this rate, 0 keeps the file's (env SAMPLE_RATE)")
	flags.Int("buffer-ms", 0, "speaker buffer in milliseconds (env SPEAKER_BUFFER_MS)")
	return cmd
}

func (a *app) runEdit(path string) (err error) {
	buf, err := regionedit.Open(path, regionedit.WithSampleRate(a.cfg.SampleRate))
	if err != nil {
		return err
	}
	a.log.Info("opened",
		zap.String("file", path),
		zap.Int("sample_rate", buf.SampleRate()),
		zap.Int("channels", buf.NumChannels()),
		zap.Float64("duration", buf.Duration()),
	)

	eng, err := a.newEngine(a.cfg, a.log)
	if err != nil {
		return fmt.Errorf("starting audio: %w", err)
	}

	// Subscribe before loading so Ready is not missed.
	ed, err := editor.New(eng,
		editor.WithPolicy(a.cfg.Policy()),
		editor.WithLogger(a.log),
	)
	if err != nil {
		return errors.Join(err, eng.Close())
	}
	defer func() {
		if cerr := ed.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()

	if err := eng.Load(buf); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}

	return a.runUI(ed, filepath.Base(path), a.log)
}
