// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ik5/regionedit"
	"github.com/ik5/regionedit/audio"
)

func (a *app) convertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "convert <in> <out.wav>",
		Short:   "Decode any supported file and write it as 16-bit WAV",
		Example: `  regionedit convert call.ogg call.wav --rate 8000 --mono`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rate, _ := cmd.Flags().GetInt("rate")
			mono, _ := cmd.Flags().GetBool("mono")
			return a.runConvert(args[0], args[1], rate, mono)
		},
	}

	cmd.Flags().Int("rate", 0, "output sample rate, 0 keeps the input's")
	cmd.Flags().Bool("mono", false, "mix all channels down to one")
	return cmd
}

func (a *app) runConvert(in, out string, rate int, mono bool) error {
	if rate < 0 {
		return fmt.Errorf("--rate: %w", audio.ErrInvalidSampleRate)
	}

	buf, err := regionedit.Open(in, regionedit.WithSampleRate(rate))
	if err != nil {
		return err
	}

	if mono && buf.NumChannels() > 1 {
		if buf, err = audio.ReadAll(audio.NewMonoMixer(buf.Source())); err != nil {
			return fmt.Errorf("mixing %s: %w", in, err)
		}
	}

	if err := regionedit.WriteWAV(out, buf); err != nil {
		return err
	}

	a.log.Info("converted",
		zap.String("in", in),
		zap.String("out", out),
		zap.Int("sample_rate", buf.SampleRate()),
		zap.Int("channels", buf.NumChannels()),
	)
	fmt.Fprintf(a.stdout, "Wrote %s (%d Hz, %d channels)\n", out, buf.SampleRate(), buf.NumChannels())
	return nil
}
