// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ik5/regionedit"
	"github.com/ik5/regionedit/timecode"
)

func (a *app) trimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trim <in> <out.wav>",
		Short: "Keep the audio between two times and write it as WAV",
		Example: `  regionedit trim talk.mp3 intro.wav --start 00:00:05 --end 00:01:30`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := timeFlag(cmd.Flags(), "start", 0)
			if err != nil {
				return err
			}
			end, err := timeFlag(cmd.Flags(), "end", 0)
			if err != nil {
				return err
			}
			return a.runTrim(args[0], args[1], start, end)
		},
	}

	cmd.Flags().String("start", "", "region start, hh:mm:ss")
	cmd.Flags().String("end", "", "region end, hh:mm:ss")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func (a *app) runTrim(in, out string, start, end float64) error {
	if err := regionedit.TrimFile(in, out, start, end); err != nil {
		return err
	}

	a.log.Info("trimmed",
		zap.String("in", in),
		zap.String("out", out),
		zap.Float64("start", start),
		zap.Float64("end", end),
	)
	fmt.Fprintf(a.stdout, "Wrote %s (%s - %s)\n", out, timecode.Format(start), timecode.Format(end))
	return nil
}
