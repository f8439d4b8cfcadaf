// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ik5/regionedit"
	"github.com/ik5/regionedit/region"
	"github.com/ik5/regionedit/waveform"
)

func (a *app) plotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot <in> <out.png|out.jpg>",
		Short: "Draw the waveform to an image, with an optional region",
		Long: `Draw the waveform to an image.

Without --start and --end the image shows the middle-half region the editor
starts with. --view-start and --view-end zoom into part of the file.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPlot(cmd, args[0], args[1])
		},
	}

	flags := cmd.Flags()
	flags.String("start", "", "region start, hh:mm:ss")
	flags.String("end", "", "region end, hh:mm:ss")
	flags.String("view-start", "", "first second shown, hh:mm:ss")
	flags.String("view-end", "", "last second shown, hh:mm:ss")
	flags.Int("width", 0, "image width in pixels (env PLOT_WIDTH)")
	flags.Int("height", 0, "image height in pixels (env PLOT_HEIGHT)")
	flags.String("title", "", "plot title (default the file name)")
	flags.Bool("no-region", false, "do not shade a region")
	return cmd
}

func (a *app) runPlot(cmd *cobra.Command, in, out string) error {
	flags := cmd.Flags()

	buf, err := regionedit.Open(in)
	if err != nil {
		return err
	}
	duration := buf.Duration()

	viewStart, err := timeFlag(flags, "view-start", 0)
	if err != nil {
		return err
	}
	viewEnd, err := timeFlag(flags, "view-end", duration)
	if err != nil {
		return err
	}

	title, _ := flags.GetString("title")
	if title == "" {
		title = filepath.Base(in)
	}

	opts := []waveform.Option{
		waveform.OptionSetWidth(a.cfg.PlotWidth),
		waveform.OptionSetHeight(a.cfg.PlotHeight),
		waveform.OptionSetTitle(title),
		waveform.OptionSetView(viewStart, viewEnd),
	}

	if noRegion, _ := flags.GetBool("no-region"); !noRegion {
		r, err := plotRegion(flags.Changed("start") || flags.Changed("end"), duration, func() (float64, float64, error) {
			start, err := timeFlag(flags, "start", 0)
			if err != nil {
				return 0, 0, err
			}
			end, err := timeFlag(flags, "end", duration)
			return start, end, err
		})
		if err != nil {
			return err
		}
		opts = append(opts, waveform.OptionSetRegion(r.Start, r.End))
	}

	if err := waveform.SavePlot(buf, out, opts...); err != nil {
		return fmt.Errorf("plotting %s: %w", in, err)
	}

	a.log.Info("plotted", zap.String("in", in), zap.String("out", out))
	fmt.Fprintf(a.stdout, "Wrote %s\n", out)
	return nil
}

// plotRegion returns the region to shade: the one given by bounds when
// custom is set, otherwise the editor's initial middle-half region.
func plotRegion(custom bool, duration float64, bounds func() (float64, float64, error)) (region.Region, error) {
	m := region.NewModel(region.PolicyReplace)
	r, err := m.Create(duration)
	if err != nil || !custom {
		return r, err
	}

	start, end, err := bounds()
	if err != nil {
		return region.Region{}, err
	}
	return m.Update(start, end)
}
