// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/ik5/regionedit"
	"github.com/ik5/regionedit/timecode"
)

func (a *app) infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Show the format, length and channels of an audio file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.runInfo(args[0])
		},
	}
}

func (a *app) runInfo(path string) error {
	buf, err := regionedit.Open(path, regionedit.WithSampleRate(a.cfg.SampleRate))
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(a.stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Property", "Value"})
	t.AppendRows([]table.Row{
		{"File", filepath.Base(path)},
		{"Format", strings.ToUpper(strings.TrimPrefix(filepath.Ext(path), "."))},
		{"Sample rate", strconv.Itoa(buf.SampleRate()) + " Hz"},
		{"Channels", buf.NumChannels()},
		{"Frames", buf.Len()},
		{"Duration", timecode.Format(buf.Duration()) + " (" + strconv.FormatFloat(buf.Duration(), 'f', 3, 64) + " s)"},
	})
	t.Render()
	return nil
}
