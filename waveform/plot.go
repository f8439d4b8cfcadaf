// SPDX-License-Identifier: EPL-2.0

package waveform

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ik5/regionedit/audio"
)

// PlotConfig holds the configuration for plotting a waveform.
type PlotConfig struct {
	width           int
	height          int
	backgroundColor color.Color
	foregroundColor color.Color
	regionColor     color.Color
	title           string
	start           float64
	end             float64 // 0 = end of the buffer
	hasRegion       bool
	regionStart     float64
	regionEnd       float64
}

// Option is the type all plot options need to adhere to.
type Option func(*PlotConfig)

// OptionSetWidth sets the width of the plot in pixels.
func OptionSetWidth(width int) Option {
	return func(c *PlotConfig) {
		if width > 0 {
			c.width = width
		}
	}
}

// OptionSetHeight sets the height of the plot in pixels.
func OptionSetHeight(height int) Option {
	return func(c *PlotConfig) {
		if height > 0 {
			c.height = height
		}
	}
}

// OptionSetBackgroundColor takes a hex color, "#RGB" or "#RRGGBB".
func OptionSetBackgroundColor(hex string) Option {
	return func(c *PlotConfig) {
		c.backgroundColor = hexToColor(hex, 255)
	}
}

// OptionSetForegroundColor sets the waveform color.
func OptionSetForegroundColor(hex string) Option {
	return func(c *PlotConfig) {
		c.foregroundColor = hexToColor(hex, 255)
	}
}

// OptionSetRegionColor sets the color of the region band. It is drawn
// translucent.
func OptionSetRegionColor(hex string) Option {
	return func(c *PlotConfig) {
		c.regionColor = hexToColor(hex, 64)
	}
}

func OptionSetTitle(title string) Option {
	return func(c *PlotConfig) {
		c.title = title
	}
}

// OptionSetView limits the plot to [start,end) seconds.
func OptionSetView(start, end float64) Option {
	return func(c *PlotConfig) {
		c.start, c.end = start, end
	}
}

// OptionSetRegion highlights [start,end) seconds.
func OptionSetRegion(start, end float64) Option {
	return func(c *PlotConfig) {
		c.hasRegion = true
		c.regionStart, c.regionEnd = start, end
	}
}

// hexToColor parses "#RGB", "#RRGGBB" or the same without "#". Anything
// else is black.
func hexToColor(hex string, alpha uint8) color.Color {
	hex = strings.TrimPrefix(hex, "#")

	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.Black
	}

	var r, g, b uint8
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.Black
	}
	return color.NRGBA{R: r, G: g, B: b, A: alpha}
}

func defaultConfig() PlotConfig {
	return PlotConfig{
		width:           800,
		height:          400,
		backgroundColor: color.White,
		foregroundColor: color.NRGBA{R: 0, G: 100, B: 200, A: 255},
		regionColor:     color.NRGBA{R: 0, G: 123, B: 255, A: 64},
	}
}

// SavePlot draws buf to filename. The format follows the extension: .png,
// .jpg or .jpeg.
func SavePlot(buf *audio.Buffer, filename string, opts ...Option) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".png" && ext != ".jpg" && ext != ".jpeg" {
		return fmt.Errorf("unsupported file format: %s (supported: .png, .jpg, .jpeg)", ext)
	}

	p, cfg, err := newPlot(buf, opts...)
	if err != nil {
		return err
	}

	// 96 DPI.
	width := vg.Length(cfg.width) * vg.Inch / 96
	height := vg.Length(cfg.height) * vg.Inch / 96

	if err := p.Save(width, height, filename); err != nil {
		return fmt.Errorf("saving plot: %w", err)
	}
	return nil
}

func newPlot(buf *audio.Buffer, opts ...Option) (*plot.Plot, PlotConfig, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if buf == nil {
		return nil, cfg, ErrNoBuffer
	}

	total := buf.Duration()
	if cfg.start < 0 {
		cfg.start = 0
	}
	if cfg.end <= 0 || cfg.end > total {
		cfg.end = total
	}
	if cfg.start >= cfg.end {
		return nil, cfg, ErrInvalidRange
	}

	peaks, err := Peaks(buf, cfg.start, cfg.end, cfg.width)
	if err != nil {
		return nil, cfg, fmt.Errorf("computing peaks: %w", err)
	}

	p := plot.New()
	p.BackgroundColor = cfg.backgroundColor
	p.Title.Text = cfg.title
	p.X.Label.Text = "Time (seconds)"
	p.Y.Label.Text = "Amplitude"
	p.X.Min, p.X.Max = cfg.start, cfg.end
	p.Y.Min, p.Y.Max = -1, 1

	if cfg.hasRegion {
		band, err := regionBand(cfg)
		if err != nil {
			return nil, cfg, err
		}
		if band != nil {
			p.Add(band)
		}
	}

	poly, err := plotter.NewPolygon(outline(peaks, cfg.start, cfg.end))
	if err != nil {
		return nil, cfg, fmt.Errorf("creating polygon: %w", err)
	}
	poly.Color = cfg.foregroundColor
	poly.LineStyle.Width = vg.Points(0)
	p.Add(poly)

	return p, cfg, nil
}

// outline traces the max of every column left to right, then the min
// right to left, giving a closed shape.
func outline(peaks []Peak, start, end float64) plotter.XYs {
	step := (end - start) / float64(len(peaks))
	points := make(plotter.XYs, 0, 2*len(peaks))

	for i, pk := range peaks {
		points = append(points, plotter.XY{X: start + float64(i)*step, Y: float64(pk.Max)})
	}
	for i := len(peaks) - 1; i >= 0; i-- {
		points = append(points, plotter.XY{X: start + float64(i)*step, Y: float64(peaks[i].Min)})
	}
	return points
}

// regionBand returns a rectangle over the visible part of the region, or
// nil when the region is outside the view.
func regionBand(cfg PlotConfig) (*plotter.Polygon, error) {
	lo := max(cfg.regionStart, cfg.start)
	hi := min(cfg.regionEnd, cfg.end)
	if hi <= lo {
		return nil, nil
	}

	band, err := plotter.NewPolygon(plotter.XYs{
		{X: lo, Y: -1}, {X: hi, Y: -1}, {X: hi, Y: 1}, {X: lo, Y: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("creating region band: %w", err)
	}
	band.Color = cfg.regionColor
	band.LineStyle.Width = vg.Points(0)
	return band, nil
}
