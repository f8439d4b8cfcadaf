// SPDX-License-Identifier: EPL-2.0

package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/ik5/regionedit/timecode"
	"github.com/ik5/regionedit/waveform"
)

// segmentsPerChar is the vertical resolution of one terminal cell.
const segmentsPerChar = 8

var (
	// Block characters growing down from the top of a cell, by extent.
	upperBlocks = [segmentsPerChar + 1]string{" ", "▔", "🮂", "🮃", "▀", "🮄", "🮅", "🮆", "█"}
	// Block characters growing up from the bottom of a cell, by extent.
	lowerBlocks = [segmentsPerChar + 1]string{" ", "▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}
)

// column marks what a waveform column overlaps.
type column int

const (
	columnPlain column = iota
	columnRegion
	columnPlayhead
	columnCursor
)

// layout describes which time span the waveform shows and what to mark.
type layout struct {
	width, height int
	start, end    float64

	hasRegion     bool
	regionStart   float64
	regionEnd     float64
	playhead      float64
	cursor        float64
	showPlayhead  bool
	regionStyle   lipgloss.Style
	playheadStyle lipgloss.Style
	cursorStyle   lipgloss.Style
	waveStyle     lipgloss.Style
}

// columnAt maps a time to a column, or -1 when outside the view.
func (l layout) columnAt(t float64) int {
	span := l.end - l.start
	if span <= 0 || t < l.start || t > l.end {
		return -1
	}
	return min(int((t-l.start)/span*float64(l.width)), l.width-1)
}

// kinds classifies every column.
func (l layout) kinds() []column {
	kinds := make([]column, l.width)
	if l.hasRegion {
		span := l.end - l.start
		for x := range kinds {
			t0 := l.start + float64(x)/float64(l.width)*span
			t1 := l.start + float64(x+1)/float64(l.width)*span
			if t1 > l.regionStart && t0 < l.regionEnd {
				kinds[x] = columnRegion
			}
		}
	}
	if l.showPlayhead {
		if x := l.columnAt(l.playhead); x >= 0 {
			kinds[x] = columnPlayhead
		}
	}
	if x := l.columnAt(l.cursor); x >= 0 {
		kinds[x] = columnCursor
	}
	return kinds
}

// grid fills a virtual grid of height*segmentsPerChar rows with the
// min/max extent of every peak. Row 0 is the top.
func grid(peaks []waveform.Peak, width, height int) [][]bool {
	virtual := height * segmentsPerChar
	g := make([][]bool, virtual)
	for i := range g {
		g[i] = make([]bool, width)
	}

	var maxAbs float32
	for _, p := range peaks {
		maxAbs = max(maxAbs, float32(math.Abs(float64(p.Min))), float32(math.Abs(float64(p.Max))))
	}
	if maxAbs == 0 {
		maxAbs = 1
	}

	center := virtual / 2
	for x, p := range peaks {
		if x >= width {
			break
		}
		top := lo.Clamp(center-int(p.Max/maxAbs*float32(center)), 0, virtual-1)
		bottom := lo.Clamp(center-int(p.Min/maxAbs*float32(center)), 0, virtual-1)
		if top > bottom {
			top, bottom = bottom, top
		}
		for y := top; y <= bottom; y++ {
			g[y][x] = true
		}
	}
	return g
}

// cell returns the block character for row y of column x. Rows above the
// center hang from the top of the cell, rows below grow from the bottom.
func cell(g [][]bool, x, y, height int) string {
	base := y * segmentsPerChar

	if y < height/2 {
		extent := 0
		for i := segmentsPerChar - 1; i >= 0; i-- {
			if g[base+i][x] {
				extent = i + 1
				break
			}
		}
		return upperBlocks[extent]
	}

	for i := range segmentsPerChar {
		if g[base+i][x] {
			return lowerBlocks[segmentsPerChar-i]
		}
	}
	return lowerBlocks[0]
}

// renderWaveform draws peaks as block characters, styling the region,
// play head and cursor columns, followed by a time ruler.
func renderWaveform(peaks []waveform.Peak, l layout) string {
	if l.width <= 0 || l.height <= 0 {
		return ""
	}

	g := grid(peaks, l.width, l.height)
	kinds := l.kinds()

	var sb strings.Builder
	for y := range l.height {
		for x := range l.width {
			ch := cell(g, x, y, l.height)
			switch kinds[x] {
			case columnCursor:
				sb.WriteString(l.cursorStyle.Render(lo.Ternary(ch == " ", "│", ch)))
			case columnPlayhead:
				sb.WriteString(l.playheadStyle.Render(lo.Ternary(ch == " ", "┊", ch)))
			case columnRegion:
				sb.WriteString(l.regionStyle.Render(ch))
			default:
				sb.WriteString(l.waveStyle.Render(ch))
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString(ruler(l.width, l.start, l.end))
	return sb.String()
}

// ruler returns a tick line and a line of hh:mm:ss labels for [start,end].
func ruler(width int, start, end float64) string {
	if width <= 0 {
		return ""
	}

	ticks := []rune(strings.Repeat(" ", width))
	labels := []rune(strings.Repeat(" ", width))

	const labelWidth = len("00:00:00")
	count := max(width/(labelWidth+4), 1)
	span := end - start
	next := 0

	for i := 0; i <= count; i++ {
		pos := lo.Clamp(int(float64(width-1)*float64(i)/float64(count)), 0, width-1)
		ticks[pos] = '|'

		label := timecode.Format(start + span*float64(i)/float64(count))
		from := lo.Clamp(pos-len(label)/2, 0, max(width-len(label), 0))
		if from < next {
			continue
		}
		for j, ch := range label {
			if from+j < width {
				labels[from+j] = ch
			}
		}
		next = from + len(label) + 1
	}

	return string(ticks) + "\n" + string(labels) + "\n"
}
