// SPDX-License-Identifier: EPL-2.0

// Package tui is the terminal front end of the region editor.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/ik5/regionedit/editor"
	"github.com/ik5/regionedit/engine"
	"github.com/ik5/regionedit/region"
	"github.com/ik5/regionedit/timecode"
	"github.com/ik5/regionedit/waveform"
)

// InvalidFormatMessage is shown under the time fields while either one is
// malformed.
const InvalidFormatMessage = "Invalid time format. Use hh:mm:ss."

const (
	tickInterval = 100 * time.Millisecond
	eventBuffer  = 64

	// nudgeStep is how far +/- move the focused bound, in seconds.
	nudgeStep = 1.0
	// minView is the narrowest zoom, in seconds.
	minView = 0.05

	// chromeLines is the number of lines around the waveform.
	chromeLines = 9
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("250"))
	waveStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	regionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Background(lipgloss.Color("236"))
	playheadStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	focusedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	infoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
)

type focus int

const (
	focusNone focus = iota
	focusStart
	focusEnd
)

type eventMsg struct{ event engine.Event }

type tickMsg time.Time

// Model is the bubbletea model of the editor screen.
type Model struct {
	ed     *editor.Editor
	title  string
	log    *zap.Logger
	keys   keyMap
	help   help.Model
	events chan engine.Event
	unsub  func()

	startInput textinput.Model
	endInput   textinput.Model
	focus      focus

	width, height      int
	viewStart, viewEnd float64
	cursor             float64
	mark               float64
	marked             bool

	state     editor.State
	position  float64
	peaks     []waveform.Peak
	status    string
	statusErr bool
}

type Option func(*Model)

func WithLogger(l *zap.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.log = l
		}
	}
}

func newField() textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "hh:mm:ss"
	ti.CharLimit = len(editor.DefaultFieldText)
	ti.Width = len(editor.DefaultFieldText)
	ti.SetValue(editor.DefaultFieldText)
	return ti
}

// New subscribes to ed. Call Close when the program ends.
func New(ed *editor.Editor, title string, opts ...Option) Model {
	events := make(chan engine.Event, eventBuffer)
	unsub := ed.Subscribe(engine.ListenerFunc(func(ev engine.Event) {
		// The model re-reads editor state on every event, so a dropped
		// event only delays a redraw.
		select {
		case events <- ev:
		default:
		}
	}))

	m := Model{
		ed:         ed,
		title:      title,
		log:        zap.NewNop(),
		keys:       defaultKeyMap(),
		help:       help.New(),
		events:     events,
		unsub:      unsub,
		startInput: newField(),
		endInput:   newField(),
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.refresh()
	if m.state.Loaded {
		m.viewEnd = m.state.Duration
	}
	return m
}

// Close detaches the model from the editor.
func (m Model) Close() {
	m.unsub()
}

func waitForEvent(events <-chan engine.Event) tea.Cmd {
	return func() tea.Msg {
		return eventMsg{<-events}
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForEvent(m.events), tick())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.refreshPeaks()
		return m, nil

	case eventMsg:
		m.handleEvent(msg.event)
		return m, waitForEvent(m.events)

	case tickMsg:
		m.refresh()
		return m, tick()

	case tea.KeyMsg:
		if m.focus != focusNone {
			return m.updateField(msg)
		}
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m *Model) handleEvent(ev engine.Event) {
	switch ev := ev.(type) {
	case engine.Ready:
		m.viewStart, m.viewEnd = 0, ev.Duration
		m.cursor = lo.Clamp(m.cursor, 0, ev.Duration)
		m.marked = false
		m.log.Debug("view reset", zap.Float64("duration", ev.Duration))
	case engine.PlaybackFinished:
		m.setInfo("Playback finished.")
	}
	m.refresh()
	m.refreshPeaks()
}

// refresh re-reads the editor and enables the actions it allows.
func (m *Model) refresh() {
	m.state = m.ed.State()
	m.position = m.ed.Position()

	m.keys.AddRegion.SetEnabled(m.state.Loaded && !m.state.HasRegion)
	m.keys.Trim.SetEnabled(m.state.Loaded && m.state.HasRegion)
	m.keys.Clear.SetEnabled(m.state.Loaded && m.state.HasRegion)
	m.keys.Apply.SetEnabled(m.state.Loaded && m.state.FieldsErr == nil)
	m.keys.Reset.SetEnabled(m.state.HasRegion)
}

func (m *Model) waveHeight() int {
	return max(m.height-chromeLines, 2)
}

func (m *Model) refreshPeaks() {
	m.peaks = nil

	buf := m.ed.Buffer()
	if buf == nil || m.width <= 0 || m.viewEnd <= m.viewStart {
		return
	}

	peaks, err := waveform.Peaks(buf, m.viewStart, m.viewEnd, m.width)
	if err != nil {
		m.log.Warn("computing peaks", zap.Error(err))
		return
	}
	m.peaks = peaks
}

func (m *Model) setInfo(s string) {
	m.status, m.statusErr = s, false
}

// alert reports err on the status line. Actions that are unavailable
// while loading or without a region are ignored silently.
func (m *Model) alert(err error) {
	switch {
	case err == nil:
		return
	case errors.Is(err, editor.ErrEngineUnavailable), errors.Is(err, editor.ErrNoActiveRegion):
		m.log.Debug("action unavailable", zap.Error(err))
		return
	}

	var rangeErr *region.RangeError
	if errors.As(err, &rangeErr) {
		m.status = rangeErr.Error()
	} else {
		m.status = err.Error()
	}
	m.statusErr = true
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Play):
		playing, err := m.ed.TogglePlayback()
		m.alert(err)
		if err == nil {
			m.setInfo(lo.Ternary(playing, "Playing.", "Paused."))
		}

	case key.Matches(msg, m.keys.AddRegion):
		r, err := m.ed.AddRegion()
		m.alert(err)
		if err == nil {
			m.setInfo(fmt.Sprintf("Region added at %s - %s.", timecode.Format(r.Start), timecode.Format(r.End)))
		}

	case key.Matches(msg, m.keys.Clear):
		m.alert(m.ed.ClearRegion())

	case key.Matches(msg, m.keys.Trim):
		r := m.state.Region
		if err := m.ed.Trim(); err != nil {
			m.alert(err)
		} else {
			m.setInfo(fmt.Sprintf("Trimmed to %s - %s.", timecode.Format(r.Start), timecode.Format(r.End)))
		}

	case key.Matches(msg, m.keys.Reset):
		m.ed.ResetFields()
		m.syncInputs()

	case key.Matches(msg, m.keys.Focus):
		return m.setFocus(lo.Ternary(msg.String() == "shift+tab", focusEnd, focusStart))

	case key.Matches(msg, m.keys.MarkStart):
		m.mark, m.marked = m.cursor, true
		m.setInfo("Start marked at " + timecode.Format(m.cursor) + ".")

	case key.Matches(msg, m.keys.MarkEnd):
		m.drawToCursor()

	case key.Matches(msg, m.keys.Seek):
		m.alert(m.ed.Seek(m.cursor))

	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-0.01)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(0.01)
	case key.Matches(msg, m.keys.FastLeft):
		m.moveCursor(-0.1)
	case key.Matches(msg, m.keys.FastRight):
		m.moveCursor(0.1)
	case key.Matches(msg, m.keys.ZoomIn):
		m.zoom(0.8)
	case key.Matches(msg, m.keys.ZoomOut):
		m.zoom(1.25)

	default:
		return m, nil
	}

	m.refresh()
	return m, nil
}

func (m Model) updateField(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit

	case msg.Type == tea.KeyEsc:
		return m.setFocus(focusNone)

	case key.Matches(msg, m.keys.Focus):
		next := focusStart
		if m.focus == focusStart {
			next = focusEnd
		}
		return m.setFocus(next)

	case msg.Type == tea.KeyEnter:
		// Submitting is blocked while a field is malformed.
		if key.Matches(msg, m.keys.Apply) {
			r, err := m.ed.ApplyFields()
			m.alert(err)
			if err == nil {
				m.setInfo(fmt.Sprintf("Region set to %s - %s.", timecode.Format(r.Start), timecode.Format(r.End)))
			}
			m.refresh()
			m.refreshPeaks()
		}
		return m, nil

	case key.Matches(msg, m.keys.Nudge):
		m.nudge(nudgeStep)
		return m, nil

	case key.Matches(msg, m.keys.Unnudge):
		m.nudge(-nudgeStep)
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == focusStart {
		m.startInput, cmd = m.startInput.Update(msg)
		m.ed.SetStartText(m.startInput.Value())
	} else {
		m.endInput, cmd = m.endInput.Update(msg)
		m.ed.SetEndText(m.endInput.Value())
	}
	m.refresh()
	return m, cmd
}

func (m Model) setFocus(f focus) (tea.Model, tea.Cmd) {
	m.focus = f
	m.startInput.Blur()
	m.endInput.Blur()

	var cmd tea.Cmd
	switch f {
	case focusStart:
		cmd = m.startInput.Focus()
	case focusEnd:
		cmd = m.endInput.Focus()
	}
	return m, cmd
}

// syncInputs copies the editor's field texts into the inputs.
func (m *Model) syncInputs() {
	st := m.ed.State()
	m.startInput.SetValue(st.StartText)
	m.endInput.SetValue(st.EndText)
}

// nudge moves the focused bound of the active region by delta seconds.
func (m *Model) nudge(delta float64) {
	st := m.ed.State()
	if !st.HasRegion {
		return
	}

	var err error
	if m.focus == focusStart {
		_, err = m.ed.SetStart(st.Region.Start + delta)
	} else {
		_, err = m.ed.SetEnd(st.Region.End + delta)
	}
	m.alert(err)
	if err == nil {
		m.ed.ResetFields()
		m.syncInputs()
	}
	m.refresh()
}

// drawToCursor draws a region between the mark, or the start of the file
// when nothing is marked, and the cursor.
func (m *Model) drawToCursor() {
	from := lo.Ternary(m.marked, m.mark, 0)
	start, end := min(from, m.cursor), max(from, m.cursor)

	r, err := m.ed.DrawRegion(start, end)
	m.alert(err)
	if err == nil {
		m.marked = false
		m.setInfo(fmt.Sprintf("Region drawn at %s - %s.", timecode.Format(r.Start), timecode.Format(r.End)))
	}
}

// moveCursor shifts the cursor by frac of the visible span and scrolls the
// view to keep it visible.
func (m *Model) moveCursor(frac float64) {
	duration := m.state.Duration
	if duration <= 0 {
		return
	}

	span := m.viewEnd - m.viewStart
	m.cursor = lo.Clamp(m.cursor+span*frac, 0, duration)

	switch {
	case m.cursor < m.viewStart:
		m.viewStart, m.viewEnd = m.cursor, m.cursor+span
	case m.cursor > m.viewEnd:
		m.viewStart, m.viewEnd = m.cursor-span, m.cursor
	default:
		return
	}
	m.refreshPeaks()
}

// zoom scales the visible span around the cursor by factor.
func (m *Model) zoom(factor float64) {
	duration := m.state.Duration
	if duration <= 0 {
		return
	}

	span := lo.Clamp((m.viewEnd-m.viewStart)*factor, min(minView, duration), duration)
	start := lo.Clamp(m.cursor-span/2, 0, duration-span)
	m.viewStart, m.viewEnd = start, start+span
	m.refreshPeaks()
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("regionedit · "+m.title) + "\n")

	if !m.state.Loaded {
		sb.WriteString(labelStyle.Render("Loading audio...") + "\n")
	}

	if m.width > 0 && m.peaks != nil {
		sb.WriteString(renderWaveform(m.peaks, layout{
			width:         m.width,
			height:        m.waveHeight(),
			start:         m.viewStart,
			end:           m.viewEnd,
			hasRegion:     m.state.HasRegion,
			regionStart:   m.state.Region.Start,
			regionEnd:     m.state.Region.End,
			playhead:      m.position,
			cursor:        m.cursor,
			showPlayhead:  m.state.Loaded,
			regionStyle:   regionStyle,
			playheadStyle: playheadStyle,
			cursorStyle:   cursorStyle,
			waveStyle:     waveStyle,
		}))
	}

	sb.WriteString(m.infoLine() + "\n")
	sb.WriteString(m.fieldsLine() + "\n")

	if m.state.FieldsErr != nil {
		sb.WriteString(errorStyle.Render(InvalidFormatMessage))
	}
	sb.WriteString("\n")

	if m.status != "" {
		sb.WriteString(lo.Ternary(m.statusErr, errorStyle, infoStyle).Render(m.status))
	}
	sb.WriteString("\n")

	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

func (m Model) infoLine() string {
	play := lo.Ternary(m.state.Playing, "▶", "⏸")
	parts := []string{
		fmt.Sprintf("%s %s / %s", play, timecode.Format(m.position), timecode.Format(m.state.Duration)),
		"cursor " + timecode.Format(m.cursor),
	}
	if m.state.HasRegion {
		parts = append(parts, fmt.Sprintf("region %s - %s",
			timecode.Format(m.state.Region.Start), timecode.Format(m.state.Region.End)))
	} else {
		parts = append(parts, "no region")
	}
	if m.marked {
		parts = append(parts, "mark "+timecode.Format(m.mark))
	}
	return labelStyle.Render(strings.Join(parts, "   "))
}

func (m Model) fieldsLine() string {
	label := func(text string, f focus) string {
		return lo.Ternary(m.focus == f, focusedStyle, labelStyle).Render(text)
	}
	return label("Start ", focusStart) + m.startInput.View() + "   " + label("End ", focusEnd) + m.endInput.View()
}

// Run shows the editor until the user quits.
func Run(ed *editor.Editor, title string, log *zap.Logger, opts ...tea.ProgramOption) error {
	m := New(ed, title, WithLogger(log))
	defer m.Close()

	p := tea.NewProgram(m, append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running terminal UI: %w", err)
	}
	return nil
}
