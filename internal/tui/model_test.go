// SPDX-License-Identifier: EPL-2.0

package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ik5/regionedit/editor"
	"github.com/ik5/regionedit/internal/audiotest"
	"github.com/ik5/regionedit/internal/enginetest"
)

const testRate = 100

// newModel returns a sized model over a fake engine holding seconds of
// audio, after Ready has been delivered.
func newModel(t *testing.T, seconds int) (Model, *enginetest.Fake) {
	t.Helper()

	fake := enginetest.New()
	buf := audiotest.NewBuffer(testRate, 1, seconds*testRate, audiotest.Sine(testRate, 3))
	if err := fake.Load(buf); err != nil {
		t.Fatal(err)
	}

	ed, err := editor.New(fake)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = ed.Close() })

	m := New(ed, "test.wav")
	t.Cleanup(m.Close)

	fake.Ready()
	m = drain(t, m)
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	return m, fake
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()

	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return out
}

// drain feeds every queued editor event to the model.
func drain(t *testing.T, m Model) Model {
	t.Helper()

	for {
		select {
		case ev := <-m.events:
			m = update(t, m, eventMsg{ev})
		default:
			return m
		}
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()

	for _, k := range keys {
		m = update(t, m, k)
	}
	return drain(t, m)
}

// typeField replaces the focused field's text.
func typeField(t *testing.T, m Model, text string) Model {
	t.Helper()

	for range len(editor.DefaultFieldText) {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	for _, r := range text {
		m = update(t, m, keyRunes(string(r)))
	}
	return m
}

func TestReady_ResetsView(t *testing.T) {
	t.Parallel()

	m, _ := newModel(t, 120)

	if !m.state.Loaded || m.state.Duration != 120 {
		t.Fatalf("state = %+v", m.state)
	}
	if m.viewStart != 0 || m.viewEnd != 120 {
		t.Errorf("view = [%v, %v], want [0, 120]", m.viewStart, m.viewEnd)
	}
	if len(m.peaks) != 80 {
		t.Errorf("peaks = %d, want one per column", len(m.peaks))
	}
	if r := m.state.Region; r.Start != 30 || r.End != 90 {
		t.Errorf("region = %+v, want middle half", r)
	}

	view := m.View()
	for _, want := range []string{"test.wav", "00:02:00", "region 00:00:30 - 00:01:30"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestPlayToggle(t *testing.T) {
	t.Parallel()

	m, fake := newModel(t, 10)

	m = press(t, m, keyRunes(" "))
	if !fake.IsPlaying() || !m.state.Playing {
		t.Fatal("space did not start playback")
	}

	m = press(t, m, keyRunes(" "))
	if fake.IsPlaying() || m.state.Playing {
		t.Fatal("space did not pause playback")
	}

	m = press(t, m, keyRunes(" "))
	fake.Finish()
	m = drain(t, m)
	if m.state.Playing {
		t.Error("still playing after finish")
	}
	if m.status != "Playback finished." {
		t.Errorf("status = %q", m.status)
	}
}

func TestFields_InvalidFormat(t *testing.T) {
	t.Parallel()

	m, _ := newModel(t, 120)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != focusStart {
		t.Fatalf("focus = %v, want start", m.focus)
	}

	m = typeField(t, m, "1:00")
	if !strings.Contains(m.View(), InvalidFormatMessage) {
		t.Error("inline message not shown for a malformed field")
	}

	// Enter is blocked while a field is malformed.
	before := m.state.Region
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state.Region != before {
		t.Errorf("region changed to %+v", m.state.Region)
	}

	m = typeField(t, m, "00:01:00")
	if strings.Contains(m.View(), InvalidFormatMessage) {
		t.Error("inline message shown for valid fields")
	}
}

func TestFields_Apply(t *testing.T) {
	t.Parallel()

	m, _ := newModel(t, 120)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeField(t, m, "00:00:10")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != focusEnd {
		t.Fatalf("focus = %v, want end", m.focus)
	}
	m = typeField(t, m, "00:00:40")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if r := m.state.Region; r.Start != 10 || r.End != 40 {
		t.Errorf("region = %+v, want [10, 40]", r)
	}
	if m.statusErr {
		t.Errorf("unexpected alert %q", m.status)
	}
}

func TestFields_OutOfRangeAlert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		start, end string
		want       string
	}{
		{"end past duration", "00:00:00", "00:02:30", "End time must be between 0 and 120 seconds."},
		{"end before start", "00:01:00", "00:00:30", "End time must be greater than start time."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, _ := newModel(t, 120)
			before := m.state.Region

			m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
			m = typeField(t, m, tt.start)
			m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
			m = typeField(t, m, tt.end)
			m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

			if !m.statusErr || m.status != tt.want {
				t.Errorf("status = %q (error %v), want %q", m.status, m.statusErr, tt.want)
			}
			if m.state.Region != before {
				t.Errorf("region changed to %+v", m.state.Region)
			}
		})
	}
}

func TestEscapeLeavesFields(t *testing.T) {
	t.Parallel()

	m, fake := newModel(t, 10)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyEsc})
	if m.focus != focusNone {
		t.Fatalf("focus = %v after esc", m.focus)
	}

	// Keys act on the editor again.
	m = press(t, m, keyRunes(" "))
	if !fake.IsPlaying() {
		t.Error("space ignored after leaving the fields")
	}
}

func TestClearAndAddRegion(t *testing.T) {
	t.Parallel()

	m, _ := newModel(t, 100)

	m = press(t, m, keyRunes("x"))
	if m.state.HasRegion {
		t.Fatal("x did not clear the region")
	}
	if !strings.Contains(m.View(), "no region") {
		t.Error("view does not report the missing region")
	}

	// Trim is disabled without a region.
	m = press(t, m, keyRunes("t"))
	if m.statusErr {
		t.Errorf("trim without region alerted %q", m.status)
	}

	m = press(t, m, keyRunes("a"))
	if r := m.state.Region; !m.state.HasRegion || r.Start != 30 || r.End != 50 {
		t.Errorf("region after add = %+v", r)
	}

	// Add is disabled while a region exists.
	m = press(t, m, keyRunes("a"))
	if m.statusErr {
		t.Errorf("second add alerted %q", m.status)
	}
}

func TestTrim_Reloads(t *testing.T) {
	t.Parallel()

	m, fake := newModel(t, 120)

	m = press(t, m, keyRunes("t"))
	if fake.Loads() != 2 {
		t.Fatalf("loads = %d, want 2", fake.Loads())
	}
	if m.state.Loaded {
		t.Error("editor not gated while the trimmed audio loads")
	}
	if !strings.Contains(m.View(), "Loading audio...") {
		t.Error("view does not show loading")
	}

	fake.Ready()
	m = drain(t, m)
	if m.state.Duration != 60 || m.viewEnd != 60 {
		t.Errorf("after reload duration %v view end %v, want 60", m.state.Duration, m.viewEnd)
	}
	if r := m.state.Region; r.Start != 15 || r.End != 45 {
		t.Errorf("region after reload = %+v", r)
	}
}

func TestCursorAndDraw(t *testing.T) {
	t.Parallel()

	m, _ := newModel(t, 100)

	// Ten steps of 1% of the 100 s view.
	for range 10 {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	}
	if m.cursor < 9.99 || m.cursor > 10.01 {
		t.Fatalf("cursor = %v, want 10", m.cursor)
	}

	m = press(t, m, keyRunes("["))
	if !m.marked {
		t.Fatal("[ did not mark")
	}

	for range 2 {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftRight})
	}
	m = press(t, m, keyRunes("]"))

	r := m.state.Region
	if r.Start < 9.99 || r.Start > 10.01 || r.End < 29.99 || r.End > 30.01 {
		t.Errorf("drawn region = %+v, want about [10, 30]", r)
	}
	if m.marked {
		t.Error("mark kept after drawing")
	}

	// Cursor stays inside the file.
	for range 20 {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftLeft})
	}
	if m.cursor != 0 {
		t.Errorf("cursor = %v, want 0", m.cursor)
	}
}

func TestZoom(t *testing.T) {
	t.Parallel()

	m, _ := newModel(t, 100)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if span := m.viewEnd - m.viewStart; span < 79.99 || span > 80.01 {
		t.Errorf("span after zoom in = %v, want 80", span)
	}
	if m.viewStart != 0 {
		t.Errorf("view start = %v, want 0 with the cursor at 0", m.viewStart)
	}

	for range 5 {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.viewStart != 0 || m.viewEnd != 100 {
		t.Errorf("view = [%v, %v], want the whole file", m.viewStart, m.viewEnd)
	}
}

func TestNudge(t *testing.T) {
	t.Parallel()

	m, _ := newModel(t, 120)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab}, keyRunes("+"), keyRunes("+"))
	if r := m.state.Region; r.Start != 32 {
		t.Errorf("start after nudges = %v, want 32", r.Start)
	}
	if got := m.startInput.Value(); got != "00:00:32" {
		t.Errorf("start field = %q, want 00:00:32", got)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab}, keyRunes("-"))
	if r := m.state.Region; r.End != 89 {
		t.Errorf("end after nudge = %v, want 89", r.End)
	}
}

func TestQuit(t *testing.T) {
	t.Parallel()

	m, _ := newModel(t, 10)

	_, cmd := m.Update(keyRunes("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}
