// SPDX-License-Identifier: EPL-2.0

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Play      key.Binding
	AddRegion key.Binding
	Trim      key.Binding
	Clear     key.Binding
	Focus     key.Binding
	Apply     key.Binding
	Reset     key.Binding
	MarkStart key.Binding
	MarkEnd   key.Binding
	Left      key.Binding
	Right     key.Binding
	FastLeft  key.Binding
	FastRight key.Binding
	ZoomIn    key.Binding
	ZoomOut   key.Binding
	Seek      key.Binding
	Nudge     key.Binding
	Unnudge   key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Play:      key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "play/pause")),
		AddRegion: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add region")),
		Trim:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "trim")),
		Clear:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear region")),
		Focus:     key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "start/end field")),
		Apply:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "update region")),
		Reset:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "fields from region")),
		MarkStart: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "mark start")),
		MarkEnd:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "draw to cursor")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "cursor")),
		Right:     key.NewBinding(key.WithKeys("right", "l")),
		FastLeft:  key.NewBinding(key.WithKeys("shift+left", "H")),
		FastRight: key.NewBinding(key.WithKeys("shift+right", "L")),
		ZoomIn:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/↓", "zoom")),
		ZoomOut:   key.NewBinding(key.WithKeys("down", "j")),
		Seek:      key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "seek to cursor")),
		Nudge:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "nudge bound")),
		Unnudge:   key.NewBinding(key.WithKeys("-", "_")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp lists the bindings shown in the help line.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Play, k.AddRegion, k.Trim, k.Clear, k.Focus, k.Apply, k.MarkStart, k.MarkEnd, k.Quit}
}

// FullHelp lists every binding with help text, grouped by column.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Play, k.Seek, k.Left, k.ZoomIn},
		{k.AddRegion, k.MarkStart, k.MarkEnd, k.Clear, k.Trim},
		{k.Focus, k.Apply, k.Reset, k.Nudge},
		{k.Quit},
	}
}
