package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/xlttj/pypisrc/pkg/app"
	"github.com/xlttj/pypisrc/pkg/source"
)

// UIState represents the different views/states of the UI
type UIState int

const (
	StateMain   UIState = iota // mode toggle, mirror grid and other actions
	StateDialog                // modal result dialog on top of the main view
)

// button is one mirror button in the grid.
type button struct {
	label  string
	preset source.Preset
}

// buildButtons turns the preset table into grid buttons.
func buildButtons(presets []source.Preset) []button {
	buttons := make([]button, 0, len(presets))
	for _, p := range presets {
		buttons = append(buttons, button{label: p.Label, preset: p})
	}
	return buttons
}

// resultMsg carries a finished action back into Update.
type resultMsg struct {
	result app.Result
}

// keyMap lists every binding of the main view.
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Apply   key.Binding
	Mode    key.Binding
	Backup  key.Binding
	Open    key.Binding
	Export  key.Binding
	About   key.Binding
	Quit    key.Binding
	Dismiss key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Apply:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "use mirror")),
		Mode:    key.NewBinding(key.WithKeys("tab", "m"), key.WithHelp("tab", "toggle mode")),
		Backup:  key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "backup config")),
		Open:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open config")),
		Export:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export mirrors")),
		About:   key.NewBinding(key.WithKeys("?", "a"), key.WithHelp("?", "about")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Dismiss: key.NewBinding(key.WithKeys("enter", "esc", " "), key.WithHelp("enter", "close")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Apply, k.Mode, k.Backup, k.Open, k.Export, k.About, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Apply, k.Mode},
		{k.Backup, k.Open, k.Export, k.About, k.Quit},
	}
}
