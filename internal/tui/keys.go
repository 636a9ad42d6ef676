package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	LowDown  key.Binding
	LowUp    key.Binding
	HighDown key.Binding
	HighUp   key.Binding
	Reset    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "prev site"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "next site"),
		),
		LowDown: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "low -"),
		),
		LowUp: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "low +"),
		),
		HighDown: key.NewBinding(
			key.WithKeys("{"),
			key.WithHelp("{", "high -"),
		),
		HighUp: key.NewBinding(
			key.WithKeys("}"),
			key.WithHelp("}", "high +"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.LowDown, k.LowUp, k.HighDown, k.HighUp, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Down, k.Up},
		{k.LowDown, k.LowUp, k.HighDown, k.HighUp},
		{k.Reset, k.Help, k.Quit},
	}
}
