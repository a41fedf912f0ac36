package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings for the demo.
type KeyMap struct {
	// Messages
	Show    key.Binding
	Info    key.Binding
	Success key.Binding
	Warning key.Binding
	Error   key.Binding
	Hide    key.Binding

	// Bar interaction
	Tap      key.Binding
	TapLeft  key.Binding
	TapRight key.Binding

	// Style toggles
	ToggleButtons   key.Binding
	TogglePlacement key.Binding
	ToggleGuide     key.Binding
	ToggleDebug     key.Binding

	// History
	Up   key.Binding
	Down key.Binding

	// Global
	Help key.Binding
	Quit key.Binding
}

// ShortHelp returns a short help message.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Show, k.Hide, k.TogglePlacement, k.Help, k.Quit}
}

// FullHelp returns a full help message.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Show, k.Info, k.Success, k.Warning, k.Error, k.Hide},
		{k.Tap, k.TapLeft, k.TapRight},
		{k.ToggleButtons, k.TogglePlacement, k.ToggleGuide, k.ToggleDebug},
		{k.Up, k.Down, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Show: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "show message"),
		),
		Info: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "info"),
		),
		Success: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "success"),
		),
		Warning: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "warning"),
		),
		Error: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "error"),
		),
		Hide: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "hide"),
		),
		Tap: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "tap bar"),
		),
		TapLeft: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "tap left button"),
		),
		TapRight: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "tap right button"),
		),
		ToggleButtons: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "toggle buttons"),
		),
		TogglePlacement: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "top/bottom"),
		),
		ToggleGuide: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "toggle layout guide"),
		),
		ToggleDebug: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "toggle debug"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
