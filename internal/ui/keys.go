package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application. Letter bindings
// only apply outside the search form, where keystrokes are typed text.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Escape     key.Binding

	// Search form
	NextField      key.Binding
	PrevField      key.Binding
	Submit         key.Binding
	NextSuggestion key.Binding
	PrevSuggestion key.Binding
	Accept         key.Binding
	ChoiceNext     key.Binding
	ChoicePrev     key.Binding
	Toggle         key.Binding

	// Results
	Up           key.Binding
	Down         key.Binding
	Top          key.Binding
	Bottom       key.Binding
	PrevPage     key.Binding
	NextPage     key.Binding
	SortPrice    key.Binding
	SortDuration key.Binding
	Open         key.Binding
	EditSearch   key.Binding
	ViewLogs     key.Binding
	QuitLetter   key.Binding

	// Scrolling panes
	PageUp       key.Binding
	PageDown     key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding
	ToggleFollow key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?", "f1"),
			key.WithHelp("?/F1", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T", "ctrl+t"),
			key.WithHelp("T/ctrl+t", "Cycle theme"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close / back"),
		),

		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "Next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "Previous field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "Search"),
		),
		NextSuggestion: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "Next suggestion"),
		),
		PrevSuggestion: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "Previous suggestion"),
		),
		Accept: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Accept suggestion / search"),
		),
		ChoiceNext: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("right", "Next option"),
		),
		ChoicePrev: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("left", "Previous option"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "Toggle"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("[", "h"),
			key.WithHelp("[", "Previous page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("]", "l"),
			key.WithHelp("]", "Next page"),
		),
		SortPrice: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Sort by price"),
		),
		SortDuration: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Sort by duration"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Offer details"),
		),
		EditSearch: key.NewBinding(
			key.WithKeys("/", "s"),
			key.WithHelp("/", "Edit search"),
		),
		ViewLogs: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Logs"),
		),
		QuitLetter: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "Quit"),
		),

		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdown", "Page down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "Half page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "Half page down"),
		),
		ToggleFollow: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "Toggle follow mode"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings grouped as the help overlay lists them.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextField, k.PrevField, k.NextSuggestion, k.PrevSuggestion, k.Accept, k.ChoicePrev, k.ChoiceNext, k.Toggle, k.Submit},
		{k.Up, k.Down, k.Top, k.Bottom, k.PrevPage, k.NextPage, k.SortPrice, k.SortDuration, k.Open, k.EditSearch},
		{k.HalfPageDown, k.HalfPageUp, k.ToggleFollow, k.ViewLogs},
		{k.CycleTheme, k.Escape, k.Help, k.QuitLetter, k.Quit},
	}
}
