package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sebastiantruijens/moviegrid/internal/grid"
)

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Enter key.Binding
	Tab   key.Binding
	Esc   key.Binding

	Search key.Binding
	Play   key.Binding
	Info   key.Binding
	Back   key.Binding

	Submit       key.Binding
	NextProperty key.Binding
	PrevProperty key.Binding
	ToGrid       key.Binding

	Quit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Left:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Enter: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "expand/play")),
		Tab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "card/trailer")),
		Esc:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "collapse")),

		Search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Play:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "play")),
		Info:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "info")),
		Back:   key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "back")),

		Submit:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
		NextProperty: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "property")),
		PrevProperty: key.NewBinding(key.WithKeys("shift+tab")),
		ToGrid:       key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "results")),

		Quit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// gridKey translates a key press into the grid controller's vocabulary.
func (k keyMap) gridKey(msg tea.KeyMsg) grid.Key {
	switch {
	case key.Matches(msg, k.Left):
		return grid.KeyLeft
	case key.Matches(msg, k.Right):
		return grid.KeyRight
	case key.Matches(msg, k.Up):
		return grid.KeyUp
	case key.Matches(msg, k.Down):
		return grid.KeyDown
	case key.Matches(msg, k.Enter):
		return grid.KeyEnter
	case key.Matches(msg, k.Tab):
		return grid.KeyTab
	case key.Matches(msg, k.Esc):
		return grid.KeyEsc
	}
	return grid.KeyNone
}

// bindings satisfies help.KeyMap for one screen.
type bindings []key.Binding

func (b bindings) ShortHelp() []key.Binding  { return b }
func (b bindings) FullHelp() [][]key.Binding { return [][]key.Binding{b} }

func (k keyMap) formHelp() bindings {
	return bindings{k.Submit, k.NextProperty, k.ToGrid, k.Quit}
}

func (k keyMap) gridHelp(f grid.Focus) bindings {
	switch f.State {
	case grid.TrailerFocused:
		return bindings{k.Enter, k.Tab, k.Esc, k.Info, k.Back, k.Search, k.Quit}
	case grid.CardExpanded:
		return bindings{k.Tab, k.Esc, k.Play, k.Info, k.Back, k.Search, k.Quit}
	default:
		return bindings{k.Up, k.Down, k.Left, k.Right, k.Enter, k.Info, k.Search, k.Quit}
	}
}
