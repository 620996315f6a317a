// Package grid owns keyboard focus and expansion over the card grid.
//
// The grid is a dense sequence of cards laid out in rows of Columns.
// Navigation is index arithmetic on grid positions: targets outside the
// grid are ignored, never wrapped. At most one card is expanded; focus is
// either nowhere (Idle), on a card, or inside the expanded card's trailer.
package grid

import (
	"fmt"

	"github.com/sebastiantruijens/moviegrid/internal/card"
	"github.com/sebastiantruijens/moviegrid/internal/trailer"
)

// Columns is the fixed width of the grid.
const Columns = 3

// Key is a keyboard input the controller understands.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyEnter
	KeyTab
	KeyEsc
)

func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyEnter:
		return "enter"
	case KeyTab:
		return "tab"
	case KeyEsc:
		return "esc"
	default:
		return "none"
	}
}

func (k Key) arrow() bool {
	return k == KeyLeft || k == KeyRight || k == KeyUp || k == KeyDown
}

// State names where focus is.
type State int

const (
	Idle State = iota
	CardFocused
	CardExpanded
	TrailerFocused
)

func (s State) String() string {
	switch s {
	case CardFocused:
		return "CardFocused"
	case CardExpanded:
		return "CardExpanded"
	case TrailerFocused:
		return "TrailerFocused"
	default:
		return "Idle"
	}
}

// Focus is the controller state together with the grid position it
// refers to. Index is -1 when Idle.
type Focus struct {
	State State
	Index int
}

func (f Focus) String() string {
	if f.State == Idle {
		return "Idle"
	}
	return fmt.Sprintf("%s(%d)", f.State, f.Index)
}

// TrailerCommand is a message for the trailer of the card at Index.
type TrailerCommand struct {
	Index   int
	VideoID string
	Command trailer.Command
}

// Outcome reports what a key did.
type Outcome struct {
	// Changed is set when focus or expansion changed.
	Changed bool
	// Trailer is set when the key produced a player command.
	Trailer *TrailerCommand
}

// Controller is the single owner of grid focus and expansion state.
// It is not safe for concurrent use; the UI loop drives it.
type Controller struct {
	cards     []card.Card
	focus     int
	onTrailer bool
	expanded  int
}

// New returns an empty, idle controller.
func New() *Controller {
	return &Controller{focus: -1, expanded: -1}
}

// Reset replaces the grid contents with cards and focuses the first one.
func (c *Controller) Reset(cards []card.Card) {
	c.cards = append([]card.Card(nil), cards...)
	for i := range c.cards {
		c.cards[i].Collapse()
	}
	c.expanded = -1
	c.onTrailer = false
	c.focus = -1
	if len(c.cards) > 0 {
		c.focus = 0
	}
}

// Len returns the number of cards.
func (c *Controller) Len() int {
	return len(c.cards)
}

// Cards returns the cards in grid order.
func (c *Controller) Cards() []card.Card {
	return append([]card.Card(nil), c.cards...)
}

// Card returns the card at grid position i.
func (c *Controller) Card(i int) (card.Card, bool) {
	if i < 0 || i >= len(c.cards) {
		return card.Card{}, false
	}
	return c.cards[i], true
}

// Expanded returns the grid position of the expanded card, or -1.
func (c *Controller) Expanded() int {
	return c.expanded
}

// Focus returns the current state.
func (c *Controller) Focus() Focus {
	switch {
	case c.focus < 0:
		return Focus{State: Idle, Index: -1}
	case c.onTrailer:
		return Focus{State: TrailerFocused, Index: c.focus}
	case c.focus == c.expanded:
		return Focus{State: CardExpanded, Index: c.focus}
	default:
		return Focus{State: CardFocused, Index: c.focus}
	}
}

// Focused returns the card holding focus, including the card whose
// trailer is focused.
func (c *Controller) Focused() (card.Card, bool) {
	return c.Card(c.focus)
}

// FocusCard moves focus onto the card at grid position i. Out-of-range
// positions leave focus unchanged and report false.
func (c *Controller) FocusCard(i int) bool {
	if i < 0 || i >= len(c.cards) {
		return false
	}
	c.focus = i
	c.onTrailer = false
	return true
}

// Blur releases focus from the grid without touching expansion.
func (c *Controller) Blur() {
	c.focus = -1
	c.onTrailer = false
}

// HandleKey applies one key press to the current state.
func (c *Controller) HandleKey(k Key) Outcome {
	if c.focus < 0 {
		return Outcome{}
	}
	if c.onTrailer {
		return c.trailerKey(k)
	}
	return c.cardKey(k)
}

func (c *Controller) cardKey(k Key) Outcome {
	switch k {
	case KeyRight:
		return Outcome{Changed: c.FocusCard(c.focus + 1)}
	case KeyLeft:
		return Outcome{Changed: c.FocusCard(c.focus - 1)}
	case KeyDown:
		return Outcome{Changed: c.FocusCard(c.focus + Columns)}
	case KeyUp:
		return Outcome{Changed: c.FocusCard(c.focus - Columns)}
	case KeyEnter:
		c.Expand(c.focus)
		return Outcome{Changed: true}
	case KeyTab:
		if c.focus != c.expanded {
			return Outcome{}
		}
		c.onTrailer = true
		return Outcome{Changed: true}
	case KeyEsc:
		if c.expanded < 0 {
			return Outcome{}
		}
		c.Collapse()
		return Outcome{Changed: true}
	}
	return Outcome{}
}

func (c *Controller) trailerKey(k Key) Outcome {
	switch {
	case k == KeyEnter:
		return Outcome{Trailer: c.command(trailer.FuncPlay)}
	case k.arrow():
		return Outcome{Trailer: c.command(trailer.FuncStop)}
	case k == KeyTab:
		c.onTrailer = false
		return Outcome{Changed: true}
	case k == KeyEsc:
		cmd := c.command(trailer.FuncStop)
		c.Collapse()
		return Outcome{Changed: true, Trailer: cmd}
	}
	return Outcome{}
}

func (c *Controller) command(fn trailer.Func) *TrailerCommand {
	return &TrailerCommand{
		Index:   c.focus,
		VideoID: c.cards[c.focus].TrailerID(),
		Command: trailer.NewCommand(fn),
	}
}

// Expand expands the card at grid position i: any other expanded card
// collapses, the card moves to the first slot of its row, and focus
// moves into its trailer.
func (c *Controller) Expand(i int) {
	if i < 0 || i >= len(c.cards) {
		return
	}
	for j := range c.cards {
		if j != i {
			c.cards[j].Collapse()
		}
	}

	rowStart := i / Columns * Columns
	moved := c.cards[i]
	copy(c.cards[rowStart+1:i+1], c.cards[rowStart:i])
	c.cards[rowStart] = moved
	c.cards[rowStart].Expand()

	c.expanded = rowStart
	c.focus = rowStart
	c.onTrailer = true
}

// Collapse returns the expanded card to its default visuals. Focus stays
// on that card.
func (c *Controller) Collapse() {
	if c.expanded < 0 {
		return
	}
	c.cards[c.expanded].Collapse()
	if c.focus == c.expanded {
		c.onTrailer = false
	}
	c.expanded = -1
}

// Release collapses the expanded card and gives focus back to the search
// form. It implements the card menu's back action.
func (c *Controller) Release() {
	c.Collapse()
	c.Blur()
}
