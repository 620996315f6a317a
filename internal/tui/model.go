// Package tui is the terminal front end: a search form over a 3-column
// grid of movie cards, driven by the grid focus controller.
package tui

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sebastiantruijens/moviegrid/internal/card"
	"github.com/sebastiantruijens/moviegrid/internal/grid"
	"github.com/sebastiantruijens/moviegrid/internal/movie"
	"github.com/sebastiantruijens/moviegrid/internal/poster"
	"github.com/sebastiantruijens/moviegrid/internal/search"
	"github.com/sebastiantruijens/moviegrid/internal/trailer"
)

// Lines taken by everything around the grid viewport.
const chromeHeight = 12

type area int

const (
	areaForm area = iota
	areaGrid
)

// Options configures a Model.
type Options struct {
	Searcher search.Searcher
	Player   trailer.Player
	// Posters renders card posters; nil disables them.
	Posters *poster.Loader
	// ProxyURL is the image proxy origin posters are fetched through.
	ProxyURL string
	Log      *slog.Logger
}

// Model represents the application state
type Model struct {
	searcher search.Searcher
	player   trailer.Player
	posters  *poster.Loader
	proxyURL string
	log      *slog.Logger

	keys     keyMap
	help     help.Model
	input    textinput.Model
	property int
	spinner  spinner.Model
	viewport viewport.Model

	area area
	grid *grid.Controller
	art  map[string]string

	// seq numbers submissions; results of any other submission are stale.
	seq int
	// searchCtx scopes the current search and its poster downloads.
	searchCtx context.Context
	cancel    context.CancelFunc
	searching bool
	searched  bool

	err    error
	status string
	info   string

	width  int
	height int
}

// NewModel creates a new application model
func NewModel(opts Options) Model {
	if opts.Player == nil {
		opts.Player = trailer.NewBrowserPlayer()
	}
	if opts.Log == nil {
		opts.Log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	ti := textinput.New()
	ti.Placeholder = "Enter search term"
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 40
	ti.KeyMap.DeleteWordBackward = key.NewBinding(
		key.WithKeys("alt+backspace", "ctrl+w"),
	)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(primaryColor)

	return Model{
		searcher: opts.Searcher,
		player:   opts.Player,
		posters:  opts.Posters,
		proxyURL: opts.ProxyURL,
		log:      opts.Log,
		keys:     defaultKeyMap(),
		help:     help.New(),
		input:    ti,
		spinner:  sp,
		viewport: viewport.New(80, 24-chromeHeight),
		grid:     grid.New(),
		width:    80,
		height:   24,
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Property returns the value of the selected search property.
func (m Model) Property() string {
	return search.Properties[m.property].Value
}

// Focus reports where keyboard focus is in the grid.
func (m Model) Focus() grid.Focus {
	return m.grid.Focus()
}

// Update handles messages and user input
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.stopSearch()
			return m, tea.Quit
		}
		// Any key closes the info panel.
		if m.info != "" {
			m.info = ""
			return m, nil
		}
		if m.area == areaForm {
			return m.updateForm(msg)
		}
		return m.updateGrid(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chromeHeight, 3)
		m.refresh()

	case spinner.TickMsg:
		if m.searching {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case searchResultsMsg:
		if msg.seq != m.seq {
			m.log.Debug("dropping stale results", "seq", msg.seq, "current", m.seq)
			break
		}
		m.searching = false
		m.searched = true
		m.grid.Reset(card.BuildAll(msg.movies, m.proxyURL))
		m.log.Info("search done", "results", m.grid.Len())
		if m.grid.Len() > 0 {
			m.area = areaGrid
			m.input.Blur()
			cmds = append(cmds, m.loadPosters())
		}
		m.refresh()
		m.viewport.GotoTop()

	case searchErrorMsg:
		if msg.seq != m.seq {
			m.log.Debug("dropping stale error", "seq", msg.seq, "err", msg.err)
			break
		}
		m.searching = false
		m.err = msg.err
		m.log.Warn("search failed", "err", msg.err)

	case postersMsg:
		if msg.seq != m.seq {
			break
		}
		m.art = msg.art
		m.refresh()

	case playerErrorMsg:
		m.status = "Error: " + msg.err.Error()
		m.log.Warn("trailer command failed", "err", msg.err)

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(search.Properties)
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.NextProperty):
		m.property = (m.property + 1) % n
		return m, nil
	case key.Matches(msg, m.keys.PrevProperty):
		m.property = (m.property + n - 1) % n
		return m, nil
	case key.Matches(msg, m.keys.ToGrid):
		m.focusGrid()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, m.keys.Search):
		m.grid.Blur()
		cmd = m.focusForm()

	case key.Matches(msg, m.keys.Back):
		if e := m.grid.Expanded(); e >= 0 {
			cmd = m.trailerCmd(e, trailer.FuncStop)
		}
		m.grid.Release()
		cmd = tea.Batch(cmd, m.focusForm())

	case key.Matches(msg, m.keys.Play):
		if e := m.grid.Expanded(); e >= 0 {
			cmd = m.trailerCmd(e, trailer.FuncPlay)
		}

	case key.Matches(msg, m.keys.Info):
		if c, ok := m.grid.Focused(); ok {
			info, err := infoView(c)
			if err != nil {
				m.status = "Error: " + err.Error()
				break
			}
			m.info = info
		}

	default:
		k := m.keys.gridKey(msg)
		if k == grid.KeyNone {
			return m, nil
		}
		out := m.grid.HandleKey(k)
		if out.Trailer != nil {
			cmd = m.sendCmd(*out.Trailer)
		}
	}

	m.refresh()
	return m, cmd
}

// submit clears the grid and starts a search, abandoning any search
// still in flight.
func (m Model) submit() (tea.Model, tea.Cmd) {
	query := strings.TrimSpace(m.input.Value())
	if query == "" {
		m.err = search.ErrMissingInput
		return m, nil
	}
	property := m.Property()

	m.stopSearch()
	m.seq++
	m.searchCtx, m.cancel = context.WithCancel(context.Background())
	m.searching = true
	m.searched = false
	m.err = nil
	m.status = ""
	m.art = nil
	m.grid.Reset(nil)
	m.refresh()

	m.log.Debug("search submitted", "query", query, "property", property, "seq", m.seq)
	return m, tea.Batch(m.spinner.Tick, searchCmd(m.searchCtx, m.searcher, m.seq, query, property))
}

func (m *Model) stopSearch() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

func (m *Model) focusForm() tea.Cmd {
	m.area = areaForm
	return m.input.Focus()
}

// focusGrid moves focus from the form back onto the expanded card, or
// the first card.
func (m *Model) focusGrid() bool {
	target := m.grid.Expanded()
	if target < 0 {
		target = 0
	}
	if !m.grid.FocusCard(target) {
		return false
	}
	m.area = areaGrid
	m.input.Blur()
	m.refresh()
	return true
}

func (m Model) trailerCmd(index int, fn trailer.Func) tea.Cmd {
	c, ok := m.grid.Card(index)
	if !ok {
		return nil
	}
	return m.sendCmd(grid.TrailerCommand{
		Index:   index,
		VideoID: c.TrailerID(),
		Command: trailer.NewCommand(fn),
	})
}

func (m Model) sendCmd(tc grid.TrailerCommand) tea.Cmd {
	player := m.player
	log := m.log
	return func() tea.Msg {
		log.Debug("trailer command", "index", tc.Index, "video", tc.VideoID, "func", tc.Command.Func)
		if err := player.Send(tc.VideoID, tc.Command); err != nil {
			return playerErrorMsg{err}
		}
		return nil
	}
}

func (m Model) loadPosters() tea.Cmd {
	if m.posters == nil {
		return nil
	}
	cards := m.grid.Cards()
	urls := make([]string, 0, len(cards))
	for _, c := range cards {
		urls = append(urls, c.ImageURL)
	}
	ctx, seq, loader := m.searchCtx, m.seq, m.posters
	return func() tea.Msg {
		art, err := loader.Load(ctx, urls)
		if err != nil {
			return nil
		}
		return postersMsg{seq: seq, art: art}
	}
}

func searchCmd(ctx context.Context, s search.Searcher, seq int, query, property string) tea.Cmd {
	return func() tea.Msg {
		movies, err := s.Search(ctx, query, property)
		if err != nil {
			return searchErrorMsg{seq: seq, err: err}
		}
		return searchResultsMsg{seq: seq, movies: movies}
	}
}

// refresh re-renders the grid into the viewport and scrolls the focused
// card into view.
func (m *Model) refresh() {
	content, top, bottom := m.gridView()
	m.viewport.SetContent(content)
	if bottom <= top {
		return
	}
	switch {
	case top < m.viewport.YOffset:
		m.viewport.SetYOffset(top)
	case bottom > m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(bottom - m.viewport.Height)
	}
}

// Custom message types
type searchResultsMsg struct {
	seq    int
	movies []movie.Movie
}

type searchErrorMsg struct {
	seq int
	err error
}

type postersMsg struct {
	seq int
	art map[string]string
}

type playerErrorMsg struct {
	err error
}
