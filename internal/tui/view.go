package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sebastiantruijens/moviegrid/internal/card"
	"github.com/sebastiantruijens/moviegrid/internal/grid"
	"github.com/sebastiantruijens/moviegrid/internal/movie"
	"github.com/sebastiantruijens/moviegrid/internal/search"
	"github.com/sebastiantruijens/moviegrid/internal/trailer"
)

const noResults = "No results found."

// View renders the current UI
func (m Model) View() string {
	if m.info != "" {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, infoStyle.Render(m.info))
	}

	var sb strings.Builder

	sb.WriteString(titleStyle.Render("🎬 moviegrid"))
	sb.WriteString("\n")
	sb.WriteString(m.formView())
	sb.WriteString("\n")

	if m.err != nil {
		sb.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		sb.WriteString("\n")
	}

	switch {
	case m.searching:
		sb.WriteString(m.spinner.View())
		sb.WriteString(" ")
		sb.WriteString(normalTextStyle.Render("Searching for \"" + strings.TrimSpace(m.input.Value()) + "\""))
		sb.WriteString("\n")
	case m.searched && m.grid.Len() == 0 && m.err == nil:
		sb.WriteString(normalTextStyle.Render(noResults))
		sb.WriteString("\n")
	case m.grid.Len() > 0:
		sb.WriteString(m.viewport.View())
		sb.WriteString("\n")
	}

	if m.status != "" {
		sb.WriteString(errorStyle.Render(m.status))
		sb.WriteString("\n")
	}

	if m.area == areaForm {
		sb.WriteString(m.help.View(m.keys.formHelp()))
	} else {
		sb.WriteString(m.help.View(m.keys.gridHelp(m.grid.Focus())))
	}

	return lipgloss.NewStyle().
		MaxWidth(m.width).
		MaxHeight(m.height).
		Render(sb.String())
}

func (m Model) formView() string {
	style := inputStyle
	if m.area == areaForm {
		style = focusedInputStyle
	}

	props := make([]string, 0, len(search.Properties))
	for i, p := range search.Properties {
		if i == m.property {
			props = append(props, highlightedTextStyle.Render("["+p.Label+"]"))
		} else {
			props = append(props, dimTextStyle.Render(p.Label))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		subtitleStyle.Render("Search Query"),
		style.Render(m.input.View()),
		subtitleStyle.Render("Search Property ")+strings.Join(props, " "),
	)
}

// gridView lays the cards out in rows of grid.Columns. The expanded card
// spans a row of its own, like it does in the browser. top and bottom
// delimit the lines of the row holding focus.
func (m Model) gridView() (content string, top, bottom int) {
	width := max(m.viewport.Width, 3*minCardWidth)
	cellWidth := width / grid.Columns
	focus := m.grid.Focus()

	var (
		rows     []string
		row      []string
		line     int
		hasFocus bool
	)
	flush := func() {
		if len(row) == 0 {
			return
		}
		r := lipgloss.JoinHorizontal(lipgloss.Top, row...)
		h := lipgloss.Height(r)
		if hasFocus {
			top, bottom = line, line+h
		}
		rows = append(rows, r)
		line += h
		row = nil
		hasFocus = false
	}

	for i, c := range m.grid.Cards() {
		if c.Expanded() {
			flush()
			row = append(row, m.expandedCardView(c, width, focus))
			hasFocus = i == focus.Index
			flush()
			continue
		}
		row = append(row, m.cardView(c, cellWidth, i == focus.Index))
		if i == focus.Index {
			hasFocus = true
		}
		if len(row) == grid.Columns {
			flush()
		}
	}
	flush()

	return strings.Join(rows, "\n"), top, bottom
}

const minCardWidth = 24

func (m Model) cardView(c card.Card, width int, focused bool) string {
	style := cardStyle
	if focused {
		style = focusedCardStyle
	}
	inner := width - style.GetHorizontalFrameSize()

	var parts []string
	if art, ok := m.art[c.Background()]; ok {
		parts = append(parts, art)
	}
	parts = append(parts, m.details(c, inner)...)

	return style.Width(width - style.GetHorizontalBorderSize()).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) expandedCardView(c card.Card, width int, focus grid.Focus) string {
	style := expandedCardStyle
	inner := width - style.GetHorizontalFrameSize()

	// The poster moves behind the trailer while the card is expanded.
	tstyle := trailerStyle
	if focus.State == grid.TrailerFocused {
		tstyle = focusedTrailerStyle
	}
	var tparts []string
	if art, ok := m.art[c.TrailerBackground()]; ok {
		tparts = append(tparts, art)
	}
	tparts = append(tparts, trailerText(c))
	trailerBox := tstyle.Render(lipgloss.JoinVertical(lipgloss.Left, tparts...))

	detailWidth := max(inner-lipgloss.Width(trailerBox)-2, minCardWidth)
	details := lipgloss.JoinVertical(lipgloss.Left, m.details(c, detailWidth)...)
	if c.MenuVisible() {
		details = lipgloss.JoinVertical(lipgloss.Left, details, "", menuView())
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, trailerBox, "  ", details)
	return style.Width(width - style.GetHorizontalBorderSize()).Render(body)
}

// details renders title, stars and the visible metadata lines.
func (m Model) details(c card.Card, width int) []string {
	parts := []string{
		subtitleStyle.Render(wrapText(c.Title(), width)),
		starsStyle.Render(c.Stars()),
	}
	for _, l := range c.Lines() {
		if l.Hidden {
			continue
		}
		parts = append(parts, normalTextStyle.Render(wrapText(l.Text(), width)))
	}
	return parts
}

func trailerText(c card.Card) string {
	if !c.Movie.HasTrailer() {
		return dimTextStyle.Render("Trailer: " + movie.NotAvailable)
	}
	id := c.TrailerID()
	return lipgloss.JoinVertical(lipgloss.Left,
		highlightedTextStyle.Render("▶ Trailer"),
		normalTextStyle.Render(trailer.WatchURL(id)),
		dimTextStyle.Render("enter: play • arrows: stop"),
	)
}

func menuView() string {
	labels := map[card.Action]string{
		card.ActionBack: "[b] back",
		card.ActionPlay: "[p] play",
		card.ActionInfo: "[i] info",
	}
	items := make([]string, 0, len(card.Menu))
	for _, a := range card.Menu {
		items = append(items, highlightedTextStyle.Render(labels[a]))
	}
	return strings.Join(items, "  ")
}

// wrapText wraps text to fit within a given width
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	var lineLength int

	for _, word := range strings.Fields(text) {
		runes := []rune(word)

		// Break words longer than a line.
		for len(runes) > width {
			if lineLength > 0 {
				result.WriteString("\n")
				lineLength = 0
			}
			result.WriteString(string(runes[:width-1]) + "-\n")
			runes = runes[width-1:]
		}

		switch {
		case lineLength == 0:
		case lineLength+1+len(runes) > width:
			result.WriteString("\n")
			lineLength = 0
		default:
			result.WriteString(" ")
			lineLength++
		}

		result.WriteString(string(runes))
		lineLength += len(runes)
	}

	return result.String()
}
