package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/skip2/go-qrcode"

	"github.com/sebastiantruijens/moviegrid/internal/card"
	"github.com/sebastiantruijens/moviegrid/internal/movie"
)

// infoView renders the card's TMDB page as a link and a QR code that a
// phone can scan, since a terminal cannot open the page inline.
func infoView(c card.Card) (string, error) {
	title := subtitleStyle.Render(c.Title())
	link := c.Movie.TMDBURL()
	if link == "" {
		return lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			normalTextStyle.Render("TMDB: "+movie.NotAvailable),
			"",
			dimTextStyle.Render("press any key"),
		), nil
	}

	q, err := qrcode.New(link, qrcode.Medium)
	if err != nil {
		return "", err
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		q.ToSmallString(false),
		normalTextStyle.Render(link),
		"",
		dimTextStyle.Render("press any key"),
	), nil
}
