// Package card turns movie records into the cards shown in the result grid.
//
// A Card is a view model: it owns the state a renderer needs (stars,
// metadata lines, background image, trailer source) and how that state
// changes when the card is expanded or collapsed. Renderers project it;
// they never keep state of their own.
package card

import (
	"math"
	"net/url"
	"strings"

	"github.com/sebastiantruijens/moviegrid/internal/movie"
	"github.com/sebastiantruijens/moviegrid/internal/trailer"
)

const (
	// MaxStars is the number of glyphs in every rating display.
	MaxStars = 10

	StarFilled = "★"
	StarEmpty  = "☆"

	noTitle = "No Title"
)

// Action is an entry of the per-card menu.
type Action string

const (
	ActionBack Action = "back"
	ActionPlay Action = "play"
	ActionInfo Action = "info"
)

// Menu lists the card menu actions in display order.
var Menu = []Action{ActionBack, ActionPlay, ActionInfo}

// Line is one "Label: value" metadata row of a card.
type Line struct {
	Class string
	Label string
	Value string
	// Secondary lines are only shown while the card is expanded.
	Secondary bool
	Hidden    bool
}

// Text renders the line as "Label: value".
func (l Line) Text() string {
	return l.Label + ": " + l.Value
}

type field struct {
	class     string
	label     string
	value     func(movie.Movie) string
	secondary bool
}

var fields = []field{
	{"cast", "Cast", func(m movie.Movie) string { return m.Cast }, true},
	{"director", "Director", func(m movie.Movie) string { return m.Director }, false},
	{"genre", "Genre", func(m movie.Movie) string { return m.Genre }, true},
	{"release-date", "Release Date", func(m movie.Movie) string { return m.ReleaseDate }, false},
	{"plot", "Plot", func(m movie.Movie) string { return m.Plot }, true},
	{"tmdb", "TMDB", func(m movie.Movie) string { return string(m.TMDBID) }, true},
}

// Card is the visual projection of one movie record.
type Card struct {
	// Index is the position of the record in the result set.
	Index int
	Movie movie.Movie
	// ImageURL is the proxied poster, kept so the background can be
	// restored after expansion moved it to the trailer layer.
	ImageURL string

	expanded bool
}

// Build creates the card for m at position index. proxyBase is the origin
// of the image proxy; an empty base yields a same-origin relative URL.
func Build(m movie.Movie, index int, proxyBase string) Card {
	return Card{
		Index:    index,
		Movie:    m,
		ImageURL: ProxyURL(proxyBase, m.MovieImage),
	}
}

// BuildAll creates one card per record, indexed in order.
func BuildAll(movies []movie.Movie, proxyBase string) []Card {
	cards := make([]Card, 0, len(movies))
	for i, m := range movies {
		cards = append(cards, Build(m, i, proxyBase))
	}
	return cards
}

// ProxyURL routes imageURL through the proxy at base.
func ProxyURL(base, imageURL string) string {
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + "/proxy-image?url=" + url.QueryEscape(imageURL)
}

// FilledStars returns how many of the MaxStars glyphs are filled for rating.
func FilledStars(rating float64) int {
	if math.IsNaN(rating) {
		return 0
	}
	n := math.Round(rating)
	if n < 0 {
		return 0
	}
	if n > MaxStars {
		return MaxStars
	}
	return int(n)
}

// Stars renders rating as exactly MaxStars glyphs.
func Stars(rating float64) string {
	n := FilledStars(rating)
	return strings.Repeat(StarFilled, n) + strings.Repeat(StarEmpty, MaxStars-n)
}

// Title returns the display title.
func (c Card) Title() string {
	if t := strings.TrimSpace(c.Movie.Title); t != "" {
		return t
	}
	return noTitle
}

// Stars renders the card's rating.
func (c Card) Stars() string {
	return Stars(float64(c.Movie.Rating))
}

// Lines returns the metadata rows with visibility resolved for the
// current state.
func (c Card) Lines() []Line {
	lines := make([]Line, 0, len(fields))
	for _, f := range fields {
		lines = append(lines, Line{
			Class:     f.class,
			Label:     f.label,
			Value:     movie.OrNA(f.value(c.Movie)),
			Secondary: f.secondary,
			Hidden:    f.secondary && !c.expanded,
		})
	}
	return lines
}

// Expanded reports whether the card is in the detail state.
func (c Card) Expanded() bool {
	return c.expanded
}

// Expand reveals secondary lines, menu and trailer, and moves the
// background onto the trailer layer.
func (c *Card) Expand() {
	c.expanded = true
}

// Collapse restores the default visuals.
func (c *Card) Collapse() {
	c.expanded = false
}

// Background is the card's own background image; empty while expanded.
func (c Card) Background() string {
	if c.expanded {
		return ""
	}
	return c.ImageURL
}

// TrailerBackground is the image shown behind the trailer frame.
func (c Card) TrailerBackground() string {
	if !c.expanded {
		return ""
	}
	return c.ImageURL
}

// TrailerVisible reports whether the trailer frame is shown.
func (c Card) TrailerVisible() bool {
	return c.expanded
}

// MenuVisible reports whether the card menu is shown.
func (c Card) MenuVisible() bool {
	return c.expanded
}

// TrailerID returns the video id of the trailer, or "".
func (c Card) TrailerID() string {
	return strings.TrimSpace(c.Movie.YoutubeTrailer)
}

// TrailerSrc is the frame source. It stays empty until the card is
// expanded so collapsed cards never load the player.
func (c Card) TrailerSrc() string {
	if !c.expanded {
		return ""
	}
	return trailer.EmbedURL(c.TrailerID())
}

// DeferredTrailerSrc is the source the frame will get on expansion.
func (c Card) DeferredTrailerSrc() string {
	return trailer.EmbedURL(c.TrailerID())
}
