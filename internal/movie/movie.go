package movie

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// NotAvailable is rendered in place of any missing field.
const NotAvailable = "N/A"

// Movie is one record returned by the search API.
type Movie struct {
	Title          string  `json:"title"`
	Rating         Rating  `json:"rating"`
	Cast           string  `json:"cast"`
	Director       string  `json:"director"`
	Genre          string  `json:"genre"`
	ReleaseDate    string  `json:"release_date"`
	Plot           string  `json:"plot"`
	MovieImage     string  `json:"movie_image"`
	YoutubeTrailer string  `json:"youtube_trailer,omitempty"`
	TMDBID         ID      `json:"tmdb_id"`
}

// ID holds an identifier the API may send either as a string or a number.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// Rating is a score the API may send as a number or as a string such as
// "7.5". Strings that are not numbers ("<nil>", "") decode as 0.
type Rating float64

func (r *Rating) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*r = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(f) {
			f = 0
		}
		*r = Rating(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*r = Rating(f)
	return nil
}

// OrNA returns s trimmed, or NotAvailable when nothing is left.
func OrNA(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return NotAvailable
	}
	return s
}

// HasTrailer reports whether the record carries a trailer video id.
func (m Movie) HasTrailer() bool {
	return strings.TrimSpace(m.YoutubeTrailer) != ""
}

// TMDBURL returns the TMDB page for the record, or "" without an id.
func (m Movie) TMDBURL() string {
	if m.TMDBID == "" {
		return ""
	}
	return "https://www.themoviedb.org/movie/" + string(m.TMDBID)
}
