package movie

import (
	"encoding/json"
	"testing"
)

func TestUnmarshal_TMDBIDStringOrNumber(t *testing.T) {
	cases := map[string]ID{
		`{"tmdb_id":"603"}`: "603",
		`{"tmdb_id":603}`:   "603",
		`{"tmdb_id":null}`:  "",
		`{}`:                "",
	}
	for in, want := range cases {
		var m Movie
		if err := json.Unmarshal([]byte(in), &m); err != nil {
			t.Fatalf("%s: unexpected error: %v", in, err)
		}
		if m.TMDBID != want {
			t.Fatalf("%s: expected %q, got %q", in, want, m.TMDBID)
		}
	}
}

func TestUnmarshal_TMDBIDRejectsObject(t *testing.T) {
	var m Movie
	if err := json.Unmarshal([]byte(`{"tmdb_id":{"x":1}}`), &m); err == nil {
		t.Fatal("expected error for object id")
	}
}

func TestUnmarshal_RatingNumberOrString(t *testing.T) {
	cases := map[string]Rating{
		`{"rating":7.5}`:     7.5,
		`{"rating":"7.5"}`:   7.5,
		`{"rating":" 8 "}`:   8,
		`{"rating":"<nil>"}`: 0,
		`{"rating":""}`:      0,
		`{"rating":"NaN"}`:   0,
		`{"rating":null}`:    0,
		`{}`:                 0,
	}
	for in, want := range cases {
		var m Movie
		if err := json.Unmarshal([]byte(in), &m); err != nil {
			t.Fatalf("%s: unexpected error: %v", in, err)
		}
		if m.Rating != want {
			t.Fatalf("%s: expected %v, got %v", in, want, m.Rating)
		}
	}
}

func TestUnmarshal_RatingRejectsObject(t *testing.T) {
	var m Movie
	if err := json.Unmarshal([]byte(`{"rating":[7]}`), &m); err == nil {
		t.Fatal("expected error for array rating")
	}
}

func TestOrNA(t *testing.T) {
	if got := OrNA("  "); got != NotAvailable {
		t.Fatalf("expected N/A, got %q", got)
	}
	if got := OrNA(" Keanu Reeves "); got != "Keanu Reeves" {
		t.Fatalf("unexpected value %q", got)
	}
}

func TestTMDBURL(t *testing.T) {
	if got := (Movie{}).TMDBURL(); got != "" {
		t.Fatalf("expected empty url, got %q", got)
	}
	if got := (Movie{TMDBID: "603"}).TMDBURL(); got != "https://www.themoviedb.org/movie/603" {
		t.Fatalf("unexpected url %q", got)
	}
}

func TestHasTrailer(t *testing.T) {
	if (Movie{YoutubeTrailer: " "}).HasTrailer() {
		t.Fatal("blank id is not a trailer")
	}
	if !(Movie{YoutubeTrailer: "abc"}).HasTrailer() {
		t.Fatal("expected trailer")
	}
}
