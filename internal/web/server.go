package web

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	nethttp "net/http"
	"strings"

	"github.com/sebastiantruijens/moviegrid/internal/card"
	"github.com/sebastiantruijens/moviegrid/internal/search"
)

//go:embed static
var staticFS embed.FS

// Server is the companion HTTP process: search pages, static assets and
// the image proxy.
type Server struct {
	mux      *nethttp.ServeMux
	searcher search.Searcher
	proxy    nethttp.Handler
	tpl      *template.Template
	log      *slog.Logger
}

// NewServer wires the routes. proxy serves /proxy-image; cards link
// their posters to it on the same origin.
func NewServer(searcher search.Searcher, proxy nethttp.Handler, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	tpl := template.Must(template.New("page").Parse(pageTpl))
	template.Must(card.Define(tpl))

	s := &Server{
		mux:      nethttp.NewServeMux(),
		searcher: searcher,
		proxy:    proxy,
		tpl:      tpl,
		log:      log,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /search", s.handleSearch)
	s.mux.Handle("GET /proxy-image", s.proxy)
	s.mux.Handle("GET /health", HealthHandler())

	static, _ := fs.Sub(staticFS, "static")
	s.mux.Handle("GET /static/", nethttp.StripPrefix("/static/", nethttp.FileServer(nethttp.FS(static))))
}

func (s *Server) ServeHTTP(w nethttp.ResponseWriter, r *nethttp.Request) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
	s.mux.ServeHTTP(w, r)
}

// page is the data behind pageTpl.
type page struct {
	Query      string
	Property   string
	Properties []search.Property
	Cards      []card.Card
	Searched   bool
	Error      string
}

func newPage(query, property string) page {
	if property == "" {
		property = search.Properties[0].Value
	}
	return page{Query: query, Property: property, Properties: search.Properties}
}

func (s *Server) handleIndex(w nethttp.ResponseWriter, r *nethttp.Request) {
	s.render(w, nethttp.StatusOK, newPage("", ""))
}

// GET /search?query=&property= runs one search and renders the grid.
func (s *Server) handleSearch(w nethttp.ResponseWriter, r *nethttp.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	property := strings.TrimSpace(r.URL.Query().Get("property"))
	p := newPage(query, property)

	if query == "" || property == "" {
		p.Error = "Error: " + search.ErrMissingInput.Error()
		s.render(w, nethttp.StatusBadRequest, p)
		return
	}

	p.Searched = true
	movies, err := s.searcher.Search(r.Context(), query, property)
	if err != nil {
		s.log.Warn("search failed", "query", query, "property", property, "err", err)
		p.Error = "Error: " + err.Error()
		code := nethttp.StatusBadGateway
		if errors.Is(err, search.ErrMissingInput) {
			code = nethttp.StatusBadRequest
		}
		s.render(w, code, p)
		return
	}
	p.Cards = card.BuildAll(movies, "")
	s.log.Debug("search done", "query", query, "property", property, "results", len(p.Cards))
	s.render(w, nethttp.StatusOK, p)
}

func (s *Server) render(w nethttp.ResponseWriter, code int, p page) {
	var buf strings.Builder
	if err := s.tpl.Execute(&buf, p); err != nil {
		s.log.Error("render page", "err", err)
		httpError(w, nethttp.StatusInternalServerError, "unable to render page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, _ = io.WriteString(w, buf.String())
}

func httpError(w nethttp.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(msg))
}

const pageTpl = `<!doctype html>
<html lang="en">
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width, initial-scale=1" />
<title>moviegrid</title>
<link rel="stylesheet" href="/static/style.css" />
<body>
<div id="app">
  <div id="errorContainer" role="alert">{{.Error}}</div>
  <div id="gridContainer">
    <form id="searchForm" action="/search" method="get" tabindex="0">
      <label for="query">Search Query</label>
      <input type="text" id="query" name="query" placeholder="Enter search term" value="{{.Query}}" required />
      <br />
      <label for="property">Search Property</label>
      <select id="property" name="property" required>
      {{- range .Properties}}
        <option value="{{.Value}}"{{if eq .Value $.Property}} selected{{end}}>{{.Label}}</option>
      {{- end}}
      </select>
      <br />
      <button type="submit">Search</button>
    </form>
    {{- range .Cards}}
    {{template "card" .}}
    {{- end}}
  </div>
  {{- if and .Searched (not .Cards) (not .Error)}}
  <div id="resultContainer"><p>No results found.</p></div>
  {{- end}}
</div>
<script src="/static/app.js"></script>
</body>
</html>
`
