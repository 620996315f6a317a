package card

import "html/template"

// TemplateName is the name under which the card fragment is registered.
const TemplateName = "card"

// htmlTpl renders one focusable card. The trailer frame carries its
// source in data-src and only gets src once the card is expanded.
const htmlTpl = `<div class="movie-card{{if .Expanded}} expanded{{end}}" tabindex="0" data-index="{{.Index}}" data-image="{{.ImageURL}}"{{with .Background}} style="background-image: url('{{.}}')"{{end}}>
  <div class="card-content">
    <h3>{{.Title}}</h3>
    <div class="stars-container" aria-label="rating">{{.Stars}}</div>
    {{- range .Lines}}
    <p class="{{.Class}}"{{if .Hidden}} style="display:none"{{end}}>{{.Text}}</p>
    {{- end}}
  </div>
  <div class="iframe-container youtube" tabindex="0"{{if .TrailerVisible}} style="background-image: url('{{.TrailerBackground}}')"{{else}} style="display:none"{{end}}>
    <iframe class="iframe" title="trailer" frameborder="0" allowfullscreen data-src="{{.DeferredTrailerSrc}}"{{with .TrailerSrc}} src="{{.}}"{{end}}></iframe>
  </div>
  <div class="menu"{{if not .MenuVisible}} style="display:none"{{end}}>
    <button type="button" class="back" data-action="back" aria-label="back to search">🔍</button>
    <button type="button" class="play" data-action="play" aria-label="play trailer">▶</button>
    <button type="button" class="info" data-action="info" aria-label="movie info"{{with .Movie.TMDBURL}} data-href="{{.}}"{{end}}>ℹ</button>
  </div>
</div>
`

// Define registers the card fragment on t so page templates can
// {{template "card" .}} it.
func Define(t *template.Template) (*template.Template, error) {
	return t.New(TemplateName).Parse(htmlTpl)
}
