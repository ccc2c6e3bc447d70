// Package render draws the lookup card as an HTML page for the widget and
// as a text table for the CLI
package render

import (
	"embed"
	"html/template"
	"io"

	"github.com/KirkDiggler/pokedex-api/internal/entities/pokemon"
	"github.com/KirkDiggler/pokedex-api/internal/errors"
	lookupsession "github.com/KirkDiggler/pokedex-api/internal/repositories/lookup_session"
)

// PageTemplate is the name of the widget page template
const PageTemplate = "index.html"

//go:embed templates/*.html
var templateFS embed.FS

// Funcs are the helpers available to the templates
var Funcs = template.FuncMap{
	"decimal": pokemon.FormatDecimal,
}

// Page is the data the widget page renders
type Page struct {
	SessionID string
	Seq       uint64
	Query     string
	Card      *pokemon.Card
}

// NewPage builds the page for a session
func NewPage(session *lookupsession.Session) *Page {
	return &Page{
		SessionID: session.ID,
		Seq:       session.Seq,
		Query:     session.Query,
		Card:      session.Card(),
	}
}

// Templates parses the embedded templates
func Templates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(Funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse templates")
	}
	return tmpl, nil
}

// WritePage renders the widget page to w
func WritePage(w io.Writer, page *Page) error {
	tmpl, err := Templates()
	if err != nil {
		return err
	}
	if err := tmpl.ExecuteTemplate(w, PageTemplate, page); err != nil {
		return errors.Wrap(err, "failed to render page")
	}
	return nil
}
