package render

import (
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/KirkDiggler/pokedex-api/internal/entities/pokemon"
)

// NewTable returns a table writer with the CLI style, mirrored to w
func NewTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

// WriteCard prints a lookup result as a two column table
func WriteCard(w io.Writer, p *pokemon.Pokemon) {
	t := NewTable(w)
	t.SetTitle(p.Name)
	t.AppendRows([]table.Row{
		{"ID", p.ID},
		{"Height", pokemon.FormatDecimal(p.HeightMeters) + " m"},
		{"Weight", pokemon.FormatDecimal(p.WeightKg) + " kg"},
		{"Abilities", strings.Join(p.Abilities, ", ")},
		{"Sprite", p.SpriteURL},
	})
	t.Render()
}
