package v1alpha1

import (
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/pokedex-api/internal/entities/pokemon"
	"github.com/KirkDiggler/pokedex-api/internal/errors"
	lookupsession "github.com/KirkDiggler/pokedex-api/internal/repositories/lookup_session"
)

// Message field names
const (
	FieldSessionID  = "session_id"
	FieldQuery      = "query"
	FieldIdentifier = "identifier"
	FieldSession    = "session"
	FieldCard       = "card"
	FieldResult     = "result"
	FieldPokemon    = "pokemon"
	FieldError      = "error"
	FieldStale      = "stale"
)

func pokemonToMap(p *pokemon.Pokemon) map[string]any {
	if p == nil {
		return nil
	}

	abilities := make([]any, 0, len(p.Abilities))
	for _, a := range p.Abilities {
		abilities = append(abilities, a)
	}

	return map[string]any{
		"identifier": p.Identifier,
		"name":       p.Name,
		"sprite_url": p.SpriteURL,
		"id":         p.ID,
		"height_m":   p.HeightMeters,
		"weight_kg":  p.WeightKg,
		"abilities":  abilities,
	}
}

func sessionToMap(s *lookupsession.Session) map[string]any {
	m := map[string]any{
		"id":           s.ID,
		"status":       string(s.Status),
		"message":      s.Message,
		"title":        s.Title,
		"query":        s.Query,
		"card_visible": s.CardVisible,
		"placeholder":  s.Placeholder,
		"busy":         s.Busy,
		"seq":          s.Seq,
		"created_at":   formatTime(s.CreatedAt),
		"updated_at":   formatTime(s.UpdatedAt),
		"expires_at":   formatTime(s.ExpiresAt),
	}
	if s.Result != nil {
		m["result"] = pokemonToMap(s.Result)
	}
	return m
}

func cardToMap(c *pokemon.Card) map[string]any {
	m := map[string]any{
		"title":           c.Title,
		"visible":         c.Visible,
		"placeholder":     c.Placeholder,
		"status":          string(c.Status),
		"message":         c.Message,
		"search_disabled": c.SearchDisabled,
		"name_caption":    c.NameCaption(),
		"image_url":       c.ImageURL(),
	}
	if c.Result != nil {
		m["result"] = pokemonToMap(c.Result)
	}
	return m
}

func errorToMap(err error) map[string]any {
	return map[string]any{
		"code":    errors.GetCode(err).String(),
		"message": errors.GetMessage(err),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// PokemonToStruct encodes a lookup result as a pokemon message
func PokemonToStruct(p *pokemon.Pokemon) (*structpb.Struct, error) {
	if p == nil {
		return nil, errors.InvalidArgument("pokemon is required")
	}
	s, err := structpb.NewStruct(pokemonToMap(p))
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode pokemon")
	}
	return s, nil
}

// PokemonFromStruct reads a pokemon message back into a lookup result
func PokemonFromStruct(s *structpb.Struct) (*pokemon.Pokemon, error) {
	if s == nil {
		return nil, errors.InvalidArgument("pokemon message is empty")
	}

	fields := s.GetFields()
	p := &pokemon.Pokemon{
		Identifier:   fields["identifier"].GetStringValue(),
		Name:         fields["name"].GetStringValue(),
		SpriteURL:    fields["sprite_url"].GetStringValue(),
		ID:           int(fields["id"].GetNumberValue()),
		HeightMeters: fields["height_m"].GetNumberValue(),
		WeightKg:     fields["weight_kg"].GetNumberValue(),
	}
	for _, v := range fields["abilities"].GetListValue().GetValues() {
		p.Abilities = append(p.Abilities, v.GetStringValue())
	}

	if p.Name == "" {
		return nil, errors.InvalidArgument("pokemon message has no name")
	}
	return p, nil
}
