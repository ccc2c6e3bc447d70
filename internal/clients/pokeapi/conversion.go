package pokeapi

import (
	"github.com/KirkDiggler/pokedex-api/internal/entities/pokemon"
	"github.com/KirkDiggler/pokedex-api/internal/errors"
)

// convertPokemon maps an API response to a lookup result
func convertPokemon(identifier string, resp *PokemonResponse) (*pokemon.Pokemon, error) {
	if resp == nil || resp.Name == "" {
		return nil, errors.Internalf("malformed pokeapi response for %q", identifier).
			WithMeta("identifier", identifier)
	}

	abilities := make([]string, 0, len(resp.Abilities))
	for _, slot := range resp.Abilities {
		abilities = append(abilities, slot.Ability.Name)
	}

	return &pokemon.Pokemon{
		Identifier:   identifier,
		Name:         resp.Name,
		SpriteURL:    spriteURL(&resp.Sprites),
		ID:           resp.ID,
		HeightMeters: pokemon.DecimetersToMeters(resp.Height),
		WeightKg:     pokemon.HectogramsToKilograms(resp.Weight),
		Abilities:    abilities,
	}, nil
}

// spriteURL prefers the dream world artwork, then the default front sprite
func spriteURL(s *Sprites) string {
	if u := deref(s.Other.DreamWorld.FrontDefault); u != "" {
		return u
	}
	return deref(s.FrontDefault)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
