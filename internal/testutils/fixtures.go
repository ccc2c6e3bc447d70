package testutils

import (
	"github.com/KirkDiggler/pokedex-api/internal/entities/pokemon"
)

// Sprite URLs as served by the live API
const (
	PikachuDreamWorldURL   = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/other/dream-world/25.svg"
	PikachuFrontDefaultURL = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/25.png"
	BulbasaurDreamWorldURL = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/other/dream-world/1.svg"
	SprigatitoFrontURL     = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/906.png"
)

// PikachuJSON is a trimmed GET /pokemon/pikachu response
const PikachuJSON = `{
  "id": 25,
  "name": "pikachu",
  "height": 4,
  "weight": 60,
  "base_experience": 112,
  "abilities": [
    {"ability": {"name": "static", "url": "https://pokeapi.co/api/v2/ability/9/"}, "is_hidden": false, "slot": 1},
    {"ability": {"name": "lightning-rod", "url": "https://pokeapi.co/api/v2/ability/31/"}, "is_hidden": true, "slot": 3}
  ],
  "sprites": {
    "front_default": "` + PikachuFrontDefaultURL + `",
    "back_default": "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/back/25.png",
    "other": {
      "dream_world": {"front_default": "` + PikachuDreamWorldURL + `", "front_female": null},
      "official-artwork": {"front_default": "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/other/official-artwork/25.png"}
    }
  }
}`

// BulbasaurJSON is a trimmed GET /pokemon/bulbasaur response
const BulbasaurJSON = `{
  "id": 1,
  "name": "bulbasaur",
  "height": 7,
  "weight": 69,
  "abilities": [
    {"ability": {"name": "overgrow", "url": "https://pokeapi.co/api/v2/ability/65/"}, "is_hidden": false, "slot": 1},
    {"ability": {"name": "chlorophyll", "url": "https://pokeapi.co/api/v2/ability/34/"}, "is_hidden": true, "slot": 3}
  ],
  "sprites": {
    "front_default": "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/1.png",
    "other": {
      "dream_world": {"front_default": "` + BulbasaurDreamWorldURL + `"}
    }
  }
}`

// SprigatitoJSON has no dream world artwork, so the default sprite is used
const SprigatitoJSON = `{
  "id": 906,
  "name": "sprigatito",
  "height": 4,
  "weight": 41,
  "abilities": [
    {"ability": {"name": "overgrow", "url": "https://pokeapi.co/api/v2/ability/65/"}, "is_hidden": false, "slot": 1},
    {"ability": {"name": "protean", "url": "https://pokeapi.co/api/v2/ability/168/"}, "is_hidden": true, "slot": 3}
  ],
  "sprites": {
    "front_default": "` + SprigatitoFrontURL + `",
    "other": {
      "dream_world": {"front_default": null}
    }
  }
}`

// CreateTestPikachu returns the lookup result PikachuJSON maps to
func CreateTestPikachu() *pokemon.Pokemon {
	return &pokemon.Pokemon{
		Identifier:   "pikachu",
		Name:         "pikachu",
		SpriteURL:    PikachuDreamWorldURL,
		ID:           25,
		HeightMeters: 0.4,
		WeightKg:     6.0,
		Abilities:    []string{"static", "lightning-rod"},
	}
}

// CreateTestBulbasaur returns the lookup result BulbasaurJSON maps to
func CreateTestBulbasaur() *pokemon.Pokemon {
	return &pokemon.Pokemon{
		Identifier:   "bulbasaur",
		Name:         "bulbasaur",
		SpriteURL:    BulbasaurDreamWorldURL,
		ID:           1,
		HeightMeters: 0.7,
		WeightKg:     6.9,
		Abilities:    []string{"overgrow", "chlorophyll"},
	}
}

// CreateTestPokemonWithAbilities returns a synthetic result with the given
// abilities, for replacement checks
func CreateTestPokemonWithAbilities(name string, id int, abilities ...string) *pokemon.Pokemon {
	return &pokemon.Pokemon{
		Identifier:   name,
		Name:         name,
		ID:           id,
		HeightMeters: 1,
		WeightKg:     10,
		Abilities:    abilities,
	}
}
