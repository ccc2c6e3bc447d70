package pokeapi

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/pokedex-api/internal/entities/pokemon"
)

func strPtr(s string) *string { return &s }

func TestConvertPokemon(t *testing.T) {
	resp := &PokemonResponse{
		ID:     132,
		Name:   "ditto",
		Height: 3,
		Weight: 40,
		Sprites: Sprites{
			FrontDefault: strPtr("front.png"),
			Other: OtherSprites{
				DreamWorld: SpriteSet{FrontDefault: strPtr("dream.svg")},
			},
		},
		Abilities: []AbilitySlot{
			{Ability: NamedResource{Name: "limber"}, Slot: 1},
			{Ability: NamedResource{Name: "imposter"}, IsHidden: true, Slot: 3},
			{Ability: NamedResource{Name: "limber"}, Slot: 4},
		},
	}

	got, err := convertPokemon("Ditto", resp)
	require.NoError(t, err)

	want := &pokemon.Pokemon{
		Identifier:   "Ditto",
		Name:         "ditto",
		SpriteURL:    "dream.svg",
		ID:           132,
		HeightMeters: 0.3,
		WeightKg:     4,
		Abilities:    []string{"limber", "imposter", "limber"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("convertPokemon() mismatch (-want +got):\n%s", diff)
	}
}

func TestSpriteURL(t *testing.T) {
	testCases := []struct {
		name    string
		sprites Sprites
		want    string
	}{
		{
			name: "dream world preferred",
			sprites: Sprites{
				FrontDefault: strPtr("front.png"),
				Other:        OtherSprites{DreamWorld: SpriteSet{FrontDefault: strPtr("dream.svg")}},
			},
			want: "dream.svg",
		},
		{
			name:    "falls back to front default",
			sprites: Sprites{FrontDefault: strPtr("front.png")},
			want:    "front.png",
		},
		{
			name: "empty dream world falls back",
			sprites: Sprites{
				FrontDefault: strPtr("front.png"),
				Other:        OtherSprites{DreamWorld: SpriteSet{FrontDefault: strPtr("")}},
			},
			want: "front.png",
		},
		{
			name: "nothing available",
			want: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, spriteURL(&tc.sprites))
		})
	}
}

func TestConvertPokemonRejectsEmptyName(t *testing.T) {
	_, err := convertPokemon("x", &PokemonResponse{ID: 1})
	assert.Error(t, err)

	_, err = convertPokemon("x", nil)
	assert.Error(t, err)
}
