package pokemon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/pokedex-api/internal/entities/pokemon"
)

func TestUnitConversion(t *testing.T) {
	assert.Equal(t, 0.4, pokemon.DecimetersToMeters(4))
	assert.Equal(t, 6.0, pokemon.HectogramsToKilograms(60))
	assert.Equal(t, 0.0, pokemon.DecimetersToMeters(0))
	assert.Equal(t, 1000.0, pokemon.HectogramsToKilograms(10000))
}

func TestFormatDecimal(t *testing.T) {
	testCases := []struct {
		in   float64
		want string
	}{
		{0.4, "0.4"},
		{6.0, "6"},
		{6.9, "6.9"},
		{14.5, "14.5"},
	}

	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, pokemon.FormatDecimal(tc.in))
		})
	}
}

func TestClone(t *testing.T) {
	original := &pokemon.Pokemon{Name: "pikachu", Abilities: []string{"static", "lightning-rod"}}
	clone := original.Clone()
	clone.Abilities[0] = "changed"

	assert.Equal(t, "static", original.Abilities[0])
	assert.Nil(t, (*pokemon.Pokemon)(nil).Clone())
}

func TestCardCaptions(t *testing.T) {
	t.Run("with result", func(t *testing.T) {
		card := &pokemon.Card{Result: &pokemon.Pokemon{Name: "pikachu", SpriteURL: "https://img/25.svg"}}
		assert.Equal(t, "pikachu", card.NameCaption())
		assert.Equal(t, "https://img/25.svg", card.ImageURL())
		assert.Equal(t, "Image of pikachu", card.ImageAlt())
	})

	t.Run("placeholder", func(t *testing.T) {
		card := &pokemon.Card{Placeholder: true, Status: pokemon.StatusError}
		assert.Equal(t, "Not found", card.NameCaption())
		assert.Equal(t, pokemon.PlaceholderImageURL, card.ImageURL())
		assert.Empty(t, card.ImageAlt())
	})

	t.Run("loading", func(t *testing.T) {
		card := &pokemon.Card{Status: pokemon.StatusLoading}
		assert.Equal(t, "Loading...", card.NameCaption())
		assert.Empty(t, card.ImageURL())
	})
}

func TestStatusAndPolicy(t *testing.T) {
	assert.True(t, pokemon.StatusLoading.IsValid())
	assert.False(t, pokemon.Status("done").IsValid())
	assert.True(t, pokemon.ErrorCardPlaceholder.IsValid())
	assert.False(t, pokemon.ErrorCardPolicy("fade").IsValid())
}
