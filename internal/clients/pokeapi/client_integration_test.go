//go:build integration
// +build integration

package pokeapi_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/pokedex-api/internal/clients/pokeapi"
	"github.com/KirkDiggler/pokedex-api/internal/errors"
)

func TestGetPokemon_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	client, err := pokeapi.New(&pokeapi.Config{})
	require.NoError(t, err)

	ctx := context.Background()

	result, err := client.GetPokemon(ctx, "pikachu")
	require.NoError(t, err)

	assert.Equal(t, "pikachu", result.Name)
	assert.Equal(t, 25, result.ID)
	assert.Equal(t, 0.4, result.HeightMeters)
	assert.Equal(t, 6.0, result.WeightKg)
	assert.NotEmpty(t, result.SpriteURL)
	assert.Contains(t, result.Abilities, "static")

	_, err = client.GetPokemon(ctx, "notapokemon123")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}
