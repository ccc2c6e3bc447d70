package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pokedex-api/internal/errors"
	"github.com/KirkDiggler/pokedex-api/internal/handlers/grpc/v1alpha1"
	"github.com/KirkDiggler/pokedex-api/internal/render"
)

var pokemonCmd = &cobra.Command{
	Use:   "pokemon [name-or-id]",
	Short: "Look a Pokémon up through the server",
	Args:  cobra.ExactArgs(1),
	RunE:  runPokemon,
}

func runPokemon(cmd *cobra.Command, args []string) error {
	client, cleanup, err := createLookupClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := newRequest(map[string]any{v1alpha1.FieldIdentifier: args[0]})
	if err != nil {
		return err
	}

	resp, err := client.GetPokemon(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to get pokemon: %w", errors.FromGRPCError(err))
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), resp)
	}

	p, err := v1alpha1.PokemonFromStruct(resp.GetFields()[v1alpha1.FieldPokemon].GetStructValue())
	if err != nil {
		return err
	}
	render.WriteCard(cmd.OutOrStdout(), p)
	return nil
}
