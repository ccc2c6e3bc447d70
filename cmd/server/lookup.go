package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/KirkDiggler/pokedex-api/internal/clients/pokeapi"
	"github.com/KirkDiggler/pokedex-api/internal/errors"
	"github.com/KirkDiggler/pokedex-api/internal/handlers/grpc/v1alpha1"
	"github.com/KirkDiggler/pokedex-api/internal/orchestrators/lookup"
	"github.com/KirkDiggler/pokedex-api/internal/pkg/clock"
	"github.com/KirkDiggler/pokedex-api/internal/pkg/idgen"
	"github.com/KirkDiggler/pokedex-api/internal/render"
	lookupsession "github.com/KirkDiggler/pokedex-api/internal/repositories/lookup_session"
)

var (
	lookupJSON     bool
	lookupNameOnly bool
	lookupBaseURL  string
	lookupTimeout  = pokeapi.DefaultHTTPTimeout
)

var lookupCmd = &cobra.Command{
	Use:   "lookup [name-or-id]",
	Short: "Look a Pokémon up directly against the PokeAPI",
	Long: `Look a Pokémon up without a server and print its card. Examples:

  lookup pikachu
  lookup 25 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runLookup,
}

func init() {
	lookupCmd.Flags().BoolVar(&lookupJSON, "json", false, "Print the result as JSON")
	lookupCmd.Flags().BoolVar(&lookupNameOnly, "name-only", false, "Reject numeric ids")
	lookupCmd.Flags().StringVar(&lookupBaseURL, "base-url", pokeapi.DefaultBaseURL, "PokeAPI base URL")
	lookupCmd.Flags().DurationVar(&lookupTimeout, "http-timeout", lookupTimeout, "PokeAPI request timeout")
}

func runLookup(cmd *cobra.Command, args []string) error {
	pokeClient, err := pokeapi.New(&pokeapi.Config{
		BaseURL:     lookupBaseURL,
		HTTPTimeout: lookupTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to create pokeapi client: %w", err)
	}

	svc, err := lookup.NewOrchestrator(&lookup.Config{
		Client:      pokeClient,
		SessionRepo: lookupsession.NewInMemory(clock.New()),
		IDGenerator: idgen.NewSequential("cli"),
		Logger:      newLogger("error"),
		NameOnly:    lookupNameOnly,
	})
	if err != nil {
		return fmt.Errorf("failed to create lookup service: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	out, err := svc.Lookup(ctx, &lookup.LookupInput{Identifier: args[0]})
	if err != nil {
		return fmt.Errorf("lookup failed: %s", errors.GetMessage(err))
	}

	if !lookupJSON {
		render.WriteCard(cmd.OutOrStdout(), out.Pokemon)
		return nil
	}

	msg, err := v1alpha1.PokemonToStruct(out.Pokemon)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))

	return nil
}
