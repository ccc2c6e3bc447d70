package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/pokedex-api/internal/errors"
	"github.com/KirkDiggler/pokedex-api/internal/handlers/grpc/v1alpha1"
)

var searchSessionID string

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search a Pokémon on a widget session",
	Long: `Search on a widget session, creating one when --session is not given. Examples:

  client search pikachu
  client search bulbasaur --session sess_1234`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchSessionID, "session", "", "Widget session id")
}

func runSearch(cmd *cobra.Command, args []string) error {
	client, cleanup, err := createLookupClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	sessionID := searchSessionID
	if sessionID == "" {
		created, err := client.CreateSession(ctx, &structpb.Struct{})
		if err != nil {
			return fmt.Errorf("failed to create session: %w", errors.FromGRPCError(err))
		}
		sessionID = created.GetFields()[v1alpha1.FieldSession].GetStructValue().GetFields()["id"].GetStringValue()
	}

	req, err := newRequest(map[string]any{
		v1alpha1.FieldSessionID: sessionID,
		v1alpha1.FieldQuery:     args[0],
	})
	if err != nil {
		return err
	}

	resp, err := client.Search(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to search: %w", errors.FromGRPCError(err))
	}

	return printSessionResponse(cmd.OutOrStdout(), resp)
}
