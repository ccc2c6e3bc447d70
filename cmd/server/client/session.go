package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pokedex-api/internal/errors"
	"github.com/KirkDiggler/pokedex-api/internal/handlers/grpc/v1alpha1"
)

var loadDefault bool

var sessionCmd = &cobra.Command{
	Use:   "session [session-id]",
	Short: "Show a widget session",
	Long: `Show a widget session. With --load-default the page-load lookup runs first. Examples:

  client session sess_1234
  client session sess_1234 --load-default`,
	Args: cobra.ExactArgs(1),
	RunE: runSession,
}

func init() {
	sessionCmd.Flags().BoolVar(&loadDefault, "load-default", false, "Run the default lookup on the session")
}

func runSession(cmd *cobra.Command, args []string) error {
	client, cleanup, err := createLookupClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := newRequest(map[string]any{v1alpha1.FieldSessionID: args[0]})
	if err != nil {
		return err
	}

	call := client.GetSession
	if loadDefault {
		call = client.LoadDefault
	}

	resp, err := call(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", errors.FromGRPCError(err))
	}

	return printSessionResponse(cmd.OutOrStdout(), resp)
}
