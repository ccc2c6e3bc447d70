// Package client provides commands that call the lookup gRPC service
package client

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/pokedex-api/internal/handlers/grpc/v1alpha1"
	"github.com/KirkDiggler/pokedex-api/internal/render"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration

	// Output flags
	jsonOutput bool
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Client commands for the lookup service",
	Long:  `Client commands call a running server over gRPC.`,
}

func init() {
	// Add persistent flags for all client commands
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")
	ClientCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print raw responses as JSON")

	ClientCmd.AddCommand(searchCmd)
	ClientCmd.AddCommand(sessionCmd)
	ClientCmd.AddCommand(pokemonCmd)
}

// createConnection creates a gRPC connection to the server
func createConnection() (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	return conn, nil
}

// createLookupClient creates a lookup service client
func createLookupClient() (v1alpha1.LookupServiceClient, func(), error) {
	conn, err := createConnection()
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	return v1alpha1.NewLookupServiceClient(conn), cleanup, nil
}

func newRequest(fields map[string]any) (*structpb.Struct, error) {
	req, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	return req, nil
}

func printJSON(w io.Writer, msg *structpb.Struct) error {
	data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// printSessionResponse prints the status line of a session response and the
// card when it holds a result
func printSessionResponse(w io.Writer, resp *structpb.Struct) error {
	if jsonOutput {
		return printJSON(w, resp)
	}

	fields := resp.GetFields()
	session := fields[v1alpha1.FieldSession].GetStructValue().GetFields()
	card := fields[v1alpha1.FieldCard].GetStructValue().GetFields()

	fmt.Fprintf(w, "Session: %s (seq %d)\n",
		session["id"].GetStringValue(),
		int(session["seq"].GetNumberValue()))
	fmt.Fprintf(w, "Status:  %s\n", session["status"].GetStringValue())
	if title := card["title"].GetStringValue(); title != "" {
		fmt.Fprintf(w, "Title:   %s\n", title)
	}
	if msg := session["message"].GetStringValue(); msg != "" {
		fmt.Fprintf(w, "Message: %s\n", msg)
	}
	if fields[v1alpha1.FieldStale].GetBoolValue() {
		fmt.Fprintln(w, "A newer lookup replaced this one.")
	}

	result := session["result"].GetStructValue()
	if result == nil {
		return nil
	}
	p, err := v1alpha1.PokemonFromStruct(result)
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	render.WriteCard(w, p)
	return nil
}
