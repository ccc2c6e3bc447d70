// Package main is the entry point for the pokedex server and CLI
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pokedex-api/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "pokedex-api",
	Short: "Pokédex lookup widget server",
	Long: `Pokédex API serves a Pokémon lookup widget backed by the public PokeAPI,
over HTTP (web page, JSON API and websocket status stream) and gRPC.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
