// Command playmate runs the PlayMate backend.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts serveOptions

	root := &cobra.Command{
		Use:   "playmate",
		Short: "PlayMate, a friendly companion for kids",
		Long: `PlayMate serves a child-friendly companion app over HTTP: chat,
games, a drawing canvas, a feelings journal and a parent dashboard.

Run without a subcommand to start the server.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
	root.Flags().StringVar(&opts.addr, "addr", "", "listen address, overrides PORT")

	root.AddCommand(newServeCmd(), newMoodCmd())
	return root
}
