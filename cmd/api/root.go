package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "chainsearch",
		Short: "Crypto address search API",
		Long: `ChainSearch serves normalized BTC, ETH and BCH transaction and balance
lookups, a per-user address registry and search history.

Examples:
  chainsearch                 # same as "serve"
  chainsearch serve           # start the HTTP API
  chainsearch migrate up      # apply pending schema migrations
  chainsearch migrate down    # roll back every migration`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	root.AddCommand(newServeCmd())
	root.AddCommand(newMigrateCmd())
	return root
}
