package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every cached file and empty the index",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := ctx.ensureCache()
			if err != nil {
				return err
			}

			before := cache.Stats()
			cache.Clear(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d entries\n", before.Count)
			return nil
		},
	}
}
