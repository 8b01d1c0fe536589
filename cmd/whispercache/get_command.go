package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "get <url-or-path>",
		Short: "Resolve a resource to a cached local file",
		Long: `Resolve an audio URL or local path through the cache, fetching and caching
it on a miss. Prints the local file path, or the original identifier when the
resource could not be cached.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := ctx.ensureCache()
			if err != nil {
				return err
			}

			resolved := cache.GetCachedAudioURL(cmd.Context(), args[0])
			fmt.Fprintln(cmd.OutOrStdout(), resolved)
			return nil
		},
	}
}
