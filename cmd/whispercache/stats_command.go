package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := ctx.ensureCache()
			if err != nil {
				return err
			}

			stats := cache.Stats()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Entries: %d\n", stats.Count)
			fmt.Fprintf(out, "Size:    %s / %s\n",
				humanize.IBytes(uint64(stats.TotalBytes)),
				humanize.IBytes(uint64(stats.CapacityBytes)))
			fmt.Fprintf(out, "Usage:   %.1f%%\n", stats.UsagePercent)
			return nil
		},
	}
}
