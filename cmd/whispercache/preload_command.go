package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newPreloadCommand(ctx *commandContext) *cobra.Command {
	var currentIndex int

	cmd := &cobra.Command{
		Use:   "preload [keys...]",
		Short: "Warm the cache for upcoming items",
		Long: `Warm the cache for the items following --current in the given list. Keys are
taken from the arguments, or read one per line from stdin when no arguments
are given. The window size comes from cache.preload_window.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := ctx.ensureCache()
			if err != nil {
				return err
			}

			keys := args
			if len(keys) == 0 {
				keys, err = readLines(os.Stdin)
				if err != nil {
					return fmt.Errorf("read keys from stdin: %w", err)
				}
			}
			if len(keys) == 0 {
				return fmt.Errorf("no keys to preload")
			}

			before := cache.Stats().Count
			cache.Preload(cmd.Context(), keys, currentIndex)
			after := cache.Stats().Count
			fmt.Fprintf(cmd.OutOrStdout(), "Warmed %d new entries\n", after-before)
			return nil
		},
	}

	cmd.Flags().IntVar(&currentIndex, "current", 0, "Index of the item currently playing")
	return cmd
}

func readLines(f *os.File) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}
