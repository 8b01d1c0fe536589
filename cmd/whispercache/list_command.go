package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"whispercache/internal/cacheindex"
)

const stampLayout = "2006-01-02 15:04"

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := ctx.ensureCache()
			if err != nil {
				return err
			}

			entries := cache.List()
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "Cached entries: none")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					entry.OriginalURL,
					humanize.IBytes(uint64(entry.FileSize)),
					formatDownloadTime(entry),
				})
			}

			if stdoutIsTerminal() {
				fmt.Fprintln(out, renderTable(
					[]string{"Key", "Size", "Downloaded"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignLeft},
				))
				return nil
			}
			for _, row := range rows {
				fmt.Fprintln(out, strings.Join(row, "\t"))
			}
			return nil
		},
	}
}

func formatDownloadTime(entry cacheindex.Entry) string {
	if entry.DownloadTime <= 0 {
		return "unknown"
	}
	return time.UnixMilli(entry.DownloadTime).Local().Format(stampLayout)
}
