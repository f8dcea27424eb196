package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"podfeed/internal/episode"
	"podfeed/internal/feed"
	"podfeed/internal/logging"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the episodes currently in the feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			summary, err := feed.Open(cfg.Paths.FeedFile, logging.NewComponentLogger(logger, "cli")).Episodes()
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}

			out := cmd.OutOrStdout()
			if len(summary.Entries) == 0 {
				fmt.Fprintf(out, "%s has no episodes\n", cfg.Paths.FeedFile)
				return nil
			}
			rows := make([][]string, 0, len(summary.Entries))
			for i, entry := range summary.Entries {
				published := ""
				if entry.Published != nil {
					published = entry.Published.Format(episode.PubDateLayout)
				}
				duration := entry.Duration
				if duration == "" {
					duration = "-"
				}
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					entry.Title,
					published,
					duration,
					formatBytes(entry.Length),
					entry.GUID,
				})
			}
			if summary.Title != "" {
				fmt.Fprintln(out, summary.Title)
			}
			fmt.Fprintln(out, renderTable([]tableColumn{
				{Header: "#", AlignRight: true},
				{Header: "Title"},
				{Header: "Published"},
				{Header: "Duration", AlignRight: true},
				{Header: "Size", AlignRight: true},
				{Header: "GUID"},
			}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print episodes as JSON")
	return cmd
}

func formatBytes(n int64) string {
	const unit = 1024
	if n <= 0 {
		return "-"
	}
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
