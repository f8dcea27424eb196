package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"podfeed/internal/publisher"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <audio-file> <title> [description]",
		Short: "Copy an audio file into the episodes directory and add it to the feed",
		Long: `Copy an audio file into the episodes directory and append a new item to the feed.

The file is stored as <episodes-dir>/<normalized-title>.mp3, replacing any file
with the same normalized name. The description defaults to the title. When
ffprobe is unavailable the item is published without itunes:duration.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 || len(args) > 3 {
				cmd.PrintErr(cmd.UsageString())
				return fmt.Errorf("add requires an audio file and a title (got %d arguments)", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			source, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve audio path: %w", err)
			}
			req := publisher.Request{Source: source, Title: args[1]}
			if len(args) == 3 {
				req.Description = args[2]
			}

			pub, err := publisher.New(cfg, logger)
			if err != nil {
				return err
			}
			result, err := pub.Add(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Copied: %s (%d bytes)\n", result.Media.Path, result.Media.Size)
			if result.Episode.Duration.Known {
				fmt.Fprintf(out, "Duration: %ss\n", result.Episode.Duration)
			} else {
				fmt.Fprintln(out, "Duration: unknown")
			}
			fmt.Fprintf(out, "Episode added: %s\n", strings.TrimSpace(result.Episode.Title))
			fmt.Fprintf(out, "Feed URL: %s\n", result.FeedURL)
			return nil
		},
	}
}
