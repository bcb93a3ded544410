package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"moviewatch/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var (
		follow  bool
		lines   int
		movieID string
		level   string
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Display the diagnostics log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			filter := logs.Filter{MovieID: movieID}
			if err := filter.MinLevel.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
				return fmt.Errorf("invalid level %q", level)
			}

			out := cmd.OutOrStdout()
			opts := logs.TailOptions{Offset: -1, Limit: max(lines, 0)}
			if opts.Limit == 0 {
				opts.Offset = 0
			}
			printed := false
			for {
				result, err := logs.Tail(cmd.Context(), cfg.LogPath(), opts)
				if err != nil {
					if errors.Is(err, cmd.Context().Err()) {
						return nil
					}
					return fmt.Errorf("tail logs: %w", err)
				}
				for _, line := range result.Lines {
					entry, ok := logs.ParseEntry(line)
					if !ok {
						continue
					}
					if filter.Match(entry) {
						fmt.Fprintln(out, logs.Format(entry))
						printed = true
					}
				}
				if !follow {
					if !printed {
						fmt.Fprintln(out, "No log entries available")
					}
					return nil
				}
				if cmd.Context().Err() != nil {
					return nil
				}
				opts = logs.TailOptions{Offset: result.Offset, Follow: true, Wait: time.Second}
			}
		},
	}

	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Follow log output")
	cmd.Flags().IntVarP(&lines, "lines", "n", 20, "Number of lines to read (0 for all)")
	cmd.Flags().StringVar(&movieID, "movie", "", "Only show entries for this movie id or id prefix")
	cmd.Flags().StringVar(&level, "level", slog.LevelInfo.String(), "Minimum level (debug, info, warn, error)")
	return cmd
}
