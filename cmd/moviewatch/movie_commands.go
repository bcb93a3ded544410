package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"moviewatch/internal/catalog"
	"moviewatch/internal/store"
	"moviewatch/internal/watchlist"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title>",
		Short: "Add a title to the watchlist and fetch its metadata",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args, " ")
			return ctx.withWatchlist(cmd.ErrOrStderr(), func(env *watchlistEnv) error {
				movie, err := env.workflow.AddTitle(cmd.Context(), title)
				if movie == nil {
					return err
				}
				reportEnrichment(cmd, "Added", movie, err)
				return nil
			})
		},
	}
}

// reportEnrichment prints the outcome of an add or refresh. Enrichment
// failures are not command failures: the record stays in the watchlist.
func reportEnrichment(cmd *cobra.Command, verb string, movie *watchlist.Movie, err error) {
	out := cmd.OutOrStdout()
	if err == nil {
		fmt.Fprintf(out, "%s %s [%s]\n", verb, movie.DisplayTitle(), shortID(movie.ID))
		return
	}
	reason := err.Error()
	if errors.Is(err, catalog.ErrNotFound) {
		reason = "no match on TMDB"
	}
	fmt.Fprintf(out, "%s %s [%s]: enrichment failed (%s)\n", verb, movie.Title, shortID(movie.ID), reason)
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the watchlist, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				movies, err := st.List(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					if movies == nil {
						movies = []*watchlist.Movie{}
					}
					return writeJSON(cmd, movies)
				}
				out := cmd.OutOrStdout()
				if len(movies) == 0 {
					fmt.Fprintln(out, "Watchlist is empty")
					return nil
				}
				fmt.Fprintln(out, renderMovieList(movies))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one movie with its providers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				movie, err := st.Find(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, movie)
				}
				fmt.Fprint(cmd.OutOrStdout(), renderMovieDetail(movie))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func newRefreshCommand(ctx *commandContext) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "refresh [id]",
		Short: "Fetch metadata again for one movie or the whole watchlist",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) == 1) {
				return errors.New("specify a movie id or --all")
			}
			return ctx.withWatchlist(cmd.ErrOrStderr(), func(env *watchlistEnv) error {
				var targets []*watchlist.Movie
				if all {
					movies, err := env.store.List(cmd.Context())
					if err != nil {
						return err
					}
					targets = movies
				} else {
					movie, err := env.store.Find(cmd.Context(), args[0])
					if err != nil {
						return err
					}
					targets = []*watchlist.Movie{movie}
				}

				failed := 0
				for _, movie := range targets {
					err := env.workflow.Run(cmd.Context(), movie)
					if err != nil {
						failed++
					}
					reportEnrichment(cmd, "Refreshed", movie, err)
				}
				if all {
					fmt.Fprintf(cmd.OutOrStdout(), "Refreshed %d movies (%d failed)\n", len(targets), failed)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Refresh every movie")
	return cmd
}

func newSeenCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "seen <id>",
		Short: "Toggle the seen flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				movie, err := st.Find(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				movie.ToggleSeen()
				if err := st.Save(cmd.Context(), movie); err != nil {
					return err
				}
				state := "unseen"
				if movie.Seen {
					state = "seen"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Marked %s as %s\n", movie.DisplayTitle(), state)
				return nil
			})
		},
	}
}

func newPositionCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "position <id> <minutes>",
		Short: "Record how far into a movie you are",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := strconv.Atoi(strings.TrimSpace(args[1]))
			if err != nil {
				return fmt.Errorf("invalid minutes %q", args[1])
			}
			return ctx.withStore(func(st *store.Store) error {
				movie, err := st.Find(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				movie.SetWatchPosition(minutes)
				if err := st.Save(cmd.Context(), movie); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", movie.DisplayTitle(), progressLabel(movie))
				return nil
			})
		},
	}
}

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a movie from the watchlist",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				movie, err := st.Find(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if err := st.Delete(cmd.Context(), movie.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", movie.DisplayTitle())
				return nil
			})
		},
	}
}
