package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"moviewatch/internal/catalog"
	"moviewatch/internal/search"
)

type searchResultView struct {
	Index        int    `json:"index"`
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Year         string `json:"year,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var (
		addIndex int
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search TMDB; interactive when run on a terminal without a query",
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				if !isInteractive(cmd.InOrStdin(), cmd.OutOrStdout()) {
					return errors.New("a query is required when not running on a terminal")
				}
				return runInteractiveSearch(cmd, ctx)
			}

			return ctx.withWatchlist(cmd.ErrOrStderr(), func(env *watchlistEnv) error {
				results, err := env.client.SearchTitles(cmd.Context(), query)
				if err != nil {
					return err
				}

				if addIndex > 0 {
					if addIndex > len(results) {
						return fmt.Errorf("result %d out of range (%d results)", addIndex, len(results))
					}
					movie, err := env.workflow.AddTitle(cmd.Context(), resultTitle(results[addIndex-1]))
					if movie == nil {
						return err
					}
					reportEnrichment(cmd, "Added", movie, err)
					return nil
				}

				views := make([]searchResultView, 0, len(results))
				for i, result := range results {
					views = append(views, searchResultView{
						Index:        i + 1,
						ID:           result.ID,
						Title:        resultTitle(result),
						Year:         result.Year(),
						ThumbnailURL: env.client.ThumbnailURL(result.PosterPath),
					})
				}
				if asJSON {
					return writeJSON(cmd, views)
				}
				out := cmd.OutOrStdout()
				if len(views) == 0 {
					fmt.Fprintf(out, "No results for %q\n", query)
					return nil
				}
				rows := make([][]string, 0, len(views))
				for _, view := range views {
					rows = append(rows, []string{
						strconv.Itoa(view.Index),
						view.Title,
						orDash(view.Year),
						strconv.FormatInt(view.ID, 10),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"#", "Title", "Year", "TMDB ID"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight},
				))
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&addIndex, "add", 0, "Add the Nth result to the watchlist")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

// resultTitle is the title a selected result is added under.
func resultTitle(result catalog.SearchResult) string {
	if title := strings.TrimSpace(result.Title); title != "" {
		return title
	}
	return "Untitled"
}

func isInteractive(in io.Reader, out io.Writer) bool {
	return isTerminal(in) && isTerminal(out)
}

func runInteractiveSearch(cmd *cobra.Command, ctx *commandContext) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	// The screen belongs to the search UI; diagnostics only go to the log file.
	return ctx.withWatchlist(io.Discard, func(env *watchlistEnv) error {
		session := search.New(env.client,
			search.WithDebounce(cfg.DebounceInterval()),
			search.WithLogger(env.logger),
		)
		defer session.Close()

		model := newSearchModel(session)
		program := tea.NewProgram(model,
			tea.WithContext(cmd.Context()),
			tea.WithInput(cmd.InOrStdin()),
			tea.WithOutput(cmd.OutOrStdout()),
		)
		final, err := program.Run()
		if err != nil {
			return fmt.Errorf("run search ui: %w", err)
		}
		picked, ok := final.(*searchModel)
		if !ok || picked.selected == nil {
			return nil
		}
		movie, err := env.workflow.AddTitle(cmd.Context(), resultTitle(*picked.selected))
		if movie == nil {
			return err
		}
		reportEnrichment(cmd, "Added", movie, err)
		return nil
	})
}
