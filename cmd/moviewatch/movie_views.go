package main

import (
	"fmt"
	"strconv"
	"strings"

	"moviewatch/internal/watchlist"
)

const shortIDLength = 8

func shortID(id string) string {
	if len(id) <= shortIDLength {
		return id
	}
	return id[:shortIDLength]
}

func formatMinutes(minutes int) string {
	if minutes <= 0 {
		return "-"
	}
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
}

func progressLabel(movie *watchlist.Movie) string {
	if movie.Runtime <= 0 {
		if movie.WatchPosition > 0 {
			return formatMinutes(movie.WatchPosition)
		}
		return "-"
	}
	return fmt.Sprintf("%s / %s", formatMinutes(movie.WatchPosition), formatMinutes(movie.Runtime))
}

func statusLabel(movie *watchlist.Movie) string {
	switch {
	case movie.IsFetching:
		return "fetching"
	case movie.Seen:
		return "seen"
	default:
		return "to watch"
	}
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func movieRows(movies []*watchlist.Movie) [][]string {
	rows := make([][]string, 0, len(movies))
	for _, movie := range movies {
		rows = append(rows, []string{
			shortID(movie.ID),
			movie.DisplayTitle(),
			statusLabel(movie),
			progressLabel(movie),
			orDash(movie.RatingLabel()),
			strconv.Itoa(len(movie.Providers)),
		})
	}
	return rows
}

func renderMovieList(movies []*watchlist.Movie) string {
	return renderTable(
		[]string{"ID", "Title", "Status", "Progress", "Rating", "Providers"},
		movieRows(movies),
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight},
	)
}

func renderMovieDetail(movie *watchlist.Movie) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", movie.DisplayTitle())
	fmt.Fprintf(&b, "  ID:        %s\n", movie.ID)
	fmt.Fprintf(&b, "  Added:     %s\n", movie.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "  Status:    %s\n", statusLabel(movie))
	fmt.Fprintf(&b, "  Seen:      %s\n", yesNo(movie.Seen))
	fmt.Fprintf(&b, "  Runtime:   %s\n", formatMinutes(movie.Runtime))
	fmt.Fprintf(&b, "  Position:  %s\n", progressLabel(movie))
	fmt.Fprintf(&b, "  Rating:    %s\n", orDash(movie.RatingLabel()))
	fmt.Fprintf(&b, "  Poster:    %s\n", orDash(movie.PosterURL))
	if movie.Plot != "" {
		fmt.Fprintf(&b, "\n%s\n", movie.Plot)
	}

	if len(movie.Providers) == 0 {
		b.WriteString("\nNo streaming providers in the configured region\n")
		return b.String()
	}
	rows := make([][]string, 0, len(movie.Providers))
	for _, kind := range watchlist.Kinds() {
		for _, provider := range movie.ProvidersByKind(kind) {
			rows = append(rows, []string{kind.Label(), provider.Name})
		}
	}
	b.WriteString("\n")
	b.WriteString(renderTable([]string{"Offer", "Provider"}, rows, nil))
	b.WriteString("\n")
	return b.String()
}
