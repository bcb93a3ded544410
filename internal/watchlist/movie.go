package watchlist

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Movie is a locally persisted watchlist entry.
type Movie struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Year          *int      `json:"year,omitempty"`
	Plot          string    `json:"plot,omitempty"`
	PosterURL     string    `json:"poster_url,omitempty"`
	Runtime       int       `json:"runtime"`
	WatchPosition int       `json:"watch_position"`
	Seen          bool      `json:"seen"`
	VoteAverage   *float64  `json:"vote_average,omitempty"`
	VoteCount     *int      `json:"vote_count,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	IsFetching    bool      `json:"is_fetching"`
	// Providers is conceptually a set keyed by name and kind.
	Providers []Provider `json:"providers"`
}

// NewMovie creates a record for a freshly added title. The record starts in
// the fetching state because enrichment follows immediately.
func NewMovie(title string) *Movie {
	return &Movie{
		ID:         uuid.NewString(),
		Title:      strings.TrimSpace(title),
		CreatedAt:  time.Now().UTC(),
		IsFetching: true,
	}
}

// DisplayTitle returns the title followed by the release year when known.
func (m *Movie) DisplayTitle() string {
	if m.Year != nil {
		return fmt.Sprintf("%s (%d)", m.Title, *m.Year)
	}
	return m.Title
}

// RatingLabel renders the average rating with one decimal and the vote count.
// It returns an empty string when no rating is known.
func (m *Movie) RatingLabel() string {
	if m.VoteAverage == nil {
		return ""
	}
	label := strconv.FormatFloat(*m.VoteAverage, 'f', 1, 64)
	if m.VoteCount != nil {
		label += fmt.Sprintf(" (%d votes)", *m.VoteCount)
	}
	return label
}

// ToggleSeen flips the seen flag.
func (m *Movie) ToggleSeen() {
	m.Seen = !m.Seen
}

// SetWatchPosition records how many minutes have been watched, clamped to the
// known runtime.
func (m *Movie) SetWatchPosition(minutes int) {
	if minutes < 0 {
		minutes = 0
	}
	if m.Runtime > 0 && minutes > m.Runtime {
		minutes = m.Runtime
	}
	m.WatchPosition = minutes
}

// SetRuntime records the runtime and pulls the watch position down when it
// would exceed the new value.
func (m *Movie) SetRuntime(minutes int) {
	if minutes < 0 {
		minutes = 0
	}
	m.Runtime = minutes
	if minutes > 0 && m.WatchPosition > minutes {
		m.WatchPosition = minutes
	}
}

// ProvidersByKind returns the providers of a single kind, preserving order.
func (m *Movie) ProvidersByKind(kind Kind) []Provider {
	var out []Provider
	for _, p := range m.Providers {
		if p.Kind == kind {
			out = append(out, p)
		}
	}
	return out
}
