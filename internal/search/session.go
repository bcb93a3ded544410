package search

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"moviewatch/internal/catalog"
	"moviewatch/internal/logging"
)

// DefaultDebounce is the quiet period before a query edit reaches the catalog.
const DefaultDebounce = 320 * time.Millisecond

// Searcher performs the catalog lookup for live search.
type Searcher interface {
	SearchTitles(ctx context.Context, query string) ([]catalog.SearchResult, error)
}

// State describes what the session is currently doing.
type State int

const (
	// StateIdle means no operation is outstanding.
	StateIdle State = iota
	// StateDebouncing means an operation is waiting for input to settle.
	StateDebouncing
	// StateSearching means a catalog request is in flight.
	StateSearching
)

func (s State) String() string {
	switch s {
	case StateDebouncing:
		return "debouncing"
	case StateSearching:
		return "searching"
	default:
		return "idle"
	}
}

// Snapshot is a consistent copy of the session state.
type Snapshot struct {
	Query   string
	Results []catalog.SearchResult
	// ResultsQuery is the trimmed query that produced Results. It lags Query
	// while a newer search is pending or after a failed one.
	ResultsQuery string
	Loading      bool
	State        State
}

// Option configures a Session.
type Option func(*Session)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(interval time.Duration) Option {
	return func(s *Session) {
		if interval >= 0 {
			s.debounce = interval
		}
	}
}

// WithLogger sets the diagnostics logger search failures are reported to.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Session is a single-consumer live search.
type Session struct {
	searcher Searcher
	debounce time.Duration
	logger   *slog.Logger

	mu         sync.Mutex
	query      string
	results    []catalog.SearchResult
	resultsFor string
	loading    bool
	state      State
	generation uint64
	cancel     context.CancelFunc
	closed     bool
	changes    chan struct{}

	wg sync.WaitGroup
}

// New creates an idle session backed by searcher.
func New(searcher Searcher, opts ...Option) *Session {
	s := &Session{
		searcher: searcher,
		debounce: DefaultDebounce,
		logger:   logging.NewNop(),
		results:  []catalog.SearchResult{},
		changes:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.NewComponentLogger(s.logger, "search")
	return s
}

// SetQuery records a query edit and schedules a debounced search for it.
func (s *Session) SetQuery(query string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.query = query
	s.mu.Unlock()
	s.schedule(s.debounce)
}

// SearchImmediately searches for the current query without waiting for the
// debounce period. It still supersedes any outstanding operation.
func (s *Session) SearchImmediately() {
	s.schedule(0)
}

// Query returns the current raw query.
func (s *Session) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Results returns a copy of the visible results in catalog order.
func (s *Session) Results() []catalog.SearchResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]catalog.SearchResult{}, s.results...)
}

// Loading reports whether a catalog request is in flight.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// State returns the current state machine position.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot returns the whole session state at once.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Query:        s.query,
		Results:      append([]catalog.SearchResult{}, s.results...),
		ResultsQuery: s.resultsFor,
		Loading:      s.loading,
		State:        s.state,
	}
}

// Changes delivers a signal after state changes. Signals coalesce, so
// consumers should read a Snapshot on every receive. The channel is closed by
// Close.
func (s *Session) Changes() <-chan struct{} {
	return s.changes
}

// Close cancels any outstanding operation and waits for it to exit.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.supersedeLocked()
	s.closed = true
	close(s.changes)
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *Session) schedule(delay time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.supersedeLocked()
	query := strings.TrimSpace(s.query)
	if query == "" {
		s.results = []catalog.SearchResult{}
		s.resultsFor = ""
		s.notifyLocked()
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	generation := s.generation
	if delay > 0 {
		s.state = StateDebouncing
	}
	s.notifyLocked()

	s.wg.Add(1)
	go s.run(ctx, generation, query, delay)
}

// supersedeLocked cancels the outstanding operation and makes its eventual
// cleanup a no-op.
func (s *Session) supersedeLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.generation++
	s.loading = false
	s.state = StateIdle
}

func (s *Session) run(ctx context.Context, generation uint64, query string, delay time.Duration) {
	defer s.wg.Done()
	defer s.finish(generation)

	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
	}

	s.mu.Lock()
	if ctx.Err() != nil || s.generation != generation {
		s.mu.Unlock()
		return
	}
	s.loading = true
	s.state = StateSearching
	s.notifyLocked()
	s.mu.Unlock()

	results, err := s.searcher.SearchTitles(ctx, query)
	if err != nil {
		if ctx.Err() != nil {
			s.logger.Debug("search cancelled", logging.String(logging.FieldQuery, query))
			return
		}
		logging.WarnWithContext(s.logger, "live search failed", "live_search_failed",
			logging.String(logging.FieldQuery, query),
			logging.String(logging.FieldErrorKind, catalog.Kind(err)),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check network access and the TMDB read token"),
			logging.String(logging.FieldImpact, "previous results stay visible"),
		)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ctx.Err() != nil || strings.TrimSpace(s.query) != query {
		s.logger.Debug("discarding stale search response",
			logging.String(logging.FieldQuery, query),
			logging.Int("results", len(results)),
		)
		return
	}
	s.results = append([]catalog.SearchResult{}, results...)
	s.resultsFor = query
}

func (s *Session) finish(generation uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != generation {
		return
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.loading = false
	s.state = StateIdle
	s.notifyLocked()
}

func (s *Session) notifyLocked() {
	if s.closed {
		return
	}
	select {
	case s.changes <- struct{}{}:
	default:
	}
}
