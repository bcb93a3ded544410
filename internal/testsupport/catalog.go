package testsupport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"moviewatch/internal/catalog"
)

// Endpoint names used by CatalogFixture.Fail and CatalogServer.Calls.
const (
	EndpointSearch    = "search"
	EndpointDetails   = "details"
	EndpointProviders = "providers"
	EndpointAuth      = "authentication"
)

// CatalogFixture describes the responses served by a fake TMDB API.
type CatalogFixture struct {
	// Search maps an exact query to its results. Unknown queries return none.
	Search map[string][]catalog.SearchResult
	// Details maps catalog ids to detail payloads. Unknown ids return 404.
	Details map[int64]catalog.MovieDetails
	// Providers maps catalog ids to region listings. Unknown ids return no regions.
	Providers map[int64]catalog.ProviderRegions
	// Fail forces an HTTP status for an endpoint.
	Fail map[string]int
}

// CatalogServer is an httptest server speaking the subset of the TMDB API the
// catalog client uses.
type CatalogServer struct {
	*httptest.Server

	mu      sync.Mutex
	fixture CatalogFixture
	calls   map[string]int
	queries []string
}

// NewCatalogServer starts a fake TMDB API and registers cleanup.
func NewCatalogServer(t testing.TB, fixture CatalogFixture) *CatalogServer {
	t.Helper()

	server := &CatalogServer{fixture: fixture, calls: make(map[string]int)}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /search/movie", func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("query")
		fixture, ok := server.record(w, EndpointSearch, query)
		if !ok {
			return
		}
		results := fixture.Search[query]
		if results == nil {
			results = []catalog.SearchResult{}
		}
		writeJSON(w, map[string]any{"page": 1, "results": results})
	})
	mux.HandleFunc("GET /movie/{id}", func(w http.ResponseWriter, r *http.Request) {
		fixture, ok := server.record(w, EndpointDetails, "")
		if !ok {
			return
		}
		details, found := fixture.Details[pathID(r)]
		if !found {
			w.WriteHeader(http.StatusNotFound)
			writeJSON(w, map[string]any{"status_code": 34})
			return
		}
		writeJSON(w, details)
	})
	mux.HandleFunc("GET /movie/{id}/watch/providers", func(w http.ResponseWriter, r *http.Request) {
		fixture, ok := server.record(w, EndpointProviders, "")
		if !ok {
			return
		}
		regions := fixture.Providers[pathID(r)]
		if regions == nil {
			regions = catalog.ProviderRegions{}
		}
		writeJSON(w, map[string]any{"id": pathID(r), "results": regions})
	})

	mux.HandleFunc("GET /authentication", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := server.record(w, EndpointAuth, ""); !ok {
			return
		}
		if r.Header.Get("Authorization") == "Bearer " {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(w, map[string]any{"success": true})
	})

	server.Server = httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// Update mutates the fixture under the server lock.
func (s *CatalogServer) Update(fn func(*CatalogFixture)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.fixture)
}

// Calls reports how many requests an endpoint received.
func (s *CatalogServer) Calls(endpoint string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[endpoint]
}

// Queries returns the search queries received so far, in order.
func (s *CatalogServer) Queries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.queries...)
}

// Client builds a catalog client pointed at the fake server.
func (s *CatalogServer) Client(t testing.TB, opts ...catalog.Option) *catalog.Client {
	t.Helper()

	opts = append([]catalog.Option{
		catalog.WithBaseURL(s.URL),
		catalog.WithImageBaseURL(s.URL + "/t/p"),
	}, opts...)
	client, err := catalog.New(catalog.Settings{Token: "test"}, opts...)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return client
}

func (s *CatalogServer) record(w http.ResponseWriter, endpoint, query string) (CatalogFixture, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[endpoint]++
	if endpoint == EndpointSearch {
		s.queries = append(s.queries, query)
	}
	if status := s.fixture.Fail[endpoint]; status != 0 {
		w.WriteHeader(status)
		return CatalogFixture{}, false
	}
	return s.fixture, true
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id
}

func writeJSON(w http.ResponseWriter, value any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(value)
}
