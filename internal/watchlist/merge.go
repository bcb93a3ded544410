package watchlist

// Enrichment carries the remote values merged into a Movie. Empty strings and
// nil pointers mean the remote service did not supply the value.
type Enrichment struct {
	Year        *int
	Plot        string
	PosterURL   string
	Runtime     *int
	VoteAverage *float64
	VoteCount   *int
	Providers   []Provider
}

// ApplyEnrichment merges remote metadata into the record.
//
// Year, plot and poster only fill gaps; user or earlier values win. Runtime
// overwrites when present. Rating values always take the fetched values, even
// when those are absent. Providers are swapped as a whole.
func (m *Movie) ApplyEnrichment(e Enrichment) {
	if m.Year == nil && e.Year != nil {
		year := *e.Year
		m.Year = &year
	}
	if m.Plot == "" {
		m.Plot = e.Plot
	}
	if m.PosterURL == "" {
		m.PosterURL = e.PosterURL
	}
	if e.Runtime != nil {
		m.SetRuntime(*e.Runtime)
	}

	m.VoteAverage = copyFloat(e.VoteAverage)
	m.VoteCount = copyInt(e.VoteCount)

	providers := make([]Provider, len(e.Providers))
	copy(providers, e.Providers)
	m.Providers = providers
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
