package watchlist

import "fmt"

// Kind classifies how a streaming provider offers a title.
type Kind string

const (
	// KindFlatrate means the title is included in a subscription.
	KindFlatrate Kind = "flatrate"
	// KindRent means the title can be rented.
	KindRent Kind = "rent"
	// KindBuy means the title can be purchased.
	KindBuy Kind = "buy"
)

// Kinds lists every provider kind in display order.
func Kinds() []Kind {
	return []Kind{KindFlatrate, KindRent, KindBuy}
}

// Priority orders kinds for display grouping; lower sorts first.
func (k Kind) Priority() int {
	switch k {
	case KindFlatrate:
		return 0
	case KindRent:
		return 1
	case KindBuy:
		return 2
	default:
		return 3
	}
}

// Label returns a human readable name for the kind.
func (k Kind) Label() string {
	switch k {
	case KindFlatrate:
		return "Subscription"
	case KindRent:
		return "Rent"
	case KindBuy:
		return "Buy"
	default:
		return string(k)
	}
}

// ParseKind validates a stored kind value.
func ParseKind(value string) (Kind, error) {
	switch Kind(value) {
	case KindFlatrate, KindRent, KindBuy:
		return Kind(value), nil
	default:
		return "", fmt.Errorf("unknown provider kind %q", value)
	}
}

// Provider is one streaming-availability entry owned by a Movie.
type Provider struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	LogoURL string `json:"logo_url,omitempty"`
	Kind    Kind   `json:"kind"`
}

// Key identifies a provider entry for deduplication purposes.
func (p Provider) Key() string {
	return p.Name + "|" + string(p.Kind)
}
