package attention

// Tier classifies a fragment's current relevance. Tiers are never
// persisted; it is always recomputed from the score so the selector and the
// transition diff can't drift apart.
type Tier int

const (
	Cold Tier = iota
	Warm
	Hot
)

// Classification thresholds. HOT fragments get full content injected,
// WARM fragments get a header, COLD fragments get nothing.
const (
	HotThreshold  = 0.8
	WarmThreshold = 0.25
)

func (t Tier) String() string {
	switch t {
	case Hot:
		return "hot"
	case Warm:
		return "warm"
	default:
		return "cold"
	}
}

// TierOf maps a score to its tier: HOT >= 0.8, WARM >= 0.25, else COLD.
func TierOf(score float64) Tier {
	switch {
	case score >= HotThreshold:
		return Hot
	case score >= WarmThreshold:
		return Warm
	default:
		return Cold
	}
}
