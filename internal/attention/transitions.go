package attention

import "sort"

// Transitions records which fragments changed tier between two turns,
// classified by the tier they landed in. A fragment that skips a tier
// (HOT straight to COLD) appears only under the tier it arrived at.
type Transitions struct {
	ToHot  []string `json:"to_hot,omitempty"`
	ToWarm []string `json:"to_warm,omitempty"`
	ToCold []string `json:"to_cold,omitempty"`
}

// Empty reports whether no fragment changed tier.
func (t Transitions) Empty() bool {
	return len(t.ToHot) == 0 && len(t.ToWarm) == 0 && len(t.ToCold) == 0
}

// DiffTiers compares previous and current scores per fragment. Fragments
// absent from the previous map are treated as score 0.0 (COLD), so a
// newly discovered fragment that activates immediately shows up in ToHot.
func DiffTiers(prev, curr map[string]float64) Transitions {
	var t Transitions
	for id, score := range curr {
		prevTier := TierOf(prev[id]) // missing key reads as 0.0
		currTier := TierOf(score)
		if prevTier == currTier {
			continue
		}
		switch currTier {
		case Hot:
			t.ToHot = append(t.ToHot, id)
		case Warm:
			t.ToWarm = append(t.ToWarm, id)
		case Cold:
			t.ToCold = append(t.ToCold, id)
		}
	}
	sort.Strings(t.ToHot)
	sort.Strings(t.ToWarm)
	sort.Strings(t.ToCold)
	return t
}
