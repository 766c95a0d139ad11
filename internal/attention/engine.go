package attention

import (
	"log"
	"sort"
	"strings"
	"time"

	"headroom/internal/catalog"
)

// Params tunes the update rules.
type Params struct {
	// CoActivationBoost is added to each related fragment's score when
	// a fragment is directly keyword-activated. One hop only.
	CoActivationBoost float64
	// PinnedEpsilon is how far above the WARM threshold pinned
	// fragments are floored, keeping them out of COLD.
	PinnedEpsilon float64
}

// DefaultParams returns the stock update parameters.
func DefaultParams() Params {
	return Params{
		CoActivationBoost: 0.35,
		PinnedEpsilon:     0.01,
	}
}

// maxPromptKeywords bounds the matched-keyword list carried into history.
const maxPromptKeywords = 10

// Activation summarizes what a single update did.
type Activation struct {
	// Activated lists fragments set to 1.0 by a keyword match, sorted.
	Activated []string
	// Keywords lists the trigger keywords that matched the prompt,
	// bounded to keep history entries small.
	Keywords []string
}

// Update applies one turn of scoring to the state and returns the new
// state plus the activation summary. The input state is not mutated.
//
// Step order is load-bearing: decay runs first so same-turn activation
// is never itself decayed; co-activation runs after all direct
// activations so boost order among activated fragments doesn't matter;
// the pinned floor runs last so decay can pull a pinned fragment down
// to the floor but never through it.
func Update(s State, cat *catalog.Catalog, prompt string, p Params) (State, Activation) {
	next := s.Clone()
	next.EnsureFragments(cat.IDs())

	// 1. Decay every tracked fragment by its category rate.
	for id, score := range next.Scores {
		next.Scores[id] = clamp01(score * cat.DecayRate(id))
	}

	// 2. Keyword activation: any case-insensitive substring match sets
	// the score to 1.0 outright.
	lower := strings.ToLower(prompt)
	var act Activation
	seenKeyword := map[string]bool{}
	for _, id := range cat.IDs() {
		matched := false
		for _, kw := range cat.Fragments[id].Keywords {
			if kw == "" {
				continue
			}
			if strings.Contains(lower, strings.ToLower(kw)) {
				matched = true
				if !seenKeyword[kw] && len(act.Keywords) < maxPromptKeywords {
					seenKeyword[kw] = true
					act.Keywords = append(act.Keywords, kw)
				}
			}
		}
		if matched {
			next.Scores[id] = 1.0
			act.Activated = append(act.Activated, id)
		}
	}
	sort.Strings(act.Activated)
	sort.Strings(act.Keywords)

	// 3. One-hop co-activation boost, after all direct activations.
	for _, id := range act.Activated {
		for _, related := range cat.Fragments[id].CoActivate {
			score, ok := next.Scores[related]
			if !ok {
				log.Printf("attention: co-activation target %q of %q unknown, skipping", related, id)
				continue
			}
			next.Scores[related] = clamp01(score + p.CoActivationBoost)
		}
	}

	// 4. Pinned floor: never COLD, but decay may ride down to the floor.
	floor := WarmThreshold + p.PinnedEpsilon
	for _, id := range cat.Pinned {
		score, ok := next.Scores[id]
		if !ok {
			continue
		}
		if score < floor {
			next.Scores[id] = floor
		}
	}

	next.TurnCount++
	next.LastUpdate = time.Now()
	return next, act
}
