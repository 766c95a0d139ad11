// Package phase classifies a prompt into a coarse work phase via keyword
// scoring. The result is advisory: it colors the selector banner and is
// persisted alongside attention state, nothing more.
package phase

import "strings"

// Phase is the detected work phase for a session.
type Phase int

const (
	Explore Phase = iota
	Implement
	Debug
	Review
)

func (p Phase) String() string {
	switch p {
	case Explore:
		return "explore"
	case Implement:
		return "implement"
	case Debug:
		return "debug"
	case Review:
		return "review"
	default:
		return "unknown"
	}
}

// signals are the trigger words scored per phase. Substring matching,
// case-insensitive, same matching rule the attention engine uses.
var signals = map[Phase][]string{
	Explore:   {"how does", "where is", "explain", "understand", "look at", "investigate"},
	Implement: {"implement", "add ", "build", "create", "write ", "refactor"},
	Debug:     {"bug", "error", "fix", "fail", "broken", "crash", "panic"},
	Review:    {"review", "clean up", "polish", "simplify", "document", "comment"},
}

// Detect scores the prompt against each phase's signal words and returns
// the best match. Sticky: with no signal at all (or a tie that includes
// the current phase), the current phase is kept.
func Detect(prompt string, current Phase) Phase {
	lower := strings.ToLower(prompt)

	best := current
	bestScore := 0
	for _, p := range []Phase{Explore, Implement, Debug, Review} {
		score := 0
		for _, sig := range signals[p] {
			if strings.Contains(lower, sig) {
				score++
			}
		}
		if score > bestScore || (score == bestScore && score > 0 && p == current) {
			best = p
			bestScore = score
		}
	}
	return best
}
