package attention

import (
	"log"
	"sort"

	"headroom/internal/catalog"
	"headroom/internal/phase"
)

// Pipeline bundles everything one turn needs. Persistence is owned here
// as an explicit load-at-start / save-at-end boundary; the scoring
// itself is a pure state-in, state-out function.
type Pipeline struct {
	Catalog     *catalog.Catalog
	Resolver    Resolver
	Limits      Limits
	Params      Params
	StatePath   string
	HistoryPath string
	Instance    string
}

// TurnResult is everything a caller might want from a processed turn.
type TurnResult struct {
	Output      string
	Stats       Stats
	Activation  Activation
	Transitions Transitions
	Phase       phase.Phase
	State       State
}

// Run processes one prompt: decay/activate, classify, select under
// budget, diff tiers, append history, persist state. Persistence
// failures are logged and swallowed; the in-memory result is still
// returned so a disk error never blocks the user.
func (p *Pipeline) Run(prompt string) *TurnResult {
	prev := LoadState(p.StatePath)
	prev.EnsureFragments(p.Catalog.IDs())

	curr, act := Update(prev, p.Catalog, prompt, p.Params)
	curr.CurrentPhase = int(phase.Detect(prompt, phase.Phase(prev.CurrentPhase)))

	output, stats := Select(curr, p.Resolver, p.Limits)
	trans := DiffTiers(prev.Scores, curr.Scores)

	// History carries tier membership sorted by id; selection order
	// (score-ranked) only matters for the emitted output.
	hot := append([]string(nil), stats.HotIDs...)
	warm := append([]string(nil), stats.WarmIDs...)
	sort.Strings(hot)
	sort.Strings(warm)

	entry := Entry{
		Turn:           curr.TurnCount,
		Timestamp:      curr.LastUpdate,
		Instance:       p.Instance,
		PromptKeywords: act.Keywords,
		Activated:      act.Activated,
		Hot:            hot,
		Warm:           warm,
		ColdCount:      stats.Cold,
		Transitions:    trans,
		TotalChars:     stats.TotalChars,
	}
	if err := AppendEntry(p.HistoryPath, entry); err != nil {
		log.Printf("attention: append history: %v", err)
	}

	if err := SaveState(p.StatePath, curr); err != nil {
		log.Printf("attention: save state: %v", err)
	}

	return &TurnResult{
		Output:      output,
		Stats:       stats,
		Activation:  act,
		Transitions: trans,
		Phase:       phase.Phase(curr.CurrentPhase),
		State:       curr,
	}
}
