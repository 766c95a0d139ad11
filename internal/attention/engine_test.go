package attention

import (
	"math"
	"testing"

	"headroom/internal/catalog"
)

// testCatalog mirrors a small documentation set: doc/a.md co-activates
// doc/b.md, tasks/current.md is pinned.
func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	return catalog.New(map[string]catalog.Fragment{
		"doc/a.md": {
			Keywords:   []string{"alpha", "scoring"},
			CoActivate: []string{"doc/b.md", "doc/missing.md"},
		},
		"doc/b.md":         {Keywords: []string{"beta"}},
		"doc/c.md":         {},
		"tasks/current.md": {Keywords: []string{"task"}},
	}, []string{"tasks/current.md"}, []catalog.DecayRule{
		{Prefix: "tasks/", Rate: 0.95},
		{Prefix: "doc/", Rate: 0.7},
	})
}

func TestKeywordActivationAndCoActivation(t *testing.T) {
	cat := testCatalog(t)
	state := NewState()

	next, act := Update(state, cat, "let's talk about ALPHA decay", DefaultParams())

	if got := next.Scores["doc/a.md"]; got != 1.0 {
		t.Errorf("doc/a.md score = %v, want 1.0", got)
	}
	if len(act.Activated) != 1 || act.Activated[0] != "doc/a.md" {
		t.Errorf("activated = %v, want [doc/a.md]", act.Activated)
	}
	// Co-activation from prior score 0.0 with boost 0.35.
	if got := next.Scores["doc/b.md"]; math.Abs(got-0.35) > 1e-9 {
		t.Errorf("doc/b.md score = %v, want 0.35", got)
	}
	// Unknown co-activation target is skipped, never added.
	if _, ok := next.Scores["doc/missing.md"]; ok {
		t.Error("unknown co-activation target was added to the store")
	}
}

func TestDecayIdempotence(t *testing.T) {
	cat := testCatalog(t)
	state := NewState()
	state.Scores["doc/c.md"] = 0.9

	// Three turns with no matching keywords: score = 0.9 * 0.7^3.
	for i := 0; i < 3; i++ {
		state, _ = Update(state, cat, "nothing relevant here", DefaultParams())
	}

	want := 0.9 * 0.7 * 0.7 * 0.7
	if got := state.Scores["doc/c.md"]; math.Abs(got-want) > 1e-9 {
		t.Errorf("doc/c.md after 3 turns = %v, want %v", got, want)
	}
	if tier := TierOf(state.Scores["doc/c.md"]); tier != Warm {
		t.Errorf("tier after decay = %v, want Warm", tier)
	}
	if state.TurnCount != 3 {
		t.Errorf("turn count = %d, want 3", state.TurnCount)
	}
}

func TestDecayRunsBeforeActivation(t *testing.T) {
	cat := testCatalog(t)
	state := NewState()
	state.Scores["doc/a.md"] = 0.5

	next, _ := Update(state, cat, "alpha", DefaultParams())

	// Activation must not itself be decayed: the score is exactly 1.0,
	// not 1.0 * rate.
	if got := next.Scores["doc/a.md"]; got != 1.0 {
		t.Errorf("activated score = %v, want exactly 1.0", got)
	}
}

func TestPinnedFloor(t *testing.T) {
	cat := testCatalog(t)
	state := NewState()
	state.Scores["tasks/current.md"] = 0.3

	// Decay for many turns with no reactivation; pinned must never go COLD.
	for i := 0; i < 50; i++ {
		state, _ = Update(state, cat, "unrelated prompt", DefaultParams())
		if tier := TierOf(state.Scores["tasks/current.md"]); tier == Cold {
			t.Fatalf("pinned fragment went COLD on turn %d (score %v)", i+1, state.Scores["tasks/current.md"])
		}
	}

	floor := WarmThreshold + DefaultParams().PinnedEpsilon
	if got := state.Scores["tasks/current.md"]; math.Abs(got-floor) > 1e-9 {
		t.Errorf("pinned score settled at %v, want floor %v", got, floor)
	}
}

func TestPinnedAndActivatedEndsAtOne(t *testing.T) {
	cat := testCatalog(t)
	state := NewState()

	next, _ := Update(state, cat, "what's the next task?", DefaultParams())
	if got := next.Scores["tasks/current.md"]; got != 1.0 {
		t.Errorf("pinned+activated score = %v, want 1.0", got)
	}
}

func TestScoresStayClamped(t *testing.T) {
	cat := testCatalog(t)
	state := NewState()
	// Activate both beta-adjacent paths repeatedly so co-activation
	// keeps stacking on an already-hot fragment.
	for i := 0; i < 10; i++ {
		state, _ = Update(state, cat, "alpha beta task", DefaultParams())
		for id, score := range state.Scores {
			if score < 0.0 || score > 1.0 {
				t.Fatalf("score out of range: %s = %v", id, score)
			}
		}
	}
}

func TestUpdateDoesNotMutateInput(t *testing.T) {
	cat := testCatalog(t)
	state := NewState()
	state.Scores["doc/c.md"] = 0.6

	Update(state, cat, "alpha", DefaultParams())

	if state.Scores["doc/c.md"] != 0.6 {
		t.Errorf("input state was mutated: doc/c.md = %v", state.Scores["doc/c.md"])
	}
	if state.TurnCount != 0 {
		t.Errorf("input turn count was mutated: %d", state.TurnCount)
	}
	if _, ok := state.Scores["doc/a.md"]; ok {
		t.Error("input state gained fragments")
	}
}

func TestMatchedKeywordsAreBounded(t *testing.T) {
	frags := map[string]catalog.Fragment{}
	kws := []string{"one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten", "eleven", "twelve"}
	for i, kw := range kws {
		frags[string(rune('a'+i))+".md"] = catalog.Fragment{Keywords: []string{kw}}
	}
	cat := catalog.New(frags, nil, nil)

	_, act := Update(NewState(), cat, "one two three four five six seven eight nine ten eleven twelve", DefaultParams())
	if len(act.Keywords) > 10 {
		t.Errorf("keyword list not bounded: %d entries", len(act.Keywords))
	}
	if len(act.Activated) != len(kws) {
		t.Errorf("activated = %d fragments, want %d", len(act.Activated), len(kws))
	}
}
