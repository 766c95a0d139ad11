package attention

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"headroom/internal/catalog"
)

func testPipeline(t *testing.T) *Pipeline {
	t.Helper()
	root := t.TempDir()
	for id, body := range map[string]string{
		"doc/a.md": "alpha document body\n",
		"doc/b.md": "beta document body\n",
	} {
		path := filepath.Join(root, filepath.FromSlash(id))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}

	ws := t.TempDir()
	return &Pipeline{
		Catalog: catalog.New(map[string]catalog.Fragment{
			"doc/a.md": {Keywords: []string{"alpha"}, CoActivate: []string{"doc/b.md"}},
			"doc/b.md": {Keywords: []string{"beta"}},
		}, nil, []catalog.DecayRule{{Prefix: "doc/", Rate: 0.7}}),
		Resolver:    FileResolver{Root: root},
		Limits:      DefaultLimits(),
		Params:      DefaultParams(),
		StatePath:   filepath.Join(ws, "attention.json"),
		HistoryPath: filepath.Join(ws, "history.jsonl"),
		Instance:    "test-instance",
	}
}

func TestPipelineRunPersistsAcrossTurns(t *testing.T) {
	pipe := testPipeline(t)

	res := pipe.Run("tell me about alpha")
	if res.State.TurnCount != 1 {
		t.Fatalf("turn count = %d, want 1", res.State.TurnCount)
	}
	if !strings.Contains(res.Output, "doc/a.md") {
		t.Errorf("output missing activated fragment:\n%s", res.Output)
	}

	// Second turn with no keywords: state was persisted, decay applies.
	res2 := pipe.Run("nothing matching here")
	if res2.State.TurnCount != 2 {
		t.Fatalf("turn count = %d, want 2", res2.State.TurnCount)
	}
	if got := res2.State.Scores["doc/a.md"]; got != 0.7 {
		t.Errorf("doc/a.md after decay turn = %v, want 0.7", got)
	}

	entries, err := ReadHistory(pipe.HistoryPath, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("history has %d entries, want 2", len(entries))
	}
	if entries[0].Instance != "test-instance" {
		t.Errorf("instance = %q", entries[0].Instance)
	}
	if len(entries[0].Transitions.ToHot) == 0 {
		t.Errorf("first turn should record a transition to HOT, got %+v", entries[0].Transitions)
	}
}

func TestPipelineRunHistoryMatchesStats(t *testing.T) {
	pipe := testPipeline(t)
	res := pipe.Run("alpha and beta together")

	entries, err := ReadHistory(pipe.HistoryPath, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("history has %d entries, want 1", len(entries))
	}
	e := entries[0]
	if len(e.Hot) != res.Stats.Hot || len(e.Warm) != res.Stats.Warm {
		t.Errorf("history tiers (%d hot, %d warm) disagree with stats (%d, %d)",
			len(e.Hot), len(e.Warm), res.Stats.Hot, res.Stats.Warm)
	}
	if e.TotalChars != res.Stats.TotalChars {
		t.Errorf("history chars %d != stats chars %d", e.TotalChars, res.Stats.TotalChars)
	}
	if len(e.Activated) != 2 {
		t.Errorf("activated = %v, want both fragments", e.Activated)
	}
}
