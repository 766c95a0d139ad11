package pool

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestAppendAndReadRecent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pool.jsonl")

	for i := 1; i <= 4; i++ {
		e := Entry{
			Timestamp: time.Now().UTC(),
			Instance:  "alpha",
			Turn:      i,
			Phase:     "implement",
			Hot:       []string{"doc/a.md"},
			Chars:     500 * i,
		}
		if err := Append(path, e); err != nil {
			t.Fatalf("Append turn %d: %v", i, err)
		}
	}

	entries, err := ReadRecent(path, 2)
	if err != nil {
		t.Fatalf("ReadRecent: %v", err)
	}
	if len(entries) != 2 || entries[0].Turn != 3 || entries[1].Turn != 4 {
		t.Errorf("ReadRecent(2) = %+v, want turns 3 and 4", entries)
	}
}

func TestReadRecentSkipsTornLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pool.jsonl")
	if err := Append(path, Entry{Instance: "alpha", Turn: 1}); err != nil {
		t.Fatal(err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	f.WriteString(`{"instance": "bet`)
	f.WriteString("\n")
	f.Close()

	if err := Append(path, Entry{Instance: "gamma", Turn: 2}); err != nil {
		t.Fatal(err)
	}

	entries, err := ReadRecent(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("got %d entries, want 2 (torn line skipped)", len(entries))
	}
}

func TestReadRecentMissingFile(t *testing.T) {
	entries, err := ReadRecent(filepath.Join(t.TempDir(), "none.jsonl"), 5)
	if err != nil {
		t.Fatalf("missing pool should not error: %v", err)
	}
	if entries != nil {
		t.Errorf("expected nil, got %v", entries)
	}
}

func TestOthers(t *testing.T) {
	entries := []Entry{
		{Instance: "me", Turn: 1},
		{Instance: "them", Turn: 2},
		{Instance: "me", Turn: 3},
	}
	others := Others(entries, "me")
	if len(others) != 1 || others[0].Instance != "them" {
		t.Errorf("Others = %+v, want only 'them'", others)
	}
}
