package attention

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// State is the cross-turn attention store: one score per fragment plus
// the turn counter and the phase marker owned by the phase detector.
// State values are treated as immutable: Update returns a fresh copy
// and persistence is an explicit load/save boundary owned by the caller.
type State struct {
	Scores       map[string]float64 `json:"scores"`
	TurnCount    int                `json:"turn_count"`
	CurrentPhase int                `json:"current_phase"`
	LastUpdate   time.Time          `json:"last_update"`
}

// NewState returns an empty zero-score state.
func NewState() State {
	return State{Scores: map[string]float64{}}
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	scores := make(map[string]float64, len(s.Scores))
	for id, v := range s.Scores {
		scores[id] = v
	}
	return State{
		Scores:       scores,
		TurnCount:    s.TurnCount,
		CurrentPhase: s.CurrentPhase,
		LastUpdate:   s.LastUpdate,
	}
}

// EnsureFragments adds a zero score for every id not yet tracked.
// The store grows additively; fragments are never removed here.
func (s *State) EnsureFragments(ids []string) {
	if s.Scores == nil {
		s.Scores = map[string]float64{}
	}
	for _, id := range ids {
		if _, ok := s.Scores[id]; !ok {
			s.Scores[id] = 0.0
		}
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// LoadState reads attention state from disk. A missing file yields a
// fresh state; a malformed file is logged and also yields a fresh state.
// Loading never fails the turn.
func LoadState(path string) State {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("attention: read state %s: %v (reinitializing)", path, err)
		}
		return NewState()
	}

	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		log.Printf("attention: malformed state %s: %v (reinitializing)", path, err)
		return NewState()
	}
	if s.Scores == nil {
		s.Scores = map[string]float64{}
	}
	if s.TurnCount < 0 {
		s.TurnCount = 0
	}
	for id, v := range s.Scores {
		s.Scores[id] = clamp01(v)
	}
	return s
}

// SaveState persists attention state via temp file + rename so a crash
// mid-write never leaves a truncated store behind.
func SaveState(path string, s State) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename state: %w", err)
	}
	return nil
}
