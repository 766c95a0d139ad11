package server

import (
	"net/http"
	"sort"
	"strconv"

	"headroom/internal/attention"
	"headroom/internal/config"
	"headroom/internal/pool"
)

// limitParam parses ?n= with a default and an upper bound.
func limitParam(r *http.Request, def, max int) int {
	n, err := strconv.Atoi(r.URL.Query().Get("n"))
	if err != nil || n <= 0 {
		return def
	}
	if n > max {
		return max
	}
	return n
}

// handleState returns the current attention state with derived tiers.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	state := attention.LoadState(config.StatePath(s.workspace))

	type fragment struct {
		ID    string  `json:"id"`
		Score float64 `json:"score"`
		Tier  string  `json:"tier"`
	}
	fragments := make([]fragment, 0, len(state.Scores))
	for id, score := range state.Scores {
		fragments = append(fragments, fragment{id, score, attention.TierOf(score).String()})
	}
	sort.Slice(fragments, func(i, j int) bool {
		if fragments[i].Score != fragments[j].Score {
			return fragments[i].Score > fragments[j].Score
		}
		return fragments[i].ID < fragments[j].ID
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"turn_count":    state.TurnCount,
		"current_phase": state.CurrentPhase,
		"last_update":   state.LastUpdate,
		"fragments":     fragments,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := attention.ReadHistory(config.HistoryPath(s.workspace), limitParam(r, 20, 500))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (s *Server) handleTurns(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, "telemetry database unavailable")
		return
	}

	records, err := s.db.RecentTurns(limitParam(r, 20, 500))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	stats, err := s.db.Stats()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"turns": records,
		"stats": stats,
	})
}

func (s *Server) handlePool(w http.ResponseWriter, r *http.Request) {
	entries, err := pool.ReadRecent(s.cfg.PoolPath(s.workspace), limitParam(r, 20, 500))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}
