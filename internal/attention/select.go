package attention

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"headroom/internal/phase"
)

// Limits bounds what one turn may inject.
type Limits struct {
	MaxHot        int // full-content slots
	MaxWarm       int // header-only slots
	HeaderLines   int // lines kept per WARM header
	MaxTotalChars int // global character budget across all blocks
}

// DefaultLimits returns the stock selection limits.
func DefaultLimits() Limits {
	return Limits{
		MaxHot:        4,
		MaxWarm:       8,
		HeaderLines:   25,
		MaxTotalChars: 25000,
	}
}

// Stats reports what a selection pass emitted.
type Stats struct {
	Hot        int
	Warm       int
	Cold       int
	TotalChars int // characters across emitted blocks; banner excluded
	Budget     int
	HotIDs     []string
	WarmIDs    []string
}

// Select walks fragments best-score-first and fills the output under the
// character budget. HOT fragments get full content; when a HOT fragment
// doesn't fit (or HOT slots are gone) it is downgraded to the WARM
// header path rather than dropped. Fragments that fit nowhere are
// counted COLD, including those whose content cannot be resolved.
//
// The budget covers emitted blocks (label line included); the one-line
// banner is not charged against it. Ordering is deterministic: score
// descending, then fragment id ascending.
func Select(s State, res Resolver, lim Limits) (string, Stats) {
	type ranked struct {
		id    string
		score float64
	}
	order := make([]ranked, 0, len(s.Scores))
	for id, score := range s.Scores {
		order = append(order, ranked{id, score})
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].score != order[j].score {
			return order[i].score > order[j].score
		}
		return order[i].id < order[j].id
	})

	stats := Stats{Budget: lim.MaxTotalChars}
	remaining := lim.MaxTotalChars
	var hotBlocks, warmBlocks []string

	// tryWarm attempts the header path for a fragment, whether natively
	// WARM or downgraded from HOT. Returns false when the fragment ends
	// up COLD instead.
	tryWarm := func(id string, score float64) bool {
		if stats.Warm >= lim.MaxWarm {
			return false
		}
		header, err := res.Header(id, lim.HeaderLines)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				log.Printf("attention: resolve header %s: %v", id, err)
			}
			return false
		}
		block := formatBlock(id, score, header)
		if len(block) > remaining {
			return false
		}
		warmBlocks = append(warmBlocks, block)
		remaining -= len(block)
		stats.TotalChars += len(block)
		stats.Warm++
		stats.WarmIDs = append(stats.WarmIDs, id)
		return true
	}

	for _, f := range order {
		switch TierOf(f.score) {
		case Hot:
			if stats.Hot < lim.MaxHot {
				content, err := res.Full(f.id)
				if err != nil {
					// Unresolvable content is COLD; the HOT slot stays open.
					if !errors.Is(err, ErrNotFound) {
						log.Printf("attention: resolve %s: %v", f.id, err)
					}
					stats.Cold++
					continue
				}
				block := formatBlock(f.id, f.score, content)
				if len(block) <= remaining {
					hotBlocks = append(hotBlocks, block)
					remaining -= len(block)
					stats.TotalChars += len(block)
					stats.Hot++
					stats.HotIDs = append(stats.HotIDs, f.id)
					continue
				}
			}
			// Budget-squeezed or out of HOT slots: downgrade to a header.
			if !tryWarm(f.id, f.score) {
				stats.Cold++
			}
		case Warm:
			if !tryWarm(f.id, f.score) {
				stats.Cold++
			}
		default:
			stats.Cold++
		}
	}

	if stats.Hot == 0 && stats.Warm == 0 {
		return "", stats
	}

	var b strings.Builder
	b.WriteString(banner(s, stats))
	for _, block := range hotBlocks {
		b.WriteString("\n")
		b.WriteString(block)
	}
	for _, block := range warmBlocks {
		b.WriteString("\n")
		b.WriteString(block)
	}
	return b.String(), stats
}

func formatBlock(id string, score float64, content string) string {
	return fmt.Sprintf("--- %s (score %.2f) ---\n%s\n", id, score, strings.TrimRight(content, "\n"))
}

func banner(s State, st Stats) string {
	return fmt.Sprintf("=== working memory | turn %d | phase %s | hot %d warm %d cold %d | %d/%d chars ===\n",
		s.TurnCount, phase.Phase(s.CurrentPhase), st.Hot, st.Warm, st.Cold, st.TotalChars, st.Budget)
}
