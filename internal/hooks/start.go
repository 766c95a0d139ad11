package hooks

import (
	"fmt"
	"io"
	"log"
	"strings"

	"headroom/internal/attention"
	"headroom/internal/config"
	"headroom/internal/phase"
)

// handleStart initializes the attention store for a session: every
// catalog fragment (including freshly discovered task files) gets a
// score entry, and a short status line is handed back as session
// context. No scoring happens here; turn zero belongs to the first
// prompt.
func handleStart(input *HookInput, stdout io.Writer) {
	env, err := loadEnv()
	if err != nil {
		// Degrade gracefully: empty context rather than a failed hook.
		log.Printf("headroom: %v", err)
		WriteSessionStartOutput(stdout, "")
		return
	}

	statePath := config.StatePath(env.workspace)
	state := attention.LoadState(statePath)
	state.EnsureFragments(env.catalog.IDs())
	if err := attention.SaveState(statePath, state); err != nil {
		log.Printf("headroom: save state: %v", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "headroom: tracking %d fragments, turn %d, phase %s",
		len(state.Scores), state.TurnCount, phase.Phase(state.CurrentPhase))
	if pinned := env.catalog.Pinned; len(pinned) > 0 {
		fmt.Fprintf(&b, ", pinned: %s", strings.Join(pinned, ", "))
	}
	WriteSessionStartOutput(stdout, b.String())
}
