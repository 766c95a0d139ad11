package hooks

import (
	"fmt"
	"io"
	"log"

	"headroom/internal/attention"
	"headroom/internal/config"
	"headroom/internal/pool"
	"headroom/internal/store"
)

// handleSubmit processes one user turn: score, select under budget, and
// write the working-memory context to stdout. Diagnostics go to stderr
// only; the primary stream carries nothing but the formatted context.
func handleSubmit(input *HookInput, stdout io.Writer) {
	env, err := loadEnv()
	if err != nil {
		// No usable configuration: fatal for the turn, emit nothing,
		// leave an actionable hint on stderr.
		ExitError(err)
		return
	}

	pipe := &attention.Pipeline{
		Catalog:     env.catalog,
		Resolver:    attention.FileResolver{Root: env.docsRoot},
		Limits:      limitsFrom(env.cfg),
		Params:      paramsFrom(env.cfg),
		StatePath:   config.StatePath(env.workspace),
		HistoryPath: config.HistoryPath(env.workspace),
		Instance:    env.instance,
	}

	res := pipe.Run(input.Prompt)
	if res.Output != "" {
		fmt.Fprintln(stdout, res.Output)
	}

	recordTurn(env, res)
}

// recordTurn mirrors the turn into the pool feed and the telemetry
// database. Both are best-effort: a write failure is logged, never
// surfaced.
func recordTurn(env *hookEnv, res *attention.TurnResult) {
	if env.cfg.Pool.Enabled {
		entry := pool.Entry{
			Timestamp: res.State.LastUpdate,
			Instance:  env.instance,
			Turn:      res.State.TurnCount,
			Phase:     res.Phase.String(),
			Hot:       res.Stats.HotIDs,
			WarmCount: res.Stats.Warm,
			ColdCount: res.Stats.Cold,
			Chars:     res.Stats.TotalChars,
		}
		if err := pool.Append(env.cfg.PoolPath(env.workspace), entry); err != nil {
			log.Printf("headroom: pool append: %v", err)
		}
	}

	db, err := store.Open(config.DBPath(env.workspace))
	if err != nil {
		log.Printf("headroom: open telemetry db: %v", err)
		return
	}
	defer db.Close()

	rec := store.TurnRecord{
		TurnNumber: res.State.TurnCount,
		Instance:   env.instance,
		Phase:      res.Phase.String(),
		HotCount:   res.Stats.Hot,
		WarmCount:  res.Stats.Warm,
		ColdCount:  res.Stats.Cold,
		Activated:  len(res.Activation.Activated),
		TotalChars: res.Stats.TotalChars,
		Budget:     res.Stats.Budget,
	}
	if err := db.RecordTurn(rec); err != nil {
		log.Printf("headroom: record turn: %v", err)
	}
}

func limitsFrom(cfg config.Config) attention.Limits {
	return attention.Limits{
		MaxHot:        cfg.Budget.MaxHot,
		MaxWarm:       cfg.Budget.MaxWarm,
		HeaderLines:   cfg.Budget.HeaderLines,
		MaxTotalChars: cfg.Budget.MaxTotalChars,
	}
}

func paramsFrom(cfg config.Config) attention.Params {
	return attention.Params{
		CoActivationBoost: cfg.Attention.CoActivationBoost,
		PinnedEpsilon:     cfg.Attention.PinnedEpsilon,
	}
}
