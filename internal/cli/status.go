package cli

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"headroom/internal/attention"
	"headroom/internal/config"
	"headroom/internal/phase"
	"headroom/internal/pool"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current attention state and pool activity",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, ws, err := config.Resolve()
	if err != nil {
		return err
	}

	state := attention.LoadState(config.StatePath(ws))

	fmt.Printf("workspace: %s\n", ws)
	fmt.Printf("turn %d, phase %s", state.TurnCount, phase.Phase(state.CurrentPhase))
	if !state.LastUpdate.IsZero() {
		fmt.Printf(", last update %s", state.LastUpdate.Format(time.RFC3339))
	}
	fmt.Println()

	type row struct {
		id    string
		score float64
	}
	rows := make([]row, 0, len(state.Scores))
	for id, score := range state.Scores {
		rows = append(rows, row{id, score})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].score != rows[j].score {
			return rows[i].score > rows[j].score
		}
		return rows[i].id < rows[j].id
	})

	fmt.Println()
	for _, r := range rows {
		fmt.Printf("  %-5s %.3f  %s\n", attention.TierOf(r.score), r.score, r.id)
	}

	entries, err := pool.ReadRecent(cfg.PoolPath(ws), 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read pool: %v\n", err)
		return nil
	}
	others := pool.Others(entries, config.InstanceID())
	if len(others) > 0 {
		fmt.Println("\npool activity:")
		for _, e := range others {
			fmt.Printf("  [%s] %s turn %d phase %s, %d hot / %d warm\n",
				e.Timestamp.Format("15:04:05"), e.Instance, e.Turn, e.Phase, len(e.Hot), e.WarmCount)
		}
	}
	return nil
}
