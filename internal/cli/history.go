package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"headroom/internal/attention"
	"headroom/internal/config"
	"headroom/internal/store"
)

var (
	historyLimit int
	historyStats bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent attention turns",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "number of turns to show")
	historyCmd.Flags().BoolVar(&historyStats, "stats", false, "show aggregate telemetry instead")
}

func runHistory(cmd *cobra.Command, args []string) error {
	_, ws, err := config.Resolve()
	if err != nil {
		return err
	}

	if historyStats {
		db, err := store.Open(config.DBPath(ws))
		if err != nil {
			return fmt.Errorf("open telemetry db: %w", err)
		}
		defer db.Close()

		stats, err := db.Stats()
		if err != nil {
			return err
		}
		fmt.Printf("turns recorded: %d\n", stats.Turns)
		fmt.Printf("avg hot blocks: %.1f\n", stats.AvgHot)
		fmt.Printf("avg warm blocks: %.1f\n", stats.AvgWarm)
		fmt.Printf("avg chars emitted: %.0f\n", stats.AvgChars)
		fmt.Printf("near-budget turns: %d\n", stats.BudgetBursts)
		return nil
	}

	entries, err := attention.ReadHistory(config.HistoryPath(ws), historyLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("no history yet")
		return nil
	}

	for _, e := range entries {
		fmt.Printf("turn %d [%s] %s\n", e.Turn, e.Instance, e.Timestamp.Format("2006-01-02 15:04:05"))
		if len(e.Activated) > 0 {
			fmt.Printf("  activated: %s\n", strings.Join(e.Activated, ", "))
		}
		fmt.Printf("  hot %d warm %d cold %d, %d chars\n", len(e.Hot), len(e.Warm), e.ColdCount, e.TotalChars)
		if !e.Transitions.Empty() {
			fmt.Printf("  transitions: +hot %v +warm %v +cold %v\n",
				e.Transitions.ToHot, e.Transitions.ToWarm, e.Transitions.ToCold)
		}
	}
	return nil
}
