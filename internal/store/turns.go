package store

import (
	"fmt"
	"time"
)

// TurnRecord mirrors one history entry in queryable form.
type TurnRecord struct {
	ID         int64
	TurnNumber int
	Instance   string
	Phase      string
	HotCount   int
	WarmCount  int
	ColdCount  int
	Activated  int
	TotalChars int
	Budget     int
	CreatedAt  int64
}

// RecordTurn inserts one turn's telemetry.
func (db *DB) RecordTurn(r TurnRecord) error {
	now := time.Now().UnixMilli()
	_, err := db.Exec(`
		INSERT INTO turns (turn_number, instance, phase, hot_count, warm_count, cold_count,
			activated, total_chars, budget_chars, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.TurnNumber, r.Instance, r.Phase, r.HotCount, r.WarmCount, r.ColdCount,
		r.Activated, r.TotalChars, r.Budget, now)
	if err != nil {
		return fmt.Errorf("record turn: %w", err)
	}
	return nil
}

// RecentTurns returns up to limit turns, newest first.
func (db *DB) RecentTurns(limit int) ([]TurnRecord, error) {
	rows, err := db.Query(`
		SELECT id, turn_number, instance, phase, hot_count, warm_count, cold_count,
			activated, total_chars, budget_chars, created_at
		FROM turns ORDER BY created_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent turns: %w", err)
	}
	defer rows.Close()

	var records []TurnRecord
	for rows.Next() {
		var r TurnRecord
		if err := rows.Scan(&r.ID, &r.TurnNumber, &r.Instance, &r.Phase,
			&r.HotCount, &r.WarmCount, &r.ColdCount,
			&r.Activated, &r.TotalChars, &r.Budget, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// TurnStats aggregates telemetry across recorded turns.
type TurnStats struct {
	Turns        int
	AvgHot       float64
	AvgWarm      float64
	AvgChars     float64
	BudgetBursts int // turns that landed within 5% of budget
}

// Stats computes aggregate selection statistics.
func (db *DB) Stats() (TurnStats, error) {
	var s TurnStats
	err := db.QueryRow(`
		SELECT COUNT(*),
			COALESCE(AVG(hot_count), 0),
			COALESCE(AVG(warm_count), 0),
			COALESCE(AVG(total_chars), 0),
			COALESCE(SUM(CASE WHEN total_chars * 100 >= budget_chars * 95 THEN 1 ELSE 0 END), 0)
		FROM turns
	`).Scan(&s.Turns, &s.AvgHot, &s.AvgWarm, &s.AvgChars, &s.BudgetBursts)
	if err != nil {
		return s, fmt.Errorf("turn stats: %w", err)
	}
	return s, nil
}
