// Package pool is the append-only coordination feed shared by
// independently-invoked instances working in the same project. Each turn
// appends one line; readers tail the feed to see what other instances
// are attending to. There is no locking; appends are small enough that
// concurrent writers interleave at line granularity in practice, and a
// torn line is skipped on read.
package pool

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Entry is one coordination record.
type Entry struct {
	Timestamp time.Time `json:"ts"`
	Instance  string    `json:"instance"`
	Turn      int       `json:"turn"`
	Phase     string    `json:"phase"`
	Hot       []string  `json:"hot,omitempty"`
	WarmCount int       `json:"warm_count"`
	ColdCount int       `json:"cold_count"`
	Chars     int       `json:"chars"`
}

// Append writes one entry as a JSON line.
func Append(path string, e Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create pool dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open pool: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal pool entry: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("append pool entry: %w", err)
	}
	return nil
}

// ReadRecent returns up to limit most-recent entries, oldest first.
// Malformed lines are skipped. limit <= 0 means all.
func ReadRecent(path string, limit int) ([]Entry, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return entries, fmt.Errorf("scan pool: %w", err)
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries, nil
}

// Others filters entries down to those written by other instances.
func Others(entries []Entry, instance string) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.Instance != instance {
			out = append(out, e)
		}
	}
	return out
}
