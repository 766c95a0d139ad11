package attention

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Entry is one immutable audit record, one per turn. The history log is
// line-delimited JSON, append-only, never rewritten in place. Retention
// is someone else's problem.
type Entry struct {
	Turn           int         `json:"turn"`
	Timestamp      time.Time   `json:"ts"`
	Instance       string      `json:"instance"`
	PromptKeywords []string    `json:"prompt_keywords,omitempty"`
	Activated      []string    `json:"activated,omitempty"`
	Hot            []string    `json:"hot"`
	Warm           []string    `json:"warm"`
	ColdCount      int         `json:"cold_count"`
	Transitions    Transitions `json:"transitions"`
	TotalChars     int         `json:"total_chars"`
}

// AppendEntry writes one entry as a JSON line. Callers swallow the error
// with a log line; a full disk must never block the turn.
func AppendEntry(path string, e Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("append entry: %w", err)
	}
	return nil
}

// ReadHistory returns up to limit most-recent entries, oldest first.
// Malformed lines are skipped, not fatal. limit <= 0 means all.
func ReadHistory(path string, limit int) ([]Entry, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return entries, fmt.Errorf("scan history: %w", err)
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries, nil
}
