package hooks

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// HookInput represents the JSON that Claude Code sends on stdin to hook
// handlers. All fields are optional; different events populate
// different subsets.
type HookInput struct {
	SessionID      string `json:"session_id"`
	TranscriptPath string `json:"transcript_path"`
	CWD            string `json:"cwd"`
	HookEventName  string `json:"hook_event_name"`

	// SessionStart
	Source string `json:"source,omitempty"`
	Model  string `json:"model,omitempty"`

	// UserPromptSubmit
	Prompt string `json:"prompt,omitempty"`
}

// ReadInput decodes hook input from stdin. Input that isn't JSON is
// treated as a raw prompt so the handler also works in a plain pipe
// (`echo "fix the test" | headroom hook submit`).
func ReadInput(r io.Reader) (*HookInput, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}

	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return &HookInput{}, nil
	}

	var input HookInput
	if strings.HasPrefix(trimmed, "{") {
		if err := json.Unmarshal([]byte(trimmed), &input); err == nil {
			return &input, nil
		}
	}
	return &HookInput{Prompt: trimmed}, nil
}
