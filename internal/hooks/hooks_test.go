package hooks

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestReadInputJSON(t *testing.T) {
	stdin := strings.NewReader(`{
		"session_id": "abc-123",
		"cwd": "/home/dev/project",
		"hook_event_name": "UserPromptSubmit",
		"prompt": "fix the failing test"
	}`)

	input, err := ReadInput(stdin)
	if err != nil {
		t.Fatalf("ReadInput: %v", err)
	}
	if input.SessionID != "abc-123" {
		t.Errorf("session id = %q", input.SessionID)
	}
	if input.Prompt != "fix the failing test" {
		t.Errorf("prompt = %q", input.Prompt)
	}
}

func TestReadInputRawFallback(t *testing.T) {
	input, err := ReadInput(strings.NewReader("just a plain prompt\n"))
	if err != nil {
		t.Fatalf("ReadInput: %v", err)
	}
	if input.Prompt != "just a plain prompt" {
		t.Errorf("prompt = %q", input.Prompt)
	}
}

func TestReadInputBrokenJSONFallsBack(t *testing.T) {
	// Looks like JSON but isn't: treated as raw prompt, not an error.
	input, err := ReadInput(strings.NewReader(`{"prompt": "unterminated`))
	if err != nil {
		t.Fatalf("ReadInput: %v", err)
	}
	if !strings.Contains(input.Prompt, "unterminated") {
		t.Errorf("prompt = %q", input.Prompt)
	}
}

func TestReadInputEmpty(t *testing.T) {
	input, err := ReadInput(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ReadInput: %v", err)
	}
	if input.Prompt != "" {
		t.Errorf("prompt = %q, want empty", input.Prompt)
	}
}

func TestWriteSessionStartOutput(t *testing.T) {
	var b strings.Builder
	if err := WriteSessionStartOutput(&b, "tracking 6 fragments"); err != nil {
		t.Fatalf("WriteSessionStartOutput: %v", err)
	}

	var out SessionStartOutput
	if err := json.Unmarshal([]byte(b.String()), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if out.HookSpecificOutput.HookEventName != "SessionStart" {
		t.Errorf("event name = %q", out.HookSpecificOutput.HookEventName)
	}
	if out.HookSpecificOutput.AdditionalContext != "tracking 6 fragments" {
		t.Errorf("context = %q", out.HookSpecificOutput.AdditionalContext)
	}
}
