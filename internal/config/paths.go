package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// workspaceName is the directory holding state, history, pool feed, and
// config. A project-local one overrides the global one.
const workspaceName = ".headroom"

// ErrNoDocsRoot means no usable documents root could be resolved. This
// is the one error surfaced to the user as fatal for the turn.
var ErrNoDocsRoot = errors.New("no documents root configured")

// WorkspaceDir resolves the active workspace: an explicit config
// override first, then a project-local .headroom in the working
// directory, then the global ~/.headroom.
func (c *Config) WorkspaceDir() (string, error) {
	if c.Paths.Workspace != "" {
		return c.Paths.Workspace, nil
	}

	if cwd, err := os.Getwd(); err == nil {
		local := filepath.Join(cwd, workspaceName)
		if info, err := os.Stat(local); err == nil && info.IsDir() {
			return local, nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, workspaceName), nil
}

// Resolve locates the active workspace and loads its config file. The
// config can re-point the workspace (paths.workspace), in which case
// state and history live there instead.
func Resolve() (Config, string, error) {
	cfg := Default()
	ws, err := cfg.WorkspaceDir()
	if err != nil {
		return cfg, "", err
	}

	cfg, err = Load(ConfigPath(ws))
	if err != nil {
		return cfg, ws, err
	}
	if cfg.Paths.Workspace != "" {
		ws = cfg.Paths.Workspace
	}
	return cfg, ws, nil
}

// DocsRoot resolves the documents root the content resolver reads from:
// HEADROOM_DOCS_ROOT, then the configured path, then ./docs if present.
func (c *Config) DocsRoot() (string, error) {
	if root := os.Getenv("HEADROOM_DOCS_ROOT"); root != "" {
		return root, nil
	}
	if c.Paths.DocsRoot != "" {
		return c.Paths.DocsRoot, nil
	}
	if cwd, err := os.Getwd(); err == nil {
		docs := filepath.Join(cwd, "docs")
		if info, err := os.Stat(docs); err == nil && info.IsDir() {
			return docs, nil
		}
	}
	return "", fmt.Errorf("%w: set paths.docs_root in config.toml or HEADROOM_DOCS_ROOT", ErrNoDocsRoot)
}

// InstanceID returns the identifier this instance writes into history
// and the pool feed. Set HEADROOM_INSTANCE to pick a stable name;
// otherwise a short random id is generated per invocation. The id only
// namespaces logs and feeds; scores are never isolated by instance.
func InstanceID() string {
	if id := os.Getenv("HEADROOM_INSTANCE"); id != "" {
		return id
	}
	return uuid.NewString()[:8]
}

// Well-known files inside a workspace.

func StatePath(workspace string) string   { return filepath.Join(workspace, "attention.json") }
func HistoryPath(workspace string) string { return filepath.Join(workspace, "history.jsonl") }
func CatalogPath(workspace string) string { return filepath.Join(workspace, "catalog.yaml") }
func ConfigPath(workspace string) string  { return filepath.Join(workspace, "config.toml") }
func DBPath(workspace string) string      { return filepath.Join(workspace, "turns.db") }

// PoolPath returns the shared coordination feed location, honoring the
// configured override.
func (c *Config) PoolPath(workspace string) string {
	if c.Pool.Path != "" {
		return c.Pool.Path
	}
	return filepath.Join(workspace, "pool.jsonl")
}
