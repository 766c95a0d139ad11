package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all headroom configuration.
type Config struct {
	Attention AttentionConfig `toml:"attention"`
	Budget    BudgetConfig    `toml:"budget"`
	Paths     PathsConfig     `toml:"paths"`
	Pool      PoolConfig      `toml:"pool"`
	Server    ServerConfig    `toml:"server"`
}

type AttentionConfig struct {
	CoActivationBoost float64 `toml:"co_activation_boost"`
	PinnedEpsilon     float64 `toml:"pinned_epsilon"`
}

type BudgetConfig struct {
	MaxHot        int `toml:"max_hot"`
	MaxWarm       int `toml:"max_warm"`
	HeaderLines   int `toml:"header_lines"`
	MaxTotalChars int `toml:"max_total_chars"`
}

type PathsConfig struct {
	DocsRoot  string `toml:"docs_root"` // documents root the resolver reads from
	Workspace string `toml:"workspace"` // state/history/pool directory override
}

type PoolConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"` // shared feed override, for cross-project pools
}

type ServerConfig struct {
	Bind string `toml:"bind"`
	Port int    `toml:"port"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Attention: AttentionConfig{
			CoActivationBoost: 0.35,
			PinnedEpsilon:     0.01,
		},
		Budget: BudgetConfig{
			MaxHot:        4,
			MaxWarm:       8,
			HeaderLines:   25,
			MaxTotalChars: 25000,
		},
		Pool: PoolConfig{
			Enabled: true,
		},
		Server: ServerConfig{
			Bind: "127.0.0.1",
			Port: 37877,
		},
	}
}

// Load reads a TOML config file over the defaults. A missing file is not
// an error; defaults apply. A malformed file is, so the user learns
// about the typo instead of silently running on defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.sanitize()
	return cfg, nil
}

// sanitize pulls out-of-range values back to defaults rather than letting
// undefined values propagate into scoring math.
func (c *Config) sanitize() {
	def := Default()
	if c.Attention.CoActivationBoost <= 0 || c.Attention.CoActivationBoost > 1 {
		c.Attention.CoActivationBoost = def.Attention.CoActivationBoost
	}
	if c.Attention.PinnedEpsilon <= 0 || c.Attention.PinnedEpsilon > 0.2 {
		c.Attention.PinnedEpsilon = def.Attention.PinnedEpsilon
	}
	if c.Budget.MaxHot < 0 {
		c.Budget.MaxHot = def.Budget.MaxHot
	}
	if c.Budget.MaxWarm < 0 {
		c.Budget.MaxWarm = def.Budget.MaxWarm
	}
	if c.Budget.HeaderLines <= 0 {
		c.Budget.HeaderLines = def.Budget.HeaderLines
	}
	if c.Budget.MaxTotalChars <= 0 {
		c.Budget.MaxTotalChars = def.Budget.MaxTotalChars
	}
}

// ListenAddr returns the bind:port address string.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}
