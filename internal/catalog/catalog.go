package catalog

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Fragment describes one unit of injectable context: the trigger keywords
// that activate it and the related fragments boosted when it activates.
type Fragment struct {
	Keywords   []string `yaml:"keywords"`
	CoActivate []string `yaml:"coactivate"`
}

// DecayRule maps a fragment id prefix to a per-turn decay rate.
// Rules are matched in order; the first matching prefix wins.
type DecayRule struct {
	Prefix string  `yaml:"prefix"`
	Rate   float64 `yaml:"rate"`
}

// Catalog holds the static fragment configuration: keyword map,
// co-activation map, pinned list, and decay rates.
type Catalog struct {
	Fragments    map[string]Fragment `yaml:"fragments"`
	Pinned       []string            `yaml:"pinned"`
	DecayRules   []DecayRule         `yaml:"decay"`
	DefaultDecay float64             `yaml:"default_decay"`

	pinned map[string]bool
}

// DefaultDecayRate is used when no prefix rule matches and the catalog
// does not override it.
const DefaultDecayRate = 0.8

// New builds a catalog programmatically. Rules and pinned ids are
// validated the same way Load validates file input.
func New(fragments map[string]Fragment, pinned []string, rules []DecayRule) *Catalog {
	c := &Catalog{
		Fragments:    fragments,
		Pinned:       pinned,
		DecayRules:   rules,
		DefaultDecay: DefaultDecayRate,
	}
	if c.Fragments == nil {
		c.Fragments = map[string]Fragment{}
	}
	c.normalize()
	return c
}

// Default returns the built-in catalog used when no catalog.yaml exists.
func Default() *Catalog {
	c := &Catalog{
		Fragments: map[string]Fragment{
			"architecture/overview.md": {
				Keywords:   []string{"architecture", "design", "structure", "component"},
				CoActivate: []string{"decisions/adr-index.md"},
			},
			"decisions/adr-index.md": {
				Keywords: []string{"decision", "adr", "rationale", "tradeoff"},
			},
			"guides/testing.md": {
				Keywords:   []string{"test", "coverage", "regression", "flake"},
				CoActivate: []string{"guides/ci.md"},
			},
			"guides/ci.md": {
				Keywords: []string{"ci", "pipeline", "workflow", "release"},
			},
			"guides/style.md": {
				Keywords: []string{"style", "lint", "format", "convention"},
			},
			"tasks/current.md": {
				Keywords: []string{"task", "todo", "plan", "next step"},
			},
		},
		Pinned:       []string{"tasks/current.md"},
		DecayRules:   defaultDecayRules(),
		DefaultDecay: DefaultDecayRate,
	}
	c.normalize()
	return c
}

func defaultDecayRules() []DecayRule {
	return []DecayRule{
		{Prefix: "tasks/", Rate: 0.95},
		{Prefix: "architecture/", Rate: 0.9},
		{Prefix: "decisions/", Rate: 0.9},
		{Prefix: "guides/", Rate: 0.7},
	}
}

// Load reads a catalog from a YAML file. A missing file returns the
// built-in default; a malformed file is an error so the caller can
// surface an actionable configuration message.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if c.Fragments == nil {
		c.Fragments = map[string]Fragment{}
	}
	if len(c.DecayRules) == 0 {
		c.DecayRules = defaultDecayRules()
	}
	c.normalize()
	return &c, nil
}

// normalize validates rates, drops empty ids, and builds the pinned lookup.
func (c *Catalog) normalize() {
	if c.DefaultDecay <= 0 || c.DefaultDecay > 1 {
		c.DefaultDecay = DefaultDecayRate
	}

	rules := c.DecayRules[:0]
	for _, r := range c.DecayRules {
		if r.Prefix == "" || r.Rate <= 0 || r.Rate > 1 {
			continue
		}
		rules = append(rules, r)
	}
	c.DecayRules = rules

	c.pinned = make(map[string]bool, len(c.Pinned))
	for _, id := range c.Pinned {
		if id != "" {
			c.pinned[id] = true
		}
	}
}

// DecayRate returns the per-turn decay rate for a fragment id.
func (c *Catalog) DecayRate(id string) float64 {
	for _, r := range c.DecayRules {
		if strings.HasPrefix(id, r.Prefix) {
			return r.Rate
		}
	}
	return c.DefaultDecay
}

// IsPinned reports whether a fragment is guaranteed never to fall COLD.
func (c *Catalog) IsPinned(id string) bool {
	return c.pinned[id]
}

// IDs returns all known fragment ids, sorted for deterministic iteration.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.Fragments))
	for id := range c.Fragments {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DiscoverTasks walks <docsRoot>/tasks and registers any markdown file
// not already in the catalog as a keyword-less fragment. Task files are
// created by the agent during work and would otherwise never be scored.
func (c *Catalog) DiscoverTasks(docsRoot string) int {
	taskDir := filepath.Join(docsRoot, "tasks")
	added := 0
	filepath.WalkDir(taskDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		rel, err := filepath.Rel(docsRoot, path)
		if err != nil {
			return nil
		}
		id := filepath.ToSlash(rel)
		if _, ok := c.Fragments[id]; ok {
			return nil
		}
		c.Fragments[id] = Fragment{}
		added++
		return nil
	})
	return added
}
