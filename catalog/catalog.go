// Package catalog loads the immutable deployment configuration: the
// planner/domain/problem registries the CLI resolves keys against, the
// output format table, label overrides, and the engine time budget. The
// catalog is loaded once at process start and passed explicitly into
// the facade and commands.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lexcodex/routewise/planner"
)

const fileName = "routewise.yaml"

// Entry describes one registry item.
type Entry struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	File        string `yaml:"file,omitempty"`
}

// Catalog mirrors routewise.yaml.
type Catalog struct {
	DefaultEngine  string            `yaml:"default_engine"`
	DefaultFormat  string            `yaml:"default_format"`
	TimeoutSeconds int               `yaml:"timeout_seconds"`
	Engines        map[string]Entry  `yaml:"engines"`
	Domains        map[string]Entry  `yaml:"domains"`
	Problems       map[string]Entry  `yaml:"problems"`
	Formats        map[string]Entry  `yaml:"formats"`
	Labels         map[string]string `yaml:"labels"`
}

// DefaultPath returns routewise.yaml inside the workspace.
func DefaultPath(workspace string) string {
	if workspace == "" {
		workspace = "."
	}
	return filepath.Join(workspace, fileName)
}

// Load reads the catalog or returns the built-in defaults when the file
// is missing.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	cat := Default()
	if err := yaml.Unmarshal(data, cat); err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", path, err)
	}
	return cat, nil
}

// Default is the built-in catalog: the three shipped engines and the
// four output formats, sixty-second budget, compact output.
func Default() *Catalog {
	return &Catalog{
		DefaultEngine:  "auto",
		DefaultFormat:  "compact",
		TimeoutSeconds: 60,
		Engines: map[string]Entry{
			"downward": {Name: "Fast Downward", Description: "External optimal planner binary"},
			"unified":  {Name: "Unified Planning", Description: "Python planning library via interpreter"},
			"route":    {Name: "Route fallback", Description: "In-process graph search, always available"},
		},
		Formats: map[string]Entry{
			"actions":  {Name: "Action lines", Description: "One canonical action per line"},
			"compact":  {Name: "Compact intent", Description: "Final-step navigation record"},
			"verbose":  {Name: "Verbose intent", Description: "Waypoints, labels, and eta"},
			"per-step": {Name: "Per-step intents", Description: "One compact record per action"},
		},
	}
}

// Timeout converts the configured budget into a duration.
func (c *Catalog) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LabelTable merges the configured overrides over the built-in table.
func (c *Catalog) LabelTable() planner.LabelTable {
	return planner.DefaultLabels.Merge(c.Labels)
}

// ResolveDomain maps a registry key to its file. Unknown keys pass
// through unchanged and are treated as literal file paths.
func (c *Catalog) ResolveDomain(key string) string {
	return resolve(c.Domains, key)
}

// ResolveProblem maps a registry key to its file, or passes a literal
// path through.
func (c *Catalog) ResolveProblem(key string) string {
	return resolve(c.Problems, key)
}

func resolve(entries map[string]Entry, key string) string {
	if entry, ok := entries[key]; ok && entry.File != "" {
		return entry.File
	}
	return key
}

// Keys returns a registry's keys in stable order for listings.
func Keys(entries map[string]Entry) []string {
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
