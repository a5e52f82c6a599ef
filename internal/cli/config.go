package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/cee/internal/repair"
)

// Config is the optional YAML configuration for repair runs.
//
// Example:
//
//	max_nodes: 100
//	max_edges: 400
//	check_size_limits: true
//	enforce_single_goal: true
//	fill_outcome_beliefs: true
//	default_outcome_belief: 0.5
type Config struct {
	MaxNodes             *int     `yaml:"max_nodes,omitempty"`
	MaxEdges             *int     `yaml:"max_edges,omitempty"`
	CheckSizeLimits      *bool    `yaml:"check_size_limits,omitempty"`
	EnforceSingleGoal    *bool    `yaml:"enforce_single_goal,omitempty"`
	FillOutcomeBeliefs   *bool    `yaml:"fill_outcome_beliefs,omitempty"`
	DefaultOutcomeBelief *float64 `yaml:"default_outcome_belief,omitempty"`
}

// LoadConfig reads a YAML config file. An empty path returns a zero Config
// (all defaults).
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Apply overlays the config onto pipeline options. Unset fields keep the
// option defaults.
func (c *Config) Apply(opts repair.Options) repair.Options {
	if c.MaxNodes != nil {
		opts.MaxNodes = *c.MaxNodes
	}
	if c.MaxEdges != nil {
		opts.MaxEdges = *c.MaxEdges
	}
	if c.CheckSizeLimits != nil {
		opts.CheckSizeLimits = *c.CheckSizeLimits
	}
	if c.EnforceSingleGoal != nil {
		opts.EnforceSingleGoal = *c.EnforceSingleGoal
	}
	if c.FillOutcomeBeliefs != nil {
		opts.FillOutcomeBeliefs = *c.FillOutcomeBeliefs
	}
	if c.DefaultOutcomeBelief != nil {
		opts.DefaultOutcomeBelief = *c.DefaultOutcomeBelief
	}
	return opts
}
