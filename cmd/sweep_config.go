package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SweepConfig describes a grid of what-if scenarios: every combination of
// server count and arrival scaling, replicated once per seed. Service
// scaling factors (props) come from the tuned params file and apply to
// every scenario in the sweep.
type SweepConfig struct {
	NumServers []int     `yaml:"num_servers"`
	Sigmas     []float64 `yaml:"sigmas"`
	Seeds      []int64   `yaml:"seeds"`
	MaxTime    float64   `yaml:"max_time"`
	Workers    int       `yaml:"workers"` // 0 = one worker per CPU
}

// LoadSweepConfig reads and validates a sweep YAML file.
func LoadSweepConfig(path string) (SweepConfig, error) {
	var cfg SweepConfig

	content, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read sweep config: %w", err)
	}
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return cfg, fmt.Errorf("parse sweep config: %w", err)
	}

	if len(cfg.NumServers) == 0 {
		return cfg, fmt.Errorf("sweep config %s: num_servers must list at least one server count", path)
	}
	for _, n := range cfg.NumServers {
		if n <= 0 {
			return cfg, fmt.Errorf("sweep config %s: num_servers entries must be positive, got %d", path, n)
		}
	}
	if len(cfg.Sigmas) == 0 {
		cfg.Sigmas = []float64{1.0}
	}
	for _, s := range cfg.Sigmas {
		if s <= 0 {
			return cfg, fmt.Errorf("sweep config %s: sigmas entries must be positive, got %f", path, s)
		}
	}
	if len(cfg.Seeds) == 0 {
		return cfg, fmt.Errorf("sweep config %s: seeds must list at least one seed", path)
	}
	if cfg.MaxTime <= 0 {
		return cfg, fmt.Errorf("sweep config %s: max_time must be positive, got %f", path, cfg.MaxTime)
	}
	if cfg.Workers < 0 {
		return cfg, fmt.Errorf("sweep config %s: workers must be non-negative, got %d", path, cfg.Workers)
	}

	return cfg, nil
}
