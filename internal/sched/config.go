package sched

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	yaml "github.com/goccy/go-yaml"
)

// Config mirrors config.yml
type Config struct {
	Quantum   int            `yaml:"quantum"`     // 2 (by default)
	RRWaiting WaitingFormula `yaml:"rr_waiting"`  // standard (by default)
	RRInPlace bool           `yaml:"rr_in_place"` // drain the loaded set like the old menu program did
	Workload  string         `yaml:"workload"`    // process file; empty = built-in samples
	EventLog  string         `yaml:"event_log"`   // CSV trace of scheduler events; empty = off
	Listen    string         `yaml:"listen"`      // :9095 (by default)
}

// If the config file is not found, we use default values
func DefaultConfig() Config {
	return Config{
		Quantum:   2,
		RRWaiting: WaitingStandard,
		Listen:    ":9095",
	}
}

// Load reads YAML and overrides defaults; empty path = defaults only.
// A missing file also yields defaults, a malformed one is an error.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse %s: %w", path, err)
	}

	// sanity clamps
	if cfg.Quantum <= 0 {
		cfg.Quantum = 2
	}
	if cfg.Listen == "" {
		cfg.Listen = ":9095"
	}
	formula, err := ParseWaitingFormula(string(cfg.RRWaiting))
	if err != nil {
		return DefaultConfig(), fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.RRWaiting = formula

	return cfg, nil
}
