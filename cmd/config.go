package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/guard-sim/guard-sim/sim/search"
	"github.com/guard-sim/guard-sim/sim/trace"
)

// RunConfig represents the run.yaml structure. Every field may also be set by a flag;
// flags the user passes explicitly take precedence.
// All keys must be listed to satisfy KnownFields(true) strict parsing: typos must cause errors.
type RunConfig struct {
	Input   string `yaml:"input"`
	Workers int    `yaml:"workers"`
	Scope   string `yaml:"scope"`
	Trace   string `yaml:"trace"`
	Output  string `yaml:"output"`
	Log     string `yaml:"log"`
}

// ValidOutputFormats is the set of recognized report formats.
var ValidOutputFormats = map[string]bool{"": true, "text": true, "json": true}

// loadRunConfig parses a run config file with strict field checking.
func loadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run config: %w", err)
	}
	var cfg RunConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing run config %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks names and ranges. The input path is checked when it is opened.
func (c *RunConfig) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("no input grid given (use --input or the config's input key)")
	}
	if !ValidOutputFormats[c.Output] {
		return fmt.Errorf("unknown output format %q", c.Output)
	}
	return c.searchConfig().Validate()
}

func (c *RunConfig) searchConfig() search.Config {
	return search.Config{
		Workers: c.Workers,
		Scope:   search.Scope(c.Scope),
		Trace:   trace.TraceConfig{Level: trace.TraceLevel(c.Trace)},
	}
}
