// Package config loads the phpfix run configuration. Both HCL and YAML are
// supported; the file extension decides which decoder runs.
package config

import (
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/spf13/afero"
	"github.com/walteh/phpfix/pkg/fixer"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration file structure.
type Config struct {
	// Rules tunes individual rules; rules without a block stay enabled
	// with their defaults
	Rules []*RuleConfig `hcl:"rule,block" yaml:"rules,omitempty"`
	// Paths selects which files a run covers
	Paths *PathsConfig `hcl:"paths,block" yaml:"paths,omitempty"`
}

// RuleConfig tunes a single rule by name.
type RuleConfig struct {
	Name    string `hcl:"name,label" yaml:"name"`
	Enabled *bool  `hcl:"enabled,optional" yaml:"enabled,omitempty"`
	// Statements narrows which statement kinds the control-parentheses
	// rule considers
	Statements []string `hcl:"statements,optional" yaml:"statements,omitempty"`
}

// PathsConfig holds doublestar include and exclude globs, matched against
// paths relative to the search root.
type PathsConfig struct {
	Include []string `hcl:"include,optional" yaml:"include,omitempty"`
	Exclude []string `hcl:"exclude,optional" yaml:"exclude,omitempty"`
}

// Default returns the configuration used when no file is present: every
// registered rule enabled over **/*.php.
func Default() *Config {
	return &Config{
		Paths: &PathsConfig{Include: []string{"**/*.php"}},
	}
}

// Load reads and decodes the configuration file at path.
func Load(fsys afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Errorf("parsing YAML config: %w", err)
		}
	} else {
		parser := hclparse.NewParser()
		file, diags := parser.ParseHCL(data, path)
		if diags.HasErrors() {
			return nil, errors.Errorf("parsing HCL config: %w", diags)
		}
		if diags := gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
			return nil, errors.Errorf("decoding HCL config: %w", diags)
		}
	}

	if cfg.Paths == nil {
		cfg.Paths = Default().Paths
	}
	if len(cfg.Paths.Include) == 0 {
		cfg.Paths.Include = Default().Paths.Include
	}
	return &cfg, nil
}

// EnabledFixers resolves the configuration against the registry: rules
// disabled by a block are dropped, options are applied, and a block naming
// an unknown rule is a configuration error.
func (c *Config) EnabledFixers(registry *fixer.Registry) ([]fixer.Fixer, error) {
	disabled := map[string]bool{}
	for _, rc := range c.Rules {
		f, ok := registry.Lookup(rc.Name)
		if !ok {
			return nil, errors.Errorf("unknown rule %q in configuration", rc.Name)
		}
		if rc.Enabled != nil && !*rc.Enabled {
			disabled[rc.Name] = true
			continue
		}
		opts := map[string]any{}
		if len(rc.Statements) > 0 {
			opts["statements"] = rc.Statements
		}
		if len(opts) == 0 {
			continue
		}
		configurable, ok := f.(fixer.Configurable)
		if !ok {
			return nil, errors.Errorf("rule %q does not accept options", rc.Name)
		}
		if err := configurable.Configure(opts); err != nil {
			return nil, errors.Errorf("configuring rule %q: %w", rc.Name, err)
		}
	}

	var out []fixer.Fixer
	for _, f := range registry.All() {
		if !disabled[f.Name()] {
			out = append(out, f)
		}
	}
	return out, nil
}
