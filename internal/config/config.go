// Package config reads the YAML configuration of the batch command
// and turns it into optimizer options.
package config

import (
	"os"
	"runtime"

	"github.com/lestrrat-go/svgo"
	"github.com/lestrrat-go/svgo/plugins"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the batch settings. Zero values in a loaded file keep
// the defaults.
type Config struct {
	Input          string        `yaml:"input"`
	Output         string        `yaml:"output"`
	FloatPrecision int           `yaml:"floatPrecision"`
	Multipass      bool          `yaml:"multipass"`
	Jobs           int           `yaml:"jobs"`
	Plugins        []PluginEntry `yaml:"plugins"`
}

// PluginEntry is one item of the plugin list. In YAML it is either a
// bare plugin name or a mapping with name, active and params keys.
type PluginEntry struct {
	Name   string         `yaml:"name"`
	Active *bool          `yaml:"active,omitempty"`
	Params map[string]any `yaml:"params,omitempty"`
}

func (p *PluginEntry) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var name string
		if err := value.Decode(&name); err != nil {
			return err
		}
		*p = PluginEntry{Name: name}
	case yaml.MappingNode:
		// plain has no UnmarshalYAML method, so Decode does not recurse
		type plain PluginEntry
		var v plain
		if err := value.Decode(&v); err != nil {
			return err
		}
		*p = PluginEntry(v)
	default:
		return errors.Errorf("line %d: plugin entry must be a name or a mapping", value.Line)
	}
	if p.Name == "" {
		return errors.Errorf("line %d: plugin entry without a name", value.Line)
	}
	return nil
}

// IsActive reports whether the entry runs its plugin
func (p PluginEntry) IsActive() bool {
	return p.Active == nil || *p.Active
}

// DefaultConfig returns the configuration used when no file is given
func DefaultConfig() *Config {
	return &Config{
		Input:          "output",
		Output:         "svg",
		FloatPrecision: svgo.DefaultFloatPrecision,
		Jobs:           runtime.GOMAXPROCS(0),
	}
}

// Load reads a YAML file over the defaults
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config")
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

// Validate checks values the optimizer would reject later, so that
// mistakes are reported before any file is touched.
func (c *Config) Validate() error {
	if c.Input == "" {
		return errors.New("input directory is empty")
	}
	if c.Output == "" {
		return errors.New("output directory is empty")
	}
	if c.FloatPrecision < 0 {
		return errors.Errorf("floatPrecision must not be negative, got %d", c.FloatPrecision)
	}
	if c.Jobs < 1 {
		return errors.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	for _, p := range c.Plugins {
		if _, ok := plugins.Lookup(p.Name); !ok {
			return errors.Wrapf(svgo.ErrUnknownPlugin, "%q", p.Name)
		}
	}
	return nil
}

// Disable turns the named plugin off. An entry naming it is rewritten;
// otherwise an inactive entry is appended, after the default preset
// when no list was configured.
func (c *Config) Disable(name string) {
	inactive := false
	if len(c.Plugins) == 0 {
		for _, n := range plugins.DefaultPreset() {
			c.Plugins = append(c.Plugins, PluginEntry{Name: n})
		}
	}
	for i := range c.Plugins {
		if c.Plugins[i].Name == name {
			c.Plugins[i].Active = &inactive
			return
		}
	}
	c.Plugins = append(c.Plugins, PluginEntry{Name: name, Active: &inactive})
}

// OptimizeOptions converts the configuration into options for
// svgo.NewOptimizer.
func (c *Config) OptimizeOptions() []svgo.OptimizeOption {
	options := []svgo.OptimizeOption{
		svgo.WithFloatPrecision(c.FloatPrecision),
		svgo.WithMultipass(c.Multipass),
	}
	if len(c.Plugins) > 0 {
		entries := make([]svgo.PluginEntry, 0, len(c.Plugins))
		for _, p := range c.Plugins {
			entries = append(entries, svgo.PluginOverride{
				Name:   p.Name,
				Active: p.Active,
				Params: p.Params,
			})
		}
		options = append(options, svgo.WithPlugins(entries...))
	}
	return options
}
