package config

import (
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/dusk-indust/reassemble/internal/chop"
)

// DefaultDemoInput is the sentence the demo command chops and reassembles.
const DefaultDemoInput = "This is some sort of long string message that gets chopped."

// ChopConfig holds fragment generator settings.
type ChopConfig struct {
	Seed       int64 `yaml:"seed,omitempty"`
	Cuts       int   `yaml:"cuts,omitempty"`
	MinOverlap int   `yaml:"minOverlap,omitempty"`
	MaxOverlap int   `yaml:"maxOverlap,omitempty"`
}

// Options converts the settings into chop options.
func (c ChopConfig) Options() chop.Options {
	return chop.Options{
		Seed:       c.Seed,
		Cuts:       c.Cuts,
		MinOverlap: c.MinOverlap,
		MaxOverlap: c.MaxOverlap,
	}
}

// ProjectConfig holds settings loaded from reassemble.yml.
type ProjectConfig struct {
	Parallel  bool       `yaml:"parallel,omitempty"`
	Workers   int        `yaml:"workers,omitempty"`
	Verbose   bool       `yaml:"verbose,omitempty"`
	DemoInput string     `yaml:"demoInput,omitempty"`
	GraphPath string     `yaml:"graphPath,omitempty"`
	Chop      ChopConfig `yaml:"chop,omitempty"`
}

// Load attempts to read reassemble.yml or reassemble.yaml from the given
// directory. Returns a zero-value config (not an error) if no config file
// exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"reassemble.yml", "reassemble.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}

// WithDefaults returns a copy with zero values replaced by defaults.
// A zero chop seed is kept; callers pick a seed when they need variety.
func (c ProjectConfig) WithDefaults() ProjectConfig {
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.DemoInput == "" {
		c.DemoInput = DefaultDemoInput
	}
	if c.Chop.Cuts == 0 {
		c.Chop.Cuts = chop.DefaultCuts
	}
	if c.Chop.MinOverlap == 0 {
		c.Chop.MinOverlap = chop.DefaultMinOverlap
	}
	if c.Chop.MaxOverlap == 0 {
		c.Chop.MaxOverlap = max(chop.DefaultMaxOverlap, c.Chop.MinOverlap)
	}
	return c
}
