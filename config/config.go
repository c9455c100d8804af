// Package config loads the esparse driver configuration from .esparse.toml or
// .esparse.yaml files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dhamidi/esparse/ecma/parser"
	"gopkg.in/yaml.v3"
)

// File names Find looks for, in order of preference.
var FileNames = []string{".esparse.toml", ".esparse.yaml", ".esparse.yml"}

const (
	GoalScript = "script"
	GoalModule = "module"
)

type Config struct {
	// Goal is "script" or "module". Module code allows top-level await.
	Goal       string   `toml:"goal" yaml:"goal"`
	AllowYield bool     `toml:"allow_yield" yaml:"allow_yield"`
	AllowAwait bool     `toml:"allow_await" yaml:"allow_await"`
	Comments   bool     `toml:"comments" yaml:"comments"`
	Output     string   `toml:"output" yaml:"output"`
	Color      bool     `toml:"color" yaml:"color"`
	Extensions []string `toml:"extensions" yaml:"extensions"`
	Log        Log      `toml:"log" yaml:"log"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `toml:"-" yaml:"-"`
}

type Log struct {
	Verbosity int    `toml:"verbosity" yaml:"verbosity"`
	File      string `toml:"file" yaml:"file"`
}

func Default() *Config {
	return &Config{
		Goal:       GoalScript,
		Output:     "json",
		Color:      true,
		Extensions: []string{".js", ".mjs", ".cjs"},
	}
}

// Load reads a configuration file. The format follows the extension: .yaml
// and .yml are YAML, anything else is TOML. Keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		if _, err := toml.Decode(string(content), cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.Path = path
	cfg.Log.File = os.ExpandEnv(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Find returns the nearest configuration file in dir or one of its parents.
func Find(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Resolve loads path when it is set, otherwise the file Find locates from
// dir, otherwise the defaults.
func Resolve(path, dir string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	if found, ok := Find(dir); ok {
		return Load(found)
	}
	return Default(), nil
}

func (c *Config) Validate() error {
	switch c.Goal {
	case GoalScript, GoalModule:
	default:
		return fmt.Errorf("invalid goal %q (want %s or %s)", c.Goal, GoalScript, GoalModule)
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("invalid extension %q: must start with a dot", ext)
		}
	}
	return nil
}

// Context returns the grammar parameters a top-level parse starts with.
func (c *Config) Context() parser.Context {
	ctx := parser.ScriptContext
	if c.Goal == GoalModule {
		ctx = parser.ModuleContext
	}
	if c.AllowYield {
		ctx = ctx.WithYield(true)
	}
	if c.AllowAwait {
		ctx = ctx.WithAwait(true)
	}
	return ctx
}

func (c *Config) ParserOptions() []parser.Option {
	opts := []parser.Option{parser.WithContext(c.Context())}
	if c.Comments {
		opts = append(opts, parser.WithComments())
	}
	return opts
}

// Matches reports whether path has one of the configured extensions.
func (c *Config) Matches(path string) bool {
	return slices.Contains(c.Extensions, strings.ToLower(filepath.Ext(path)))
}
