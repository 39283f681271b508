// Package config loads the plang CLI configuration from config.yml with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	EnvConfig   = "PLANG_CONFIG"
	EnvHome     = "PLANG_HOME"
	EnvRegistry = "PLANG_REGISTRY"

	DefaultPrompt = ">> "
)

// Config is the resolved CLI configuration. Path is empty when no file was read.
type Config struct {
	Path     string
	Home     string
	Registry string
	Verbose  bool
	REPL     REPLConfig
}

// REPLConfig tunes the interactive prompt.
type REPLConfig struct {
	Prompt  string
	History string
}

type configFile struct {
	Home     string         `yaml:"home"`
	Registry string         `yaml:"registry"`
	Verbose  bool           `yaml:"verbose"`
	REPL     replConfigFile `yaml:"repl"`
}

type replConfigFile struct {
	Prompt  string `yaml:"prompt"`
	History string `yaml:"history"`
}

// Load resolves the configuration from the process environment. An explicit
// path must exist; the default location is optional.
func Load(path string) (*Config, error) {
	return LoadWithEnv(path, os.Getenv)
}

// LoadWithEnv is Load with an injectable environment lookup.
func LoadWithEnv(path string, getenv func(string) string) (*Config, error) {
	explicit := strings.TrimSpace(path)
	if explicit == "" {
		explicit = strings.TrimSpace(getenv(EnvConfig))
	}

	var raw configFile
	cfg := &Config{}
	if explicit != "" {
		abs, err := filepath.Abs(explicit)
		if err != nil {
			return nil, fmt.Errorf("config: resolve %s: %w", explicit, err)
		}
		if err := decodeFile(abs, &raw); err != nil {
			return nil, err
		}
		cfg.Path = abs
	} else if def := defaultPath(getenv); def != "" {
		err := decodeFile(def, &raw)
		switch {
		case err == nil:
			cfg.Path = def
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, err
		}
	}

	cfg.Home = raw.Home
	cfg.Registry = raw.Registry
	cfg.Verbose = raw.Verbose
	cfg.REPL = REPLConfig{Prompt: raw.REPL.Prompt, History: raw.REPL.History}

	if home := strings.TrimSpace(getenv(EnvHome)); home != "" {
		cfg.Home = home
	}
	if registry := strings.TrimSpace(getenv(EnvRegistry)); registry != "" {
		cfg.Registry = registry
	}
	if err := cfg.normalize(getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeFile(path string, out *configFile) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) normalize(getenv func(string) string) error {
	if c.Home == "" {
		userHome := getenv("HOME")
		if userHome == "" {
			return fmt.Errorf("config: cannot determine home directory; set %s", EnvHome)
		}
		c.Home = filepath.Join(userHome, ".plang")
	}
	c.Home = expandHome(c.Home, getenv)
	if c.Registry != "" && !isURL(c.Registry) {
		c.Registry = expandHome(c.Registry, getenv)
	}
	if c.REPL.Prompt == "" {
		c.REPL.Prompt = DefaultPrompt
	}
	if c.REPL.History == "" {
		c.REPL.History = filepath.Join(c.Home, "history")
	} else {
		c.REPL.History = expandHome(c.REPL.History, getenv)
	}
	return nil
}

func defaultPath(getenv func(string) string) string {
	if dir := getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "plang", "config.yml")
	}
	if home := getenv("HOME"); home != "" {
		return filepath.Join(home, ".config", "plang", "config.yml")
	}
	return ""
}

func expandHome(path string, getenv func(string) string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home := getenv("HOME")
	if home == "" {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
