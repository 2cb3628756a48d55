package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	configFileName = "pocascade.yaml"

	DefaultConcurrency = 8
	DefaultCacheSize   = 256
)

// Config represents the pocascade.yaml configuration file.
type Config struct {
	Concurrency int           `yaml:"concurrency"`
	CacheSize   int           `yaml:"cache_size"`
	Exclude     ExcludeConfig `yaml:"exclude"`
}

// ExcludeConfig holds exclusion patterns from the config file.
type ExcludeConfig struct {
	Paths []string `yaml:"paths"`
}

// DefaultConfig returns the settings used when pocascade.yaml is absent.
func DefaultConfig() Config {
	return Config{Concurrency: DefaultConcurrency, CacheSize: DefaultCacheSize}
}

// LoadConfig reads pocascade.yaml from the workspace root.
// Returns DefaultConfig and nil error if the file does not exist.
func LoadConfig(root string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(filepath.Join(root, configFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", configFileName, err)
	}
	if cfg.Concurrency < 0 {
		return Config{}, fmt.Errorf("%s: concurrency must not be negative", configFileName)
	}
	if cfg.CacheSize < 0 {
		return Config{}, fmt.Errorf("%s: cache_size must not be negative", configFileName)
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if cfg.CacheSize == 0 {
		cfg.CacheSize = DefaultCacheSize
	}
	if err := validateGlobPatterns(cfg.Exclude.Paths); err != nil {
		return Config{}, fmt.Errorf("%s: %w", configFileName, err)
	}
	return cfg, nil
}

// validateGlobPatterns checks that none of the patterns use unsupported character classes.
func validateGlobPatterns(patterns []string) error {
	for _, p := range patterns {
		if strings.Contains(p, "[") {
			return fmt.Errorf("unsupported glob pattern (character class): %s", p)
		}
	}
	return nil
}

// excluded reports whether p matches any of the glob patterns.
func excluded(p string, patterns []string) bool {
	for _, g := range patterns {
		if globMatch(g, p) {
			return true
		}
	}
	return false
}

// globMatch implements SQLite GLOB semantics.
// '*' matches any sequence of characters (including '/').
// '?' matches exactly one character.
// '[' is treated as a literal character (character classes not supported).
func globMatch(pattern, s string) bool {
	return globMatchImpl([]rune(pattern), []rune(s))
}

func globMatchImpl(pattern, s []rune) bool {
	for len(pattern) > 0 {
		switch pattern[0] {
		case '*':
			for len(pattern) > 0 && pattern[0] == '*' {
				pattern = pattern[1:]
			}
			if len(pattern) == 0 {
				return true
			}
			for i := 0; i <= len(s); i++ {
				if globMatchImpl(pattern, s[i:]) {
					return true
				}
			}
			return false
		case '?':
			if len(s) == 0 {
				return false
			}
			pattern = pattern[1:]
			s = s[1:]
		default:
			if len(s) == 0 || pattern[0] != s[0] {
				return false
			}
			pattern = pattern[1:]
			s = s[1:]
		}
	}
	return len(s) == 0
}
