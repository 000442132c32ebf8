// Package config loads dtf settings from a TOML file and turns them into a
// validated dtf.WorkingContext. A config file looks like:
//
//	[diff]
//	categories = ["key", "type", "value", "array"]
//	array_same_order = false
//	array_matching = "multiset"
//
//	[output]
//	color = "auto"
//	printer_friendly = false
//	log_level = "warn"
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/qri-io/dtf"
)

// FileName is the config file Find looks for
const FileName = "dtf.toml"

// ErrNoCategories is returned when a config enables no diff categories
var ErrNoCategories = dtf.ErrNoCategories

// Color modes
const (
	ColorAuto = "auto"
	ColorOn   = "on"
	ColorOff  = "off"
)

// Config is the contents of a config file
type Config struct {
	Diff   Diff   `toml:"diff"`
	Output Output `toml:"output"`
}

// Diff configures comparisons
type Diff struct {
	Categories     []string `toml:"categories"`
	ArraySameOrder bool     `toml:"array_same_order"`
	ArrayMatching  string   `toml:"array_matching"`
}

// Output configures presentation
type Output struct {
	Color           string `toml:"color"`
	PrinterFriendly bool   `toml:"printer_friendly"`
	LogLevel        string `toml:"log_level"`
}

// Default returns the configuration used when no file is given: every
// category, arrays compared by content as multisets, colour on terminals
func Default() *Config {
	cats := make([]string, len(dtf.AllCategories))
	for i, c := range dtf.AllCategories {
		cats[i] = c.String()
	}
	return &Config{
		Diff: Diff{
			Categories:    cats,
			ArrayMatching: dtf.MatchMultiset.String(),
		},
		Output: Output{
			Color:    ColorAuto,
			LogLevel: "warn",
		},
	}
}

// Load reads a config file. Settings the file leaves out keep their default
// values
func Load(path string) (*Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown setting %q", path, undecoded[0].String())
	}
	if meta.IsDefined("diff", "categories") && len(cfg.Diff.Categories) == 0 {
		return nil, fmt.Errorf("%s: [diff].categories: %w", path, ErrNoCategories)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Find looks for FileName in startDir and its parents
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// Validate checks every setting is understood
func (c *Config) Validate() error {
	if _, err := c.Categories(); err != nil {
		return err
	}
	if _, err := c.ArrayMatching(); err != nil {
		return err
	}
	switch c.Output.Color {
	case ColorAuto, ColorOn, ColorOff:
	default:
		return fmt.Errorf("[output].color must be one of auto, on, off. got %q", c.Output.Color)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// Categories parses the configured diff categories
func (c *Config) Categories() ([]dtf.Category, error) {
	if len(c.Diff.Categories) == 0 {
		return nil, ErrNoCategories
	}
	cats := make([]dtf.Category, 0, len(c.Diff.Categories))
	for _, name := range c.Diff.Categories {
		cat, err := dtf.ParseCategory(strings.TrimSpace(name))
		if err != nil {
			return nil, fmt.Errorf("[diff].categories: %w", err)
		}
		cats = append(cats, cat)
	}
	return cats, nil
}

// ArrayMatching parses the configured array matching policy
func (c *Config) ArrayMatching() (dtf.ArrayMatching, error) {
	var m dtf.ArrayMatching
	if err := m.UnmarshalText([]byte(c.Diff.ArrayMatching)); err != nil {
		return m, fmt.Errorf("[diff].array_matching: %w", err)
	}
	return m, nil
}

// LogLevel parses the configured log level, one of debug, info, warn, error
func (c *Config) LogLevel() (slog.Level, error) {
	var l slog.Level
	if c.Output.LogLevel == "" {
		return slog.LevelWarn, nil
	}
	if err := l.UnmarshalText([]byte(c.Output.LogLevel)); err != nil {
		return l, fmt.Errorf("[output].log_level: %w", err)
	}
	return l, nil
}

// UseColor resolves the colour mode against whether output goes to a
// terminal
func (c *Config) UseColor(isTerminal bool) bool {
	switch c.Output.Color {
	case ColorOn:
		return true
	case ColorOff:
		return false
	}
	return isTerminal
}

// WorkingContext builds the context for comparing the documents labelled
// labelA & labelB
func (c *Config) WorkingContext(labelA, labelB string) (*dtf.WorkingContext, error) {
	cats, err := c.Categories()
	if err != nil {
		return nil, err
	}
	m, err := c.ArrayMatching()
	if err != nil {
		return nil, err
	}
	return dtf.NewWorkingContext(labelA, labelB,
		dtf.OptionCategories(cats...),
		dtf.OptionArraySameOrder(c.Diff.ArraySameOrder),
		dtf.OptionArrayMatching(m),
	)
}
