package driver

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the file FindConfig looks for.
const ConfigFileName = "blur.yml"

// DefaultHistoryFile is the REPL history location relative to the home
// directory.
const DefaultHistoryFile = ".blur_history"

// ErrConfigNotFound reports that no blur.yml exists from the start directory
// upwards.
var ErrConfigNotFound = errors.New("config not found")

// Config represents the parsed contents of blur.yml. Unset fields are nil or
// empty so callers can layer flags on top.
type Config struct {
	Path        string
	Decay       *float64
	HistoryFile string
	Banner      *bool
}

type configFile struct {
	Decay       *float64 `yaml:"decay"`
	HistoryFile string   `yaml:"history_file"`
	Banner      *bool    `yaml:"banner"`
}

// ValidationError aggregates config validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadConfig parses blur.yml from disk, returning a validated config. An
// empty file yields the zero config.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}

	cfg := &Config{
		Path:        absPath,
		Decay:       raw.Decay,
		HistoryFile: strings.TrimSpace(raw.HistoryFile),
		Banner:      raw.Banner,
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs ValidationError
	if c.Decay != nil {
		d := *c.Decay
		if math.IsNaN(d) || d < 0 || d > 1 {
			errs.Issues = append(errs.Issues, fmt.Sprintf("decay must be between 0.0 and 1.0, got %v", d))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// ShowBanner reports whether the REPL should print its banner.
func (c *Config) ShowBanner() bool {
	if c == nil || c.Banner == nil {
		return true
	}
	return *c.Banner
}

// HistoryPath resolves the REPL history file. Relative paths are taken
// against the config file's directory; without a configured path the file
// lives in the user's home directory. An empty result disables history.
func (c *Config) HistoryPath() string {
	if c != nil && c.HistoryFile != "" {
		path := c.HistoryFile
		if strings.HasPrefix(path, "~/") {
			if home, err := os.UserHomeDir(); err == nil {
				return filepath.Join(home, path[2:])
			}
		}
		if !filepath.IsAbs(path) && c.Path != "" {
			return filepath.Join(filepath.Dir(c.Path), path)
		}
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, DefaultHistoryFile)
}

// FindConfig walks up from start looking for blur.yml.
func FindConfig(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve start directory %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	origin := dir
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found from %s upwards: %w", ConfigFileName, origin, ErrConfigNotFound)
		}
		dir = parent
	}
}
