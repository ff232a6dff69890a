package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/j3rryl/go-xlsx2docx/internal/fileutil"
	"github.com/j3rryl/go-xlsx2docx/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrConfigInvalid   = errors.New("invalid config")
)

// Field length limits.
const (
	MaxDirLength      = 4096 // PATH_MAX on Linux
	MaxTemplateLength = 255  // NAME_MAX, the longest possible filename
)

// appDir is the directory under the user config dir searched for named configs.
const appDir = "xlsx2docx"

// Accepted enumerations. Empty means "use the default".
var (
	inputFormats = []any{"xlsx", "csv"}
	logLevels    = []any{"debug", "info", "warn", "error"}
	logFormats   = []any{"console", "json"}
)

// Config holds the persistent settings of the xlsx2docx CLI.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Log    LogConfig    `yaml:"log"`
}

// InputConfig defines how data files are read.
type InputConfig struct {
	Format string `yaml:"format"` // "xlsx" or "csv" (empty = detect from extension)
}

// OutputConfig defines where and how documents are written.
type OutputConfig struct {
	Dir           string `yaml:"dir"`           // Output directory (empty = ./output)
	NameTemplate  string `yaml:"nameTemplate"`  // Filename template (empty = {{name}})
	CleanFileName *bool  `yaml:"cleanFileName"` // nil = true
}

// LogConfig defines diagnostic logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error (default: info)
	Format string `yaml:"format"` // console or json (default: console)
}

// Validate checks enumerations and field lengths.
// Called automatically by LoadConfig, but available for callers that
// construct a Config manually.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(&c.Input,
		validation.Field(&c.Input.Format, validation.In(inputFormats...).Error("must be xlsx or csv")),
	); err != nil {
		return fmt.Errorf("%w: input: %v", ErrConfigInvalid, err)
	}
	if err := validation.ValidateStruct(&c.Output,
		validation.Field(&c.Output.Dir, validation.Length(0, MaxDirLength)),
		validation.Field(&c.Output.NameTemplate, validation.Length(0, MaxTemplateLength), validation.By(noPathSeparator)),
	); err != nil {
		return fmt.Errorf("%w: output: %v", ErrConfigInvalid, err)
	}
	if err := validation.ValidateStruct(&c.Log,
		validation.Field(&c.Log.Level, validation.In(logLevels...).Error("must be debug, info, warn, or error")),
		validation.Field(&c.Log.Format, validation.In(logFormats...).Error("must be console or json")),
	); err != nil {
		return fmt.Errorf("%w: log: %v", ErrConfigInvalid, err)
	}
	return nil
}

// noPathSeparator rejects naming templates that would write outside the
// output directory.
func noPathSeparator(value any) error {
	s, _ := value.(string)
	if strings.ContainsAny(s, `/\`) {
		return errors.New("must not contain path separators")
	}
	return nil
}

// DefaultConfig returns an empty configuration; every field falls back to
// the library default.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path
// or already carries a YAML extension.
func isFilePath(s string) bool {
	return fileutil.IsFilePath(s) || fileutil.HasExtension(s, ".yaml", ".yml")
}

// SearchPaths returns the locations tried for a config name, in order:
// .yaml then .yml, first in the current directory, then in
// <user config dir>/xlsx2docx/.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	dirs := []string{""}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(userConfigDir, appDir))
	}

	paths := make([]string, 0, len(extensions)*len(dirs))
	for _, dir := range dirs {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing search path for name.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
