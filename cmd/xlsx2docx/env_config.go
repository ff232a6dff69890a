package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/j3rryl/go-xlsx2docx/internal/config"
)

// envPrefix starts every recognized environment variable.
const envPrefix = "XLSX2DOCX_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // XLSX2DOCX_CONFIG: config file name or path
	OutputDir  string // XLSX2DOCX_OUTPUT_DIR: output directory
	Name       string // XLSX2DOCX_NAME: filename template
	LogFormat  string // XLSX2DOCX_LOG_FORMAT: console or json
	Verbose    bool   // XLSX2DOCX_VERBOSE: any true value of strconv.ParseBool
}

// knownEnvVars lists valid XLSX2DOCX_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"XLSX2DOCX_CONFIG":     true,
	"XLSX2DOCX_OUTPUT_DIR": true,
	"XLSX2DOCX_NAME":       true,
	"XLSX2DOCX_LOG_FORMAT": true,
	"XLSX2DOCX_VERBOSE":    true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("XLSX2DOCX_CONFIG"),
		OutputDir:  os.Getenv("XLSX2DOCX_OUTPUT_DIR"),
		Name:       os.Getenv("XLSX2DOCX_NAME"),
		LogFormat:  os.Getenv("XLSX2DOCX_LOG_FORMAT"),
	}
	if v, err := strconv.ParseBool(os.Getenv("XLSX2DOCX_VERBOSE")); err == nil {
		cfg.Verbose = v
	}
	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized XLSX2DOCX_* variables.
// Helps catch typos like XLSX2DOCX_OUTPUT instead of XLSX2DOCX_OUTPUT_DIR.
func warnUnknownEnvVars(w io.Writer) {
	var unknown []string
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig overrides config values with the environment variables
// that are set. Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.Name != "" {
		cfg.Output.NameTemplate = env.Name
	}
	if env.LogFormat != "" {
		cfg.Log.Format = env.LogFormat
	}
}
