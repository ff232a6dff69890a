package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Output.Dir != "" {
		t.Errorf("Output.Dir = %q, want empty", cfg.Output.Dir)
	}
	if cfg.Output.NameTemplate != "" {
		t.Errorf("Output.NameTemplate = %q, want empty", cfg.Output.NameTemplate)
	}
	if cfg.Output.CleanFileName != nil {
		t.Errorf("Output.CleanFileName = %v, want nil", *cfg.Output.CleanFileName)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "valid full config",
			cfg: Config{
				Input:  InputConfig{Format: "csv"},
				Output: OutputConfig{Dir: "out", NameTemplate: "{{name}}_{{id}}"},
				Log:    LogConfig{Level: "debug", Format: "json"},
			},
		},
		{
			name:    "unknown input format",
			cfg:     Config{Input: InputConfig{Format: "ods"}},
			wantErr: "input",
		},
		{
			name:    "name template with separator",
			cfg:     Config{Output: OutputConfig{NameTemplate: "../{{name}}"}},
			wantErr: "separators",
		},
		{
			name:    "name template too long",
			cfg:     Config{Output: OutputConfig{NameTemplate: strings.Repeat("a", MaxTemplateLength+1)}},
			wantErr: "NameTemplate",
		},
		{
			name:    "unknown log level",
			cfg:     Config{Log: LogConfig{Level: "trace"}},
			wantErr: "log",
		},
		{
			name:    "unknown log format",
			cfg:     Config{Log: LogConfig{Format: "xml"}},
			wantErr: "console or json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, ErrConfigInvalid) {
				t.Fatalf("Validate() error = %v, want ErrConfigInvalid", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "test.yaml")
		content := `input:
  format: csv
output:
  dir: "letters"
  nameTemplate: "{{Last}}_{{First}}"
  cleanFileName: false
log:
  level: debug
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Input.Format != "csv" {
			t.Errorf("Input.Format = %q, want %q", cfg.Input.Format, "csv")
		}
		if cfg.Output.Dir != "letters" {
			t.Errorf("Output.Dir = %q, want %q", cfg.Output.Dir, "letters")
		}
		if cfg.Output.NameTemplate != "{{Last}}_{{First}}" {
			t.Errorf("Output.NameTemplate = %q, want %q", cfg.Output.NameTemplate, "{{Last}}_{{First}}")
		}
		if cfg.Output.CleanFileName == nil || *cfg.Output.CleanFileName {
			t.Errorf("Output.CleanFileName = %v, want false", cfg.Output.CleanFileName)
		}
		if cfg.Log.Level != "debug" {
			t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "invalid.yaml")
		if err := os.WriteFile(configPath, []byte("output: [unclosed"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "unknown.yaml")
		if err := os.WriteFile(configPath, []byte("output:\n  folder: x\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid values return ErrConfigInvalid", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "bad.yaml")
		if err := os.WriteFile(configPath, []byte("input:\n  format: ods\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrConfigInvalid) {
			t.Errorf("error = %v, want ErrConfigInvalid", err)
		}
	})

	t.Run("config name resolves in current directory", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		if err := os.WriteFile("letters.yml", []byte("output:\n  dir: out\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		cfg, err := LoadConfig("letters")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Output.Dir != "out" {
			t.Errorf("Output.Dir = %q, want %q", cfg.Output.Dir, "out")
		}
	})

	t.Run("unknown config name lists tried paths", func(t *testing.T) {
		t.Chdir(t.TempDir())

		_, err := LoadConfig("missing")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "missing.yaml") || !strings.Contains(err.Error(), "missing.yml") {
			t.Errorf("error = %q, want both extensions listed", err)
		}
	})
}

func TestSearchPaths(t *testing.T) {
	paths := SearchPaths("letters")

	if len(paths) < 2 {
		t.Fatalf("SearchPaths() = %v, want at least 2 paths", paths)
	}
	if paths[0] != "letters.yaml" || paths[1] != "letters.yml" {
		t.Errorf("SearchPaths()[:2] = %v, want current directory first", paths[:2])
	}
	for _, p := range paths[2:] {
		if filepath.Base(filepath.Dir(p)) != appDir {
			t.Errorf("path %q not under %s", p, appDir)
		}
	}
}
