package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	flag "github.com/spf13/pflag"

	xlsx2docx "github.com/j3rryl/go-xlsx2docx"
	"github.com/j3rryl/go-xlsx2docx/internal/config"
)

// ---------------------------------------------------------------------------
// TestParseGenerateFlags - Flag parsing
// ---------------------------------------------------------------------------

func TestParseGenerateFlags(t *testing.T) {
	t.Parallel()

	f, args, err := parseGenerateFlags([]string{
		"data.xlsx", "-o", "out", "--name", "{{id}}", "--no-clean",
		"--format", "csv", "-v", "--log-format", "json", "letter.docx",
	}, &strings.Builder{})
	if err != nil {
		t.Fatalf("parseGenerateFlags() error = %v", err)
	}

	if diff := cmp.Diff([]string{"data.xlsx", "letter.docx"}, args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
	want := generateFlags{
		common: commonFlags{verbose: true, logFormat: "json"},
		names:  nameFlags{template: "{{id}}", noClean: true},
		output: "out",
		format: "csv",
	}
	if *f != want {
		t.Errorf("flags = %+v, want %+v", *f, want)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		parse   func() error
		wantErr error
	}{
		{
			name:    "unknown generate flag",
			parse:   func() error { _, _, err := parseGenerateFlags([]string{"--bogus"}, &strings.Builder{}); return err },
			wantErr: ErrUsage,
		},
		{
			name:    "non-numeric count",
			parse:   func() error { _, _, err := parsePreviewFlags([]string{"--count", "many"}, &strings.Builder{}); return err },
			wantErr: ErrUsage,
		},
		{
			name:    "inspect help",
			parse:   func() error { _, _, err := parseInspectFlags([]string{"--help"}, &strings.Builder{}); return err },
			wantErr: flag.ErrHelp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if err := tt.parse(); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestSettings_Options - Config to library options
// ---------------------------------------------------------------------------

func TestSettings_Options(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Output.Dir = "from-config"
	mergeNameFlags(nameFlags{template: "{{id}}", noClean: true}, cfg)
	mergeFormatFlag("csv", cfg)

	s := &settings{cfg: cfg, verbose: true}
	want := xlsx2docx.Options{
		OutputDir:        "from-config",
		FileNameTemplate: "{{id}}",
		CleanFileName:    xlsx2docx.Bool(false),
		Verbose:          true,
		Format:           xlsx2docx.FormatCSV,
	}
	if diff := cmp.Diff(want, s.options()); diff != "" {
		t.Errorf("options() mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeNameFlags_EmptyKeepsConfig(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Output: config.OutputConfig{NameTemplate: "{{file}}"}}
	mergeNameFlags(nameFlags{}, cfg)
	mergeFormatFlag("", cfg)

	if cfg.Output.NameTemplate != "{{file}}" || cfg.Output.CleanFileName != nil || cfg.Input.Format != "" {
		t.Errorf("config changed by empty flags: %+v", cfg)
	}
}

// ---------------------------------------------------------------------------
// TestWithHint - Actionable error hints
// ---------------------------------------------------------------------------

func TestWithHint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantHint string
	}{
		{
			name:     "missing template",
			err:      &xlsx2docx.InputError{Kind: "template", Path: "nowhere/letter.docx", Err: xlsx2docx.ErrInputMissing},
			wantHint: "check the path",
		},
		{name: "corrupt data", err: &xlsx2docx.LoadError{Kind: xlsx2docx.ErrCorruptInput, Reason: "failed to read data file"}, wantHint: "--format csv"},
		{name: "no data", err: &xlsx2docx.LoadError{Kind: xlsx2docx.ErrNoData, Reason: "all records in data file are empty"}, wantHint: "first row"},
		{name: "template", err: &xlsx2docx.RenderError{Reason: "template has an unclosed or mismatched section"}, wantHint: "xlsx2docx preview"},
		{name: "output dir", err: xlsx2docx.ErrOutputDir, wantHint: "writable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := withHint(tt.err)
			if !errors.Is(got, tt.err) {
				t.Errorf("withHint() lost the original error: %v", got)
			}
			if !strings.Contains(got.Error(), "\n  hint: ") || !strings.Contains(got.Error(), tt.wantHint) {
				t.Errorf("withHint() = %q, want hint containing %q", got, tt.wantHint)
			}
		})
	}

	t.Run("other errors unchanged", func(t *testing.T) {
		t.Parallel()

		err := errors.New("plain")
		if got := withHint(err); got != err {
			t.Errorf("withHint() = %v, want the same error", got)
		}
		if withHint(nil) != nil {
			t.Error("withHint(nil) != nil")
		}
	})
}

func TestRequireArgs(t *testing.T) {
	t.Parallel()

	if err := requireArgs([]string{"a", "b"}, 2, "usage"); err != nil {
		t.Errorf("requireArgs() error = %v", err)
	}
	err := requireArgs([]string{"a"}, 2, "xlsx2docx <data> <template>")
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("requireArgs() error = %v, want ErrUsage", err)
	}
	if !strings.Contains(err.Error(), "usage: xlsx2docx <data> <template>") {
		t.Errorf("error = %q, want usage line", err)
	}
}
